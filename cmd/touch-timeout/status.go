package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ajmccaus/touch-timeout/pkg/types"
)

func NewStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		GroupID: gBasic,
		Short:   "Get the current status of touch-timeout",
		Long:    `Get the display state, brightness, idle time, and event counters.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			status, err := apiClient.GetStatus()
			if err != nil {
				return fmt.Errorf("failed to get status: %w", err)
			}

			cmd.Println(bold("Display status:"))
			cmd.Printf("  State: %s\n", stateText(status.State))
			cmd.Printf("  Brightness: %s\n", bold("%d / %d", status.Brightness, status.MaxBrightness))
			if status.CachedBrightness != status.Brightness {
				cmd.Printf("  Last written brightness: %s\n", bold("%d", status.CachedBrightness))
			}
			cmd.Printf("  Idle: %s\n", bold("%s", duration(status.IdleSeconds)))

			cmd.Println()

			cmd.Println(bold("Timeouts:"))
			cmd.Printf("  Dim after: %s\n", bold("%s", duration(status.DimTimeoutSeconds)))
			cmd.Printf("  Off after: %s\n", bold("%s", duration(status.OffTimeoutSeconds)))

			cmd.Println()

			cmd.Println(bold("Counters:"))
			cmd.Printf("  Touches: %s\n", bold("%d", status.Touches))
			cmd.Printf("  Dims: %s\n", bold("%d", status.Dims))
			cmd.Printf("  Offs: %s\n", bold("%d", status.Offs))
			cmd.Printf("  Wakes: %s\n", bold("%d", status.Wakes))
			cmd.Printf("  Uptime: %s\n", bold("%s", duration(status.UptimeSeconds)))

			return nil
		},
	}
}

func stateText(state string) string {
	switch state {
	case types.StateFull:
		return color.New(color.Bold, color.FgGreen).Sprint(state)
	case types.StateDimmed:
		return color.New(color.Bold, color.FgYellow).Sprint(state)
	case types.StateOff:
		return color.New(color.Bold, color.FgRed).Sprint(state)
	}
	return bold("%s", state)
}

func duration(seconds uint32) string {
	return (time.Duration(seconds) * time.Second).String()
}

func bold(format string, a ...interface{}) string {
	return color.New(color.Bold).Sprintf(format, a...)
}
