package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ajmccaus/touch-timeout/pkg/config"
)

func NewConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "config",
		GroupID: gAdvanced,
		Short:   "Show the configuration the daemon is running with",
		Long: `Show the configuration the daemon is running with.

This is the effective configuration after defaults and validation, which
may differ from the config file on disk.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, err := apiClient.GetConfig()
			if err != nil {
				return fmt.Errorf("failed to get config: %w", err)
			}

			cfg := config.Default()
			raw.Overlay(cfg)

			cmd.Println(bold("Daemon configuration:"))
			cmd.Printf("  Brightness: %s\n", bold("%d", cfg.Brightness))
			cmd.Printf("  Off timeout: %s\n", bold("%d seconds", cfg.OffTimeout))
			cmd.Printf("  Dim percent: %s\n", bold("%d%%", cfg.DimPercent))
			cmd.Printf("  Backlight: %s\n", bold("%s", cfg.Backlight))
			cmd.Printf("  Input device: %s\n", bold("%s", cfg.Device))
			if cfg.Broker != "" {
				cmd.Printf("  MQTT broker: %s\n", bold("%s", cfg.Broker))
			} else {
				cmd.Printf("  MQTT broker: %s\n", bold("disabled"))
			}

			return nil
		},
	}
}
