package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ajmccaus/touch-timeout/pkg/config"
	"github.com/ajmccaus/touch-timeout/pkg/version"
)

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("%s %s\n", version.Version, version.GitCommit)
		},
	}
}

func NewWakeCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "wake",
		Short:   "Wake the display",
		GroupID: gBasic,
		Long: `Wake the display.

Restores full brightness as if the screen had been touched, without
generating an input event. Useful from scripts and home-automation hooks.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			ret, err := apiClient.Wake()
			if err != nil {
				return fmt.Errorf("failed to wake display: %v", err)
			}

			if ret != "" {
				logrus.Infof("daemon responded: %s", ret)
			}

			logrus.Infof("successfully woke the display")

			return nil
		},
	}
}

func NewBrightnessCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "brightness",
		Short:   "Get or set the full-state brightness",
		GroupID: gBasic,
		Long: `Get or set the brightness used while the screen is awake.

Setting a value changes the running daemon only; edit the config file to
make it permanent. If the screen is currently dimmed or off, the new value
takes effect on the next touch.`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "get",
			Short: "Get the full-state brightness",
			RunE: func(cmd *cobra.Command, _ []string) error {
				v, err := apiClient.GetBrightness()
				if err != nil {
					return fmt.Errorf("failed to get brightness: %v", err)
				}

				cmd.Println(v)

				return nil
			},
		},
		&cobra.Command{
			Use:   "set [value]",
			Short: fmt.Sprintf("Set the full-state brightness (%d-255)", config.MinBrightness),
			RunE: func(_ *cobra.Command, args []string) error {
				v, err := parseIntArg(args, "brightness")
				if err != nil {
					return err
				}

				ret, err := apiClient.SetBrightness(v)
				if err != nil {
					return fmt.Errorf("failed to set brightness: %v", err)
				}

				if ret != "" {
					logrus.Infof("daemon responded: %s", ret)
				}

				logrus.Infof("successfully set full brightness to %d", v)

				return nil
			},
		},
	)

	return cmd
}
