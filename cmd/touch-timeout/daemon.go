package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ajmccaus/touch-timeout/pkg/config"
	"github.com/ajmccaus/touch-timeout/pkg/daemon"
	"github.com/ajmccaus/touch-timeout/pkg/version"
)

func NewDaemonCommand() *cobra.Command {
	var (
		brightness int
		offTimeout int
		dimPercent int
		backlight  string
		device     string
		broker     string
	)

	cmd := &cobra.Command{
		Use:     "daemon",
		Hidden:  true,
		Short:   "Run the touch-timeout daemon in the foreground",
		GroupID: gAdvanced,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			// Flags given on the command line win over the config file.
			f := cmd.Flags()
			if f.Changed("brightness") {
				cfg.Brightness = brightness
			}
			if f.Changed("off-timeout") {
				cfg.OffTimeout = offTimeout
			}
			if f.Changed("dim-percent") {
				cfg.DimPercent = dimPercent
			}
			if f.Changed("backlight") {
				cfg.Backlight = backlight
			}
			if f.Changed("device") {
				cfg.Device = device
			}
			if f.Changed("broker") {
				cfg.Broker = broker
			}

			logrus.WithFields(logrus.Fields{
				"version": version.Version,
				"commit":  version.GitCommit,
			}).Info("touch-timeout daemon starting")

			return daemon.Run(cfg, unixSocketPath)
		},
	}

	f := cmd.Flags()
	f.IntVar(&brightness, "brightness", config.DefaultBrightness, "full backlight brightness")
	f.IntVar(&offTimeout, "off-timeout", config.DefaultOffTimeout, "seconds of inactivity before the screen turns off")
	f.IntVar(&dimPercent, "dim-percent", config.DefaultDimPercent, "dim brightness and dim timeout as a percentage")
	f.StringVar(&backlight, "backlight", config.DefaultBacklight, "backlight name under /sys/class/backlight")
	f.StringVar(&device, "device", config.DefaultDevice, "input device name under /dev/input")
	f.StringVar(&broker, "broker", "", "MQTT broker URI for telemetry, e.g. tcp://localhost:1883 (empty disables)")

	return cmd
}
