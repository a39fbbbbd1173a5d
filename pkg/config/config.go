// Package config loads and validates the daemon configuration.
//
// Configuration comes from a small JSON file (missing file means defaults)
// with optional command-line overrides applied by the daemon command. All
// range enforcement happens here, before the state machine or the event loop
// ever see a value.
package config

// Defaults.
const (
	DefaultBrightness = 150
	DefaultOffTimeout = 300
	DefaultDimPercent = 10
	DefaultBacklight  = "rpi_backlight"
	DefaultDevice     = "event0"

	DefaultPath       = "/etc/touch-timeout.json"
	DefaultSocketPath = "/var/run/touch-timeout.sock"
)

// Limits. The brightness ceiling comes from the 8-bit PWM hardware; the
// minimums keep the panel visibly lit and free of flicker.
const (
	MinBrightness    = 15
	MaxBrightness    = 255
	MinDimBrightness = 10
	MinOffTimeout    = 10
	MaxOffTimeout    = 86400
	MinDimPercent    = 1
	MaxDimPercent    = 100
	MinDimTimeout    = 5
)

// Config is the validated daemon configuration.
type Config struct {
	// Brightness is the FULL-state brightness target.
	Brightness int
	// OffTimeout is the idle time in seconds before the display turns off.
	OffTimeout int
	// DimPercent dims the display after this percentage of OffTimeout.
	DimPercent int
	// Backlight is the sysfs backlight device name under /sys/class/backlight.
	Backlight string
	// Device is the input device name under /dev/input.
	Device string
	// Broker is an optional MQTT broker URL for telemetry. Empty disables it.
	Broker string
}

// Default returns a Config populated with the compile-time defaults.
func Default() *Config {
	return &Config{
		Brightness: DefaultBrightness,
		OffTimeout: DefaultOffTimeout,
		DimPercent: DefaultDimPercent,
		Backlight:  DefaultBacklight,
		Device:     DefaultDevice,
	}
}
