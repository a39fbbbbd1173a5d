package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// RawFileConfig mirrors the on-disk JSON. Pointer fields distinguish "absent"
// from zero, so a partial file only overrides what it mentions.
type RawFileConfig struct {
	Brightness *int    `json:"brightness,omitempty"`
	OffTimeout *int    `json:"offTimeout,omitempty"`
	DimPercent *int    `json:"dimPercent,omitempty"`
	Backlight  *string `json:"backlight,omitempty"`
	Device     *string `json:"device,omitempty"`
	Broker     *string `json:"broker,omitempty"`
}

// RawFromConfig converts a validated Config back into its on-disk form.
// Used by the daemon's GET /config handler.
func RawFromConfig(c *Config) *RawFileConfig {
	if c == nil {
		return nil
	}
	return &RawFileConfig{
		Brightness: &c.Brightness,
		OffTimeout: &c.OffTimeout,
		DimPercent: &c.DimPercent,
		Backlight:  &c.Backlight,
		Device:     &c.Device,
		Broker:     &c.Broker,
	}
}

// Overlay applies every present field of r onto c.
func (r *RawFileConfig) Overlay(c *Config) {
	if r.Brightness != nil {
		c.Brightness = *r.Brightness
	}
	if r.OffTimeout != nil {
		c.OffTimeout = *r.OffTimeout
	}
	if r.DimPercent != nil {
		c.DimPercent = *r.DimPercent
	}
	if r.Backlight != nil {
		c.Backlight = *r.Backlight
	}
	if r.Device != nil {
		c.Device = *r.Device
	}
	if r.Broker != nil {
		c.Broker = *r.Broker
	}
}

// Load reads the configuration file at path and overlays it onto the
// defaults. A missing or empty file is not an error; the defaults are used
// as-is. Malformed JSON is an error.
func Load(path string) (*Config, error) {
	c := Default()

	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logrus.WithField("path", path).Debug("config file not found, using defaults")
			return c, nil
		}
		return nil, pkgerrors.Wrapf(err, "failed to read config file %s", path)
	}

	if strings.TrimSpace(string(b)) == "" {
		return c, nil
	}

	raw := RawFileConfig{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal config from %s", path)
	}

	raw.Overlay(c)

	return c, nil
}

// Validate range-checks every field and clamps Brightness to the hardware
// limit reported by the backlight. It must be called after the display is
// opened and before the event loop starts.
func (c *Config) Validate(hardwareMax int) error {
	if hardwareMax <= 0 || hardwareMax > MaxBrightness {
		hardwareMax = MaxBrightness
	}

	if c.Brightness < MinBrightness || c.Brightness > MaxBrightness {
		return fmt.Errorf("brightness %d out of range [%d, %d]",
			c.Brightness, MinBrightness, MaxBrightness)
	}
	if c.Brightness > hardwareMax {
		logrus.WithFields(logrus.Fields{
			"brightness":  c.Brightness,
			"hardwareMax": hardwareMax,
		}).Warn("brightness exceeds hardware maximum, clamping")
		c.Brightness = hardwareMax
	}

	if c.OffTimeout < MinOffTimeout || c.OffTimeout > MaxOffTimeout {
		return fmt.Errorf("offTimeout %d out of range [%d, %d]",
			c.OffTimeout, MinOffTimeout, MaxOffTimeout)
	}

	if c.DimPercent < MinDimPercent || c.DimPercent > MaxDimPercent {
		return fmt.Errorf("dimPercent %d out of range [%d, %d]",
			c.DimPercent, MinDimPercent, MaxDimPercent)
	}

	if err := validateDeviceName(c.Backlight); err != nil {
		return pkgerrors.Wrap(err, "backlight")
	}
	if err := validateDeviceName(c.Device); err != nil {
		return pkgerrors.Wrap(err, "device")
	}

	return nil
}

// validateDeviceName rejects empty names and path traversal. Device names
// are single path components under /sys/class/backlight or /dev/input.
func validateDeviceName(name string) error {
	if name == "" {
		return fmt.Errorf("device name is empty")
	}
	if strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		return fmt.Errorf("device name %q must be a single path component", name)
	}
	return nil
}
