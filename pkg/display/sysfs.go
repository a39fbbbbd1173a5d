package display

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ajmccaus/touch-timeout/pkg/config"
)

const sysfsRoot = "/sys/class/backlight"

// Sysfs drives a backlight through its sysfs brightness file. The file is
// kept open for the daemon's lifetime and rewound before every write.
type Sysfs struct {
	f       *os.File
	max     int
	current int
	min     int
}

var _ Backlight = (*Sysfs)(nil)

// Open opens the named backlight under /sys/class/backlight.
func Open(name string) (*Sysfs, error) {
	return openDir(filepath.Join(sysfsRoot, name))
}

func openDir(dir string) (*Sysfs, error) {
	max := readSysfsInt(filepath.Join(dir, "max_brightness"))
	if max <= 0 {
		logrus.WithField("dir", dir).Warnf(
			"cannot read max_brightness, assuming %d", config.MaxBrightness)
		max = config.MaxBrightness
	}
	if max > config.MaxBrightness {
		max = config.MaxBrightness
	}

	path := filepath.Join(dir, "brightness")
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to open %s", path)
	}

	d := &Sysfs{
		f:       f,
		max:     max,
		current: -1,
		min:     config.MinDimBrightness,
	}

	// Seed the cache once from hardware. -1 (unknown) on failure forces the
	// first SetBrightness to write.
	if v := readSysfsInt(path); v >= 0 {
		d.current = v
	}

	logrus.WithFields(logrus.Fields{
		"path":    path,
		"max":     d.max,
		"current": d.current,
	}).Info("backlight opened")

	return d, nil
}

// MaxBrightness returns the hardware brightness ceiling.
func (d *Sysfs) MaxBrightness() int {
	return d.max
}

// Brightness returns the cached brightness.
func (d *Sysfs) Brightness() int {
	return d.current
}

// SetBrightness writes value to the backlight, skipping the write when it
// equals the cache. Non-zero targets below the visible minimum are raised to
// it; zero means off and is passed through.
func (d *Sysfs) SetBrightness(value int) error {
	if value < 0 || value > d.max {
		return pkgerrors.Errorf("brightness %d out of range [0, %d]", value, d.max)
	}

	if value > 0 && value < d.min {
		value = d.min
	}

	if value == d.current {
		return nil
	}

	if _, err := d.f.Seek(0, 0); err != nil {
		return pkgerrors.Wrap(err, "failed to rewind brightness file")
	}
	n, err := d.f.WriteString(strconv.Itoa(value))
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to write brightness %d", value)
	}
	// A shorter value must not leave trailing bytes from the previous one
	// behind ("0" over "10" reading back as "00"). Sysfs attributes ignore
	// the truncate; regular files need it.
	_ = d.f.Truncate(int64(n))

	d.current = value
	return nil
}

// Close closes the brightness file.
func (d *Sysfs) Close() error {
	return d.f.Close()
}

// readSysfsInt reads a single integer from a sysfs attribute.
// Returns -1 on any failure.
func readSysfsInt(path string) int {
	b, err := os.ReadFile(path)
	if err != nil {
		return -1
	}
	v, err := strconv.Atoi(strings.TrimSpace(string(b)))
	if err != nil {
		return -1
	}
	return v
}
