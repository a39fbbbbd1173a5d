package display

// Fake is a test double that records every hardware write.
type Fake struct {
	// Writes holds each value that reached the "hardware", in order.
	Writes []int
	// SetError, if set, is returned by SetBrightness and the cache is left
	// unchanged, mirroring a failed sysfs write.
	SetError error
	// Closed reports whether Close was called.
	Closed bool

	max     int
	current int
}

var _ Backlight = (*Fake)(nil)

// NewFake creates a fake backlight with the given hardware maximum and
// initial cached brightness (use -1 for "unknown", as after a failed seed
// read).
func NewFake(max, current int) *Fake {
	return &Fake{max: max, current: current}
}

func (f *Fake) MaxBrightness() int { return f.max }

func (f *Fake) Brightness() int { return f.current }

func (f *Fake) SetBrightness(value int) error {
	if value == f.current {
		return nil
	}
	if f.SetError != nil {
		return f.SetError
	}
	f.Writes = append(f.Writes, value)
	f.current = value
	return nil
}

func (f *Fake) Close() error {
	f.Closed = true
	return nil
}
