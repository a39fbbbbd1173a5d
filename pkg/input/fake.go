package input

// Fake is a test double whose Activity channel is driven by the test.
type Fake struct {
	Ch     chan struct{}
	Closed bool
}

var _ Toucher = (*Fake)(nil)

// NewFake creates a fake toucher with the same one-slot buffer as the real
// device.
func NewFake() *Fake {
	return &Fake{Ch: make(chan struct{}, 1)}
}

// Touch simulates touch activity: a non-blocking send, coalescing like the
// evdev reader does.
func (f *Fake) Touch() {
	select {
	case f.Ch <- struct{}{}:
	default:
	}
}

func (f *Fake) Activity() <-chan struct{} { return f.Ch }

func (f *Fake) Close() error {
	f.Closed = true
	return nil
}
