// Package powerstate implements the display power state machine.
//
// The machine is pure logic: it performs no I/O and never reads a clock.
// Every operation takes the current monotonic time in seconds (uint32) as an
// explicit parameter, so arbitrary timestamp sequences can be driven through
// it in tests, including timestamps near the wraparound boundary. Idle time
// is computed with unsigned subtraction, which stays correct when the
// timestamp wraps.
package powerstate

// State is the display power tier, not a literal brightness number.
type State int

const (
	// Full brightness, active use.
	Full State = iota
	// Dimmed, user inactive.
	Dimmed
	// Off, power saving. Exited only by a touch.
	Off
)

func (s State) String() string {
	switch s {
	case Full:
		return "FULL"
	case Dimmed:
		return "DIMMED"
	case Off:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

// Machine holds the current power tier and the timestamp of the last touch.
//
// It is not safe for concurrent use; the event loop is its only caller.
type Machine struct {
	state          State
	lastTouch      uint32
	brightnessFull int
	brightnessDim  int
	dimTimeout     uint32
	offTimeout     uint32
}

// New returns a machine in the Full state with lastTouch zero. Callers must
// Touch() with a real timestamp before any Timeout/NextTimeout call, or the
// idle arithmetic is meaningless.
//
// The caller guarantees dimTimeout < offTimeout; the machine does not check
// it. See deriveTimings in pkg/daemon for where that invariant is repaired.
func New(brightnessFull, brightnessDim int, dimTimeout, offTimeout uint32) *Machine {
	return &Machine{
		state:          Full,
		brightnessFull: brightnessFull,
		brightnessDim:  brightnessDim,
		dimTimeout:     dimTimeout,
		offTimeout:     offTimeout,
	}
}

// Touch records user activity at time now and restores Full.
//
// The returned bool reports whether the brightness changed: true with the
// full brightness when coming out of Dimmed/Off, false when already Full.
// The idle clock is reset either way.
func (m *Machine) Touch(now uint32) (int, bool) {
	m.lastTouch = now

	if m.state != Full {
		m.state = Full
		return m.brightnessFull, true
	}

	return 0, false
}

// Timeout checks whether the idle time at now crosses a transition boundary.
//
// The two rules are independent guards, not a priority chain; states only
// move forward, so at most one fires per call. Off is a sink: Timeout never
// changes it.
func (m *Machine) Timeout(now uint32) (int, bool) {
	idle := now - m.lastTouch

	if m.state == Full && idle >= m.dimTimeout {
		m.state = Dimmed
		return m.brightnessDim, true
	}

	if m.state == Dimmed && idle >= m.offTimeout {
		m.state = Off
		return 0, true
	}

	return 0, false
}

// NextTimeout returns how many seconds the caller should wait before calling
// Timeout again to catch the next transition promptly, clamped to 0 when the
// transition is already due. In Off there is no timeout (false): the caller
// should block indefinitely for a touch.
func (m *Machine) NextTimeout(now uint32) (uint32, bool) {
	idle := now - m.lastTouch

	switch m.state {
	case Full:
		if idle >= m.dimTimeout {
			return 0, true
		}
		return m.dimTimeout - idle, true
	case Dimmed:
		if idle >= m.offTimeout {
			return 0, true
		}
		return m.offTimeout - idle, true
	default:
		return 0, false
	}
}

// Brightness returns the brightness value for the current state, regardless
// of what was last written to hardware.
func (m *Machine) Brightness() int {
	switch m.state {
	case Full:
		return m.brightnessFull
	case Dimmed:
		return m.brightnessDim
	default:
		return 0
	}
}

// Current returns the current power tier.
func (m *Machine) Current() State {
	return m.state
}

// SetBrightnessFull replaces the Full-state target brightness. The new value
// takes effect on the next transition to Full; callers that want it applied
// immediately while Full must write it themselves.
func (m *Machine) SetBrightnessFull(v int) {
	m.brightnessFull = v
}
