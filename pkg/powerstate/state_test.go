package powerstate

import (
	"math"
	"testing"
)

func newTestMachine() *Machine {
	// brightnessFull=100, brightnessDim=10, dim after 5s, off after 10s
	return New(100, 10, 5, 10)
}

func TestDimThenOffThenTouch(t *testing.T) {
	m := newTestMachine()
	m.Touch(0)

	b, changed := m.Timeout(5)
	if !changed || b != 10 {
		t.Fatalf("Timeout(5) = (%d, %t), want (10, true)", b, changed)
	}
	if m.Current() != Dimmed {
		t.Fatalf("state after dim = %s, want DIMMED", m.Current())
	}

	b, changed = m.Timeout(10)
	if !changed || b != 0 {
		t.Fatalf("Timeout(10) = (%d, %t), want (0, true)", b, changed)
	}
	if m.Current() != Off {
		t.Fatalf("state after off = %s, want OFF", m.Current())
	}

	b, changed = m.Timeout(11)
	if changed {
		t.Fatalf("Timeout(11) in OFF changed state, OFF must be a sink")
	}

	b, changed = m.Touch(11)
	if !changed || b != 100 {
		t.Fatalf("Touch(11) = (%d, %t), want (100, true)", b, changed)
	}
	if m.Current() != Full {
		t.Fatalf("state after touch = %s, want FULL", m.Current())
	}
}

func TestTimeoutBeforeDeadlineIsNoChange(t *testing.T) {
	m := newTestMachine()
	m.Touch(0)

	if _, changed := m.Timeout(4); changed {
		t.Fatal("Timeout(4) changed state with idle=4 < dimTimeout=5")
	}
	if m.Current() != Full {
		t.Fatalf("state = %s, want FULL", m.Current())
	}
}

func TestTouchResetsIdleClock(t *testing.T) {
	m := newTestMachine()
	m.Touch(0)

	if b, changed := m.Timeout(6); !changed || b != 10 {
		t.Fatalf("Timeout(6) = (%d, %t), want (10, true)", b, changed)
	}

	if b, changed := m.Touch(7); !changed || b != 100 {
		t.Fatalf("Touch(7) = (%d, %t), want (100, true)", b, changed)
	}

	remaining, ok := m.NextTimeout(8)
	if !ok || remaining != 4 {
		t.Fatalf("NextTimeout(8) = (%d, %t), want (4, true)", remaining, ok)
	}
}

func TestTouchIsIdempotentForState(t *testing.T) {
	m := newTestMachine()

	m.Touch(1)
	if b, changed := m.Touch(2); changed {
		t.Fatalf("second Touch reported change (%d)", b)
	}
	if m.Current() != Full {
		t.Fatalf("state = %s, want FULL", m.Current())
	}
	// timestamp must still have moved: no dim at t=6 (idle=4), dim at t=7
	if _, changed := m.Timeout(6); changed {
		t.Fatal("Timeout(6) fired, touch did not reset the idle clock")
	}
	if _, changed := m.Timeout(7); !changed {
		t.Fatal("Timeout(7) did not fire, idle clock off by more than reset")
	}
}

func TestStatesOnlyMoveForward(t *testing.T) {
	m := newTestMachine()
	m.Touch(0)

	prev := m.Current()
	for now := uint32(1); now <= 30; now++ {
		m.Timeout(now)
		cur := m.Current()
		if cur < prev {
			t.Fatalf("state moved backwards: %s -> %s at now=%d", prev, cur, now)
		}
		prev = cur
	}
	if prev != Off {
		t.Fatalf("final state = %s, want OFF", prev)
	}
}

func TestNextTimeout(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(m *Machine)
		now       uint32
		remaining uint32
		ok        bool
	}{
		{
			name:      "full fresh",
			setup:     func(m *Machine) { m.Touch(0) },
			now:       0,
			remaining: 5,
			ok:        true,
		},
		{
			name:      "full partially idle",
			setup:     func(m *Machine) { m.Touch(10) },
			now:       12,
			remaining: 3,
			ok:        true,
		},
		{
			name:      "full already due",
			setup:     func(m *Machine) { m.Touch(0) },
			now:       9,
			remaining: 0,
			ok:        true,
		},
		{
			name: "dimmed",
			setup: func(m *Machine) {
				m.Touch(0)
				m.Timeout(5)
			},
			now:       7,
			remaining: 3,
			ok:        true,
		},
		{
			name: "off has no timeout",
			setup: func(m *Machine) {
				m.Touch(0)
				m.Timeout(5)
				m.Timeout(10)
			},
			now: 100,
			ok:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMachine()
			tt.setup(m)
			remaining, ok := m.NextTimeout(tt.now)
			if ok != tt.ok || remaining != tt.remaining {
				t.Errorf("NextTimeout(%d) = (%d, %t), want (%d, %t)",
					tt.now, remaining, ok, tt.remaining, tt.ok)
			}
		})
	}
}

func TestWraparound(t *testing.T) {
	m := newTestMachine()

	last := uint32(math.MaxUint32 - 1) // 0xFFFFFFFE
	m.Touch(last)

	// now has wrapped past zero: elapsed is 2 seconds
	remaining, ok := m.NextTimeout(last + 2)
	if !ok || remaining != 3 {
		t.Fatalf("NextTimeout across wrap = (%d, %t), want (3, true)", remaining, ok)
	}

	// no transition yet
	if _, changed := m.Timeout(last + 4); changed {
		t.Fatal("Timeout fired with idle=4 across wrap")
	}

	// dim exactly at the boundary
	b, changed := m.Timeout(last + 5)
	if !changed || b != 10 {
		t.Fatalf("Timeout at wrap+5 = (%d, %t), want (10, true)", b, changed)
	}

	// then off
	b, changed = m.Timeout(last + 10)
	if !changed || b != 0 {
		t.Fatalf("Timeout at wrap+10 = (%d, %t), want (0, true)", b, changed)
	}
}

func TestBrightnessFollowsState(t *testing.T) {
	m := newTestMachine()
	m.Touch(0)

	if got := m.Brightness(); got != 100 {
		t.Fatalf("Brightness() in FULL = %d, want 100", got)
	}
	m.Timeout(5)
	if got := m.Brightness(); got != 10 {
		t.Fatalf("Brightness() in DIMMED = %d, want 10", got)
	}
	m.Timeout(10)
	if got := m.Brightness(); got != 0 {
		t.Fatalf("Brightness() in OFF = %d, want 0", got)
	}
}

func TestSetBrightnessFull(t *testing.T) {
	m := newTestMachine()
	m.Touch(0)
	m.SetBrightnessFull(200)

	if got := m.Brightness(); got != 200 {
		t.Fatalf("Brightness() after SetBrightnessFull = %d, want 200", got)
	}

	m.Timeout(5)
	m.Timeout(10)
	b, changed := m.Touch(11)
	if !changed || b != 200 {
		t.Fatalf("Touch after SetBrightnessFull = (%d, %t), want (200, true)", b, changed)
	}
}

func TestStateString(t *testing.T) {
	if Full.String() != "FULL" || Dimmed.String() != "DIMMED" || Off.String() != "OFF" {
		t.Errorf("unexpected State strings: %s %s %s", Full, Dimmed, Off)
	}
}
