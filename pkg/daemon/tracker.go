package daemon

import (
	"sync"

	"github.com/ajmccaus/touch-timeout/pkg/powerstate"
	"github.com/ajmccaus/touch-timeout/pkg/types"
)

// tracker holds the daemon state snapshot served by the API. The event loop
// is the only writer; HTTP handlers read concurrently.
type tracker struct {
	mu  sync.RWMutex
	now func() uint32

	state          powerstate.State
	fullBrightness int
	target         int
	cached         int
	lastTouch      uint32

	maxBrightness int
	dimSeconds    uint32
	offSeconds    uint32

	touches int
	dims    int
	offs    int
	wakes   int
}

func newTracker(now func() uint32, fullBrightness, maxBrightness int, t timings) *tracker {
	return &tracker{
		now:            now,
		state:          powerstate.Full,
		fullBrightness: fullBrightness,
		target:         fullBrightness,
		cached:         fullBrightness,
		maxBrightness:  maxBrightness,
		dimSeconds:     t.dimSeconds,
		offSeconds:     t.offSeconds,
	}
}

// recordTouch notes a touch or wake at time now.
func (t *tracker) recordTouch(now uint32, wake bool, target, cached int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lastTouch = now
	t.state = powerstate.Full
	t.target = target
	t.cached = cached
	if wake {
		t.wakes++
	} else {
		t.touches++
	}
}

// recordTransition notes a timeout-driven state change.
func (t *tracker) recordTransition(state powerstate.State, target, cached int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = state
	t.target = target
	t.cached = cached
	switch state {
	case powerstate.Dimmed:
		t.dims++
	case powerstate.Off:
		t.offs++
	}
}

// setFullBrightness notes a runtime change of the FULL-state target.
func (t *tracker) setFullBrightness(v, target, cached int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fullBrightness = v
	t.target = target
	t.cached = cached
}

// FullBrightness returns the current FULL-state target.
func (t *tracker) FullBrightness() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.fullBrightness
}

// Status returns a point-in-time snapshot.
func (t *tracker) Status() types.Status {
	t.mu.RLock()
	defer t.mu.RUnlock()
	now := t.now()
	return types.Status{
		State:             t.state.String(),
		Brightness:        t.target,
		CachedBrightness:  t.cached,
		MaxBrightness:     t.maxBrightness,
		IdleSeconds:       now - t.lastTouch,
		UptimeSeconds:     now,
		DimTimeoutSeconds: t.dimSeconds,
		OffTimeoutSeconds: t.offSeconds,
		Touches:           t.touches,
		Dims:              t.dims,
		Offs:              t.offs,
		Wakes:             t.wakes,
	}
}
