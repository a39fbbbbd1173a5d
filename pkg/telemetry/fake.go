package telemetry

import "sync"

// FakePublisher records events for tests. Safe for concurrent use
// since the daemon publishes from its own goroutines.
type FakePublisher struct {
	mu           sync.Mutex
	events       []Event
	systemEvents []SystemEvent
	Err          error
	Closed       bool
}

var _ Publisher = (*FakePublisher)(nil)

func (f *FakePublisher) Publish(event Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	f.events = append(f.events, event)
	return nil
}

func (f *FakePublisher) PublishSystem(event SystemEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	f.systemEvents = append(f.systemEvents, event)
	return nil
}

func (f *FakePublisher) Events() []Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Event(nil), f.events...)
}

func (f *FakePublisher) SystemEvents() []SystemEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]SystemEvent(nil), f.systemEvents...)
}

func (f *FakePublisher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed = true
	return nil
}
