// Package input watches a Linux evdev touch device for activity.
//
// The device delivers raw input_event records; all this daemon needs to know
// is "the user touched the screen", so events are coalesced into notifications
// on a one-slot channel. A burst of events between two loop wakeups collapses
// into a single notification, which is the draining behavior the event loop
// wants.
package input

// Toucher is the input collaborator seen by the event loop.
type Toucher interface {
	// Activity returns a channel that receives a value whenever touch
	// activity is observed. The channel has a one-slot buffer; bursts
	// coalesce.
	Activity() <-chan struct{}
	// Close stops the reader and releases the device.
	Close() error
}

// Event type codes from linux/input-event-codes.h. Key presses and absolute
// axis movements both count as touch activity on a touchscreen; sync and
// misc events do not.
const (
	evSyn = 0x00
	evKey = 0x01
	evAbs = 0x03
)

// isTouch reports whether an event type represents user contact.
func isTouch(eventType uint16) bool {
	return eventType == evKey || eventType == evAbs
}
