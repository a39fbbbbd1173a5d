// Package telemetry publishes daemon state changes over MQTT.
//
// Telemetry is optional: the daemon only creates a publisher when a broker
// is configured, and publish failures never block or stop the event loop.
package telemetry

import (
	"encoding/json"
	"time"
)

// Topic carries state transition events.
const Topic = "touch-timeout/state"

// TopicSystem carries lifecycle events (startup, shutdown).
const TopicSystem = "touch-timeout/system"

// Event is a display state transition.
type Event struct {
	Timestamp  time.Time
	State      string // FULL, DIMMED, OFF
	Brightness int
	Reason     string // "touch", "wake", "timeout"
}

// SystemEvent is a daemon lifecycle event.
type SystemEvent struct {
	Timestamp time.Time
	Event     string // "STARTUP", "SHUTDOWN"
	Reason    string // signal name on shutdown
}

// Publisher publishes events to a broker.
type Publisher interface {
	// Publish sends a state transition. Failures are reported, never fatal.
	Publish(event Event) error
	// PublishSystem sends a lifecycle event.
	PublishSystem(event SystemEvent) error
	// Close disconnects from the broker.
	Close() error
}

type statePayload struct {
	Timestamp  string `json:"timestamp"`
	State      string `json:"state"`
	Brightness int    `json:"brightness"`
	Reason     string `json:"reason"`
}

type systemPayload struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatPayload creates the JSON payload for a state transition.
func FormatPayload(event Event) ([]byte, error) {
	return json.Marshal(statePayload{
		Timestamp:  event.Timestamp.UTC().Format(time.RFC3339),
		State:      event.State,
		Brightness: event.Brightness,
		Reason:     event.Reason,
	})
}

// FormatSystemPayload creates the JSON payload for a lifecycle event.
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	return json.Marshal(systemPayload{
		Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
		Event:     event.Event,
		Reason:    event.Reason,
	})
}
