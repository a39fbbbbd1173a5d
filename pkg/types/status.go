// Package types holds the wire types shared by the daemon API and its
// clients.
package types

// Power tier names as they appear on the wire.
const (
	StateFull   = "FULL"
	StateDimmed = "DIMMED"
	StateOff    = "OFF"
)

// Status is the daemon state snapshot served by GET /status.
type Status struct {
	// State is the current power tier: FULL, DIMMED, or OFF.
	State string `json:"state"`
	// Brightness is the target brightness for the current state.
	Brightness int `json:"brightness"`
	// CachedBrightness is the last value written to the backlight.
	CachedBrightness int `json:"cachedBrightness"`
	// MaxBrightness is the hardware ceiling.
	MaxBrightness int `json:"maxBrightness"`
	// IdleSeconds is the time since the last touch or wake.
	IdleSeconds uint32 `json:"idleSeconds"`
	// UptimeSeconds is the daemon uptime.
	UptimeSeconds uint32 `json:"uptimeSeconds"`
	// DimTimeoutSeconds and OffTimeoutSeconds are the derived timeouts in
	// effect, after clamping and repair.
	DimTimeoutSeconds uint32 `json:"dimTimeoutSeconds"`
	OffTimeoutSeconds uint32 `json:"offTimeoutSeconds"`
	// Counts since startup.
	Touches int `json:"touches"`
	Dims    int `json:"dims"`
	Offs    int `json:"offs"`
	Wakes   int `json:"wakes"`
}
