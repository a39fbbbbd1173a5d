// Package display controls a sysfs-exposed backlight.
//
// Writes are cached: SetBrightness only touches the hardware when the target
// differs from the last value this process successfully wrote. On flash-backed
// boards every sysfs write costs wear, and the event loop may legitimately
// request the same value many times over.
package display

// Backlight is the display collaborator seen by the event loop.
type Backlight interface {
	// MaxBrightness returns the hardware brightness ceiling.
	MaxBrightness() int
	// Brightness returns the cached brightness: the last value successfully
	// written by this process, or the value read once at startup.
	Brightness() int
	// SetBrightness writes value to the hardware unless it equals the cache.
	// On failure the cache is left unchanged so a later differing value
	// retries the write.
	SetBrightness(value int) error
	// Close releases the hardware handle.
	Close() error
}
