//go:build !linux

package input

import "errors"

// Evdev is only available on Linux.
type Evdev struct{}

// Open returns an error on non-Linux platforms.
func Open(name string) (*Evdev, error) {
	return nil, errors.New("input: evdev requires Linux")
}

func (d *Evdev) Activity() <-chan struct{} { return nil }

func (d *Evdev) Close() error { return nil }
