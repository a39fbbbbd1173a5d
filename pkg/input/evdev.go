//go:build linux

package input

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"unsafe"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

const devInputDir = "/dev/input"

// Evdev reads touch activity from a /dev/input event device. A background
// goroutine owns all reads; consumers only see the Activity channel.
type Evdev struct {
	f    *os.File
	ch   chan struct{}
	done chan struct{}
}

var _ Toucher = (*Evdev)(nil)

// Open opens the named device under /dev/input and starts the reader.
func Open(name string) (*Evdev, error) {
	path := filepath.Join(devInputDir, name)

	f, err := os.Open(path)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to open input device %s", path)
	}

	d := &Evdev{
		f:    f,
		ch:   make(chan struct{}, 1),
		done: make(chan struct{}),
	}

	logrus.WithFields(logrus.Fields{
		"path": path,
		"name": d.kernelName(),
	}).Info("input device opened")

	go d.readLoop()

	return d, nil
}

// Activity returns the coalesced touch notification channel.
func (d *Evdev) Activity() <-chan struct{} {
	return d.ch
}

// Close stops the reader goroutine by closing the device. The runtime poller
// unblocks the pending read with ErrClosed.
func (d *Evdev) Close() error {
	close(d.done)
	return d.f.Close()
}

// readLoop drains input_event records and posts a notification whenever at
// least one touch-class event was seen in a read.
func (d *Evdev) readLoop() {
	var parser eventParser
	buf := make([]byte, 24*64)

	for {
		n, err := d.f.Read(buf)
		if err != nil {
			select {
			case <-d.done:
				return
			default:
			}
			if errors.Is(err, fs.ErrClosed) {
				return
			}
			logrus.WithError(err).Warn("input read failed")
			return
		}

		touched := false
		parser.feed(buf[:n], func(eventType, code uint16, value int32) {
			if isTouch(eventType) {
				touched = true
			}
		})

		if touched {
			select {
			case d.ch <- struct{}{}:
			default:
			}
		}
	}
}

// kernelName fetches the device name via the EVIOCGNAME ioctl, for logging
// only. Empty on failure.
func (d *Evdev) kernelName() string {
	var buf [256]byte

	conn, err := d.f.SyscallConn()
	if err != nil {
		return ""
	}

	var errno unix.Errno
	cerr := conn.Control(func(fd uintptr) {
		_, _, errno = unix.Syscall(unix.SYS_IOCTL, fd,
			eviocgName(len(buf)), uintptr(unsafe.Pointer(&buf[0])))
	})
	if cerr != nil || errno != 0 {
		return ""
	}

	for i, b := range buf {
		if b == 0 {
			return string(buf[:i])
		}
	}
	return string(buf[:])
}

// ioctl request encoding, from the kernel's _IOC macro.
const (
	iocNRShift   = 0
	iocTypeShift = 8
	iocSizeShift = 16
	iocDirShift  = 30

	iocRead = 2
)

// eviocgName builds EVIOCGNAME(size) = _IOC(_IOC_READ, 'E', 0x06, size).
func eviocgName(size int) uintptr {
	return uintptr(iocRead<<iocDirShift | int('E')<<iocTypeShift |
		0x06<<iocNRShift | size<<iocSizeShift)
}
