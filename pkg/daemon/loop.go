package daemon

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ajmccaus/touch-timeout/pkg/display"
	"github.com/ajmccaus/touch-timeout/pkg/powerstate"
	"github.com/ajmccaus/touch-timeout/pkg/telemetry"
)

// eventLoop is the single-goroutine core of the daemon. It owns the state
// machine and the backlight; everything else reaches it through channels.
type eventLoop struct {
	machine   *powerstate.Machine
	backlight display.Backlight
	tracker   *tracker
	publisher telemetry.Publisher // nil when telemetry is disabled

	// now returns monotonic seconds since daemon start.
	now func() uint32

	activity   <-chan struct{}  // coalesced touch events from the input device
	wake       <-chan struct{}  // SIGUSR1 or POST /wake, treated as a touch
	brightness <-chan int       // runtime FULL-brightness changes from the API
	quit       <-chan os.Signal // SIGINT/SIGTERM

	// watchdog pings systemd after every wakeup; nil disables it.
	watchdog func()
	// watchdogTick bounds the wait in OFF, where the state machine has no
	// timeout and the loop would otherwise block forever between pings.
	watchdogTick <-chan time.Time
}

// run drives the wait/dispatch cycle until a termination signal arrives,
// returning the signal name. The caller has already written the initial full
// brightness.
func (l *eventLoop) run() string {
	// Establish the idle baseline. The machine starts at FULL with a zero
	// timestamp; without this the first idle computation is meaningless.
	l.machine.Touch(l.now())

	for {
		var timer *time.Timer
		var timerC <-chan time.Time
		if remaining, ok := l.machine.NextTimeout(l.now()); ok {
			timer = time.NewTimer(time.Duration(remaining) * time.Second)
			timerC = timer.C
		}
		// In OFF timerC stays nil and the select blocks until a touch,
		// wake, or signal.

		select {
		case sig := <-l.quit:
			if timer != nil {
				timer.Stop()
			}
			return sig.String()

		case <-l.activity:
			l.touch(false)

		case <-l.wake:
			l.touch(true)

		case v := <-l.brightness:
			l.setFullBrightness(v)

		case <-timerC:
			l.onTimer()

		case <-l.watchdogTick:
		}

		if timer != nil {
			timer.Stop()
		}
		if l.watchdog != nil {
			l.watchdog()
		}
	}
}

// onTimer handles a timer expiry. A touch observed in the same wakeup must
// win, matching Touch's unconditional override of DIMMED/OFF, so pending
// activity is consumed before the timeout check runs.
func (l *eventLoop) onTimer() {
	select {
	case <-l.activity:
		l.touch(false)
	default:
		l.timeout()
	}
}

func (l *eventLoop) touch(wake bool) {
	now := l.now()
	reason := "touch"
	if wake {
		reason = "wake"
	}

	if b, changed := l.machine.Touch(now); changed {
		l.apply(b, reason)
	}
	l.tracker.recordTouch(now, wake, l.machine.Brightness(), l.backlight.Brightness())
}

func (l *eventLoop) timeout() {
	b, changed := l.machine.Timeout(l.now())
	if !changed {
		return
	}

	state := l.machine.Current()
	logrus.WithFields(logrus.Fields{
		"state":      state.String(),
		"brightness": b,
	}).Debug("idle transition")

	l.apply(b, "timeout")
	l.tracker.recordTransition(state, b, l.backlight.Brightness())
}

func (l *eventLoop) setFullBrightness(v int) {
	l.machine.SetBrightnessFull(v)
	if l.machine.Current() == powerstate.Full {
		l.apply(v, "brightness")
	}
	l.tracker.setFullBrightness(v, l.machine.Brightness(), l.backlight.Brightness())
	logrus.WithField("brightness", v).Info("full brightness target changed")
}

// apply writes a brightness change to the hardware. The backlight suppresses
// writes equal to its cache; on failure the cache stays put, so the next
// differing target retries instead of looping on the same value.
func (l *eventLoop) apply(b int, reason string) {
	if err := l.backlight.SetBrightness(b); err != nil {
		logrus.WithError(err).WithField("brightness", b).Error("brightness write failed")
	}

	if l.publisher != nil {
		ev := telemetry.Event{
			Timestamp:  time.Now(),
			State:      l.machine.Current().String(),
			Brightness: b,
			Reason:     reason,
		}
		// Telemetry must never stall the loop; a slow broker is the
		// publisher's problem.
		go func() {
			if err := l.publisher.Publish(ev); err != nil {
				logrus.WithError(err).Warn("telemetry publish failed")
			}
		}()
	}
}
