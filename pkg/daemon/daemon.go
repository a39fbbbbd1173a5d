// Package daemon runs the touch-timeout event loop and its control API.
package daemon

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sd "github.com/coreos/go-systemd/v22/daemon"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ajmccaus/touch-timeout/pkg/config"
	"github.com/ajmccaus/touch-timeout/pkg/display"
	"github.com/ajmccaus/touch-timeout/pkg/input"
	"github.com/ajmccaus/touch-timeout/pkg/powerstate"
	"github.com/ajmccaus/touch-timeout/pkg/telemetry"
)

// Run starts the daemon and blocks until a termination signal. Any error it
// returns is a startup failure: an unopenable device or a failed first
// brightness write. Once the loop is running, hardware errors are logged and
// survived, never returned.
func Run(cfg *config.Config, socketPath string) error {
	backlight, err := display.Open(cfg.Backlight)
	if err != nil {
		return pkgerrors.Wrap(err, "failed to open backlight")
	}
	defer func() {
		if err := backlight.Close(); err != nil {
			logrus.Errorf("failed to close backlight: %v", err)
		}
	}()

	if err := cfg.Validate(backlight.MaxBrightness()); err != nil {
		return pkgerrors.Wrap(err, "invalid configuration")
	}
	t := deriveTimings(cfg)

	touch, err := input.Open(cfg.Device)
	if err != nil {
		return pkgerrors.Wrap(err, "failed to open input device")
	}
	defer func() {
		if err := touch.Close(); err != nil {
			logrus.Errorf("failed to close input device: %v", err)
		}
	}()

	// The very first write must succeed: a daemon that cannot control the
	// backlight at all is useless, and the supervisor should see it fail.
	if err := backlight.SetBrightness(cfg.Brightness); err != nil {
		return pkgerrors.Wrap(err, "initial brightness write failed")
	}

	start := time.Now()
	now := func() uint32 {
		return uint32(time.Since(start) / time.Second)
	}

	machine := powerstate.New(cfg.Brightness, t.dimBrightness, t.dimSeconds, t.offSeconds)
	track := newTracker(now, cfg.Brightness, backlight.MaxBrightness(), t)

	var publisher telemetry.Publisher
	if cfg.Broker != "" {
		p, err := telemetry.NewMQTTPublisher(cfg.Broker)
		if err != nil {
			// Telemetry is a convenience; the display must keep working
			// without the broker.
			logrus.WithError(err).Warn("telemetry disabled, broker unreachable")
		} else {
			publisher = p
			defer func() {
				if err := p.Close(); err != nil {
					logrus.Errorf("failed to close telemetry publisher: %v", err)
				}
			}()
			publishSystem(publisher, "STARTUP", "")
		}
	}

	wakeCh := make(chan struct{}, 1)
	brightnessCh := make(chan int, 1)

	api := &apiServer{
		cfg:        cfg,
		tracker:    track,
		wake:       wakeCh,
		brightness: brightnessCh,
	}
	srv := &http.Server{Handler: api.routes()}

	// A stale socket from an unclean shutdown would make Listen fail.
	_ = os.Remove(socketPath)
	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to listen on %s", socketPath)
	}
	go func() {
		logrus.Infof("control api listening on %s", listener.Addr())
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Errorf("control api server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// SIGUSR1 is the external wake signal: full-brightness restore without
	// physical input, e.g. from a doorbell integration.
	wakeSig := make(chan os.Signal, 1)
	signal.Notify(wakeSig, syscall.SIGUSR1)
	go func() {
		for range wakeSig {
			select {
			case wakeCh <- struct{}{}:
			default:
			}
		}
	}()

	loop := &eventLoop{
		machine:    machine,
		backlight:  backlight,
		tracker:    track,
		publisher:  publisher,
		now:        now,
		activity:   touch.Activity(),
		wake:       wakeCh,
		brightness: brightnessCh,
		quit:       quit,
	}

	if interval, err := sd.SdWatchdogEnabled(false); err == nil && interval > 0 {
		logrus.WithField("interval", interval).Info("systemd watchdog enabled")
		ticker := time.NewTicker(interval / 2)
		defer ticker.Stop()
		loop.watchdogTick = ticker.C
		loop.watchdog = func() {
			_, _ = sd.SdNotify(false, sd.SdNotifyWatchdog)
		}
	}

	_, _ = sd.SdNotify(false, sd.SdNotifyReady)
	logrus.WithFields(logrus.Fields{
		"brightness":    cfg.Brightness,
		"dimBrightness": t.dimBrightness,
		"dimSeconds":    t.dimSeconds,
		"offSeconds":    t.offSeconds,
		"backlight":     cfg.Backlight,
		"device":        cfg.Device,
	}).Info("service ready")

	reason := loop.run()
	logrus.WithField("signal", reason).Info("shutting down")
	_, _ = sd.SdNotify(false, sd.SdNotifyStopping)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("failed to shut down control api: %v", err)
	}
	cancel()

	// Leave the screen in a predictable, visible state rather than stuck
	// dim or off. The tracker's target follows runtime brightness changes,
	// which the config value does not. Best effort: a failure here must not
	// change the exit code.
	if err := backlight.SetBrightness(track.FullBrightness()); err != nil {
		logrus.Errorf("failed to restore brightness on shutdown: %v", err)
	}

	if publisher != nil {
		publishSystem(publisher, "SHUTDOWN", reason)
	}

	return nil
}

func publishSystem(p telemetry.Publisher, event, reason string) {
	err := p.PublishSystem(telemetry.SystemEvent{
		Timestamp: time.Now(),
		Event:     event,
		Reason:    reason,
	})
	if err != nil {
		logrus.WithError(err).Warnf("failed to publish %s event", event)
	}
}
