package daemon

import (
	"github.com/sirupsen/logrus"

	"github.com/ajmccaus/touch-timeout/pkg/config"
)

// timings are the runtime parameters derived from validated configuration,
// computed once before the event loop starts.
type timings struct {
	dimBrightness int
	dimSeconds    uint32
	offSeconds    uint32
}

// deriveTimings computes the dim brightness and the dim/off timeouts.
//
// The state machine requires dimSeconds < offSeconds. Small off timeouts
// combined with large dim percentages can violate that after the minimum
// clamp; the collision is repaired by halving the dim timeout rather than
// failing startup.
func deriveTimings(cfg *config.Config) timings {
	dimBrightness := cfg.Brightness * cfg.DimPercent / 100
	if dimBrightness < config.MinDimBrightness {
		dimBrightness = config.MinDimBrightness
	}

	offSeconds := uint32(cfg.OffTimeout)
	dimSeconds := uint32(cfg.OffTimeout * cfg.DimPercent / 100)
	if dimSeconds < config.MinDimTimeout {
		dimSeconds = config.MinDimTimeout
	}

	if dimSeconds >= offSeconds {
		repaired := dimSeconds / 2
		if repaired < config.MinDimTimeout {
			repaired = config.MinDimTimeout
		}
		logrus.WithFields(logrus.Fields{
			"dimSeconds": dimSeconds,
			"offSeconds": offSeconds,
			"repaired":   repaired,
		}).Warn("dim timeout would not precede off timeout, halving")
		dimSeconds = repaired
	}

	return timings{
		dimBrightness: dimBrightness,
		dimSeconds:    dimSeconds,
		offSeconds:    offSeconds,
	}
}
