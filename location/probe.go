package location

import (
	"context"
	"time"

	"github.com/lifeline-sos/lifeline/logger"
)

// DEFAULT_TIMEOUT bounds how long a send will wait on the sensor.
const DEFAULT_TIMEOUT = 10 * time.Second

var logg = logger.NewLogger()

// Probe issues one bounded position request per call. Every failure mode
// (no sensor, denied, unavailable, timeout) collapses into Unknown; the
// caller never sees an error, because location is best-effort.
type Probe struct {
	sensor  Sensor
	timeout time.Duration
}

func NewProbe(sensor Sensor, timeout time.Duration) *Probe {
	if timeout <= 0 {
		timeout = DEFAULT_TIMEOUT
	}

	return &Probe{sensor: sensor, timeout: timeout}
}

// AcquireOnce requests the current position once. It always returns within
// the configured timeout: the sensor runs in its own goroutine, so even a
// sensor that ignores its context cannot hold up the send.
func (p *Probe) AcquireOnce(ctx context.Context) Fix {
	if p.sensor == nil {
		return Unknown
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	type result struct {
		coordinates Coordinates
		err         error
	}

	resultCh := make(chan result, 1)
	go func() {
		coordinates, err := p.sensor.CurrentPosition(ctx)
		resultCh <- result{coordinates: coordinates, err: err}
	}()

	select {
	case res := <-resultCh:
		if res.err != nil {
			logg.Infof("position unavailable: %v", res.err)
			return Unknown
		}
		return Fix{Coordinates: res.coordinates, Known: true}
	case <-ctx.Done():
		logg.Infof("position request timed out after %v", p.timeout)
		return Unknown
	}
}
