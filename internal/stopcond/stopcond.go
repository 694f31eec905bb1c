// Package stopcond implements StopConditions: a global, cooperative abort
// driven purely by observed request outcomes. The Dispatcher checks the
// flag between admissions; once set, later assignments are dropped, never
// aborted mid-flight.
package stopcond

import "sync/atomic"

// saturationMinSamples and saturationThreshold are the fixed constants the
// 403-saturation rule is evaluated against.
const (
	saturationMinSamples = 10
	saturationThreshold  = 0.95
)

// Config toggles which triggers are active. StopOnError covers both "stop
// on any error" and "stop on spurious errors": the two fire on the same
// condition, so one toggle suffices.
type Config struct {
	StopOnError         bool
	StopOn403Saturation bool
}

// Observer accumulates outcomes and exposes the single abort flag the
// Dispatcher polls. Safe for concurrent use.
type Observer struct {
	cfg Config

	aborted     atomic.Bool
	seen        atomic.Int64
	forbidden   atomic.Int64
}

func New(cfg Config) *Observer {
	return &Observer{cfg: cfg}
}

// Observe records one request's outcome. isTransportError marks a connect/
// timeout/malformed-response failure; statusCode is meaningless when
// isTransportError is true.
func (o *Observer) Observe(statusCode int, isTransportError bool) {
	if isTransportError {
		if o.cfg.StopOnError {
			o.aborted.Store(true)
		}
		return
	}

	seen := o.seen.Add(1)
	var forbidden int64
	if statusCode == 403 {
		forbidden = o.forbidden.Add(1)
	} else {
		forbidden = o.forbidden.Load()
	}

	if o.cfg.StopOn403Saturation && seen >= saturationMinSamples {
		if float64(forbidden)/float64(seen) > saturationThreshold {
			o.aborted.Store(true)
		}
	}
}

// Aborted reports whether a trigger has fired. Once true it never reverts.
func (o *Observer) Aborted() bool {
	return o.aborted.Load()
}
