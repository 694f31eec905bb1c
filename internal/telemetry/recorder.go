// Package telemetry records run events for progress rendering and
// post-run diagnostics. It is observability only: nothing here feeds back
// into scan correctness, matcher/filter decisions, or stop conditions.
package telemetry

import (
	"sync"
	"time"
)

// Recorder accumulates RequestEvents and can be drained for display without
// blocking producers for long; the internal buffer is a plain slice guarded
// by a mutex. It holds one event per recorded request until Drain is
// called, so between drains it grows with the number of requests.
type Recorder struct {
	mu     sync.Mutex
	events []RequestEvent
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Record(e RequestEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Drain returns every event recorded so far and resets the internal buffer,
// so repeated calls never return the same event twice.
func (r *Recorder) Drain() []RequestEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	drained := r.events
	r.events = nil
	return drained
}

// Summarize folds a slice of events into a RunSummary. duration and aborted
// are supplied by the caller since the Recorder itself has no notion of
// scan lifecycle.
func Summarize(events []RequestEvent, duration time.Duration, aborted bool) RunSummary {
	s := RunSummary{Aborted: aborted, Duration: duration}
	for _, e := range events {
		s.TotalCompleted++
		s.TotalDispatched++
		if e.Matched {
			s.TotalMatched++
		}
		if e.Suppressed {
			s.TotalSuppressed++
		}
		if e.Cause != CauseNone {
			s.TotalErrored++
		}
	}
	return s
}
