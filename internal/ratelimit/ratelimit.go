// Package ratelimit implements the two-dimensional RateLimiter: a
// concurrency permit pool of fixed width, plus an optional requests-per-
// second throttle built on golang.org/x/time/rate's token bucket, which
// gives the "admissions over any window >=1s <= R*seconds + threads"
// guarantee for free instead of hand-rolling a last-admission-timestamp
// shortfall sleep.
package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter bounds both how many requests may be in flight at once
// (threads) and, optionally, how fast new ones may be admitted (rate).
type Limiter struct {
	permits chan struct{}
	rps     *rate.Limiter
}

// New constructs a Limiter allowing up to threads concurrent admissions. If
// rps > 0, admissions are additionally throttled to rps requests/second with
// a burst equal to threads; rps <= 0 means unlimited rate.
func New(threads int, rps float64) *Limiter {
	if threads < 1 {
		threads = 1
	}

	l := &Limiter{
		permits: make(chan struct{}, threads),
	}
	if rps > 0 {
		l.rps = rate.NewLimiter(rate.Limit(rps), threads)
	}
	return l
}

// Guard is held for the duration of one admitted request; Release must be
// called exactly once to return the concurrency permit.
type Guard struct {
	permits chan struct{}
}

func (g Guard) Release() {
	<-g.permits
}

// Acquire blocks until a concurrency permit is free and, if a rate is
// configured, until the next admission is due. Returns the held permit's
// Guard, or an error if ctx is cancelled while waiting.
func (l *Limiter) Acquire(ctx context.Context) (Guard, error) {
	select {
	case l.permits <- struct{}{}:
	case <-ctx.Done():
		return Guard{}, ctx.Err()
	}

	if l.rps != nil {
		if err := l.rps.Wait(ctx); err != nil {
			<-l.permits
			return Guard{}, err
		}
	}

	return Guard{permits: l.permits}, nil
}

// InFlight reports the number of permits currently held.
func (l *Limiter) InFlight() int {
	return len(l.permits)
}
