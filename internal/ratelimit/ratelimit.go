// Package ratelimit wraps golang.org/x/time/rate for throttling
// progress output: frequent events are dropped rather than delayed.
package ratelimit

import (
	"golang.org/x/time/rate"
)

type Limiter struct {
	limiter *rate.Limiter
}

// New builds a limiter allowing eventsPerSecond events with a burst of
// one. Zero or negative means unlimited.
func New(eventsPerSecond float64) *Limiter {
	if eventsPerSecond <= 0 {
		return &Limiter{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Limiter{limiter: rate.NewLimiter(rate.Limit(eventsPerSecond), 1)}
}

// Allow reports whether an event may fire now. It never blocks; a
// denied event is simply skipped.
func (l *Limiter) Allow() bool {
	return l.limiter.Allow()
}
