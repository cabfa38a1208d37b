package util

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter spaces out expensive requests such as full rescans.
type Limiter struct {
	inner *rate.Limiter
}

// NewLimiter allows one event per interval with the given burst. A zero
// interval disables limiting.
func NewLimiter(interval time.Duration, burst int) *Limiter {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	if burst < 1 {
		burst = 1
	}
	return &Limiter{inner: rate.NewLimiter(limit, burst)}
}

// Allow reports whether an event may happen now and consumes a token if so.
func (l *Limiter) Allow() bool {
	return l.inner.Allow()
}

// Wait blocks until an event may happen or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.inner.Wait(ctx)
}
