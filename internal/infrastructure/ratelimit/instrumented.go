package ratelimit

import (
	"context"
	"time"

	domain "mert-chat/internal/domain/ratelimit"
	"mert-chat/internal/infrastructure/metrics"
)

type instrumentedLimiter struct {
	backend string
	next    domain.Limiter
}

// Instrument records every decision of next under the backend label.
func Instrument(backend string, next domain.Limiter) domain.Limiter {
	return &instrumentedLimiter{backend: backend, next: next}
}

func (l *instrumentedLimiter) Allow(ctx context.Context, identity string, now time.Time) (bool, error) {
	allowed, err := l.next.Allow(ctx, identity, now)
	switch {
	case err != nil:
		metrics.RecordRateLimit(l.backend, "error")
	case allowed:
		metrics.RecordRateLimit(l.backend, "allowed")
	default:
		metrics.RecordRateLimit(l.backend, "rejected")
	}
	return allowed, err
}
