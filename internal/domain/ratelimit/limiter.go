package ratelimit

import (
	"context"
	"time"
)

// Limiter decides whether identity may spend one unit of quota at now.
// Implementations must be safe for concurrent use.
type Limiter interface {
	Allow(ctx context.Context, identity string, now time.Time) (bool, error)
}

// Policy is a fixed-window quota: Limit accepted attempts per Window.
type Policy struct {
	Limit  int
	Window time.Duration
}

// DefaultPolicy allows 10 messages per minute.
var DefaultPolicy = Policy{Limit: 10, Window: 60 * time.Second}

// Window is the per-identity counter state of a fixed window.
type Window struct {
	Count   int
	ResetAt time.Time
}

// Apply advances w for an attempt at now and reports whether it is accepted.
// A missing or expired window restarts at zero with ResetAt = now + Window;
// a full window rejects without counting.
func (p Policy) Apply(w *Window, now time.Time) bool {
	if w.ResetAt.IsZero() || now.After(w.ResetAt) {
		w.Count = 0
		w.ResetAt = now.Add(p.Window)
	}
	if w.Count >= p.Limit {
		return false
	}
	w.Count++
	return true
}

// Expired reports whether the window no longer affects decisions at now.
func (w Window) Expired(now time.Time) bool {
	return now.After(w.ResetAt)
}

// LimiterFunc adapts a function to Limiter.
type LimiterFunc func(ctx context.Context, identity string, now time.Time) (bool, error)

func (f LimiterFunc) Allow(ctx context.Context, identity string, now time.Time) (bool, error) {
	return f(ctx, identity, now)
}
