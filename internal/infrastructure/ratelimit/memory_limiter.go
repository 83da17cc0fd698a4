package ratelimit

import (
	"context"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru"

	domain "mert-chat/internal/domain/ratelimit"
)

const DefaultMemoryMaxKeys = 100000

// MemoryLimiter keeps per-identity windows in a bounded LRU.
// State is process-local and lost on restart.
type MemoryLimiter struct {
	mu      sync.Mutex
	policy  domain.Policy
	windows *lru.Cache
}

var _ domain.Limiter = (*MemoryLimiter)(nil)

func NewMemoryLimiter(policy domain.Policy, maxKeys int) (*MemoryLimiter, error) {
	if maxKeys <= 0 {
		maxKeys = DefaultMemoryMaxKeys
	}
	cache, err := lru.New(maxKeys)
	if err != nil {
		return nil, err
	}
	return &MemoryLimiter{policy: policy, windows: cache}, nil
}

func (l *MemoryLimiter) Allow(_ context.Context, identity string, now time.Time) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var w domain.Window
	if stored, ok := l.windows.Get(identity); ok {
		w = stored.(domain.Window)
	}
	allowed := l.policy.Apply(&w, now)
	l.windows.Add(identity, w)
	return allowed, nil
}

// Sweep drops expired windows and returns how many identities remain.
func (l *MemoryLimiter) Sweep(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, key := range l.windows.Keys() {
		stored, ok := l.windows.Peek(key)
		if !ok {
			continue
		}
		if stored.(domain.Window).Expired(now) {
			l.windows.Remove(key)
		}
	}
	return l.windows.Len()
}

// Len is the number of tracked identities.
func (l *MemoryLimiter) Len() int {
	return l.windows.Len()
}
