package ratelimit

import (
	"fmt"

	"github.com/redis/go-redis/v9"

	"mert-chat/internal/config"
	domain "mert-chat/internal/domain/ratelimit"
)

// Selection is the limiter chosen by configuration. Memory is set only for
// the memory backend so the sweeper can prune it.
type Selection struct {
	Limiter domain.Limiter
	Memory  *MemoryLimiter
}

// New selects the limiter backend named by RATE_LIMIT_BACKEND.
func New(cfg *config.Config, client redis.UniversalClient) (*Selection, error) {
	policy := domain.Policy{Limit: cfg.RateLimitRequests, Window: cfg.RateLimitWindow}

	switch cfg.RateLimitBackend {
	case config.RateLimitBackendRedis:
		if client == nil {
			return nil, fmt.Errorf("redis rate limit backend requires a redis client")
		}
		return &Selection{Limiter: Instrument(config.RateLimitBackendRedis, NewRedisLimiter(client, policy))}, nil
	case config.RateLimitBackendMemory, "":
		memory, err := NewMemoryLimiter(policy, cfg.RateLimitMemoryMaxKeys)
		if err != nil {
			return nil, err
		}
		return &Selection{Limiter: Instrument(config.RateLimitBackendMemory, memory), Memory: memory}, nil
	default:
		return nil, fmt.Errorf("unknown rate limit backend %q", cfg.RateLimitBackend)
	}
}
