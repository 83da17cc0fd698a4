package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	domain "mert-chat/internal/domain/ratelimit"
)

const redisKeyPrefix = "mert-chat:ratelimit:"

// fixedWindowScript rejects without counting when the window is full and
// starts the window expiry on the first accepted attempt.
var fixedWindowScript = redis.NewScript(`
local current = tonumber(redis.call("GET", KEYS[1]) or "0")
if current >= tonumber(ARGV[1]) then
  return 0
end
current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 1
`)

// RedisLimiter shares windows across instances. Windows are anchored at the
// first accepted attempt and expire via key TTL; now is not consulted.
type RedisLimiter struct {
	client redis.UniversalClient
	policy domain.Policy
}

var _ domain.Limiter = (*RedisLimiter)(nil)

func NewRedisLimiter(client redis.UniversalClient, policy domain.Policy) *RedisLimiter {
	return &RedisLimiter{client: client, policy: policy}
}

func (l *RedisLimiter) Allow(ctx context.Context, identity string, _ time.Time) (bool, error) {
	result, err := fixedWindowScript.Run(ctx, l.client,
		[]string{redisKeyPrefix + identity},
		l.policy.Limit, l.policy.Window.Milliseconds(),
	).Int()
	if err != nil {
		return false, fmt.Errorf("rate limit script: %w", err)
	}
	return result == 1, nil
}
