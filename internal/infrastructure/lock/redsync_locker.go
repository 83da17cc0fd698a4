package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"mert-chat/internal/domain/chat"
)

const keyPrefix = "mert-chat:lock:"

// RedsyncLocker is a distributed chat.Locker backed by redsync.
type RedsyncLocker struct {
	rs  *redsync.Redsync
	ttl time.Duration
	log zerolog.Logger
}

var _ chat.Locker = (*RedsyncLocker)(nil)

func NewRedsyncLocker(client redis.UniversalClient, ttl time.Duration, log zerolog.Logger) *RedsyncLocker {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	return &RedsyncLocker{
		rs:  redsync.New(goredis.NewPool(client)),
		ttl: ttl,
		log: log.With().Str("component", "redsync-locker").Logger(),
	}
}

// WithLock holds the mutex for key while fn runs.
func (l *RedsyncLocker) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	mutex := l.rs.NewMutex(keyPrefix+key, redsync.WithExpiry(l.ttl))
	if err := mutex.LockContext(ctx); err != nil {
		return fmt.Errorf("acquire lock %q: %w", key, err)
	}

	defer func() {
		// detached so a cancelled request still releases its lock
		unlockCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
		defer cancel()
		if _, err := mutex.UnlockContext(unlockCtx); err != nil {
			l.log.Error().Err(err).Str("key", key).Msg("failed to unlock mutex")
		}
	}()

	return fn(ctx)
}
