package crontab

import (
	"context"
	"time"

	"github.com/mileusna/crontab"
	"github.com/rs/zerolog"

	"mert-chat/internal/infrastructure/metrics"
	"mert-chat/internal/utils/platformerrors"
)

// Sweeper prunes expired rate limit windows.
type Sweeper interface {
	Sweep(now time.Time) int
}

// Crontab runs periodic maintenance jobs until its context ends.
type Crontab struct {
	ctab    *crontab.Crontab
	sweeper Sweeper
	now     func() time.Time
	log     zerolog.Logger
}

// NewCrontab accepts a nil sweeper when the limiter keeps no local state.
func NewCrontab(sweeper Sweeper, log zerolog.Logger) *Crontab {
	return &Crontab{
		ctab:    crontab.New(),
		sweeper: sweeper,
		now:     time.Now,
		log:     log.With().Str("component", "crontab").Logger(),
	}
}

func (c *Crontab) Run(ctx context.Context) error {
	if c.sweeper != nil {
		if err := c.ctab.AddJob("* * * * *", c.SweepRateLimits); err != nil {
			return platformerrors.AsError(ctx, platformerrors.LayerInfrastructure, err, "failed to add rate limit sweep job")
		}
		c.log.Info().Msg("rate limit sweep scheduled: every minute")
	}

	<-ctx.Done()
	c.ctab.Shutdown()
	return nil
}

// SweepRateLimits drops expired windows and publishes the remaining count.
func (c *Crontab) SweepRateLimits() {
	if c.sweeper == nil {
		return
	}
	remaining := c.sweeper.Sweep(c.now())
	metrics.SetTrackedIdentities(remaining)
	c.log.Debug().Int("tracked_identities", remaining).Msg("rate limit windows swept")
}
