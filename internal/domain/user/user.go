package user

import (
	"context"
	"time"
)

// Profile is the per-identity record created on first sign-in.
type Profile struct {
	ID          uint
	UserID      string
	Email       string
	DisplayName string
	PhotoURL    string
	CreatedAt   time.Time
	LastActive  time.Time
	ChatCount   int
}

// Repository persists profiles.
type Repository interface {
	// FindByUserID returns nil when the identity has no profile.
	FindByUserID(ctx context.Context, userID string) (*Profile, error)
	// CreateIfAbsent inserts profile unless one exists and reports whether it inserted.
	CreateIfAbsent(ctx context.Context, profile *Profile) (bool, error)
	// TouchLastActive sets last_active and reports whether a profile was updated.
	TouchLastActive(ctx context.Context, userID string, at time.Time) (bool, error)
}
