package userrepo

import (
	"context"
	"sync"
	"time"

	"mert-chat/internal/domain/user"
)

// InMemoryRepository keeps profiles in a map keyed by user id.
type InMemoryRepository struct {
	mu       sync.RWMutex
	nextID   uint
	profiles map[string]*user.Profile
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{profiles: make(map[string]*user.Profile)}
}

var _ user.Repository = (*InMemoryRepository)(nil)

func (r *InMemoryRepository) FindByUserID(_ context.Context, userID string) (*user.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	profile, ok := r.profiles[userID]
	if !ok {
		return nil, nil
	}
	copied := *profile
	return &copied, nil
}

func (r *InMemoryRepository) CreateIfAbsent(_ context.Context, profile *user.Profile) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[profile.UserID]; ok {
		return false, nil
	}
	r.nextID++
	profile.ID = r.nextID
	stored := *profile
	r.profiles[profile.UserID] = &stored
	return true, nil
}

func (r *InMemoryRepository) TouchLastActive(_ context.Context, userID string, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	profile, ok := r.profiles[userID]
	if !ok {
		return false, nil
	}
	profile.LastActive = at
	return true, nil
}
