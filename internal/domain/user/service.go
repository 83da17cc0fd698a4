package user

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"mert-chat/internal/domain"
	"mert-chat/internal/utils/platformerrors"
	"mert-chat/pkg/telemetry"
)

// Service manages user profiles.
type Service struct {
	repo      Repository
	sanitizer *telemetry.Sanitizer
	now       func() time.Time
	log       zerolog.Logger
}

// NewService wires the profile service. Identities are logged through sanitizer.
func NewService(repo Repository, sanitizer *telemetry.Sanitizer, log zerolog.Logger) *Service {
	if sanitizer == nil {
		sanitizer = telemetry.NewSanitizer(telemetry.PIILevelNone, "")
	}
	return &Service{
		repo:      repo,
		sanitizer: sanitizer,
		now:       time.Now,
		log:       log.With().Str("component", "user-service").Logger(),
	}
}

// WithClock overrides the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// EnsureProfile creates the principal's profile on first sight. It is idempotent.
func (s *Service) EnsureProfile(ctx context.Context, principal domain.Principal) (bool, error) {
	if !principal.Authenticated() {
		return false, unauthenticated(ctx)
	}
	now := s.now()
	created, err := s.repo.CreateIfAbsent(ctx, newProfile(principal, now))
	if err != nil {
		return false, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
			"Failed to create user profile.", err, "b7d9e1f3-5a6c-4d8e-8f0b-2c3d5e6f7a09")
	}
	if created {
		s.log.Info().Str("user", s.sanitizer.Identity(principal.ID)).Msg("user profile created")
	}
	return created, nil
}

// RecordActivity sets last_active to now, creating the profile when it is missing.
func (s *Service) RecordActivity(ctx context.Context, principal domain.Principal) error {
	if !principal.Authenticated() {
		return unauthenticated(ctx)
	}
	now := s.now()
	updated, err := s.repo.TouchLastActive(ctx, principal.ID, now)
	if err == nil && !updated {
		_, err = s.repo.CreateIfAbsent(ctx, newProfile(principal, now))
	}
	if err != nil {
		perr := platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
			"Failed to update activity.", err, "c8e0f2a4-6b7d-4e9f-9a1c-3d4e6f7a8b10")
		platformerrors.LogError(s.log, perr)
		return perr
	}
	return nil
}

// GetProfile returns the caller's profile.
func (s *Service) GetProfile(ctx context.Context, principal domain.Principal) (*Profile, error) {
	if !principal.Authenticated() {
		return nil, unauthenticated(ctx)
	}
	profile, err := s.repo.FindByUserID(ctx, principal.ID)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
			"Failed to load profile.", err, "d9f1a3b5-7c8e-4f0a-8b2d-4e5f7a8b9c21")
	}
	if profile == nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
			"Profile not found.", nil, "e0a2b4c6-8d9f-4a1b-9c3e-5f6a8b9c0d32")
	}
	return profile, nil
}

func newProfile(principal domain.Principal, now time.Time) *Profile {
	return &Profile{
		UserID:      principal.ID,
		Email:       principal.Email,
		DisplayName: principal.Name,
		PhotoURL:    principal.Picture,
		CreatedAt:   now,
		LastActive:  now,
		ChatCount:   0,
	}
}

func unauthenticated(ctx context.Context) error {
	return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeUnauthenticated,
		"You must be logged in.", nil, "f1b3c5d7-9e0a-4b2c-8d4f-6a7b9c0d1e43")
}
