package conversation

import (
	"context"

	"github.com/rs/zerolog"

	"mert-chat/internal/utils/idgen"
	"mert-chat/internal/utils/platformerrors"
	"mert-chat/pkg/telemetry"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// Service exposes the read side of a user's conversation history.
type Service interface {
	ListConversations(ctx context.Context, userID string, limit int) ([]*Conversation, error)
	GetMessages(ctx context.Context, userID, conversationPublicID string) (*Conversation, []*Message, error)
}

type service struct {
	repo      Repository
	sanitizer *telemetry.Sanitizer
	log       zerolog.Logger
}

// NewService wires the conversation history service. Identities are logged through sanitizer.
func NewService(repo Repository, sanitizer *telemetry.Sanitizer, log zerolog.Logger) Service {
	if sanitizer == nil {
		sanitizer = telemetry.NewSanitizer(telemetry.PIILevelNone, "")
	}
	return &service{
		repo:      repo,
		sanitizer: sanitizer,
		log:       log.With().Str("component", "conversation-service").Logger(),
	}
}

func (s *service) ListConversations(ctx context.Context, userID string, limit int) ([]*Conversation, error) {
	if userID == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeUnauthenticated,
			"You must be logged in.", nil, "0f4f7c2e-5d64-4a6e-9a43-2f1f0c8e7b11")
	}
	switch {
	case limit <= 0:
		limit = DefaultListLimit
	case limit > MaxListLimit:
		limit = MaxListLimit
	}

	conversations, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		s.log.Error().Err(err).Str("user", s.sanitizer.Identity(userID)).Msg("list conversations")
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
			"Failed to load conversations.", err, "6c0d53a4-1b5e-4a48-b0f8-3a7a0f7d2c90")
	}
	return conversations, nil
}

func (s *service) GetMessages(ctx context.Context, userID, conversationPublicID string) (*Conversation, []*Message, error) {
	if userID == "" {
		return nil, nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeUnauthenticated,
			"You must be logged in.", nil, "5b3e1f0d-7b7a-4b4f-8a0e-4c2d9e6f1a22")
	}
	if !idgen.ValidateIDFormat(conversationPublicID, idgen.ConversationPrefix) {
		return nil, nil, notFound(ctx)
	}

	conv, err := s.repo.FindByPublicID(ctx, conversationPublicID)
	if err != nil {
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
			return nil, nil, notFound(ctx)
		}
		s.log.Error().Err(err).Str("conversation_id", conversationPublicID).Msg("find conversation")
		return nil, nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
			"Failed to load conversation.", err, "9d2f7a61-3c1e-4b8d-a0f4-7e5c2b1d8f33")
	}
	// Other users' conversations are indistinguishable from missing ones.
	if conv.UserID != userID {
		return nil, nil, notFound(ctx)
	}

	messages, err := s.repo.ListMessages(ctx, conv.ID)
	if err != nil {
		s.log.Error().Err(err).Str("conversation_id", conversationPublicID).Msg("list messages")
		return nil, nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
			"Failed to load messages.", err, "2a8c4e17-9f3b-4d6a-b5e2-1c7f0a9d3e44")
	}
	return conv, messages, nil
}

func notFound(ctx context.Context) error {
	return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
		"Conversation not found.", nil, "e7b1c9d2-4a6f-4e3b-8c5d-0f2a7b9e1c55")
}
