package chat

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"mert-chat/internal/domain/conversation"
	"mert-chat/internal/infrastructure/observability"
	"mert-chat/internal/utils/platformerrors"
	"mert-chat/pkg/telemetry"
)

const (
	msgProviderUnavailable = "AI service temporarily unavailable. Please try again later."
	msgInternal            = "An error occurred processing your message."
)

// Service runs one chat turn: locate conversation, build prompt, complete, persist.
type Service struct {
	gate      *Gate
	repo      conversation.Repository
	provider  CompletionProvider
	locker    Locker
	opts      Options
	now       func() time.Time
	sanitizer *telemetry.Sanitizer
	log       zerolog.Logger
}

// ServiceOption customizes a Service.
type ServiceOption func(*Service)

// WithLocker serializes find-or-create per identity.
func WithLocker(locker Locker) ServiceOption {
	return func(s *Service) {
		if locker != nil {
			s.locker = locker
		}
	}
}

// WithServiceClock overrides the time source used for stored timestamps.
func WithServiceClock(now func() time.Time) ServiceOption {
	return func(s *Service) { s.now = now }
}

// WithSanitizer controls how message text appears in logs.
func WithSanitizer(sanitizer *telemetry.Sanitizer) ServiceOption {
	return func(s *Service) {
		if sanitizer != nil {
			s.sanitizer = sanitizer
		}
	}
}

// NewService wires the orchestrator.
func NewService(
	gate *Gate,
	repo conversation.Repository,
	provider CompletionProvider,
	opts Options,
	log zerolog.Logger,
	options ...ServiceOption,
) *Service {
	s := &Service{
		gate:      gate,
		repo:      repo,
		provider:  provider,
		locker:    NoopLocker{},
		opts:      opts,
		now:       time.Now,
		sanitizer: telemetry.NewSanitizer(telemetry.PIILevelNone, ""),
		log:       log.With().Str("component", "chat-service").Logger(),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Send admits a raw inbound message through the gate and processes it.
func (s *Service) Send(ctx context.Context, identity string, raw any) (*Result, error) {
	message, err := s.gate.Admit(ctx, identity, raw)
	if err != nil {
		return nil, err
	}
	return s.Process(ctx, identity, message)
}

// Process runs one turn for an already admitted message. Each call is a new turn.
func (s *Service) Process(ctx context.Context, identity, message string) (*Result, error) {
	ctx, span := observability.StartSpan(ctx, "chat", "chat.process")
	defer span.End()

	log := s.log.With().Str("user", s.sanitizer.Identity(identity)).Logger()
	log.Debug().Str("message_preview", s.sanitizer.MessagePreview(message)).Msg("processing chat message")

	conv, created, err := s.locateConversation(ctx, identity, message)
	if err != nil {
		return nil, s.fail(ctx, span, msgInternal, platformerrors.ErrorTypeInternal, err, "c2e4f6a8-0b1d-4e3f-9a5c-7d8e0f1a2b54")
	}
	span.SetAttributes(
		attribute.String("conversation.id", conv.PublicID),
		attribute.Bool("conversation.created", created),
	)

	var history []*conversation.Message
	if !created && s.opts.HistoryLimit > 0 {
		recent, err := s.repo.ListRecentMessages(ctx, conv.ID, s.opts.HistoryLimit)
		if err != nil {
			return nil, s.fail(ctx, span, msgInternal, platformerrors.ErrorTypeInternal, err, "d3f5a7b9-1c2e-4f4a-8b6d-8e9f1a2b3c65")
		}
		history = conversation.Chronological(recent)
	}

	prompt := BuildPrompt(s.opts.Persona, history, message)
	span.SetAttributes(attribute.Int("prompt.messages", len(prompt)))

	completion, err := s.provider.Complete(ctx, CompletionRequest{
		Model:       s.opts.Model,
		Messages:    prompt,
		MaxTokens:   s.opts.MaxTokens,
		Temperature: s.opts.Temperature,
		User:        identity,
	})
	if err != nil {
		if errors.Is(err, ErrProviderQuotaExhausted) {
			return nil, s.fail(ctx, span, msgProviderUnavailable, platformerrors.ErrorTypeResourceExhausted, err, "e4a6b8c0-2d3f-4a5b-9c7e-9f0a2b3c4d76")
		}
		return nil, s.fail(ctx, span, msgInternal, platformerrors.ErrorTypeInternal, err, "f5b7c9d1-3e4a-4b6c-8d8f-0a1b3c4d5e87")
	}

	if err := s.persistExchange(ctx, conv, message, completion); err != nil {
		return nil, s.fail(ctx, span, msgInternal, platformerrors.ErrorTypeInternal, err, "a6c8d0e2-4f5b-4c7d-9e9a-1b2c4d5e6f98")
	}

	log.Info().
		Str("conversation_id", conv.PublicID).
		Bool("conversation_created", created).
		Int("prompt_tokens", completion.Usage.PromptTokens).
		Int("completion_tokens", completion.Usage.CompletionTokens).
		Msg("chat turn completed")

	return &Result{
		Response:            completion.Content,
		ConversationID:      conv.PublicID,
		Usage:               completion.Usage,
		ConversationCreated: created,
	}, nil
}

// locateConversation returns the identity's current conversation, creating it on first use.
// Without a distributed Locker two concurrent first messages can both create one.
func (s *Service) locateConversation(ctx context.Context, identity, message string) (*conversation.Conversation, bool, error) {
	var (
		conv    *conversation.Conversation
		created bool
	)
	err := s.locker.WithLock(ctx, "conversation-locate:"+identity, func(ctx context.Context) error {
		latest, err := s.repo.FindLatestByUser(ctx, identity)
		if err != nil {
			return err
		}
		if latest != nil {
			conv = latest
			return nil
		}
		fresh, err := conversation.NewConversation(identity, message, s.now())
		if err != nil {
			return err
		}
		if err := s.repo.Create(ctx, fresh); err != nil {
			return err
		}
		conv, created = fresh, true
		return nil
	})
	return conv, created, err
}

func (s *Service) persistExchange(ctx context.Context, conv *conversation.Conversation, message string, completion *Completion) error {
	at := s.now()
	promptTokens := completion.Usage.PromptTokens
	completionTokens := completion.Usage.CompletionTokens

	userMsg, err := conversation.NewMessage(conv.ID, conversation.RoleUser, message, &promptTokens, at)
	if err != nil {
		return err
	}
	assistantMsg, err := conversation.NewMessage(conv.ID, conversation.RoleAssistant, completion.Content, &completionTokens, at)
	if err != nil {
		return err
	}
	if err := s.repo.AppendExchange(ctx, conversation.Exchange{
		ConversationID:   conv.ID,
		UserMessage:      userMsg,
		AssistantMessage: assistantMsg,
		At:               at,
	}); err != nil {
		return err
	}
	conv.MessageCount += 2
	conv.UpdatedAt = at
	return nil
}

func (s *Service) fail(ctx context.Context, span trace.Span, message string, kind platformerrors.ErrorType, cause error, code string) error {
	perr := platformerrors.NewError(ctx, platformerrors.LayerDomain, kind, message, cause, code)
	span.RecordError(cause)
	span.SetStatus(codes.Error, string(kind))
	platformerrors.LogError(s.log, perr)
	return perr
}
