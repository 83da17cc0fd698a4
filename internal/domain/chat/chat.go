package chat

import (
	"context"
	"errors"

	"mert-chat/internal/domain/conversation"
)

// ErrProviderQuotaExhausted is returned by CompletionProvider implementations when the
// upstream account has no quota left (OpenAI error code "insufficient_quota").
var ErrProviderQuotaExhausted = errors.New("completion provider quota exhausted")

// PromptMessage is one entry of the prompt sent to the completion provider.
type PromptMessage struct {
	Role    conversation.Role
	Content string
}

// CompletionRequest carries the assembled prompt and generation parameters.
type CompletionRequest struct {
	Model       string
	Messages    []PromptMessage
	MaxTokens   int
	Temperature float32
	// User is forwarded for upstream abuse monitoring.
	User string
}

// Usage is the token accounting reported by the provider.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Completion is the provider reply.
type Completion struct {
	Content string
	Usage   Usage
}

// CompletionProvider is the external language-model service.
type CompletionProvider interface {
	Complete(ctx context.Context, req CompletionRequest) (*Completion, error)
}

// Locker serializes work per key. Used around find-or-create of the current conversation.
type Locker interface {
	WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

// NoopLocker runs fn without any coordination.
type NoopLocker struct{}

func (NoopLocker) WithLock(ctx context.Context, _ string, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// Result is what a successful chat turn returns to the caller.
type Result struct {
	Response            string
	ConversationID      string
	Usage               Usage
	ConversationCreated bool
}

// Options are the generation and assembly parameters of the orchestrator.
type Options struct {
	Model        string
	MaxTokens    int
	Temperature  float32
	HistoryLimit int
	Persona      Persona
}

// DefaultOptions mirrors the production defaults: gpt-4, 1000 tokens, temperature 0.7, 10 history messages.
func DefaultOptions() Options {
	return Options{
		Model:        "gpt-4",
		MaxTokens:    1000,
		Temperature:  0.7,
		HistoryLimit: 10,
		Persona:      DefaultPersona(),
	}
}
