package chat

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	"mert-chat/internal/domain/ratelimit"
	"mert-chat/internal/infrastructure/observability"
	"mert-chat/internal/utils/platformerrors"
)

const DefaultMaxMessageLength = 2000

const (
	msgUnauthenticated = "You must be logged in to chat."
	msgRateLimited     = "Rate limit exceeded. Please wait a moment."
	msgEmpty           = "Message must not be empty."
	msgNulCharacter    = "Message must not contain null characters."
)

// Admission is the state threaded through the gate stages.
type Admission struct {
	Identity string
	Raw      any
	Message  string
	At       time.Time
}

// Stage is one named step of the gate pipeline.
type Stage struct {
	Name string
	Run  func(ctx context.Context, adm *Admission) error
}

// Gate admits inbound chat messages: authenticate, validate, then authorize-quota.
// Validation precedes quota so malformed requests never spend budget.
type Gate struct {
	limiter   ratelimit.Limiter
	maxLength int
	now       func() time.Time
	log       zerolog.Logger
	stages    []Stage
}

// GateOption customizes a Gate.
type GateOption func(*Gate)

// WithClock overrides the time source.
func WithClock(now func() time.Time) GateOption {
	return func(g *Gate) { g.now = now }
}

// WithMaxMessageLength overrides the 2000 character limit.
func WithMaxMessageLength(n int) GateOption {
	return func(g *Gate) {
		if n > 0 {
			g.maxLength = n
		}
	}
}

// NewGate builds the gate around a rate limiter.
func NewGate(limiter ratelimit.Limiter, log zerolog.Logger, opts ...GateOption) *Gate {
	g := &Gate{
		limiter:   limiter,
		maxLength: DefaultMaxMessageLength,
		now:       time.Now,
		log:       log.With().Str("component", "chat-gate").Logger(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.stages = []Stage{
		{Name: "authenticate", Run: g.Authenticate},
		{Name: "validate", Run: g.Validate},
		{Name: "authorize-quota", Run: g.AuthorizeQuota},
	}
	return g
}

// Stages returns the pipeline in execution order.
func (g *Gate) Stages() []Stage {
	return g.stages
}

// Admit runs every stage and returns the validated message.
func (g *Gate) Admit(ctx context.Context, identity string, raw any) (string, error) {
	adm := &Admission{Identity: identity, Raw: raw, At: g.now()}
	for _, stage := range g.stages {
		if err := stage.Run(ctx, adm); err != nil {
			observability.AddSpanEvent(ctx, "chat.gate.rejected",
				attribute.String("gate.stage", stage.Name),
				attribute.String("error.kind", string(platformerrors.TypeOf(err))),
			)
			g.log.Debug().Str("stage", stage.Name).Str("error_type", string(platformerrors.TypeOf(err))).Msg("message rejected")
			return "", err
		}
	}
	return adm.Message, nil
}

// Authenticate rejects callers without an identity.
func (g *Gate) Authenticate(ctx context.Context, adm *Admission) error {
	if strings.TrimSpace(adm.Identity) == "" {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeUnauthenticated,
			msgUnauthenticated, nil, "3c9a1e52-7f0b-4d2e-9a61-5b8c0d4e2f10")
	}
	return nil
}

// Validate requires a non-blank string of at most maxLength characters without NUL.
// The accepted message is kept exactly as sent.
func (g *Gate) Validate(ctx context.Context, adm *Admission) error {
	text, ok := adm.Raw.(string)
	if !ok || text == "" || utf8.RuneCountInString(text) > g.maxLength {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInvalidArgument,
			g.invalidMessage(), nil, "8e2d4b17-1a3c-4f5e-b6d7-9c0a2e4f6b21")
	}
	if strings.TrimSpace(text) == "" {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInvalidArgument,
			msgEmpty, nil, "4f7b2c93-6d1e-4a8b-9e0f-1d3c5a7b9e32")
	}
	// postgres text columns reject NUL
	if strings.ContainsRune(text, 0) {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInvalidArgument,
			msgNulCharacter, nil, "b7e9c1d3-5a6f-4e8b-9c0d-2e4f6a8b0c14")
	}
	adm.Message = text
	return nil
}

// AuthorizeQuota books one unit of the identity's rate limit.
// Limiter failures fail open.
func (g *Gate) AuthorizeQuota(ctx context.Context, adm *Admission) error {
	allowed, err := g.limiter.Allow(ctx, adm.Identity, adm.At)
	if err != nil {
		g.log.Warn().Err(err).Msg("rate limiter unavailable, allowing request")
		return nil
	}
	if !allowed {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeResourceExhausted,
			msgRateLimited, nil, "a1d6e8f0-2b4c-4d7e-8f9a-0b1c3d5e7f43")
	}
	return nil
}

func (g *Gate) invalidMessage() string {
	return fmt.Sprintf("Message must be a string under %d characters.", g.maxLength)
}
