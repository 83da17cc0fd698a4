package inference

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"resty.dev/v3"

	"mert-chat/internal/domain/chat"
	"mert-chat/internal/infrastructure/metrics"
	"mert-chat/internal/infrastructure/observability"
)

const (
	clientName             = "openai-chat-completion"
	codeInsufficientQuota  = "insufficient_quota"
	errorTypeQuota         = "insufficient_quota"
	errorTypeTransport     = "transport"
	errorTypeUpstream      = "upstream"
	errorTypeEmptyResponse = "empty_response"
)

// APIError is a non-2xx reply from the completion endpoint.
type APIError struct {
	StatusCode int
	Code       string
	Type       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("completion request failed (status %d, code %s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("completion request failed (status %d): %s", e.StatusCode, e.Message)
}

// Unwrap lets callers match quota exhaustion with errors.Is.
func (e *APIError) Unwrap() error {
	if e.Code == codeInsufficientQuota || e.Type == codeInsufficientQuota {
		return chat.ErrProviderQuotaExhausted
	}
	return nil
}

// OpenAIProvider implements chat.CompletionProvider against an OpenAI-compatible
// /chat/completions endpoint.
type OpenAIProvider struct {
	client  *resty.Client
	baseURL string
	apiKey  string
	log     zerolog.Logger
}

var _ chat.CompletionProvider = (*OpenAIProvider)(nil)

func NewOpenAIProvider(client *resty.Client, baseURL, apiKey string, log zerolog.Logger) *OpenAIProvider {
	return &OpenAIProvider{
		client:  client,
		baseURL: normalizeBaseURL(baseURL),
		apiKey:  apiKey,
		log:     log.With().Str("component", "openai-provider").Logger(),
	}
}

func (p *OpenAIProvider) Complete(ctx context.Context, req chat.CompletionRequest) (*chat.Completion, error) {
	ctx, span := observability.StartSpan(ctx, "inference", "openai.chat_completion")
	defer span.End()
	span.SetAttributes(
		attribute.String("llm.model", req.Model),
		attribute.Int("llm.max_tokens", req.MaxTokens),
		attribute.Int("llm.prompt_messages", len(req.Messages)),
	)

	start := time.Now()
	var body openai.ChatCompletionResponse
	resp, err := p.prepareRequest(ctx).
		SetBody(toOpenAIRequest(req)).
		SetResult(&body).
		Post(p.endpoint("/chat/completions"))
	metrics.RecordProviderDuration(req.Model, time.Since(start).Seconds())

	if err != nil {
		metrics.RecordProviderError(errorTypeTransport)
		span.RecordError(err)
		span.SetStatus(codes.Error, errorTypeTransport)
		return nil, fmt.Errorf("completion request: %w", err)
	}
	if resp.IsError() {
		apiErr := errorFromResponse(resp.StatusCode(), resp.String())
		kind := errorTypeUpstream
		if errors.Is(apiErr, chat.ErrProviderQuotaExhausted) {
			kind = errorTypeQuota
		}
		metrics.RecordProviderError(kind)
		span.RecordError(apiErr)
		span.SetStatus(codes.Error, kind)
		p.log.Warn().Int("status", apiErr.StatusCode).Str("code", apiErr.Code).Msg("completion request rejected")
		return nil, apiErr
	}
	if len(body.Choices) == 0 {
		metrics.RecordProviderError(errorTypeEmptyResponse)
		err := errors.New("completion response has no choices")
		span.RecordError(err)
		span.SetStatus(codes.Error, errorTypeEmptyResponse)
		return nil, err
	}

	usage := chat.Usage{
		PromptTokens:     body.Usage.PromptTokens,
		CompletionTokens: body.Usage.CompletionTokens,
		TotalTokens:      body.Usage.TotalTokens,
	}
	metrics.RecordTokens(req.Model, usage.PromptTokens, usage.CompletionTokens)
	span.SetAttributes(
		attribute.Int("llm.usage.prompt_tokens", usage.PromptTokens),
		attribute.Int("llm.usage.completion_tokens", usage.CompletionTokens),
	)

	return &chat.Completion{Content: body.Choices[0].Message.Content, Usage: usage}, nil
}

func toOpenAIRequest(req chat.CompletionRequest) openai.ChatCompletionRequest {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, msg := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}
	return openai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    messages,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		User:        req.User,
	}
}

func (p *OpenAIProvider) prepareRequest(ctx context.Context) *resty.Request {
	req := p.client.R().SetContext(ctx)
	req.SetHeader("Content-Type", "application/json")
	if strings.TrimSpace(p.apiKey) != "" {
		req.SetHeader("Authorization", fmt.Sprintf("Bearer %s", p.apiKey))
	}
	return req
}

func (p *OpenAIProvider) endpoint(path string) string {
	if p.baseURL == "" {
		return path
	}
	return p.baseURL + path
}

func errorFromResponse(status int, body string) *APIError {
	apiErr := &APIError{StatusCode: status, Message: strings.TrimSpace(body)}

	var parsed openai.ErrorResponse
	if err := json.Unmarshal([]byte(body), &parsed); err != nil || parsed.Error == nil {
		return apiErr
	}
	apiErr.Message = parsed.Error.Message
	apiErr.Type = parsed.Error.Type
	switch code := parsed.Error.Code.(type) {
	case string:
		apiErr.Code = code
	case float64:
		apiErr.Code = fmt.Sprintf("%.0f", code)
	}
	return apiErr
}

func normalizeBaseURL(base string) string {
	return strings.TrimRight(strings.TrimSpace(base), "/")
}
