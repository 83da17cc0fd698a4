package inference

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mert-chat/internal/domain/chat"
	"mert-chat/internal/domain/conversation"
	"mert-chat/internal/utils/httpclients"
)

func newProvider(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewOpenAIProvider(httpclients.NewClient("test", 5*time.Second), srv.URL+"/v1/", "sk-test", zerolog.Nop())
}

func sampleRequest() chat.CompletionRequest {
	return chat.CompletionRequest{
		Model: "gpt-4",
		Messages: []chat.PromptMessage{
			{Role: conversation.RoleSystem, Content: "persona"},
			{Role: conversation.RoleUser, Content: "Hello"},
		},
		MaxTokens:   1000,
		Temperature: 0.7,
		User:        "u1",
	}
}

func TestCompleteSendsRequestAndParsesReply(t *testing.T) {
	var captured openai.ChatCompletionRequest
	provider := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{{
				Message: openai.ChatCompletionMessage{Role: "assistant", Content: "Merhaba! Nice to meet you."},
			}},
			Usage: openai.Usage{PromptTokens: 120, CompletionTokens: 8, TotalTokens: 128},
		})
	})

	completion, err := provider.Complete(context.Background(), sampleRequest())
	require.NoError(t, err)

	assert.Equal(t, "Merhaba! Nice to meet you.", completion.Content)
	assert.Equal(t, chat.Usage{PromptTokens: 120, CompletionTokens: 8, TotalTokens: 128}, completion.Usage)

	assert.Equal(t, "gpt-4", captured.Model)
	assert.Equal(t, 1000, captured.MaxTokens)
	assert.InDelta(t, 0.7, captured.Temperature, 0.0001)
	assert.Equal(t, "u1", captured.User)
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Equal(t, "Hello", captured.Messages[1].Content)
}

func TestCompleteMapsQuotaExhaustion(t *testing.T) {
	provider := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"You exceeded your current quota","type":"insufficient_quota","code":"insufficient_quota"}}`))
	})

	_, err := provider.Complete(context.Background(), sampleRequest())
	require.Error(t, err)
	assert.True(t, errors.Is(err, chat.ErrProviderQuotaExhausted))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Equal(t, "insufficient_quota", apiErr.Code)
}

func TestCompleteOtherUpstreamErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"rate limited", http.StatusTooManyRequests, `{"error":{"message":"slow down","type":"requests","code":"rate_limit_exceeded"}}`},
		{"server error", http.StatusInternalServerError, `upstream exploded`},
		{"numeric code", http.StatusBadRequest, `{"error":{"message":"bad","type":"invalid_request_error","code":400}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := provider.Complete(context.Background(), sampleRequest())
			require.Error(t, err)
			assert.False(t, errors.Is(err, chat.ErrProviderQuotaExhausted))
		})
	}
}

func TestCompleteRejectsEmptyChoices(t *testing.T) {
	provider := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[],"usage":{"prompt_tokens":1}}`))
	})

	_, err := provider.Complete(context.Background(), sampleRequest())
	assert.Error(t, err)
}

func TestErrorFromResponse(t *testing.T) {
	apiErr := errorFromResponse(429, `{"error":{"message":"quota","type":"insufficient_quota","code":null}}`)
	assert.Equal(t, "insufficient_quota", apiErr.Type)
	assert.ErrorIs(t, apiErr, chat.ErrProviderQuotaExhausted)

	plain := errorFromResponse(502, "bad gateway")
	assert.Equal(t, "bad gateway", plain.Message)
	assert.NotErrorIs(t, plain, chat.ErrProviderQuotaExhausted)
}

func TestNormalizeBaseURL(t *testing.T) {
	assert.Equal(t, "https://api.openai.com/v1", normalizeBaseURL(" https://api.openai.com/v1/ "))
}
