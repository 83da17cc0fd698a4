package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"mert-chat/internal/domain/chat"
	"mert-chat/internal/utils/platformerrors"
)

func TestChatHandler_SendMessage(t *testing.T) {
	var gotIdentity string
	var gotRaw any
	sender := &MockChatSender{
		SendFunc: func(_ context.Context, identity string, raw any) (*chat.Result, error) {
			gotIdentity, gotRaw = identity, raw
			return &chat.Result{
				Response:       "Merhaba! Nice to meet you.",
				ConversationID: "c_123",
				Usage:          chat.Usage{PromptTokens: 120, CompletionTokens: 8, TotalTokens: 128},
			}, nil
		},
	}
	router := setupTestRouter(t, newProvider(sender, nil, nil))

	w := doRequest(t, router, http.MethodPost, "/v1/chat", "u1", jsonBody(t, map[string]any{"message": "Hello"}))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1", gotIdentity)
	assert.Equal(t, "Hello", gotRaw)
	body := decode(t, w)
	assert.Equal(t, "Merhaba! Nice to meet you.", body["response"])
	assert.Equal(t, "c_123", body["conversationId"])
	assert.Equal(t, map[string]any{"promptTokens": 120.0, "completionTokens": 8.0, "totalTokens": 128.0}, body["usage"])
}

func TestChatHandler_SendMessagePassesRawValues(t *testing.T) {
	tests := []struct {
		name string
		body string
		want any
	}{
		{name: "number", body: `{"message": 42}`, want: 42.0},
		{name: "missing", body: `{}`, want: nil},
		{name: "malformed json", body: `{"message":`, want: nil},
		{name: "empty body", body: ``, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotRaw any = "unset"
			sender := &MockChatSender{
				SendFunc: func(_ context.Context, _ string, raw any) (*chat.Result, error) {
					gotRaw = raw
					return nil, platformerrors.NewError(context.Background(), platformerrors.LayerDomain,
						platformerrors.ErrorTypeInvalidArgument, "Message must be a string.", nil, "x")
				},
			}
			router := setupTestRouter(t, newProvider(sender, nil, nil))

			w := doRequest(t, router, http.MethodPost, "/v1/chat", "u1", strings.NewReader(tt.body))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.want, gotRaw)
		})
	}
}

func TestChatHandler_SendMessageWithoutIdentity(t *testing.T) {
	sender := &MockChatSender{
		SendFunc: func(ctx context.Context, identity string, _ any) (*chat.Result, error) {
			assert.Empty(t, identity)
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
				platformerrors.ErrorTypeUnauthenticated, "You must be logged in to chat.", nil, "auth-code")
		},
	}
	router := setupTestRouter(t, newProvider(sender, nil, nil))

	w := doRequest(t, router, http.MethodPost, "/v1/chat", "", jsonBody(t, map[string]any{"message": "Hello"}))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	body := decode(t, w)
	assert.Equal(t, "UNAUTHENTICATED", body["kind"])
	assert.Equal(t, "auth-code", body["code"])
	assert.NotEmpty(t, body["request_id"])
}

func TestChatHandler_SendMessageErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantKind   string
		wantMsg    string
	}{
		{
			name: "rate limited",
			err: platformerrors.NewError(context.Background(), platformerrors.LayerDomain, platformerrors.ErrorTypeResourceExhausted,
				"Rate limit exceeded. Please wait before sending another message.", nil, "rl"),
			wantStatus: http.StatusTooManyRequests,
			wantKind:   "RESOURCE_EXHAUSTED",
			wantMsg:    "Rate limit exceeded. Please wait before sending another message.",
		},
		{
			name: "quota",
			err: platformerrors.NewError(context.Background(), platformerrors.LayerDomain, platformerrors.ErrorTypeResourceExhausted,
				"AI service temporarily unavailable. Please try again later.", chat.ErrProviderQuotaExhausted, "quota"),
			wantStatus: http.StatusTooManyRequests,
			wantKind:   "RESOURCE_EXHAUSTED",
			wantMsg:    "AI service temporarily unavailable. Please try again later.",
		},
		{
			name:       "untyped",
			err:        errors.New("connection reset by peer"),
			wantStatus: http.StatusInternalServerError,
			wantKind:   "INTERNAL",
			wantMsg:    "An error occurred processing your message.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &MockChatSender{
				SendFunc: func(context.Context, string, any) (*chat.Result, error) { return nil, tt.err },
			}
			router := setupTestRouter(t, newProvider(sender, nil, nil))

			w := doRequest(t, router, http.MethodPost, "/v1/chat", "u1", jsonBody(t, map[string]any{"message": "Hello"}))

			assert.Equal(t, tt.wantStatus, w.Code)
			body := decode(t, w)
			assert.Equal(t, tt.wantKind, body["kind"])
			assert.Equal(t, tt.wantMsg, body["error"])
			assert.NotContains(t, w.Body.String(), "connection reset")
		})
	}
}
