package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"mert-chat/internal/domain"
	"mert-chat/internal/domain/chat"
	"mert-chat/internal/domain/conversation"
	"mert-chat/internal/domain/user"
	"mert-chat/internal/interfaces/httpserver/handlers"
	"mert-chat/internal/interfaces/httpserver/middlewares"
)

// MockChatSender is a mock implementation of handlers.ChatSender for testing.
type MockChatSender struct {
	SendFunc func(ctx context.Context, identity string, raw any) (*chat.Result, error)
}

func (m *MockChatSender) Send(ctx context.Context, identity string, raw any) (*chat.Result, error) {
	if m.SendFunc != nil {
		return m.SendFunc(ctx, identity, raw)
	}
	return nil, nil
}

// MockProfileService is a mock implementation of handlers.ProfileService for testing.
type MockProfileService struct {
	GetProfileFunc     func(ctx context.Context, principal domain.Principal) (*user.Profile, error)
	RecordActivityFunc func(ctx context.Context, principal domain.Principal) error
}

func (m *MockProfileService) GetProfile(ctx context.Context, principal domain.Principal) (*user.Profile, error) {
	if m.GetProfileFunc != nil {
		return m.GetProfileFunc(ctx, principal)
	}
	return nil, nil
}

func (m *MockProfileService) RecordActivity(ctx context.Context, principal domain.Principal) error {
	if m.RecordActivityFunc != nil {
		return m.RecordActivityFunc(ctx, principal)
	}
	return nil
}

// MockConversationService is a mock implementation of conversation.Service for testing.
type MockConversationService struct {
	ListConversationsFunc func(ctx context.Context, userID string, limit int) ([]*conversation.Conversation, error)
	GetMessagesFunc       func(ctx context.Context, userID, conversationPublicID string) (*conversation.Conversation, []*conversation.Message, error)
}

func (m *MockConversationService) ListConversations(ctx context.Context, userID string, limit int) ([]*conversation.Conversation, error) {
	if m.ListConversationsFunc != nil {
		return m.ListConversationsFunc(ctx, userID, limit)
	}
	return nil, nil
}

func (m *MockConversationService) GetMessages(ctx context.Context, userID, conversationPublicID string) (*conversation.Conversation, []*conversation.Message, error) {
	if m.GetMessagesFunc != nil {
		return m.GetMessagesFunc(ctx, userID, conversationPublicID)
	}
	return nil, nil, nil
}

// setupTestRouter mounts the handlers behind the request id and gateway-header auth middlewares.
func setupTestRouter(t *testing.T, provider *handlers.Provider) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	authn, err := middlewares.NewAuthenticator(nil, nil, true, zerolog.Nop())
	require.NoError(t, err)

	router := gin.New()
	router.Use(middlewares.RequestID(), authn.Middleware())
	v1 := router.Group("/v1")
	v1.POST("/chat", provider.Chat.SendMessage)
	v1.GET("/users/me", provider.User.GetMe)
	v1.POST("/users/me/activity", provider.User.RecordActivity)
	v1.GET("/conversations", provider.Conversation.List)
	v1.GET("/conversations/:id/messages", provider.Conversation.ListMessages)
	return router
}

func newProvider(chatSvc *MockChatSender, profileSvc *MockProfileService, convSvc *MockConversationService) *handlers.Provider {
	if chatSvc == nil {
		chatSvc = &MockChatSender{}
	}
	if profileSvc == nil {
		profileSvc = &MockProfileService{}
	}
	if convSvc == nil {
		convSvc = &MockConversationService{}
	}
	return handlers.NewProvider(chatSvc, profileSvc, convSvc, zerolog.Nop())
}

func doRequest(t *testing.T, router *gin.Engine, method, path, userID string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(raw)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
