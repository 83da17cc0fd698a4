package handlers_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mert-chat/internal/domain/conversation"
	"mert-chat/internal/utils/platformerrors"
)

func TestConversationHandler_List(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	var gotUser string
	var gotLimit int
	convs := &MockConversationService{
		ListConversationsFunc: func(_ context.Context, userID string, limit int) ([]*conversation.Conversation, error) {
			gotUser, gotLimit = userID, limit
			return []*conversation.Conversation{
				{PublicID: "c_2", UserID: userID, Title: "Second", MessageCount: 4, CreatedAt: now, UpdatedAt: now.Add(time.Minute)},
				{PublicID: "c_1", UserID: userID, Title: "First", MessageCount: 2, CreatedAt: now, UpdatedAt: now},
			}, nil
		},
	}
	router := setupTestRouter(t, newProvider(nil, nil, convs))

	w := doRequest(t, router, http.MethodGet, "/v1/conversations?limit=5", "u1", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1", gotUser)
	assert.Equal(t, 5, gotLimit)
	body := decode(t, w)
	assert.Equal(t, "list", body["object"])
	data := body["data"].([]any)
	require.Len(t, data, 2)
	assert.Equal(t, "c_2", data[0].(map[string]any)["id"])
	assert.Equal(t, 4.0, data[0].(map[string]any)["messageCount"])
}

func TestConversationHandler_ListRejectsBadLimit(t *testing.T) {
	called := false
	convs := &MockConversationService{
		ListConversationsFunc: func(context.Context, string, int) ([]*conversation.Conversation, error) {
			called = true
			return nil, nil
		},
	}
	router := setupTestRouter(t, newProvider(nil, nil, convs))

	for _, query := range []string{"?limit=abc", "?limit=-1"} {
		w := doRequest(t, router, http.MethodGet, "/v1/conversations"+query, "u1", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, query)
		assert.Equal(t, "INVALID_ARGUMENT", decode(t, w)["kind"])
	}
	assert.False(t, called)
}

func TestConversationHandler_ListMessages(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	prompt, completion := 120, 8
	convs := &MockConversationService{
		GetMessagesFunc: func(_ context.Context, userID, id string) (*conversation.Conversation, []*conversation.Message, error) {
			assert.Equal(t, "u1", userID)
			assert.Equal(t, "c_1", id)
			return &conversation.Conversation{PublicID: "c_1", UserID: userID, Title: "Hello", MessageCount: 2},
				[]*conversation.Message{
					{PublicID: "m_1", Role: conversation.RoleUser, Content: "Hello", TokenCount: &prompt, CreatedAt: now},
					{PublicID: "m_2", Role: conversation.RoleAssistant, Content: "Merhaba!", TokenCount: &completion, CreatedAt: now},
				}, nil
		},
	}
	router := setupTestRouter(t, newProvider(nil, nil, convs))

	w := doRequest(t, router, http.MethodGet, "/v1/conversations/c_1/messages", "u1", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "c_1", body["conversation"].(map[string]any)["id"])
	messages := body["messages"].([]any)
	require.Len(t, messages, 2)
	assert.Equal(t, "user", messages[0].(map[string]any)["role"])
	assert.Equal(t, 8.0, messages[1].(map[string]any)["tokenCount"])
}

func TestConversationHandler_ListMessagesForeignConversation(t *testing.T) {
	convs := &MockConversationService{
		GetMessagesFunc: func(ctx context.Context, _, _ string) (*conversation.Conversation, []*conversation.Message, error) {
			return nil, nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
				"Conversation not found.", nil, "nf")
		},
	}
	router := setupTestRouter(t, newProvider(nil, nil, convs))

	w := doRequest(t, router, http.MethodGet, "/v1/conversations/c_other/messages", "u1", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Conversation not found.", body["error"])
}
