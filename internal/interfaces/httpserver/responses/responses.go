package responses

import (
	"time"

	"mert-chat/internal/domain/chat"
	"mert-chat/internal/domain/conversation"
	"mert-chat/internal/domain/user"
)

// UsageResponse is the token accounting of a chat turn.
type UsageResponse struct {
	PromptTokens     int `json:"promptTokens"`
	CompletionTokens int `json:"completionTokens"`
	TotalTokens      int `json:"totalTokens"`
}

// ChatMessageResponse is the body of a successful POST /v1/chat.
type ChatMessageResponse struct {
	Response       string        `json:"response"`
	ConversationID string        `json:"conversationId"`
	Usage          UsageResponse `json:"usage"`
}

type ConversationResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	MessageCount int       `json:"messageCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type MessageResponse struct {
	ID         string    `json:"id"`
	Role       string    `json:"role"`
	Content    string    `json:"content"`
	TokenCount *int      `json:"tokenCount,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// ConversationMessagesResponse is a conversation together with its full history.
type ConversationMessagesResponse struct {
	Conversation ConversationResponse `json:"conversation"`
	Messages     []MessageResponse    `json:"messages"`
}

type ProfileResponse struct {
	UserID      string    `json:"uid"`
	Email       string    `json:"email,omitempty"`
	DisplayName string    `json:"displayName,omitempty"`
	PhotoURL    string    `json:"photoURL,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	LastActive  time.Time `json:"lastActive"`
	ChatCount   int       `json:"chatCount"`
}

// ListResponse wraps a page of items.
type ListResponse[T any] struct {
	Object string `json:"object"`
	Data   []T    `json:"data"`
	Total  int    `json:"total"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

// HealthResponse is returned by the liveness and readiness probes.
type HealthResponse struct {
	Status string `json:"status"`
}

func NewChatMessageResponse(result *chat.Result) ChatMessageResponse {
	return ChatMessageResponse{
		Response:       result.Response,
		ConversationID: result.ConversationID,
		Usage: UsageResponse{
			PromptTokens:     result.Usage.PromptTokens,
			CompletionTokens: result.Usage.CompletionTokens,
			TotalTokens:      result.Usage.TotalTokens,
		},
	}
}

func NewConversationResponse(conv *conversation.Conversation) ConversationResponse {
	return ConversationResponse{
		ID:           conv.PublicID,
		Title:        conv.Title,
		MessageCount: conv.MessageCount,
		CreatedAt:    conv.CreatedAt,
		UpdatedAt:    conv.UpdatedAt,
	}
}

func NewConversationListResponse(convs []*conversation.Conversation) ListResponse[ConversationResponse] {
	data := make([]ConversationResponse, 0, len(convs))
	for _, conv := range convs {
		data = append(data, NewConversationResponse(conv))
	}
	return ListResponse[ConversationResponse]{Object: "list", Data: data, Total: len(data)}
}

func NewConversationMessagesResponse(conv *conversation.Conversation, msgs []*conversation.Message) ConversationMessagesResponse {
	messages := make([]MessageResponse, 0, len(msgs))
	for _, msg := range msgs {
		messages = append(messages, MessageResponse{
			ID:         msg.PublicID,
			Role:       string(msg.Role),
			Content:    msg.Content,
			TokenCount: msg.TokenCount,
			Timestamp:  msg.CreatedAt,
		})
	}
	return ConversationMessagesResponse{
		Conversation: NewConversationResponse(conv),
		Messages:     messages,
	}
}

func NewProfileResponse(profile *user.Profile) ProfileResponse {
	return ProfileResponse{
		UserID:      profile.UserID,
		Email:       profile.Email,
		DisplayName: profile.DisplayName,
		PhotoURL:    profile.PhotoURL,
		CreatedAt:   profile.CreatedAt,
		LastActive:  profile.LastActive,
		ChatCount:   profile.ChatCount,
	}
}
