package conversation

import (
	"context"
	"time"
	"unicode/utf8"

	"mert-chat/internal/utils/idgen"
)

// Role tags a message turn.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

const (
	TitleMaxLength = 50
	titleEllipsis  = "..."
)

// Conversation is one thread of messages owned by a single identity.
type Conversation struct {
	ID           uint
	PublicID     string
	UserID       string
	Title        string
	MessageCount int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Message is one role-tagged turn. TokenCount is nil when the provider reported none.
type Message struct {
	ID             uint
	PublicID       string
	ConversationID uint
	Role           Role
	Content        string
	TokenCount     *int
	CreatedAt      time.Time
}

// Exchange is the unit written atomically after a successful completion:
// both messages plus the conversation's updated_at and message_count += 2.
type Exchange struct {
	ConversationID   uint
	UserMessage      *Message
	AssistantMessage *Message
	At               time.Time
}

// Repository is the storage contract of the conversation aggregate.
type Repository interface {
	// FindLatestByUser returns the most recently updated conversation, or nil when the user has none.
	FindLatestByUser(ctx context.Context, userID string) (*Conversation, error)
	Create(ctx context.Context, conv *Conversation) error
	// ListRecentMessages returns up to limit messages, newest first.
	ListRecentMessages(ctx context.Context, conversationID uint, limit int) ([]*Message, error)
	AppendExchange(ctx context.Context, exchange Exchange) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*Conversation, error)
	FindByPublicID(ctx context.Context, publicID string) (*Conversation, error)
	// ListMessages returns every message of a conversation in chronological order.
	ListMessages(ctx context.Context, conversationID uint) ([]*Message, error)
}

// DeriveTitle is the first 50 characters of the opening message, with "..." when cut.
func DeriveTitle(firstMessage string) string {
	if utf8.RuneCountInString(firstMessage) <= TitleMaxLength {
		return firstMessage
	}
	runes := []rune(firstMessage)
	return string(runes[:TitleMaxLength]) + titleEllipsis
}

// NewConversation builds an unsaved conversation for userID opened by firstMessage.
func NewConversation(userID, firstMessage string, now time.Time) (*Conversation, error) {
	publicID, err := idgen.NewConversationID()
	if err != nil {
		return nil, err
	}
	return &Conversation{
		PublicID:     publicID,
		UserID:       userID,
		Title:        DeriveTitle(firstMessage),
		MessageCount: 0,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// NewMessage builds an unsaved message.
func NewMessage(conversationID uint, role Role, content string, tokenCount *int, now time.Time) (*Message, error) {
	publicID, err := idgen.NewMessageID()
	if err != nil {
		return nil, err
	}
	return &Message{
		PublicID:       publicID,
		ConversationID: conversationID,
		Role:           role,
		Content:        content,
		TokenCount:     tokenCount,
		CreatedAt:      now,
	}, nil
}

// Chronological reverses a newest-first slice in place and returns it.
func Chronological(newestFirst []*Message) []*Message {
	for i, j := 0, len(newestFirst)-1; i < j; i, j = i+1, j-1 {
		newestFirst[i], newestFirst[j] = newestFirst[j], newestFirst[i]
	}
	return newestFirst
}
