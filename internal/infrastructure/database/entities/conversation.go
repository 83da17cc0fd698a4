package entities

import (
	"time"

	"mert-chat/internal/domain/conversation"
)

// Conversation is the persisted conversation row.
type Conversation struct {
	ID           uint      `gorm:"primaryKey"`
	PublicID     string    `gorm:"size:64;not null;uniqueIndex"`
	UserID       string    `gorm:"size:255;not null;index:idx_conversations_user_updated,priority:1"`
	Title        string    `gorm:"size:255;not null"`
	MessageCount int       `gorm:"not null;default:0"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt    time.Time `gorm:"not null;autoUpdateTime:false;index:idx_conversations_user_updated,priority:2"`
}

func (Conversation) TableName() string {
	return "conversations"
}

// NewConversation maps a domain conversation to its row.
func NewConversation(c *conversation.Conversation) *Conversation {
	return &Conversation{
		ID:           c.ID,
		PublicID:     c.PublicID,
		UserID:       c.UserID,
		Title:        c.Title,
		MessageCount: c.MessageCount,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// EtoD converts the row to the domain type.
func (c *Conversation) EtoD() *conversation.Conversation {
	return &conversation.Conversation{
		ID:           c.ID,
		PublicID:     c.PublicID,
		UserID:       c.UserID,
		Title:        c.Title,
		MessageCount: c.MessageCount,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// Message is the persisted message row.
type Message struct {
	ID             uint      `gorm:"primaryKey"`
	PublicID       string    `gorm:"size:64;not null;uniqueIndex"`
	ConversationID uint      `gorm:"not null;index:idx_messages_conversation_created,priority:1"`
	Role           string    `gorm:"size:16;not null"`
	Content        string    `gorm:"type:text;not null"`
	TokenCount     *int
	CreatedAt      time.Time `gorm:"not null;autoCreateTime:false;index:idx_messages_conversation_created,priority:2"`
}

func (Message) TableName() string {
	return "messages"
}

// NewMessage maps a domain message to its row.
func NewMessage(m *conversation.Message) *Message {
	return &Message{
		ID:             m.ID,
		PublicID:       m.PublicID,
		ConversationID: m.ConversationID,
		Role:           string(m.Role),
		Content:        m.Content,
		TokenCount:     m.TokenCount,
		CreatedAt:      m.CreatedAt,
	}
}

// EtoD converts the row to the domain type.
func (m *Message) EtoD() *conversation.Message {
	return &conversation.Message{
		ID:             m.ID,
		PublicID:       m.PublicID,
		ConversationID: m.ConversationID,
		Role:           conversation.Role(m.Role),
		Content:        m.Content,
		TokenCount:     m.TokenCount,
		CreatedAt:      m.CreatedAt,
	}
}
