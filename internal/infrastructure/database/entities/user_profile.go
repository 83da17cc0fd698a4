package entities

import (
	"time"

	"mert-chat/internal/domain/user"
)

// UserProfile is the persisted profile row.
type UserProfile struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      string    `gorm:"size:255;not null;uniqueIndex"`
	Email       string    `gorm:"size:320"`
	DisplayName string    `gorm:"size:255"`
	PhotoURL    string    `gorm:"size:2048"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime:false"`
	LastActive  time.Time `gorm:"not null"`
	ChatCount   int       `gorm:"not null;default:0"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}

func NewUserProfile(p *user.Profile) *UserProfile {
	return &UserProfile{
		ID:          p.ID,
		UserID:      p.UserID,
		Email:       p.Email,
		DisplayName: p.DisplayName,
		PhotoURL:    p.PhotoURL,
		CreatedAt:   p.CreatedAt,
		LastActive:  p.LastActive,
		ChatCount:   p.ChatCount,
	}
}

func (p *UserProfile) EtoD() *user.Profile {
	return &user.Profile{
		ID:          p.ID,
		UserID:      p.UserID,
		Email:       p.Email,
		DisplayName: p.DisplayName,
		PhotoURL:    p.PhotoURL,
		CreatedAt:   p.CreatedAt,
		LastActive:  p.LastActive,
		ChatCount:   p.ChatCount,
	}
}

// All lists every entity, for AutoMigrate in tests.
func All() []any {
	return []any{&Conversation{}, &Message{}, &UserProfile{}}
}
