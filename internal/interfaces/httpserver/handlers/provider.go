package handlers

import (
	"github.com/rs/zerolog"

	"mert-chat/internal/domain/conversation"
)

// Provider wires all HTTP handlers for dependency injection.
type Provider struct {
	Chat         *ChatHandler
	User         *UserHandler
	Conversation *ConversationHandler
}

// NewProvider constructs the handler provider with domain services.
func NewProvider(chatService ChatSender, profileService ProfileService, conversationService conversation.Service, log zerolog.Logger) *Provider {
	return &Provider{
		Chat:         NewChatHandler(chatService, log),
		User:         NewUserHandler(profileService, log),
		Conversation: NewConversationHandler(conversationService, log),
	}
}
