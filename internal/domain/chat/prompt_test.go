package chat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mert-chat/internal/domain/chat"
	"mert-chat/internal/domain/conversation"
)

func TestBuildPrompt(t *testing.T) {
	persona := chat.NewPersona("Mert", "be nice")
	history := []*conversation.Message{
		{Role: conversation.RoleUser, Content: "hi"},
		{Role: conversation.RoleAssistant, Content: "Merhaba!"},
	}

	prompt := chat.BuildPrompt(persona, history, "how are you?")

	assert.Equal(t, []chat.PromptMessage{
		{Role: conversation.RoleSystem, Content: "be nice"},
		{Role: conversation.RoleUser, Content: "hi"},
		{Role: conversation.RoleAssistant, Content: "Merhaba!"},
		{Role: conversation.RoleUser, Content: "how are you?"},
	}, prompt)
}

func TestBuildPromptWithoutHistory(t *testing.T) {
	prompt := chat.BuildPrompt(chat.DefaultPersona(), nil, "Hello")
	assert.Len(t, prompt, 2)
	assert.Equal(t, conversation.RoleSystem, prompt[0].Role)
}

func TestNewPersonaFallsBack(t *testing.T) {
	persona := chat.NewPersona("  ", "")
	assert.Equal(t, chat.DefaultPersona(), persona)

	custom := chat.NewPersona("Ada", "custom prompt")
	assert.Equal(t, "Ada", custom.Name)
	assert.Equal(t, "custom prompt", custom.SystemPrompt)
}
