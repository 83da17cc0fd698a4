package chat

import "mert-chat/internal/domain/conversation"

// BuildPrompt assembles persona, chronological history and the new user message.
// history must already be in chronological order.
func BuildPrompt(persona Persona, history []*conversation.Message, userMessage string) []PromptMessage {
	prompt := make([]PromptMessage, 0, len(history)+2)
	prompt = append(prompt, PromptMessage{Role: conversation.RoleSystem, Content: persona.SystemPrompt})
	for _, msg := range history {
		prompt = append(prompt, PromptMessage{Role: msg.Role, Content: msg.Content})
	}
	return append(prompt, PromptMessage{Role: conversation.RoleUser, Content: userMessage})
}
