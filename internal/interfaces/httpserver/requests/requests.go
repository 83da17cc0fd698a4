package requests

// SendMessageRequest is the body of POST /v1/chat. Message stays untyped so a
// non-string value reaches the gate and is rejected there as INVALID_ARGUMENT.
type SendMessageRequest struct {
	Message any `json:"message"`
}

// ListConversationsQuery binds the optional page size of GET /v1/conversations.
type ListConversationsQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=0"`
}
