package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"mert-chat/internal/domain/conversation"
	"mert-chat/internal/interfaces/httpserver/middlewares"
	"mert-chat/internal/interfaces/httpserver/requests"
	"mert-chat/internal/interfaces/httpserver/responses"
	"mert-chat/internal/utils/platformerrors"
)

// ConversationHandler exposes the caller's conversation history.
type ConversationHandler struct {
	service conversation.Service
	log     zerolog.Logger
}

// NewConversationHandler constructs the handler.
func NewConversationHandler(service conversation.Service, log zerolog.Logger) *ConversationHandler {
	return &ConversationHandler{
		service: service,
		log:     log.With().Str("handler", "conversation").Logger(),
	}
}

// List handles GET /v1/conversations
// @Summary List conversations
// @Description Returns the caller's conversations, most recently updated first.
// @Tags Conversations
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum number of results (capped at 100)" default(20)
// @Success 200 {object} responses.ListResponse[responses.ConversationResponse]
// @Failure 400 {object} responses.ErrorResponse
// @Failure 401 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /v1/conversations [get]
func (h *ConversationHandler) List(c *gin.Context) {
	var query requests.ListConversationsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeInvalidArgument,
			"limit must be a non-negative integer.", "3e9a5c71-0d2b-4f84-a6c3-8b1e7d4f2a90")
		return
	}

	principal, _ := middlewares.PrincipalFromContext(c)
	convs, err := h.service.ListConversations(c.Request.Context(), principal.ID, query.Limit)
	if err != nil {
		responses.HandleError(c, err, "Failed to load conversations.")
		return
	}

	c.JSON(http.StatusOK, responses.NewConversationListResponse(convs))
}

// ListMessages handles GET /v1/conversations/:id/messages
// @Summary List conversation messages
// @Description Returns every message of one of the caller's conversations in chronological order.
// @Tags Conversations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Conversation ID"
// @Success 200 {object} responses.ConversationMessagesResponse
// @Failure 401 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /v1/conversations/{id}/messages [get]
func (h *ConversationHandler) ListMessages(c *gin.Context) {
	principal, _ := middlewares.PrincipalFromContext(c)

	conv, msgs, err := h.service.GetMessages(c.Request.Context(), principal.ID, c.Param("id"))
	if err != nil {
		responses.HandleError(c, err, "Failed to load messages.")
		return
	}

	c.JSON(http.StatusOK, responses.NewConversationMessagesResponse(conv, msgs))
}
