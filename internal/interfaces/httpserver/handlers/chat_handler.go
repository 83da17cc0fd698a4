package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	"mert-chat/internal/domain/chat"
	"mert-chat/internal/infrastructure/metrics"
	"mert-chat/internal/infrastructure/observability"
	"mert-chat/internal/interfaces/httpserver/middlewares"
	"mert-chat/internal/interfaces/httpserver/requests"
	"mert-chat/internal/interfaces/httpserver/responses"
	"mert-chat/internal/utils/platformerrors"
)

// ChatSender runs one chat turn for a raw inbound message.
type ChatSender interface {
	Send(ctx context.Context, identity string, raw any) (*chat.Result, error)
}

// ChatHandler exposes the persona chat endpoint.
type ChatHandler struct {
	service ChatSender
	log     zerolog.Logger
}

// NewChatHandler constructs the handler.
func NewChatHandler(service ChatSender, log zerolog.Logger) *ChatHandler {
	return &ChatHandler{
		service: service,
		log:     log.With().Str("handler", "chat").Logger(),
	}
}

// SendMessage handles POST /v1/chat
// @Summary Send a message to Mert
// @Description Runs one chat turn: the message is appended to the caller's latest conversation (created on first use) and the persona's reply is returned.
// @Tags Chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body requests.SendMessageRequest true "Message to send"
// @Success 200 {object} responses.ChatMessageResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 401 {object} responses.ErrorResponse
// @Failure 429 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /v1/chat [post]
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var identity string
	if principal, ok := middlewares.PrincipalFromContext(c); ok {
		identity = principal.ID
	}

	// A body that does not decode carries no message; the gate still checks identity first.
	var req requests.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req.Message = nil
	}

	ctx := c.Request.Context()
	result, err := h.service.Send(ctx, identity, req.Message)
	if err != nil {
		metrics.RecordChatTurn(strings.ToLower(string(platformerrors.TypeOf(err))), false)
		observability.RecordError(ctx, err)
		responses.HandleError(c, err, "An error occurred processing your message.")
		return
	}

	metrics.RecordChatTurn("ok", result.ConversationCreated)

	observability.AddSpanAttributes(ctx,
		attribute.String("chat.conversation_id", result.ConversationID),
		attribute.Bool("chat.conversation_created", result.ConversationCreated),
		attribute.Int("chat.total_tokens", result.Usage.TotalTokens),
	)
	c.JSON(http.StatusOK, responses.NewChatMessageResponse(result))
}
