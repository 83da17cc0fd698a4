package v1

import (
	"github.com/gin-gonic/gin"

	"mert-chat/internal/interfaces/httpserver/handlers"
)

// Routes encapsulates versioned route registration.
type Routes struct {
	handlers *handlers.Provider
}

// NewRoutes builds the v1 route registrar.
func NewRoutes(handlerProvider *handlers.Provider) *Routes {
	return &Routes{
		handlers: handlerProvider,
	}
}

// Register attaches all v1 routes under /v1 prefix.
func (r *Routes) Register(engine *gin.Engine) {
	group := engine.Group("/v1")
	registerChatRoutes(group, r.handlers.Chat)
	registerUserRoutes(group, r.handlers.User)
	registerConversationRoutes(group, r.handlers.Conversation)
}

func registerChatRoutes(router gin.IRoutes, handler *handlers.ChatHandler) {
	router.POST("/chat", handler.SendMessage)
}

func registerUserRoutes(router gin.IRoutes, handler *handlers.UserHandler) {
	router.GET("/users/me", handler.GetMe)
	router.POST("/users/me/activity", handler.RecordActivity)
}

func registerConversationRoutes(router gin.IRoutes, handler *handlers.ConversationHandler) {
	router.GET("/conversations", handler.List)
	router.GET("/conversations/:id/messages", handler.ListMessages)
}
