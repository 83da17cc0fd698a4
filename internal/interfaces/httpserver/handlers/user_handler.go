package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"mert-chat/internal/domain"
	"mert-chat/internal/domain/user"
	"mert-chat/internal/interfaces/httpserver/middlewares"
	"mert-chat/internal/interfaces/httpserver/responses"
)

// ProfileService is the profile use case surface the handlers need.
type ProfileService interface {
	GetProfile(ctx context.Context, principal domain.Principal) (*user.Profile, error)
	RecordActivity(ctx context.Context, principal domain.Principal) error
}

// UserHandler exposes the caller's profile.
type UserHandler struct {
	service ProfileService
	log     zerolog.Logger
}

// NewUserHandler constructs the handler.
func NewUserHandler(service ProfileService, log zerolog.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log.With().Str("handler", "user").Logger(),
	}
}

// GetMe handles GET /v1/users/me
// @Summary Get the caller's profile
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} responses.ProfileResponse
// @Failure 401 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /v1/users/me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	principal, _ := middlewares.PrincipalFromContext(c)

	profile, err := h.service.GetProfile(c.Request.Context(), principal)
	if err != nil {
		responses.HandleError(c, err, "Failed to load profile.")
		return
	}

	c.JSON(http.StatusOK, responses.NewProfileResponse(profile))
}

// RecordActivity handles POST /v1/users/me/activity
// @Summary Record caller activity
// @Description Sets the caller's last active time to now, creating the profile when missing.
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} responses.SuccessResponse
// @Failure 401 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /v1/users/me/activity [post]
func (h *UserHandler) RecordActivity(c *gin.Context) {
	principal, _ := middlewares.PrincipalFromContext(c)

	if err := h.service.RecordActivity(c.Request.Context(), principal); err != nil {
		responses.HandleError(c, err, "Failed to update activity.")
		return
	}

	c.JSON(http.StatusOK, responses.SuccessResponse{Success: true})
}
