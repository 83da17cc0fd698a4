package middlewares

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru"
	"github.com/rs/zerolog"

	"mert-chat/internal/domain"
	authvalidator "mert-chat/internal/infrastructure/auth"
	"mert-chat/internal/infrastructure/metrics"
	"mert-chat/internal/interfaces/httpserver/responses"
	"mert-chat/internal/utils/platformerrors"
)

const (
	principalContextKey = "principal"
	seenProfilesSize    = 10000
)

// TokenValidator verifies bearer tokens.
type TokenValidator interface {
	Validate(ctx context.Context, rawToken string) (*authvalidator.PrincipalClaims, error)
}

// ProfileEnsurer creates the profile of a principal on first sight.
type ProfileEnsurer interface {
	EnsureProfile(ctx context.Context, principal domain.Principal) (bool, error)
}

// Authenticator resolves the caller identity from a bearer JWT or, when trusted,
// from headers injected by the gateway. Requests without credentials pass through
// unauthenticated; each handler decides whether it needs an identity.
type Authenticator struct {
	validator    TokenValidator
	profiles     ProfileEnsurer
	trustGateway bool
	seen         *lru.Cache
	logger       zerolog.Logger
}

// NewAuthenticator builds the auth middleware. validator and profiles may be nil.
func NewAuthenticator(validator TokenValidator, profiles ProfileEnsurer, trustGateway bool, logger zerolog.Logger) (*Authenticator, error) {
	seen, err := lru.New(seenProfilesSize)
	if err != nil {
		return nil, err
	}
	return &Authenticator{
		validator:    validator,
		profiles:     profiles,
		trustGateway: trustGateway,
		seen:         seen,
		logger:       logger.With().Str("component", "auth-middleware").Logger(),
	}, nil
}

// Middleware returns the gin handler.
func (a *Authenticator) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		jwtPrincipal, hasJWT, jwtErr := principalFromJWT(c, a.validator)
		if jwtErr != nil && !errors.Is(jwtErr, http.ErrNoCookie) {
			a.logger.Warn().Err(jwtErr).Str("path", c.FullPath()).Msg("jwt validation failed")
			metrics.RecordAuth(string(domain.AuthMethodJWT), "rejected")
			responses.HandleNewError(c, platformerrors.ErrorTypeUnauthenticated,
				"Invalid or expired token.", "5c1e7a93-2b4d-4f68-9a0c-7e3d1b5f2a84")
			return
		}

		switch {
		case hasJWT:
			a.admit(c, jwtPrincipal)
		case a.trustGateway:
			if principal, ok := principalFromGatewayHeaders(c.Request.Header); ok {
				a.admit(c, principal)
			} else {
				metrics.RecordAuth("none", "anonymous")
			}
		default:
			metrics.RecordAuth("none", "anonymous")
		}

		c.Next()
	}
}

func (a *Authenticator) admit(c *gin.Context, principal domain.Principal) {
	metrics.RecordAuth(string(principal.AuthMethod), "accepted")
	setPrincipal(c, principal)
	a.ensureProfile(c.Request.Context(), principal)
}

// ensureProfile runs the profile creation hook once per identity per process.
// Failures are logged and retried on the next request.
func (a *Authenticator) ensureProfile(ctx context.Context, principal domain.Principal) {
	if a.profiles == nil || a.seen.Contains(principal.ID) {
		return
	}
	created, err := a.profiles.EnsureProfile(ctx, principal)
	if err != nil {
		a.logger.Error().Err(err).Msg("profile creation hook failed")
		return
	}
	if created {
		metrics.RecordProfileCreated()
	}
	a.seen.Add(principal.ID, struct{}{})
}

// PrincipalFromContext returns the authenticated principal, if any.
func PrincipalFromContext(c *gin.Context) (domain.Principal, bool) {
	val, ok := c.Get(principalContextKey)
	if !ok {
		return domain.Principal{}, false
	}
	principal, ok := val.(domain.Principal)
	return principal, ok && principal.Authenticated()
}

func setPrincipal(c *gin.Context, principal domain.Principal) {
	c.Set(principalContextKey, principal)
	c.Set("user_id", principal.ID)
	c.Writer.Header().Set("X-Auth-Method", string(principal.AuthMethod))
}

func principalFromJWT(c *gin.Context, validator TokenValidator) (domain.Principal, bool, error) {
	if validator == nil {
		return domain.Principal{}, false, http.ErrNoCookie
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return domain.Principal{}, false, http.ErrNoCookie
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return domain.Principal{}, false, http.ErrNoCookie
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return domain.Principal{}, false, http.ErrNoCookie
	}
	claims, err := validator.Validate(c.Request.Context(), token)
	if err != nil {
		return domain.Principal{}, false, err
	}

	return domain.Principal{
		ID:         claims.Subject,
		AuthMethod: domain.AuthMethodJWT,
		Subject:    claims.Subject,
		Issuer:     claims.Issuer,
		Email:      claims.Email,
		Name:       claims.Name,
		Picture:    claims.Picture,
	}, true, nil
}

func principalFromGatewayHeaders(headers http.Header) (domain.Principal, bool) {
	userID := strings.TrimSpace(headers.Get("X-User-ID"))
	if userID == "" {
		return domain.Principal{}, false
	}

	return domain.Principal{
		ID:         userID,
		AuthMethod: domain.AuthMethodGateway,
		Subject:    userID,
		Email:      strings.TrimSpace(headers.Get("X-User-Email")),
		Name:       strings.TrimSpace(headers.Get("X-User-Name")),
		Picture:    strings.TrimSpace(headers.Get("X-User-Picture")),
	}, true
}
