package httpserver_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mert-chat/internal/config"
	"mert-chat/internal/domain/chat"
	"mert-chat/internal/domain/conversation"
	"mert-chat/internal/domain/user"
	"mert-chat/internal/infrastructure/repository/conversationrepo"
	"mert-chat/internal/infrastructure/repository/userrepo"
	"mert-chat/internal/interfaces/httpserver"
	"mert-chat/internal/interfaces/httpserver/handlers"
	"mert-chat/internal/interfaces/httpserver/middlewares"
	"mert-chat/pkg/telemetry"
)

type stubSender struct{}

func (stubSender) Send(context.Context, string, any) (*chat.Result, error) {
	return &chat.Result{Response: "ok", ConversationID: "c_1"}, nil
}

func newServer(t *testing.T, ready httpserver.ReadinessProbe) http.Handler {
	t.Helper()
	cfg := &config.Config{ServiceName: "mert-chat", Environment: "test", CORSOrigins: []string{"http://localhost:3000"}}
	log := zerolog.Nop()

	authn, err := middlewares.NewAuthenticator(nil, nil, true, log)
	require.NoError(t, err)

	provider := handlers.NewProvider(
		stubSender{},
		user.NewService(userrepo.NewInMemoryRepository(), nil, log),
		conversation.NewService(conversationrepo.NewInMemoryRepository(), nil, log),
		log,
	)
	return httpserver.New(cfg, log, provider, authn, ready, telemetry.NewSanitizer(telemetry.PIILevelHashed, "test")).Handler()
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestCoreRoutes(t *testing.T) {
	h := newServer(t, nil)

	assert.Equal(t, http.StatusOK, get(t, h, "/").Code)
	assert.JSONEq(t, `{"status":"healthy"}`, get(t, h, "/healthz").Body.String())
	assert.JSONEq(t, `{"status":"ready"}`, get(t, h, "/readyz").Body.String())

	metrics := get(t, h, "/metrics")
	assert.Equal(t, http.StatusOK, metrics.Code)
	assert.Contains(t, metrics.Body.String(), "go_goroutines")

	assert.NotEmpty(t, get(t, h, "/healthz").Header().Get("X-Request-Id"))
}

func TestReadinessFailure(t *testing.T) {
	h := newServer(t, func(context.Context) error { return errors.New("connection refused") })

	w := get(t, h, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestV1RoutesMounted(t *testing.T) {
	h := newServer(t, nil)

	w := get(t, h, "/v1/conversations")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/v1/conversations", nil)
	req.Header.Set("X-User-ID", "u1")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"object":"list","data":[],"total":0}`, w.Body.String())
}
