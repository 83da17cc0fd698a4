package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"mert-chat/internal/infrastructure/observability"
	"mert-chat/internal/utils/platformerrors"
	"mert-chat/pkg/telemetry"
)

// LoggingMiddleware writes one access log line per request. The caller identity is
// passed through sanitizer, so the line never carries a raw user id at the hashed level.
func LoggingMiddleware(logger zerolog.Logger, sanitizer *telemetry.Sanitizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		level := zerolog.InfoLevel
		switch {
		case status >= 500:
			level = zerolog.ErrorLevel
		case status >= 400:
			level = zerolog.WarnLevel
		}
		event := logger.WithLevel(level)

		ctx := c.Request.Context()
		if traceID := observability.GetTraceID(ctx); traceID != "" {
			event = event.Str("trace_id", traceID).Str("span_id", observability.GetSpanID(ctx))
		}
		if requestID := RequestIDFromContext(c); requestID != "" {
			event = event.Str("request_id", requestID)
		}
		if principal, ok := PrincipalFromContext(c); ok {
			event = event.
				Str("user", sanitizer.Identity(principal.ID)).
				Str("auth_method", string(principal.AuthMethod))
		}
		if last := c.Errors.Last(); last != nil {
			event = event.Str("error_kind", string(platformerrors.TypeOf(last.Err)))
		}

		event.
			Str("method", c.Request.Method).
			Str("route", routeOf(c)).
			Int("status", status).
			Int64("latency_ms", time.Since(start).Milliseconds()).
			Str("client_ip", c.ClientIP()).
			Str("user_agent", c.Request.UserAgent()).
			Msg("http request")
	}
}

// routeOf returns the matched route template, or "unmatched".
func routeOf(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return "unmatched"
}
