package httpclients

import (
	"context"
	"time"

	"resty.dev/v3"

	"mert-chat/internal/infrastructure/logger"
	"mert-chat/internal/utils/platformerrors"
)

type HTTPClientStartsAt struct{}

// NewClient returns a resty client that logs every exchange at debug level.
// Bodies are never logged; they carry user messages.
func NewClient(clientName string, timeout time.Duration) *resty.Client {
	client := resty.New()
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	client.AddRequestMiddleware(func(c *resty.Client, r *resty.Request) error {
		ctx := context.WithValue(r.Context(), HTTPClientStartsAt{}, time.Now())
		r.SetContext(ctx)
		return nil
	})
	client.AddResponseMiddleware(func(c *resty.Client, r *resty.Response) error {
		log := logger.GetLogger()
		ctx := r.Request.Context()
		startTime, _ := ctx.Value(HTTPClientStartsAt{}).(time.Time)

		event := log.Debug().
			Str("request_id", platformerrors.RequestIDFromContext(ctx)).
			Str("client", clientName).
			Int("status", r.StatusCode()).
			Dur("latency", time.Since(startTime))
		if r.Request.RawRequest != nil {
			event = event.
				Str("method", r.Request.RawRequest.Method).
				Str("path", r.Request.RawRequest.URL.Path)
		}
		event.Msg("HTTP client request")
		return nil
	})
	return client
}
