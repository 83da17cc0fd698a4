package middlewares

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"

	"mert-chat/internal/utils/platformerrors"
)

// TracingMiddleware opens a server span per request, continuing any upstream trace.
func TracingMiddleware(serviceName string) gin.HandlerFunc {
	tracer := otel.Tracer(serviceName)

	return func(c *gin.Context) {
		ctx := otel.GetTextMapPropagator().Extract(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))

		route := routeOf(c)
		ctx, span := tracer.Start(ctx, c.Request.Method+" "+route,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				semconv.HTTPRequestMethodKey.String(c.Request.Method),
				semconv.HTTPRoute(route),
				semconv.ServerAddress(c.Request.Host),
				semconv.UserAgentOriginal(c.Request.UserAgent()),
				attribute.String("request.id", RequestIDFromContext(c)),
			),
		)
		defer span.End()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		status := c.Writer.Status()
		span.SetAttributes(semconv.HTTPResponseStatusCode(status))
		if principal, ok := PrincipalFromContext(c); ok {
			span.SetAttributes(attribute.String("auth.method", string(principal.AuthMethod)))
		}

		if status < 400 {
			span.SetStatus(codes.Ok, "")
			return
		}
		span.SetStatus(codes.Error, c.Errors.String())
		if last := c.Errors.Last(); last != nil {
			span.SetAttributes(attribute.String("error.kind", string(platformerrors.TypeOf(last.Err))))
			span.RecordError(last.Err)
		}
	}
}
