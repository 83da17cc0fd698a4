package observability

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"mert-chat/internal/config"
)

func TestNormalizeEndpoint(t *testing.T) {
	tests := []struct {
		raw      string
		endpoint string
		insecure bool
	}{
		{"otel-collector:4318", "otel-collector:4318", true},
		{"http://otel-collector:4318/", "otel-collector:4318", true},
		{"https://otlp.example.com", "otlp.example.com", false},
	}
	for _, tt := range tests {
		endpoint, insecure := normalizeEndpoint(tt.raw)
		assert.Equal(t, tt.endpoint, endpoint, tt.raw)
		assert.Equal(t, tt.insecure, insecure, tt.raw)
	}
}

func TestParseHeaders(t *testing.T) {
	headers := parseHeaders("authorization=Bearer abc, x-team = chat ,broken,=empty")
	assert.Equal(t, map[string]string{"authorization": "Bearer abc", "x-team": "chat"}, headers)
}

func TestSetupWithoutExporterRecordsSpans(t *testing.T) {
	cfg := &config.Config{ServiceName: "mert-chat-test", Environment: "test"}
	shutdown, err := Setup(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	defer func() { require.NoError(t, shutdown(context.Background())) }()

	ctx, span := otel.Tracer("test").Start(context.Background(), "op")
	defer span.End()
	assert.NotEmpty(t, GetTraceID(ctx))
	assert.NotEmpty(t, GetSpanID(ctx))
	assert.Empty(t, GetTraceID(context.Background()))
}

func TestSpanHelpersIgnoreMissingSpan(t *testing.T) {
	ctx := context.Background()
	AddSpanAttributes(ctx)
	AddSpanEvent(ctx, "noop")
	RecordError(ctx, assert.AnError)

	ctx, span := StartSpan(ctx, "test", "op")
	defer span.End()
	AddSpanEvent(ctx, "happened")
	RecordError(ctx, assert.AnError)
}
