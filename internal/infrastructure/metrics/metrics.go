package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mert_chat",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mert_chat",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"method", "endpoint", "status"},
	)

	// Chat turns by outcome (ok or the error kind)
	ChatTurnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mert_chat",
			Subsystem: "chat",
			Name:      "turns_total",
			Help:      "Chat turns by outcome",
		},
		[]string{"outcome"},
	)

	ConversationsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "mert_chat",
			Subsystem: "chat",
			Name:      "conversations_created_total",
			Help:      "Total conversations created",
		},
	)

	ProfilesCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "mert_chat",
			Subsystem: "users",
			Name:      "profiles_created_total",
			Help:      "Total user profiles created",
		},
	)

	TokensPromptTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mert_chat",
			Subsystem: "provider",
			Name:      "tokens_prompt_total",
			Help:      "Total prompt tokens consumed",
		},
		[]string{"model"},
	)

	TokensCompletionTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mert_chat",
			Subsystem: "provider",
			Name:      "tokens_completion_total",
			Help:      "Total completion tokens generated",
		},
		[]string{"model"},
	)

	ProviderErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mert_chat",
			Subsystem: "provider",
			Name:      "errors_total",
			Help:      "Total provider call failures",
		},
		[]string{"error_type"},
	)

	ProviderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mert_chat",
			Subsystem: "provider",
			Name:      "duration_seconds",
			Help:      "Completion call duration in seconds",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"model"},
	)

	RateLimitDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mert_chat",
			Subsystem: "ratelimit",
			Name:      "decisions_total",
			Help:      "Rate limiter decisions",
		},
		[]string{"backend", "decision"},
	)

	RateLimitTrackedIdentities = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "mert_chat",
			Subsystem: "ratelimit",
			Name:      "tracked_identities",
			Help:      "Identities currently held by the in-memory limiter",
		},
	)

	AuthRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mert_chat",
			Subsystem: "api",
			Name:      "auth_requests_total",
			Help:      "Total authentication attempts",
		},
		[]string{"auth_type", "status"},
	)

	UserAgentFamilyTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mert_chat",
			Subsystem: "api",
			Name:      "user_agent_family_total",
			Help:      "Requests by user agent family (browser/cli/sdk/unknown)",
		},
		[]string{"family"},
	)
)

// RecordRequest records an HTTP request
func RecordRequest(method, endpoint, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint, status).Observe(durationSec)
}

// RecordChatTurn records the outcome of one chat turn.
func RecordChatTurn(outcome string, conversationCreated bool) {
	if outcome == "" {
		outcome = "unknown"
	}
	ChatTurnsTotal.WithLabelValues(outcome).Inc()
	if conversationCreated {
		ConversationsCreatedTotal.Inc()
	}
}

func RecordProfileCreated() {
	ProfilesCreatedTotal.Inc()
}

// RecordTokens records token usage for a completion request
func RecordTokens(model string, promptTokens, completionTokens int) {
	TokensPromptTotal.WithLabelValues(model).Add(float64(promptTokens))
	TokensCompletionTotal.WithLabelValues(model).Add(float64(completionTokens))
}

func RecordProviderDuration(model string, durationSec float64) {
	ProviderDuration.WithLabelValues(model).Observe(durationSec)
}

func RecordProviderError(errorType string) {
	ProviderErrorsTotal.WithLabelValues(errorType).Inc()
}

// RecordRateLimit records a limiter decision: allowed, rejected or error.
func RecordRateLimit(backend, decision string) {
	RateLimitDecisionsTotal.WithLabelValues(backend, decision).Inc()
}

func SetTrackedIdentities(n int) {
	RateLimitTrackedIdentities.Set(float64(n))
}

func RecordAuth(authType, status string) {
	AuthRequestsTotal.WithLabelValues(authType, status).Inc()
}

// RecordUserAgent buckets the user agent into a low-cardinality family.
func RecordUserAgent(ua string) {
	UserAgentFamilyTotal.WithLabelValues(userAgentFamily(strings.ToLower(ua))).Inc()
}

func userAgentFamily(ua string) string {
	switch {
	case strings.Contains(ua, "mozilla") || strings.Contains(ua, "chrome") || strings.Contains(ua, "safari") || strings.Contains(ua, "firefox"):
		return "browser"
	case strings.Contains(ua, "curl") || strings.Contains(ua, "wget") || strings.Contains(ua, "httpie"):
		return "cli"
	case strings.Contains(ua, "okhttp") || strings.Contains(ua, "cfnetwork") || strings.Contains(ua, "dart"):
		return "mobile"
	case strings.Contains(ua, "axios") || strings.Contains(ua, "python-requests") || strings.Contains(ua, "go-http-client"):
		return "sdk"
	default:
		return "unknown"
	}
}
