package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestUserAgentFamily(t *testing.T) {
	tests := map[string]string{
		"mozilla/5.0 (macintosh)": "browser",
		"curl/8.4.0":              "cli",
		"dart/3.2 (dart:io)":      "mobile",
		"go-http-client/1.1":      "sdk",
		"":                        "unknown",
	}
	for ua, want := range tests {
		assert.Equal(t, want, userAgentFamily(ua), ua)
	}
}

func TestRecordRateLimit(t *testing.T) {
	before := testutil.ToFloat64(RateLimitDecisionsTotal.WithLabelValues("memory", "rejected"))
	RecordRateLimit("memory", "rejected")
	after := testutil.ToFloat64(RateLimitDecisionsTotal.WithLabelValues("memory", "rejected"))
	assert.Equal(t, before+1, after)
}

func TestRecordChatTurnCountsCreatedConversations(t *testing.T) {
	before := testutil.ToFloat64(ConversationsCreatedTotal)
	RecordChatTurn("ok", true)
	RecordChatTurn("ok", false)
	assert.Equal(t, before+1, testutil.ToFloat64(ConversationsCreatedTotal))
}

func TestRecordProfileCreated(t *testing.T) {
	before := testutil.ToFloat64(ProfilesCreatedTotal)
	RecordProfileCreated()
	assert.Equal(t, before+1, testutil.ToFloat64(ProfilesCreatedTotal))
}
