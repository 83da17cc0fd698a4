package conversation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveTitle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"short", "Hello", "Hello"},
		{"exactly fifty", strings.Repeat("a", 50), strings.Repeat("a", 50)},
		{"fifty one", strings.Repeat("a", 51), strings.Repeat("a", 50) + "..."},
		{"multibyte", strings.Repeat("ğ", 55), strings.Repeat("ğ", 50) + "..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveTitle(tt.input))
		})
	}
}

func TestNewConversation(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	conv, err := NewConversation("u1", "Hello", now)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(conv.PublicID, "conv_"))
	assert.Equal(t, "u1", conv.UserID)
	assert.Equal(t, "Hello", conv.Title)
	assert.Zero(t, conv.MessageCount)
	assert.Equal(t, now, conv.CreatedAt)
	assert.Equal(t, now, conv.UpdatedAt)
}

func TestChronological(t *testing.T) {
	newestFirst := []*Message{{Content: "3"}, {Content: "2"}, {Content: "1"}}
	ordered := Chronological(newestFirst)

	var contents []string
	for _, msg := range ordered {
		contents = append(contents, msg.Content)
	}
	assert.Equal(t, []string{"1", "2", "3"}, contents)
	assert.Empty(t, Chronological(nil))
}
