package idgen

import (
	"crypto/rand"
	"fmt"
	"strings"
)

const (
	charset = "0123456789abcdefghijklmnopqrstuvwxyz"

	ConversationPrefix = "conv"
	MessagePrefix      = "msg"

	publicIDLength = 16
)

// GenerateSecureID generates a cryptographically secure ID with the given prefix and length.
// Only lowercase alphanumeric characters are used after the "prefix_" part.
func GenerateSecureID(prefix string, length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	encoded := make([]byte, length)
	for i := 0; i < length; i++ {
		encoded[i] = charset[int(bytes[i])%len(charset)]
	}

	return fmt.Sprintf("%s_%s", prefix, string(encoded)), nil
}

// NewConversationID returns a public conversation identifier (conv_xxx).
func NewConversationID() (string, error) {
	return GenerateSecureID(ConversationPrefix, publicIDLength)
}

// NewMessageID returns a public message identifier (msg_xxx).
func NewMessageID() (string, error) {
	return GenerateSecureID(MessagePrefix, publicIDLength)
}

// ValidateIDFormat reports whether id looks like "<expectedPrefix>_<lowercase alnum>".
func ValidateIDFormat(id, expectedPrefix string) bool {
	suffix, ok := strings.CutPrefix(id, expectedPrefix+"_")
	if !ok || suffix == "" {
		return false
	}
	for _, char := range suffix {
		if !strings.ContainsRune(charset, char) {
			return false
		}
	}
	return true
}
