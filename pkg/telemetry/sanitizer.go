package telemetry

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"unicode/utf8"
)

// PIILevel defines how much of a chat message may reach logs and spans.
type PIILevel string

const (
	// PIILevelNone redacts message text entirely
	PIILevelNone PIILevel = "none"
	// PIILevelHashed keeps text but replaces detected PII with salted hashes
	PIILevelHashed PIILevel = "hashed"
	// PIILevelFull logs text as-is
	PIILevelFull PIILevel = "full"
)

const defaultPreviewLength = 80

var (
	emailPattern      = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phonePattern      = regexp.MustCompile(`\b\d{3}[-.\s]?\d{3}[-.\s]?\d{4}\b`)
	creditCardPattern = regexp.MustCompile(`\b\d{4}[- ]?\d{4}[- ]?\d{4}[- ]?\d{4}\b`)
	ipv4Pattern       = regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`)
)

// Sanitizer prepares user-authored text and identities for telemetry.
type Sanitizer struct {
	level         PIILevel
	salt          string
	previewLength int
}

// NewSanitizer creates a sanitizer. Unknown levels behave like PIILevelHashed.
func NewSanitizer(level PIILevel, salt string) *Sanitizer {
	return &Sanitizer{level: level, salt: salt, previewLength: defaultPreviewLength}
}

// Level returns the configured level.
func (s *Sanitizer) Level() PIILevel {
	return s.level
}

// MessagePreview returns a bounded, sanitized excerpt of a chat message.
func (s *Sanitizer) MessagePreview(message string) string {
	switch s.level {
	case PIILevelNone:
		return "[REDACTED]"
	case PIILevelFull:
		return truncate(message, s.previewLength)
	default:
		return truncate(s.hashPII(message), s.previewLength)
	}
}

// Identity returns the identity as it may appear in telemetry.
func (s *Sanitizer) Identity(identity string) string {
	if identity == "" {
		return ""
	}
	switch s.level {
	case PIILevelNone:
		return "[REDACTED]"
	case PIILevelFull:
		return identity
	default:
		return s.hash(identity)
	}
}

func (s *Sanitizer) hashPII(input string) string {
	result := emailPattern.ReplaceAllStringFunc(input, func(match string) string {
		return fmt.Sprintf("[EMAIL:%s]", s.hash(match))
	})
	result = creditCardPattern.ReplaceAllString(result, "[CC:REDACTED]")
	result = phonePattern.ReplaceAllStringFunc(result, func(match string) string {
		return fmt.Sprintf("[PHONE:%s]", s.hash(match))
	})
	return ipv4Pattern.ReplaceAllStringFunc(result, func(match string) string {
		return fmt.Sprintf("[IP:%s]", s.hash(match))
	})
}

// hash is a salted SHA-256, first 8 hex chars.
func (s *Sanitizer) hash(data string) string {
	sum := sha256.Sum256([]byte(data + s.salt))
	return hex.EncodeToString(sum[:])[:8]
}

func truncate(text string, max int) string {
	if utf8.RuneCountInString(text) <= max {
		return text
	}
	return string([]rune(text)[:max]) + "…"
}
