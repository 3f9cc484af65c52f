package turn

import (
	"strings"
	"unicode"

	"github.com/zhouzirui/campushelp/backend/internal/analysis/sentiment"
)

// Turn is the immutable input of one routing pass.
type Turn struct {
	Raw        string
	Normalized string
	Sentiment  sentiment.Outcome
}

// New builds a Turn from the inbound text and the probe outcome for it.
func New(raw string, outcome sentiment.Outcome) Turn {
	return Turn{
		Raw:        raw,
		Normalized: Normalize(raw),
		Sentiment:  outcome,
	}
}

// Normalize lower-cases and trims text.
func Normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Empty reports whether the turn carries no text after normalization.
func (t Turn) Empty() bool {
	return t.Normalized == ""
}

// Contains reports whether the normalized text contains any of the words.
func (t Turn) Contains(words ...string) bool {
	for _, w := range words {
		if strings.Contains(t.Normalized, w) {
			return true
		}
	}
	return false
}

// Command matches prefix case-insensitively against the raw text with its
// leading whitespace removed, and returns the raw remainder after the prefix.
// Trailing whitespace of the raw text is kept in the remainder.
func (t Turn) Command(prefix string) (string, bool) {
	text := strings.TrimLeftFunc(t.Raw, unicode.IsSpace)
	if len(text) < len(prefix) || !strings.EqualFold(text[:len(prefix)], prefix) {
		return "", false
	}
	return text[len(prefix):], true
}
