package turn

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zhouzirui/campushelp/backend/internal/analysis/sentiment"
)

func TestNewNormalizes(t *testing.T) {
	tr := New("  Hello World \n", sentiment.Unavailable())

	assert.Equal(t, "  Hello World \n", tr.Raw)
	assert.Equal(t, "hello world", tr.Normalized)
	assert.False(t, tr.Empty())
	assert.True(t, New(" \t ", sentiment.Unavailable()).Empty())
}

func TestContains(t *testing.T) {
	tr := New("I need TUTORING", sentiment.Unavailable())

	assert.True(t, tr.Contains("xyz", "tutoring"))
	assert.False(t, tr.Contains("menu"))
	assert.False(t, tr.Contains())
}

func TestCommand(t *testing.T) {
	tests := []struct {
		raw    string
		prefix string
		rest   string
		ok     bool
	}{
		{raw: "reverse abc", prefix: "reverse ", rest: "abc", ok: true},
		{raw: "  REVERSE Abc ", prefix: "reverse ", rest: "Abc ", ok: true},
		{raw: "reverse ", prefix: "reverse ", rest: "", ok: true},
		{raw: "reverse", prefix: "reverse ", ok: false},
		{raw: "reversed text", prefix: "reverse ", ok: false},
		{raw: "rév", prefix: "reverse ", ok: false},
		{raw: "please reverse abc", prefix: "reverse ", ok: false},
	}

	for _, tt := range tests {
		rest, ok := New(tt.raw, sentiment.Unavailable()).Command(tt.prefix)
		assert.Equal(t, tt.ok, ok, tt.raw)
		assert.Equal(t, tt.rest, rest, tt.raw)
	}
}
