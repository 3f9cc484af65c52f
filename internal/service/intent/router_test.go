package intent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zhouzirui/campushelp/backend/internal/analysis/sentiment"
	"github.com/zhouzirui/campushelp/backend/internal/model/turn"
)

func TestRouteFirstMatchWins(t *testing.T) {
	router := NewRouter(Fallback(),
		Rule{Name: "first", Match: containsAny("a"), Respond: fixed("1")},
		Rule{Name: "second", Match: containsAny("a"), Respond: fixed("2")},
	)

	reply := router.Route(context.Background(), turn.New("a", sentiment.Unavailable()))
	assert.Equal(t, Reply{Text: "1", Rule: "first"}, reply)
}

func TestRouteFallsBackWhenNothingMatches(t *testing.T) {
	router := NewRouter(Fallback(),
		Rule{Name: "never", Match: func(turn.Turn) bool { return false }, Respond: fixed("x")},
		Rule{Name: "nil-match"},
	)

	reply := router.Route(context.Background(), turn.New("zzz", sentiment.Unavailable()))
	assert.Equal(t, Reply{Text: FallbackReply, Rule: "fallback"}, reply)
}

func TestRouterCopiesRules(t *testing.T) {
	rules := []Rule{{Name: "only", Match: containsAny("x"), Respond: fixed("x")}}
	router := NewRouter(Fallback(), rules...)
	rules[0].Name = "mutated"

	assert.Equal(t, []string{"only", "fallback"}, router.Names())
}
