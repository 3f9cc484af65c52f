package intent

import (
	"context"

	"github.com/zhouzirui/campushelp/backend/internal/model/turn"
)

// Rule is one entry of the ordered chain. Its priority is its index.
type Rule struct {
	Name    string
	Match   func(t turn.Turn) bool
	Respond func(ctx context.Context, t turn.Turn) string
}

// Reply is the single outbound text of a turn and the rule that produced it.
type Reply struct {
	Text string
	Rule string
}

// Router evaluates rules top to bottom; the first match wins.
type Router struct {
	rules    []Rule
	fallback Rule
}

// NewRouter copies rules into a new Router. fallback answers turns that no
// rule matched; with a catch-all last rule it is never reached.
func NewRouter(fallback Rule, rules ...Rule) *Router {
	return &Router{
		rules:    append([]Rule(nil), rules...),
		fallback: fallback,
	}
}

// Route returns exactly one reply for t.
func (r *Router) Route(ctx context.Context, t turn.Turn) Reply {
	for _, rule := range r.rules {
		if rule.Match == nil || !rule.Match(t) {
			continue
		}
		return Reply{Text: rule.Respond(ctx, t), Rule: rule.Name}
	}
	return Reply{Text: r.fallback.Respond(ctx, t), Rule: r.fallback.Name}
}

// Names lists rule names in priority order, fallback last.
func (r *Router) Names() []string {
	names := make([]string, 0, len(r.rules)+1)
	for _, rule := range r.rules {
		names = append(names, rule.Name)
	}
	return append(names, r.fallback.Name)
}
