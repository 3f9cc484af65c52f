package sentiment

import (
	"context"

	analysis "github.com/zhouzirui/campushelp/backend/internal/analysis/sentiment"
)

// LexiconBackend classifies text offline with the keyword scorer.
type LexiconBackend struct{}

// Name implements Backend.
func (LexiconBackend) Name() string { return "lexicon" }

// Analyze implements Backend.
func (LexiconBackend) Analyze(ctx context.Context, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return string(analysis.Analyze(text)), nil
}
