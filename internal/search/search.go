// Package search defines the relevance contract shared by the lexical and
// semantic engines.
package search

import (
	"context"
	"fmt"

	"github.com/velora/concierge/internal/models"
)

// Searcher turns a free-text query into an ordered, filtered sequence of
// scored products. Implementations never return an error: upstream failures
// and empty matches both surface as an empty result.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) []models.ScoredProduct
}

// Strategy selects which relevance engine serves queries.
type Strategy string

const (
	// StrategyLexical is the deterministic synonym-expanded keyword scorer.
	StrategyLexical Strategy = "lexical"
	// StrategySemantic is the embedding cosine-similarity scorer.
	StrategySemantic Strategy = "semantic"
)

// ParseStrategy validates a strategy name from configuration.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyLexical, StrategySemantic:
		return Strategy(s), nil
	case "":
		return StrategyLexical, nil
	default:
		return "", fmt.Errorf("unknown search strategy %q", s)
	}
}
