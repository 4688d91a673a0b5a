package ranking

import (
	"context"
	"sort"
	"strings"

	"github.com/velora/concierge/internal/catalog"
	"github.com/velora/concierge/internal/models"
	"go.uber.org/zap"
)

// faceCategory is the catalog category that receives the categorical prior
// on face-related queries.
const faceCategory = "face cosmetics"

// jointBrandToken marks the joint-support product line in product names.
const jointBrandToken = "flex"

var (
	faceQueryTerms  = []string{"face", "facial", "complexion"}
	jointQueryTerms = []string{"joint", "ligament", "cartilage"}
)

// Engine is the lexical relevance engine: synonym-expanded keyword scoring
// with soft exclusion rules. Deterministic for a fixed catalog and query.
type Engine struct {
	catalog *catalog.Store
	config  *RankingConfig
	graph   *SynonymGraph
	rules   []ExclusionRule
	logger  *zap.Logger
}

// NewEngine creates a lexical engine over the given catalog store.
func NewEngine(store *catalog.Store, cfg *RankingConfig, logger *zap.Logger) *Engine {
	if cfg == nil {
		cfg = DefaultRankingConfig()
	}
	cfg.ApplyDefaults()

	return &Engine{
		catalog: store,
		config:  cfg,
		graph:   NewSynonymGraph(),
		rules:   defaultExclusionRules(),
		logger:  logger,
	}
}

// Search scores every catalog product against the query and returns at most
// maxResults candidates with strictly positive scores, ordered by score
// descending. Ties keep catalog order. An empty query, an empty catalog, or
// a query matching nothing yields an empty result.
func (e *Engine) Search(_ context.Context, query string, maxResults int) []models.ScoredProduct {
	if maxResults <= 0 {
		return nil
	}
	queryLower := strings.ToLower(strings.TrimSpace(query))
	if queryLower == "" {
		return nil
	}

	words := strings.Fields(queryLower)
	expanded := e.graph.Expand(words)

	var triggered []*ExclusionRule
	for i := range e.rules {
		if e.rules[i].Triggered(queryLower) {
			triggered = append(triggered, &e.rules[i])
		}
	}

	products := e.catalog.Products()
	results := make([]models.ScoredProduct, 0, len(products))
	for i := range products {
		p := &products[i]
		score := e.scoreProduct(p, queryLower, words, expanded, triggered)
		if score > 0 {
			results = append(results, models.ScoredProduct{Product: p, Score: float64(score)})
		}
	}

	// Stable sort keeps catalog order for equal scores, which makes
	// repeated searches reproducible.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	// Once a strong match exists, weak long-tail matches only add noise.
	if len(results) > 0 && int(results[0].Score) > e.config.StrongTopScore {
		cut := results[:0]
		for _, r := range results {
			if int(r.Score) >= e.config.WeakScoreCutoff {
				cut = append(cut, r)
			}
		}
		results = cut
	}

	if len(results) > maxResults {
		results = results[:maxResults]
	}

	e.logger.Debug("lexical search",
		zap.String("query", query),
		zap.Int("expanded_terms", len(expanded)),
		zap.Int("results", len(results)))
	return results
}

// scoreProduct accumulates the integer score from independent signals. Each
// signal contributes only its own term; an exact match on a field suppresses
// the synonym signal for that same field.
func (e *Engine) scoreProduct(p *models.Product, queryLower string, words, expanded []string, triggered []*ExclusionRule) int {
	cfg := e.config
	score := 0

	nameLower := strings.ToLower(p.Name)
	categoryLower := strings.ToLower(p.Category)
	subcategoryLower := strings.ToLower(p.Subcategory)
	descriptionLower := strings.ToLower(p.Description)

	for _, tag := range p.Tags {
		tagLower := strings.ToLower(tag)
		if matchesAnyEitherDirection(tagLower, words) {
			score += cfg.TagExactScore
		} else if containsAny(tagLower, expanded) {
			score += cfg.TagSynonymScore
		}
	}

	if containsAny(nameLower, words) {
		score += cfg.NameExactScore
	} else if containsAnyLongerThan(nameLower, expanded, cfg.MinSynonymNameLen) {
		score += cfg.NameSynonymScore
	}

	if descriptionLower != "" {
		if containsAny(descriptionLower, words) {
			score += cfg.DescriptionExactScore
		} else if containsAny(descriptionLower, expanded) {
			score += cfg.DescriptionSynonymScore
		}
	}

	if categoryLower != "" && (containsAny(categoryLower, words) || strings.Contains(queryLower, categoryLower)) {
		score += cfg.CategoryScore
	}
	if subcategoryLower != "" && (containsAny(subcategoryLower, words) || strings.Contains(queryLower, subcategoryLower)) {
		score += cfg.SubcategoryScore
	}

	// Categorical prior, not merely additive: face queries pull the face
	// cosmetics category up and push every other category down.
	if containsAnyTerm(queryLower, faceQueryTerms) {
		if categoryLower == faceCategory {
			score += cfg.FaceCategoryBoost
		} else {
			score -= cfg.FaceCategoryPenalty
		}
	}

	if containsAnyTerm(queryLower, jointQueryTerms) && strings.Contains(nameLower, jointBrandToken) {
		score += cfg.JointBrandBoost
	}

	if len(triggered) > 0 {
		productText := strings.Join([]string{
			nameLower, categoryLower, subcategoryLower,
			strings.ToLower(strings.Join(p.Tags, " ")), descriptionLower,
		}, " ")
		for _, rule := range triggered {
			if rule.Matches(productText) {
				score -= cfg.ExclusionPenalty
			}
		}
	}

	return score
}

// matchesAnyEitherDirection reports whether any word is a substring of text
// or text is a substring of any word.
func matchesAnyEitherDirection(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) || strings.Contains(w, text) {
			return true
		}
	}
	return false
}

// containsAny reports whether text contains any of the terms.
func containsAny(text string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}

// containsAnyLongerThan is containsAny restricted to terms longer than minLen.
func containsAnyLongerThan(text string, terms []string, minLen int) bool {
	for _, t := range terms {
		if len(t) > minLen && strings.Contains(text, t) {
			return true
		}
	}
	return false
}

// containsAnyTerm reports whether the query mentions any of the terms.
func containsAnyTerm(queryLower string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(queryLower, t) {
			return true
		}
	}
	return false
}
