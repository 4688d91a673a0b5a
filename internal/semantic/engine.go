package semantic

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/velora/concierge/internal/catalog"
	"github.com/velora/concierge/internal/llm"
	"github.com/velora/concierge/internal/models"
	"go.uber.org/zap"
)

// DefaultMinSimilarity filters out very low relevance candidates.
const DefaultMinSimilarity = 0.25

// Engine is the embedding-similarity relevance engine. Product vectors are
// built once per catalog version during Init and read concurrently after.
type Engine struct {
	catalog       *catalog.Store
	embedder      llm.Embedder
	modelTag      string
	cachePath     string
	minSimilarity float64
	logger        *zap.Logger

	vectors [][]float32
}

// NewEngine creates a semantic engine. Init must complete before Search is
// called; rebuilding is an exclusive phase, never concurrent with queries.
func NewEngine(store *catalog.Store, embedder llm.Embedder, modelTag, cachePath string, minSimilarity float64, logger *zap.Logger) *Engine {
	if minSimilarity == 0 {
		minSimilarity = DefaultMinSimilarity
	}
	return &Engine{
		catalog:       store,
		embedder:      embedder,
		modelTag:      modelTag,
		cachePath:     cachePath,
		minSimilarity: minSimilarity,
		logger:        logger,
	}
}

// Init loads the persisted embedding cache, validating it against the
// current catalog; on any mismatch the whole index is regenerated.
func (e *Engine) Init(ctx context.Context) error {
	products := e.catalog.Products()

	if cache, err := LoadCache(e.cachePath); err == nil {
		if err := cache.Validate(products, e.modelTag); err == nil {
			e.vectors = cache.Vectors
			e.logger.Info("loaded embedding cache", zap.Int("products", len(products)))
			return nil
		} else {
			e.logger.Warn("embedding cache rejected, regenerating", zap.Error(err))
		}
	}

	return e.rebuild(ctx, products)
}

// rebuild embeds every product and persists a fresh cache.
func (e *Engine) rebuild(ctx context.Context, products []models.Product) error {
	if len(products) == 0 {
		e.vectors = nil
		return nil
	}

	texts := make([]string, len(products))
	for i := range products {
		texts[i] = productBlob(&products[i])
	}

	e.logger.Info("generating product embeddings", zap.Int("products", len(products)))
	vectors, err := e.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("failed to embed catalog: %w", err)
	}
	e.vectors = vectors

	ids := make([]string, len(products))
	for i := range products {
		ids[i] = products[i].ID
	}
	cache := &Cache{ProductIDs: ids, Vectors: vectors, Model: e.modelTag}
	if err := cache.Save(e.cachePath); err != nil {
		// Not fatal: the in-memory index works, the next start rebuilds.
		e.logger.Warn("failed to persist embedding cache", zap.Error(err))
	}
	return nil
}

// Search embeds the query, ranks every product by cosine similarity, drops
// candidates below the minimum threshold, and returns at most maxResults.
// Upstream embedding failures yield an empty result, not an error.
func (e *Engine) Search(ctx context.Context, query string, maxResults int) []models.ScoredProduct {
	if maxResults <= 0 || strings.TrimSpace(query) == "" || len(e.vectors) == 0 {
		return nil
	}

	queryVector, err := e.embedder.Embed(ctx, query)
	if err != nil {
		e.logger.Error("query embedding failed", zap.String("query", query), zap.Error(err))
		return nil
	}

	products := e.catalog.Products()
	if len(products) != len(e.vectors) {
		// Catalog swapped under a stale index; serve nothing rather than
		// misaligned scores.
		e.logger.Warn("embedding index out of sync with catalog",
			zap.Int("vectors", len(e.vectors)), zap.Int("products", len(products)))
		return nil
	}

	results := make([]models.ScoredProduct, 0, len(products))
	for i := range products {
		similarity := cosineSimilarity(queryVector, e.vectors[i])
		if similarity < e.minSimilarity {
			continue
		}
		results = append(results, models.ScoredProduct{Product: &products[i], Score: similarity})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > maxResults {
		results = results[:maxResults]
	}

	e.logger.Debug("semantic search",
		zap.String("query", query), zap.Int("results", len(results)))
	return results
}

// productBlob concatenates all relevant product fields into one embedding
// text, mirroring how catalog entries are written.
func productBlob(p *models.Product) string {
	parts := []string{
		"Name: " + p.Name,
		"Category: " + p.Category,
	}
	if len(p.Tags) > 0 {
		parts = append(parts, "Tags: "+strings.Join(p.Tags, " "))
	}
	if p.Description != "" {
		parts = append(parts, "Description: "+p.Description)
	}
	return strings.Join(parts, " ")
}
