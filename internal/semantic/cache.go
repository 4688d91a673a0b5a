// Package semantic provides the embedding-similarity relevance engine.
package semantic

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/velora/concierge/internal/models"
)

// ErrCacheInvalid marks a persisted cache that does not match the current
// catalog or embedding model and must be regenerated.
var ErrCacheInvalid = errors.New("semantic: embedding cache invalid")

// Cache is the persisted embedding index. ProductIDs is positionally
// aligned with Vectors and with the catalog's load order.
type Cache struct {
	ProductIDs []string    `json:"product_ids"`
	Vectors    [][]float32 `json:"vectors"`
	Model      string      `json:"model"`
}

// LoadCache reads a cache file. A missing or unreadable file is reported as
// ErrCacheInvalid so callers regenerate instead of failing.
func LoadCache(path string) (*Cache, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCacheInvalid, err)
	}
	var cache Cache
	if err := json.Unmarshal(data, &cache); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCacheInvalid, err)
	}
	return &cache, nil
}

// Save writes the cache to path.
func (c *Cache) Save(path string) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal embedding cache: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write embedding cache: %w", err)
	}
	return nil
}

// Validate checks the cache against the current catalog and model tag.
// Any length, ordering, or model mismatch invalidates the whole cache.
func (c *Cache) Validate(products []models.Product, modelTag string) error {
	if c.Model != modelTag {
		return fmt.Errorf("%w: model %q, want %q", ErrCacheInvalid, c.Model, modelTag)
	}
	if len(c.ProductIDs) != len(c.Vectors) {
		return fmt.Errorf("%w: %d ids but %d vectors", ErrCacheInvalid, len(c.ProductIDs), len(c.Vectors))
	}
	if len(c.ProductIDs) != len(products) {
		return fmt.Errorf("%w: %d cached products, catalog has %d", ErrCacheInvalid, len(c.ProductIDs), len(products))
	}
	for i := range products {
		if c.ProductIDs[i] != products[i].ID {
			return fmt.Errorf("%w: id mismatch at position %d", ErrCacheInvalid, i)
		}
	}
	return nil
}
