// Package catalog loads and serves the read-only product catalog.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/velora/concierge/internal/models"
	"go.uber.org/zap"
)

// Store holds the in-memory product catalog. The product slice is immutable
// once published; Reload swaps the whole slice atomically so in-flight
// queries never observe a partial refresh.
type Store struct {
	path     string
	products atomic.Pointer[[]models.Product]
	logger   *zap.Logger
}

// NewStore loads the catalog file at path. A missing file leaves the store
// empty and is logged, not fatal; a present but malformed file is an error.
func NewStore(path string, logger *zap.Logger) (*Store, error) {
	s := &Store{path: path, logger: logger}
	empty := make([]models.Product, 0)
	s.products.Store(&empty)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Warn("catalog file not found, starting with empty catalog", zap.String("path", path))
		return s, nil
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewStoreFromProducts creates a store over an already-loaded product slice.
func NewStoreFromProducts(products []models.Product, logger *zap.Logger) *Store {
	s := &Store{logger: logger}
	s.products.Store(&products)
	return s
}

// Reload re-reads the catalog file and atomically swaps the product slice.
// On failure the previous catalog stays published.
func (s *Store) Reload() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("failed to read catalog: %w", err)
	}

	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return fmt.Errorf("failed to parse catalog: %w", err)
	}

	s.products.Store(&products)
	s.logger.Info("catalog loaded", zap.String("path", s.path), zap.Int("products", len(products)))
	return nil
}

// Products returns the current catalog snapshot in load order.
// Callers must not mutate the returned slice.
func (s *Store) Products() []models.Product {
	return *s.products.Load()
}

// Len returns the number of products in the current snapshot.
func (s *Store) Len() int {
	return len(s.Products())
}

// GetByID returns the product with the given external id.
func (s *Store) GetByID(id string) (*models.Product, bool) {
	products := s.Products()
	for i := range products {
		if products[i].ID == id {
			return &products[i], true
		}
	}
	return nil, false
}
