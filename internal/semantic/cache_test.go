package semantic

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/velora/concierge/internal/models"
)

func cacheProducts() []models.Product {
	return []models.Product{
		{ID: "P001", Name: "One"},
		{ID: "P002", Name: "Two"},
	}
}

func validCache() *Cache {
	return &Cache{
		ProductIDs: []string{"P001", "P002"},
		Vectors:    [][]float32{{1, 0}, {0, 1}},
		Model:      "test-model",
	}
}

func TestCache_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	want := validCache()
	if err := want.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := LoadCache(path)
	if err != nil {
		t.Fatalf("LoadCache: %v", err)
	}
	if got.Model != want.Model || len(got.ProductIDs) != 2 || len(got.Vectors) != 2 {
		t.Errorf("round trip lost data: %+v", got)
	}
	if got.ProductIDs[1] != "P002" || got.Vectors[1][1] != 1 {
		t.Errorf("round trip reordered data: %+v", got)
	}
}

func TestLoadCache_Invalid(t *testing.T) {
	dir := t.TempDir()
	garbled := filepath.Join(dir, "garbled.json")
	if err := os.WriteFile(garbled, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "nope.json")},
		{"garbled file", garbled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadCache(tt.path); !errors.Is(err, ErrCacheInvalid) {
				t.Errorf("LoadCache err = %v, want ErrCacheInvalid", err)
			}
		})
	}
}

func TestCache_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Cache)
		wantErr bool
	}{
		{"valid", func(*Cache) {}, false},
		{"wrong model", func(c *Cache) { c.Model = "other-model" }, true},
		{"id vector length mismatch", func(c *Cache) { c.Vectors = c.Vectors[:1] }, true},
		{"catalog length mismatch", func(c *Cache) {
			c.ProductIDs = c.ProductIDs[:1]
			c.Vectors = c.Vectors[:1]
		}, true},
		{"reordered ids", func(c *Cache) {
			c.ProductIDs[0], c.ProductIDs[1] = c.ProductIDs[1], c.ProductIDs[0]
		}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache := validCache()
			tt.mutate(cache)
			err := cache.Validate(cacheProducts(), "test-model")
			if tt.wantErr && !errors.Is(err, ErrCacheInvalid) {
				t.Errorf("Validate err = %v, want ErrCacheInvalid", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate: %v", err)
			}
		})
	}
}
