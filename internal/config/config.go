// Package config provides configuration loading and structs for the concierge server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/velora/concierge/internal/ranking"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug   bool                   `yaml:"debug"`
	Server  ServerConfig           `yaml:"server"`
	Storage StorageConfig          `yaml:"storage"`
	Catalog CatalogConfig          `yaml:"catalog"`
	LLM     LLMConfig              `yaml:"llm"`
	Search  SearchConfig           `yaml:"search"`
	Ranking *ranking.RankingConfig `yaml:"ranking"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// StorageConfig holds the message log database path.
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// CatalogConfig holds paths for the product catalog and company info documents.
type CatalogConfig struct {
	Path          string `yaml:"path"`
	CompanyPath   string `yaml:"company_path"`
	BusinessPath  string `yaml:"business_path"`
	EventsPath    string `yaml:"events_path"`
	GeographyPath string `yaml:"geography_path"`
	Watch         bool   `yaml:"watch"`
}

// LLMConfig holds completion and embedding model settings. The API key is
// taken from the GEMINI_API_KEY environment variable, never from the file.
type LLMConfig struct {
	ChatModel      string `yaml:"chat_model"`
	EmbeddingModel string `yaml:"embedding_model"`
}

// SearchConfig holds relevance engine selection and result limits.
type SearchConfig struct {
	// Strategy selects the relevance engine: "lexical" or "semantic".
	Strategy           string  `yaml:"strategy"`
	MaxResults         int     `yaml:"max_results"`
	PageSize           int     `yaml:"page_size"`
	EmbeddingCachePath string  `yaml:"embedding_cache_path"`
	MinSimilarity      float64 `yaml:"min_similarity"`
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Storage.DatabasePath = expandPath(cfg.Storage.DatabasePath, configDir)
	cfg.Catalog.Path = expandPath(cfg.Catalog.Path, configDir)
	cfg.Catalog.CompanyPath = expandPath(cfg.Catalog.CompanyPath, configDir)
	cfg.Catalog.BusinessPath = expandPath(cfg.Catalog.BusinessPath, configDir)
	cfg.Catalog.EventsPath = expandPath(cfg.Catalog.EventsPath, configDir)
	cfg.Catalog.GeographyPath = expandPath(cfg.Catalog.GeographyPath, configDir)
	cfg.Search.EmbeddingCachePath = expandPath(cfg.Search.EmbeddingCachePath, configDir)

	return &cfg, nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
