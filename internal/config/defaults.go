package config

import "github.com/velora/concierge/internal/ranking"

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = "./data/concierge.db"
	}
	if cfg.Catalog.Path == "" {
		cfg.Catalog.Path = "./data/catalog.json"
	}
	if cfg.Catalog.CompanyPath == "" {
		cfg.Catalog.CompanyPath = "./data/company.json"
	}
	if cfg.Catalog.BusinessPath == "" {
		cfg.Catalog.BusinessPath = "./data/business.json"
	}
	if cfg.Catalog.EventsPath == "" {
		cfg.Catalog.EventsPath = "./data/events.json"
	}
	if cfg.Catalog.GeographyPath == "" {
		cfg.Catalog.GeographyPath = "./data/geography.json"
	}
	if cfg.LLM.ChatModel == "" {
		cfg.LLM.ChatModel = "gemini-1.5-flash-latest"
	}
	if cfg.LLM.EmbeddingModel == "" {
		cfg.LLM.EmbeddingModel = "text-embedding-004"
	}
	if cfg.Search.Strategy == "" {
		cfg.Search.Strategy = "lexical"
	}
	if cfg.Search.MaxResults == 0 {
		cfg.Search.MaxResults = 20
	}
	if cfg.Search.PageSize == 0 {
		cfg.Search.PageSize = 3
	}
	if cfg.Search.EmbeddingCachePath == "" {
		cfg.Search.EmbeddingCachePath = "./data/embeddings_cache.json"
	}
	if cfg.Search.MinSimilarity == 0 {
		cfg.Search.MinSimilarity = 0.25
	}
	if cfg.Ranking == nil {
		cfg.Ranking = ranking.DefaultRankingConfig()
	} else {
		cfg.Ranking.ApplyDefaults()
	}
}
