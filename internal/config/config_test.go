package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
debug: true
server:
  host: 0.0.0.0
  port: 9090
catalog:
  path: /srv/data/catalog.json
  watch: true
llm:
  chat_model: gemini-1.5-pro-latest
search:
  strategy: semantic
  min_similarity: 0.4
ranking:
  tag_exact_score: 7
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if !cfg.Debug {
		t.Error("Debug not loaded")
	}
	if cfg.Server.Host != "0.0.0.0" || cfg.Server.Port != 9090 {
		t.Errorf("server config = %+v", cfg.Server)
	}
	if cfg.Catalog.Path != "/srv/data/catalog.json" {
		t.Errorf("absolute path should pass through, got %q", cfg.Catalog.Path)
	}
	if !cfg.Catalog.Watch {
		t.Error("Watch not loaded")
	}
	if cfg.LLM.ChatModel != "gemini-1.5-pro-latest" {
		t.Errorf("ChatModel = %q", cfg.LLM.ChatModel)
	}
	if cfg.Search.Strategy != "semantic" || cfg.Search.MinSimilarity != 0.4 {
		t.Errorf("search config = %+v", cfg.Search)
	}
	if cfg.Ranking.TagExactScore != 7 {
		t.Errorf("TagExactScore = %d, want override 7", cfg.Ranking.TagExactScore)
	}
	// Untouched ranking fields still get defaults.
	if cfg.Ranking.NameExactScore == 0 {
		t.Error("NameExactScore default not applied")
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "{}"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Host != "localhost" || cfg.Server.Port != 8080 {
		t.Errorf("server defaults = %+v", cfg.Server)
	}
	if cfg.LLM.ChatModel == "" || cfg.LLM.EmbeddingModel == "" {
		t.Errorf("llm defaults missing: %+v", cfg.LLM)
	}
	if cfg.Search.Strategy != "lexical" {
		t.Errorf("default strategy = %q, want lexical", cfg.Search.Strategy)
	}
	if cfg.Search.MaxResults != 20 || cfg.Search.PageSize != 3 {
		t.Errorf("search defaults = %+v", cfg.Search)
	}
	if cfg.Search.MinSimilarity != 0.25 {
		t.Errorf("MinSimilarity default = %v", cfg.Search.MinSimilarity)
	}
	if cfg.Ranking == nil {
		t.Fatal("ranking defaults missing")
	}
}

func TestLoad_RelativePathsResolveAgainstConfigDir(t *testing.T) {
	path := writeConfig(t, `
catalog:
  path: ./products.json
storage:
  database_path: ./state/log.db
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	dir := filepath.Dir(path)
	if cfg.Catalog.Path != filepath.Join(dir, "products.json") {
		t.Errorf("Catalog.Path = %q", cfg.Catalog.Path)
	}
	if cfg.Storage.DatabasePath != filepath.Join(dir, "state", "log.db") {
		t.Errorf("DatabasePath = %q", cfg.Storage.DatabasePath)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := Load(writeConfig(t, "server: [not a map")); err == nil {
		t.Error("expected error for malformed yaml")
	}
}
