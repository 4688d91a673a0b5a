// Package main is the concierge service entry point.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/velora/concierge/internal/assistant"
	"github.com/velora/concierge/internal/catalog"
	"github.com/velora/concierge/internal/company"
	"github.com/velora/concierge/internal/config"
	"github.com/velora/concierge/internal/llm"
	"github.com/velora/concierge/internal/ranking"
	"github.com/velora/concierge/internal/search"
	"github.com/velora/concierge/internal/semantic"
	"github.com/velora/concierge/internal/server"
	"github.com/velora/concierge/internal/store"
	"go.uber.org/zap"
)

var version = "dev"

const defaultConfigPath = "./config.yaml"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "server":
		runServer(os.Args[2:])
	case "version":
		fmt.Println(version)
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: concierge <command>")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  server [-config path]   Run the concierge HTTP service")
	fmt.Fprintln(os.Stderr, "  version                 Print the version")
}

func runServer(args []string) {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "path to config file")
	_ = fs.Parse(args)

	// .env keeps the API key out of the config file; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Debug)
	defer func() { _ = logger.Sync() }()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		logger.Fatal("GEMINI_API_KEY is not set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := store.NewStore(cfg.Storage.DatabasePath)
	if err != nil {
		logger.Fatal("failed to open message store", zap.Error(err))
	}
	defer db.Close()

	cat, err := catalog.NewStore(cfg.Catalog.Path, logger)
	if err != nil {
		logger.Fatal("failed to load catalog", zap.Error(err))
	}

	client, err := llm.NewClient(ctx, apiKey, cfg.LLM.ChatModel, cfg.LLM.EmbeddingModel, logger)
	if err != nil {
		logger.Fatal("failed to create LLM client", zap.Error(err))
	}
	defer func() { _ = client.Close() }()

	strategy, err := search.ParseStrategy(cfg.Search.Strategy)
	if err != nil {
		logger.Fatal("invalid search config", zap.Error(err))
	}

	var searcher search.Searcher
	switch strategy {
	case search.StrategySemantic:
		engine := semantic.NewEngine(cat, client, client.ModelTag(),
			cfg.Search.EmbeddingCachePath, cfg.Search.MinSimilarity, logger)
		if err := engine.Init(ctx); err != nil {
			logger.Fatal("failed to build embedding index", zap.Error(err))
		}
		searcher = engine
	default:
		searcher = ranking.NewEngine(cat, cfg.Ranking, logger)
	}
	logger.Info("relevance engine ready",
		zap.String("strategy", string(strategy)), zap.Int("products", cat.Len()))

	info := company.NewSource(
		cfg.Catalog.CompanyPath, cfg.Catalog.BusinessPath,
		cfg.Catalog.EventsPath, cfg.Catalog.GeographyPath, logger)

	orchestrator := assistant.NewOrchestrator(client, searcher, info, logger)

	srv := server.NewServer(orchestrator, searcher, cat, db, &cfg.Server, cfg.Search.PageSize, logger)

	if cfg.Catalog.Watch {
		watcher := catalog.NewWatcher(cfg.Catalog.Path, func() {
			if err := cat.Reload(); err != nil {
				logger.Error("catalog reload failed", zap.Error(err))
				return
			}
			if strategy == search.StrategySemantic {
				logger.Warn("catalog changed; restart to rebuild the embedding index")
			}
		}, logger)
		go func() {
			if err := watcher.Start(ctx); err != nil {
				logger.Error("catalog watcher stopped", zap.Error(err))
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Stop(shutdownCtx); err != nil {
			logger.Error("shutdown error", zap.Error(err))
		}
	case err := <-errCh:
		if err != nil {
			logger.Fatal("server failed", zap.Error(err))
		}
	}
}

func newLogger(debug bool) *zap.Logger {
	var logger *zap.Logger
	var err error
	if debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	return logger
}
