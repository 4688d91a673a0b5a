// Package server provides the HTTP API for the concierge service.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/velora/concierge/internal/assistant"
	"github.com/velora/concierge/internal/catalog"
	"github.com/velora/concierge/internal/config"
	"github.com/velora/concierge/internal/llm"
	"github.com/velora/concierge/internal/search"
	"github.com/velora/concierge/internal/store"
	"go.uber.org/zap"
)

// Responder runs one conversation turn. It never fails; degraded service
// surfaces as a fallback reply.
type Responder interface {
	Respond(ctx context.Context, userMessage string, history []llm.Message, persona assistant.Persona) *assistant.Result
}

// HistoryStore is the per-user message log and preference store.
type HistoryStore interface {
	AppendMessage(ctx context.Context, userID, role, content string) error
	Recent(ctx context.Context, userID string, n int) ([]store.Message, error)
	ClearHistory(ctx context.Context, userID string) (int64, error)
	SetPersona(ctx context.Context, userID, persona string) error
	GetPersona(ctx context.Context, userID string) (string, error)
}

// Server is the HTTP server for the concierge API.
type Server struct {
	responder Responder
	searcher  search.Searcher
	catalog   *catalog.Store
	store     HistoryStore
	config    *config.ServerConfig
	pageSize  int
	logger    *zap.Logger
	server    *http.Server
	locks     userLocks
}

// NewServer creates a server with the given dependencies.
func NewServer(
	responder Responder,
	searcher search.Searcher,
	cat *catalog.Store,
	store HistoryStore,
	cfg *config.ServerConfig,
	pageSize int,
	logger *zap.Logger,
) *Server {
	if pageSize <= 0 {
		pageSize = 3
	}
	return &Server{
		responder: responder,
		searcher:  searcher,
		catalog:   cat,
		store:     store,
		config:    cfg,
		pageSize:  pageSize,
		logger:    logger,
	}
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Post("/api/v1/chat", s.handleChat)
	r.Post("/api/v1/actions", s.handleAction)
	r.Get("/api/v1/products/{id}", s.handleGetProduct)
	r.Put("/api/v1/users/{id}/persona", s.handleSetPersona)
	r.Delete("/api/v1/users/{id}/history", s.handleClearHistory)
	r.Get("/health", s.handleHealth)

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: r,
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// userLocks serializes turns for the same user. Concurrent messages from
// one user would otherwise race on the message log's append order.
type userLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (l *userLocks) forUser(userID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.locks == nil {
		l.locks = make(map[string]*sync.Mutex)
	}
	lock, ok := l.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[userID] = lock
	}
	return lock
}
