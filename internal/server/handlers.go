package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/velora/concierge/internal/assistant"
	"github.com/velora/concierge/internal/llm"
	"github.com/velora/concierge/internal/models"
	"github.com/velora/concierge/internal/nav"
	"github.com/velora/concierge/internal/store"
	"go.uber.org/zap"
)

// historyLimit caps how many logged messages feed the model as context.
const historyLimit = 10

type chatRequest struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

type chatResponse struct {
	Reply string       `json:"reply"`
	Query string       `json:"query,omitempty"`
	Total int          `json:"total,omitempty"`
	Page  *productPage `json:"page,omitempty"`
}

type actionRequest struct {
	UserID string `json:"user_id"`
	Token  string `json:"token"`
}

// productPage is one screen of search results plus the tokens that navigate
// away from it. Tokens carry the query, so paging needs no server session.
type productPage struct {
	Items     []pageItem `json:"items"`
	Offset    int        `json:"offset"`
	Total     int        `json:"total"`
	PrevToken string     `json:"prev_token,omitempty"`
	NextToken string     `json:"next_token,omitempty"`
}

type pageItem struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Price            int    `json:"price"`
	ShortDescription string `json:"short_description,omitempty"`
	Token            string `json:"token"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" || req.Message == "" {
		s.respondError(w, http.StatusBadRequest, "user_id and message are required")
		return
	}
	ctx := r.Context()

	// One turn at a time per user; different users proceed concurrently.
	lock := s.locks.forUser(req.UserID)
	lock.Lock()
	defer lock.Unlock()

	persona := s.personaFor(ctx, req.UserID)

	history, err := s.store.Recent(ctx, req.UserID, historyLimit)
	if err != nil {
		s.logger.Error("failed to load history, proceeding without it",
			zap.String("user_id", req.UserID), zap.Error(err))
		history = nil
	}

	result := s.responder.Respond(ctx, req.Message, toLLMHistory(history), persona)

	if err := s.store.AppendMessage(ctx, req.UserID, "user", req.Message); err != nil {
		s.logger.Error("failed to log user message", zap.Error(err))
	}
	if err := s.store.AppendMessage(ctx, req.UserID, "assistant", result.Text); err != nil {
		s.logger.Error("failed to log assistant message", zap.Error(err))
	}

	resp := chatResponse{Reply: result.Text}
	if len(result.Products) > 0 {
		resp.Query = result.Query
		resp.Total = len(result.Products)
		resp.Page = s.buildPage(result.Query, 0, result.Products)
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := nav.Decode(req.Token)
	if err != nil {
		if !errors.Is(err, nav.ErrMalformedToken) {
			s.logger.Error("token decode failed", zap.Error(err))
		}
		s.respondJSON(w, http.StatusOK, map[string]string{
			"status":  "empty",
			"message": "Nothing more to show.",
		})
		return
	}

	switch token.Action {
	case nav.ActionProduct:
		s.respondProductCard(w, token)
	case nav.ActionMoreProducts, nav.ActionBackToList:
		s.respondResultPage(w, r, token)
	}
}

// respondProductCard serves the full card for one product, with a token to
// return to the list position the user came from.
func (s *Server) respondProductCard(w http.ResponseWriter, token *nav.Token) {
	product, ok := s.catalog.GetByID(token.ProductID)
	if !ok {
		s.respondJSON(w, http.StatusOK, map[string]string{
			"status":  "empty",
			"message": "This product is no longer available.",
		})
		return
	}
	resp := map[string]any{
		"status":  "ok",
		"product": product,
	}
	if token.Query != "" {
		resp["back_token"] = nav.EncodeBack(token.Query, token.Offset)
	}
	s.respondJSON(w, http.StatusOK, resp)
}

// respondResultPage re-runs the search carried by the token and serves the
// page at its offset.
func (s *Server) respondResultPage(w http.ResponseWriter, r *http.Request, token *nav.Token) {
	results := s.searcher.Search(r.Context(), token.Query, assistant.SearchResultCap)
	if token.Offset >= len(results) {
		s.respondJSON(w, http.StatusOK, map[string]string{
			"status":  "empty",
			"message": "Nothing more to show.",
		})
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"query":  token.Query,
		"page":   s.buildPage(token.Query, token.Offset, results),
	})
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	product, ok := s.catalog.GetByID(id)
	if !ok {
		s.respondError(w, http.StatusNotFound, "product not found")
		return
	}
	s.respondJSON(w, http.StatusOK, product)
}

type personaRequest struct {
	Persona string `json:"persona"`
}

func (s *Server) handleSetPersona(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	var req personaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	persona := assistant.ParsePersona(req.Persona)
	if err := s.store.SetPersona(r.Context(), userID, string(persona)); err != nil {
		s.logger.Error("failed to set persona", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "failed to save persona")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"persona": string(persona)})
}

func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	deleted, err := s.store.ClearHistory(r.Context(), userID)
	if err != nil {
		s.logger.Error("failed to clear history", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "failed to clear history")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// buildPage cuts one page out of the full result set and derives the
// navigation tokens around it.
func (s *Server) buildPage(query string, offset int, results []models.ScoredProduct) *productPage {
	end := offset + s.pageSize
	if end > len(results) {
		end = len(results)
	}

	page := &productPage{
		Offset: offset,
		Total:  len(results),
	}
	for _, sp := range results[offset:end] {
		page.Items = append(page.Items, pageItem{
			ID:               sp.Product.ID,
			Name:             sp.Product.Name,
			Price:            sp.Product.Price,
			ShortDescription: sp.Product.ShortDescription(),
			Token:            nav.EncodeProduct(sp.Product.ID, query, offset),
		})
	}
	if offset > 0 {
		prev := offset - s.pageSize
		if prev < 0 {
			prev = 0
		}
		page.PrevToken = nav.EncodeMore(query, prev)
	}
	if end < len(results) {
		page.NextToken = nav.EncodeMore(query, end)
	}
	return page
}

func (s *Server) personaFor(ctx context.Context, userID string) assistant.Persona {
	stored, err := s.store.GetPersona(ctx, userID)
	if err != nil {
		s.logger.Warn("failed to load persona preference", zap.Error(err))
	}
	return assistant.ParsePersona(stored)
}

// toLLMHistory converts logged messages into model conversation turns.
func toLLMHistory(messages []store.Message) []llm.Message {
	history := make([]llm.Message, 0, len(messages))
	for _, m := range messages {
		role := llm.RoleUser
		if m.Role == "assistant" {
			role = llm.RoleAssistant
		}
		history = append(history, llm.Message{Role: role, Text: m.Content})
	}
	return history
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
