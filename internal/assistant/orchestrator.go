// Package assistant drives the two-round tool-dispatch protocol with the
// language model.
package assistant

import (
	"context"

	"github.com/velora/concierge/internal/company"
	"github.com/velora/concierge/internal/llm"
	"github.com/velora/concierge/internal/models"
	"github.com/velora/concierge/internal/search"
	"go.uber.org/zap"
)

// fallbackReply is the fixed degraded-service answer used whenever a turn
// cannot complete normally.
const fallbackReply = "Sorry, something went wrong while handling your request. Please try again."

// InfoProvider looks up company information documents.
type InfoProvider interface {
	Lookup(infoType company.InfoType, city string) (map[string]any, error)
}

// Result is the outcome of one turn: the final answer text, the full
// unshrunk result set of the last product search, and the query that
// produced it. Products and Query are empty when no search ran.
type Result struct {
	Text     string
	Products []models.ScoredProduct
	Query    string
}

// Orchestrator owns one conversation turn at a time: it builds the message
// sequence, runs at most two model calls, and dispatches tool calls between
// them. Orchestrators are safe for concurrent use; all per-turn state lives
// on the stack.
type Orchestrator struct {
	completer llm.Completer
	searcher  search.Searcher
	info      InfoProvider
	logger    *zap.Logger
}

// NewOrchestrator wires the orchestrator to its collaborators.
func NewOrchestrator(completer llm.Completer, searcher search.Searcher, info InfoProvider, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		completer: completer,
		searcher:  searcher,
		info:      info,
		logger:    logger,
	}
}

// Respond runs one full turn and never fails: any error or cancellation
// mid-turn collapses into the fixed fallback reply with an empty result set.
func (o *Orchestrator) Respond(ctx context.Context, userMessage string, history []llm.Message, persona Persona) *Result {
	result, err := o.respond(ctx, userMessage, history, persona)
	if err != nil {
		o.logger.Error("turn failed, returning fallback reply", zap.Error(err))
		return &Result{Text: fallbackReply}
	}
	return result
}

// respond implements the two-round protocol. There is no recursion: the
// second model call is made without tools and must produce the final text.
func (o *Orchestrator) respond(ctx context.Context, userMessage string, history []llm.Message, persona Persona) (*Result, error) {
	messages := make([]llm.Message, 0, len(history)+4)
	messages = append(messages, history...)
	messages = append(messages, llm.Message{Role: llm.RoleUser, Text: userMessage})

	first, err := o.completer.Complete(ctx, &llm.CompletionRequest{
		System:   promptFor(persona),
		Messages: messages,
		Tools:    toolSpecs,
	})
	if err != nil {
		return nil, err
	}

	if len(first.ToolCalls) == 0 {
		return &Result{Text: first.Text}, nil
	}

	messages = append(messages, llm.Message{
		Role:      llm.RoleAssistant,
		Text:      first.Text,
		ToolCalls: first.ToolCalls,
	})

	// Tool calls run strictly in model order: a later search_products call
	// overwrites the accumulator left by an earlier one.
	state := &turnState{}
	for _, call := range first.ToolCalls {
		o.logger.Info("dispatching tool call",
			zap.String("tool", call.Name), zap.Any("args", call.Args))
		payload := o.dispatch(ctx, call, state)
		messages = append(messages, llm.Message{
			Role:         llm.RoleTool,
			ToolResponse: &llm.ToolResponse{Name: call.Name, Payload: payload},
		})
	}

	second, err := o.completer.Complete(ctx, &llm.CompletionRequest{
		System:   promptFor(persona),
		Messages: messages,
	})
	if err != nil {
		return nil, err
	}

	return &Result{
		Text:     second.Text,
		Products: state.products,
		Query:    state.query,
	}, nil
}
