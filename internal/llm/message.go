// Package llm wraps the Gemini API behind small completion and embedding
// interfaces so callers can be tested with fakes.
package llm

import "context"

// Role identifies the author of a conversation turn.
type Role string

const (
	// RoleUser is an inbound user turn.
	RoleUser Role = "user"
	// RoleAssistant is a model turn; it may carry tool calls.
	RoleAssistant Role = "assistant"
	// RoleTool is a tool-result turn fed back to the model.
	RoleTool Role = "tool"
)

// ToolCall is a model-issued request to invoke a declared tool.
type ToolCall struct {
	Name string
	Args map[string]any
}

// ToolResponse is the structured result of one tool call.
type ToolResponse struct {
	Name    string
	Payload map[string]any
}

// Message is one conversation turn. Exactly one of Text, ToolCalls, or
// ToolResponse is expected to be meaningful for a given role.
type Message struct {
	Role         Role
	Text         string
	ToolCalls    []ToolCall
	ToolResponse *ToolResponse
}

// ParamType is the wire type of a tool parameter.
type ParamType string

const (
	// ParamString declares a string parameter.
	ParamString ParamType = "string"
	// ParamInteger declares an integer parameter.
	ParamInteger ParamType = "integer"
)

// ParamSpec declares one tool parameter.
type ParamSpec struct {
	Type        ParamType
	Description string
	Enum        []string
}

// ToolSpec declares a callable tool advertised to the model.
type ToolSpec struct {
	Name        string
	Description string
	Params      map[string]ParamSpec
	Required    []string
}

// CompletionRequest is one model call. When Tools is non-empty the model may
// choose zero, one, or several tool calls; when empty it must answer in text.
type CompletionRequest struct {
	System   string
	Messages []Message
	Tools    []ToolSpec
}

// CompletionResponse is the model's reply: final text, tool calls, or both.
type CompletionResponse struct {
	Text      string
	ToolCalls []ToolCall
}

// Completer produces chat completions.
type Completer interface {
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)
}

// Embedder produces embedding vectors for free text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}
