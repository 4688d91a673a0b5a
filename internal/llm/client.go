package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// Client talks to the Gemini API for chat completions and embeddings.
type Client struct {
	client     *genai.Client
	chatModel  string
	embedModel string
	logger     *zap.Logger
}

// NewClient creates a Gemini client with the given API key and model names.
func NewClient(ctx context.Context, apiKey, chatModel, embedModel string, logger *zap.Logger) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &Client{
		client:     client,
		chatModel:  chatModel,
		embedModel: embedModel,
		logger:     logger,
	}, nil
}

// Close releases the underlying API client.
func (c *Client) Close() error {
	return c.client.Close()
}

// Complete sends one chat completion request. The last message is sent as
// the live turn; everything before it becomes session history.
func (c *Client) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	if len(req.Messages) == 0 {
		return nil, fmt.Errorf("completion request has no messages")
	}

	model := c.client.GenerativeModel(c.chatModel)
	if req.System != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(req.System)},
		}
	}
	if len(req.Tools) > 0 {
		model.Tools = []*genai.Tool{{FunctionDeclarations: toFunctionDeclarations(req.Tools)}}
		model.ToolConfig = &genai.ToolConfig{
			FunctionCallingConfig: &genai.FunctionCallingConfig{Mode: genai.FunctionCallingAuto},
		}
	}

	contents := make([]*genai.Content, 0, len(req.Messages))
	for i := range req.Messages {
		contents = append(contents, toContent(&req.Messages[i]))
	}

	session := model.StartChat()
	session.History = contents[:len(contents)-1]

	resp, err := session.SendMessage(ctx, contents[len(contents)-1].Parts...)
	if err != nil {
		return nil, fmt.Errorf("gemini completion failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("gemini returned no candidates")
	}

	out := &CompletionResponse{}
	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		switch p := part.(type) {
		case genai.Text:
			text.WriteString(string(p))
		case genai.FunctionCall:
			out.ToolCalls = append(out.ToolCalls, ToolCall{Name: p.Name, Args: p.Args})
		default:
			c.logger.Debug("ignoring non-text response part", zap.String("type", fmt.Sprintf("%T", part)))
		}
	}
	out.Text = text.String()

	if out.Text == "" && len(out.ToolCalls) == 0 {
		return nil, fmt.Errorf("gemini returned an empty response")
	}
	return out, nil
}

// Embed returns the embedding vector for one text.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	em := c.client.EmbeddingModel(c.embedModel)
	res, err := em.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}
	if res.Embedding == nil || len(res.Embedding.Values) == 0 {
		return nil, fmt.Errorf("no embedding data received")
	}
	return res.Embedding.Values, nil
}

// EmbedBatch returns embedding vectors for all texts in one request,
// positionally aligned with the input.
func (c *Client) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	em := c.client.EmbeddingModel(c.embedModel)
	batch := em.NewBatch()
	for _, t := range texts {
		batch.AddContent(genai.Text(t))
	}
	res, err := em.BatchEmbedContents(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("batch embedding request failed: %w", err)
	}
	if len(res.Embeddings) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(res.Embeddings))
	}
	vectors := make([][]float32, len(res.Embeddings))
	for i, e := range res.Embeddings {
		vectors[i] = e.Values
	}
	return vectors, nil
}

// ModelTag identifies the embedding model for cache validation.
func (c *Client) ModelTag() string {
	return c.embedModel
}

func toContent(m *Message) *genai.Content {
	switch m.Role {
	case RoleAssistant:
		content := &genai.Content{Role: "model"}
		if m.Text != "" {
			content.Parts = append(content.Parts, genai.Text(m.Text))
		}
		for _, call := range m.ToolCalls {
			content.Parts = append(content.Parts, genai.FunctionCall{Name: call.Name, Args: call.Args})
		}
		return content
	case RoleTool:
		resp := map[string]any{}
		name := ""
		if m.ToolResponse != nil {
			resp = m.ToolResponse.Payload
			name = m.ToolResponse.Name
		}
		return &genai.Content{
			Role:  "function",
			Parts: []genai.Part{genai.FunctionResponse{Name: name, Response: resp}},
		}
	default:
		return &genai.Content{Role: "user", Parts: []genai.Part{genai.Text(m.Text)}}
	}
}

func toFunctionDeclarations(specs []ToolSpec) []*genai.FunctionDeclaration {
	decls := make([]*genai.FunctionDeclaration, 0, len(specs))
	for _, spec := range specs {
		properties := make(map[string]*genai.Schema, len(spec.Params))
		for name, param := range spec.Params {
			schema := &genai.Schema{Description: param.Description}
			switch param.Type {
			case ParamInteger:
				schema.Type = genai.TypeInteger
			default:
				schema.Type = genai.TypeString
			}
			if len(param.Enum) > 0 {
				schema.Enum = param.Enum
			}
			properties[name] = schema
		}
		decls = append(decls, &genai.FunctionDeclaration{
			Name:        spec.Name,
			Description: spec.Description,
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: properties,
				Required:   spec.Required,
			},
		})
	}
	return decls
}
