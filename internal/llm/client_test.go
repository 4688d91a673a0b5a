package llm

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
)

func TestToContent(t *testing.T) {
	tests := []struct {
		name     string
		message  Message
		wantRole string
	}{
		{"user", Message{Role: RoleUser, Text: "hi"}, "user"},
		{"assistant", Message{Role: RoleAssistant, Text: "hello"}, "model"},
		{"tool", Message{Role: RoleTool, ToolResponse: &ToolResponse{Name: "t", Payload: map[string]any{}}}, "function"},
		{"unknown role treated as user", Message{Role: "other", Text: "x"}, "user"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := toContent(&tt.message); got.Role != tt.wantRole {
				t.Errorf("role = %q, want %q", got.Role, tt.wantRole)
			}
		})
	}
}

func TestToContent_AssistantCarriesToolCalls(t *testing.T) {
	m := Message{
		Role: RoleAssistant,
		Text: "searching",
		ToolCalls: []ToolCall{
			{Name: "search_products", Args: map[string]any{"query": "sleep"}},
		},
	}
	content := toContent(&m)
	if len(content.Parts) != 2 {
		t.Fatalf("parts = %d, want text plus call", len(content.Parts))
	}
	call, ok := content.Parts[1].(genai.FunctionCall)
	if !ok {
		t.Fatalf("second part is %T", content.Parts[1])
	}
	if call.Name != "search_products" || call.Args["query"] != "sleep" {
		t.Errorf("call = %+v", call)
	}
}

func TestToContent_ToolResponsePayload(t *testing.T) {
	m := Message{
		Role: RoleTool,
		ToolResponse: &ToolResponse{
			Name:    "get_company_info",
			Payload: map[string]any{"status": "success"},
		},
	}
	content := toContent(&m)
	resp, ok := content.Parts[0].(genai.FunctionResponse)
	if !ok {
		t.Fatalf("part is %T", content.Parts[0])
	}
	if resp.Name != "get_company_info" || resp.Response["status"] != "success" {
		t.Errorf("response = %+v", resp)
	}
}

func TestToFunctionDeclarations(t *testing.T) {
	specs := []ToolSpec{{
		Name:        "search_products",
		Description: "Search the catalog",
		Params: map[string]ParamSpec{
			"query":       {Type: ParamString, Description: "keywords"},
			"max_results": {Type: ParamInteger},
			"info_type":   {Type: ParamString, Enum: []string{"company", "events"}},
		},
		Required: []string{"query"},
	}}

	decls := toFunctionDeclarations(specs)
	if len(decls) != 1 {
		t.Fatalf("decls = %d", len(decls))
	}
	d := decls[0]
	if d.Name != "search_products" || d.Parameters.Type != genai.TypeObject {
		t.Errorf("decl = %+v", d)
	}
	if len(d.Parameters.Required) != 1 || d.Parameters.Required[0] != "query" {
		t.Errorf("required = %v", d.Parameters.Required)
	}
	if d.Parameters.Properties["query"].Type != genai.TypeString {
		t.Error("query should be a string param")
	}
	if d.Parameters.Properties["max_results"].Type != genai.TypeInteger {
		t.Error("max_results should be an integer param")
	}
	if got := d.Parameters.Properties["info_type"].Enum; len(got) != 2 {
		t.Errorf("enum = %v", got)
	}
}
