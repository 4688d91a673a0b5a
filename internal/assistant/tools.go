package assistant

import (
	"context"
	"fmt"

	"github.com/velora/concierge/internal/company"
	"github.com/velora/concierge/internal/llm"
	"github.com/velora/concierge/internal/models"
	"go.uber.org/zap"
)

const (
	// SearchResultCap bounds every catalog search regardless of the
	// max_results the model asks for: pagination, not the model, controls
	// how many products a human ever sees.
	SearchResultCap = 20
	// digestSize bounds the product list fed back to the model. The digest
	// drives the model's token cost; the full result set does not.
	digestSize = 3
)

// ToolKind is the closed set of capabilities the model may invoke.
type ToolKind int

const (
	// ToolUnknown is any name outside the declared set.
	ToolUnknown ToolKind = iota
	// ToolSearchProducts searches the product catalog.
	ToolSearchProducts
	// ToolCompanyInfo looks up static company documents.
	ToolCompanyInfo
)

// toolKindOf maps a model-supplied name to a tool kind.
func toolKindOf(name string) ToolKind {
	switch name {
	case "search_products":
		return ToolSearchProducts
	case "get_company_info":
		return ToolCompanyInfo
	default:
		return ToolUnknown
	}
}

// toolSpecs declares the callable tools advertised to the model verbatim.
// max_results is accepted for schema compatibility but ignored on dispatch.
var toolSpecs = []llm.ToolSpec{
	{
		Name:        "search_products",
		Description: "Search the Velora product catalog by keywords, symptoms, or goals. Returns matching products with names, categories, and prices.",
		Params: map[string]llm.ParamSpec{
			"query": {
				Type:        llm.ParamString,
				Description: "Search keywords, e.g. 'memory focus' or 'face cream'",
			},
			"max_results": {
				Type:        llm.ParamInteger,
				Description: "Maximum number of products to return",
			},
		},
		Required: []string{"query"},
	},
	{
		Name:        "get_company_info",
		Description: "Get information about the Velora company, its partner program, upcoming events, or pickup point addresses.",
		Params: map[string]llm.ParamSpec{
			"info_type": {
				Type:        llm.ParamString,
				Description: "Which information to fetch",
				Enum:        []string{"company", "business", "events", "geography", "all"},
			},
			"city": {
				Type:        llm.ParamString,
				Description: "City name to filter pickup addresses (geography only)",
			},
		},
		Required: []string{"info_type"},
	},
}

// turnState accumulates the full, unshrunk search results for one turn.
// A later search_products call overwrites an earlier one.
type turnState struct {
	products []models.ScoredProduct
	query    string
}

type toolHandler func(o *Orchestrator, ctx context.Context, args map[string]any, state *turnState) map[string]any

// dispatchTable maps each known tool kind to its handler. Unknown kinds are
// rejected before dispatch with a structured error payload.
var dispatchTable = map[ToolKind]toolHandler{
	ToolSearchProducts: (*Orchestrator).handleSearchProducts,
	ToolCompanyInfo:    (*Orchestrator).handleCompanyInfo,
}

// dispatch executes one tool call and returns its structured result. It
// never fails: every outcome, including an unknown tool name, becomes a
// payload the second model call can read.
func (o *Orchestrator) dispatch(ctx context.Context, call llm.ToolCall, state *turnState) map[string]any {
	kind := toolKindOf(call.Name)
	handler, ok := dispatchTable[kind]
	if !ok {
		o.logger.Warn("model requested unknown tool", zap.String("name", call.Name))
		return map[string]any{
			"status":  "error",
			"message": fmt.Sprintf("Unknown tool: %s", call.Name),
		}
	}
	return handler(o, ctx, call.Args, state)
}

func (o *Orchestrator) handleSearchProducts(ctx context.Context, args map[string]any, state *turnState) map[string]any {
	query := stringArg(args, "query")

	products := o.searcher.Search(ctx, query, SearchResultCap)
	state.products = products
	state.query = query

	if len(products) == 0 {
		return map[string]any{
			"status":  "not_found",
			"message": fmt.Sprintf("No products found for %q.", query),
		}
	}

	digest := products
	if len(digest) > digestSize {
		digest = digest[:digestSize]
	}
	return map[string]any{
		"status":   "success",
		"count":    len(products),
		"shown":    len(digest),
		"products": formatProductList(digest),
	}
}

func (o *Orchestrator) handleCompanyInfo(_ context.Context, args map[string]any, _ *turnState) map[string]any {
	infoType, err := company.ParseInfoType(stringArg(args, "info_type"))
	if err != nil {
		return map[string]any{"status": "error", "message": err.Error()}
	}

	info, err := o.info.Lookup(infoType, stringArg(args, "city"))
	if err != nil {
		return map[string]any{"status": "error", "message": err.Error()}
	}
	if len(info) == 0 {
		return map[string]any{"status": "not_found", "message": "Information not found."}
	}
	return map[string]any{"status": "success", "data": info}
}

func stringArg(args map[string]any, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}
