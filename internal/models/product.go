// Package models defines core data structures for products and search results.
package models

// Product represents an immutable catalog record. Products are loaded once
// at startup and never mutated; catalog refreshes swap the whole slice.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Subcategory string   `json:"subcategory,omitempty"`
	Price       int      `json:"price"`
	Volume      string   `json:"volume,omitempty"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	URL         string   `json:"url,omitempty"`
	Image       string   `json:"image,omitempty"`
}

// ShortDescription returns the first tag, which by catalog convention is the
// canonical short marketing description. Falls back to the full description
// when no tags are present.
func (p *Product) ShortDescription() string {
	if len(p.Tags) > 0 && p.Tags[0] != "" {
		return p.Tags[0]
	}
	return p.Description
}

// ScoredProduct pairs a product with its relevance score for one query.
// Scores are not comparable across engines: the lexical engine produces
// integer-valued signal sums, the semantic engine cosine similarities.
type ScoredProduct struct {
	Product *Product `json:"product"`
	Score   float64  `json:"score"`
}
