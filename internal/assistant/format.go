package assistant

import (
	"fmt"
	"strings"

	"github.com/velora/concierge/internal/models"
)

// formatProduct renders one product for the model's tool-result digest.
// The first tag serves as the short description in list context; the full
// description is reserved for product cards.
func formatProduct(p *models.Product, short bool) string {
	parts := []string{
		p.Name,
		fmt.Sprintf("Category: %s", p.Category),
	}
	if p.Subcategory != "" {
		parts = append(parts, fmt.Sprintf("Subcategory: %s", p.Subcategory))
	}
	parts = append(parts, fmt.Sprintf("Price: %d", p.Price))
	if p.Volume != "" {
		parts = append(parts, fmt.Sprintf("Volume: %s", p.Volume))
	}
	if short {
		if desc := p.ShortDescription(); desc != "" {
			parts = append(parts, fmt.Sprintf("Description: %s", desc))
		}
	} else {
		if p.Description != "" {
			parts = append(parts, fmt.Sprintf("Description: %s", p.Description))
		}
		if len(p.Tags) > 0 {
			parts = append(parts, fmt.Sprintf("Tags: %s", strings.Join(p.Tags, ", ")))
		}
	}
	return strings.Join(parts, "\n")
}

// formatProductList renders a numbered product list for the model.
func formatProductList(products []models.ScoredProduct) string {
	if len(products) == 0 {
		return "No products found."
	}
	var b strings.Builder
	for i, sp := range products {
		fmt.Fprintf(&b, "\n%d. %s\n", i+1, formatProduct(sp.Product, true))
	}
	return b.String()
}
