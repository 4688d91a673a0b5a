// Package ranking provides the deterministic lexical relevance engine for
// the product catalog.
package ranking

import "strings"

// synonymTable maps domain terms (body systems, goals, symptoms) to related
// marketing and ingredient terms found in catalog text.
var synonymTable = map[string][]string{
	"brain":     {"memory", "focus", "concentration", "nootropic", "lecithin", "omega"},
	"memory":    {"brain", "focus", "ginkgo", "omega"},
	"focus":     {"brain", "concentration", "nootropic"},
	"sleep":     {"melatonin", "calm", "relax", "magnesium", "evening"},
	"insomnia":  {"melatonin", "sleep", "calm"},
	"stress":    {"calm", "magnesium", "adaptogen", "ashwagandha", "relax"},
	"anxiety":   {"calm", "magnesium", "relax"},
	"energy":    {"tonus", "guarana", "vitality", "b12", "iron"},
	"fatigue":   {"energy", "iron", "b12", "tonus"},
	"immunity":  {"vitamin c", "zinc", "echinacea", "elderberry", "defense"},
	"cold":      {"vitamin c", "zinc", "immunity", "echinacea"},
	"joints":    {"collagen", "glucosamine", "chondroitin", "cartilage", "flex"},
	"ligaments": {"collagen", "glucosamine", "flex"},
	"cartilage": {"glucosamine", "chondroitin", "collagen"},
	"bones":     {"calcium", "vitamin d", "d3", "k2"},
	"skin":      {"collagen", "hyaluronic", "biotin", "face", "moisturizing"},
	"face":      {"cream", "serum", "moisturizing", "hyaluronic"},
	"hair":      {"biotin", "zinc", "keratin"},
	"nails":     {"biotin", "zinc", "calcium"},
	"digestion": {"probiotic", "enzyme", "fiber", "gut"},
	"gut":       {"probiotic", "fiber", "digestion"},
	"liver":     {"detox", "milk thistle"},
	"heart":     {"omega", "coq10", "potassium", "magnesium"},
	"vision":    {"lutein", "blueberry", "eyes"},
	"eyes":      {"lutein", "blueberry", "vision"},
	"weight":    {"slim", "metabolism", "l-carnitine", "fat burn", "detox"},
	"slimming":  {"slim", "metabolism", "l-carnitine"},
	"detox":     {"cleanse", "fiber", "chlorella"},
	"men":       {"for him", "testosterone", "male"},
	"women":     {"for her", "female", "beauty"},
	"sport":     {"protein", "amino", "creatine", "recovery"},
	"muscles":   {"protein", "amino", "recovery"},
}

// SynonymGraph is a one-hop term-expansion graph built once at startup.
// A query word absorbs the synonym set of every table key for which the
// word is a substring of the key or the key is a substring of the word.
// The substring heuristic is intentionally loose and can over-expand
// short tokens; it is kept for parity with the catalog's curation.
type SynonymGraph struct {
	keys     []string
	synonyms map[string][]string
}

// NewSynonymGraph builds the expansion graph from the static synonym table.
func NewSynonymGraph() *SynonymGraph {
	g := &SynonymGraph{
		keys:     make([]string, 0, len(synonymTable)),
		synonyms: make(map[string][]string, len(synonymTable)),
	}
	for key, syns := range synonymTable {
		g.keys = append(g.keys, key)
		g.synonyms[key] = syns
	}
	return g
}

// Expand returns the synonym terms absorbed by the given query words.
// Expansion is transitive in one hop only: absorbed terms are not
// themselves expanded. The original words are not included.
func (g *SynonymGraph) Expand(words []string) []string {
	seen := make(map[string]bool)
	var expanded []string
	for _, word := range words {
		if word == "" {
			continue
		}
		for _, key := range g.keys {
			if !strings.Contains(key, word) && !strings.Contains(word, key) {
				continue
			}
			for _, syn := range g.synonyms[key] {
				if !seen[syn] {
					seen[syn] = true
					expanded = append(expanded, syn)
				}
			}
		}
	}
	return expanded
}
