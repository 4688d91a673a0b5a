package ranking

import "strings"

// ExclusionRule describes a soft exclusion: when any trigger term appears in
// the query, candidates whose text contains an excluded term are penalized.
// Exclusions subtract a fixed penalty instead of removing the candidate.
type ExclusionRule struct {
	// Name identifies the rule in logs.
	Name string
	// Triggers are query terms that activate the rule.
	Triggers []string
	// Excluded are product-text terms that draw the penalty.
	Excluded []string
}

// defaultExclusionRules covers the product lines that commonly cross-match:
// gendered variants of the same line, bone vs dental care, and the four
// cream categories (face, hand, foot, body).
func defaultExclusionRules() []ExclusionRule {
	return []ExclusionRule{
		{
			Name:     "male_query_excludes_female_line",
			Triggers: []string{"men", "male", "for him", "him"},
			Excluded: []string{"for her", "women", "female"},
		},
		{
			Name:     "female_query_excludes_male_line",
			Triggers: []string{"women", "female", "for her", "her"},
			Excluded: []string{"for him", "men's", "male"},
		},
		{
			Name:     "bones_exclude_dental",
			Triggers: []string{"bones", "bone", "osteo", "calcium"},
			Excluded: []string{"tooth", "teeth", "dental", "toothpaste"},
		},
		{
			Name:     "face_cream_excludes_other_creams",
			Triggers: []string{"face cream", "facial cream"},
			Excluded: []string{"hand cream", "foot cream", "body cream"},
		},
		{
			Name:     "hand_cream_excludes_other_creams",
			Triggers: []string{"hand cream"},
			Excluded: []string{"face cream", "foot cream", "body cream"},
		},
		{
			Name:     "foot_cream_excludes_other_creams",
			Triggers: []string{"foot cream"},
			Excluded: []string{"face cream", "hand cream", "body cream"},
		},
		{
			Name:     "body_cream_excludes_other_creams",
			Triggers: []string{"body cream"},
			Excluded: []string{"face cream", "hand cream", "foot cream"},
		},
	}
}

// Triggered returns true when any trigger term occurs in the normalized query.
func (r *ExclusionRule) Triggered(queryLower string) bool {
	for _, t := range r.Triggers {
		if strings.Contains(queryLower, t) {
			return true
		}
	}
	return false
}

// Matches returns true when any excluded term occurs in the product text.
// A rule matches at most once per product no matter how many terms hit.
func (r *ExclusionRule) Matches(productText string) bool {
	for _, e := range r.Excluded {
		if strings.Contains(productText, e) {
			return true
		}
	}
	return false
}
