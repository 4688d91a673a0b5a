package ranking

// RankingConfig holds all signal weights for the lexical relevance engine.
// Signals are integer-valued and summed per product; see Engine.Search.
type RankingConfig struct {
	// Tag scoring values
	TagExactScore   int `yaml:"tag_exact_score"`   // default: 5
	TagSynonymScore int `yaml:"tag_synonym_score"` // default: 3

	// Name scoring values. A direct product-name hit is the strongest
	// relevance signal, so it scores above tag matches.
	NameExactScore   int `yaml:"name_exact_score"`   // default: 10
	NameSynonymScore int `yaml:"name_synonym_score"` // default: 5

	// Description scoring values
	DescriptionExactScore   int `yaml:"description_exact_score"`   // default: 3
	DescriptionSynonymScore int `yaml:"description_synonym_score"` // default: 1

	// Category scoring values
	CategoryScore    int `yaml:"category_score"`    // default: 2
	SubcategoryScore int `yaml:"subcategory_score"` // default: 2

	// Categorical prior for face-care queries: the matching category is
	// boosted and every other category penalized.
	FaceCategoryBoost   int `yaml:"face_category_boost"`   // default: 15
	FaceCategoryPenalty int `yaml:"face_category_penalty"` // default: 10

	// Boost for the joint-support product line on joint-related queries.
	JointBrandBoost int `yaml:"joint_brand_boost"` // default: 10

	// Penalty applied once per triggered exclusion rule.
	ExclusionPenalty int `yaml:"exclusion_penalty"` // default: 10

	// Post-filter: when the top score exceeds StrongTopScore, candidates
	// below WeakScoreCutoff are dropped.
	StrongTopScore  int `yaml:"strong_top_score"`  // default: 10
	WeakScoreCutoff int `yaml:"weak_score_cutoff"` // default: 5

	// Synonym matches against the product name only count for words
	// longer than this, to avoid short-token false positives.
	MinSynonymNameLen int `yaml:"min_synonym_name_len"` // default: 3
}

// DefaultRankingConfig returns the default ranking configuration.
func DefaultRankingConfig() *RankingConfig {
	return &RankingConfig{
		TagExactScore:   5,
		TagSynonymScore: 3,

		NameExactScore:   10,
		NameSynonymScore: 5,

		DescriptionExactScore:   3,
		DescriptionSynonymScore: 1,

		CategoryScore:    2,
		SubcategoryScore: 2,

		FaceCategoryBoost:   15,
		FaceCategoryPenalty: 10,

		JointBrandBoost: 10,

		ExclusionPenalty: 10,

		StrongTopScore:  10,
		WeakScoreCutoff: 5,

		MinSynonymNameLen: 3,
	}
}

// ApplyDefaults fills in zero values with defaults.
func (c *RankingConfig) ApplyDefaults() {
	defaults := DefaultRankingConfig()

	if c.TagExactScore == 0 {
		c.TagExactScore = defaults.TagExactScore
	}
	if c.TagSynonymScore == 0 {
		c.TagSynonymScore = defaults.TagSynonymScore
	}
	if c.NameExactScore == 0 {
		c.NameExactScore = defaults.NameExactScore
	}
	if c.NameSynonymScore == 0 {
		c.NameSynonymScore = defaults.NameSynonymScore
	}
	if c.DescriptionExactScore == 0 {
		c.DescriptionExactScore = defaults.DescriptionExactScore
	}
	if c.DescriptionSynonymScore == 0 {
		c.DescriptionSynonymScore = defaults.DescriptionSynonymScore
	}
	if c.CategoryScore == 0 {
		c.CategoryScore = defaults.CategoryScore
	}
	if c.SubcategoryScore == 0 {
		c.SubcategoryScore = defaults.SubcategoryScore
	}
	if c.FaceCategoryBoost == 0 {
		c.FaceCategoryBoost = defaults.FaceCategoryBoost
	}
	if c.FaceCategoryPenalty == 0 {
		c.FaceCategoryPenalty = defaults.FaceCategoryPenalty
	}
	if c.JointBrandBoost == 0 {
		c.JointBrandBoost = defaults.JointBrandBoost
	}
	if c.ExclusionPenalty == 0 {
		c.ExclusionPenalty = defaults.ExclusionPenalty
	}
	if c.StrongTopScore == 0 {
		c.StrongTopScore = defaults.StrongTopScore
	}
	if c.WeakScoreCutoff == 0 {
		c.WeakScoreCutoff = defaults.WeakScoreCutoff
	}
	if c.MinSynonymNameLen == 0 {
		c.MinSynonymNameLen = defaults.MinSynonymNameLen
	}
}
