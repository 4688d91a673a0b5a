package ranking

import "testing"

func TestExclusionRule_Triggered(t *testing.T) {
	rules := defaultExclusionRules()
	byName := make(map[string]*ExclusionRule, len(rules))
	for i := range rules {
		byName[rules[i].Name] = &rules[i]
	}

	tests := []struct {
		rule  string
		query string
		want  bool
	}{
		{"male_query_excludes_female_line", "vitamins for him", true},
		{"male_query_excludes_female_line", "vitamins for her", false},
		{"female_query_excludes_male_line", "something for her", true},
		{"bones_exclude_dental", "calcium for strong bones", true},
		{"bones_exclude_dental", "whitening toothpaste", false},
		{"face_cream_excludes_other_creams", "best face cream", true},
		{"face_cream_excludes_other_creams", "hand cream", false},
	}
	for _, tt := range tests {
		t.Run(tt.rule+"/"+tt.query, func(t *testing.T) {
			rule, ok := byName[tt.rule]
			if !ok {
				t.Fatalf("rule %q not found", tt.rule)
			}
			if got := rule.Triggered(tt.query); got != tt.want {
				t.Errorf("Triggered(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestExclusionRule_Matches(t *testing.T) {
	rule := ExclusionRule{
		Name:     "test",
		Excluded: []string{"for her", "female"},
	}

	tests := []struct {
		text string
		want bool
	}{
		{"vitality complex for her supplements", true},
		{"female multivitamin beauty", true},
		{"vitality complex for him", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := rule.Matches(tt.text); got != tt.want {
			t.Errorf("Matches(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
