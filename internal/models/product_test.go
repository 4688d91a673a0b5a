package models

import "testing"

func TestProduct_ShortDescription(t *testing.T) {
	tests := []struct {
		name    string
		product Product
		want    string
	}{
		{
			name:    "first tag wins",
			product: Product{Tags: []string{"gentle sleep support", "melatonin"}, Description: "Full text."},
			want:    "gentle sleep support",
		},
		{
			name:    "falls back to description",
			product: Product{Description: "Full text."},
			want:    "Full text.",
		},
		{
			name:    "empty first tag falls back",
			product: Product{Tags: []string{""}, Description: "Full text."},
			want:    "Full text.",
		},
		{
			name: "nothing available",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.product.ShortDescription(); got != tt.want {
				t.Errorf("ShortDescription() = %q, want %q", got, tt.want)
			}
		})
	}
}
