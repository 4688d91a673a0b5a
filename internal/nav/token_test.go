package nav

import (
	"errors"
	"strings"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		encode func() string
		want   Token
	}{
		{
			name:   "product token",
			encode: func() string { return EncodeProduct("P042", "face cream", 3) },
			want:   Token{Action: ActionProduct, ProductID: "P042", Query: "face cream", Offset: 3},
		},
		{
			name:   "more token",
			encode: func() string { return EncodeMore("sleep", 6) },
			want:   Token{Action: ActionMoreProducts, Query: "sleep", Offset: 6},
		},
		{
			name:   "back token",
			encode: func() string { return EncodeBack("memory focus", 0) },
			want:   Token{Action: ActionBackToList, Query: "memory focus", Offset: 0},
		},
		{
			name:   "empty query",
			encode: func() string { return EncodeMore("", 9) },
			want:   Token{Action: ActionMoreProducts, Query: "", Offset: 9},
		},
		{
			name:   "query with separator characters",
			encode: func() string { return EncodeMore("a:b:c", 1) },
			want:   Token{Action: ActionMoreProducts, Query: "a:b:c", Offset: 1},
		},
		{
			name:   "product token with separator in query",
			encode: func() string { return EncodeProduct("P007", "x:y", 2) },
			want:   Token{Action: ActionProduct, ProductID: "P007", Query: "x:y", Offset: 2},
		},
		{
			name:   "negative offset clamps to zero",
			encode: func() string { return EncodeMore("tea", -5) },
			want:   Token{Action: ActionMoreProducts, Query: "tea", Offset: 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.encode()
			got, err := Decode(s)
			if err != nil {
				t.Fatalf("Decode(%q): %v", s, err)
			}
			if *got != tt.want {
				t.Errorf("Decode(%q) = %+v, want %+v", s, *got, tt.want)
			}
		})
	}
}

func TestEncode_PayloadCeiling(t *testing.T) {
	longQuery := strings.Repeat("antioxidant ", 20)

	tests := []struct {
		name  string
		token string
	}{
		{"long query more", EncodeMore(longQuery, 12)},
		{"long query product", EncodeProduct("P123", longQuery, 0)},
		{"long query back", EncodeBack(longQuery, 999999)},
		{"multibyte query", EncodeMore(strings.Repeat("витамины ", 10), 3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if len(tt.token) > PayloadCeiling {
				t.Fatalf("token is %d bytes, ceiling is %d: %q", len(tt.token), PayloadCeiling, tt.token)
			}
			if _, err := Decode(tt.token); err != nil {
				t.Fatalf("Decode(%q): %v", tt.token, err)
			}
		})
	}
}

func TestEncode_TruncatesQueryNotOffset(t *testing.T) {
	token := EncodeMore(strings.Repeat("q", 200), 123456)
	tok, err := Decode(token)
	if err != nil {
		t.Fatalf("Decode(%q): %v", token, err)
	}
	if tok.Offset != 123456 {
		t.Errorf("offset survived as %d, want 123456", tok.Offset)
	}
	if len(tok.Query) == 0 || len(tok.Query) >= 200 {
		t.Errorf("query should be truncated but non-empty, got %d bytes", len(tok.Query))
	}
}

func TestEncode_NoRuneSplit(t *testing.T) {
	token := EncodeMore(strings.Repeat("ä", 100), 0)
	tok, err := Decode(token)
	if err != nil {
		t.Fatalf("Decode(%q): %v", token, err)
	}
	for _, r := range tok.Query {
		if r != 'ä' {
			t.Fatalf("truncation split a rune: found %q in query", r)
		}
	}
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"no separators", "product"},
		{"too few segments", "more_products:5"},
		{"unknown action", "jump_to:query:0"},
		{"non-numeric offset", "more_products:tea:abc"},
		{"negative offset", "more_products:tea:-1"},
		{"product missing id", "product:q:0"},
		{"garbage", ":::::"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(tt.token); !errors.Is(err, ErrMalformedToken) {
				t.Errorf("Decode(%q) err = %v, want ErrMalformedToken", tt.token, err)
			}
		})
	}
}
