// Package nav encodes and decodes the compact navigation tokens the UI uses
// to page through search results without server-side session state.
package nav

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// PayloadCeiling is the hard byte limit the chat transport imposes on a
// token. Encode never produces a longer string.
const PayloadCeiling = 64

// ErrMalformedToken marks a token that cannot be decoded. Callers treat it
// as "nothing more to show", never as a crash.
var ErrMalformedToken = errors.New("nav: malformed token")

// Action identifies which UI action a token drives.
type Action int

const (
	// ActionProduct opens one product's detail card.
	ActionProduct Action = iota
	// ActionMoreProducts shows the next or previous result page.
	ActionMoreProducts
	// ActionBackToList returns from a card to the result list.
	ActionBackToList
)

const (
	prefixProduct = "product"
	prefixMore    = "more_products"
	prefixBack    = "back_to_list"
)

// Token is a decoded navigation token. Query and Offset reproduce exactly
// what was encoded, except that over-long queries are truncated at encode
// time to honor the payload ceiling.
type Token struct {
	Action    Action
	ProductID string
	Query     string
	Offset    int
}

// EncodeProduct builds a product-detail token carrying the list position.
func EncodeProduct(productID, query string, offset int) string {
	return encode(prefixProduct+":"+productID, query, offset)
}

// EncodeMore builds a next/previous page token.
func EncodeMore(query string, offset int) string {
	return encode(prefixMore, query, offset)
}

// EncodeBack builds a return-to-list token.
func EncodeBack(query string, offset int) string {
	return encode(prefixBack, query, offset)
}

// encode assembles prefix:query:offset, truncating the query so the whole
// token fits the payload ceiling. Queries are unbounded user text, so the
// truncation here is what keeps the token within the transport limit.
func encode(prefix, query string, offset int) string {
	if offset < 0 {
		offset = 0
	}
	suffix := ":" + strconv.Itoa(offset)
	budget := PayloadCeiling - len(prefix) - 1 - len(suffix)
	return prefix + ":" + truncate(query, budget) + suffix
}

// truncate cuts s to at most max bytes without splitting a rune.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}

// Decode parses a token. The query may itself contain separator characters:
// the action is the first segment, the offset the last, the product id (for
// product tokens) the second, and the query everything in between.
func Decode(s string) (*Token, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 3 {
		return nil, fmt.Errorf("%w: %q", ErrMalformedToken, s)
	}

	offset, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil || offset < 0 {
		return nil, fmt.Errorf("%w: bad offset in %q", ErrMalformedToken, s)
	}

	switch parts[0] {
	case prefixProduct:
		if len(parts) < 4 {
			return nil, fmt.Errorf("%w: %q", ErrMalformedToken, s)
		}
		return &Token{
			Action:    ActionProduct,
			ProductID: parts[1],
			Query:     strings.Join(parts[2:len(parts)-1], ":"),
			Offset:    offset,
		}, nil
	case prefixMore:
		return &Token{
			Action: ActionMoreProducts,
			Query:  strings.Join(parts[1:len(parts)-1], ":"),
			Offset: offset,
		}, nil
	case prefixBack:
		return &Token{
			Action: ActionBackToList,
			Query:  strings.Join(parts[1:len(parts)-1], ":"),
			Offset: offset,
		}, nil
	default:
		return nil, fmt.Errorf("%w: unknown action %q", ErrMalformedToken, parts[0])
	}
}
