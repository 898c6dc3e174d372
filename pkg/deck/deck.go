// Package deck holds the value types exchanged with the deck codec: card
// tokens, the deck collection and the region table.
//
// A card code has the fixed shape SSRRNNN: a two-digit set, a two-letter
// region code and a three-digit card number, for example "01DE002".
package deck

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// CodeLength is the length of a well-formed card code.
const CodeLength = 7

// Token is one card of a deck and the number of copies of it.
type Token struct {
	Code  string `json:"code" yaml:"code"`
	Count int    `json:"count" yaml:"count"`
}

func (t Token) String() string {
	return fmt.Sprintf("%d:%s", t.Count, t.Code)
}

// CardCode is the parsed form of a card code.
type CardCode struct {
	Set    int
	Region Region
	Number int
}

// String renders the canonical card code, zero-padding the set to two
// digits and the number to three.
func (c CardCode) String() string {
	return fmt.Sprintf("%02d%s%03d", c.Set, c.Region, c.Number)
}

// MarshalText encodes the card as its canonical code.
func (c CardCode) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Deck is an unordered collection of tokens. Uniqueness of codes is not
// enforced.
type Deck []Token

// Add appends a token.
func (d *Deck) Add(code string, count int) {
	*d = append(*d, Token{Code: code, Count: count})
}

// Len returns the number of tokens.
func (d Deck) Len() int {
	return len(d)
}

// Cards returns the total number of card copies.
func (d Deck) Cards() int {
	total := 0
	for _, t := range d {
		total += t.Count
	}
	return total
}

// Contains reports whether every token of other is present in d.
func (d Deck) Contains(other Deck) bool {
	for _, t := range other {
		if !slices.Contains(d, t) {
			return false
		}
	}
	return true
}

// Equal reports whether d and other hold the same tokens, ignoring order.
// Duplicated tokens must be duplicated the same number of times in both.
func (d Deck) Equal(other Deck) bool {
	if len(d) != len(other) {
		return false
	}
	seen := make(map[Token]int, len(d))
	for _, t := range d {
		seen[t]++
	}
	for _, t := range other {
		if seen[t] == 0 {
			return false
		}
		seen[t]--
	}
	return true
}

// Sorted returns a copy of d ordered by code, then by count.
func (d Deck) Sorted() Deck {
	out := slices.Clone(d)
	slices.SortStableFunc(out, func(a, b Token) int {
		if c := strings.Compare(a.Code, b.Code); c != 0 {
			return c
		}
		return cmp.Compare(a.Count, b.Count)
	})
	return out
}
