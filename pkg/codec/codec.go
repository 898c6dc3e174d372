package codec

import (
	"fmt"
	"strconv"

	"github.com/ssargent/deckcode/pkg/base32"
	"github.com/ssargent/deckcode/pkg/deck"
)

const (
	// Format is written to the high nibble of the first byte.
	Format = 1
	// Version is written to the low nibble of the first byte.
	Version = 3
	// MaxKnownVersion is the highest version Decode accepts.
	MaxKnownVersion = 3
)

// DeckCodec converts decks to deck codes and back. It holds no state and
// is safe for concurrent use.
type DeckCodec struct{}

// New creates a deck codec.
func New() *DeckCodec {
	return &DeckCodec{}
}

// Verify reports whether every token has a well-formed card code with a
// known region and a count of at least one.
func (c *DeckCodec) Verify(d deck.Deck) bool {
	for _, t := range d {
		if checkToken(t) != nil {
			return false
		}
	}
	return true
}

// Check is Verify with a reason: it returns the error for the first bad
// token, or nil.
func (c *DeckCodec) Check(d deck.Deck) error {
	for _, t := range d {
		if err := checkToken(t); err != nil {
			return err
		}
	}
	return nil
}

// Encode returns the deck code for d. Any permutation of the same tokens
// yields the same code.
func (c *DeckCodec) Encode(d deck.Deck) (string, error) {
	data, err := c.Marshal(d)
	if err != nil {
		return "", err
	}
	return base32.Encode(data, false), nil
}

// Decode parses a deck code. The tokens come back in wire order: the 3, 2
// and 1 copy sections, then the cards with more copies.
func (c *DeckCodec) Decode(code string) (deck.Deck, error) {
	layout, err := c.Inspect(code)
	if err != nil {
		return nil, err
	}
	return layout.Deck(), nil
}

// Inspect parses a deck code into its wire layout without expanding it.
func (c *DeckCodec) Inspect(code string) (*Layout, error) {
	data, err := base32.Decode(code)
	if err != nil {
		return nil, &Error{Kind: KindDecodeFailure, Err: err}
	}

	var layout Layout
	if err := layout.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return &layout, nil
}

// Marshal returns the wire bytes for d, before base32.
func (c *DeckCodec) Marshal(d deck.Deck) ([]byte, error) {
	layout, err := c.Layout(d)
	if err != nil {
		return nil, err
	}
	return layout.MarshalBinary()
}

// Unmarshal parses wire bytes into a deck.
func (c *DeckCodec) Unmarshal(data []byte) (deck.Deck, error) {
	var layout Layout
	if err := layout.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return layout.Deck(), nil
}

// Layout validates d and arranges it in canonical wire order.
func (c *DeckCodec) Layout(d deck.Deck) (*Layout, error) {
	if err := c.Check(d); err != nil {
		return nil, err
	}

	var classes [3][]parsedToken
	var overflow []parsedToken
	for _, t := range d {
		card, err := ParseCardCode(t.Code)
		if err != nil {
			return nil, err
		}
		pt := parsedToken{Token: t, card: card}

		switch {
		case t.Count < 1:
			return nil, invalidCount(t)
		case t.Count <= 3:
			classes[t.Count-1] = append(classes[t.Count-1], pt)
		default:
			overflow = append(overflow, pt)
		}
	}

	layout := &Layout{Format: Format, Version: Version, Sections: make([]Section, 0, len(sectionCounts))}
	for _, count := range sectionCounts {
		groups := groupBySetRegion(classes[count-1])
		sortGroups(groups)

		section := Section{Count: count}
		for _, g := range groups {
			group := Group{Set: g[0].card.Set, Region: g[0].card.Region, Numbers: make([]int, len(g))}
			for i, t := range g {
				group.Numbers[i] = t.card.Number
			}
			section.Groups = append(section.Groups, group)
		}
		layout.Sections = append(layout.Sections, section)
	}

	sortByCode(overflow)
	for _, t := range overflow {
		layout.Overflow = append(layout.Overflow, Entry{Count: t.Count, Card: t.card})
	}
	return layout, nil
}

// ParseCardCode splits a card code of the form SSRRNNN into set, region
// and number.
func ParseCardCode(code string) (deck.CardCode, error) {
	if len(code) != deck.CodeLength {
		return deck.CardCode{}, &Error{
			Kind: KindInvalidToken,
			Code: code,
			Msg:  fmt.Sprintf("card codes are %d characters long", deck.CodeLength),
		}
	}

	set, err := strconv.ParseUint(code[0:2], 10, 8)
	if err != nil {
		return deck.CardCode{}, &Error{Kind: KindInvalidToken, Code: code, Msg: "set is not numeric", Err: err}
	}

	region, ok := deck.ParseRegion(code[2:4])
	if !ok {
		return deck.CardCode{}, &Error{Kind: KindUnknownRegion, Code: code[2:4]}
	}

	number, err := strconv.ParseUint(code[4:7], 10, 16)
	if err != nil {
		return deck.CardCode{}, &Error{Kind: KindInvalidToken, Code: code, Msg: "card number is not numeric", Err: err}
	}

	return deck.CardCode{Set: int(set), Region: region, Number: int(number)}, nil
}

func checkToken(t deck.Token) error {
	if _, err := ParseCardCode(t.Code); err != nil {
		if KindOf(err) == KindInvalidToken {
			return err
		}
		return &Error{Kind: KindInvalidToken, Code: t.Code, Err: err}
	}
	if t.Count < 1 {
		return invalidCount(t)
	}
	return nil
}

func invalidCount(t deck.Token) error {
	return &Error{Kind: KindInvalidCount, Code: t.Code, Msg: fmt.Sprintf("count %d is below 1", t.Count)}
}
