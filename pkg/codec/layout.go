package codec

import (
	"fmt"
	"math"

	"github.com/ssargent/deckcode/pkg/deck"
	"github.com/ssargent/deckcode/pkg/varint"
)

// sectionCounts lists the count classes with their own section, in wire
// order.
var sectionCounts = [...]int{3, 2, 1}

// Group is a run of cards in one section sharing set and region.
type Group struct {
	Set     int         `json:"set" yaml:"set"`
	Region  deck.Region `json:"region" yaml:"region"`
	Numbers []int       `json:"numbers" yaml:"numbers"`
}

// Section holds every card with exactly Count copies.
type Section struct {
	Count  int     `json:"count" yaml:"count"`
	Groups []Group `json:"groups" yaml:"groups"`
}

// Entry is one card of the overflow section, for cards with four or more
// copies.
type Entry struct {
	Count int           `json:"count" yaml:"count"`
	Card  deck.CardCode `json:"card" yaml:"card"`
}

// Layout is the wire form of a deck before base32: the format/version
// byte, one section per count class in the order 3, 2, 1, and the overflow
// entries.
type Layout struct {
	Format   uint8     `json:"format" yaml:"format"`
	Version  uint8     `json:"version" yaml:"version"`
	Sections []Section `json:"sections" yaml:"sections"`
	Overflow []Entry   `json:"overflow,omitempty" yaml:"overflow,omitempty"`
}

// MarshalBinary serializes the layout. Sections must be present for the
// counts 3, 2 and 1, in that order.
func (l *Layout) MarshalBinary() ([]byte, error) {
	if len(l.Sections) != len(sectionCounts) {
		return nil, fmt.Errorf("layout has %d sections, want %d", len(l.Sections), len(sectionCounts))
	}

	buf := []byte{l.Format<<4 | l.Version&0x0f}
	for i, s := range l.Sections {
		if s.Count != sectionCounts[i] {
			return nil, fmt.Errorf("section %d holds count %d, want %d", i, s.Count, sectionCounts[i])
		}
		buf = varint.Append(buf, uint64(len(s.Groups)))
		for _, g := range s.Groups {
			if !g.Region.Valid() {
				return nil, &Error{Kind: KindUnknownRegion, Msg: fmt.Sprintf("region %d in count %d section", g.Region, s.Count)}
			}
			buf = varint.Append(buf, uint64(len(g.Numbers)))
			buf = varint.Append(buf, uint64(g.Set))
			buf = varint.Append(buf, g.Region.ID())
			for _, n := range g.Numbers {
				buf = varint.Append(buf, uint64(n))
			}
		}
	}

	for _, e := range l.Overflow {
		if !e.Card.Region.Valid() {
			return nil, &Error{Kind: KindUnknownRegion, Msg: fmt.Sprintf("region %d in overflow entry", e.Card.Region)}
		}
		buf = varint.Append(buf, uint64(e.Count))
		buf = varint.Append(buf, uint64(e.Card.Set))
		buf = varint.Append(buf, e.Card.Region.ID())
		buf = varint.Append(buf, uint64(e.Card.Number))
	}
	return buf, nil
}

// UnmarshalBinary parses data into l. Versions above MaxKnownVersion are
// rejected; the format nibble is recorded but not checked. Values that do not
// fit an int are malformed, and overflow entries must carry a count of at
// least 1.
func (l *Layout) UnmarshalBinary(data []byte) error {
	if len(data) == 0 {
		return &Error{Kind: KindEmptyInput}
	}

	format, version := data[0]>>4, data[0]&0x0f
	if version > MaxKnownVersion {
		return &Error{
			Kind: KindUnsupportedVersion,
			Msg:  fmt.Sprintf("code uses version %d, this codec understands up to %d; please update", version, MaxKnownVersion),
		}
	}

	rest := data[1:]
	parsed := Layout{Format: format, Version: version, Sections: make([]Section, 0, len(sectionCounts))}

	for _, count := range sectionCounts {
		section := Section{Count: count}

		numGroups, err := popVarint(&rest)
		if err != nil {
			return err
		}
		for i := uint64(0); i < numGroups; i++ {
			size, err := popVarint(&rest)
			if err != nil {
				return err
			}
			set, err := popInt(&rest)
			if err != nil {
				return err
			}
			region, err := popRegion(&rest)
			if err != nil {
				return err
			}

			group := Group{Set: set, Region: region}
			for j := uint64(0); j < size; j++ {
				number, err := popInt(&rest)
				if err != nil {
					return err
				}
				group.Numbers = append(group.Numbers, number)
			}
			section.Groups = append(section.Groups, group)
		}
		parsed.Sections = append(parsed.Sections, section)
	}

	for len(rest) > 0 {
		count, err := popInt(&rest)
		if err != nil {
			return err
		}
		if count < 1 {
			return &Error{Kind: KindInvalidCount, Msg: fmt.Sprintf("overflow entry has count %d", count)}
		}
		set, err := popInt(&rest)
		if err != nil {
			return err
		}
		region, err := popRegion(&rest)
		if err != nil {
			return err
		}
		number, err := popInt(&rest)
		if err != nil {
			return err
		}
		parsed.Overflow = append(parsed.Overflow, Entry{
			Count: count,
			Card:  deck.CardCode{Set: set, Region: region, Number: number},
		})
	}

	*l = parsed
	return nil
}

// Deck expands the layout into tokens, re-rendering canonical card codes.
func (l *Layout) Deck() deck.Deck {
	var d deck.Deck
	for _, s := range l.Sections {
		for _, g := range s.Groups {
			for _, n := range g.Numbers {
				card := deck.CardCode{Set: g.Set, Region: g.Region, Number: n}
				d = append(d, deck.Token{Code: card.String(), Count: s.Count})
			}
		}
	}
	for _, e := range l.Overflow {
		d = append(d, deck.Token{Code: e.Card.String(), Count: e.Count})
	}
	return d
}

func popVarint(buf *[]byte) (uint64, error) {
	v, _, err := varint.Pop(buf)
	if err != nil {
		return 0, &Error{Kind: KindMalformedVarint, Err: err}
	}
	return v, nil
}

// popInt pops a varint that must fit in an int.
func popInt(buf *[]byte) (int, error) {
	v, err := popVarint(buf)
	if err != nil {
		return 0, err
	}
	if v > math.MaxInt {
		return 0, &Error{Kind: KindMalformedVarint, Msg: fmt.Sprintf("value %d does not fit in an int", v)}
	}
	return int(v), nil
}

func popRegion(buf *[]byte) (deck.Region, error) {
	id, err := popVarint(buf)
	if err != nil {
		return 0, err
	}
	region, ok := deck.RegionFromID(id)
	if !ok {
		return 0, &Error{Kind: KindUnknownRegion, Msg: fmt.Sprintf("wire id %d", id)}
	}
	return region, nil
}
