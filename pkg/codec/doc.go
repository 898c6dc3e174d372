// Package codec converts decks of cards into short, shareable deck codes
// and back.
//
// A deck code is a base32 string (see package base32) over a compact binary
// layout built from unsigned varints (see package varint). Encoding is a
// pure function of the set of tokens: any permutation of the same deck
// produces the same code.
//
// # Wire Format
//
// The first byte holds the format in its high nibble and the version in its
// low nibble. The codec writes format 1, version 3 (0x13) and accepts any
// version up to MaxKnownVersion.
//
// Three sections follow, for cards with exactly 3, 2 and 1 copies, in that
// order:
//
//	varint(numGroups)
//	repeated numGroups times:
//	    varint(groupSize) varint(set) varint(regionID)
//	    varint(number) repeated groupSize times
//
// A group collects the cards of one section that share set and region. The
// remaining bytes hold cards with four or more copies, one entry each and
// no count prefix:
//
//	varint(count) varint(set) varint(regionID) varint(number)
//
// # Canonical Order
//
// Inside a group, cards are sorted by card code. Groups are sorted by size,
// smallest first, with the smallest card code of each group breaking ties.
// Overflow entries are sorted by card code.
//
// # Usage
//
//	c := codec.New()
//
//	code, err := c.Encode(deck.Deck{{Code: "01DE002", Count: 3}})
//	if err != nil {
//	    return err
//	}
//
//	d, err := c.Decode(code)
//	if err != nil {
//	    return err
//	}
//
// # Error Handling
//
// Every failure is a *Error whose Kind names one entry of the taxonomy:
// invalid tokens and counts on encode; base32 failures, empty input,
// unsupported versions, truncated varints and unknown region ids on decode.
// Compare with errors.Is against the Err* sentinels, or use KindOf.
// Operations are all-or-nothing; no partial deck is returned.
//
// # Thread Safety
//
// DeckCodec has no state. The region tables are read-only after package
// initialization, so all functions may be called concurrently.
package codec
