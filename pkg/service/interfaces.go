// Package service provides the instrumented codec operations used by the
// CLI. Every call is logged and recorded in Prometheus metrics; the codec
// itself stays free of both.
package service

import (
	"github.com/ssargent/deckcode/pkg/codec"
	"github.com/ssargent/deckcode/pkg/deck"
)

// Codec defines the deck codec operations the service wraps
type Codec interface {
	// Encode returns the deck code for a deck
	Encode(d deck.Deck) (string, error)

	// Decode parses a deck code
	Decode(code string) (deck.Deck, error)

	// Check returns the error for the first invalid token, or nil
	Check(d deck.Deck) error

	// Inspect parses a deck code into its wire layout
	Inspect(code string) (*codec.Layout, error)
}

var _ Codec = (*codec.DeckCodec)(nil)
