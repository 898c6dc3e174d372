package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssargent/deckcode/pkg/base32"
	"github.com/ssargent/deckcode/pkg/deck"
	"github.com/ssargent/deckcode/pkg/decklist"
)

type encodeOutput struct {
	Code  string    `json:"code" yaml:"code"`
	Cards deck.Deck `json:"cards" yaml:"cards"`
}

func newEncodeCmd() *cobra.Command {
	encodeCmd := &cobra.Command{
		Use:   "encode [file]",
		Short: "Encode a deck into a deck code",
		Long: `Encode a deck into a deck code.

The deck is read from a file (text, YAML or JSONC, chosen by extension), from
standard input when the file is "-", and from repeated --card flags. Cards
from every source are combined.

Examples:
  deckcode encode deck.txt
  deckcode encode --card 3:01DE002 --card 1:01FR004
  cat deck.txt | deckcode encode - --chunk 4`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := runtimeFrom(cmd)
			if err != nil {
				return err
			}

			d, err := readDeck(cmd, args)
			if err != nil {
				return err
			}

			code, err := rt.svc.Encode(cmd.Context(), d)
			if err != nil {
				return err
			}

			out := encodeOutput{Code: base32.Chunk(code, rt.cfg.Output.ChunkSize), Cards: d}
			if ok, err := printStructured(cmd.OutOrStdout(), rt.cfg.Output.Format, out); ok {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out.Code)
			return err
		},
	}

	encodeCmd.Flags().StringArrayP("card", "c", nil, "Card as count:code, may be repeated")
	encodeCmd.Flags().Int("chunk", 0, "Insert '-' every N characters of the code")
	return encodeCmd
}

// readDeck collects the deck from the optional file argument and the
// --card flags.
func readDeck(cmd *cobra.Command, args []string) (deck.Deck, error) {
	var d deck.Deck

	if len(args) == 1 {
		var (
			fromFile deck.Deck
			err      error
		)
		if args[0] == "-" {
			fromFile, err = decklist.ParseText(cmd.InOrStdin())
		} else {
			fromFile, err = decklist.LoadFile(args[0])
		}
		if err != nil {
			return nil, err
		}
		d = append(d, fromFile...)
	}

	cards, _ := cmd.Flags().GetStringArray("card")
	fromFlags, err := decklist.ParseTokens(cards)
	if err != nil {
		return nil, fmt.Errorf("invalid --card value: %w", err)
	}
	d = append(d, fromFlags...)

	if len(args) == 0 && len(cards) == 0 {
		return nil, errors.New("no cards given: pass a deck file or --card values")
	}
	return d, nil
}
