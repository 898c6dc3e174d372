package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssargent/deckcode/pkg/codec"
	"github.com/ssargent/deckcode/pkg/deck"
)

type decodeOutput struct {
	Code   string    `json:"code" yaml:"code"`
	Copies int       `json:"copies" yaml:"copies"`
	Cards  deck.Deck `json:"cards" yaml:"cards"`
}

func newDecodeCmd() *cobra.Command {
	decodeCmd := &cobra.Command{
		Use:   "decode <code>",
		Short: "Decode a deck code into its cards",
		Long: `Decode a deck code into its cards.

Case, surrounding whitespace and '-' separators in the code are ignored.

Examples:
  deckcode decode CMAAAAAEAEAAE
  deckcode decode cmaa-aaae-aeaa-e -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := runtimeFrom(cmd)
			if err != nil {
				return err
			}

			d, err := rt.svc.Decode(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := decodeOutput{Code: args[0], Copies: d.Cards(), Cards: d}
			if ok, err := printStructured(cmd.OutOrStdout(), rt.cfg.Output.Format, out); ok {
				return err
			}

			rows := make([][]string, 0, len(d))
			for _, t := range d.Sorted() {
				rows = append(rows, cardRow(t))
			}
			if err := renderTable(cmd.OutOrStdout(), []string{"COUNT", "CODE", "SET", "REGION", "NUMBER"}, rows); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d cards, %d copies\n", d.Len(), d.Cards())
			return err
		},
	}
	return decodeCmd
}

func cardRow(t deck.Token) []string {
	card, err := codec.ParseCardCode(t.Code)
	if err != nil {
		return []string{itoa(t.Count), t.Code, "-", "-", "-"}
	}
	return []string{itoa(t.Count), t.Code, itoa(card.Set), card.Region.Name(), itoa(card.Number)}
}
