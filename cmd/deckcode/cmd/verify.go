package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVerifyCmd() *cobra.Command {
	verifyCmd := &cobra.Command{
		Use:   "verify [file]",
		Short: "Check that a deck can be encoded",
		Long: `Check that every card of a deck has a well-formed code with a known
region and a count of at least one. Invalid cards are listed and the command
exits with status 1.

Examples:
  deckcode verify deck.yaml
  deckcode verify --card 3:01XX002`,
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

			problems := rt.svc.Verify(cmd.Context(), d)
			if ok, err := printStructured(cmd.OutOrStdout(), rt.cfg.Output.Format, problems); ok {
				if err != nil {
					return err
				}
			} else if len(problems) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "deck is valid: %d cards, %d copies\n", d.Len(), d.Cards())
			} else {
				rows := make([][]string, 0, len(problems))
				for _, p := range problems {
					rows = append(rows, []string{p.Token.String(), p.Kind, p.Error})
				}
				if err := renderTable(cmd.OutOrStdout(), []string{"TOKEN", "KIND", "ERROR"}, rows); err != nil {
					return err
				}
			}

			if len(problems) > 0 {
				return fmt.Errorf("deck has %d invalid cards", len(problems))
			}
			return nil
		},
	}

	verifyCmd.Flags().StringArrayP("card", "c", nil, "Card as count:code, may be repeated")
	return verifyCmd
}
