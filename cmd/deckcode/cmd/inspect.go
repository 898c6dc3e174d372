package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ssargent/deckcode/pkg/codec"
)

func newInspectCmd() *cobra.Command {
	inspectCmd := &cobra.Command{
		Use:   "inspect <code>",
		Short: "Show the wire layout of a deck code",
		Long: `Show the wire layout of a deck code: the format and version byte,
the groups of the 3, 2 and 1 copy sections, and the overflow entries for cards
with more copies.

Example:
  deckcode inspect CMAQCAQGBIAQCAQGAMAAIAIAAICQCAAE`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := runtimeFrom(cmd)
			if err != nil {
				return err
			}

			layout, err := rt.svc.Inspect(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if ok, err := printStructured(cmd.OutOrStdout(), rt.cfg.Output.Format, layout); ok {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "format %d, version %d\n", layout.Format, layout.Version)
			return renderTable(cmd.OutOrStdout(), []string{"SECTION", "SET", "REGION", "CARDS"}, layoutRows(layout))
		},
	}
	return inspectCmd
}

func layoutRows(layout *codec.Layout) [][]string {
	var rows [][]string
	for _, s := range layout.Sections {
		if len(s.Groups) == 0 {
			rows = append(rows, []string{"x" + itoa(s.Count), "-", "-", "-"})
			continue
		}
		for _, g := range s.Groups {
			numbers := make([]string, len(g.Numbers))
			for i, n := range g.Numbers {
				numbers[i] = fmt.Sprintf("%03d", n)
			}
			rows = append(rows, []string{"x" + itoa(s.Count), itoa(g.Set), g.Region.String(), strings.Join(numbers, " ")})
		}
	}
	for _, e := range layout.Overflow {
		rows = append(rows, []string{"x" + itoa(e.Count), itoa(e.Card.Set), e.Card.Region.String(), fmt.Sprintf("%03d", e.Card.Number)})
	}
	return rows
}
