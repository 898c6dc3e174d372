package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssargent/deckcode/pkg/decklist"
)

func newCheckCmd() *cobra.Command {
	checkCmd := &cobra.Command{
		Use:   "check <cases-file>",
		Short: "Check deck codes against the decks they should encode",
		Long: `Check a fixture file of deck codes. Each case is a deck code on its own
line followed by count:code lines; cases are separated by blank lines.

Every case deck is encoded and compared with its code, and every code is
decoded and compared with its deck. The command exits with status 1 if any
case fails. Each run gets a unique id that appears in the report and the logs.

Example:
  deckcode check testdata/cases.txt --metrics-file /var/lib/node_exporter/deckcode.prom`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := runtimeFrom(cmd)
			if err != nil {
				return err
			}

			cases, err := decklist.LoadCases(args[0])
			if err != nil {
				return err
			}

			report, err := rt.svc.CheckCases(cmd.Context(), cases)
			if err != nil {
				return err
			}

			if ok, err := printStructured(cmd.OutOrStdout(), rt.cfg.Output.Format, report); ok {
				if err != nil {
					return err
				}
			} else {
				rows := make([][]string, 0, len(report.Results))
				for _, r := range report.Results {
					status := "PASS"
					if !r.Passed() {
						status = "FAIL"
					}
					rows = append(rows, []string{itoa(r.Line), r.Code, status, r.Error})
				}
				if err := renderTable(cmd.OutOrStdout(), []string{"LINE", "CODE", "RESULT", "ERROR"}, rows); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "run %s: %d passed, %d failed\n", report.RunID, report.Passed, report.Failed)
			}

			if !report.OK() {
				return fmt.Errorf("%d of %d cases failed", report.Failed, report.Total)
			}
			return nil
		},
	}
	return checkCmd
}
