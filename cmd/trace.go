package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/kwsp/internal/cli"
)

var traceCmd = &cobra.Command{
	Use:   "trace",
	Short: "Year-by-year dividends, withdrawals and balances",
	RunE:  runTrace,
}

func init() {
	traceCmd.Flags().StringVarP(&flagFile, "file", "f", "", "YAML scenario file (first scenario is used)")
	rootCmd.AddCommand(traceCmd)
}

func runTrace(cmd *cobra.Command, _ []string) error {
	sc, err := inputScenario(cmd)
	if err != nil {
		return err
	}
	res, err := solve(sc)
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(res.Trace)
	}

	balances := make([]float64, len(res.Trace))
	for i, r := range res.Trace {
		balances[i] = r.ClosingBalance
	}

	fmt.Println()
	printHeadline(res)
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.TraceTable(res, currency())))
	fmt.Println()
	fmt.Printf("  Balance  %s\n", cli.RenderSparkline(balances))
	fmt.Println()
	return nil
}
