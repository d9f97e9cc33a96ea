package cmd

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/kwsp/internal/cli"
	"github.com/theirongolddev/kwsp/internal/config"
	"github.com/theirongolddev/kwsp/internal/model"
	"github.com/theirongolddev/kwsp/internal/solver"
)

var flagFile string

var calculateCmd = &cobra.Command{
	Use:   "calculate",
	Short: "Maximum starting monthly withdrawal and its schedule",
	RunE:  runCalculate,
}

func init() {
	calculateCmd.Flags().StringVarP(&flagFile, "file", "f", "", "YAML scenario file (first scenario is used)")
	rootCmd.AddCommand(calculateCmd)
}

func runCalculate(cmd *cobra.Command, _ []string) error {
	sc, err := inputScenario(cmd)
	if err != nil {
		return err
	}
	res, err := solve(sc)
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(res)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("KWSP RETIREMENT WITHDRAWAL"))
	fmt.Println()
	printHeadline(res)
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.SummaryTable(res, currency())))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.ScheduleTable(res, currency())))
	fmt.Println()
	return nil
}

// inputScenario resolves the scenario from --file or from the input flags.
func inputScenario(cmd *cobra.Command) (config.Scenario, error) {
	if flagFile == "" {
		return scenarioFromFlags(cmd), nil
	}
	scenarios, err := config.LoadScenarios(flagFile)
	if err != nil {
		return config.Scenario{}, err
	}
	if len(scenarios) > 1 && !flagQuiet {
		fmt.Fprintf(os.Stderr, "  %s holds %d scenarios, using %q (see `kwsp sweep --file`)\n",
			flagFile, len(scenarios), scenarios[0].Name)
	}
	return scenarios[0], nil
}

func solve(sc config.Scenario) (*model.SolverResult, error) {
	return solver.Solve(sc.Params(), solver.WithLogger(appLogger))
}

func printHeadline(res *model.SolverResult) {
	fmt.Println(cli.RenderHighlight("Max starting monthly withdrawal", cli.FormatCurrency(currency(), res.StartWithdrawal)))
	if !res.Converged {
		fmt.Println(cli.RenderWarning(fmt.Sprintf(
			"search did not converge after %d iterations; showing best estimate", res.Iterations)))
	}
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
