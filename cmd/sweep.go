package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/kwsp/internal/cli"
	"github.com/theirongolddev/kwsp/internal/config"
	"github.com/theirongolddev/kwsp/internal/pipeline"
)

var (
	flagSweepFile      string
	flagSweepYearsFrom int
	flagSweepYearsTo   int
	flagSweepRateFrom  float64
	flagSweepRateTo    float64
	flagSweepRateStep  float64
	flagSweepWorkers   int
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Compare many scenarios side by side",
	Long: "Solve a grid of scenarios in parallel. Use --years-from/--years-to for a horizon grid,\n" +
		"--rate-from/--rate-to/--rate-step for a dividend grid, or --file for a YAML scenario list.",
	RunE: runSweep,
}

type sweepRow struct {
	Name            string          `json:"name"`
	Scenario        config.Scenario `json:"scenario"`
	StartWithdrawal float64         `json:"start_withdrawal,omitempty"`
	FinalBalance    float64         `json:"final_balance,omitempty"`
	Converged       bool            `json:"converged"`
	Error           string          `json:"error,omitempty"`
}

func init() {
	sweepCmd.Flags().StringVarP(&flagSweepFile, "file", "f", "", "YAML scenario list")
	sweepCmd.Flags().IntVar(&flagSweepYearsFrom, "years-from", 0, "First horizon in a years grid")
	sweepCmd.Flags().IntVar(&flagSweepYearsTo, "years-to", 0, "Last horizon in a years grid")
	sweepCmd.Flags().Float64Var(&flagSweepRateFrom, "rate-from", 0, "First dividend rate (percent) in a rate grid")
	sweepCmd.Flags().Float64Var(&flagSweepRateTo, "rate-to", 0, "Last dividend rate (percent) in a rate grid")
	sweepCmd.Flags().Float64Var(&flagSweepRateStep, "rate-step", 0.5, "Dividend rate step (percent)")
	sweepCmd.Flags().IntVar(&flagSweepWorkers, "workers", 0, "Parallel workers (default: all CPUs)")
	rootCmd.AddCommand(sweepCmd)
}

func runSweep(cmd *cobra.Command, _ []string) error {
	scenarios, err := sweepScenarios(cmd)
	if err != nil {
		return err
	}
	if len(scenarios) == 0 {
		return errors.New("no scenarios: pass --file, --years-from/--years-to or --rate-from/--rate-to")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	progress := func(current, total int) {
		if flagQuiet || flagJSON {
			return
		}
		fmt.Fprintf(os.Stderr, "\r  Solving [%d/%d]", current, total)
		if current == total {
			fmt.Fprintln(os.Stderr)
		}
	}

	outcomes, err := pipeline.Sweep(ctx, scenarios, pipeline.Options{
		Workers:  flagSweepWorkers,
		Progress: progress,
		Logger:   appLogger,
	})
	if err != nil {
		return err
	}

	if flagJSON {
		rows := make([]sweepRow, len(outcomes))
		for i, o := range outcomes {
			rows[i] = sweepRow{Name: o.Scenario.Name, Scenario: o.Scenario}
			if o.Err != nil {
				rows[i].Error = o.Err.Error()
				continue
			}
			rows[i].StartWithdrawal = o.Result.StartWithdrawal
			rows[i].FinalBalance = o.Result.FinalBalance
			rows[i].Converged = o.Result.Converged
		}
		return printJSON(rows)
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(sweepTable(outcomes, currency())))
	fmt.Println()
	return nil
}

func sweepScenarios(cmd *cobra.Command) ([]config.Scenario, error) {
	if flagSweepFile != "" {
		return config.LoadScenarios(flagSweepFile)
	}
	base := scenarioFromFlags(cmd)
	if cmd.Flags().Changed("rate-from") || cmd.Flags().Changed("rate-to") {
		if flagSweepRateStep <= 0 {
			return nil, fmt.Errorf("--rate-step must be positive, got %v", flagSweepRateStep)
		}
		return pipeline.RateGrid(base, flagSweepRateFrom, flagSweepRateTo, flagSweepRateStep), nil
	}
	if cmd.Flags().Changed("years-from") || cmd.Flags().Changed("years-to") {
		from, to := flagSweepYearsFrom, flagSweepYearsTo
		if from == 0 {
			from = 1
		}
		if to == 0 {
			to = base.Years
		}
		return pipeline.YearsGrid(base, from, to), nil
	}
	return nil, nil
}

const sweepBarWidth = 20

func sweepTable(outcomes []pipeline.Outcome, symbol string) cli.Table {
	var top float64
	for _, o := range outcomes {
		if o.Err == nil {
			top = max(top, o.Result.StartWithdrawal)
		}
	}

	rows := make([][]string, 0, len(outcomes))
	for _, o := range outcomes {
		sc := o.Scenario
		inputs := []string{
			sc.Name,
			cli.FormatCurrency(symbol, sc.InitialBalance),
			fmt.Sprintf("%.2f%%", sc.DividendRatePercent),
			fmt.Sprintf("%.2f%%", sc.InflationRatePercent),
			fmt.Sprintf("%d", sc.Years),
		}
		if o.Err != nil {
			rows = append(rows, append(inputs, "error: "+o.Err.Error(), ""))
			continue
		}
		monthly := cli.FormatCurrency(symbol, o.Result.StartWithdrawal)
		if !o.Result.Converged {
			monthly += " *"
		}
		rows = append(rows, append(inputs, monthly, cli.RenderHorizontalBar(o.Result.StartWithdrawal, top, sweepBarWidth)))
	}

	return cli.Table{
		Title:   "Scenario Sweep",
		Headers: []string{"Scenario", "Balance", "Dividend", "Inflation", "Years", "Start Monthly", ""},
		Rows:    rows,
	}
}
