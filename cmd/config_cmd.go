package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/kwsp/internal/cli"
	"github.com/theirongolddev/kwsp/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg := appCfg

	if flagJSON {
		return printJSON(cfg)
	}

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [Defaults]")
	fmt.Printf("    Initial balance: %s\n", cli.FormatCurrency(cfg.Output.Currency, cfg.Defaults.InitialBalance))
	fmt.Printf("    Dividend rate:   %.2f%%\n", cfg.Defaults.DividendRatePercent)
	fmt.Printf("    Inflation rate:  %.2f%%\n", cfg.Defaults.InflationRatePercent)
	fmt.Printf("    Time period:     %s\n", cli.FormatYears(cfg.Defaults.Years))
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Address: %s\n", cfg.Server.Addr)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Output]")
	fmt.Printf("    Currency: %s\n", cfg.Output.Currency)
	fmt.Println()

	fmt.Println("  [Log]")
	fmt.Printf("    Level: %s\n", cfg.Log.Level)
	fmt.Println()

	fmt.Println("  Run `kwsp setup` to reconfigure.")
	return nil
}
