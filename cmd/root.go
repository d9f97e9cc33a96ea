// Package cmd implements the kwsp CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/kwsp/internal/config"
	"github.com/theirongolddev/kwsp/internal/log"
	"github.com/theirongolddev/kwsp/internal/tui/theme"
)

var (
	flagBalance   float64
	flagDividend  float64
	flagInflation float64
	flagYears     int
	flagJSON      bool
	flagQuiet     bool
)

// Loaded once in PersistentPreRunE and shared by every command.
var (
	appCfg    config.Config
	appLogger = log.Nop()
)

var rootCmd = &cobra.Command{
	Use:               "kwsp",
	Short:             "KWSP retirement withdrawal calculator",
	Long:              "Find the largest starting monthly withdrawal that runs your retirement savings down to zero,\nwith withdrawals rising each year by inflation and dividends credited annually.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runCalculate,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	defaults := config.DefaultConfig().Defaults

	rootCmd.PersistentFlags().Float64VarP(&flagBalance, "balance", "b", defaults.InitialBalance, "Initial balance")
	rootCmd.PersistentFlags().Float64VarP(&flagDividend, "dividend", "r", defaults.DividendRatePercent, "Annual dividend rate (percent)")
	rootCmd.PersistentFlags().Float64VarP(&flagInflation, "inflation", "i", defaults.InflationRatePercent, "Annual inflation rate (percent)")
	rootCmd.PersistentFlags().IntVarP(&flagYears, "years", "y", defaults.Years, "Time period in years")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Emit JSON instead of tables")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")

	rootCmd.Flags().StringVarP(&flagFile, "file", "f", "", "YAML scenario file")
}

// setup loads .env, the config file, the theme and the logger.
func setup(_ *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	appCfg = cfg
	theme.SetActive(cfg.Appearance.Theme)

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	lc := log.DefaultConfig()
	lc.Level = level
	appLogger = log.New(lc)
	log.SetDefault(appLogger)
	return nil
}

// scenarioFromFlags starts from the configured defaults and applies any
// input flags the user set explicitly.
func scenarioFromFlags(cmd *cobra.Command) config.Scenario {
	sc := config.ScenarioFromDefaults(appCfg.Defaults)
	flags := cmd.Flags()
	if flags.Changed("balance") {
		sc.InitialBalance = flagBalance
	}
	if flags.Changed("dividend") {
		sc.DividendRatePercent = flagDividend
	}
	if flags.Changed("inflation") {
		sc.InflationRatePercent = flagInflation
	}
	if flags.Changed("years") {
		sc.Years = flagYears
	}
	return sc
}

func currency() string {
	return appCfg.Output.Currency
}
