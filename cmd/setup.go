package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/kwsp/internal/config"
	"github.com/theirongolddev/kwsp/internal/tui/theme"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Save default inputs and preferences",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	reader := bufio.NewReader(os.Stdin)
	cfg := appCfg
	d := &cfg.Defaults

	fmt.Println()
	fmt.Println("  Welcome to kwsp!")
	fmt.Println("  Press enter to keep the value in brackets.")
	fmt.Println()

	fmt.Println("  1. Default inputs")
	d.InitialBalance = promptFloat(reader, "Initial balance", d.InitialBalance, 0)
	d.DividendRatePercent = promptFloat(reader, "Dividend rate (%)", d.DividendRatePercent, -1)
	d.InflationRatePercent = promptFloat(reader, "Inflation rate (%)", d.InflationRatePercent, -1)
	d.Years = int(promptFloat(reader, "Years", float64(d.Years), 0))
	fmt.Println()

	fmt.Println("  2. Currency symbol")
	cfg.Output.Currency = promptString(reader, "Symbol", cfg.Output.Currency)
	fmt.Println()

	fmt.Println("  3. Color theme")
	names := theme.Names()
	for i, name := range names {
		marker := ""
		if name == cfg.Appearance.Theme {
			marker = " [current]"
		}
		fmt.Printf("     (%d) %s%s\n", i+1, name, marker)
	}
	choice := promptString(reader, "Choice", "")
	if n, err := strconv.Atoi(choice); err == nil && n >= 1 && n <= len(names) {
		cfg.Appearance.Theme = names[n-1]
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.Path())
	fmt.Println("  Run `kwsp setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}

func promptString(reader *bufio.Reader, label, current string) string {
	if current != "" {
		fmt.Printf("     %s [%s] > ", label, current)
	} else {
		fmt.Printf("     %s > ", label)
	}
	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return current
	}
	return line
}

// promptFloat re-asks until the answer parses and exceeds floor. An empty
// answer keeps current.
func promptFloat(reader *bufio.Reader, label string, current, floor float64) float64 {
	def := strconv.FormatFloat(current, 'f', -1, 64)
	for {
		line := promptString(reader, label, def)
		if line == def {
			return current
		}
		v, err := strconv.ParseFloat(strings.ReplaceAll(line, ",", ""), 64)
		if err == nil && v > floor {
			return v
		}
		fmt.Printf("     must be a number greater than %v\n", floor)
	}
}
