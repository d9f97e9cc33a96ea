package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/kwsp/internal/report"
)

var flagReportOut string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write the calculation as a PDF report",
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&flagReportOut, "out", "o", "kwsp-report.pdf", "Output PDF path")
	reportCmd.Flags().StringVarP(&flagFile, "file", "f", "", "YAML scenario file (first scenario is used)")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, _ []string) error {
	sc, err := inputScenario(cmd)
	if err != nil {
		return err
	}
	res, err := solve(sc)
	if err != nil {
		return err
	}

	data, err := report.PDF(res, report.Options{
		Currency:    currency(),
		GeneratedAt: time.Now(),
	})
	if err != nil {
		return err
	}
	if err := os.WriteFile(flagReportOut, data, 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	if !flagQuiet {
		fmt.Printf("  Report written to %s\n", flagReportOut)
	}
	return nil
}
