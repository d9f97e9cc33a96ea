package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/kwsp/internal/cli"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Annual withdrawal schedule only",
	RunE:  runSchedule,
}

func init() {
	scheduleCmd.Flags().StringVarP(&flagFile, "file", "f", "", "YAML scenario file (first scenario is used)")
	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, _ []string) error {
	sc, err := inputScenario(cmd)
	if err != nil {
		return err
	}
	res, err := solve(sc)
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(res.Schedule)
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.ScheduleTable(res, currency())))
	return nil
}
