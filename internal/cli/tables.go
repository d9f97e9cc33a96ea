package cli

import (
	"fmt"

	"github.com/theirongolddev/kwsp/internal/model"
)

// ScheduleTable lays out the inflation-adjusted withdrawals year by year,
// closing with a total row.
func ScheduleTable(res *model.SolverResult, currency string) Table {
	entries := res.Schedule.Entries()
	rows := make([][]string, 0, len(entries)+2)
	for _, e := range entries {
		rows = append(rows, []string{
			fmt.Sprintf("%d", e.Year),
			FormatCurrency(currency, e.Monthly),
			FormatCurrency(currency, e.Annual),
		})
	}
	rows = append(rows,
		[]string{SeparatorRow},
		[]string{"Total", "", FormatCurrency(currency, res.TotalWithdrawals)},
	)
	return Table{
		Title:   "Withdrawal Schedule",
		Headers: []string{"Year", "Monthly", "Annual"},
		Rows:    rows,
	}
}

// TraceTable lays out the per-year balance trace from the final simulation.
func TraceTable(res *model.SolverResult, currency string) Table {
	rows := make([][]string, 0, len(res.Trace)+2)
	for _, r := range res.Trace {
		rows = append(rows, []string{
			fmt.Sprintf("%d", r.Year),
			FormatCurrency(currency, r.Dividend),
			FormatCurrency(currency, r.MonthlyWithdrawal),
			FormatCurrency(currency, r.AnnualWithdrawal),
			FormatCurrency(currency, r.ClosingBalance),
		})
	}
	rows = append(rows,
		[]string{SeparatorRow},
		[]string{"Total", FormatCurrency(currency, res.TotalDividends), "", FormatCurrency(currency, res.TotalWithdrawals), ""},
	)
	return Table{
		Title:   "Year-by-Year Balance",
		Headers: []string{"Year", "Dividend", "Monthly", "Annual", "Closing Balance"},
		Rows:    rows,
	}
}

// SummaryTable lists the inputs and the headline results.
func SummaryTable(res *model.SolverResult, currency string) Table {
	p := res.Params
	return Table{
		Title:   "Inputs",
		Headers: []string{"Parameter", "Value"},
		Rows: [][]string{
			{"Initial balance", FormatCurrency(currency, p.InitialBalance)},
			{"Dividend rate", FormatRate(p.DividendRate)},
			{"Inflation rate", FormatRate(p.InflationRate)},
			{"Time period", FormatYears(p.Years)},
			{SeparatorRow},
			{"Total withdrawn", FormatCurrency(currency, res.TotalWithdrawals)},
			{"Total dividends", FormatCurrency(currency, res.TotalDividends)},
			{"Final balance", FormatCurrency(currency, res.FinalBalance)},
		},
	}
}
