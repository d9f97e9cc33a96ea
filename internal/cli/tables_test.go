package cli

import (
	"strings"
	"testing"

	"github.com/theirongolddev/kwsp/internal/model"
)

func sampleResult() *model.SolverResult {
	params := model.ScenarioParameters{InitialBalance: 100_000, DividendRate: 0.05, InflationRate: 0.03, Years: 3}
	sched := model.NewWithdrawalSchedule(1000, params.InflationRate, params.Years)
	return &model.SolverResult{
		Params:           params,
		StartWithdrawal:  1000,
		Schedule:         sched,
		TotalWithdrawals: sched.Total(),
		Trace: model.SimulationTrace{
			{Year: 1, Dividend: 100, MonthlyWithdrawal: 1000, AnnualWithdrawal: 12000, ClosingBalance: 88100},
			{Year: 2, Dividend: 90, MonthlyWithdrawal: 1030, AnnualWithdrawal: 12360, ClosingBalance: 75830},
		},
		Converged: true,
	}
}

func TestScheduleTableRows(t *testing.T) {
	tbl := ScheduleTable(sampleResult(), "RM")
	if len(tbl.Rows) != 5 {
		t.Fatalf("rows = %d, want 5 (3 years + separator + total)", len(tbl.Rows))
	}
	if got := tbl.Rows[1][1]; got != "RM 1,030.00" {
		t.Fatalf("year 2 monthly = %q, want RM 1,030.00", got)
	}
	if tbl.Rows[3][0] != SeparatorRow {
		t.Fatalf("row 3 = %v, want separator", tbl.Rows[3])
	}
	if tbl.Rows[4][0] != "Total" {
		t.Fatalf("last row = %v, want Total", tbl.Rows[4])
	}
}

func TestTraceTableColumns(t *testing.T) {
	tbl := TraceTable(sampleResult(), "RM")
	if len(tbl.Headers) != 5 {
		t.Fatalf("headers = %v, want 5 columns", tbl.Headers)
	}
	if got := tbl.Rows[0][4]; got != "RM 88,100.00" {
		t.Fatalf("closing balance = %q, want RM 88,100.00", got)
	}
	out := RenderTable(tbl)
	if !strings.Contains(out, "Closing Balance") {
		t.Fatal("rendered trace missing header")
	}
}

func TestSummaryTableRates(t *testing.T) {
	tbl := SummaryTable(sampleResult(), "RM")
	if got := tbl.Rows[1][1]; got != "5.00%" {
		t.Fatalf("dividend rate = %q, want 5.00%%", got)
	}
	if got := tbl.Rows[3][1]; got != "3 years" {
		t.Fatalf("years = %q, want 3 years", got)
	}
}
