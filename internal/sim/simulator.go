// Package sim walks a retirement balance day by day over a fixed horizon,
// taking monthly withdrawals and crediting yearly dividends on the
// time-weighted average daily balance.
package sim

import "github.com/theirongolddev/kwsp/internal/model"

// Simulate runs the depletion simulation for one base (first-year) monthly
// withdrawal and returns the ending balance. When collectTrace is set the
// per-year dividend and withdrawal records are returned too; otherwise the
// trace is nil.
//
// params must already be validated.
func Simulate(params model.ScenarioParameters, baseWithdrawal float64, collectTrace bool) (float64, model.SimulationTrace) {
	schedule := model.NewWithdrawalSchedule(baseWithdrawal, params.InflationRate, params.Years)

	var trace model.SimulationTrace
	if collectTrace {
		trace = make(model.SimulationTrace, 0, params.Years)
	}

	balance := params.InitialBalance
	var dailySum float64
	var daysInYear int

	d := startDay()
	for i, n := 0, horizonDays(params.Years); i < n; i++ {
		year := d.simYear(params.Years)

		if d.isMonthEnd() {
			balance -= schedule.Monthly(year)
		}
		dailySum += balance
		daysInYear++

		if d.isYearEnd() && year <= params.Years {
			dividend := (dailySum / float64(daysInYear)) * params.DividendRate
			balance += dividend
			if collectTrace {
				trace = append(trace, model.YearRecord{
					Year:              year,
					Dividend:          dividend,
					MonthlyWithdrawal: schedule.Monthly(year),
					AnnualWithdrawal:  schedule.Annual(year),
					ClosingBalance:    balance,
				})
			}
			dailySum = 0
			daysInYear = 0
		}
		d.next()
	}

	return balance, trace
}

// Run is Simulate without a trace, shaped for search comparisons.
func Run(params model.ScenarioParameters, baseWithdrawal float64) model.SimulationResult {
	final, _ := Simulate(params, baseWithdrawal, false)
	return model.SimulationResult{FinalBalance: final}
}
