package model

import (
	"math"

	json "github.com/goccy/go-json"
)

// WithdrawalSchedule maps simulation years (1-indexed) to the monthly
// withdrawal for that year. Entries are computed once and never mutated.
type WithdrawalSchedule struct {
	base      float64
	inflation float64
	monthly   []float64
}

// NewWithdrawalSchedule derives the schedule for years 1..years from the
// base (first-year) monthly withdrawal.
func NewWithdrawalSchedule(base, inflationRate float64, years int) WithdrawalSchedule {
	if years < 0 {
		years = 0
	}
	monthly := make([]float64, years)
	for i := range monthly {
		monthly[i] = compound(base, inflationRate, i+1)
	}
	return WithdrawalSchedule{base: base, inflation: inflationRate, monthly: monthly}
}

// Monthly returns the monthly withdrawal for the given year. Years outside
// the derived horizon are extrapolated with the same compounding formula.
func (s WithdrawalSchedule) Monthly(year int) float64 {
	if year >= 1 && year <= len(s.monthly) {
		return s.monthly[year-1]
	}
	return compound(s.base, s.inflation, year)
}

// Annual returns twelve times the monthly withdrawal for the year.
func (s WithdrawalSchedule) Annual(year int) float64 {
	return s.Monthly(year) * 12
}

// Years is the number of derived entries.
func (s WithdrawalSchedule) Years() int { return len(s.monthly) }

// Base is the first-year monthly withdrawal.
func (s WithdrawalSchedule) Base() float64 { return s.base }

// Entries returns a copy of the per-year rows in year order.
func (s WithdrawalSchedule) Entries() []ScheduleEntry {
	out := make([]ScheduleEntry, len(s.monthly))
	for i, m := range s.monthly {
		out[i] = ScheduleEntry{Year: i + 1, Monthly: m, Annual: m * 12}
	}
	return out
}

// Total sums the annual withdrawals over the derived horizon.
func (s WithdrawalSchedule) Total() float64 {
	var total float64
	for _, m := range s.monthly {
		total += m * 12
	}
	return total
}

// MarshalJSON encodes the schedule as its table rows.
func (s WithdrawalSchedule) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Entries())
}

func compound(base, rate float64, year int) float64 {
	return base * math.Pow(1+rate, float64(year-1))
}

// ScheduleEntry is one row of the annual withdrawal table.
type ScheduleEntry struct {
	Year    int     `json:"year"`
	Monthly float64 `json:"monthly_withdrawal"`
	Annual  float64 `json:"annual_withdrawal"`
}

// YearRecord is one closed fiscal year in a simulation trace.
type YearRecord struct {
	Year              int     `json:"year"`
	Dividend          float64 `json:"dividend_credited"`
	MonthlyWithdrawal float64 `json:"monthly_withdrawal"`
	AnnualWithdrawal  float64 `json:"annual_withdrawal"`
	ClosingBalance    float64 `json:"closing_balance"`
}

// SimulationTrace is the ordered list of closed fiscal years.
type SimulationTrace []YearRecord

// TotalDividends sums the dividends credited across the trace.
func (t SimulationTrace) TotalDividends() float64 {
	var total float64
	for _, r := range t {
		total += r.Dividend
	}
	return total
}

// SimulationResult is the output of a search trial run.
type SimulationResult struct {
	FinalBalance float64 `json:"final_balance"`
}

// SolverResult is the full answer to one calculation request.
type SolverResult struct {
	Params           ScenarioParameters `json:"params"`
	StartWithdrawal  float64            `json:"start_withdrawal"`
	FinalBalance     float64            `json:"final_balance"`
	TotalWithdrawals float64            `json:"total_withdrawals"`
	TotalDividends   float64            `json:"total_dividends"`
	Schedule         WithdrawalSchedule `json:"schedule"`
	Trace            SimulationTrace    `json:"trace"`

	// Converged is false when the iteration budget ran out before the final
	// balance came within tolerance; StartWithdrawal is then the last midpoint.
	Converged  bool `json:"converged"`
	Iterations int  `json:"iterations"`
}
