package model

import (
	"math"
	"testing"
)

func TestWithdrawalScheduleCompounds(t *testing.T) {
	const base, rate, years = 2000.0, 0.05, 20
	s := NewWithdrawalSchedule(base, rate, years)

	if s.Years() != years {
		t.Fatalf("Years() = %d, want %d", s.Years(), years)
	}
	for y := 1; y <= years; y++ {
		want := base * math.Pow(1+rate, float64(y-1))
		if got := s.Monthly(y); got != want {
			t.Fatalf("Monthly(%d) = %v, want %v", y, got, want)
		}
		if got := s.Annual(y); got != s.Monthly(y)*12 {
			t.Fatalf("Annual(%d) = %v, want %v", y, got, s.Monthly(y)*12)
		}
	}
}

func TestWithdrawalScheduleExtrapolatesOutsideHorizon(t *testing.T) {
	const base, rate, years = 1500.0, 0.03, 10
	s := NewWithdrawalSchedule(base, rate, years)

	for _, y := range []int{0, -2, years + 1, years + 5, years + 40} {
		want := base * math.Pow(1+rate, float64(y-1))
		if got := s.Monthly(y); got != want {
			t.Fatalf("Monthly(%d) = %v, want %v", y, got, want)
		}
	}
}

func TestWithdrawalScheduleTotalMatchesEntries(t *testing.T) {
	s := NewWithdrawalSchedule(3210.5, 0.047, 25)

	entries := s.Entries()
	if len(entries) != 25 {
		t.Fatalf("Entries() = %d rows, want 25", len(entries))
	}
	var sum float64
	for i, e := range entries {
		if e.Year != i+1 {
			t.Fatalf("entry %d year = %d, want %d", i, e.Year, i+1)
		}
		if e.Annual != e.Monthly*12 || e.Monthly != s.Monthly(e.Year) {
			t.Fatalf("entry %d = %+v, inconsistent with Monthly(%d) = %v", i, e, e.Year, s.Monthly(e.Year))
		}
		sum += e.Annual
	}
	if got := s.Total(); got != sum {
		t.Fatalf("Total() = %v, want %v", got, sum)
	}
}

func TestValidateRejectsHorizonBeyondMax(t *testing.T) {
	p := ScenarioParameters{InitialBalance: 1_000_000, DividendRate: 0.05, InflationRate: 0.03, Years: MaxYears}
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate(MaxYears) = %v, want nil", err)
	}
	p.Years = MaxYears + 1
	err := p.Validate()
	inv, ok := err.(*InvalidInputError)
	if !ok || inv.Field != "years" {
		t.Fatalf("Validate(MaxYears+1) = %v, want years error", err)
	}
}
