// Package model defines domain types for kwsp withdrawal calculations.
package model

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is matched by every InvalidInputError via errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// InvalidInputError reports which scenario constraint was violated.
type InvalidInputError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s (%g): %s", e.Field, e.Value, e.Reason)
}

// Is lets callers match any validation failure with errors.Is(err, ErrInvalidInput).
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// MaxYears is the longest accepted horizon. Each trial walks every day of
// the horizon, so the bound keeps a request interactive.
const MaxYears = 100

// ScenarioParameters are the four inputs of a calculation.
// Rates are fractions (0.052 means 5.2%).
type ScenarioParameters struct {
	InitialBalance float64 `json:"initial_balance"`
	DividendRate   float64 `json:"dividend_rate"`
	InflationRate  float64 `json:"inflation_rate"`
	Years          int     `json:"years"`
}

// Validate checks the parameters in a fixed order and returns the first
// violation as an *InvalidInputError.
func (p ScenarioParameters) Validate() error {
	switch {
	case !isFinite(p.InitialBalance):
		return &InvalidInputError{Field: "initial_balance", Value: p.InitialBalance, Reason: "must be a finite number"}
	case p.InitialBalance <= 0:
		return &InvalidInputError{Field: "initial_balance", Value: p.InitialBalance, Reason: "must be positive"}
	case p.Years <= 0:
		return &InvalidInputError{Field: "years", Value: float64(p.Years), Reason: "must be positive"}
	case p.Years > MaxYears:
		return &InvalidInputError{Field: "years", Value: float64(p.Years), Reason: fmt.Sprintf("must be at most %d", MaxYears)}
	case !isFinite(p.DividendRate):
		return &InvalidInputError{Field: "dividend_rate", Value: p.DividendRate, Reason: "must be a finite number"}
	case p.DividendRate < 0:
		return &InvalidInputError{Field: "dividend_rate", Value: p.DividendRate, Reason: "must be non-negative"}
	case !isFinite(p.InflationRate):
		return &InvalidInputError{Field: "inflation_rate", Value: p.InflationRate, Reason: "must be a finite number"}
	case p.InflationRate < 0:
		return &InvalidInputError{Field: "inflation_rate", Value: p.InflationRate, Reason: "must be non-negative"}
	}
	return nil
}

// FromPercent builds parameters from percentage rates (5.2 means 5.2%).
func FromPercent(initialBalance, dividendPercent, inflationPercent float64, years int) ScenarioParameters {
	return ScenarioParameters{
		InitialBalance: initialBalance,
		DividendRate:   dividendPercent / 100,
		InflationRate:  inflationPercent / 100,
		Years:          years,
	}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
