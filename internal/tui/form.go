package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/kwsp/internal/config"
	"github.com/theirongolddev/kwsp/internal/model"
)

// formValues backs the huh inputs. huh binds to strings, so numbers are
// parsed on submit.
type formValues struct {
	balance   string
	dividend  string
	inflation string
	years     string
}

func valuesFromScenario(sc config.Scenario) formValues {
	return formValues{
		balance:   strconv.FormatFloat(sc.InitialBalance, 'f', -1, 64),
		dividend:  strconv.FormatFloat(sc.DividendRatePercent, 'f', -1, 64),
		inflation: strconv.FormatFloat(sc.InflationRatePercent, 'f', -1, 64),
		years:     strconv.Itoa(sc.Years),
	}
}

// scenario parses the form into calculation inputs.
func (v formValues) scenario() (config.Scenario, error) {
	balance, err := parseAmount(v.balance)
	if err != nil {
		return config.Scenario{}, fmt.Errorf("initial balance: %w", err)
	}
	dividend, err := parseAmount(v.dividend)
	if err != nil {
		return config.Scenario{}, fmt.Errorf("dividend rate: %w", err)
	}
	inflation, err := parseAmount(v.inflation)
	if err != nil {
		return config.Scenario{}, fmt.Errorf("inflation rate: %w", err)
	}
	years, err := strconv.Atoi(strings.TrimSpace(v.years))
	if err != nil {
		return config.Scenario{}, fmt.Errorf("years: not a whole number")
	}
	return config.Scenario{
		InitialBalance:       balance,
		DividendRatePercent:  dividend,
		InflationRatePercent: inflation,
		Years:                years,
	}, nil
}

// parseAmount accepts "1,300,000" as well as "1300000".
func parseAmount(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number")
	}
	return f, nil
}

func validatePositive(s string) error {
	f, err := parseAmount(s)
	if err != nil {
		return err
	}
	if f <= 0 {
		return fmt.Errorf("must be positive")
	}
	return nil
}

func validateNonNegative(s string) error {
	f, err := parseAmount(s)
	if err != nil {
		return err
	}
	if f < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}

func validateYears(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("not a whole number")
	}
	if n < 1 {
		return fmt.Errorf("must be at least 1")
	}
	if n > model.MaxYears {
		return fmt.Errorf("must be at most %d", model.MaxYears)
	}
	return nil
}

func newInputForm(v *formValues, currency string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("KWSP Retirement Calculator").
				Description("Maximum starting monthly withdrawal that depletes\nyour savings over the period. Withdrawals rise\neach year with inflation."),
			huh.NewInput().
				Title(fmt.Sprintf("Initial Balance (%s)", currency)).
				Value(&v.balance).
				Validate(validatePositive),
			huh.NewInput().
				Title("Annual Dividend Rate (%)").
				Value(&v.dividend).
				Validate(validateNonNegative),
			huh.NewInput().
				Title("Annual Inflation Rate (%)").
				Value(&v.inflation).
				Validate(validateNonNegative),
			huh.NewInput().
				Title("Time Period (Years)").
				Value(&v.years).
				Validate(validateYears),
		),
	).WithShowHelp(true)
}
