package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/theirongolddev/kwsp/internal/config"
	"github.com/theirongolddev/kwsp/internal/model"
	"github.com/theirongolddev/kwsp/internal/solver"
)

func defaultScenario() config.Scenario {
	return config.ScenarioFromDefaults(config.DefaultConfig().Defaults)
}

func TestFormValuesRoundTrip(t *testing.T) {
	sc := defaultScenario()
	got, err := valuesFromScenario(sc).scenario()
	if err != nil {
		t.Fatalf("scenario() error = %v", err)
	}
	if got.InitialBalance != sc.InitialBalance || got.Years != sc.Years ||
		got.DividendRatePercent != sc.DividendRatePercent ||
		got.InflationRatePercent != sc.InflationRatePercent {
		t.Fatalf("scenario() = %+v, want %+v", got, sc)
	}
}

func TestParseAmountAcceptsGrouping(t *testing.T) {
	got, err := parseAmount(" 1,300,000.50 ")
	if err != nil {
		t.Fatalf("parseAmount error = %v", err)
	}
	if got != 1300000.5 {
		t.Fatalf("parseAmount = %v, want 1300000.5", got)
	}
	if _, err := parseAmount("abc"); err == nil {
		t.Fatal("parseAmount(abc) should fail")
	}
}

func TestValidators(t *testing.T) {
	tests := []struct {
		name    string
		fn      func(string) error
		in      string
		wantErr bool
	}{
		{"positive ok", validatePositive, "100", false},
		{"positive zero", validatePositive, "0", true},
		{"non-negative zero", validateNonNegative, "0", false},
		{"non-negative negative", validateNonNegative, "-1", true},
		{"years ok", validateYears, "20", false},
		{"years zero", validateYears, "0", true},
		{"years fraction", validateYears, "2.5", true},
		{"years at max", validateYears, "100", false},
		{"years over max", validateYears, "101", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fn(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func solvedApp(t *testing.T) App {
	t.Helper()
	sc := defaultScenario()
	res, err := solver.Solve(sc.Params())
	if err != nil {
		t.Fatalf("Solve error = %v", err)
	}
	a := NewApp(sc, "RM", nil)
	m, _ := a.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m, _ = m.(App).Update(ResultMsg{Scenario: sc, Result: res})
	return m.(App)
}

func TestResultMsgShowsSummaryAndSchedule(t *testing.T) {
	a := solvedApp(t)
	if a.state != stateResult {
		t.Fatalf("state = %v, want stateResult", a.state)
	}
	view := a.View()
	for _, want := range []string{"Starting Monthly", "Total Withdrawn", "Final Balance", "Withdrawal Schedule"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestResultMsgErrorShowsMessage(t *testing.T) {
	a := NewApp(defaultScenario(), "RM", nil)
	err := &model.InvalidInputError{Field: "years", Value: 0, Reason: "must be greater than zero"}
	m, _ := a.Update(ResultMsg{Scenario: defaultScenario(), Err: err})
	got := m.(App)
	if got.state != stateError {
		t.Fatalf("state = %v, want stateError", got.state)
	}
	if !errors.Is(got.err, model.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", got.err)
	}
	if !strings.Contains(got.View(), "Calculation failed") {
		t.Fatal("error view missing heading")
	}
}

func TestRecalculateReturnsToForm(t *testing.T) {
	a := solvedApp(t)
	m, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	got := m.(App)
	if got.state != stateForm {
		t.Fatalf("state = %v, want stateForm", got.state)
	}
	if cmd == nil {
		t.Fatal("expected form init command")
	}
	if got.values.years != "20" {
		t.Fatalf("years = %q, want 20 carried over", got.values.years)
	}
}

func TestQuitFromResult(t *testing.T) {
	a := solvedApp(t)
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
}

func TestCalculateCommandSolves(t *testing.T) {
	a := NewApp(defaultScenario(), "RM", nil)
	msg := a.calculate(defaultScenario())()
	rm, ok := msg.(ResultMsg)
	if !ok {
		t.Fatalf("msg = %T, want ResultMsg", msg)
	}
	if rm.Err != nil || rm.Result == nil || rm.Result.StartWithdrawal <= 0 {
		t.Fatalf("ResultMsg = %+v", rm)
	}
}

func TestTooSmallTerminal(t *testing.T) {
	a := NewApp(defaultScenario(), "RM", nil)
	m, _ := a.Update(tea.WindowSizeMsg{Width: 40, Height: 20})
	if !strings.Contains(m.(App).View(), "Terminal too small") {
		t.Fatal("expected too-small message")
	}
}
