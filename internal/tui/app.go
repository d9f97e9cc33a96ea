// Package tui provides the interactive Bubble Tea calculator for kwsp.
package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/kwsp/internal/config"
	"github.com/theirongolddev/kwsp/internal/log"
	"github.com/theirongolddev/kwsp/internal/model"
	"github.com/theirongolddev/kwsp/internal/solver"
)

type state int

const (
	stateForm state = iota
	stateSolving
	stateResult
	stateError
)

// ResultMsg is sent when a calculation finishes.
type ResultMsg struct {
	Scenario config.Scenario
	Result   *model.SolverResult
	Err      error
}

// App is the root Bubble Tea model.
type App struct {
	state    state
	currency string
	logger   *log.Logger

	form   *huh.Form
	values *formValues

	spinner  spinner.Model
	schedule viewport.Model

	scenario config.Scenario
	result   *model.SolverResult
	err      error

	width  int
	height int
}

const (
	minTerminalWidth = 60
	maxContentWidth  = 100
	summaryHeight    = 14 // title, cards, notes and status bar above/below the schedule
)

// NewApp returns an App whose form is pre-filled with sc.
func NewApp(sc config.Scenario, currency string, logger *log.Logger) App {
	if logger == nil {
		logger = log.Nop()
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	values := valuesFromScenario(sc)
	return App{
		state:    stateForm,
		currency: currency,
		logger:   logger.WithComponent(log.ComponentTUI),
		values:   &values,
		form:     newInputForm(&values, currency),
		spinner:  sp,
		schedule: viewport.New(0, 0),
		scenario: sc,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return a.form.Init()
}

func (a App) calculate(sc config.Scenario) tea.Cmd {
	logger := a.logger
	return func() tea.Msg {
		res, err := solver.Solve(sc.Params(), solver.WithLogger(logger))
		return ResultMsg{Scenario: sc, Result: res, Err: err}
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resizeSchedule()
		if a.state == stateForm {
			return a.updateForm(msg)
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.state == stateResult || a.state == stateError {
			return a.updateResultKeys(msg)
		}

	case ResultMsg:
		return a.applyResult(msg), nil

	case spinner.TickMsg:
		if a.state != stateSolving {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	if a.state == stateForm {
		return a.updateForm(msg)
	}
	return a, nil
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateAborted:
		return a, tea.Quit
	case huh.StateCompleted:
		sc, err := a.values.scenario()
		if err != nil {
			a.state = stateError
			a.err = err
			return a, nil
		}
		a.scenario = sc
		a.state = stateSolving
		return a, tea.Batch(a.spinner.Tick, a.calculate(sc))
	}
	return a, cmd
}

func (a App) updateResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return a, tea.Quit
	case "r", "enter":
		return a.restartForm()
	}
	var cmd tea.Cmd
	a.schedule, cmd = a.schedule.Update(msg)
	return a, cmd
}

// restartForm reopens the form with the last inputs.
func (a App) restartForm() (tea.Model, tea.Cmd) {
	values := valuesFromScenario(a.scenario)
	a.values = &values
	a.form = newInputForm(a.values, a.currency)
	a.state = stateForm
	a.err = nil
	return a, a.form.Init()
}

func (a App) applyResult(msg ResultMsg) App {
	a.scenario = msg.Scenario
	if msg.Err != nil {
		a.state = stateError
		a.err = msg.Err
		a.result = nil
		return a
	}
	a.state = stateResult
	a.result = msg.Result
	a.err = nil
	a.schedule.SetContent(a.renderSchedule())
	a.schedule.GotoTop()
	a.resizeSchedule()
	return a
}

func (a *App) resizeSchedule() {
	a.schedule.Width = a.contentWidth()
	a.schedule.Height = max(a.height-summaryHeight, 3)
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}
