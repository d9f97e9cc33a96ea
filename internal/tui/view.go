package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/kwsp/internal/cli"
	"github.com/theirongolddev/kwsp/internal/tui/components"
	"github.com/theirongolddev/kwsp/internal/tui/theme"
)

// View implements tea.Model.
func (a App) View() string {
	if a.width > 0 && a.width < minTerminalWidth {
		return fmt.Sprintf("\n  Terminal too small (%dx%d)\n  Need at least %d columns\n",
			a.width, a.height, minTerminalWidth)
	}

	switch a.state {
	case stateForm:
		return a.form.View()
	case stateSolving:
		return a.viewSolving()
	case stateError:
		return a.viewError()
	default:
		return a.viewResult()
	}
}

func (a App) viewSolving() string {
	t := theme.Active
	msg := lipgloss.NewStyle().Foreground(t.TextMuted).Render("Searching for the starting withdrawal...")
	body := fmt.Sprintf("\n  %s %s\n", a.spinner.View(), msg)
	if a.width == 0 || a.height == 0 {
		return body
	}
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, body)
}

func (a App) viewError() string {
	t := theme.Active
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(t.Red).Bold(true).Render("  Calculation failed"))
	b.WriteString("\n\n  ")
	b.WriteString(lipgloss.NewStyle().Foreground(t.TextPrimary).Render(a.err.Error()))
	b.WriteString("\n\n")
	b.WriteString(components.RenderStatusBar(a.contentWidth(), "[r] edit inputs  [q] quit", ""))
	return b.String()
}

func (a App) viewResult() string {
	if a.result == nil {
		return ""
	}
	t := theme.Active
	res := a.result
	w := a.contentWidth()
	if w == 0 {
		w = maxContentWidth
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(t.Accent).Bold(true).Render("  KWSP Retirement Calculator"))
	b.WriteString("\n")
	p := res.Params
	b.WriteString(lipgloss.NewStyle().Foreground(t.TextMuted).Render(fmt.Sprintf(
		"  %s over %s at %s dividend, %s inflation",
		cli.FormatCurrency(a.currency, p.InitialBalance), cli.FormatYears(p.Years),
		cli.FormatRate(p.DividendRate), cli.FormatRate(p.InflationRate))))
	b.WriteString("\n\n")

	b.WriteString(components.MetricRow([]components.Metric{
		{Label: "Starting Monthly", Value: cli.FormatCurrency(a.currency, res.StartWithdrawal), Hint: "year 1"},
		{Label: "Total Withdrawn", Value: cli.FormatCurrency(a.currency, res.TotalWithdrawals)},
		{Label: "Final Balance", Value: cli.FormatCurrency(a.currency, res.FinalBalance)},
	}, w))
	b.WriteString("\n")

	if !res.Converged {
		b.WriteString(lipgloss.NewStyle().Foreground(t.Orange).Render(
			fmt.Sprintf("  ! search did not converge after %d iterations; showing best estimate", res.Iterations)))
		b.WriteString("\n")
	}

	b.WriteString(a.schedule.View())
	b.WriteString("\n")

	note := fmt.Sprintf("%3.0f%%", a.schedule.ScrollPercent()*100)
	b.WriteString(components.RenderStatusBar(w, "[↑/↓] scroll  [r] recalculate  [q] quit", note))
	return b.String()
}

func (a App) renderSchedule() string {
	if a.result == nil {
		return ""
	}
	return cli.RenderTable(cli.ScheduleTable(a.result, a.currency))
}
