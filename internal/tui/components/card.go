// Package components provides reusable widgets for the kwsp calculator view.
package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/kwsp/internal/tui/theme"
)

// Metric is one labelled figure in a card row.
type Metric struct {
	Label string
	Value string
	Hint  string
}

// LayoutRow distributes totalWidth into n widths that sum to exactly totalWidth.
// First items absorb the remainder from integer division.
func LayoutRow(totalWidth, n int) []int {
	if n <= 0 {
		return nil
	}
	base := totalWidth / n
	remainder := totalWidth % n
	widths := make([]int, n)
	for i := range widths {
		widths[i] = base
		if i < remainder {
			widths[i]++
		}
	}
	return widths
}

// MetricCard renders a bordered card with label, value and an optional hint.
// outerWidth is the total rendered width including border.
func MetricCard(m Metric, outerWidth int) string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Width(max(outerWidth-2, 10)).
		Padding(0, 1)

	content := lipgloss.NewStyle().Foreground(t.TextMuted).Render(m.Label) + "\n" +
		lipgloss.NewStyle().Foreground(t.Green).Bold(true).Render(m.Value)
	if m.Hint != "" {
		content += "\n" + lipgloss.NewStyle().Foreground(t.TextDim).Render(m.Hint)
	}

	return cardStyle.Render(content)
}

// MetricRow renders cards side by side, summing to exactly totalWidth.
func MetricRow(metrics []Metric, totalWidth int) string {
	if len(metrics) == 0 {
		return ""
	}

	widths := LayoutRow(totalWidth, len(metrics))
	rendered := make([]string, len(metrics))
	for i, m := range metrics {
		rendered[i] = MetricCard(m, widths[i])
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}
