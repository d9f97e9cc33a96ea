package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/kwsp/internal/tui/theme"
)

// SeparatorRow marks a horizontal rule inside Table.Rows.
const SeparatorRow = "---"

// Table represents a bordered text table for CLI output.
// The first column is left-aligned, the rest right-aligned.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Widths  []int // optional column widths, auto-calculated if nil
}

type styles struct {
	title  lipgloss.Style
	header lipgloss.Style
	value  lipgloss.Style
	label  lipgloss.Style
	money  lipgloss.Style
	warn   lipgloss.Style
	dim    lipgloss.Style
}

func currentStyles() styles {
	t := theme.Active
	return styles{
		title:  lipgloss.NewStyle().Bold(true).Foreground(t.TextPrimary).Align(lipgloss.Center),
		header: lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		value:  lipgloss.NewStyle().Foreground(t.TextPrimary),
		label:  lipgloss.NewStyle().Foreground(t.TextMuted),
		money:  lipgloss.NewStyle().Foreground(t.Green),
		warn:   lipgloss.NewStyle().Foreground(t.Orange),
		dim:    lipgloss.NewStyle().Foreground(t.TextDim),
	}
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	st := currentStyles()
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Active.Border).
		Width(55).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(st.title.Render(title))
}

// RenderWarning renders a one-line warning.
func RenderWarning(msg string) string {
	return currentStyles().warn.Render("  ! " + msg)
}

// RenderHighlight renders a label with an emphasised amount, used for the
// headline answer.
func RenderHighlight(label, value string) string {
	st := currentStyles()
	return "  " + st.label.Render(label+": ") + st.money.Bold(true).Render(value)
}

// RenderTable renders a bordered table with headers and rows.
func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}
	st := currentStyles()

	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}
	widths := columnWidths(t, numCols)

	var b strings.Builder

	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(st.header.Render(t.Title))
		b.WriteString("\n")
	}

	rule := func(left, mid, right string) {
		b.WriteString(st.dim.Render(left))
		for i, w := range widths {
			b.WriteString(st.dim.Render(strings.Repeat("─", w+2)))
			if i < numCols-1 {
				b.WriteString(st.dim.Render(mid))
			}
		}
		b.WriteString(st.dim.Render(right))
		b.WriteString("\n")
	}

	rule("╭", "┬", "╮")

	if len(t.Headers) > 0 {
		b.WriteString(st.dim.Render("│"))
		for i, h := range t.Headers {
			b.WriteString(st.header.Render(pad(h, widths[i], i == 0)))
			if i < numCols-1 {
				b.WriteString(st.dim.Render("│"))
			}
		}
		b.WriteString(st.dim.Render("│"))
		b.WriteString("\n")
		rule("├", "┼", "┤")
	}

	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == SeparatorRow {
			rule("├", "┼", "┤")
			continue
		}

		b.WriteString(st.dim.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			b.WriteString(st.value.Render(pad(cell, widths[i], i == 0)))
			if i < numCols-1 {
				b.WriteString(st.dim.Render("│"))
			}
		}
		b.WriteString(st.dim.Render("│"))
		b.WriteString("\n")
	}

	rule("╰", "┴", "╯")

	return b.String()
}

func columnWidths(t Table, numCols int) []int {
	widths := make([]int, numCols)
	if t.Widths != nil {
		copy(widths, t.Widths)
		return widths
	}
	for i, h := range t.Headers {
		widths[i] = max(widths[i], lipgloss.Width(h))
	}
	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == SeparatorRow {
			continue
		}
		for i, cell := range row {
			if i < numCols {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}
	return widths
}

// pad measures visible width so styled cells line up.
func pad(s string, w int, left bool) string {
	gap := strings.Repeat(" ", max(w-lipgloss.Width(s), 0))
	if left {
		return " " + s + gap + " "
	}
	return " " + gap + s + " "
}

// RenderSparkline generates a unicode block sparkline from a series of values.
// Negative values are drawn at the floor.
func RenderSparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	top := values[0]
	for _, v := range values[1:] {
		top = max(top, v)
	}
	if top <= 0 {
		top = 1
	}

	var b strings.Builder
	for _, v := range values {
		idx := int(v / top * float64(len(blocks)-1))
		idx = min(max(idx, 0), len(blocks)-1)
		b.WriteRune(blocks[idx])
	}

	return b.String()
}

// RenderHorizontalBar renders a bar scaled against maxValue.
func RenderHorizontalBar(value, maxValue float64, maxWidth int) string {
	if maxValue <= 0 {
		return ""
	}
	barLen := int(value / maxValue * float64(maxWidth))
	barLen = min(max(barLen, 0), maxWidth)
	return currentStyles().money.Render(strings.Repeat("█", barLen))
}
