package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/theirongolddev/kwsp/internal/tui/theme"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestLayoutRowSumsToTotal(t *testing.T) {
	widths := LayoutRow(101, 4)
	sum := 0
	for _, w := range widths {
		sum += w
	}
	if sum != 101 {
		t.Fatalf("sum = %d, want 101", sum)
	}
	if widths[0] != 26 || widths[3] != 25 {
		t.Fatalf("widths = %v, want remainder on the first cards", widths)
	}
	if LayoutRow(10, 0) != nil {
		t.Fatal("LayoutRow with n=0 should be nil")
	}
}

func TestMetricRowWidthAndHeight(t *testing.T) {
	theme.SetActive("flexoki-dark")

	row := MetricRow([]Metric{
		{Label: "Start", Value: "RM 6,000.00"},
		{Label: "Final", Value: "RM 12.34", Hint: "converged"},
	}, 60)

	lines := strings.Split(row, "\n")
	// Border, label, value, hint, border: the taller card sets the height.
	if len(lines) != 5 {
		t.Fatalf("row height = %d, want 5", len(lines))
	}
	for i, l := range lines {
		if w := lipgloss.Width(l); w != 60 {
			t.Fatalf("line %d width = %d, want 60", i, w)
		}
	}
}

func TestRenderStatusBarWidth(t *testing.T) {
	bar := RenderStatusBar(40, "[r]ecalculate  [q]uit", "20 years")
	if w := lipgloss.Width(bar); w != 40 {
		t.Fatalf("status bar width = %d, want 40", w)
	}
	if !strings.Contains(bar, "20 years") {
		t.Fatalf("status bar %q missing note", bar)
	}
}
