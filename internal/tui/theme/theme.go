// Package theme defines the colour themes shared by the kwsp table output
// and the interactive calculator.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the colour roles used by kwsp.
type Theme struct {
	Name        string
	Border      lipgloss.Color // table and panel borders
	TextDim     lipgloss.Color // hints, rules
	TextMuted   lipgloss.Color // labels
	TextPrimary lipgloss.Color // values
	Accent      lipgloss.Color // headers, focus
	Green       lipgloss.Color // money
	Orange      lipgloss.Color // warnings
	Red         lipgloss.Color // errors, negative balances
}

// Active is the currently selected theme.
var Active = FlexokiDark

// FlexokiDark is the default theme.
var FlexokiDark = Theme{
	Name:        "flexoki-dark",
	Border:      lipgloss.Color("#403E3C"),
	TextDim:     lipgloss.Color("#575653"),
	TextMuted:   lipgloss.Color("#878580"),
	TextPrimary: lipgloss.Color("#FFFCF0"),
	Accent:      lipgloss.Color("#3AA99F"),
	Green:       lipgloss.Color("#879A39"),
	Orange:      lipgloss.Color("#DA702C"),
	Red:         lipgloss.Color("#D14D41"),
}

// CatppuccinMocha is a soft pastel theme.
var CatppuccinMocha = Theme{
	Name:        "catppuccin-mocha",
	Border:      lipgloss.Color("#585B70"),
	TextDim:     lipgloss.Color("#6C7086"),
	TextMuted:   lipgloss.Color("#A6ADC8"),
	TextPrimary: lipgloss.Color("#CDD6F4"),
	Accent:      lipgloss.Color("#89B4FA"),
	Green:       lipgloss.Color("#A6E3A1"),
	Orange:      lipgloss.Color("#FAB387"),
	Red:         lipgloss.Color("#F38BA8"),
}

// Paper is a light theme for bright terminals and printed screenshots.
var Paper = Theme{
	Name:        "paper",
	Border:      lipgloss.Color("#B7B5AC"),
	TextDim:     lipgloss.Color("#9F9D96"),
	TextMuted:   lipgloss.Color("#6F6E69"),
	TextPrimary: lipgloss.Color("#100F0F"),
	Accent:      lipgloss.Color("#24837B"),
	Green:       lipgloss.Color("#66800B"),
	Orange:      lipgloss.Color("#BC5215"),
	Red:         lipgloss.Color("#AF3029"),
}

// Terminal uses ANSI 16 colours only.
var Terminal = Theme{
	Name:        "terminal",
	Border:      lipgloss.Color("8"),
	TextDim:     lipgloss.Color("8"),
	TextMuted:   lipgloss.Color("7"),
	TextPrimary: lipgloss.Color("15"),
	Accent:      lipgloss.Color("6"),
	Green:       lipgloss.Color("2"),
	Orange:      lipgloss.Color("3"),
	Red:         lipgloss.Color("1"),
}

// All available themes.
var All = []Theme{FlexokiDark, CatppuccinMocha, Paper, Terminal}

// ByName returns a theme by its name, defaulting to FlexokiDark.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return FlexokiDark
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}

// Names lists the theme names in display order.
func Names() []string {
	names := make([]string, len(All))
	for i, t := range All {
		names[i] = t.Name
	}
	return names
}
