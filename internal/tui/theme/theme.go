// Package theme defines color themes for the budgetbuddy TUI.
package theme

import (
	"github.com/theirongolddev/budgetbuddy/internal/model"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color roles used throughout the TUI.
type Theme struct {
	Name          string
	Background    lipgloss.Color // Main app background
	Surface       lipgloss.Color // Card/panel backgrounds
	SurfaceBright lipgloss.Color // Selected row
	Border        lipgloss.Color
	BorderAccent  lipgloss.Color // Overlays and focused cards
	TextDim       lipgloss.Color // Hints, axes
	TextMuted     lipgloss.Color // Labels
	TextPrimary   lipgloss.Color
	Accent        lipgloss.Color
	AccentBright  lipgloss.Color

	Income  lipgloss.Color // Positive amounts, affordable verdicts
	Expense lipgloss.Color // Negative amounts, overspent verdicts
	Warning lipgloss.Color

	// Per-category series colors, in model.Categories order.
	Food          lipgloss.Color
	Transport     lipgloss.Color
	Entertainment lipgloss.Color
	Other         lipgloss.Color
}

// Active is the currently selected theme.
var Active = FlexokiDark

// FlexokiDark is the default theme, a warm paper-inspired dark palette.
var FlexokiDark = Theme{
	Name:          "flexoki-dark",
	Background:    lipgloss.Color("#100F0F"),
	Surface:       lipgloss.Color("#1C1B1A"),
	SurfaceBright: lipgloss.Color("#343331"),
	Border:        lipgloss.Color("#403E3C"),
	BorderAccent:  lipgloss.Color("#3AA99F"),
	TextDim:       lipgloss.Color("#575653"),
	TextMuted:     lipgloss.Color("#878580"),
	TextPrimary:   lipgloss.Color("#FFFCF0"),
	Accent:        lipgloss.Color("#3AA99F"),
	AccentBright:  lipgloss.Color("#5BC8BE"),
	Income:        lipgloss.Color("#879A39"),
	Expense:       lipgloss.Color("#D14D41"),
	Warning:       lipgloss.Color("#DA702C"),
	Food:          lipgloss.Color("#D0A215"),
	Transport:     lipgloss.Color("#4385BE"),
	Entertainment: lipgloss.Color("#CE5D97"),
	Other:         lipgloss.Color("#24837B"),
}

// CatppuccinMocha is a soft pastel theme.
var CatppuccinMocha = Theme{
	Name:          "catppuccin-mocha",
	Background:    lipgloss.Color("#1E1E2E"),
	Surface:       lipgloss.Color("#313244"),
	SurfaceBright: lipgloss.Color("#585B70"),
	Border:        lipgloss.Color("#585B70"),
	BorderAccent:  lipgloss.Color("#89B4FA"),
	TextDim:       lipgloss.Color("#6C7086"),
	TextMuted:     lipgloss.Color("#A6ADC8"),
	TextPrimary:   lipgloss.Color("#CDD6F4"),
	Accent:        lipgloss.Color("#89B4FA"),
	AccentBright:  lipgloss.Color("#B4D0FB"),
	Income:        lipgloss.Color("#A6E3A1"),
	Expense:       lipgloss.Color("#F38BA8"),
	Warning:       lipgloss.Color("#FAB387"),
	Food:          lipgloss.Color("#F9E2AF"),
	Transport:     lipgloss.Color("#89B4FA"),
	Entertainment: lipgloss.Color("#F5C2E7"),
	Other:         lipgloss.Color("#94E2D5"),
}

// TokyoNight is a cool blue and purple theme.
var TokyoNight = Theme{
	Name:          "tokyo-night",
	Background:    lipgloss.Color("#1A1B26"),
	Surface:       lipgloss.Color("#24283B"),
	SurfaceBright: lipgloss.Color("#414868"),
	Border:        lipgloss.Color("#565F89"),
	BorderAccent:  lipgloss.Color("#7AA2F7"),
	TextDim:       lipgloss.Color("#565F89"),
	TextMuted:     lipgloss.Color("#A9B1D6"),
	TextPrimary:   lipgloss.Color("#C0CAF5"),
	Accent:        lipgloss.Color("#7AA2F7"),
	AccentBright:  lipgloss.Color("#A9C1FF"),
	Income:        lipgloss.Color("#9ECE6A"),
	Expense:       lipgloss.Color("#F7768E"),
	Warning:       lipgloss.Color("#FF9E64"),
	Food:          lipgloss.Color("#E0AF68"),
	Transport:     lipgloss.Color("#7AA2F7"),
	Entertainment: lipgloss.Color("#BB9AF7"),
	Other:         lipgloss.Color("#7DCFFF"),
}

// Terminal uses ANSI 16 colors only.
var Terminal = Theme{
	Name:          "terminal",
	Background:    lipgloss.Color("0"),
	Surface:       lipgloss.Color("0"),
	SurfaceBright: lipgloss.Color("8"),
	Border:        lipgloss.Color("8"),
	BorderAccent:  lipgloss.Color("6"),
	TextDim:       lipgloss.Color("8"),
	TextMuted:     lipgloss.Color("7"),
	TextPrimary:   lipgloss.Color("15"),
	Accent:        lipgloss.Color("6"),
	AccentBright:  lipgloss.Color("14"),
	Income:        lipgloss.Color("2"),
	Expense:       lipgloss.Color("1"),
	Warning:       lipgloss.Color("3"),
	Food:          lipgloss.Color("3"),
	Transport:     lipgloss.Color("4"),
	Entertainment: lipgloss.Color("5"),
	Other:         lipgloss.Color("6"),
}

// All available themes.
var All = []Theme{FlexokiDark, CatppuccinMocha, TokyoNight, Terminal}

// Names returns the names of all themes in display order.
func Names() []string {
	names := make([]string, len(All))
	for i, t := range All {
		names[i] = t.Name
	}
	return names
}

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

// CategoryColor returns the series color for c.
func (t Theme) CategoryColor(c model.Category) lipgloss.Color {
	switch c {
	case model.CategoryFoodDrink:
		return t.Food
	case model.CategoryTransport:
		return t.Transport
	case model.CategoryEntertainment:
		return t.Entertainment
	default:
		return t.Other
	}
}

// AmountColor returns Income for non-negative amounts and Expense otherwise.
func (t Theme) AmountColor(negative bool) lipgloss.Color {
	if negative {
		return t.Expense
	}
	return t.Income
}
