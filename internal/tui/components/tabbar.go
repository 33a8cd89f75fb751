package components

import (
	"strings"

	"github.com/theirongolddev/budgetbuddy/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Tab represents a single tab in the tab bar.
type Tab struct {
	Name   string
	Key    rune
	KeyPos int // position of the shortcut letter in the name (-1 if not in name)
}

// Tab indexes, in display order.
const (
	TabOverview = iota
	TabTransactions
	TabCategories
	TabAfford
	TabSettings
)

// Tabs defines all available tabs.
var Tabs = []Tab{
	{Name: "Overview", Key: 'o', KeyPos: 0},
	{Name: "Transactions", Key: 't', KeyPos: 0},
	{Name: "Categories", Key: 'c', KeyPos: 0},
	{Name: "Afford", Key: 'a', KeyPos: 0},
	{Name: "Settings", Key: 'x', KeyPos: -1},
}

func renderTab(tab Tab, active bool) string {
	t := theme.Active

	base := lipgloss.NewStyle().Background(t.Surface)
	if active {
		return base.
			Foreground(t.AccentBright).
			Background(t.SurfaceBright).
			Bold(true).
			Padding(0, 1).
			Render(tab.Name)
	}

	nameStyle := base.Foreground(t.TextMuted)
	keyStyle := base.Foreground(t.Accent).Bold(true).Underline(true)
	dimStyle := base.Foreground(t.TextDim)
	pad := base.Render(" ")

	if tab.KeyPos >= 0 && tab.KeyPos < len(tab.Name) {
		return pad +
			nameStyle.Render(tab.Name[:tab.KeyPos]) +
			keyStyle.Render(tab.Name[tab.KeyPos:tab.KeyPos+1]) +
			nameStyle.Render(tab.Name[tab.KeyPos+1:]) +
			pad
	}
	// Key not in name, e.g. "Settings" with 'x'.
	return pad +
		nameStyle.Render(tab.Name) +
		dimStyle.Render("[") + keyStyle.Render(string(tab.Key)) + dimStyle.Render("]") +
		pad
}

// TabVisualWidth returns the rendered width of tab, matching RenderTabBar.
func TabVisualWidth(tab Tab, active bool) int {
	return lipgloss.Width(renderTab(tab, active))
}

// RenderTabBar renders the single-row tab bar with the given active index.
// Tabs are separated by one column.
func RenderTabBar(activeIdx, width int) string {
	t := theme.Active
	sep := lipgloss.NewStyle().Foreground(t.Border).Background(t.Surface).Render("│")

	parts := make([]string, len(Tabs))
	for i, tab := range Tabs {
		parts[i] = renderTab(tab, i == activeIdx)
	}
	row := strings.Join(parts, sep)

	return lipgloss.NewStyle().
		Background(t.Surface).
		Width(width).
		MaxWidth(width).
		Render(row)
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}
