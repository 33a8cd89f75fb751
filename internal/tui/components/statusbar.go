package components

import (
	"strings"

	"github.com/theirongolddev/budgetbuddy/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Status is the transient message shown in the status bar.
type Status struct {
	Text  string
	IsErr bool
}

// RenderStatusBar renders the bottom status bar: key hints on the left and
// the latest status message or the store location on the right.
func RenderStatusBar(width int, hints string, status Status, storeLabel string) string {
	t := theme.Active

	base := lipgloss.NewStyle().Background(t.Surface)
	hintStyle := base.Foreground(t.TextMuted)
	rightStyle := base.Foreground(t.TextDim)

	right := storeLabel
	switch {
	case status.IsErr:
		rightStyle = base.Foreground(t.Expense).Bold(true)
		right = status.Text
	case status.Text != "":
		rightStyle = base.Foreground(t.Income)
		right = status.Text
	}

	left := hintStyle.Render(" " + hints)
	rendered := rightStyle.Render(right + " ")

	padding := width - lipgloss.Width(left) - lipgloss.Width(rendered)
	if padding < 1 {
		// Right side loses to the hints when space runs out.
		avail := width - lipgloss.Width(left) - 2
		if avail < 1 {
			return base.Width(width).MaxWidth(width).Render(left)
		}
		rendered = rightStyle.Render(ansi.Truncate(right, avail, "…") + " ")
		padding = width - lipgloss.Width(left) - lipgloss.Width(rendered)
		if padding < 0 {
			padding = 0
		}
	}

	return left + base.Render(strings.Repeat(" ", padding)) + rendered
}
