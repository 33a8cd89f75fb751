package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/budgetbuddy/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders a unicode sparkline scaled between the lowest and highest
// value, so negative series render too. When there are more values than
// width, the series is sampled down to width points.
func Sparkline(values []float64, color lipgloss.Color, width int) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	if width > 0 && len(values) > width {
		values = sample(values, width)
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	span := hi - lo

	var buf strings.Builder
	buf.Grow(len(values) * 3)
	for _, v := range values {
		idx := len(sparkBlocks) / 2
		if span > 0 {
			idx = int((v - lo) / span * float64(len(sparkBlocks)-1))
		}
		idx = max(0, min(idx, len(sparkBlocks)-1))
		buf.WriteRune(sparkBlocks[idx])
	}

	return lipgloss.NewStyle().Foreground(color).Background(t.Surface).Render(buf.String())
}

// sample picks n evenly spaced values, always keeping the first and last.
func sample(values []float64, n int) []float64 {
	if n <= 1 {
		return values[len(values)-1:]
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = values[i*(len(values)-1)/(n-1)]
	}
	return out
}

// Bar is one row of an HBarChart.
type Bar struct {
	Label string
	Value float64
	Text  string // rendered after the bar, e.g. a formatted amount
	Color lipgloss.Color
}

// HBarChart renders one horizontal bar per row, scaled to the largest
// magnitude. Bars for negative values use a lighter fill.
func HBarChart(bars []Bar, width int) string {
	if len(bars) == 0 {
		return ""
	}
	t := theme.Active

	labelW, textW := 0, 0
	peak := 0.0
	for _, b := range bars {
		labelW = max(labelW, lipgloss.Width(b.Label))
		textW = max(textW, lipgloss.Width(b.Text))
		peak = math.Max(peak, math.Abs(b.Value))
	}

	barW := width - labelW - textW - 2
	if barW < 4 {
		barW = 4
	}

	base := lipgloss.NewStyle().Background(t.Surface)
	labelStyle := base.Foreground(t.TextMuted)
	textStyle := base.Foreground(t.TextPrimary)
	trackStyle := base.Foreground(t.TextDim)

	lines := make([]string, len(bars))
	for i, b := range bars {
		filled := 0
		if peak > 0 {
			filled = int(math.Round(math.Abs(b.Value) / peak * float64(barW)))
		}
		if filled == 0 && b.Value != 0 {
			filled = 1
		}
		glyph := "█"
		if b.Value < 0 {
			glyph = "▒"
		}

		lines[i] = labelStyle.Render(fmt.Sprintf("%-*s", labelW, b.Label)) +
			base.Render(" ") +
			base.Foreground(b.Color).Render(strings.Repeat(glyph, filled)) +
			trackStyle.Render(strings.Repeat("·", barW-filled)) +
			base.Render(" ") +
			textStyle.Render(fmt.Sprintf("%*s", textW, b.Text))
	}
	return strings.Join(lines, "\n")
}
