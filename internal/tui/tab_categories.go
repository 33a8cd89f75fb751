package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/budgetbuddy/internal/cli"
	"github.com/theirongolddev/budgetbuddy/internal/model"
	"github.com/theirongolddev/budgetbuddy/internal/pipeline"
	"github.com/theirongolddev/budgetbuddy/internal/tui/components"
	"github.com/theirongolddev/budgetbuddy/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

const maxDateRows = 10

func (a App) renderCategoriesTab(cw int) string {
	t := theme.Active
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	if len(a.totals) == 0 {
		return components.ContentCard("Categories", mutedStyle.Render("No transactions to aggregate yet."), cw)
	}

	innerW := components.CardInnerWidth(cw)
	labelW := 0
	for _, c := range model.Categories {
		labelW = max(labelW, len(c))
	}

	// Share of spending per category, every category listed.
	var shares strings.Builder
	barW := max(innerW-labelW-30, 10)
	for i, c := range model.Categories {
		total, ok := a.totals.Lookup(c)
		pct := 0.0
		count := 0
		if ok {
			for j, ct := range a.totals {
				if ct.Category == c {
					pct = a.totals.Share(j)
					count = ct.Count
				}
			}
		}
		shares.WriteString(components.ShareBar(string(c), pct, t.CategoryColor(c), labelW, barW))
		shares.WriteString(valueStyle.Render(fmt.Sprintf("  %12s", cli.FormatMoney(total))))
		shares.WriteString(mutedStyle.Render(fmt.Sprintf("  %3d tx", count)))
		if i < len(model.Categories)-1 {
			shares.WriteString("\n")
		}
	}
	shares.WriteString("\n")
	shares.WriteString(mutedStyle.Render(fmt.Sprintf("%-*s", labelW, "Total")))
	shares.WriteString(valueStyle.Bold(true).Render(fmt.Sprintf(" %s", cli.FormatMoney(a.totals.Sum()))))

	// Spending per date, newest first.
	var byDate strings.Builder
	byDate.WriteString(headerStyle.Render(fmt.Sprintf("%-12s %14s %6s", "Date", "Total", "Count")))
	dates := pipeline.AggregateDates(a.state.Transactions)
	for i, d := range dates {
		if i == maxDateRows {
			byDate.WriteString("\n")
			byDate.WriteString(mutedStyle.Render(fmt.Sprintf("… %d more dates", len(dates)-maxDateRows)))
			break
		}
		byDate.WriteString("\n")
		byDate.WriteString(valueStyle.Render(fmt.Sprintf("%-12s %14s %6d",
			truncStr(d.Date, 12), cli.FormatMoney(d.Total), d.Count)))
	}

	var b strings.Builder
	b.WriteString(components.ContentCard("Spending by Category", shares.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("Spending by Date", byDate.String(), cw))
	return b.String()
}
