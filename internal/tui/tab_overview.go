package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/budgetbuddy/internal/cli"
	"github.com/theirongolddev/budgetbuddy/internal/ledger"
	"github.com/theirongolddev/budgetbuddy/internal/pipeline"
	"github.com/theirongolddev/budgetbuddy/internal/tui/components"
	"github.com/theirongolddev/budgetbuddy/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

const recentTransactions = 6

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	state := a.state
	var b strings.Builder

	// Row 1: metric cards
	top := "none yet"
	if len(a.totals) > 0 {
		top = string(a.totals[0].Category)
	}
	remaining := state.Balance.Sub(a.spent)

	metrics := []components.Metric{
		{Label: "Balance", Value: cli.FormatMoney(state.Balance), Color: t.AmountColor(state.Balance.IsNegative())},
		{Label: "Total Spent", Value: cli.FormatMoney(a.spent), Note: fmt.Sprintf("%s transactions", cli.FormatNumber(int64(len(state.Transactions))))},
		{Label: "Remaining Budget", Value: cli.FormatMoney(remaining), Color: t.AmountColor(remaining.IsNegative()), Note: "balance minus spent"},
		{Label: "Top Category", Value: top},
	}
	if a.isCompactLayout() {
		metrics = metrics[:3]
	}
	b.WriteString(components.MetricCardRow(metrics, cw))
	b.WriteString("\n")

	if err := ledger.Verify(state); err != nil {
		warn := lipgloss.NewStyle().Foreground(t.Warning).Background(t.Background)
		b.WriteString(warn.Render(" ⚠ " + err.Error()))
		b.WriteString("\n")
	}

	// Row 2: balance trend + category split
	halves := components.LayoutRow(cw, 2)
	if a.isCompactLayout() {
		halves = []int{cw, cw}
	}

	history := pipeline.BalanceHistory(state)
	points := make([]float64, len(history))
	for i, v := range history {
		points[i] = v.InexactFloat64()
	}
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	trend := mutedStyle.Render("No history yet")
	if len(points) > 1 {
		trend = components.Sparkline(points, t.Accent, components.CardInnerWidth(halves[0])) + "\n" +
			mutedStyle.Render(fmt.Sprintf("%s → %s", cli.FormatMoney(history[0]), cli.FormatMoney(history[len(history)-1])))
	}
	trendCard := components.ContentCard("Balance Trend", trend, halves[0])

	catBody := mutedStyle.Render("No spending yet")
	if len(a.totals) > 0 {
		bars := make([]components.Bar, len(a.totals))
		for i, ct := range a.totals {
			bars[i] = components.Bar{
				Label: string(ct.Category),
				Value: ct.Total.InexactFloat64(),
				Text:  cli.FormatMoney(ct.Total),
				Color: t.CategoryColor(ct.Category),
			}
		}
		catBody = components.HBarChart(bars, components.CardInnerWidth(halves[1]))
	}
	catCard := components.ContentCard("By Category", catBody, halves[1])

	if a.isCompactLayout() {
		b.WriteString(trendCard)
		b.WriteString("\n")
		b.WriteString(catCard)
	} else {
		b.WriteString(components.CardRow([]string{trendCard, catCard}))
	}
	b.WriteString("\n")

	// Row 3: most recent transactions
	b.WriteString(components.ContentCard("Recent", a.renderRecent(cw), cw))
	return b.String()
}

func (a App) renderRecent(cw int) string {
	t := theme.Active
	txs := a.state.Transactions

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	if len(txs) == 0 {
		return mutedStyle.Render("No transactions yet. Press [n] to add one.")
	}

	innerW := components.CardInnerWidth(cw)
	nameW := max(innerW-10-13-12-3, 8)
	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	var lines []string
	for i := len(txs) - 1; i >= 0 && len(lines) < recentTransactions; i-- {
		tx := txs[i]
		amount := lipgloss.NewStyle().
			Foreground(t.AmountColor(tx.Amount.IsNegative())).
			Background(t.Surface).
			Render(fmt.Sprintf("%12s", cli.FormatMoney(tx.Amount)))
		lines = append(lines,
			mutedStyle.Render(fmt.Sprintf("%-10s ", truncStr(tx.Date, 10)))+
				nameStyle.Render(fmt.Sprintf("%-*s ", nameW, truncStr(tx.Name, nameW)))+
				lipgloss.NewStyle().Foreground(t.CategoryColor(tx.Category)).Background(t.Surface).
					Render(fmt.Sprintf("%-13s ", truncStr(string(tx.Category), 13)))+
				amount)
	}
	return strings.Join(lines, "\n")
}
