package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/budgetbuddy/internal/cli"
	"github.com/theirongolddev/budgetbuddy/internal/model"
	"github.com/theirongolddev/budgetbuddy/internal/pipeline"
	"github.com/theirongolddev/budgetbuddy/internal/tui/components"
	"github.com/theirongolddev/budgetbuddy/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	affordFieldPlanned = iota
	affordFieldDays
	affordFieldCount
)

// affordState holds the projection inputs. Both fields keep their text
// between edits; the verdict is recomputed on every render.
type affordState struct {
	cursor  int
	editing bool
	planned textinput.Model
	days    textinput.Model
}

func newAffordState() affordState {
	planned := textinput.New()
	planned.Placeholder = "e.g. 149.99"
	planned.CharLimit = 20
	planned.Width = 20

	days := textinput.New()
	days.Placeholder = "1-31"
	days.CharLimit = 2
	days.Width = 4

	return affordState{planned: planned, days: days}
}

func (s *affordState) field(i int) *textinput.Model {
	if i == affordFieldDays {
		return &s.days
	}
	return &s.planned
}

// verdict projects the current inputs against the ledger. ok is false when
// the inputs don't describe a valid projection.
func (a App) verdict() (model.Verdict, bool) {
	planned := pipeline.ParsePlanned(a.afford.planned.Value())
	days, err := strconv.Atoi(strings.TrimSpace(a.afford.days.Value()))
	if err != nil {
		return model.Verdict{}, false
	}
	return pipeline.Project(a.state.Balance, a.state.Transactions, planned, days)
}

func (a App) updateAffordKey(key string) (App, tea.Cmd, bool) {
	switch key {
	case "j", "down":
		if a.afford.cursor < affordFieldCount-1 {
			a.afford.cursor++
		}
		return a, nil, true
	case "k", "up":
		if a.afford.cursor > 0 {
			a.afford.cursor--
		}
		return a, nil, true
	case "enter":
		a.afford.editing = true
		f := a.afford.field(a.afford.cursor)
		f.CursorEnd()
		f.Focus()
		return a, f.Cursor.BlinkCmd(), true
	}
	return a, nil, false
}

func (a App) updateAffordInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := a.afford.field(a.afford.cursor)
	switch msg.String() {
	case "enter", "esc", "tab":
		f.Blur()
		a.afford.editing = false
		if msg.String() == "tab" {
			a.afford.cursor = (a.afford.cursor + 1) % affordFieldCount
		}
		return a, nil
	}

	var cmd tea.Cmd
	*f, cmd = f.Update(msg)
	return a, cmd
}

func (a App) renderAffordTab(cw int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	fields := []struct {
		label string
		input textinput.Model
	}{
		{"Planned purchase", a.afford.planned},
		{"Days remaining", a.afford.days},
	}

	var form strings.Builder
	for i, f := range fields {
		if i == a.afford.cursor {
			form.WriteString(markerStyle.Render("▸ "))
			form.WriteString(selectedLabelStyle.Render(fmt.Sprintf("%-18s ", f.label+":")))
		} else {
			form.WriteString(labelStyle.Render("  "))
			form.WriteString(labelStyle.Render(fmt.Sprintf("%-18s ", f.label+":")))
		}
		if a.afford.editing && i == a.afford.cursor {
			form.WriteString(f.input.View())
		} else {
			val := f.input.Value()
			if val == "" {
				val = "(not set)"
			}
			form.WriteString(valueStyle.Render(val))
		}
		form.WriteString("\n")
	}
	form.WriteString("\n")
	form.WriteString(dimStyle.Render("[j/k] select  [Enter] edit  [Tab] next field"))

	var b strings.Builder
	b.WriteString(components.ContentCard("Can I Afford It?", form.String(), cw))
	b.WriteString("\n")
	b.WriteString(a.renderVerdict(cw))
	return b.String()
}

func (a App) renderVerdict(cw int) string {
	t := theme.Active
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	v, ok := a.verdict()
	if !ok {
		hint := fmt.Sprintf("Enter a planned purchase and between 1 and %d days to see a projection.",
			pipeline.MaxDaysRemaining)
		return components.ContentCard("Projection", mutedStyle.Render(hint), cw)
	}

	headline := lipgloss.NewStyle().Background(t.Surface).Bold(true)
	var body strings.Builder
	if v.CanAfford {
		body.WriteString(headline.Foreground(t.Income).Render(
			fmt.Sprintf("✓ You can afford %s", cli.FormatMoney(v.PlannedPurchase))))
	} else {
		body.WriteString(headline.Foreground(t.Expense).Render(
			fmt.Sprintf("✗ %s would put you %s over budget",
				cli.FormatMoney(v.PlannedPurchase), cli.FormatMoney(v.AfterPurchaseBudget.Abs()))))
	}
	body.WriteString("\n\n")

	metrics := []components.Metric{
		{Label: "Total Spent", Value: cli.FormatMoney(v.TotalSpent)},
		{Label: "Remaining", Value: cli.FormatMoney(v.RemainingBudget), Color: t.AmountColor(v.RemainingBudget.IsNegative())},
		{Label: "After Purchase", Value: cli.FormatMoney(v.AfterPurchaseBudget), Color: t.AmountColor(v.AfterPurchaseBudget.IsNegative())},
		{Label: "Per Day", Value: cli.FormatMoney(v.DailyBudget), Note: cli.FormatDays(v.DaysRemaining), Color: t.AmountColor(v.DailyBudget.IsNegative())},
	}
	body.WriteString(components.MetricCardRow(metrics, components.CardInnerWidth(cw)))
	body.WriteString("\n")

	if a.state.Balance.IsPositive() {
		used := v.PlannedPurchase.Div(a.state.Balance).InexactFloat64()
		body.WriteString(components.UsageBar("Share of balance", used, 16, max(components.CardInnerWidth(cw)-24, 10)))
		body.WriteString("\n")
	}
	body.WriteString(dimStyle.Render("Remaining budget subtracts spending from a balance that already includes it."))

	return components.ContentCard("Projection", body.String(), cw)
}
