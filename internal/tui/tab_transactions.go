package tui

import (
	"fmt"
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

// transactionsState holds the transactions tab state.
type transactionsState struct {
	cursor int
	offset int // scroll offset for the list

	searching   bool
	searchInput textinput.Model
	searchQuery string
}

func (s *transactionsState) up() {
	if s.cursor > 0 {
		s.cursor--
	}
}

func (s *transactionsState) down(n int) {
	if s.cursor < n-1 {
		s.cursor++
	}
}

func (s *transactionsState) clamp(n int) {
	if s.cursor >= n {
		s.cursor = n - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "name, category or date"
	ti.Prompt = "/ "
	ti.CharLimit = 64
	ti.Width = 40
	return ti
}

// visibleTransactions returns the transactions matching the current search,
// newest first.
func (a App) visibleTransactions() []model.Transaction {
	matched := pipeline.FilterBySearch(a.state.Transactions, a.txState.searchQuery)
	out := make([]model.Transaction, len(matched))
	for i, tx := range matched {
		out[len(matched)-1-i] = tx
	}
	return out
}

func (a App) updateTransactionsKey(key string) (App, tea.Cmd, bool) {
	visible := a.visibleTransactions()
	switch key {
	case "/":
		a.txState.searching = true
		a.txState.searchInput = newSearchInput()
		a.txState.searchInput.SetValue(a.txState.searchQuery)
		a.txState.searchInput.Focus()
		return a, a.txState.searchInput.Cursor.BlinkCmd(), true
	case "esc":
		if a.txState.searchQuery != "" {
			a.txState.searchQuery = ""
			a.txState.cursor = 0
			a.txState.offset = 0
		}
		return a, nil, true
	case "j", "down":
		a.txState.down(len(visible))
		return a, nil, true
	case "k", "up":
		a.txState.up()
		return a, nil, true
	case "g", "home":
		a.txState.cursor = 0
		a.txState.offset = 0
		return a, nil, true
	case "G", "end":
		a.txState.cursor = len(visible) - 1
		a.txState.clamp(len(visible))
		return a, nil, true
	}
	return a, nil, false
}

// updateTransactionsSearch handles key events while in search mode.
func (a App) updateTransactionsSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.txState.searchQuery = strings.TrimSpace(a.txState.searchInput.Value())
		a.txState.searching = false
		a.txState.cursor = 0
		a.txState.offset = 0
		return a, nil
	case "esc":
		a.txState.searching = false
		return a, nil
	}

	var cmd tea.Cmd
	a.txState.searchInput, cmd = a.txState.searchInput.Update(msg)
	return a, cmd
}

func (a App) renderTransactionsTab(cw, h int) string {
	t := theme.Active
	ts := a.txState
	visible := a.visibleTransactions()

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	innerW := components.CardInnerWidth(cw)
	const idW, dateW, catW, amtW = 5, 10, 13, 12
	nameW := innerW - idW - dateW - catW - amtW - 4
	if nameW < 8 {
		nameW = 8
	}

	var body strings.Builder

	if ts.searching {
		body.WriteString(ts.searchInput.View())
		body.WriteString("\n")
	} else if ts.searchQuery != "" {
		body.WriteString(mutedStyle.Render(fmt.Sprintf("Filter: %q  (%d of %d)  [Esc] clear",
			ts.searchQuery, len(visible), len(a.state.Transactions))))
		body.WriteString("\n")
	}

	if len(visible) == 0 {
		msg := "No transactions yet. Press [n] to add one."
		if ts.searchQuery != "" {
			msg = "No transactions match the filter."
		}
		body.WriteString(mutedStyle.Render(msg))
		return components.ContentCard("Transactions", body.String(), cw)
	}

	row := func(id, date, name, cat, amt string) string {
		return fmt.Sprintf("%-*s %-*s %-*s %-*s %*s",
			idW, id, dateW, date, nameW, truncStr(name, nameW), catW, cat, amtW, amt)
	}

	body.WriteString(headerStyle.Render(row("#", "Date", "Name", "Category", "Amount")))
	body.WriteString("\n")

	visibleRows := h - 6 // card border, title, header, hint
	if visibleRows < 3 {
		visibleRows = 3
	}
	offset := ts.offset
	if ts.cursor < offset {
		offset = ts.cursor
	}
	if ts.cursor >= offset+visibleRows {
		offset = ts.cursor - visibleRows + 1
	}
	end := min(offset+visibleRows, len(visible))

	for i := offset; i < end; i++ {
		tx := visible[i]
		line := row(fmt.Sprint(tx.ID), truncStr(tx.Date, dateW), tx.Name,
			truncStr(string(tx.Category), catW), cli.FormatMoney(tx.Amount))
		if i == ts.cursor {
			body.WriteString(selectedStyle.Render(padRight(line, innerW)))
		} else {
			style := rowStyle
			if tx.Amount.IsNegative() {
				style = style.Foreground(t.Expense)
			}
			body.WriteString(style.Render(line))
		}
		body.WriteString("\n")
	}

	body.WriteString(mutedStyle.Render(fmt.Sprintf("%d-%d of %d  [j/k] navigate  [/] search  [n] new",
		offset+1, end, len(visible))))

	title := fmt.Sprintf("Transactions · %s", cli.FormatMoney(pipeline.TotalSpent(visible)))
	return components.ContentCard(title, body.String(), cw)
}

func padRight(s string, w int) string {
	if n := lipgloss.Width(s); n < w {
		return s + strings.Repeat(" ", w-n)
	}
	return s
}
