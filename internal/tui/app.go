// Package tui provides the interactive Bubble Tea budget widget.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/budgetbuddy/internal/cli"
	"github.com/theirongolddev/budgetbuddy/internal/config"
	"github.com/theirongolddev/budgetbuddy/internal/ledger"
	"github.com/theirongolddev/budgetbuddy/internal/logging"
	"github.com/theirongolddev/budgetbuddy/internal/model"
	"github.com/theirongolddev/budgetbuddy/internal/pipeline"
	"github.com/theirongolddev/budgetbuddy/internal/tui/components"
	"github.com/theirongolddev/budgetbuddy/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/shopspring/decimal"
)

// StateChangedMsg carries a new ledger snapshot from the ledger's observers.
type StateChangedMsg struct {
	State model.LedgerState
}

// txAddedMsg reports the outcome of an add command.
type txAddedMsg struct {
	Tx  model.Transaction
	Err error
}

// ledgerResetMsg reports the outcome of a reset command.
type ledgerResetMsg struct {
	Err error
}

// App is the root Bubble Tea model.
type App struct {
	ctx    context.Context
	ledger *ledger.Ledger
	cfg    config.Config
	log    *logging.Logger

	// Latest ledger snapshot and values derived from it
	state  model.LedgerState
	totals model.CategoryTotals
	spent  decimal.Decimal

	stateSub    chan model.LedgerState
	unsubscribe func()

	// Injected so tests don't write the user's config file
	saveConfig func(config.Config) error
	now        func() time.Time

	width     int
	height    int
	activeTab int
	showHelp  bool
	status    components.Status

	confirmReset bool
	addForm      *huh.Form
	addVals      *addFormValues

	txState  transactionsState
	afford   affordState
	settings settingsState
}

const (
	minTerminalWidth  = 80
	minContentHeight  = 8
	maxContentWidth   = 160
	compactWidth      = 110
	stateBufferLength = 1
)

// NewApp creates the root model wired to l. The app observes l for state
// changes, including ones made outside the TUI.
func NewApp(ctx context.Context, l *ledger.Ledger, cfg config.Config, log *logging.Logger) App {
	if log == nil {
		log = logging.Discard()
	}

	sub := make(chan model.LedgerState, stateBufferLength)
	unsubscribe := l.Subscribe(func(s model.LedgerState) {
		publishLatest(sub, s)
	})

	a := App{
		ctx:         ctx,
		ledger:      l,
		cfg:         cfg,
		log:         log,
		stateSub:    sub,
		unsubscribe: unsubscribe,
		saveConfig:  config.Save,
		now:         time.Now,
		afford:      newAffordState(),
		settings:    settingsState{},
	}
	a.setState(l.State())
	a.afford.days.SetValue(fmt.Sprint(a.defaultDays()))
	return a
}

// Close detaches the app from its ledger.
func (a App) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
}

// publishLatest sends s on ch, replacing any snapshot the UI has not read
// yet so the newest state always wins.
func publishLatest(ch chan model.LedgerState, s model.LedgerState) {
	for {
		select {
		case ch <- s:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

// waitForState blocks until the ledger publishes a snapshot.
func waitForState(sub chan model.LedgerState) tea.Cmd {
	return func() tea.Msg {
		return StateChangedMsg{State: <-sub}
	}
}

func addTxCmd(ctx context.Context, l *ledger.Ledger, in model.TransactionInput) tea.Cmd {
	return func() tea.Msg {
		tx, err := l.Add(ctx, in)
		return txAddedMsg{Tx: tx, Err: err}
	}
}

func resetCmd(ctx context.Context, l *ledger.Ledger) tea.Cmd {
	return func() tea.Msg {
		return ledgerResetMsg{Err: l.Reset(ctx)}
	}
}

func (a *App) setState(s model.LedgerState) {
	a.state = s
	a.totals = pipeline.SortByTotal(pipeline.Aggregate(s.Transactions))
	a.spent = pipeline.TotalSpent(s.Transactions)
	a.txState.clamp(len(a.visibleTransactions()))
}

// defaultDays is the configured planning horizon, or the days left in the
// current month when none is configured.
func (a App) defaultDays() int {
	if a.cfg.Budget.DaysRemaining > 0 {
		return a.cfg.Budget.DaysRemaining
	}
	return pipeline.DaysLeftInMonth(a.now())
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		waitForState(a.stateSub),
	)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.addForm != nil {
			a.addForm = a.addForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if a.showHelp || a.addForm != nil || a.confirmReset {
			return a, nil
		}
		return a.updateMouse(msg)

	case tea.KeyMsg:
		return a.updateKey(msg)

	case StateChangedMsg:
		a.setState(msg.State)
		return a, waitForState(a.stateSub)

	case txAddedMsg:
		if msg.Err != nil {
			a.log.Warn("add transaction", "error", msg.Err)
			a.status = components.Status{Text: msg.Err.Error(), IsErr: true}
			return a, nil
		}
		a.log.Info("transaction added", "id", msg.Tx.ID, "amount", msg.Tx.Amount.String())
		a.status = components.Status{Text: fmt.Sprintf("Added %q (#%d)", msg.Tx.Name, msg.Tx.ID)}
		return a, nil

	case ledgerResetMsg:
		if msg.Err != nil {
			a.log.Warn("reset ledger", "error", msg.Err)
			a.status = components.Status{Text: msg.Err.Error(), IsErr: true}
			return a, nil
		}
		a.log.Info("ledger reset")
		a.status = components.Status{Text: "Ledger reset"}
		return a, nil
	}

	// Forward unhandled messages to the add form (cursor blinks, etc.)
	if a.addForm != nil {
		return a.updateAddForm(msg)
	}
	return a, nil
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if a.activeTab == components.TabTransactions && !a.txState.searching {
			a.txState.up()
		}
	case tea.MouseButtonWheelDown:
		if a.activeTab == components.TabTransactions && !a.txState.searching {
			a.txState.down(len(a.visibleTransactions()))
		}
	case tea.MouseButtonLeft:
		if msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
	}
	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}

	// Modal states intercept all keys.
	switch {
	case a.addForm != nil:
		if key == "esc" {
			a.addForm = nil
			a.addVals = nil
			a.status = components.Status{Text: "Add cancelled"}
			return a, nil
		}
		return a.updateAddForm(msg)
	case a.confirmReset:
		return a.updateResetConfirm(key)
	case a.activeTab == components.TabSettings && a.settings.editing:
		return a.updateSettingsInput(msg)
	case a.activeTab == components.TabAfford && a.afford.editing:
		return a.updateAffordInput(msg)
	case a.activeTab == components.TabTransactions && a.txState.searching:
		return a.updateTransactionsSearch(msg)
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	// Tab-local bindings
	var handled bool
	var cmd tea.Cmd
	switch a.activeTab {
	case components.TabTransactions:
		a, cmd, handled = a.updateTransactionsKey(key)
	case components.TabAfford:
		a, cmd, handled = a.updateAffordKey(key)
	case components.TabSettings:
		a, cmd, handled = a.updateSettingsKey(key)
	}
	if handled {
		return a, cmd
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "n":
		return a.openAddForm()
	case "R":
		a.confirmReset = true
		return a, nil
	case "left":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		return a, nil
	case "right":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, nil
	}

	if runes := []rune(key); len(runes) == 1 {
		if idx := components.TabIdxByKey(runes[0]); idx >= 0 {
			a.activeTab = idx
		}
	}
	return a, nil
}

func (a App) updateResetConfirm(key string) (tea.Model, tea.Cmd) {
	a.confirmReset = false
	switch key {
	case "y", "Y":
		return a, resetCmd(a.ctx, a.ledger)
	default:
		a.status = components.Status{Text: "Reset cancelled"}
		return a, nil
	}
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if a.addForm != nil {
		return a.viewAddForm()
	}
	if a.confirmReset {
		return a.viewResetConfirm()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	t := theme.Active
	h := max(a.height, 5)
	msg := lipgloss.NewStyle().
		Foreground(t.Warning).
		Background(t.Background).
		Render(fmt.Sprintf("Terminal too narrow (%d cols, need %d)", a.width, minTerminalWidth))
	return lipgloss.Place(a.width, h, lipgloss.Center, lipgloss.Center, msg,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// overlay centers a bordered card on the app background.
func (a App) overlay(body string) string {
	t := theme.Active
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		BorderBackground(t.Background).
		Background(t.Surface).
		Padding(1, 3).
		Render(body)
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewResetConfirm() string {
	t := theme.Active
	titleStyle := lipgloss.NewStyle().Foreground(t.Expense).Background(t.Surface).Bold(true)
	textStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Reset ledger?"))
	b.WriteString("\n\n")
	b.WriteString(textStyle.Render(fmt.Sprintf("This removes %d transactions and restores the balance to %s.",
		len(a.state.Transactions), cli.FormatMoney(model.DefaultBalance))))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("[y] reset  [any other key] cancel"))
	return a.overlay(b.String())
}

func (a App) viewHelp() string {
	t := theme.Active

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"o t c a x", "Jump to tab"},
			{"← →", "Previous / Next tab"},
			{"j k", "Move selection"},
			{"g G", "First / Last transaction"},
		}},
		{"Actions", []struct{ key, desc string }{
			{"n", "New transaction"},
			{"/", "Search transactions"},
			{"Enter", "Edit field / Confirm"},
			{"Esc", "Cancel / Clear search"},
			{"R", "Reset ledger"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, sec := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(sec.title))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return a.overlay(b.String())
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)
	statusBar := components.RenderStatusBar(w, a.statusHints(), a.status, a.storeLabel())

	contentH := h - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch a.activeTab {
	case components.TabOverview:
		content = a.renderOverviewTab(cw)
	case components.TabTransactions:
		content = a.renderTransactionsTab(cw, contentH)
	case components.TabCategories:
		content = a.renderCategoriesTab(cw)
	case components.TabAfford:
		content = a.renderAffordTab(cw)
	case components.TabSettings:
		content = a.renderSettingsTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) statusHints() string {
	switch a.activeTab {
	case components.TabTransactions:
		return "[n]ew  [/]search  [?]help  [q]uit"
	case components.TabAfford, components.TabSettings:
		return "[Enter]edit  [?]help  [q]uit"
	default:
		return "[n]ew  [R]eset  [?]help  [q]uit"
	}
}

func (a App) storeLabel() string {
	if a.cfg.General.Store == config.StoreMemory {
		return "in-memory ledger"
	}
	return a.cfg.General.Store
}

// ─── Helpers ────────────────────────────────────────────────────

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	return ansi.Truncate(s, limit, "…")
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
	}
	return strings.Join(lines, "\n")
}

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes use the same widths as RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW + 1 // separator
	}
	return -1
}
