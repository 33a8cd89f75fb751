package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/budgetbuddy/internal/config"
	"github.com/theirongolddev/budgetbuddy/internal/ledger"
	"github.com/theirongolddev/budgetbuddy/internal/logging"
	"github.com/theirongolddev/budgetbuddy/internal/model"
	"github.com/theirongolddev/budgetbuddy/internal/store"
	"github.com/theirongolddev/budgetbuddy/internal/tui/components"
	"github.com/theirongolddev/budgetbuddy/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/shopspring/decimal"
)

var testNow = time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T) App {
	t.Helper()
	return newTestAppWithStore(t, store.NewMemory())
}

func newTestAppWithStore(t *testing.T, st ledger.Store) App {
	t.Helper()
	ctx := context.Background()
	l := ledger.New(ctx, st, logging.Discard())
	a := NewApp(ctx, l, config.DefaultConfig(), logging.Discard())
	a.saveConfig = func(config.Config) error { return nil }
	a.now = func() time.Time { return testNow }
	t.Cleanup(a.Close)
	return a
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// press sends each key in turn and returns the final model and the last command.
func press(t *testing.T, a App, keys ...string) (App, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var m tea.Model
		m, cmd = a.Update(keyMsg(k))
		a = m.(App)
	}
	return a, cmd
}

// typeText sends s one rune at a time.
func typeText(t *testing.T, a App, s string) App {
	t.Helper()
	for _, r := range s {
		a, _ = press(t, a, string(r))
	}
	return a
}

// nextState reads the snapshot the ledger published to the app.
func nextState(t *testing.T, a App) StateChangedMsg {
	t.Helper()
	select {
	case s := <-a.stateSub:
		return StateChangedMsg{State: s}
	case <-time.After(time.Second):
		t.Fatal("no state published")
		return StateChangedMsg{}
	}
}

func deliverState(t *testing.T, a App) App {
	t.Helper()
	m, cmd := a.Update(nextState(t, a))
	if cmd == nil {
		t.Fatal("state update should re-arm the subscription")
	}
	return m.(App)
}

// addAndSync adds name/amount pairs straight through the ledger, as another
// client would, then delivers the resulting state to the app.
func addAndSync(t *testing.T, a App, pairs ...string) App {
	t.Helper()
	for i := 0; i+1 < len(pairs); i += 2 {
		in, err := model.ParseTransactionInput(pairs[i], pairs[i+1], "Other", "", testNow)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := a.ledger.Add(context.Background(), in); err != nil {
			t.Fatal(err)
		}
	}
	return deliverState(t, a)
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) (string, bool, error) { return "", false, nil }
func (failingStore) Set(context.Context, string, string) error { return errors.New("disk full") }

func TestNewAppStartsWithDefaultLedger(t *testing.T) {
	a := newTestApp(t)
	if !a.state.Balance.Equal(model.DefaultBalance) {
		t.Errorf("balance = %s, want %s", a.state.Balance, model.DefaultBalance)
	}
	if len(a.state.Transactions) != 0 {
		t.Errorf("transactions = %d, want 0", len(a.state.Transactions))
	}
	if a.activeTab != components.TabOverview {
		t.Errorf("activeTab = %d, want overview", a.activeTab)
	}
	if a.Init() == nil {
		t.Error("Init should subscribe to state changes")
	}
}

func TestTabNavigationKeys(t *testing.T) {
	a := newTestApp(t)
	steps := []struct {
		key  string
		want int
	}{
		{"t", components.TabTransactions},
		{"c", components.TabCategories},
		{"a", components.TabAfford},
		{"x", components.TabSettings},
		{"o", components.TabOverview},
		{"left", components.TabSettings},
		{"right", components.TabOverview},
		{"right", components.TabTransactions},
	}
	for _, s := range steps {
		a, _ = press(t, a, s.key)
		if a.activeTab != s.want {
			t.Fatalf("after %q activeTab = %d, want %d", s.key, a.activeTab, s.want)
		}
	}
}

func TestQuitKeys(t *testing.T) {
	a := newTestApp(t)

	_, cmd := press(t, a, "q")
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("q command is not quit")
	}

	_, cmd = a.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("ctrl+c should quit")
	}
}

func TestAddCommandUpdatesStateAndStatus(t *testing.T) {
	a := newTestApp(t)
	in := model.TransactionInput{
		Name:     "Coffee",
		Amount:   decimal.RequireFromString("4.50"),
		Category: model.CategoryFoodDrink,
		Date:     "2024-03-09",
	}

	m, _ := a.Update(addTxCmd(a.ctx, a.ledger, in)())
	a = m.(App)
	if a.status.IsErr || !strings.Contains(a.status.Text, "Coffee") {
		t.Fatalf("status = %+v", a.status)
	}

	a = deliverState(t, a)
	if len(a.state.Transactions) != 1 {
		t.Fatalf("transactions = %d, want 1", len(a.state.Transactions))
	}
	if want := decimal.RequireFromString("2004.50"); !a.state.Balance.Equal(want) {
		t.Errorf("balance = %s, want %s", a.state.Balance, want)
	}
	if got, _ := a.totals.Lookup(model.CategoryFoodDrink); !got.Equal(in.Amount) {
		t.Errorf("Food/Drink total = %s", got)
	}
}

func TestChangesFromOutsideTheAppAreObserved(t *testing.T) {
	a := newTestApp(t)
	a = addAndSync(t, a, "Bus", "2.75")
	if len(a.state.Transactions) != 1 || a.state.Transactions[0].Name != "Bus" {
		t.Fatalf("state = %+v", a.state.Transactions)
	}
}

func TestLatestStateWins(t *testing.T) {
	a := newTestApp(t)
	a = addAndSync(t, a, "One", "1", "Two", "2", "Three", "3")
	if len(a.state.Transactions) != 3 {
		t.Fatalf("transactions = %d, want 3 (latest snapshot)", len(a.state.Transactions))
	}
	select {
	case s := <-a.stateSub:
		t.Fatalf("stale snapshot still queued: %d transactions", len(s.Transactions))
	default:
	}
}

func TestPersistFailureIsReportedButStateChanges(t *testing.T) {
	a := newTestAppWithStore(t, failingStore{})
	in := model.TransactionInput{Name: "Lunch", Amount: decimal.NewFromInt(12), Category: model.CategoryOther, Date: "d"}

	msg := addTxCmd(a.ctx, a.ledger, in)()
	added, ok := msg.(txAddedMsg)
	if !ok || !errors.Is(added.Err, ledger.ErrPersist) {
		t.Fatalf("msg = %#v, want ErrPersist", msg)
	}

	m, _ := a.Update(msg)
	a = m.(App)
	if !a.status.IsErr {
		t.Fatalf("status should be an error: %+v", a.status)
	}

	a = deliverState(t, a)
	if len(a.state.Transactions) != 1 {
		t.Fatalf("in-memory state should keep the transaction, got %d", len(a.state.Transactions))
	}
}

func TestAddFormOpensWithDefaults(t *testing.T) {
	a := newTestApp(t)
	a, _ = press(t, a, "n")
	if a.addForm == nil || a.addVals == nil {
		t.Fatal("n should open the add form")
	}
	if a.addVals.Date != "2024-03-09" {
		t.Errorf("default date = %q", a.addVals.Date)
	}
	if a.addVals.Category != string(model.CategoryOther) {
		t.Errorf("default category = %q", a.addVals.Category)
	}

	// Tab keys go to the form, not the app.
	a, _ = press(t, a, "t")
	if a.activeTab != components.TabOverview {
		t.Error("typing into the form switched tabs")
	}

	a, _ = press(t, a, "esc")
	if a.addForm != nil {
		t.Fatal("esc should close the form")
	}
	if a.status.Text != "Add cancelled" {
		t.Errorf("status = %q", a.status.Text)
	}
}

func TestSubmitAdd(t *testing.T) {
	a := newTestApp(t)

	m, cmd := a.submitAdd(addFormValues{Name: "Movie", Amount: "abc", Category: "Entertainment"})
	if cmd != nil {
		t.Fatal("invalid amount should not reach the ledger")
	}
	if st := m.(App).status; !st.IsErr || !strings.Contains(st.Text, "invalid amount") {
		t.Fatalf("status = %+v", st)
	}

	_, cmd = a.submitAdd(addFormValues{Name: "Movie", Amount: "$15", Category: "Entertainment"})
	if cmd == nil {
		t.Fatal("valid form should produce an add command")
	}
	added := cmd().(txAddedMsg)
	if added.Err != nil {
		t.Fatal(added.Err)
	}
	if added.Tx.Date != "2024-03-09" || added.Tx.Category != model.CategoryEntertainment || added.Tx.ID != 1 {
		t.Errorf("tx = %+v", added.Tx)
	}
}

func TestResetRequiresConfirmation(t *testing.T) {
	a := newTestApp(t)
	a = addAndSync(t, a, "Coffee", "3")

	a, cmd := press(t, a, "R")
	if !a.confirmReset || cmd != nil {
		t.Fatal("R should ask for confirmation")
	}
	a, cmd = press(t, a, "n")
	if a.confirmReset || cmd != nil {
		t.Fatal("n should cancel the reset")
	}
	if len(a.ledger.State().Transactions) != 1 {
		t.Fatal("cancelled reset changed the ledger")
	}

	a, cmd = press(t, a, "R", "y")
	if cmd == nil {
		t.Fatal("y should reset")
	}
	m, _ := a.Update(cmd())
	a = m.(App)
	if a.status.Text != "Ledger reset" {
		t.Errorf("status = %q", a.status.Text)
	}

	a = deliverState(t, a)
	if len(a.state.Transactions) != 0 || !a.state.Balance.Equal(model.DefaultBalance) {
		t.Fatalf("state after reset = %+v", a.state)
	}
}

func TestTransactionsSearch(t *testing.T) {
	a := newTestApp(t)
	a = addAndSync(t, a, "Coffee", "3", "Bus ticket", "2", "Coffee beans", "12")

	a, _ = press(t, a, "t", "/")
	if !a.txState.searching {
		t.Fatal("/ should start search")
	}
	a = typeText(t, a, "coffee")
	a, _ = press(t, a, "enter")
	if a.txState.searching || a.txState.searchQuery != "coffee" {
		t.Fatalf("search state = %+v", a.txState)
	}

	visible := a.visibleTransactions()
	if len(visible) != 2 {
		t.Fatalf("visible = %d, want 2", len(visible))
	}
	if visible[0].Name != "Coffee beans" {
		t.Errorf("newest match should be first, got %q", visible[0].Name)
	}

	a, _ = press(t, a, "esc")
	if a.txState.searchQuery != "" || len(a.visibleTransactions()) != 3 {
		t.Fatal("esc should clear the filter")
	}
}

func TestTransactionsCursorKeys(t *testing.T) {
	a := newTestApp(t)
	a = addAndSync(t, a, "A", "1", "B", "2", "C", "3")

	a, _ = press(t, a, "t", "G")
	if a.txState.cursor != 2 {
		t.Fatalf("G cursor = %d", a.txState.cursor)
	}
	a, _ = press(t, a, "j")
	if a.txState.cursor != 2 {
		t.Fatalf("j past end moved cursor to %d", a.txState.cursor)
	}
	a, _ = press(t, a, "k", "k", "k")
	if a.txState.cursor != 0 {
		t.Fatalf("k cursor = %d", a.txState.cursor)
	}

	// A reset shrinks the list; the cursor is clamped.
	a, _ = press(t, a, "G")
	if err := a.ledger.Reset(context.Background()); err != nil {
		t.Fatal(err)
	}
	a = deliverState(t, a)
	if a.txState.cursor != 0 {
		t.Fatalf("cursor after reset = %d", a.txState.cursor)
	}
}

func TestAffordVerdict(t *testing.T) {
	a := newTestApp(t)
	a.afford.days.SetValue("30")

	if _, ok := a.verdict(); ok {
		t.Fatal("no verdict without a planned purchase")
	}

	a, _ = press(t, a, "a", "enter")
	if !a.afford.editing {
		t.Fatal("enter should edit the planned purchase")
	}
	a = typeText(t, a, "500")
	a, _ = press(t, a, "enter")
	if a.afford.editing || a.afford.planned.Value() != "500" {
		t.Fatalf("planned = %q editing=%v", a.afford.planned.Value(), a.afford.editing)
	}

	v, ok := a.verdict()
	if !ok {
		t.Fatal("expected a verdict")
	}
	if !v.CanAfford || v.RemainingBudget.StringFixed(2) != "2000.00" ||
		v.AfterPurchaseBudget.StringFixed(2) != "1500.00" || v.DailyBudget.StringFixed(2) != "50.00" {
		t.Errorf("verdict = %+v", v)
	}

	a.afford.days.SetValue("0")
	if _, ok := a.verdict(); ok {
		t.Error("zero days should not produce a verdict")
	}
	a.afford.days.SetValue("32")
	if _, ok := a.verdict(); ok {
		t.Error("more than 31 days should not produce a verdict")
	}
}

func TestAffordDaysDefaultFromConfig(t *testing.T) {
	ctx := context.Background()
	l := ledger.New(ctx, store.NewMemory(), nil)
	cfg := config.DefaultConfig()
	cfg.Budget.DaysRemaining = 12
	a := NewApp(ctx, l, cfg, nil)
	defer a.Close()
	if got := a.afford.days.Value(); got != "12" {
		t.Fatalf("days = %q, want 12", got)
	}
}

func TestSettingsSaveTheme(t *testing.T) {
	t.Cleanup(func() { theme.SetActive("flexoki-dark") })

	a := newTestApp(t)
	var saved []config.Config
	a.saveConfig = func(c config.Config) error {
		saved = append(saved, c)
		return nil
	}

	a, _ = press(t, a, "x", "enter")
	if !a.settings.editing {
		t.Fatal("enter should edit the theme")
	}
	a.settings.input.SetValue("tokyo-night")
	a, _ = press(t, a, "enter")

	if a.settings.saveErr != nil || !a.settings.saved {
		t.Fatalf("save failed: %v", a.settings.saveErr)
	}
	if len(saved) != 1 || saved[0].Appearance.Theme != "tokyo-night" {
		t.Fatalf("saved = %+v", saved)
	}
	if a.cfg.Appearance.Theme != "tokyo-night" || theme.Active.Name != "tokyo-night" {
		t.Errorf("theme not applied: cfg=%q active=%q", a.cfg.Appearance.Theme, theme.Active.Name)
	}
}

func TestSettingsRejectInvalidValues(t *testing.T) {
	a := newTestApp(t)
	a.saveConfig = func(config.Config) error {
		t.Fatal("invalid settings must not be saved")
		return nil
	}

	a, _ = press(t, a, "x", "enter")
	a.settings.input.SetValue("solarized")
	a, _ = press(t, a, "enter")
	if a.settings.saveErr == nil {
		t.Error("unknown theme should be rejected")
	}

	a, _ = press(t, a, "j", "enter")
	a.settings.input.SetValue("45")
	a, _ = press(t, a, "enter")
	if a.settings.saveErr == nil {
		t.Error("45 days should be rejected")
	}
	if a.cfg.Budget.DaysRemaining != 0 {
		t.Errorf("config changed to %d", a.cfg.Budget.DaysRemaining)
	}
}

func TestSettingsSaveErrorKeepsConfig(t *testing.T) {
	a := newTestApp(t)
	a.saveConfig = func(config.Config) error { return errors.New("read-only") }

	a, _ = press(t, a, "x", "j", "enter")
	a.settings.input.SetValue("10")
	a, _ = press(t, a, "enter")
	if a.settings.saveErr == nil || a.settings.saved {
		t.Fatal("save error should be shown")
	}
	if a.cfg.Budget.DaysRemaining != 0 {
		t.Error("unsaved change was applied")
	}
}

func TestViewFillsTerminal(t *testing.T) {
	a := newTestApp(t)
	a = addAndSync(t, a, "Coffee", "3.50", "Refund", "-10")
	a.afford.planned.SetValue("100")
	a.afford.days.SetValue("10")

	for _, size := range []tea.WindowSizeMsg{{Width: 120, Height: 40}, {Width: 80, Height: 24}} {
		m, _ := a.Update(size)
		a = m.(App)
		for tab := range components.Tabs {
			a.activeTab = tab
			view := a.View()
			if h := lipgloss.Height(view); h != size.Height {
				t.Errorf("%dx%d tab %d height = %d", size.Width, size.Height, tab, h)
			}
		}
	}
}

func TestViewOverlays(t *testing.T) {
	a := newTestApp(t)
	m, _ := a.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	a = m.(App)

	a, _ = press(t, a, "?")
	if !strings.Contains(ansi.Strip(a.View()), "Keyboard Shortcuts") {
		t.Error("help overlay missing")
	}
	a, _ = press(t, a, "z")
	if a.showHelp {
		t.Error("any key should close help")
	}

	a, _ = press(t, a, "R")
	if !strings.Contains(ansi.Strip(a.View()), "Reset ledger?") {
		t.Error("reset confirmation missing")
	}
}

func TestViewTooNarrow(t *testing.T) {
	a := newTestApp(t)
	m, _ := a.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	if !strings.Contains(ansi.Strip(m.(App).View()), "too narrow") {
		t.Error("expected narrow-terminal message")
	}
}
