package cmd

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/theirongolddev/budgetbuddy/internal/config"
	"github.com/theirongolddev/budgetbuddy/internal/ledger"
	"github.com/theirongolddev/budgetbuddy/internal/model"
	"github.com/theirongolddev/budgetbuddy/internal/store"
)

func TestDefaultDays(t *testing.T) {
	now := time.Date(2024, time.February, 20, 9, 0, 0, 0, time.UTC)
	if got := defaultDays(12, now); got != 12 {
		t.Errorf("defaultDays(12) = %d, want 12", got)
	}
	// 2024 is a leap year: 20..29 inclusive.
	if got := defaultDays(0, now); got != 10 {
		t.Errorf("defaultDays(0) = %d, want 10", got)
	}
}

func TestValidateDays(t *testing.T) {
	for _, s := range []string{"0", "1", "31"} {
		if err := validateDays(s); err != nil {
			t.Errorf("validateDays(%q) = %v", s, err)
		}
	}
	for _, s := range []string{"", "-1", "32", "ten"} {
		if err := validateDays(s); err == nil {
			t.Errorf("validateDays(%q) should fail", s)
		}
	}
}

// isolate points config and data lookups at temp dirs so commands never
// touch the user's files.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	for _, k := range []string{config.EnvStore, config.EnvDataDir, config.EnvTheme, config.EnvLogLevel} {
		t.Setenv(k, "")
	}
}

// resetFlags restores every flag to its default between executions; cobra
// keeps flag values in package state.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// execute runs the CLI with args and returns what it printed to stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	stdout := os.Stdout
	os.Stdout = w

	rootCmd.SetArgs(args)
	runErr := rootCmd.ExecuteContext(context.Background())

	os.Stdout = stdout
	_ = w.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	return string(out), runErr
}

func loadLedger(t *testing.T, dir string) model.LedgerState {
	t.Helper()
	st, err := store.Open(store.DBPath(dir))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	defer func() { _ = st.Close() }()
	return ledger.Load(context.Background(), st, nil)
}

func TestAddAndResetPersist(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	if _, err := execute(t, "add", "-d", dir, "-q", "-c", "food", "--date", "2024-05-01", "--", "Coffee", "-4.50"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := execute(t, "add", "-d", dir, "-q", "Refund", "20"); err != nil {
		t.Fatalf("add: %v", err)
	}

	s := loadLedger(t, dir)
	if len(s.Transactions) != 2 {
		t.Fatalf("stored %d transactions, want 2", len(s.Transactions))
	}
	first := s.Transactions[0]
	if first.ID != 1 || first.Name != "Coffee" || first.Category != model.CategoryFoodDrink || first.Date != "2024-05-01" {
		t.Errorf("first transaction = %+v", first)
	}
	if s.Transactions[1].Category != model.CategoryOther {
		t.Errorf("default category = %q, want Other", s.Transactions[1].Category)
	}
	if want := decimal.RequireFromString("2015.5"); !s.Balance.Equal(want) {
		t.Errorf("balance = %s, want %s", s.Balance, want)
	}

	out, err := execute(t, "reset", "-d", dir, "--yes")
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if !strings.Contains(out, "Ledger reset. Balance: $2,000.00") {
		t.Errorf("reset output = %q", out)
	}
	s = loadLedger(t, dir)
	if len(s.Transactions) != 0 || !s.Balance.Equal(model.DefaultBalance) {
		t.Errorf("after reset: %d transactions, balance %s", len(s.Transactions), s.Balance)
	}
}

func TestAddRejectsBadInput(t *testing.T) {
	isolate(t)

	_, err := execute(t, "add", "--store", "memory", "-q", "Lunch", "twelve")
	if !errors.Is(err, model.ErrInvalidAmount) {
		t.Errorf("non-numeric amount: err = %v, want ErrInvalidAmount", err)
	}
	_, err = execute(t, "add", "--store", "memory", "-q", "-c", "rent", "Flat", "900")
	if !errors.Is(err, model.ErrUnknownCategory) {
		t.Errorf("unknown category: err = %v, want ErrUnknownCategory", err)
	}
}

func TestAfford(t *testing.T) {
	isolate(t)

	out, err := execute(t, "afford", "--store", "memory", "-q", "--days", "30", "500")
	if err != nil {
		t.Fatalf("afford: %v", err)
	}
	for _, want := range []string{"CAN I AFFORD $500.00?", "$1,500.00", "$50.00/day for 30 days", "Yes"} {
		if !strings.Contains(out, want) {
			t.Errorf("afford output missing %q:\n%s", want, out)
		}
	}

	out, err = execute(t, "afford", "--store", "memory", "-q", "--days", "0", "500")
	if err != nil {
		t.Fatalf("afford with no verdict should not fail: %v", err)
	}
	if !strings.Contains(out, "No verdict") {
		t.Errorf("days 0 output = %q, want a no-verdict message", out)
	}

	out, err = execute(t, "afford", "--store", "memory", "-q", "--days", "10", "2500")
	if err != nil {
		t.Fatalf("afford: %v", err)
	}
	if !strings.Contains(out, "No") || strings.Contains(out, "Yes") {
		t.Errorf("over-budget output should say No:\n%s", out)
	}
}
