package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/theirongolddev/budgetbuddy/internal/config"
	"github.com/theirongolddev/budgetbuddy/internal/ledger"
	"github.com/theirongolddev/budgetbuddy/internal/logging"
	"github.com/theirongolddev/budgetbuddy/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagDataDir string
	flagStore   string
	flagQuiet   bool
)

var rootCmd = &cobra.Command{
	Use:           "budgetbuddy",
	Short:         "Personal budget tracker",
	Long:          "Record transactions, watch your balance, and check whether a purchase fits your budget.",
	RunE:          runSummary,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "  error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Directory holding ledger.db (default $XDG_DATA_HOME/budgetbuddy)")
	rootCmd.PersistentFlags().StringVar(&flagStore, "store", "", "Storage backend: sqlite or memory")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress informational output")
}

// loadConfig reads the config file, .env and environment, then applies flags.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if flagDataDir != "" {
		cfg.General.DataDir = flagDataDir
	}
	if flagStore != "" {
		cfg.General.Store = flagStore
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func newLogger(cfg config.Config, out io.Writer) *logging.Logger {
	lvl, err := logging.ParseLevel(cfg.Log.Level)
	l := logging.New(logging.Config{Level: lvl, Output: out})
	if err != nil {
		l.Warn("using default log level", "error", err)
	}
	return l
}

// kvStore is what commands need from a storage backend.
type kvStore interface {
	ledger.Store
	Entries(ctx context.Context) ([]store.Entry, error)
	Close() error
}

func openStore(cfg config.Config) (kvStore, error) {
	if cfg.General.Store == config.StoreMemory {
		return store.NewMemory(), nil
	}
	return store.Open(store.DBPath(cfg.General.DataDir))
}

// session bundles what a command needs to work with the ledger.
type session struct {
	cfg    config.Config
	log    *logging.Logger
	store  kvStore
	ledger *ledger.Ledger
}

// openSession is the shared setup path used by all ledger commands.
func openSession(ctx context.Context, logOut io.Writer) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log := newLogger(cfg, logOut)

	st, err := openStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	if cfg.General.Store == config.StoreMemory && !flagQuiet {
		fmt.Fprintln(os.Stderr, "  Using in-memory store; changes are discarded on exit.")
	}

	l := ledger.New(ctx, st, log.WithComponent(logging.ComponentLedger))
	return &session{cfg: cfg, log: log, store: st, ledger: l}, nil
}

func (s *session) Close() {
	if err := s.store.Close(); err != nil {
		s.log.Warn("closing store", "error", err)
	}
}
