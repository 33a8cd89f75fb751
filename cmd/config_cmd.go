// Package cmd implements the budgetbuddy CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/budgetbuddy/internal/cli"
	"github.com/theirongolddev/budgetbuddy/internal/config"
	"github.com/theirongolddev/budgetbuddy/internal/logging"
	"github.com/theirongolddev/budgetbuddy/internal/store"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Store:          %s\n", cfg.General.Store)
	if cfg.General.Store == config.StoreSQLite {
		fmt.Printf("    Database:       %s\n", store.DBPath(cfg.General.DataDir))
	}
	fmt.Println()

	fmt.Println("  [Budget]")
	if cfg.Budget.DaysRemaining > 0 {
		fmt.Printf("    Days remaining: %d\n", cfg.Budget.DaysRemaining)
	} else {
		fmt.Println("    Days remaining: days left in the current month")
	}
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Log]")
	fmt.Printf("    Level: %s\n", cfg.Log.Level)
	fmt.Printf("    TUI log file: %s\n", logging.StateDir())
	fmt.Println()

	if cfg.General.Store == config.StoreSQLite {
		st, err := openStore(cfg)
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
		defer func() { _ = st.Close() }()

		entries, err := st.Entries(cmd.Context())
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(entries))
		for _, e := range entries {
			rows = append(rows, []string{e.Key, humanize.Bytes(uint64(e.Size)), humanize.Time(e.UpdatedAt)})
		}
		if len(rows) > 0 {
			fmt.Print(cli.RenderTable(cli.Table{
				Title:   "Stored keys",
				Headers: []string{"Key", "Size", "Updated"},
				Rows:    rows,
			}))
			fmt.Println()
		}
	}

	fmt.Fprintln(os.Stderr, "  Run `budgetbuddy setup` to reconfigure.")
	return nil
}
