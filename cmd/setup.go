package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/theirongolddev/budgetbuddy/internal/config"
	"github.com/theirongolddev/budgetbuddy/internal/tui/theme"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	days := strconv.Itoa(cfg.Budget.DaysRemaining)
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to budgetbuddy").
				Description("Your ledger starts with a balance of $2,000.00.\nA few settings and you're done."),
			huh.NewSelect[string]().
				Title("Where should the ledger be stored?").
				Options(
					huh.NewOption("SQLite file (persists between runs)", config.StoreSQLite),
					huh.NewOption("Memory (discarded on exit)", config.StoreMemory),
				).
				Value(&cfg.General.Store),
			huh.NewInput().
				Title("Default days remaining for projections").
				Description("0 uses the days left in the current month.").
				Value(&days).
				Validate(validateDays),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&cfg.Appearance.Theme),
		),
	).WithTheme(huh.ThemeCharm())

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup cancelled.")
			return nil
		}
		return err
	}

	cfg.Budget.DaysRemaining, _ = strconv.Atoi(days)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `budgetbuddy setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}

func validateDays(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return errors.New("enter a whole number")
	}
	if n < 0 || n > 31 {
		return errors.New("must be between 0 and 31")
	}
	return nil
}
