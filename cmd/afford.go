package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/theirongolddev/budgetbuddy/internal/cli"
	"github.com/theirongolddev/budgetbuddy/internal/model"
	"github.com/theirongolddev/budgetbuddy/internal/pipeline"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var flagDays int

var affordCmd = &cobra.Command{
	Use:   "afford AMOUNT",
	Short: "Check whether a planned purchase fits your budget",
	Args:  cobra.ExactArgs(1),
	RunE:  runAfford,
}

func init() {
	affordCmd.Flags().IntVarP(&flagDays, "days", "n", 0, "Days remaining in the budget period (default from config, else days left this month)")
	rootCmd.AddCommand(affordCmd)
}

func runAfford(cmd *cobra.Command, args []string) error {
	planned, err := model.ParseAmount(args[0])
	if err != nil {
		return err
	}

	s, err := openSession(cmd.Context(), os.Stderr)
	if err != nil {
		return err
	}
	defer s.Close()

	days := flagDays
	if !cmd.Flags().Changed("days") {
		days = defaultDays(s.cfg.Budget.DaysRemaining, time.Now())
	}

	state := s.ledger.State()
	v, ok := pipeline.Project(state.Balance, state.Transactions, decimal.NewNullDecimal(planned), days)
	if !ok {
		fmt.Printf("\n  No verdict: days remaining must be between 1 and %d (got %d).\n", pipeline.MaxDaysRemaining, days)
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("CAN I AFFORD %s?", cli.FormatMoney(planned))))
	fmt.Println()

	verdict := "Yes"
	if !v.CanAfford {
		verdict = "No"
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Projection", "Value"},
		Rows: [][]string{
			{"Balance", cli.FormatMoney(state.Balance)},
			{"Total Spent", cli.FormatMoney(v.TotalSpent)},
			{"Remaining Budget", cli.RenderBalance(v.RemainingBudget)},
			{"After Purchase", cli.RenderBalance(v.AfterPurchaseBudget)},
			{"---"},
			{"Daily Budget", fmt.Sprintf("%s/day for %s", cli.FormatMoney(v.DailyBudget), cli.FormatDays(v.DaysRemaining))},
			{"Affordable", verdict},
		},
	}))
	fmt.Println(cli.RenderMuted("  Remaining budget subtracts spending from a balance that already includes it."))
	return nil
}

// defaultDays resolves the planning horizon: configured value, or the days
// left in the current month when unset.
func defaultDays(configured int, now time.Time) int {
	if configured > 0 {
		return configured
	}
	return pipeline.DaysLeftInMonth(now)
}
