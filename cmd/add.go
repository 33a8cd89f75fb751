package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/theirongolddev/budgetbuddy/internal/cli"
	"github.com/theirongolddev/budgetbuddy/internal/model"

	"github.com/spf13/cobra"
)

var (
	flagCategory string
	flagDate     string
)

var addCmd = &cobra.Command{
	Use:   "add NAME AMOUNT",
	Short: "Record a transaction",
	Long: "Record a transaction. AMOUNT is added to the balance as given; " +
		"use a negative amount to reduce it.",
	Example: `  budgetbuddy add "Lunch" 12.50 -c food
  budgetbuddy add Refund -- -20 -c other`,
	Args: cobra.ExactArgs(2),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&flagCategory, "category", "c", string(model.CategoryOther), "Food/Drink, Transport, Entertainment or Other")
	addCmd.Flags().StringVar(&flagDate, "date", "", "Transaction date (default today, YYYY-MM-DD)")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	in, err := model.ParseTransactionInput(args[0], args[1], flagCategory, flagDate, time.Now())
	if err != nil {
		return err
	}

	s, err := openSession(cmd.Context(), os.Stderr)
	if err != nil {
		return err
	}
	defer s.Close()

	tx, err := s.ledger.Add(cmd.Context(), in)
	if err != nil {
		return err
	}

	if !flagQuiet {
		fmt.Printf("  Added #%d %s  %s  [%s]  %s\n", tx.ID, tx.Name, cli.RenderMoney(tx.Amount), tx.Category, tx.Date)
		fmt.Printf("  Balance: %s\n", cli.RenderBalance(s.ledger.State().Balance))
	}
	return nil
}
