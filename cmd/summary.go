package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/theirongolddev/budgetbuddy/internal/cli"
	"github.com/theirongolddev/budgetbuddy/internal/ledger"
	"github.com/theirongolddev/budgetbuddy/internal/pipeline"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Balance and spending overview",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd.Context(), os.Stderr)
	if err != nil {
		return err
	}
	defer s.Close()

	state := s.ledger.State()
	totals := pipeline.SortByTotal(pipeline.Aggregate(state.Transactions))

	fmt.Println()
	fmt.Println(cli.RenderTitle("BUDGET SUMMARY"))
	fmt.Println()

	rows := [][]string{
		{"Balance", cli.RenderBalance(state.Balance)},
		{"Transactions", cli.FormatNumber(int64(len(state.Transactions)))},
		{"Total Spent", cli.FormatMoney(pipeline.TotalSpent(state.Transactions))},
	}
	if len(totals) > 0 {
		top := totals[0]
		rows = append(rows, []string{"Top Category", fmt.Sprintf("%s (%s)", top.Category, cli.FormatMoney(top.Total))})
	}
	if len(state.Transactions) > 0 {
		last := state.Transactions[len(state.Transactions)-1]
		rows = append(rows, []string{"Last Entry", fmt.Sprintf("%s %s", cli.Truncate(last.Name, 20), cli.FormatMoney(last.Amount))})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))

	if len(state.Transactions) == 0 {
		fmt.Println()
		fmt.Println(cli.RenderMuted("  No transactions yet. Add one with `budgetbuddy add NAME AMOUNT`."))
	}

	if err := ledger.Verify(state); errors.Is(err, ledger.ErrBalanceDrift) {
		fmt.Println()
		fmt.Println(cli.RenderWarning(err.Error()))
	}

	return nil
}
