package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/budgetbuddy/internal/cli"
	"github.com/theirongolddev/budgetbuddy/internal/pipeline"

	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:     "categories",
	Aliases: []string{"cats"},
	Short:   "Spending breakdown by category",
	RunE:    runCategories,
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}

func runCategories(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd.Context(), os.Stderr)
	if err != nil {
		return err
	}
	defer s.Close()

	totals := pipeline.Aggregate(s.ledger.State().Transactions)
	if len(totals) == 0 {
		fmt.Println("\n  No transactions yet.")
		return nil
	}

	sorted := pipeline.SortByTotal(totals)
	largest := sorted[0].Total

	rows := make([][]string, 0, len(totals)+2)
	for i, ct := range totals {
		rows = append(rows, []string{
			string(ct.Category),
			cli.FormatNumber(int64(ct.Count)),
			cli.FormatMoney(ct.Total),
			cli.FormatPercent(totals.Share(i)),
			cli.RenderHorizontalBar(ct.Total, largest, 20),
		})
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"Total", "", cli.FormatMoney(totals.Sum()), "", ""})

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:     "Spending by Category",
		Headers:   []string{"Category", "Count", "Total", "Share", ""},
		Rows:      rows,
		LeftAlign: []bool{true, false, false, false, true},
	}))
	return nil
}
