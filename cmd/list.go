package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/theirongolddev/budgetbuddy/internal/cli"
	"github.com/theirongolddev/budgetbuddy/internal/model"
	"github.com/theirongolddev/budgetbuddy/internal/pipeline"

	"github.com/spf13/cobra"
)

var (
	flagListCategory string
	flagSearch       string
	flagLimit        int
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List transactions",
	RunE:    runList,
}

func init() {
	listCmd.Flags().StringVarP(&flagListCategory, "category", "c", "", "Only show this category")
	listCmd.Flags().StringVarP(&flagSearch, "search", "s", "", "Only show transactions whose name, category or date contains this text")
	listCmd.Flags().IntVarP(&flagLimit, "limit", "l", 0, "Show at most this many of the most recent matches (0 = all)")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd.Context(), os.Stderr)
	if err != nil {
		return err
	}
	defer s.Close()

	state := s.ledger.State()
	txs := state.Transactions
	if flagListCategory != "" {
		cat, err := model.ParseCategory(flagListCategory)
		if err != nil {
			return err
		}
		txs = pipeline.FilterByCategory(txs, cat)
	}
	txs = pipeline.FilterBySearch(txs, flagSearch)

	if len(txs) == 0 {
		fmt.Println("\n  No matching transactions.")
		return nil
	}

	shown := txs
	if flagLimit > 0 && len(shown) > flagLimit {
		shown = shown[len(shown)-flagLimit:]
	}

	rows := make([][]string, 0, len(shown)+2)
	for _, tx := range shown {
		rows = append(rows, []string{
			strconv.FormatInt(tx.ID, 10),
			tx.Date,
			cli.Truncate(tx.Name, 32),
			string(tx.Category),
			cli.FormatMoney(tx.Amount),
		})
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"", "", "Total", "", cli.FormatMoney(pipeline.TotalSpent(txs))})

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:     fmt.Sprintf("Transactions (%d of %d)", len(shown), len(state.Transactions)),
		Headers:   []string{"#", "Date", "Name", "Category", "Amount"},
		Rows:      rows,
		LeftAlign: []bool{false, true, true, true, false},
	}))
	return nil
}
