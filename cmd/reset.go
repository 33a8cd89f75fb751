package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/theirongolddev/budgetbuddy/internal/cli"
	"github.com/theirongolddev/budgetbuddy/internal/model"

	"github.com/spf13/cobra"
)

var flagYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all transactions and restore the starting balance",
	RunE:  runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd.Context(), os.Stderr)
	if err != nil {
		return err
	}
	defer s.Close()

	n := len(s.ledger.State().Transactions)
	if !flagYes {
		fmt.Printf("  Delete %d transactions and reset balance to %s? [y/N] ", n, cli.FormatMoney(model.DefaultBalance))
		answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
			fmt.Println("  Aborted.")
			return nil
		}
	}

	if err := s.ledger.Reset(cmd.Context()); err != nil {
		return err
	}
	if !flagQuiet {
		fmt.Printf("  Ledger reset. Balance: %s\n", cli.FormatMoney(s.ledger.State().Balance))
	}
	return nil
}
