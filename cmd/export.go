package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/budgetbuddy/internal/ledger"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the ledger as JSON",
	RunE:  runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd.Context(), os.Stderr)
	if err != nil {
		return err
	}
	defer s.Close()

	data, err := ledger.MarshalSnapshot(s.ledger.State())
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
