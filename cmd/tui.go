package cmd

import (
	"fmt"

	"github.com/theirongolddev/budgetbuddy/internal/logging"
	"github.com/theirongolddev/budgetbuddy/internal/tui"
	"github.com/theirongolddev/budgetbuddy/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive budget widget",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// The alt screen owns the terminal, so logs go to a file.
	logFile, err := logging.OpenFile()
	if err != nil {
		return err
	}
	defer func() { _ = logFile.Close() }()

	s, err := openSession(cmd.Context(), logFile)
	if err != nil {
		return err
	}
	defer s.Close()

	theme.SetActive(s.cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	app := tui.NewApp(cmd.Context(), s.ledger, s.cfg, s.log.WithComponent(logging.ComponentTUI))
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())

	final, err := p.Run()
	if m, ok := final.(tui.App); ok {
		m.Close()
	}
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
