package tui

import (
	"errors"
	"strings"

	"github.com/theirongolddev/budgetbuddy/internal/model"
	"github.com/theirongolddev/budgetbuddy/internal/tui/components"
	"github.com/theirongolddev/budgetbuddy/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// addFormValues is bound to the add form's fields.
type addFormValues struct {
	Name     string
	Amount   string
	Category string
	Date     string
}

func newAddForm(vals *addFormValues) *huh.Form {
	catOpts := make([]huh.Option[string], len(model.Categories))
	for i, c := range model.Categories {
		catOpts[i] = huh.NewOption(string(c), string(c))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("Coffee").
				Value(&vals.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Amount").
				Description("Added to the balance as entered.").
				Placeholder("4.50").
				Value(&vals.Amount).
				Validate(func(s string) error {
					_, err := model.ParseAmount(s)
					return err
				}),
			huh.NewSelect[string]().
				Title("Category").
				Options(catOpts...).
				Value(&vals.Category),
			huh.NewInput().
				Title("Date").
				Description("Free text. Defaults to today.").
				Value(&vals.Date),
		),
	).WithTheme(huh.ThemeCharm()).WithShowHelp(true)
}

func (a App) openAddForm() (tea.Model, tea.Cmd) {
	a.addVals = &addFormValues{
		Category: string(model.CategoryOther),
		Date:     a.now().Format(model.DateLayout),
	}
	a.addForm = newAddForm(a.addVals)
	if a.width > 0 {
		a.addForm = a.addForm.WithWidth(min(a.width, 72)).WithHeight(a.height)
	}
	return a, a.addForm.Init()
}

func (a App) updateAddForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.addForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.addForm = f
	}

	switch a.addForm.State {
	case huh.StateCompleted:
		vals := *a.addVals
		a.addForm = nil
		a.addVals = nil
		return a.submitAdd(vals)
	case huh.StateAborted:
		a.addForm = nil
		a.addVals = nil
		a.status = components.Status{Text: "Add cancelled"}
		return a, nil
	}
	return a, cmd
}

// submitAdd validates the form values and hands them to the ledger.
func (a App) submitAdd(vals addFormValues) (tea.Model, tea.Cmd) {
	in, err := model.ParseTransactionInput(vals.Name, vals.Amount, vals.Category, vals.Date, a.now())
	if err != nil {
		a.status = components.Status{Text: err.Error(), IsErr: true}
		return a, nil
	}
	return a, addTxCmd(a.ctx, a.ledger, in)
}

func (a App) viewAddForm() string {
	t := theme.Active
	title := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true).Render("New transaction")
	body := title + "\n\n" + a.addForm.View()
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, body,
		lipgloss.WithWhitespaceBackground(t.Background))
}
