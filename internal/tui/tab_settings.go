package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/budgetbuddy/internal/cli"
	"github.com/theirongolddev/budgetbuddy/internal/config"
	"github.com/theirongolddev/budgetbuddy/internal/logging"
	"github.com/theirongolddev/budgetbuddy/internal/store"
	"github.com/theirongolddev/budgetbuddy/internal/tui/components"
	"github.com/theirongolddev/budgetbuddy/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	settingsFieldTheme = iota
	settingsFieldDays
	settingsFieldLogLevel
	settingsFieldStore
	settingsFieldCount // sentinel
)

var settingsFieldNames = [settingsFieldCount]string{"theme", "days_remaining", "log_level", "store"}

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saved   bool  // flash "saved" message
	saveErr error // non-nil if the last save failed
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 64
	ti.Width = 40
	return ti
}

func (a App) updateSettingsKey(key string) (App, tea.Cmd, bool) {
	switch key {
	case "j", "down":
		if a.settings.cursor < settingsFieldCount-1 {
			a.settings.cursor++
		}
		return a, nil, true
	case "k", "up":
		if a.settings.cursor > 0 {
			a.settings.cursor--
		}
		return a, nil, true
	case "enter":
		var cmd tea.Cmd
		a, cmd = a.settingsStartEdit()
		return a, cmd, true
	}
	return a, nil, false
}

func (a App) settingsStartEdit() (App, tea.Cmd) {
	a.settings.editing = true
	a.settings.saved = false
	a.settings.saveErr = nil

	ti := newSettingsInput()
	switch a.settings.cursor {
	case settingsFieldTheme:
		ti.Placeholder = strings.Join(theme.Names(), ", ")
		ti.SetValue(a.cfg.Appearance.Theme)
	case settingsFieldDays:
		ti.Placeholder = "0 = rest of the month, max 31"
		ti.SetValue(strconv.Itoa(a.cfg.Budget.DaysRemaining))
	case settingsFieldLogLevel:
		ti.Placeholder = "debug, info, warn, error"
		ti.SetValue(a.cfg.Log.Level)
	case settingsFieldStore:
		ti.Placeholder = config.StoreSQLite + " or " + config.StoreMemory
		ti.SetValue(a.cfg.General.Store)
	}

	ti.Focus()
	a.settings.input = ti
	return a, ti.Cursor.BlinkCmd()
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.settingsSave()
		a.settings.editing = false
		a.settings.saved = a.settings.saveErr == nil
		return a, nil
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

// settingsSave applies the edited field to a copy of the config, validates
// it and saves. The running app only adopts the change once saved.
func (a *App) settingsSave() {
	cfg := a.cfg
	val := strings.TrimSpace(a.settings.input.Value())

	switch a.settings.cursor {
	case settingsFieldTheme:
		if theme.ByName(val).Name != val {
			a.settings.saveErr = fmt.Errorf("unknown theme %q", val)
			return
		}
		cfg.Appearance.Theme = val
	case settingsFieldDays:
		d, err := strconv.Atoi(val)
		if err != nil {
			a.settings.saveErr = fmt.Errorf("days must be a whole number: %q", val)
			return
		}
		cfg.Budget.DaysRemaining = d
	case settingsFieldLogLevel:
		cfg.Log.Level = strings.ToLower(val)
	case settingsFieldStore:
		cfg.General.Store = strings.ToLower(val)
	}

	if err := cfg.Validate(); err != nil {
		a.settings.saveErr = err
		return
	}
	if err := a.saveConfig(cfg); err != nil {
		a.settings.saveErr = err
		a.log.Warn("saving config", "error", err)
		return
	}

	a.settings.saveErr = nil
	a.cfg = cfg
	theme.SetActive(cfg.Appearance.Theme)
	if a.settings.cursor == settingsFieldDays {
		a.afford.days.SetValue(strconv.Itoa(a.defaultDays()))
	}
	a.log.Info("config saved", "field", settingsFieldNames[a.settings.cursor], "value", val)
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active
	cfg := a.cfg

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)

	days := strconv.Itoa(cfg.Budget.DaysRemaining)
	if cfg.Budget.DaysRemaining == 0 {
		days = fmt.Sprintf("rest of month (%s)", cli.FormatDays(a.defaultDays()))
	}

	fields := []struct{ label, value string }{
		{"Theme", cfg.Appearance.Theme},
		{"Days Remaining", days},
		{"Log Level", cfg.Log.Level},
		{"Store", cfg.General.Store + " (next launch)"},
	}

	innerW := components.CardInnerWidth(cw)
	var form strings.Builder
	for i, f := range fields {
		if a.settings.editing && i == a.settings.cursor {
			form.WriteString(markerStyle.Render("▸ "))
			form.WriteString(accentStyle.Render(fmt.Sprintf("%-18s ", f.label)))
			form.WriteString(a.settings.input.View())
			form.WriteString("\n")
			continue
		}

		if i == a.settings.cursor {
			marker := markerStyle.Render("▸ ")
			label := selectedLabelStyle.Render(fmt.Sprintf("%-18s ", f.label+":"))
			value := selectedStyle.Render(f.value)
			form.WriteString(marker + label + value)
			if pad := innerW - lipgloss.Width(marker+label+value); pad > 0 {
				form.WriteString(lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", pad)))
			}
		} else {
			form.WriteString(labelStyle.Render("  "))
			form.WriteString(labelStyle.Render(fmt.Sprintf("%-18s ", f.label+":")))
			form.WriteString(valueStyle.Render(f.value))
		}
		form.WriteString("\n")
	}

	if a.settings.saveErr != nil {
		warnStyle := lipgloss.NewStyle().Foreground(t.Warning).Background(t.Surface)
		form.WriteString("\n")
		form.WriteString(warnStyle.Render(fmt.Sprintf("Not saved: %s", a.settings.saveErr)))
	} else if a.settings.saved {
		form.WriteString("\n")
		form.WriteString(lipgloss.NewStyle().Foreground(t.Income).Background(t.Surface).Render("Saved!"))
	}
	form.WriteString("\n")
	form.WriteString(labelStyle.Render("[j/k] navigate  [Enter] edit  [Esc] cancel"))

	var info strings.Builder
	info.WriteString(labelStyle.Render("Config file:   ") + valueStyle.Render(config.ConfigPath()) + "\n")
	info.WriteString(labelStyle.Render("Data dir:      ") + valueStyle.Render(a.dataDir()) + "\n")
	info.WriteString(labelStyle.Render("Log file:      ") + valueStyle.Render(logging.LogPath()) + "\n")
	info.WriteString(labelStyle.Render("Transactions:  ") + valueStyle.Render(cli.FormatNumber(int64(len(a.state.Transactions)))))

	var b strings.Builder
	b.WriteString(components.ContentCard("Settings", form.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("General", info.String(), cw))
	return b.String()
}

func (a App) dataDir() string {
	if a.cfg.General.Store == config.StoreMemory {
		return "(in memory)"
	}
	if a.cfg.General.DataDir != "" {
		return a.cfg.General.DataDir
	}
	return store.DataDir()
}
