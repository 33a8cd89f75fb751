// Package logging wraps log/slog with component-scoped loggers.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Component names.
const (
	ComponentApp    = "app"
	ComponentLedger = "ledger"
	ComponentStore  = "store"
	ComponentTUI    = "tui"
	ComponentCLI    = "cli"
)

// Logger is a slog.Logger tagged with a component name.
type Logger struct {
	*slog.Logger
	component string
	base      *slog.Logger // without the component attribute
}

// Config holds logger configuration.
type Config struct {
	Level     slog.Level
	Component string
	Output    io.Writer
}

// New creates a text logger writing to cfg.Output (stderr when nil).
func New(cfg Config) *Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	component := cfg.Component
	if component == "" {
		component = ComponentApp
	}
	base := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: cfg.Level}))
	return &Logger{
		Logger:    base.With("component", component),
		component: component,
		base:      base,
	}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return New(Config{Output: io.Discard})
}

// WithComponent returns a logger for another component. The new component
// replaces the current one rather than being added next to it.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		Logger:    l.base.With("component", component),
		component: component,
		base:      l.base,
	}
}

// Component returns the logger's component name.
func (l *Logger) Component() string {
	return l.component
}

// ParseLevel maps debug, info, warn or error to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelWarn, fmt.Errorf("unknown log level %q", s)
	}
	return lvl, nil
}

// StateDir returns the XDG-compliant state directory used for log files.
func StateDir() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "budgetbuddy")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "budgetbuddy")
}

// LogPath returns the log file path used by OpenFile.
func LogPath() string {
	return filepath.Join(StateDir(), "budgetbuddy.log")
}

// OpenFile opens (appending) the log file in StateDir.
func OpenFile() (*os.File, error) {
	if err := os.MkdirAll(StateDir(), 0o750); err != nil {
		return nil, fmt.Errorf("creating state dir: %w", err)
	}
	f, err := os.OpenFile(LogPath(), os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, nil
}
