package store

import (
	"os"
	"path/filepath"
)

// DataDir returns the XDG-compliant data directory.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "budgetbuddy")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "budgetbuddy")
}

// DBPath returns the ledger database path inside dir, or inside DataDir when
// dir is empty.
func DBPath(dir string) string {
	if dir == "" {
		dir = DataDir()
	}
	return filepath.Join(dir, "ledger.db")
}
