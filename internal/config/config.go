// Package config loads and saves budgetbuddy settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Store backends.
const (
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

// Environment variables that override the config file.
const (
	EnvStore    = "BUDGETBUDDY_STORE"
	EnvDataDir  = "BUDGETBUDDY_DATA_DIR"
	EnvTheme    = "BUDGETBUDDY_THEME"
	EnvLogLevel = "BUDGETBUDDY_LOG_LEVEL"
	EnvDays     = "BUDGETBUDDY_DAYS_REMAINING"
)

// Config holds all budgetbuddy configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Budget     BudgetConfig     `toml:"budget"`
	Appearance AppearanceConfig `toml:"appearance"`
	Log        LogConfig        `toml:"log"`
}

// GeneralConfig selects where ledger state lives.
type GeneralConfig struct {
	Store   string `toml:"store"`
	DataDir string `toml:"data_dir,omitempty"`
}

// BudgetConfig holds projection defaults.
type BudgetConfig struct {
	// DaysRemaining is the default planning horizon. 0 means the days left
	// in the current month.
	DaysRemaining int `toml:"days_remaining"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Store: StoreSQLite,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "budgetbuddy")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "budgetbuddy")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist, then
// applies .env and environment overrides.
func Load() (Config, error) {
	cfg, err := LoadFile(ConfigPath())
	if err != nil {
		return cfg, err
	}
	if err := LoadDotEnv(".env"); err != nil {
		return cfg, err
	}
	ApplyEnv(&cfg)
	return cfg, nil
}

// LoadFile reads a single TOML file over the defaults.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// LoadDotEnv loads variables from path into the environment without
// overriding ones already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides cfg fields from BUDGETBUDDY_* environment variables.
func ApplyEnv(cfg *Config) {
	if v := os.Getenv(EnvStore); v != "" {
		cfg.General.Store = v
	}
	if v := os.Getenv(EnvDataDir); v != "" {
		cfg.General.DataDir = v
	}
	if v := os.Getenv(EnvTheme); v != "" {
		cfg.Appearance.Theme = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv(EnvDays); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Budget.DaysRemaining = n
		}
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var problems []string

	switch c.General.Store {
	case StoreSQLite, StoreMemory:
	default:
		problems = append(problems, fmt.Sprintf("invalid store %q: must be %q or %q", c.General.Store, StoreSQLite, StoreMemory))
	}

	if c.Budget.DaysRemaining < 0 || c.Budget.DaysRemaining > 31 {
		problems = append(problems, fmt.Sprintf("invalid days_remaining %d: must be between 0 and 31", c.Budget.DaysRemaining))
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("invalid log level %q: must be debug, info, warn or error", c.Log.Level))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	return SaveFile(ConfigPath(), cfg)
}

// SaveFile writes cfg as TOML to path.
func SaveFile(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
