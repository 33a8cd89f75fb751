package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_MissingReturnsDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestSaveAndLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg", "config.toml")
	cfg := DefaultConfig()
	cfg.General.Store = StoreMemory
	cfg.Budget.DaysRemaining = 12
	cfg.Appearance.Theme = "tokyo-night"

	require.NoError(t, SaveFile(path, cfg))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLoadFile_ParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[general\nstore = "), 0o600))

	_, err := LoadFile(path)
	assert.ErrorContains(t, err, "parsing config")
}

func TestLoad_UsesXDGAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv(EnvStore, "")
	t.Setenv(EnvDataDir, "")
	t.Setenv(EnvTheme, "")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvDays, "9")

	cfg := DefaultConfig()
	cfg.Appearance.Theme = "terminal"
	require.NoError(t, Save(cfg))
	assert.True(t, Exists())

	got, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "terminal", got.Appearance.Theme)
	assert.Equal(t, "debug", got.Log.Level)
	assert.Equal(t, 9, got.Budget.DaysRemaining)
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("BUDGETBUDDY_STORE=memory\n"), 0o600))
	t.Setenv(EnvStore, "")
	require.NoError(t, os.Unsetenv(EnvStore))

	require.NoError(t, LoadDotEnv(path))
	cfg := DefaultConfig()
	ApplyEnv(&cfg)
	assert.Equal(t, StoreMemory, cfg.General.Store)

	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	cfg := DefaultConfig()
	cfg.General.Store = "postgres"
	cfg.Budget.DaysRemaining = 40
	cfg.Log.Level = "loud"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid store "postgres"`)
	assert.Contains(t, err.Error(), "invalid days_remaining 40")
	assert.Contains(t, err.Error(), `invalid log level "loud"`)
}
