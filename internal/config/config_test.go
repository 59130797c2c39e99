package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, ".", cfg.Output.Dir)
	assert.Equal(t, "local", cfg.Output.Timezone)
	assert.Equal(t, OnInvalidFail, cfg.Timestamps.OnInvalid)
	assert.Equal(t, "sqlite3", cfg.SQLite.Driver)
	assert.Empty(t, cfg.Browsers.Enabled)
	assert.Empty(t, cfg.Browsers.Paths)
	assert.False(t, cfg.Filter.UseDefaultDenylist)
	assert.True(t, cfg.Kill.Confirm)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.NoError(t, cfg.Validate())
}

func TestDefaultDenylistIsPopulated(t *testing.T) {
	domains := DefaultDenylistDomains()
	assert.Greater(t, len(domains), 10)
	assert.Contains(t, domains, "chase.com")
	assert.Contains(t, domains, "1password.com")
	assert.Contains(t, domains, "mychart.com")
}

func TestLoadValidYAMLOverridesDefaults(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
output:
  dir: "/tmp/reports"
  timezone: "utc"
timestamps:
  on_invalid: "flag"
sqlite:
  driver: "sqlite"
browsers:
  enabled: ["chrome", "firefox"]
  paths:
    chrome: "/mnt/evidence/History"
logging:
  level: "debug"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/reports", cfg.Output.Dir)
	assert.Equal(t, "utc", cfg.Output.Timezone)
	assert.Equal(t, OnInvalidFlag, cfg.Timestamps.OnInvalid)
	assert.Equal(t, "sqlite", cfg.SQLite.Driver)
	assert.Equal(t, []string{"chrome", "firefox"}, cfg.Browsers.Enabled)
	assert.Equal(t, "/mnt/evidence/History", cfg.Browsers.Paths["chrome"])
	assert.Equal(t, "debug", cfg.Logging.Level)

	// Non-overridden values remain defaults
	assert.True(t, cfg.Kill.Confirm)
	assert.False(t, cfg.Filter.UseDefaultDenylist)
}

func TestLoadTOML(t *testing.T) {
	path := writeConfig(t, "config.toml", `
[output]
timezone = "UTC"

[filter]
denylist_domains = ["example.com"]
use_default_denylist = true

[kill]
confirm = false
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "UTC", cfg.Output.Timezone)
	assert.False(t, cfg.Kill.Confirm)
	assert.Equal(t, ".", cfg.Output.Dir)

	deny := cfg.Denylist()
	assert.Equal(t, "example.com", deny[0])
	assert.Contains(t, deny, "paypal.com")

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestLoadInvalidYAMLReturnsError(t *testing.T) {
	path := writeConfig(t, "config.yaml", ":::not valid yaml{{{")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadNonExistentFileReturnsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing", "config.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsUnknownValues(t *testing.T) {
	tests := map[string]string{
		"policy":   "timestamps:\n  on_invalid: clamp\n",
		"driver":   "sqlite:\n  driver: postgres\n",
		"level":    "logging:\n  level: chatty\n",
		"timezone": "output:\n  timezone: Mars/Olympus_Mons\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, "config.yaml", content))
			assert.Error(t, err)
		})
	}
}

func TestLoadOrDefaultAtReturnsDefaultsWithoutWriting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	cfg, err := LoadOrDefaultAt(path)
	require.NoError(t, err)
	assert.Equal(t, OnInvalidFail, cfg.Timestamps.OnInvalid)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestLoadOrDefaultAtLoadsExistingFile(t *testing.T) {
	path := writeConfig(t, "config.yaml", "output:\n  dir: out\n")

	cfg, err := LoadOrDefaultAt(path)
	require.NoError(t, err)
	assert.Equal(t, "out", cfg.Output.Dir)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	path := writeConfig(t, "config.yaml", "output:\n  dir: ~/reports\nbrowsers:\n  paths:\n    firefox: ~/profiles\n")
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "reports"), cfg.Output.Dir)
	assert.Equal(t, filepath.Join(home, "profiles"), cfg.Browsers.Paths["firefox"])
}

func TestLocation(t *testing.T) {
	cfg := DefaultConfig()
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	cfg.Output.Timezone = "Europe/Berlin"
	loc, err = cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", loc.String())
}
