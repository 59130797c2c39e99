package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Default config file path.
const DefaultConfigPath = "~/.config/historygrab/config.yaml"

// Config holds all historygrab configuration.
type Config struct {
	Output     OutputConfig     `yaml:"output" toml:"output"`
	Timestamps TimestampsConfig `yaml:"timestamps" toml:"timestamps"`
	SQLite     SQLiteConfig     `yaml:"sqlite" toml:"sqlite"`
	Browsers   BrowsersConfig   `yaml:"browsers" toml:"browsers"`
	Filter     FilterConfig     `yaml:"filter" toml:"filter"`
	Kill       KillConfig       `yaml:"kill" toml:"kill"`
	Logging    LoggingConfig    `yaml:"logging" toml:"logging"`
}

type OutputConfig struct {
	Dir      string `yaml:"dir" toml:"dir"`
	Timezone string `yaml:"timezone" toml:"timezone"`
}

// TimestampsConfig decides what happens to a row whose timestamp does not
// map to a representable instant.
type TimestampsConfig struct {
	OnInvalid string `yaml:"on_invalid" toml:"on_invalid"`
}

type SQLiteConfig struct {
	Driver string `yaml:"driver" toml:"driver"`
}

type BrowsersConfig struct {
	Enabled []string          `yaml:"enabled" toml:"enabled"`
	Paths   map[string]string `yaml:"paths" toml:"paths"`
}

type FilterConfig struct {
	DenylistDomains    []string `yaml:"denylist_domains" toml:"denylist_domains"`
	UseDefaultDenylist bool     `yaml:"use_default_denylist" toml:"use_default_denylist"`
}

type KillConfig struct {
	Confirm bool `yaml:"confirm" toml:"confirm"`
}

type LoggingConfig struct {
	Level string `yaml:"level" toml:"level"`
}

// Invalid timestamp policies.
const (
	OnInvalidFail = "fail"
	OnInvalidFlag = "flag"
)

// Load reads a YAML or TOML config file at path and merges it with defaults.
// Files ending in .toml are decoded as TOML, everything else as YAML.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads the config from the default path, falling back to
// defaults when no file exists there.
func LoadOrDefault() (*Config, error) {
	path, err := expandPath(DefaultConfigPath)
	if err != nil {
		return nil, err
	}
	return LoadOrDefaultAt(path)
}

// LoadOrDefaultAt loads the config at path, or returns defaults if the file
// does not exist. Nothing is written to disk.
func LoadOrDefaultAt(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := cfg.finish(); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return Load(path)
}

// Location returns the zone timestamps are rendered in.
func (c *Config) Location() (*time.Location, error) {
	switch strings.ToLower(c.Output.Timezone) {
	case "", "local":
		return time.Local, nil
	case "utc":
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Output.Timezone)
	if err != nil {
		return nil, fmt.Errorf("output.timezone: %w", err)
	}
	return loc, nil
}

// Validate checks enumerated values.
func (c *Config) Validate() error {
	switch c.Timestamps.OnInvalid {
	case OnInvalidFail, OnInvalidFlag:
	default:
		return fmt.Errorf("timestamps.on_invalid: must be %q or %q, got %q", OnInvalidFail, OnInvalidFlag, c.Timestamps.OnInvalid)
	}

	switch c.SQLite.Driver {
	case "sqlite3", "sqlite":
	default:
		return fmt.Errorf("sqlite.driver: must be \"sqlite3\" or \"sqlite\", got %q", c.SQLite.Driver)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unknown level %q", c.Logging.Level)
	}

	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Denylist returns the configured domains plus the defaults when enabled.
func (c *Config) Denylist() []string {
	domains := append([]string{}, c.Filter.DenylistDomains...)
	if c.Filter.UseDefaultDenylist {
		domains = append(domains, DefaultDenylistDomains()...)
	}
	return domains
}

// finish expands ~ in paths and validates.
func (c *Config) finish() error {
	var err error
	if c.Output.Dir, err = expandPath(c.Output.Dir); err != nil {
		return err
	}
	for id, p := range c.Browsers.Paths {
		if c.Browsers.Paths[id], err = expandPath(p); err != nil {
			return err
		}
	}
	return c.Validate()
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) (string, error) {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}
