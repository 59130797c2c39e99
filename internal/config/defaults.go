package config

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Dir:      ".",
			Timezone: "local",
		},
		Timestamps: TimestampsConfig{
			OnInvalid: OnInvalidFail,
		},
		SQLite: SQLiteConfig{
			Driver: "sqlite3",
		},
		Browsers: BrowsersConfig{
			Enabled: []string{},
			Paths:   map[string]string{},
		},
		Filter: FilterConfig{
			DenylistDomains:    []string{},
			UseDefaultDenylist: false,
		},
		Kill: KillConfig{
			Confirm: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
