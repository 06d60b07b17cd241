// Package config loads runtime settings for the AgroScan CLI from layered
// sources: built-in defaults, environment variables (optionally via a .env
// file), a JSON config file, and command-line flags. Later sources take
// precedence over earlier ones.
package config

import "time"

// Config holds runtime settings for the AgroScan CLI.
type Config struct {
	// APIBaseURL is the root URL of the classification backend.
	APIBaseURL string

	// InactivityTimeout is the idle duration after which an active session
	// is force-terminated.
	InactivityTimeout time.Duration

	// AlertTTL is how long a transient notice stays visible.
	AlertTTL time.Duration

	// HTTPTimeout bounds every request to the backend.
	HTTPTimeout time.Duration

	// StateDBPath is the sqlite file holding persisted session state.
	StateDBPath string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8000"
	c.InactivityTimeout = 5 * time.Minute
	c.AlertTTL = 5 * time.Second
	c.HTTPTimeout = 30 * time.Second
	c.StateDBPath = "agroscan.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment, JSON (if present), and command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
