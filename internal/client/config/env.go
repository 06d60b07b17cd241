package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvAPIBaseURL        = "AGROSCAN_API_URL"
	EnvInactivityTimeout = "AGROSCAN_INACTIVITY_TIMEOUT"
	EnvStateDBPath       = "AGROSCAN_STATE_DB"
)

// parseEnv overlays Config with values from the process environment. A .env
// file in the working directory is loaded first when present; it never
// overrides variables already set in the environment.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv(EnvAPIBaseURL); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv(EnvInactivityTimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.InactivityTimeout = d
		}
	}
	if v := os.Getenv(EnvStateDBPath); v != "" {
		cfg.StateDBPath = v
	}
}
