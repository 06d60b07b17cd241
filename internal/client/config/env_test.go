package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_parseEnv(t *testing.T) {
	t.Run("overrides from environment", func(t *testing.T) {
		t.Setenv(EnvAPIBaseURL, "http://env.example:8080")
		t.Setenv(EnvInactivityTimeout, "2m30s")
		t.Setenv(EnvStateDBPath, "/var/lib/agroscan/state.db")

		cfg := &Config{}
		cfg.LoadDefaults()
		parseEnv(cfg)

		assert.Equal(t, "http://env.example:8080", cfg.APIBaseURL)
		assert.Equal(t, 2*time.Minute+30*time.Second, cfg.InactivityTimeout)
		assert.Equal(t, "/var/lib/agroscan/state.db", cfg.StateDBPath)
	})

	t.Run("invalid duration is ignored", func(t *testing.T) {
		t.Setenv(EnvInactivityTimeout, "not-a-duration")

		cfg := &Config{}
		cfg.LoadDefaults()
		parseEnv(cfg)

		assert.Equal(t, 5*time.Minute, cfg.InactivityTimeout)
	})
}
