package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8000", c.APIBaseURL)
	assert.Equal(t, 5*time.Minute, c.InactivityTimeout)
	assert.Equal(t, 5*time.Second, c.AlertTTL)
	assert.Equal(t, 30*time.Second, c.HTTPTimeout)
	assert.Equal(t, "agroscan.db", c.StateDBPath)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "http://127.0.0.1:8000", cfg.APIBaseURL)
	assert.Equal(t, 5*time.Minute, cfg.InactivityTimeout)
}
