package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/agroscanai/agroscan-cli/internal/flagx"
	"github.com/agroscanai/agroscan-cli/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "5m"
// or as integer nanoseconds.
type JsonConfig struct {
	APIBaseURL        string         `json:"api_base_url"`
	InactivityTimeout timex.Duration `json:"inactivity_timeout"`
	AlertTTL          timex.Duration `json:"alert_ttl"`
	HTTPTimeout       timex.Duration `json:"http_timeout"`
	StateDBPath       string         `json:"state_db_path"`
}

// parseJson overlays Config with values loaded from a JSON file. The file
// path comes from the -c/-config flags; when absent, no JSON is loaded.
// Read or unmarshal errors panic (the config is unusable at that point).
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.InactivityTimeout.Duration != 0 {
		cfg.InactivityTimeout = time.Duration(jc.InactivityTimeout.Duration)
	}
	if jc.AlertTTL.Duration != 0 {
		cfg.AlertTTL = time.Duration(jc.AlertTTL.Duration)
	}
	if jc.HTTPTimeout.Duration != 0 {
		cfg.HTTPTimeout = time.Duration(jc.HTTPTimeout.Duration)
	}
	if jc.StateDBPath != "" {
		cfg.StateDBPath = jc.StateDBPath
	}
}
