package config

import (
	"encoding/json"
	"os"

	"github.com/transellia/admin-console/internal/flagx"
	"github.com/transellia/admin-console/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent fields
// leave the current value alone.
type JsonConfig struct {
	BaseURL        *string         `json:"base_url"`
	APIKey         *string         `json:"api_key"`
	DatabasePath   *string         `json:"database_path"`
	KeyFile        *string         `json:"key_file"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	RateLimit      *float64        `json:"rate_limit"`
	LogLevel       *string         `json:"log_level"`
	LogBackend     *string         `json:"log_backend"`
}

func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return err
	}

	overlay(&cfg.BaseURL, jc.BaseURL)
	overlay(&cfg.APIKey, jc.APIKey)
	overlay(&cfg.DatabasePath, jc.DatabasePath)
	overlay(&cfg.KeyFile, jc.KeyFile)
	overlay(&cfg.RateLimit, jc.RateLimit)
	overlay(&cfg.LogLevel, jc.LogLevel)
	overlay(&cfg.LogBackend, jc.LogBackend)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	return nil
}

func overlay[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
