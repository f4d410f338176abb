package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

const appDir = "transellia-admin"

var (
	ErrInvalidBaseURL = errors.New("base URL must be an absolute http(s) URL")
	ErrInvalidTimeout = errors.New("request timeout must be positive")
	ErrInvalidRate    = errors.New("rate limit must not be negative")
)

// Config holds runtime settings for the admin console.
type Config struct {
	BaseURL        string
	APIKey         string
	DatabasePath   string
	KeyFile        string
	RequestTimeout time.Duration
	RateLimit      float64
	LogLevel       string
	LogBackend     string
}

// userConfigDir is swapped in tests.
var userConfigDir = os.UserConfigDir

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	dir, err := userConfigDir()
	if err != nil {
		dir = "."
	}
	dir = filepath.Join(dir, appDir)

	c.BaseURL = "http://localhost:3000"
	c.APIKey = ""
	c.DatabasePath = filepath.Join(dir, "session.db")
	c.KeyFile = filepath.Join(dir, "session.key")
	c.RequestTimeout = 15 * time.Second
	c.RateLimit = 0
	c.LogLevel = "info"
	c.LogBackend = "slog"
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidBaseURL, c.BaseURL)
	}
	if c.RequestTimeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.RateLimit < 0 {
		return ErrInvalidRate
	}
	return nil
}

// LoadConfig builds a Config from defaults, the environment, an optional JSON
// file and args (usually os.Args[1:]), in that order.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	if err := parseJSON(cfg, args); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
