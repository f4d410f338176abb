package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// dotenvFile is read if present; variables already set in the process win.
var dotenvFile = ".env"

func parseEnv(cfg *Config) error {
	if err := godotenv.Load(dotenvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	setString(&cfg.BaseURL, "API_BASE_URL")
	setString(&cfg.APIKey, "API_KEY")
	setString(&cfg.DatabasePath, "ADMIN_DB_PATH")
	setString(&cfg.KeyFile, "ADMIN_KEY_FILE")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.LogBackend, "LOG_BACKEND")

	if v, ok := os.LookupEnv("API_TIMEOUT_SECONDS"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		cfg.RequestTimeout = time.Duration(n) * time.Second
	}
	if v, ok := os.LookupEnv("API_RATE_LIMIT"); ok && v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		cfg.RateLimit = f
	}
	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}
