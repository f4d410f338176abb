// Package config loads runtime configuration for the admin console.
//
// Sources & precedence (later wins)
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, after loading an optional .env file from the
//     working directory.
//  3. Optional JSON file selected via -c or -config.
//  4. Command-line flags.
//
// # Environment
//
//	API_BASE_URL         backend base URL
//	API_KEY              value sent as x-api-key
//	ADMIN_DB_PATH        local SQLite file holding the session snapshot
//	ADMIN_KEY_FILE       key file used to seal the snapshot
//	API_TIMEOUT_SECONDS  per-request timeout
//	API_RATE_LIMIT       max requests per second, 0 for unlimited
//	LOG_LEVEL            debug, info, warn or error
//	LOG_BACKEND          slog or zap
//
// # JSON schema
//
// Durations use timex.Duration, so "15s" and integer nanoseconds both work:
//
//	{
//	  "base_url": "https://api.transellia.id",
//	  "api_key": "secret",
//	  "database_path": "/var/lib/admin/session.db",
//	  "key_file": "/var/lib/admin/session.key",
//	  "request_timeout": "15s",
//	  "rate_limit": 5,
//	  "log_level": "info",
//	  "log_backend": "zap"
//	}
//
// # Flags
//
//	-a string   backend base URL
//	-k string   API key
//	-d string   session database path
//	-t int      request timeout (seconds)
//	-r float    rate limit (requests per second)
//	-l string   log level
package config
