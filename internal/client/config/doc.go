// Package config loads runtime configuration for the catering CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables prefixed with CATERING_ (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string            api base url
//	-t duration          per-request timeout
//	-d string            local SQLite database path
//	-s string            session backend: sqlite or redis
//	-r string            redis address
//	-device string       device id
//	-lang string         language code
//	-log-level string    log level
//	-log-backend string  slog or zap
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so values can be either
// strings like "15s" or integer nanoseconds. Keys left out keep their
// previous value:
//
//	{
//	  "api_base_url": "https://cateringplusapi.ex-pansion.net/api",
//	  "request_timeout": "15s",
//	  "db_path": "catering.db",
//	  "session_backend": "redis",
//	  "redis_addr": "127.0.0.1:6379",
//	  "log_level": "debug",
//	  "log_backend": "zap"
//	}
//
// # Environment
//
// Every field has a variable: CATERING_API_BASE_URL, CATERING_REQUEST_TIMEOUT,
// CATERING_DB_PATH, CATERING_SESSION_BACKEND, CATERING_REDIS_ADDR,
// CATERING_REDIS_KEY_PREFIX, CATERING_DEVICE_ID, CATERING_DEVICE_OS,
// CATERING_APP_VERSION, CATERING_BUILD_NUMBER, CATERING_LANG_CODE,
// CATERING_CURRENCY_SYMBOL, CATERING_LOG_LEVEL, CATERING_LOG_BACKEND.
//
// Primary API
//
//   - type Config                     — all runtime settings
//   - func LoadConfig() *Config       — defaults, JSON, env, then flags
//   - func (*Config) LoadDefaults()   — sets sensible defaults
//   - func (*Config) Validate() error — rejects unusable combinations
package config
