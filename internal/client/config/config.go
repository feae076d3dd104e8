package config

import (
	"fmt"
	"os"
	"time"
)

const (
	SessionBackendSQLite = "sqlite"
	SessionBackendRedis  = "redis"
)

// Config holds runtime settings for the catering CLI.
//
// Fields:
//   - APIBaseURL: root of the catering REST API.
//   - RequestTimeout: deadline applied to each API request.
//   - DBPath: local SQLite file holding client metadata.
//   - SessionBackend: where the session record lives, "sqlite" or "redis".
//   - RedisAddr, RedisKeyPrefix: Redis location when SessionBackend is "redis".
//   - DeviceID, DeviceOS, AppVersion, BuildNumber, Lang: identification
//     headers sent with every request. An empty DeviceID is generated once
//     and stored locally.
//   - CurrencySymbol: prefix used when printing amounts.
//   - LogLevel, LogBackend: logger settings.
type Config struct {
	APIBaseURL     string        `env:"API_BASE_URL"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
	DBPath         string        `env:"DB_PATH"`
	SessionBackend string        `env:"SESSION_BACKEND"`
	RedisAddr      string        `env:"REDIS_ADDR"`
	RedisKeyPrefix string        `env:"REDIS_KEY_PREFIX"`
	DeviceID       string        `env:"DEVICE_ID"`
	DeviceOS       string        `env:"DEVICE_OS"`
	AppVersion     string        `env:"APP_VERSION"`
	BuildNumber    string        `env:"BUILD_NUMBER"`
	Lang           string        `env:"LANG_CODE"`
	CurrencySymbol string        `env:"CURRENCY_SYMBOL"`
	LogLevel       string        `env:"LOG_LEVEL"`
	LogBackend     string        `env:"LOG_BACKEND"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "https://cateringplusapi.ex-pansion.net/api"
	c.RequestTimeout = 15 * time.Second
	c.DBPath = "catering.db"
	c.SessionBackend = SessionBackendSQLite
	c.RedisAddr = "127.0.0.1:6379"
	c.RedisKeyPrefix = "catering:"
	c.DeviceID = ""
	c.DeviceOS = "iOS"
	c.AppVersion = "1.0.0"
	c.BuildNumber = "1"
	c.Lang = "en"
	c.CurrencySymbol = "$"
	c.LogLevel = "warn"
	c.LogBackend = "slog"
}

// Validate rejects settings the client cannot start with.
func (c *Config) Validate() error {
	switch c.SessionBackend {
	case SessionBackendSQLite:
	case SessionBackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("session backend %q requires redis_addr", c.SessionBackend)
		}
	default:
		return fmt.Errorf("unknown session backend %q", c.SessionBackend)
	}
	if c.APIBaseURL == "" {
		return fmt.Errorf("api_base_url must not be empty")
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout must not be negative")
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	return load(os.Args[1:])
}

func load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseEnv(cfg)
	parseFlags(cfg, args)
	return cfg
}
