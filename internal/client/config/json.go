package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/cateringplus/internal/flagx"
	"github.com/dmitrijs2005/cateringplus/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from "empty", so a file may set only a few
// keys. RequestTimeout accepts "15s" or integer nanoseconds.
type JsonConfig struct {
	APIBaseURL     *string         `json:"api_base_url"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	DBPath         *string         `json:"db_path"`
	SessionBackend *string         `json:"session_backend"`
	RedisAddr      *string         `json:"redis_addr"`
	RedisKeyPrefix *string         `json:"redis_key_prefix"`
	DeviceID       *string         `json:"device_id"`
	DeviceOS       *string         `json:"device_os"`
	AppVersion     *string         `json:"app_version"`
	BuildNumber    *string         `json:"build_number"`
	Lang           *string         `json:"lang"`
	CurrencySymbol *string         `json:"currency_symbol"`
	LogLevel       *string         `json:"log_level"`
	LogBackend     *string         `json:"log_backend"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Without either flag it does nothing. It panics on read or
// unmarshal errors.
func parseJson(cfg *Config, args []string) {
	jsonConfigFile := flagx.JsonConfigFlags(args)
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

	setString(&cfg.APIBaseURL, jc.APIBaseURL)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	setString(&cfg.DBPath, jc.DBPath)
	setString(&cfg.SessionBackend, jc.SessionBackend)
	setString(&cfg.RedisAddr, jc.RedisAddr)
	setString(&cfg.RedisKeyPrefix, jc.RedisKeyPrefix)
	setString(&cfg.DeviceID, jc.DeviceID)
	setString(&cfg.DeviceOS, jc.DeviceOS)
	setString(&cfg.AppVersion, jc.AppVersion)
	setString(&cfg.BuildNumber, jc.BuildNumber)
	setString(&cfg.Lang, jc.Lang)
	setString(&cfg.CurrencySymbol, jc.CurrencySymbol)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogBackend, jc.LogBackend)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
