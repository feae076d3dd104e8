package config

import "github.com/caarlos0/env/v11"

// EnvPrefix is prepended to every variable name, e.g. CATERING_API_BASE_URL.
const EnvPrefix = "CATERING_"

// parseEnv overlays Config with CATERING_* environment variables. Unset
// variables leave the current value alone. It panics on malformed values.
func parseEnv(cfg *Config) {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		panic(err)
	}
}
