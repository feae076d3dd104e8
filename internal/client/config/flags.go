package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/cateringplus/internal/flagx"
)

var knownFlags = []string{"-a", "-t", "-d", "-s", "-r", "-device", "-lang", "-log-level", "-log-backend"}

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string            api base url
//	-t duration          per-request timeout, e.g. 10s
//	-d string            path of the local SQLite database
//	-s string            session backend: sqlite or redis
//	-r string            redis address host:port
//	-device string       device id sent in the deviceId header
//	-lang string         language code sent with requests
//	-log-level string    debug, info, warn or error
//	-log-backend string  slog or zap
//
// Args are filtered with flagx.FilterArgs first so flags owned by other
// loaders (-c/-config) do not break parsing. It panics on a malformed value.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, knownFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "api base url")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "per-request timeout")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "path of the local database")
	fs.StringVar(&cfg.SessionBackend, "s", cfg.SessionBackend, "session backend (sqlite|redis)")
	fs.StringVar(&cfg.RedisAddr, "r", cfg.RedisAddr, "redis address")
	fs.StringVar(&cfg.DeviceID, "device", cfg.DeviceID, "device id")
	fs.StringVar(&cfg.Lang, "lang", cfg.Lang, "language code")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogBackend, "log-backend", cfg.LogBackend, "log backend (slog|zap)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
