package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "https://cateringplusapi.ex-pansion.net/api", c.APIBaseURL)
	assert.Equal(t, 15*time.Second, c.RequestTimeout)
	assert.Equal(t, SessionBackendSQLite, c.SessionBackend)
	assert.Equal(t, "iOS", c.DeviceOS)
	assert.Equal(t, "1.0.0", c.AppVersion)
	assert.Equal(t, "1", c.BuildNumber)
	assert.Equal(t, "en", c.Lang)
	assert.Empty(t, c.DeviceID)
	require.NoError(t, c.Validate())
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "catering.db", cfg.DBPath)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
}

func TestLoad_Precedence(t *testing.T) {
	path := writeTempJSON(t, "", "", map[string]any{
		"api_base_url":    "https://json.example/api",
		"request_timeout": "3s",
		"db_path":         "json.db",
		"lang":            "de",
	})
	t.Setenv("CATERING_DB_PATH", "env.db")
	t.Setenv("CATERING_LANG_CODE", "fr")

	cfg := load([]string{"-c", path, "-lang", "lv"})

	assert.Equal(t, "https://json.example/api", cfg.APIBaseURL, "json over defaults")
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "env.db", cfg.DBPath, "env over json")
	assert.Equal(t, "lv", cfg.Lang, "flags over env")
	assert.Equal(t, "iOS", cfg.DeviceOS, "untouched default")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "redis with addr", mutate: func(c *Config) { c.SessionBackend = SessionBackendRedis }},
		{name: "redis without addr", mutate: func(c *Config) {
			c.SessionBackend = SessionBackendRedis
			c.RedisAddr = ""
		}, wantErr: true},
		{name: "unknown backend", mutate: func(c *Config) { c.SessionBackend = "etcd" }, wantErr: true},
		{name: "empty url", mutate: func(c *Config) { c.APIBaseURL = "" }, wantErr: true},
		{name: "negative timeout", mutate: func(c *Config) { c.RequestTimeout = -time.Second }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Config
			c.LoadDefaults()
			tt.mutate(&c)
			if tt.wantErr {
				assert.Error(t, c.Validate())
			} else {
				assert.NoError(t, c.Validate())
			}
		})
	}
}

func TestLoad_MissingJSONFilePanics(t *testing.T) {
	require.Panics(t, func() { load([]string{"-config", filepath.Join(t.TempDir(), "nope.json")}) })
}
