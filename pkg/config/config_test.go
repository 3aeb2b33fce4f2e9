package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "georisk.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "static", cfg.Entitlement.Mode)
	assert.Equal(t, "memory", cfg.RouteCache.Backend)
	assert.Equal(t, 7*24*time.Hour, cfg.RouteCache.TTL)
	assert.Equal(t, "metric", cfg.Weather.Units)
	assert.NoError(t, Validate(cfg))
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9090"
sanctions:
  timeout: 2s
  concurrency: 8
weather:
  units: imperial
entitlement:
  tiers:
    user_pro: pro
    user_free: free
  default_tier: free
route_cache:
  backend: badger
  path: /var/lib/georisk/routes
  ttl: 48h
logging:
  level: debug
  json: true
telemetry:
  trace_exporter: stdout
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, Validate(cfg))

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 2*time.Second, cfg.Sanctions.Timeout)
	assert.Equal(t, 8, cfg.Sanctions.Concurrency)
	assert.Equal(t, "https://api.opensanctions.org", cfg.Sanctions.BaseURL)
	assert.Equal(t, "imperial", cfg.Weather.Units)
	assert.Equal(t, "pro", cfg.Entitlement.Tiers["user_pro"])
	assert.Equal(t, "badger", cfg.RouteCache.Backend)
	assert.Equal(t, 48*time.Hour, cfg.RouteCache.TTL)
	assert.True(t, cfg.Logging.JSON)
	assert.Equal(t, "stdout", cfg.Telemetry.TraceExporter)
}

func TestLoadMalformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "server: [unclosed"))
	assert.Error(t, err)
}

func TestValidateFailures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"unknown entitlement mode", func(c *Config) { c.Entitlement.Mode = "ldap" }, "Mode"},
		{"badger without path", func(c *Config) { c.RouteCache.Backend = "badger" }, "Path"},
		{"unknown cache backend", func(c *Config) { c.RouteCache.Backend = "redis" }, "Backend"},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, "Level"},
		{"bad exporter", func(c *Config) { c.Telemetry.TraceExporter = "jaeger" }, "TraceExporter"},
		{"bad weather url", func(c *Config) { c.Weather.BaseURL = "not a url" }, "BaseURL"},
		{"negative rate", func(c *Config) { c.Sanctions.RatePerSecond = -1 }, "RatePerSecond"},
		{"empty tier", func(c *Config) { c.Entitlement.Tiers = map[string]string{"u1": " "} }, "tiers[u1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := Validate(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSecretsFromEnvironment(t *testing.T) {
	cfg := Default()

	t.Setenv("GEORISK_JWT_SECRET", "")
	assert.Error(t, RequireSecrets(cfg))

	t.Setenv("GEORISK_JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("OPENWEATHER_API_KEY", "wx-key")
	t.Setenv("OPENSANCTIONS_API_KEY", "")
	assert.NoError(t, RequireSecrets(cfg))
	assert.Equal(t, "wx-key", cfg.Weather.APIKey())
	assert.Empty(t, cfg.Sanctions.APIKey())

	cfg.Entitlement.Mode = "postgres"
	t.Setenv("GEORISK_DATABASE_URL", "")
	assert.ErrorContains(t, RequireSecrets(cfg), "GEORISK_DATABASE_URL")

	t.Setenv("GEORISK_DATABASE_URL", "postgres://localhost/georisk")
	assert.NoError(t, RequireSecrets(cfg))
}
