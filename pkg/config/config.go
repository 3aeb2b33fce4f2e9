// Package config loads the georisk service configuration from YAML.
//
// Secrets are never stored in the file. Each secret is read from the
// environment variable named by its *_env field.
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds georisk configuration.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Auth        AuthConfig        `yaml:"auth"`
	Sanctions   SanctionsConfig   `yaml:"sanctions"`
	Weather     WeatherConfig     `yaml:"weather"`
	Entitlement EntitlementConfig `yaml:"entitlement"`
	Zones       ZonesConfig       `yaml:"zones"`
	GeoIP       GeoIPConfig       `yaml:"geoip"`
	RouteCache  RouteCacheConfig  `yaml:"route_cache"`
	Logging     LoggingConfig     `yaml:"logging"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr" validate:"required"` // e.g. ":8080"
	ReadTimeout     time.Duration `yaml:"read_timeout" validate:"gte=0"`
	WriteTimeout    time.Duration `yaml:"write_timeout" validate:"gte=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gte=0"`
}

type AuthConfig struct {
	SecretEnv string        `yaml:"secret_env" validate:"required"` // e.g. "GEORISK_JWT_SECRET"
	Issuer    string        `yaml:"issuer"`
	Audience  string        `yaml:"audience"`
	Leeway    time.Duration `yaml:"leeway" validate:"gte=0"`
}

// Secret returns the HS256 secret from the environment.
func (a AuthConfig) Secret() []byte {
	return []byte(os.Getenv(a.SecretEnv))
}

type SanctionsConfig struct {
	BaseURL       string        `yaml:"base_url" validate:"required,url"`
	Dataset       string        `yaml:"dataset" validate:"required"`
	APIKeyEnv     string        `yaml:"api_key_env"` // e.g. "OPENSANCTIONS_API_KEY"
	Timeout       time.Duration `yaml:"timeout" validate:"gt=0"`
	RatePerSecond float64       `yaml:"rate_per_second" validate:"gte=0"`
	Burst         int           `yaml:"burst" validate:"gte=0"`
	Concurrency   int           `yaml:"concurrency" validate:"gte=0"`
}

// APIKey returns the optional sanctions API key from the environment.
func (s SanctionsConfig) APIKey() string {
	return envOrEmpty(s.APIKeyEnv)
}

type WeatherConfig struct {
	BaseURL       string        `yaml:"base_url" validate:"required,url"`
	APIKeyEnv     string        `yaml:"api_key_env"` // e.g. "OPENWEATHER_API_KEY"
	Units         string        `yaml:"units" validate:"oneof=metric imperial standard"`
	Timeout       time.Duration `yaml:"timeout" validate:"gt=0"`
	RatePerSecond float64       `yaml:"rate_per_second" validate:"gte=0"`
}

// APIKey returns the weather API key from the environment. An empty key
// disables weather scoring.
func (w WeatherConfig) APIKey() string {
	return envOrEmpty(w.APIKeyEnv)
}

type EntitlementConfig struct {
	Mode           string            `yaml:"mode" validate:"oneof=static postgres"`
	Tiers          map[string]string `yaml:"tiers"`        // caller -> tier, static mode
	DefaultTier    string            `yaml:"default_tier"` // static mode
	DatabaseURLEnv string            `yaml:"database_url_env"`
}

// DatabaseURL returns the Postgres DSN from the environment.
func (e EntitlementConfig) DatabaseURL() string {
	return envOrEmpty(e.DatabaseURLEnv)
}

type ZonesConfig struct {
	TableFile string `yaml:"table_file"` // optional YAML override of the built-in table
}

type GeoIPConfig struct {
	CountryDB string `yaml:"country_db"` // optional .mmdb path
}

type RouteCacheConfig struct {
	Backend string        `yaml:"backend" validate:"oneof=memory badger"`
	Path    string        `yaml:"path" validate:"required_if=Backend badger"`
	TTL     time.Duration `yaml:"ttl" validate:"gte=0"`
}

type LoggingConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `yaml:"json"`
}

type TelemetryConfig struct {
	Metrics        bool   `yaml:"metrics"`
	TraceExporter  string `yaml:"trace_exporter" validate:"oneof=none stdout"`
	ServiceName    string `yaml:"service_name"`
	ServiceVersion string `yaml:"service_version"`
}

// Load reads configuration from a YAML file.
// If the file doesn't exist, it returns a default config and no error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 30 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}

	if cfg.Auth.SecretEnv == "" {
		cfg.Auth.SecretEnv = "GEORISK_JWT_SECRET"
	}

	if cfg.Sanctions.BaseURL == "" {
		cfg.Sanctions.BaseURL = "https://api.opensanctions.org"
	}
	if cfg.Sanctions.Dataset == "" {
		cfg.Sanctions.Dataset = "default"
	}
	if cfg.Sanctions.APIKeyEnv == "" {
		cfg.Sanctions.APIKeyEnv = "OPENSANCTIONS_API_KEY"
	}
	if cfg.Sanctions.Timeout == 0 {
		cfg.Sanctions.Timeout = 5 * time.Second
	}
	if cfg.Sanctions.Concurrency == 0 {
		cfg.Sanctions.Concurrency = 4
	}

	if cfg.Weather.BaseURL == "" {
		cfg.Weather.BaseURL = "https://api.openweathermap.org/data/2.5"
	}
	if cfg.Weather.APIKeyEnv == "" {
		cfg.Weather.APIKeyEnv = "OPENWEATHER_API_KEY"
	}
	if cfg.Weather.Units == "" {
		cfg.Weather.Units = "metric"
	}
	if cfg.Weather.Timeout == 0 {
		cfg.Weather.Timeout = 5 * time.Second
	}

	if cfg.Entitlement.Mode == "" {
		cfg.Entitlement.Mode = "static"
	}
	if cfg.Entitlement.Tiers == nil {
		cfg.Entitlement.Tiers = map[string]string{}
	}
	if cfg.Entitlement.DatabaseURLEnv == "" {
		cfg.Entitlement.DatabaseURLEnv = "GEORISK_DATABASE_URL"
	}

	if cfg.RouteCache.Backend == "" {
		cfg.RouteCache.Backend = "memory"
	}
	if cfg.RouteCache.TTL == 0 {
		cfg.RouteCache.TTL = 7 * 24 * time.Hour
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	if cfg.Telemetry.TraceExporter == "" {
		cfg.Telemetry.TraceExporter = "none"
	}
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = "georisk"
	}
}

func envOrEmpty(name string) string {
	if name == "" {
		return ""
	}
	return os.Getenv(name)
}
