package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gokaycavdar/go-georisk/pkg/config"
	"github.com/gokaycavdar/go-georisk/pkg/engine"
	"github.com/gokaycavdar/go-georisk/pkg/entitlement"
	"github.com/gokaycavdar/go-georisk/pkg/geoip"
	"github.com/gokaycavdar/go-georisk/pkg/rules"
	"github.com/gokaycavdar/go-georisk/pkg/sanctions"
	"github.com/gokaycavdar/go-georisk/pkg/storage"
	"github.com/gokaycavdar/go-georisk/pkg/weather"
	"github.com/gokaycavdar/go-georisk/pkg/zones"
)

// loadConfig reads and validates the config file.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", configPath, err)
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func zoneCalculator(cfg *config.Config) (*rules.ZoneCalculator, error) {
	if cfg.Zones.TableFile == "" {
		return rules.NewZoneCalculator(zones.DefaultTable()), nil
	}
	table, err := zones.LoadFile(cfg.Zones.TableFile)
	if err != nil {
		return nil, err
	}
	return rules.NewZoneCalculator(table), nil
}

// offlineEngine builds an engine that can only answer zone-only queries.
func offlineEngine(cfg *config.Config) (*engine.Engine, error) {
	calc, err := zoneCalculator(cfg)
	if err != nil {
		return nil, err
	}
	return engine.New(calc, entitlement.NewStaticGate(nil, "")), nil
}

// closers accumulates cleanup functions in reverse order of acquisition.
type closers []func()

func (c *closers) add(fn func()) { *c = append(*c, fn) }

func (c closers) run() {
	for i := len(c) - 1; i >= 0; i-- {
		c[i]()
	}
}

func openGate(ctx context.Context, cfg *config.Config, cleanup *closers) (entitlement.Gate, error) {
	switch cfg.Entitlement.Mode {
	case "postgres":
		gate, closeFn, err := entitlement.OpenPostgresGate(ctx, cfg.Entitlement.DatabaseURL())
		if err != nil {
			return nil, err
		}
		cleanup.add(closeFn)
		return gate, nil
	default:
		return entitlement.NewStaticGate(cfg.Entitlement.Tiers, cfg.Entitlement.DefaultTier), nil
	}
}

func openRouteCache(cfg *config.Config, logger *slog.Logger, cleanup *closers) (storage.RouteCache, error) {
	if cfg.RouteCache.Backend != "badger" {
		return storage.NewMemoryStore(cfg.RouteCache.TTL), nil
	}
	store, err := storage.OpenBadgerStore(storage.BadgerConfig{
		Path:   cfg.RouteCache.Path,
		TTL:    cfg.RouteCache.TTL,
		Logger: logger,
	})
	if err != nil {
		return nil, err
	}
	cleanup.add(func() {
		if err := store.Close(); err != nil {
			logger.Warn("route cache close failed", "error", err)
		}
	})
	return store, nil
}

func engineOptions(cfg *config.Config, logger *slog.Logger, cleanup *closers) []engine.Option {
	httpClient := &http.Client{}

	sc := sanctions.NewClient(sanctions.Config{
		BaseURL:       cfg.Sanctions.BaseURL,
		Dataset:       cfg.Sanctions.Dataset,
		APIKey:        cfg.Sanctions.APIKey(),
		Timeout:       cfg.Sanctions.Timeout,
		RatePerSecond: cfg.Sanctions.RatePerSecond,
		Burst:         cfg.Sanctions.Burst,
		Concurrency:   cfg.Sanctions.Concurrency,
	}, httpClient, logger)

	wc := weather.NewClient(weather.Config{
		BaseURL:       cfg.Weather.BaseURL,
		APIKey:        cfg.Weather.APIKey(),
		Units:         cfg.Weather.Units,
		Timeout:       cfg.Weather.Timeout,
		RatePerSecond: cfg.Weather.RatePerSecond,
	}, httpClient, logger)
	if !wc.Configured() {
		logger.Warn("weather api key not set; weather risk will not be assessed",
			"env", cfg.Weather.APIKeyEnv)
	}

	opts := []engine.Option{
		engine.WithSanctions(sc),
		engine.WithWeather(wc),
		engine.WithLogger(logger),
	}

	if cfg.GeoIP.CountryDB != "" {
		resolver, err := geoip.Open(cfg.GeoIP.CountryDB)
		if err != nil {
			logger.Warn("geoip database unavailable; route summaries default the origin country",
				"path", cfg.GeoIP.CountryDB, "error", err)
		} else {
			cleanup.add(func() { _ = resolver.Close() })
			opts = append(opts, engine.WithCountryResolver(resolver))
		}
	}
	return opts
}
