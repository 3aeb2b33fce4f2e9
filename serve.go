package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/gokaycavdar/go-georisk/pkg/auth"
	"github.com/gokaycavdar/go-georisk/pkg/config"
	"github.com/gokaycavdar/go-georisk/pkg/engine"
	"github.com/gokaycavdar/go-georisk/pkg/logging"
	"github.com/gokaycavdar/go-georisk/pkg/server"
	"github.com/gokaycavdar/go-georisk/pkg/telemetry"
)

var version = "dev"

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the route risk HTTP API.

Secrets are read from the environment:
  GEORISK_JWT_SECRET     HS256 secret for caller tokens (required)
  OPENSANCTIONS_API_KEY  sanctions API key (optional)
  OPENWEATHER_API_KEY    weather API key (weather scoring is disabled without it)
  GEORISK_DATABASE_URL   Postgres DSN when entitlement.mode is postgres`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := config.RequireSecrets(cfg); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	logger := logging.New(logging.Config{Level: cfg.Logging.Level, JSON: cfg.Logging.JSON})

	var cleanup closers
	defer cleanup.run()

	shutdownTracing, err := telemetry.SetupTracing(ctx, telemetry.TracingConfig{
		Exporter: cfg.Telemetry.TraceExporter,
		Service:  cfg.Telemetry.ServiceName,
		Version:  version,
	})
	if err != nil {
		return err
	}
	cleanup.add(func() {
		sctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		_ = shutdownTracing(sctx)
	})

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := telemetry.NewMetrics(reg)

	calc, err := zoneCalculator(cfg)
	if err != nil {
		return err
	}
	gate, err := openGate(ctx, cfg, &cleanup)
	if err != nil {
		return err
	}
	routes, err := openRouteCache(cfg, logger, &cleanup)
	if err != nil {
		return err
	}

	opts := append(engineOptions(cfg, logger, &cleanup), engine.WithMetrics(metrics))
	eng := engine.New(calc, gate, opts...)

	verifier, err := auth.NewVerifier(auth.Config{
		Secret:   cfg.Auth.Secret(),
		Issuer:   cfg.Auth.Issuer,
		Audience: cfg.Auth.Audience,
		Leeway:   cfg.Auth.Leeway,
	})
	if err != nil {
		return err
	}

	router, err := server.NewRouter(server.Deps{
		Engine:   eng,
		Verifier: verifier,
		Routes:   routes,
		Gatherer: reg,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("georisk listening",
			"addr", cfg.Server.Addr,
			"entitlement", cfg.Entitlement.Mode,
			"route_cache", cfg.RouteCache.Backend)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(sctx)
}
