package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"guarantor-risk/config"
	httpLayer "guarantor-risk/http"
	"guarantor-risk/observability"
	"guarantor-risk/repository"
	"guarantor-risk/service"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve the risk API:

  POST /risk/assess      score one input
  POST /risk/worst-case  score the input, its vacancy-stressed and its rate-hiked copies
  GET  /healthz          liveness
  GET  /readyz           readiness (pings the redis cache when configured)
  GET  /metrics          Prometheus metrics`,
		RunE: runServe,
	}

	cmd.Flags().String("addr", "", "listen address (overrides server.addr)")

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.Addr = addr
	}

	logger := slog.Default()
	metrics := observability.NewMetrics()

	cache, deps, closeCache, err := newCache(ctx, cfg.Cache)
	if err != nil {
		return err
	}
	defer closeCache()

	svc, err := service.NewRiskService(
		cfg.Model.Default,
		cfg.Stress.ToService(),
		cache,
		service.WithRecorder(metrics),
		service.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("failed to build risk service: %w", err)
	}

	var limiter *httpLayer.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = httpLayer.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
		defer limiter.Stop()
	}

	router := httpLayer.NewRouter(httpLayer.RouterConfig{
		Risk:     httpLayer.NewRiskHandler(svc, logger, cfg.Server.MaxBodyBytes),
		Health:   httpLayer.NewHealthHandler(logger, deps),
		Metrics:  metrics.Handler(),
		Observer: metrics,
		Limiter:  limiter,
		Logger:   logger,
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			"addr", cfg.Server.Addr,
			"model", svc.DefaultModel(),
			"cache", cfg.Cache.Backend,
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("error starting server: %w", err)
	case <-ctx.Done():
		logger.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error during server shutdown: %w", err)
	}

	logger.Info("server exited")
	return nil
}

// newCache builds the configured backend. deps lists what readiness should
// ping, and closeFn releases the backend.
func newCache(ctx context.Context, cfg config.CacheConfig) (
	cache repository.CacheRepository,
	deps map[string]httpLayer.Pinger,
	closeFn func(),
	err error,
) {
	closeFn = func() {}

	switch cfg.Backend {
	case "none":
		return nil, nil, closeFn, nil

	case "memory":
		return repository.NewMockCache(), nil, closeFn, nil

	case "bigcache":
		bc, err := repository.NewBigCache(ctx, cfg.TTL, cfg.BigCacheMaxMB)
		if err != nil {
			return nil, nil, closeFn, fmt.Errorf("failed to create bigcache: %w", err)
		}
		closeFn = func() {
			if err := bc.Close(); err != nil {
				slog.Warn("failed to close bigcache", "error", err)
			}
		}
		return bc, nil, closeFn, nil

	case "redis":
		rc := repository.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.TTL)
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		// The service keeps working without the cache, so an unreachable
		// redis only degrades readiness.
		if err := rc.Ping(pingCtx); err != nil {
			slog.Warn("redis cache unreachable at startup", "addr", cfg.Redis.Addr, "error", err)
		}
		closeFn = func() {
			if err := rc.Close(); err != nil {
				slog.Warn("failed to close redis client", "error", err)
			}
		}
		return rc, map[string]httpLayer.Pinger{"redis": rc}, closeFn, nil

	default:
		return nil, nil, closeFn, fmt.Errorf("%w: %q", repository.ErrCacheBackend, cfg.Backend)
	}
}
