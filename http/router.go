package http

import (
	"log/slog"
	"net/http"
)

type RouterConfig struct {
	Risk    *RiskHandler
	Health  *HealthHandler
	Metrics http.Handler
	// Observer records per-request metrics; nil disables them.
	Observer HTTPObserver
	// Limiter throttles the risk routes; nil disables throttling.
	Limiter *RateLimiter
	Logger  *slog.Logger
}

// NewRouter wires every route and the shared middleware chain.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	limit := func(h http.HandlerFunc) http.Handler {
		if cfg.Limiter == nil {
			return h
		}
		return RateLimitMiddleware(cfg.Limiter, h)
	}

	mux.Handle("/risk/assess", limit(cfg.Risk.Assess))
	mux.Handle("/risk/worst-case", limit(cfg.Risk.WorstCase))

	if cfg.Health != nil {
		cfg.Health.RegisterRoutes(mux)
	}
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics)
	}

	var handler http.Handler = mux
	if cfg.Observer != nil {
		handler = MetricsMiddleware(cfg.Observer, cfg.Logger, handler)
	}
	return RequestIDMiddleware(handler)
}
