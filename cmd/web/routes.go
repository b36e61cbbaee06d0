package main

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"visnex.global/web/internal/api"
	"visnex.global/web/internal/handlers"
	mw "visnex.global/web/internal/middleware"
	"visnex.global/web/internal/platform/config"
	"visnex.global/web/internal/platform/httpx"
	"visnex.global/web/internal/platform/observability"
	"visnex.global/web/internal/ui"
	"visnex.global/web/internal/viewrouter"
)

// newRouter wires middleware, pages, fragments and the JSON API.
func newRouter(a *app, logger *zap.Logger, cfg config.Config) http.Handler {
	r := chi.NewRouter()
	r.Use(observability.RequestIDMiddleware)
	// RealIP trusts X-Forwarded-For; deploy behind a proxy that overwrites it.
	r.Use(chimw.RealIP)
	r.Use(observability.InjectLoggerMiddleware(logger))
	r.Use(observability.TraceMiddleware())
	r.Use(observability.RecoveryMiddleware(logger))
	r.Use(observability.RequestLoggerMiddleware(a.metrics))
	r.Use(mw.HTMX)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, "ok")
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})
	if cfg.Telemetry.MetricsEnabled && a.metrics != nil {
		r.Handle("/metrics", a.metrics.Handler())
	}

	r.Handle("/assets/*", http.StripPrefix("/assets", mw.AssetsWithCache(ui.Assets())))

	r.Get("/", a.HomeHandler)
	r.Get("/view", a.ViewFragmentHandler)
	r.Get("/views/{view}", a.SwapViewHandler)
	for _, v := range viewrouter.Views() {
		if path := handlers.ResultsPath(v); path != "" {
			r.Get(path, a.ResultsHandler(v))
		}
	}

	apiHandlers := api.New(
		api.WithStartups(a.services.Startups),
		api.WithInvestors(a.services.Investors),
		api.WithPartnerships(a.services.Partnerships),
		api.WithStories(a.services.Stories),
		api.WithGrowthTools(a.services.GrowthTools),
		api.WithInsights(a.services.Insights),
		api.WithMetrics(a.metrics),
	)
	// The limiter runs before the API sub-router has matched, so rejected
	// requests are labelled by matching against a standalone copy of its routes.
	apiRoutes := chi.NewRouter()
	apiHandlers.Routes(apiRoutes)
	limiter := mw.NewRateLimiter(cfg.RateLimit.PerMinute, cfg.RateLimit.Burst,
		mw.WithLimitHook(func(req *http.Request) {
			a.metrics.ObserveRateLimited(apiRouteLabel(apiRoutes, req))
		}),
	)
	r.Route("/api", func(r chi.Router) {
		r.Use(limiter.Middleware)
		apiHandlers.Routes(r)
	})
	return r
}

// apiRouteLabel is the /api-prefixed pattern req would be served by, or
// observability.UnmatchedRoute.
func apiRouteLabel(routes chi.Routes, req *http.Request) string {
	path := strings.TrimPrefix(req.URL.Path, "/api")
	if path == "" {
		path = "/"
	}
	rctx := chi.NewRouteContext()
	if !routes.Match(rctx, req.Method, path) {
		return observability.UnmatchedRoute
	}
	pattern := rctx.RoutePattern()
	if pattern == "" {
		return observability.UnmatchedRoute
	}
	return "/api" + strings.TrimSuffix(pattern, "/")
}
