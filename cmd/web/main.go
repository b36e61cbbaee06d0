package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"visnex.global/web/internal/handlers"
	"visnex.global/web/internal/platform/config"
	"visnex.global/web/internal/platform/observability"
	"visnex.global/web/internal/site"
)

const serviceName = "visnex-web"

// version is overridden at link time.
var version = "dev"

func main() {
	var (
		envFile string
		tmplDir string
	)
	flag.StringVar(&envFile, "env-file", ".env", "dotenv file to load; empty disables it")
	flag.StringVar(&tmplDir, "templates", "", "reparse templates from this directory on every request")
	flag.Parse()

	cfg, err := config.Load(config.WithEnvFile(envFile))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	baseLogger, err := observability.NewLogger(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = baseLogger.Sync()
	}()
	logger := baseLogger.Named("web")

	tracer := observability.NewTracerProvider(serviceName, version, cfg.Telemetry.TraceSampleRatio)

	var metrics *observability.Metrics
	if cfg.Telemetry.MetricsEnabled {
		metrics = observability.NewMetrics()
	}

	services, err := handlers.NewStaticServices(metrics)
	if err != nil {
		logger.Fatal("failed to load catalogs", zap.Error(err))
	}
	copyDeck, err := site.Load()
	if err != nil {
		logger.Fatal("failed to load site copy", zap.Error(err))
	}

	if tmplDir == "" && cfg.Development {
		tmplDir = "internal/ui/templates"
	}
	rd, err := newRenderer(tmplDir)
	if err != nil {
		logger.Fatal("failed to parse templates", zap.Error(err))
	}

	a := &app{
		site:      copyDeck,
		services:  services,
		metrics:   metrics,
		analytics: handlers.AnalyticsFromConfig(cfg.Analytics),
		renderer:  rd,
	}

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           newRouter(a, logger, cfg),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	serverLogger := logger.Named("http").With(zap.String("addr", server.Addr))
	go func() {
		serverLogger.Info("web listening", zap.Bool("dev_templates", tmplDir != ""), zap.String("version", version))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverLogger.Fatal("http server error", zap.Error(err))
		}
	}()

	<-shutdown
	logger.Info("shutdown signal received; draining requests")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
	if err := tracer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("tracer shutdown failed", zap.Error(err))
	}
}
