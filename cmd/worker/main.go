// Package main provides the entrypoint for the TideWise cache-warming worker.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/tidewise/tidewise/internal/app"
	"github.com/tidewise/tidewise/internal/config"
	"github.com/tidewise/tidewise/internal/metrics"
	"github.com/tidewise/tidewise/internal/provider/resilience"
	"github.com/tidewise/tidewise/internal/telemetry"
	"github.com/tidewise/tidewise/internal/worker"
)

// Version and BuildTime are set at compile time via ldflags
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "tidewise-worker"

	cfg, err := config.Load()
	if err != nil {
		boot := app.NewLogger(os.Stderr, serviceName, Version, "info")
		boot.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := app.NewLogger(os.Stdout, serviceName, Version, cfg.LogLevel)
	log.Info().
		Str("build_time", BuildTime).
		Int("concurrency", cfg.Worker.Concurrency).
		Dur("interval", cfg.Worker.Interval).
		Msg("starting TideWise worker")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTel.Endpoint,
		Enabled:        cfg.OTel.Enabled,
		SampleRatio:    cfg.OTel.SampleRatio,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	collector := metrics.NewCollector()
	registry := resilience.NewRegistry()

	forecastService, err := app.NewForecastService(app.Deps{
		Config:   cfg,
		Logger:   log,
		Registry: registry,
		Metrics:  collector,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize forecast service")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	job := worker.NewRefreshJob(worker.RefreshJobConfig{
		Config: worker.RefreshConfig{
			Concurrency:  cfg.Worker.Concurrency,
			Timeout:      cfg.Worker.Timeout,
			RefreshTides: true,
		},
		Logger:   log,
		Forecast: forecastService,
		Recorder: collector,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Worker.HealthPort,
		Handler:      healthRouter(job, registry, collector),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("health server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("health server error")
		}
	}()

	// Warm the cache before the first tick or message.
	job.Run(ctx, worker.TriggerStartup)
	if err := job.RefreshTides(ctx); err != nil {
		log.Warn().Err(err).Msg("initial tide refresh incomplete")
	}

	done := make(chan struct{})
	if cfg.PubSub.Enabled() {
		go runPubSub(ctx, cfg, job, log, done)
	} else {
		go runTicker(ctx, cfg.Worker.Interval, job, log, done)
	}

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down worker")
	cancel()
	<-done

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), app.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("health server forced to shutdown")
	}

	log.Info().Msg("worker stopped")
}

func runTicker(ctx context.Context, interval time.Duration, job *worker.RefreshJob, log zerolog.Logger, done chan<- struct{}) {
	defer close(done)

	log.Info().Dur("interval", interval).Msg("refreshing on schedule")
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			job.Run(ctx, worker.TriggerSchedule)
			if err := job.RefreshTides(ctx); err != nil {
				log.Warn().Err(err).Msg("tide refresh incomplete")
			}
		}
	}
}

func runPubSub(ctx context.Context, cfg *config.Config, job *worker.RefreshJob, log zerolog.Logger, done chan<- struct{}) {
	defer close(done)

	handler, err := worker.NewPubSubHandler(ctx, worker.PubSubConfig{
		ProjectID:        cfg.PubSub.ProjectID,
		SubscriptionName: cfg.PubSub.Subscription,
		RefreshJob:       job,
		Logger:           log,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create pubsub handler, falling back to schedule")
		runTicker(ctx, cfg.Worker.Interval, job, log, make(chan struct{}))
		return
	}
	defer func() {
		if err := handler.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close pubsub client")
		}
	}()

	if err := handler.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("pubsub receive stopped")
	}
}

// healthRouter serves /health with refresh statistics and /metrics.
func healthRouter(job *worker.RefreshJob, registry *resilience.Registry, collector *metrics.Collector) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		open := 0
		for _, p := range registry.AllHealth() {
			if p.IsUnhealthy() {
				open++
			}
		}
		status, code := "healthy", http.StatusOK
		if open > 0 && open == registry.Len() {
			status, code = "unhealthy", http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  status,
			"version": Version,
			"refresh": job.MetricsSnapshot(),
		})
	})
	r.Method(http.MethodGet, "/metrics", collector.Handler())

	return r
}
