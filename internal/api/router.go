// Package api provides the HTTP API for TideWise.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/tidewise/tidewise/internal/api/handler"
	"github.com/tidewise/tidewise/internal/api/middleware"
	"github.com/tidewise/tidewise/internal/api/models"
	"github.com/tidewise/tidewise/internal/provider/resilience"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version     string
	BuildTime   string
	Logger      zerolog.Logger
	ServiceName string

	// Metrics records OTel HTTP metrics when set.
	Metrics *middleware.Metrics

	// MetricsHandler serves /metrics when set.
	MetricsHandler http.Handler

	Forecast handler.Forecaster
	Registry *resilience.Registry

	// RateLimit is the per-IP budget for single-sport and marine
	// endpoints. Endpoints scoring every sport get 30% of it.
	RateLimit middleware.RateLimitConfig

	RequireTLS bool

	// Now overrides the clock in tests.
	Now func() time.Time
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "tidewise-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)
	r.Use(middleware.Tracing(serviceName))
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware())
	}
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.RequireTLS(cfg.RequireTLS))
	r.Use(middleware.ContentTypeJSON)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		problem := models.NewNotFound(middleware.GetRequestID(r.Context()), "no such endpoint")
		problem.Instance = r.URL.Path
		problem.Write(w)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		problem := models.NewProblem(
			models.ProblemTypeNotFound,
			"Method not allowed",
			http.StatusMethodNotAllowed,
			middleware.GetRequestID(r.Context()),
		)
		problem.Detail = r.Method + " is not supported on this endpoint"
		problem.Instance = r.URL.Path
		problem.Write(w)
	})

	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.Registry, cfg.Forecast)
	conditionsHandler := handler.NewConditionsHandler(cfg.Forecast, cfg.Logger)
	spotsHandler := handler.NewSpotsHandler(cfg.Logger)
	marineHandler := handler.NewMarineHandler(cfg.Forecast, cfg.Logger, cfg.Now)
	watchHandler := handler.NewWatchHandler(cfg.Forecast, cfg.Logger, cfg.Now)
	rideabilityHandler := handler.NewRideabilityHandler(cfg.Logger)

	standard := cfg.RateLimit
	if standard.RequestLimit <= 0 || standard.WindowLength <= 0 {
		standard = middleware.StandardRateLimit
	}
	standardRateLimit := middleware.RateLimitByIP(standard)
	expensiveRateLimit := middleware.RateLimitByIP(standard.Scaled(0.3))

	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	r.Route("/v1", func(r chi.Router) {
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			r.Get("/status", opsHandler.SystemStatus)
		})

		r.With(standardRateLimit).Get("/metadata", spotsHandler.Metadata)

		r.Route("/conditions", func(r chi.Router) {
			r.With(expensiveRateLimit).Get("/", conditionsHandler.List)
			r.With(standardRateLimit).Get("/{sport}", conditionsHandler.GetSport)
		})

		r.Route("/spots", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/", spotsHandler.List)
			r.Route("/{spotId}", func(r chi.Router) {
				r.Get("/", spotsHandler.Get)
				r.With(expensiveRateLimit).Get("/conditions", conditionsHandler.ListSpot)
				r.Get("/conditions/{sport}", conditionsHandler.GetSpotSport)
			})
		})

		r.Route("/marine", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/wind", marineHandler.Wind)
			r.Get("/waves", marineHandler.Waves)
			r.Get("/wave-energy", marineHandler.WaveEnergy)
			r.Get("/wave-consistency", marineHandler.WaveConsistency)
			r.Get("/water-visibility", marineHandler.WaterVisibility)
			r.Get("/swell", marineHandler.Swell)
			r.Get("/tides", marineHandler.Tides)
			r.Get("/water-temperature", marineHandler.WaterTemperature)
			r.Get("/water-quality", marineHandler.WaterQuality)
			r.Get("/alerts", marineHandler.Alerts)
		})

		r.With(standardRateLimit).Get("/watch/conditions", watchHandler.Conditions)

		r.With(standardRateLimit, middleware.RequireJSON).Post("/rideability", rideabilityHandler.Rate)
	})

	return r
}
