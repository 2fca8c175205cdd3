// Package app builds the forecast service and its upstream clients from
// configuration. It is shared by the API, the worker and the CLI.
package app

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/tidewise/tidewise/internal/conditions"
	"github.com/tidewise/tidewise/internal/config"
	"github.com/tidewise/tidewise/internal/forecast"
	"github.com/tidewise/tidewise/internal/forecast/coops"
	"github.com/tidewise/tidewise/internal/forecast/nws"
	"github.com/tidewise/tidewise/internal/forecast/openmeteo"
	"github.com/tidewise/tidewise/internal/metrics"
	"github.com/tidewise/tidewise/internal/provider/resilience"
)

// ShutdownTimeout bounds graceful shutdown of servers and exporters.
const ShutdownTimeout = 30 * time.Second

// NewLogger returns the JSON logger every binary writes with. An unknown
// level falls back to info.
func NewLogger(w io.Writer, service, version, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).
		Level(lvl).
		With().
		Timestamp().
		Str("service", service).
		Str("version", version).
		Logger()
}

// Deps are the shared pieces a forecast service is built from.
type Deps struct {
	Config *config.Config
	Logger zerolog.Logger

	// Registry tracks upstream health. Optional.
	Registry *resilience.Registry

	// Metrics receives upstream, cache and score metrics. Optional.
	Metrics *metrics.Collector
}

// NewForecastService wires the Open-Meteo, CO-OPS and NWS clients into a
// forecast service. Each upstream gets its own circuit breaker.
func NewForecastService(d Deps) (*forecast.Service, error) {
	cfg := d.Config
	loc := cfg.Location()

	newClient := func(name string) *resilience.Client {
		cc := resilience.DefaultClientConfig(name)
		cc.Timeout = cfg.Upstream.Timeout
		cc.MaxRetries = cfg.Upstream.MaxRetries
		cc.Registry = d.Registry
		if d.Metrics != nil {
			cc.Observer = d.Metrics
		}
		cb := resilience.DefaultCircuitBreakerConfig(name)
		cb.OnStateChange = resilience.LogStateChanges(d.Logger)
		cc.CircuitBreaker = &cb
		return resilience.NewClient(cc)
	}

	wind, err := openmeteo.NewWindClient(openmeteo.ClientConfig{
		BaseURL:    cfg.Upstream.OpenMeteoURL,
		TimeZone:   cfg.TimeZone,
		HTTPClient: newClient(openmeteo.WindProviderName),
		Logger:     d.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating wind client: %w", err)
	}

	marine, err := openmeteo.NewMarineClient(openmeteo.ClientConfig{
		BaseURL:    cfg.Upstream.MarineURL,
		TimeZone:   cfg.TimeZone,
		HTTPClient: newClient(openmeteo.MarineProviderName),
		Logger:     d.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating marine client: %w", err)
	}

	noaa, err := coops.NewClient(coops.ClientConfig{
		BaseURL:    cfg.Upstream.CoopsURL,
		Location:   loc,
		HTTPClient: newClient(coops.ProviderName),
		Logger:     d.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating co-ops client: %w", err)
	}

	alerts := nws.NewClient(nws.ClientConfig{
		BaseURL:    cfg.Upstream.NWSURL,
		UserAgent:  cfg.Upstream.NWSUserAgent,
		HTTPClient: newClient(nws.ProviderName),
		Logger:     d.Logger,
	})

	engine, err := conditions.NewEngine(conditions.EngineConfig{Location: loc})
	if err != nil {
		return nil, fmt.Errorf("creating engine: %w", err)
	}

	sc := forecast.ServiceConfig{
		Wind:             wind,
		Waves:            marine,
		Tides:            noaa,
		WaterTemperature: []forecast.WaterTemperatureProvider{noaa, marine},
		WaterQuality:     noaa,
		Alerts:           alerts,
		Engine:           engine,
		Logger:           d.Logger,
		CacheTTL:         cfg.Cache.TTL,
		StaleIfErrorTTL:  cfg.Cache.StaleTTL,
	}
	if d.Metrics != nil {
		sc.Observer = d.Metrics
	}
	return forecast.NewService(sc)
}
