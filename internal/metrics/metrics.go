// Package metrics exposes Prometheus metrics for scoring, upstream calls,
// the forecast cache and the refresh worker.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric name.
const Namespace = "tidewise"

// Collector holds the application metrics. It satisfies the forecast
// service Observer and the resilience client RequestObserver.
type Collector struct {
	registry *prometheus.Registry

	ConditionScore        *prometheus.GaugeVec
	EvaluationsTotal      *prometheus.CounterVec
	UpstreamRequests      *prometheus.CounterVec
	UpstreamLatency       *prometheus.HistogramVec
	CacheLookups          *prometheus.CounterVec
	RefreshRunsTotal      *prometheus.CounterVec
	RefreshDuration       prometheus.Histogram
	RefreshLastSuccess    prometheus.Gauge
	RefreshSpotsEvaluated prometheus.Gauge
}

// NewCollector creates a collector backed by its own registry, which also
// carries the Go runtime and process collectors.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Collector{
		registry: reg,

		ConditionScore: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: Namespace,
				Name:      "condition_score",
				Help:      "Latest condition score by sport and location",
			},
			[]string{"sport", "location"},
		),

		EvaluationsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "condition_evaluations_total",
				Help:      "Total condition evaluations by sport and level",
			},
			[]string{"sport", "level"},
		),

		UpstreamRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "upstream_requests_total",
				Help:      "Total upstream provider requests by provider and status",
			},
			[]string{"provider", "status"},
		),

		UpstreamLatency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "upstream_request_duration_seconds",
				Help:      "Upstream provider request latency in seconds",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
			[]string{"provider", "status"},
		),

		CacheLookups: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "cache_lookups_total",
				Help:      "Forecast cache lookups by kind and result",
			},
			[]string{"kind", "result"},
		),

		RefreshRunsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "refresh_runs_total",
				Help:      "Spot refresh runs by trigger and outcome",
			},
			[]string{"trigger", "outcome"},
		),

		RefreshDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "refresh_duration_seconds",
				Help:      "Duration of spot refresh runs in seconds",
				Buckets:   prometheus.DefBuckets,
			},
		),

		RefreshLastSuccess: f.NewGauge(
			prometheus.GaugeOpts{
				Namespace: Namespace,
				Name:      "refresh_last_success_timestamp_seconds",
				Help:      "Unix time of the last refresh run without failures",
			},
		),

		RefreshSpotsEvaluated: f.NewGauge(
			prometheus.GaugeOpts{
				Namespace: Namespace,
				Name:      "refresh_spots_evaluated",
				Help:      "Spots evaluated by the last refresh run",
			},
		),
	}
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// ObserveCondition records a scored condition.
func (c *Collector) ObserveCondition(sport, location, level string, score int) {
	c.ConditionScore.WithLabelValues(sport, location).Set(float64(score))
	c.EvaluationsTotal.WithLabelValues(sport, level).Inc()
}

// ObserveCache records a forecast cache lookup.
func (c *Collector) ObserveCache(kind, result string) {
	c.CacheLookups.WithLabelValues(kind, result).Inc()
}

// ObserveUpstream records one upstream call.
func (c *Collector) ObserveUpstream(provider, status string, elapsed time.Duration) {
	c.UpstreamRequests.WithLabelValues(provider, status).Inc()
	c.UpstreamLatency.WithLabelValues(provider, status).Observe(elapsed.Seconds())
}

// ObserveRefresh records a completed refresh run. outcome is "success",
// "partial" or "failed".
func (c *Collector) ObserveRefresh(trigger, outcome string, spots int, elapsed time.Duration, finished time.Time) {
	c.RefreshRunsTotal.WithLabelValues(trigger, outcome).Inc()
	c.RefreshDuration.Observe(elapsed.Seconds())
	c.RefreshSpotsEvaluated.Set(float64(spots))
	if outcome == "success" {
		c.RefreshLastSuccess.Set(float64(finished.Unix()))
	}
}
