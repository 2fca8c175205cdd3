package handler

import (
	"net/http"
	"sort"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/tidewise/tidewise/internal/api/models"
	"github.com/tidewise/tidewise/internal/api/response"
	"github.com/tidewise/tidewise/internal/provider/resilience"
)

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	registry  *resilience.Registry
	forecast  Forecaster
}

// NewOpsHandler creates a new OpsHandler. registry and f may be nil, in
// which case provider and cache status are reported empty.
func NewOpsHandler(version, buildTime string, registry *resilience.Registry, f Forecaster) *OpsHandler {
	return &OpsHandler{
		version:   version,
		buildTime: buildTime,
		registry:  registry,
		forecast:  f,
	}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]interface{}{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /v1/ops/ready. The service is not ready when
// every registered provider has an open circuit.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	providers := h.providerStatuses()
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
	}
	if len(providers) > 0 && countStatus(providers, models.HealthStatusFail) == len(providers) {
		health.Status = models.HealthStatusFail
		health.Details = map[string]interface{}{"reason": "all upstream circuits open"}
		response.JSON(w, r, http.StatusServiceUnavailable, health)
		return
	}
	response.JSON(w, r, http.StatusOK, health)
}

// SystemStatus handles GET /v1/ops/status - provider and cache status.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	providers := h.providerStatuses()

	status := models.SystemStatus{
		Status:     models.HealthStatusOK,
		Time:       models.Timestamp(time.Now()),
		Subsystems: []models.SubsystemStatus{{Name: "scoring-engine", Status: models.HealthStatusOK}},
		Providers:  providers,
		Cache:      h.cacheStatuses(),
	}
	for _, p := range providers {
		if p.Status != models.HealthStatusOK {
			status.ActiveDegradationFlags = append(status.ActiveDegradationFlags, "provider:"+p.Provider)
		}
	}
	switch failed := countStatus(providers, models.HealthStatusFail); {
	case len(providers) > 0 && failed == len(providers):
		status.Status = models.HealthStatusFail
	case len(status.ActiveDegradationFlags) > 0:
		status.Status = models.HealthStatusDegraded
	}

	response.JSON(w, r, http.StatusOK, status)
}

func (h *OpsHandler) providerStatuses() []models.ProviderStatus {
	if h.registry == nil {
		return []models.ProviderStatus{}
	}
	all := h.registry.AllHealth()
	out := make([]models.ProviderStatus, 0, len(all))
	for _, p := range all {
		ps := models.ProviderStatus{
			Provider:     p.Name,
			Status:       healthFromCircuit(p.CircuitState),
			CircuitState: p.CircuitState.String(),
		}
		if p.LastSuccessAt != nil {
			ps.LastSuccessAt = models.TimestampPtr(*p.LastSuccessAt)
		}
		if p.LastFailureAt != nil {
			ps.LastFailureAt = models.TimestampPtr(*p.LastFailureAt)
		}
		if p.LastError != "" {
			msg := p.LastError
			ps.Message = &msg
		}
		out = append(out, ps)
	}
	return out
}

func (h *OpsHandler) cacheStatuses() []models.CacheStatus {
	if h.forecast == nil {
		return []models.CacheStatus{}
	}
	stats := h.forecast.CacheStats()
	out := make([]models.CacheStatus, 0, len(stats))
	for kind, st := range stats {
		out = append(out, models.CacheStatus{Kind: kind, Entries: st.Entries, FreshEntries: st.FreshEntries})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Kind < out[j].Kind })
	return out
}

func healthFromCircuit(state gobreaker.State) models.HealthStatus {
	switch state {
	case gobreaker.StateOpen:
		return models.HealthStatusFail
	case gobreaker.StateHalfOpen:
		return models.HealthStatusDegraded
	default:
		return models.HealthStatusOK
	}
}

func countStatus(providers []models.ProviderStatus, status models.HealthStatus) int {
	n := 0
	for _, p := range providers {
		if p.Status == status {
			n++
		}
	}
	return n
}
