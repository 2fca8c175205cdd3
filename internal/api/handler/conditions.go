package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/tidewise/tidewise/internal/api/response"
	"github.com/tidewise/tidewise/internal/conditions"
	"github.com/tidewise/tidewise/internal/forecast"
	"github.com/tidewise/tidewise/internal/spots"
)

// ConditionsHandler serves scored sport conditions.
type ConditionsHandler struct {
	forecast Forecaster
	log      zerolog.Logger
}

// NewConditionsHandler creates a new ConditionsHandler.
func NewConditionsHandler(f Forecaster, log zerolog.Logger) *ConditionsHandler {
	return &ConditionsHandler{forecast: f, log: log}
}

// GetSport handles GET /v1/conditions/{sport}?lat&lon.
func (h *ConditionsHandler) GetSport(w http.ResponseWriter, r *http.Request) {
	sport, err := conditions.ParseSport(chi.URLParam(r, "sport"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	loc, err := parseLocation(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.writeSport(w, r, sport, loc, r.URL.Query().Get("locationId"))
}

// List handles GET /v1/conditions?lat&lon.
func (h *ConditionsHandler) List(w http.ResponseWriter, r *http.Request) {
	loc, err := parseLocation(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.writeAll(w, r, loc)
}

// GetSpotSport handles GET /v1/spots/{spotId}/conditions/{sport}.
func (h *ConditionsHandler) GetSpotSport(w http.ResponseWriter, r *http.Request) {
	spot, err := spots.Get(chi.URLParam(r, "spotId"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	sport, err := conditions.ParseSport(chi.URLParam(r, "sport"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.writeSport(w, r, sport, spot.Location(), spot.ID)
}

// ListSpot handles GET /v1/spots/{spotId}/conditions.
func (h *ConditionsHandler) ListSpot(w http.ResponseWriter, r *http.Request) {
	spot, err := spots.Get(chi.URLParam(r, "spotId"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.writeAll(w, r, spot.Location())
}

func (h *ConditionsHandler) writeSport(w http.ResponseWriter, r *http.Request, sport conditions.Sport, loc forecast.Location, locationID string) {
	c, err := h.forecast.Conditions(r.Context(), sport, loc)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	response.JSON(w, r, http.StatusOK, newCondition(c, locationID))
}

func (h *ConditionsHandler) writeAll(w http.ResponseWriter, r *http.Request, loc forecast.Location) {
	all, err := h.forecast.AllConditions(r.Context(), loc)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	response.JSON(w, r, http.StatusOK, newLocationConditions(loc, all))
}
