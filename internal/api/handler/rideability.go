package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/tidewise/tidewise/internal/api/models"
	"github.com/tidewise/tidewise/internal/api/response"
	"github.com/tidewise/tidewise/internal/marine"
)

// maxRideabilityBody caps the POST /v1/rideability body.
const maxRideabilityBody = 4 << 10

// RideabilityHandler serves the quick kite go/no-go check.
type RideabilityHandler struct {
	log zerolog.Logger
}

// NewRideabilityHandler creates a new RideabilityHandler.
func NewRideabilityHandler(log zerolog.Logger) *RideabilityHandler {
	return &RideabilityHandler{log: log}
}

// Rate handles POST /v1/rideability.
func (h *RideabilityHandler) Rate(w http.ResponseWriter, r *http.Request) {
	var req models.RideabilityRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRideabilityBody))
	if err := dec.Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		response.BadRequest(w, r, "invalid rideability input", errs)
		return
	}

	res := marine.Rate(marine.RideabilityInput{
		WindSpeed:    *req.WindSpeed,
		Gusts:        *req.Gusts,
		Direction:    *req.Direction,
		WaveHeight:   *req.WaveHeight,
		WaterQuality: req.WaterQuality,
	})
	h.log.Debug().Int("score", res.Score).Msg("rideability rated")
	response.JSON(w, r, http.StatusOK, models.Rideability{Score: res.Score, Message: res.Message})
}
