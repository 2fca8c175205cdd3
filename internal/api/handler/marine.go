package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/tidewise/tidewise/internal/api/models"
	"github.com/tidewise/tidewise/internal/api/response"
	"github.com/tidewise/tidewise/internal/forecast"
	"github.com/tidewise/tidewise/internal/spots"
)

// MarineHandler serves raw readings and derived sea-state analytics.
type MarineHandler struct {
	forecast Forecaster
	log      zerolog.Logger
	now      func() time.Time
}

// NewMarineHandler creates a new MarineHandler. A nil now uses time.Now.
func NewMarineHandler(f Forecaster, log zerolog.Logger, now func() time.Time) *MarineHandler {
	if now == nil {
		now = time.Now
	}
	return &MarineHandler{forecast: f, log: log, now: now}
}

// serve parses the location, runs fetch and writes its result.
func (h *MarineHandler) serve(w http.ResponseWriter, r *http.Request, fetch func(context.Context, forecast.Location) (any, error)) {
	loc, err := parseLocation(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	body, err := fetch(r.Context(), loc)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	response.JSON(w, r, http.StatusOK, body)
}

// Wind handles GET /v1/marine/wind.
func (h *MarineHandler) Wind(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(ctx context.Context, loc forecast.Location) (any, error) {
		cur, err := h.forecast.Wind(ctx, loc)
		if err != nil {
			return nil, err
		}
		return models.Wind{
			Speed:     models.RoundPtr(cur.SpeedMph, 1),
			Gusts:     models.RoundPtr(cur.GustsMph, 1),
			Direction: models.RoundPtr(cur.DirectionDeg, 0),
			Cardinal:  cur.Cardinal,
			Unit:      models.UnitMph,
			Timestamp: models.Timestamp(cur.Time),
		}, nil
	})
}

// Waves handles GET /v1/marine/waves.
func (h *MarineHandler) Waves(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(ctx context.Context, loc forecast.Location) (any, error) {
		cur, err := h.forecast.Waves(ctx, loc)
		if err != nil {
			return nil, err
		}
		return models.Waves{
			WaveHeight:    models.RoundPtr(cur.HeightFt, 2),
			WavePeriod:    models.RoundPtr(cur.PeriodS, 1),
			WaveDirection: models.RoundPtr(cur.DirectionDeg, 0),
			Cardinal:      cur.Cardinal,
			Unit:          models.UnitFeet,
			Timestamp:     models.Timestamp(cur.Time),
		}, nil
	})
}

// WaveEnergy handles GET /v1/marine/wave-energy.
func (h *MarineHandler) WaveEnergy(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(ctx context.Context, loc forecast.Location) (any, error) {
		e, err := h.forecast.WaveEnergy(ctx, loc)
		if err != nil {
			return nil, err
		}
		return newWaveEnergy(e), nil
	})
}

// WaveConsistency handles GET /v1/marine/wave-consistency.
func (h *MarineHandler) WaveConsistency(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(ctx context.Context, loc forecast.Location) (any, error) {
		c, err := h.forecast.WaveConsistency(ctx, loc)
		if err != nil {
			return nil, err
		}
		return newWaveConsistency(c), nil
	})
}

// WaterVisibility handles GET /v1/marine/water-visibility.
func (h *MarineHandler) WaterVisibility(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(ctx context.Context, loc forecast.Location) (any, error) {
		v, err := h.forecast.WaterVisibility(ctx, loc)
		if err != nil {
			return nil, err
		}
		return newWaterVisibility(v), nil
	})
}

// Swell handles GET /v1/marine/swell.
func (h *MarineHandler) Swell(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(ctx context.Context, loc forecast.Location) (any, error) {
		s, err := h.forecast.Swell(ctx, loc)
		if err != nil {
			return nil, err
		}
		return newSwell(s), nil
	})
}

// Tides handles GET /v1/marine/tides.
func (h *MarineHandler) Tides(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(ctx context.Context, loc forecast.Location) (any, error) {
		d, err := h.forecast.Tides(ctx, loc)
		if err != nil {
			return nil, err
		}

		out := models.Tides{
			StationID:   d.StationID,
			StationName: d.StationName,
			Predictions: make([]models.TidePrediction, 0, len(d.Predictions)),
			Unit:        models.UnitFeet,
			Source:      "NOAA CO-OPS",
		}
		if out.StationName == "" {
			out.StationName = spots.StationName(d.StationID)
		}
		for _, p := range d.Predictions {
			out.Predictions = append(out.Predictions, newTidePrediction(p))
		}
		now := h.now()
		if p := d.Next(forecast.TideHigh, now); p != nil {
			next := newTidePrediction(*p)
			out.NextHigh = &next
		}
		if p := d.Next(forecast.TideLow, now); p != nil {
			next := newTidePrediction(*p)
			out.NextLow = &next
		}
		return out, nil
	})
}

// WaterTemperature handles GET /v1/marine/water-temperature.
func (h *MarineHandler) WaterTemperature(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(ctx context.Context, loc forecast.Location) (any, error) {
		t, err := h.forecast.WaterTemperature(ctx, loc)
		if err != nil {
			return nil, err
		}
		return models.WaterTemperature{
			Temperature: models.Round(t.Fahrenheit, 1),
			Unit:        "°F",
			StationID:   t.StationID,
			Source:      t.Source,
			Timestamp:   models.Timestamp(t.Time),
		}, nil
	})
}

// WaterQuality handles GET /v1/marine/water-quality.
func (h *MarineHandler) WaterQuality(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(ctx context.Context, loc forecast.Location) (any, error) {
		q, err := h.forecast.WaterQuality(ctx, loc)
		if err != nil {
			return nil, err
		}
		return models.WaterQuality{
			Status:    q.Status,
			Salinity:  models.RoundPtr(q.SalinityPSU, 2),
			StationID: q.StationID,
			Source:    q.Source,
			Timestamp: models.TimestampPtr(q.Time),
		}, nil
	})
}

// Alerts handles GET /v1/marine/alerts.
func (h *MarineHandler) Alerts(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(ctx context.Context, loc forecast.Location) (any, error) {
		d, err := h.forecast.Alerts(ctx, loc)
		if err != nil {
			return nil, err
		}
		out := models.Alerts{
			Alerts:    make([]models.Alert, 0, len(d.Alerts)),
			Count:     len(d.Alerts),
			Source:    "NWS",
			FetchedAt: models.Timestamp(d.FetchedAt),
		}
		for _, a := range d.Alerts {
			out.Alerts = append(out.Alerts, models.Alert{
				ID:          a.ID,
				Event:       a.Event,
				Headline:    a.Headline,
				Description: a.Description,
				Instruction: a.Instruction,
				Severity:    string(a.Severity),
				Urgency:     a.Urgency,
				Certainty:   a.Certainty,
				Onset:       models.TimestampPtr(a.Onset),
				Expires:     models.TimestampPtr(a.Expires),
				Areas:       a.Areas,
			})
		}
		return out, nil
	})
}
