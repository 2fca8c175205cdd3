// Package handler provides HTTP handlers for the TideWise API.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tidewise/tidewise/internal/api/middleware"
	"github.com/tidewise/tidewise/internal/api/models"
	"github.com/tidewise/tidewise/internal/api/response"
	"github.com/tidewise/tidewise/internal/conditions"
	"github.com/tidewise/tidewise/internal/forecast"
	"github.com/tidewise/tidewise/internal/marine"
	"github.com/tidewise/tidewise/internal/spots"
)

// Forecaster is the forecast service as seen by the handlers.
type Forecaster interface {
	Conditions(ctx context.Context, sport conditions.Sport, loc forecast.Location) (*conditions.Condition, error)
	AllConditions(ctx context.Context, loc forecast.Location) (map[conditions.Sport]*conditions.Condition, error)

	Wind(ctx context.Context, loc forecast.Location) (*forecast.CurrentWind, error)
	Waves(ctx context.Context, loc forecast.Location) (*forecast.CurrentWaves, error)
	WaveEnergy(ctx context.Context, loc forecast.Location) (*marine.Energy, error)
	WaveConsistency(ctx context.Context, loc forecast.Location) (*marine.Consistency, error)
	Swell(ctx context.Context, loc forecast.Location) (*marine.SwellReport, error)
	WaterVisibility(ctx context.Context, loc forecast.Location) (*marine.Visibility, error)
	Tides(ctx context.Context, loc forecast.Location) (*forecast.TideData, error)
	WaterTemperature(ctx context.Context, loc forecast.Location) (*forecast.WaterTemperature, error)
	WaterQuality(ctx context.Context, loc forecast.Location) (*forecast.WaterQuality, error)
	Alerts(ctx context.Context, loc forecast.Location) (*forecast.AlertData, error)

	CacheStats() map[string]forecast.CacheKindStats
}

// validationError carries field errors for a 400 response.
type validationError struct {
	err    error
	fields []models.FieldError
}

func (e *validationError) Error() string { return e.err.Error() }
func (e *validationError) Unwrap() error { return e.err }

// parseLocation reads lat, lon and the optional station and locationId
// query parameters. A locationId naming a built-in spot lends the spot's
// name and, when no station is given, its station.
func parseLocation(r *http.Request) (forecast.Location, error) {
	q := r.URL.Query()
	latRaw := strings.TrimSpace(q.Get("lat"))
	lonRaw := strings.TrimSpace(q.Get("lon"))

	var fields []models.FieldError
	if latRaw == "" {
		fields = append(fields, models.FieldError{Field: "lat", Message: "required", Code: "REQUIRED"})
	}
	if lonRaw == "" {
		fields = append(fields, models.FieldError{Field: "lon", Message: "required", Code: "REQUIRED"})
	}
	if len(fields) > 0 {
		return forecast.Location{}, &validationError{err: forecast.ErrMissingInput, fields: fields}
	}

	lat, err := strconv.ParseFloat(latRaw, 64)
	if err != nil {
		fields = append(fields, models.FieldError{Field: "lat", Message: "must be a number", Code: "INVALID"})
	}
	lon, err := strconv.ParseFloat(lonRaw, 64)
	if err != nil {
		fields = append(fields, models.FieldError{Field: "lon", Message: "must be a number", Code: "INVALID"})
	}
	if len(fields) > 0 {
		return forecast.Location{}, &validationError{err: forecast.ErrInvalidCoordinates, fields: fields}
	}

	station := strings.TrimSpace(q.Get("station"))
	var name string
	if id := q.Get("locationId"); id != "" {
		if spot, err := spots.Get(id); err == nil {
			name = spot.Name
			if station == "" {
				station = spot.StationID
			}
		}
	}

	loc, err := forecast.NewLocation(lat, lon, station)
	if err != nil {
		return forecast.Location{}, &validationError{err: err, fields: []models.FieldError{
			{Field: "lat", Message: "must be between -90 and 90", Code: "OUT_OF_RANGE"},
			{Field: "lon", Message: "must be between -180 and 180", Code: "OUT_OF_RANGE"},
		}}
	}
	loc.Name = name
	return loc, nil
}

// writeError maps a service error onto a problem response. An upstream
// outage wins over an empty answer when both are present.
func writeError(w http.ResponseWriter, r *http.Request, log zerolog.Logger, err error) {
	var verr *validationError
	switch {
	case errors.As(err, &verr):
		response.BadRequest(w, r, verr.Error(), verr.fields)
	case errors.Is(err, forecast.ErrMissingInput), errors.Is(err, forecast.ErrInvalidCoordinates):
		response.BadRequest(w, r, err.Error(), nil)
	case errors.Is(err, conditions.ErrUnknownSport), errors.Is(err, spots.ErrNotFound):
		response.NotFound(w, r, err.Error())
	case errors.Is(err, forecast.ErrUpstreamUnavailable), errors.Is(err, context.DeadlineExceeded):
		log.Error().Err(err).
			Str("request_id", middleware.GetRequestID(r.Context())).
			Str("path", r.URL.Path).
			Msg("upstream unavailable")
		response.ServiceUnavailable(w, r, "an upstream data provider is unavailable, try again shortly")
	case errors.Is(err, forecast.ErrNoData),
		errors.Is(err, conditions.ErrEmptySeries),
		errors.Is(err, marine.ErrInvalidWaveData),
		errors.Is(err, marine.ErrInsufficientData):
		response.NoData(w, r, err.Error())
	default:
		log.Error().Err(err).
			Str("request_id", middleware.GetRequestID(r.Context())).
			Str("path", r.URL.Path).
			Msg("request failed")
		response.InternalError(w, r, "an unexpected error occurred")
	}
}
