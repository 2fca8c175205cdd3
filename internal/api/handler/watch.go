package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tidewise/tidewise/internal/api/models"
	"github.com/tidewise/tidewise/internal/api/response"
	"github.com/tidewise/tidewise/internal/conditions"
	"github.com/tidewise/tidewise/internal/forecast"
)

// WatchMaxAge is how long watch clients may cache a payload.
const WatchMaxAge = 5 * time.Minute

// WatchHandler serves the compact smartwatch payload.
type WatchHandler struct {
	forecast Forecaster
	log      zerolog.Logger
	now      func() time.Time
}

// NewWatchHandler creates a new WatchHandler. A nil now uses time.Now.
func NewWatchHandler(f Forecaster, log zerolog.Logger, now func() time.Time) *WatchHandler {
	if now == nil {
		now = time.Now
	}
	return &WatchHandler{forecast: f, log: log, now: now}
}

// Conditions handles GET /v1/watch/conditions?lat&lon[&sport][&locationId].
// Wind, waves and the score are fetched together; whichever part fails is
// sent as null. The request fails only when all three do.
func (h *WatchHandler) Conditions(w http.ResponseWriter, r *http.Request) {
	sportName := r.URL.Query().Get("sport")
	if sportName == "" {
		sportName = string(conditions.Surfing)
	}
	sport, err := conditions.ParseSport(sportName)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	loc, err := parseLocation(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	var (
		wind     *forecast.CurrentWind
		waves    *forecast.CurrentWaves
		cond     *conditions.Condition
		windErr  error
		waveErr  error
		scoreErr error
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		wind, windErr = h.forecast.Wind(ctx, loc)
		return nil
	})
	g.Go(func() error {
		waves, waveErr = h.forecast.Waves(ctx, loc)
		return nil
	})
	g.Go(func() error {
		cond, scoreErr = h.forecast.Conditions(ctx, sport, loc)
		return nil
	})
	_ = g.Wait()

	if windErr != nil && waveErr != nil && scoreErr != nil {
		writeError(w, r, h.log, scoreErr)
		return
	}

	if err := errors.Join(windErr, waveErr, scoreErr); err != nil {
		h.log.Warn().Err(err).Str("location", loc.ID).Msg("watch payload incomplete")
	}

	out := models.WatchConditions{TS: h.now().UnixMilli()}
	if wind != nil {
		out.Wind = models.WatchWind{
			Speed:     models.RoundPtr(wind.SpeedMph, 1),
			Gusts:     models.RoundPtr(wind.GustsMph, 1),
			Direction: models.RoundPtr(wind.DirectionDeg, 0),
		}
		if wind.Cardinal != "" {
			out.Wind.Cardinal = &wind.Cardinal
		}
	}
	if waves != nil {
		out.Waves = models.WatchWaves{
			Height: models.RoundPtr(waves.HeightFt, 1),
			Period: models.RoundPtr(waves.PeriodS, 0),
		}
	}
	if cond != nil {
		level, emoji := string(cond.Level), cond.Emoji
		out.Score = models.WatchScore{Score: &cond.Score, Level: &level, Emoji: &emoji}
	}
	if id := strings.TrimSpace(r.URL.Query().Get("locationId")); id != "" {
		out.Location = &id
	}

	response.CacheFor(w, WatchMaxAge)
	response.JSON(w, r, http.StatusOK, out)
}
