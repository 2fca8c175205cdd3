package forecast

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tidewise/tidewise/internal/conditions"
	"github.com/tidewise/tidewise/internal/marine"
)

// Cache kinds, also used as metric labels.
const (
	KindWind             = "wind"
	KindWaves            = "waves"
	KindTides            = "tides"
	KindWaterTemperature = "water_temperature"
	KindWaterQuality     = "water_quality"
	KindAlerts           = "alerts"
)

// TideDays is how many days of tide predictions are requested.
const TideDays = 2

// ServiceConfig holds configuration for the forecast service.
type ServiceConfig struct {
	Wind  WindProvider
	Waves WaveProvider
	Tides TideProvider

	// WaterTemperature providers are tried in order until one succeeds.
	WaterTemperature []WaterTemperatureProvider

	WaterQuality WaterQualityProvider
	Alerts       AlertProvider

	// Engine scores readings. Defaults to the built-in profiles.
	Engine *conditions.Engine

	Logger   zerolog.Logger
	Observer Observer

	// CacheTTL is how long upstream payloads are reused (default: 5 minutes).
	CacheTTL time.Duration

	// StaleIfErrorTTL allows serving stale data on upstream errors
	// (default: 1 hour).
	StaleIfErrorTTL time.Duration

	// Now overrides the clock in tests.
	Now func() time.Time
}

// Service fetches upstream data through per-location caches and turns it
// into scored conditions and marine analytics.
type Service struct {
	windProvider    WindProvider
	waveProvider    WaveProvider
	tideProvider    TideProvider
	tempProviders   []WaterTemperatureProvider
	qualityProvider WaterQualityProvider
	alertProvider   AlertProvider

	engine          *conditions.Engine
	logger          zerolog.Logger
	observer        Observer
	cacheTTL        time.Duration
	staleIfErrorTTL time.Duration
	now             func() time.Time

	windCache    *ttlCache[*WindForecast]
	waveCache    *ttlCache[*WaveForecast]
	tideCache    *ttlCache[*TideData]
	tempCache    *ttlCache[*WaterTemperature]
	qualityCache *ttlCache[*WaterQuality]
	alertCache   *ttlCache[*AlertData]
}

// NewService creates a forecast service.
func NewService(cfg ServiceConfig) (*Service, error) {
	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 5 * time.Minute
	}

	staleIfErrorTTL := cfg.StaleIfErrorTTL
	if staleIfErrorTTL == 0 {
		staleIfErrorTTL = time.Hour
	}

	engine := cfg.Engine
	if engine == nil {
		var err error
		engine, err = conditions.NewEngine(conditions.EngineConfig{})
		if err != nil {
			return nil, fmt.Errorf("creating engine: %w", err)
		}
	}

	observer := cfg.Observer
	if observer == nil {
		observer = nopObserver{}
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	s := &Service{
		windProvider:    cfg.Wind,
		waveProvider:    cfg.Waves,
		tideProvider:    cfg.Tides,
		tempProviders:   cfg.WaterTemperature,
		qualityProvider: cfg.WaterQuality,
		alertProvider:   cfg.Alerts,
		engine:          engine,
		logger:          cfg.Logger,
		observer:        observer,
		cacheTTL:        cacheTTL,
		staleIfErrorTTL: staleIfErrorTTL,
		now:             now,
	}
	s.windCache = newTTLCache[*WindForecast](KindWind, s)
	s.waveCache = newTTLCache[*WaveForecast](KindWaves, s)
	s.tideCache = newTTLCache[*TideData](KindTides, s)
	s.tempCache = newTTLCache[*WaterTemperature](KindWaterTemperature, s)
	s.qualityCache = newTTLCache[*WaterQuality](KindWaterQuality, s)
	s.alertCache = newTTLCache[*AlertData](KindAlerts, s)
	return s, nil
}

// Engine returns the scoring engine.
func (s *Service) Engine() *conditions.Engine {
	return s.engine
}

// Conditions scores one sport at a location. A failure of the sport's
// anchor series is an error; any other missing input only removes that
// factor from the score.
func (s *Service) Conditions(ctx context.Context, sport conditions.Sport, loc Location) (*conditions.Condition, error) {
	p, err := s.engine.Profile(sport)
	if err != nil {
		return nil, err
	}

	in, windErr, waveErr := s.fetchInputs(ctx, loc)
	if err := s.checkAnchor(loc, p.Anchor, windErr, waveErr); err != nil {
		return nil, err
	}
	return s.evaluate(sport, loc, in)
}

// AllConditions scores every sport at a location. Sports whose anchor
// series is unavailable are left out; an error is returned only when no
// sport could be scored.
func (s *Service) AllConditions(ctx context.Context, loc Location) (map[conditions.Sport]*conditions.Condition, error) {
	in, windErr, waveErr := s.fetchInputs(ctx, loc)

	out := make(map[conditions.Sport]*conditions.Condition, len(conditions.Sports()))
	var errs []error
	for _, sport := range conditions.Sports() {
		p, err := s.engine.Profile(sport)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := s.checkAnchor(loc, p.Anchor, windErr, waveErr); err != nil {
			errs = append(errs, err)
			continue
		}
		c, err := s.evaluate(sport, loc, in)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out[sport] = c
	}

	if len(out) == 0 {
		return nil, errors.Join(errs...)
	}
	return out, nil
}

// fetchInputs loads wind, waves and water quality in parallel. Errors are
// returned per series so callers can decide which ones are fatal.
func (s *Service) fetchInputs(ctx context.Context, loc Location) (in conditions.Inputs, windErr, waveErr error) {
	var (
		wind    *WindForecast
		waves   *WaveForecast
		quality *WaterQuality
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		wind, windErr = s.windForecast(gCtx, loc)
		return nil
	})
	g.Go(func() error {
		waves, waveErr = s.waveForecast(gCtx, loc)
		return nil
	})
	if s.qualityProvider != nil {
		g.Go(func() error {
			q, err := s.WaterQuality(gCtx, loc)
			if err != nil {
				s.logger.Warn().Err(err).Str("location", loc.ID).Msg("water quality unavailable")
				return nil
			}
			quality = q
			return nil
		})
	}
	_ = g.Wait()

	if wind != nil {
		in.Wind = wind.Samples
	}
	if waves != nil {
		in.Waves = waves.Samples
	}
	if quality != nil && quality.Status != QualityUnavailable {
		in.WaterQuality = quality.Status
	}
	return in, windErr, waveErr
}

func (s *Service) checkAnchor(loc Location, anchor conditions.Anchor, windErr, waveErr error) error {
	anchorErr, otherErr := windErr, waveErr
	if anchor == conditions.AnchorWaves {
		anchorErr, otherErr = waveErr, windErr
	}
	if anchorErr != nil {
		return anchorErr
	}
	if otherErr != nil {
		s.logger.Warn().Err(otherErr).
			Str("location", loc.ID).
			Msg("secondary series unavailable, scoring with partial data")
	}
	return nil
}

func (s *Service) evaluate(sport conditions.Sport, loc Location, in conditions.Inputs) (*conditions.Condition, error) {
	c, err := s.engine.Evaluate(sport, in, s.now())
	if err != nil {
		return nil, err
	}
	s.observer.ObserveCondition(string(sport), loc.ID, string(c.Level), c.Score)
	return c, nil
}

// Wind returns the wind reading nearest to now.
func (s *Service) Wind(ctx context.Context, loc Location) (*CurrentWind, error) {
	f, err := s.windForecast(ctx, loc)
	if err != nil {
		return nil, err
	}
	idx := conditions.NearestIndex(windTimes(f.Samples), s.now())
	if idx < 0 {
		return nil, fmt.Errorf("%w: empty wind forecast", ErrNoData)
	}

	sample := f.Samples[idx]
	d := conditions.ToDisplay(conditions.Reading{
		WindSpeedMps: sample.SpeedMps,
		WindGustsMps: sample.GustsMps,
	})
	w := &CurrentWind{
		Time:         sample.Time,
		SpeedMph:     d.WindSpeedMph,
		GustsMph:     d.WindGustsMph,
		DirectionDeg: sample.DirectionDeg,
	}
	if sample.DirectionDeg != nil {
		w.Cardinal = marine.Cardinal(*sample.DirectionDeg)
	}
	return w, nil
}

// Waves returns the wave reading nearest to now.
func (s *Service) Waves(ctx context.Context, loc Location) (*CurrentWaves, error) {
	samples, idx, err := s.currentWaves(ctx, loc)
	if err != nil {
		return nil, err
	}

	sample := samples[idx]
	d := conditions.ToDisplay(conditions.Reading{WaveHeightM: sample.HeightM})
	w := &CurrentWaves{
		Time:         sample.Time,
		HeightFt:     d.WaveHeightFt,
		PeriodS:      sample.PeriodS,
		DirectionDeg: sample.DirectionDeg,
	}
	if sample.DirectionDeg != nil {
		w.Cardinal = marine.Cardinal(*sample.DirectionDeg)
	}
	return w, nil
}

// WaveEnergy estimates wave energy for the current hour.
func (s *Service) WaveEnergy(ctx context.Context, loc Location) (*marine.Energy, error) {
	samples, idx, err := s.currentWaves(ctx, loc)
	if err != nil {
		return nil, err
	}
	e, err := marine.WaveEnergy(samples[idx].HeightM, samples[idx].PeriodS)
	if err != nil {
		return nil, err
	}
	e.Time = samples[idx].Time
	return e, nil
}

// WaveConsistency analyses the next day of swell.
func (s *Service) WaveConsistency(ctx context.Context, loc Location) (*marine.Consistency, error) {
	samples, idx, err := s.currentWaves(ctx, loc)
	if err != nil {
		return nil, err
	}
	return marine.WaveConsistency(samples, idx)
}

// Swell splits the current sea state into primary and secondary swell.
func (s *Service) Swell(ctx context.Context, loc Location) (*marine.SwellReport, error) {
	samples, idx, err := s.currentWaves(ctx, loc)
	if err != nil {
		return nil, err
	}
	return marine.Swell(samples, idx)
}

// WaterVisibility estimates underwater visibility. Wind is optional.
func (s *Service) WaterVisibility(ctx context.Context, loc Location) (*marine.Visibility, error) {
	in, windErr, waveErr := s.fetchInputs(ctx, loc)
	if err := s.checkAnchor(loc, conditions.AnchorWaves, windErr, waveErr); err != nil {
		return nil, err
	}

	r, ok := conditions.CurrentReading(conditions.AnchorWaves, in.Wind, in.Waves, in.WaterQuality, s.now())
	if !ok {
		return nil, fmt.Errorf("%w: empty wave forecast", ErrNoData)
	}
	v := marine.WaterVisibility(conditions.ToDisplay(r))
	v.Time = r.Time
	return v, nil
}

// Tides returns high/low predictions for the location's station, starting
// at local midnight today.
func (s *Service) Tides(ctx context.Context, loc Location) (*TideData, error) {
	if s.tideProvider == nil {
		return nil, fmt.Errorf("%w: no tide provider configured", ErrUpstreamUnavailable)
	}
	station := loc.Station()
	local := s.now().In(s.engine.Location())
	from := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, local.Location())

	return s.tideCache.get(ctx, station+":"+from.Format("20060102"), func(ctx context.Context) (*TideData, error) {
		d, err := s.tideProvider.GetTides(ctx, station, from, TideDays)
		if err != nil {
			return nil, upstreamError(s.tideProvider.Name(), err)
		}
		return d, nil
	})
}

// WaterTemperature returns the latest water temperature, trying each
// provider in order.
func (s *Service) WaterTemperature(ctx context.Context, loc Location) (*WaterTemperature, error) {
	if len(s.tempProviders) == 0 {
		return nil, fmt.Errorf("%w: no water temperature provider configured", ErrUpstreamUnavailable)
	}
	return s.tempCache.get(ctx, temperatureKey(loc), func(ctx context.Context) (*WaterTemperature, error) {
		var errs []error
		for _, p := range s.tempProviders {
			t, err := p.GetWaterTemperature(ctx, loc)
			if err == nil {
				return t, nil
			}
			s.logger.Warn().Err(err).
				Str("provider", p.Name()).
				Str("location", loc.ID).
				Msg("water temperature provider failed, trying next")
			errs = append(errs, upstreamError(p.Name(), err))
		}
		return nil, errors.Join(errs...)
	})
}

// temperatureKey scopes water temperature to both the grid cell and the
// station, since a request may pick a station other than the default.
func temperatureKey(loc Location) string {
	return loc.ID + ":" + loc.Station()
}

// WaterQuality returns the water quality label for the location's station.
func (s *Service) WaterQuality(ctx context.Context, loc Location) (*WaterQuality, error) {
	if s.qualityProvider == nil {
		return nil, fmt.Errorf("%w: no water quality provider configured", ErrUpstreamUnavailable)
	}
	station := loc.Station()
	return s.qualityCache.get(ctx, station, func(ctx context.Context) (*WaterQuality, error) {
		q, err := s.qualityProvider.GetWaterQuality(ctx, station)
		if err != nil {
			return nil, upstreamError(s.qualityProvider.Name(), err)
		}
		return q, nil
	})
}

// Alerts returns active marine alerts near the location.
func (s *Service) Alerts(ctx context.Context, loc Location) (*AlertData, error) {
	if s.alertProvider == nil {
		return nil, fmt.Errorf("%w: no alert provider configured", ErrUpstreamUnavailable)
	}
	return s.alertCache.get(ctx, loc.ID, func(ctx context.Context) (*AlertData, error) {
		a, err := s.alertProvider.GetAlerts(ctx, loc.Lat, loc.Lon)
		if err != nil {
			return nil, upstreamError(s.alertProvider.Name(), err)
		}
		return a, nil
	})
}

// Warm loads the wind and wave caches for a location.
func (s *Service) Warm(ctx context.Context, loc Location) error {
	_, windErr, waveErr := s.fetchInputs(ctx, loc)
	return errors.Join(windErr, waveErr)
}

// InvalidateLocation drops every cached payload for the location, including
// the tide and water quality data of its station.
func (s *Service) InvalidateLocation(loc Location) {
	station := loc.Station()
	s.windCache.invalidate(loc.ID)
	s.waveCache.invalidate(loc.ID)
	s.tempCache.invalidate(temperatureKey(loc))
	s.alertCache.invalidate(loc.ID)
	s.tideCache.invalidatePrefix(station + ":")
	s.qualityCache.invalidate(station)
}

// InvalidateCache clears all cached data.
func (s *Service) InvalidateCache() {
	s.windCache.clear()
	s.waveCache.clear()
	s.tideCache.clear()
	s.tempCache.clear()
	s.qualityCache.clear()
	s.alertCache.clear()
}

// CacheStats returns per-kind cache statistics.
func (s *Service) CacheStats() map[string]CacheKindStats {
	return map[string]CacheKindStats{
		KindWind:             s.windCache.stats(),
		KindWaves:            s.waveCache.stats(),
		KindTides:            s.tideCache.stats(),
		KindWaterTemperature: s.tempCache.stats(),
		KindWaterQuality:     s.qualityCache.stats(),
		KindAlerts:           s.alertCache.stats(),
	}
}

func (s *Service) windForecast(ctx context.Context, loc Location) (*WindForecast, error) {
	if s.windProvider == nil {
		return nil, fmt.Errorf("%w: no wind provider configured", ErrUpstreamUnavailable)
	}
	return s.windCache.get(ctx, loc.ID, func(ctx context.Context) (*WindForecast, error) {
		f, err := s.windProvider.GetWind(ctx, loc.Lat, loc.Lon)
		if err != nil {
			return nil, upstreamError(s.windProvider.Name(), err)
		}
		return f, nil
	})
}

func (s *Service) waveForecast(ctx context.Context, loc Location) (*WaveForecast, error) {
	if s.waveProvider == nil {
		return nil, fmt.Errorf("%w: no wave provider configured", ErrUpstreamUnavailable)
	}
	return s.waveCache.get(ctx, loc.ID, func(ctx context.Context) (*WaveForecast, error) {
		f, err := s.waveProvider.GetWaves(ctx, loc.Lat, loc.Lon)
		if err != nil {
			return nil, upstreamError(s.waveProvider.Name(), err)
		}
		return f, nil
	})
}

// currentWaves returns the wave series and the index nearest to now.
func (s *Service) currentWaves(ctx context.Context, loc Location) ([]conditions.WaveSample, int, error) {
	f, err := s.waveForecast(ctx, loc)
	if err != nil {
		return nil, 0, err
	}
	times := make([]time.Time, len(f.Samples))
	for i, w := range f.Samples {
		times[i] = w.Time
	}
	idx := conditions.NearestIndex(times, s.now())
	if idx < 0 {
		return nil, 0, fmt.Errorf("%w: empty wave forecast", ErrNoData)
	}
	return f.Samples, idx, nil
}

func windTimes(samples []conditions.WindSample) []time.Time {
	times := make([]time.Time, len(samples))
	for i, w := range samples {
		times[i] = w.Time
	}
	return times
}

// upstreamError tags a provider failure. ErrNoData passes through so
// callers can tell an empty answer from an outage.
func upstreamError(provider string, err error) error {
	if errors.Is(err, ErrNoData) {
		return fmt.Errorf("%s: %w", provider, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrUpstreamUnavailable, provider, err)
}
