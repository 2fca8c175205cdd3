package conditions

import (
	"fmt"
	"math"
	"time"

	_ "time/tzdata" // display zone must resolve on minimal images
)

// DefaultTimeZone is the zone best times are formatted in.
const DefaultTimeZone = "America/New_York"

// BestTimeLayout formats best-time hours, e.g. "3:00 PM".
const BestTimeLayout = "3:04 PM"

// Condition is a scored reading ready for presentation.
type Condition struct {
	Sport Sport
	Result

	Display    Display
	GustFactor *float64

	// IsOnshore and IsOffshore are set only for sports whose profile uses
	// that relation, and only when its inputs are present.
	IsOnshore  *bool
	IsOffshore *bool

	Timestamp time.Time
	Best      *BestTime
}

// Forecast is the window used for the best-time search.
type Forecast struct {
	Series       Series
	CurrentIndex int
	Now          time.Time
}

// Inputs are the raw upstream series for one location.
type Inputs struct {
	Wind         []WindSample
	Waves        []WaveSample
	WaterQuality string
}

// EngineConfig configures an Engine.
type EngineConfig struct {
	// Location is the zone best times are formatted in. Defaults to
	// America/New_York.
	Location *time.Location

	// Profiles overrides the built-in sport profiles.
	Profiles map[Sport]*Profile
}

// Engine scores readings for every configured sport.
type Engine struct {
	profiles map[Sport]*Profile
	location *time.Location
}

// NewEngine creates an engine with the given config.
func NewEngine(cfg EngineConfig) (*Engine, error) {
	if cfg.Profiles == nil {
		cfg.Profiles = DefaultProfiles()
	}
	if cfg.Location == nil {
		loc, err := time.LoadLocation(DefaultTimeZone)
		if err != nil {
			return nil, fmt.Errorf("loading time zone: %w", err)
		}
		cfg.Location = loc
	}
	return &Engine{
		profiles: cfg.Profiles,
		location: cfg.Location,
	}, nil
}

// Profile returns the profile for a sport.
func (e *Engine) Profile(sport Sport) (*Profile, error) {
	p, ok := e.profiles[sport]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSport, sport)
	}
	return p, nil
}

// Location returns the engine's display time zone.
func (e *Engine) Location() *time.Location {
	return e.location
}

// Compute scores a reading for a sport. When forecast is non-nil and the
// sport supports it, the best upcoming hour is attached.
func (e *Engine) Compute(sport Sport, reading Reading, forecast *Forecast) (*Condition, error) {
	p, err := e.Profile(sport)
	if err != nil {
		return nil, err
	}

	d := ToDisplay(reading)
	res := Score(p, d)
	rel := p.relations(d)

	c := &Condition{
		Sport:      sport,
		Result:     res,
		Display:    d,
		GustFactor: d.GustFactor(),
		IsOnshore:  rel.onshore,
		IsOffshore: rel.offshore,
		Timestamp:  reading.Time,
	}

	if forecast == nil || !p.BestTime || len(forecast.Series) == 0 {
		return c, nil
	}
	if forecast.CurrentIndex < 0 || forecast.CurrentIndex >= len(forecast.Series) {
		return nil, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, forecast.CurrentIndex, len(forecast.Series))
	}

	best := SearchBestTime(forecast.Series, forecast.CurrentIndex, res.Score, func(r Reading) int {
		return Score(p, ToDisplay(r)).Score
	})
	if best != nil {
		now := forecast.Now
		if now.IsZero() {
			now = time.Now()
		}
		best.Formatted = best.Time.In(e.location).Format(BestTimeLayout)
		best.HoursFromNow = int(math.Round(best.Time.Sub(now).Hours()))
		c.Best = best
	}
	return c, nil
}

// Evaluate selects the current reading from raw upstream series, builds
// the forecast window over the sport's anchor series and scores it.
func (e *Engine) Evaluate(sport Sport, in Inputs, now time.Time) (*Condition, error) {
	p, err := e.Profile(sport)
	if err != nil {
		return nil, err
	}

	reading, ok := CurrentReading(p.Anchor, in.Wind, in.Waves, in.WaterQuality, now)
	if !ok {
		return nil, fmt.Errorf("%w: no %s data", ErrEmptySeries, anchorName(p.Anchor))
	}

	var forecast *Forecast
	if p.BestTime {
		series := BuildSeries(p.Anchor, in.Wind, in.Waves, in.WaterQuality)
		forecast = &Forecast{
			Series:       series,
			CurrentIndex: NearestIndex(series.Times(), now),
			Now:          now,
		}
	}
	return e.Compute(sport, reading, forecast)
}

func anchorName(a Anchor) string {
	if a == AnchorWaves {
		return "wave"
	}
	return "wind"
}
