// Package forecast fetches, caches and scores upstream marine data for a
// location.
package forecast

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/tidewise/tidewise/internal/conditions"
)

// Forecast errors.
var (
	ErrMissingInput        = errors.New("latitude and longitude required")
	ErrInvalidCoordinates  = errors.New("invalid coordinates")
	ErrUpstreamUnavailable = errors.New("upstream provider unavailable")
	ErrNoData              = errors.New("no data available")
)

// DefaultStationID is the CO-OPS station used when a location has none
// (Virginia Key, Biscayne Bay).
const DefaultStationID = "8723214"

// Location is a place conditions are computed for.
type Location struct {
	// ID keys the cache. Built-in spots use their slug; ad-hoc points use
	// a 0.01° grid key.
	ID   string
	Name string

	Lat float64
	Lon float64

	// StationID is the nearest NOAA CO-OPS station, if any.
	StationID string
}

// NewLocation builds an ad-hoc location for a coordinate pair.
func NewLocation(lat, lon float64, stationID string) (Location, error) {
	if err := ValidateCoordinates(lat, lon); err != nil {
		return Location{}, err
	}
	return Location{
		ID:        GridKey(lat, lon),
		Lat:       lat,
		Lon:       lon,
		StationID: stationID,
	}, nil
}

// GridKey snaps a coordinate to its 0.01° grid cell.
func GridKey(lat, lon float64) string {
	const grid = 0.01
	return fmt.Sprintf("%.2f:%.2f", math.Floor(lat/grid)*grid, math.Floor(lon/grid)*grid)
}

// ValidateCoordinates checks that lat and lon are finite and in range.
func ValidateCoordinates(lat, lon float64) error {
	if math.IsNaN(lat) || math.IsNaN(lon) || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return fmt.Errorf("%w: %v,%v", ErrInvalidCoordinates, lat, lon)
	}
	return nil
}

// Station returns the location's CO-OPS station or the default one.
func (l Location) Station() string {
	if l.StationID != "" {
		return l.StationID
	}
	return DefaultStationID
}

// WindForecast is the hourly wind forecast for a point, in m/s.
type WindForecast struct {
	Samples   []conditions.WindSample
	Provider  string
	FetchedAt time.Time
}

// WaveForecast is the hourly marine forecast for a point.
type WaveForecast struct {
	Samples   []conditions.WaveSample
	Provider  string
	FetchedAt time.Time
}

// TideType distinguishes high and low water.
type TideType string

const (
	TideHigh TideType = "H"
	TideLow  TideType = "L"
)

// TidePrediction is one predicted high or low water.
type TidePrediction struct {
	Time     time.Time
	HeightFt float64
	Type     TideType
}

// TideData holds tide predictions for a station.
type TideData struct {
	StationID   string
	StationName string
	Predictions []TidePrediction
	FetchedAt   time.Time
}

// Next returns the first prediction of type t after now.
func (d *TideData) Next(t TideType, now time.Time) *TidePrediction {
	for i := range d.Predictions {
		p := &d.Predictions[i]
		if p.Type == t && p.Time.After(now) {
			return p
		}
	}
	return nil
}

// WaterTemperature is the latest water temperature reading.
type WaterTemperature struct {
	Fahrenheit float64
	Time       time.Time
	StationID  string
	Source     string
}

// Water quality statuses.
const (
	QualityGood        = "Good"
	QualityUnavailable = "Unavailable"
)

// WaterQuality is the coarse water-quality label for a station.
type WaterQuality struct {
	Status      string
	SalinityPSU *float64
	Time        time.Time
	StationID   string
	Source      string
}

// AlertSeverity is the NWS severity of an alert.
type AlertSeverity string

const (
	SeverityExtreme  AlertSeverity = "Extreme"
	SeveritySevere   AlertSeverity = "Severe"
	SeverityModerate AlertSeverity = "Moderate"
	SeverityMinor    AlertSeverity = "Minor"
	SeverityUnknown  AlertSeverity = "Unknown"
)

// Alert is an active marine weather alert.
type Alert struct {
	ID          string
	Event       string
	Headline    string
	Description string
	Severity    AlertSeverity
	Urgency     string
	Certainty   string
	Onset       time.Time
	Expires     time.Time
	Areas       []string
	Instruction string
}

// AlertData holds the active alerts for a point.
type AlertData struct {
	Alerts    []Alert
	FetchedAt time.Time
}

// CurrentWind is the wind reading nearest to now, in display units.
type CurrentWind struct {
	Time         time.Time
	SpeedMph     *float64
	GustsMph     *float64
	DirectionDeg *float64
	Cardinal     string
}

// CurrentWaves is the wave reading nearest to now, in display units.
type CurrentWaves struct {
	Time         time.Time
	HeightFt     *float64
	PeriodS      *float64
	DirectionDeg *float64
	Cardinal     string
}
