// Package conditions turns wind and wave readings into water-sport
// suitability scores.
package conditions

import (
	"errors"
	"time"
)

// Engine errors.
var (
	ErrUnknownSport    = errors.New("unknown sport")
	ErrEmptySeries     = errors.New("empty forecast series")
	ErrIndexOutOfRange = errors.New("current index out of range")
)

// Reading is one hour of upstream data in SI units.
// Nil fields are absent and contribute nothing to a score.
type Reading struct {
	Time time.Time

	WindSpeedMps     *float64
	WindGustsMps     *float64
	WindDirectionDeg *float64 // meteorological "from" convention

	WaveHeightM      *float64
	WavePeriodS      *float64
	WaveDirectionDeg *float64

	// WaterQuality is a free-text category such as "Good".
	WaterQuality string
}

// Display is a Reading normalized to mph and feet.
type Display struct {
	WindSpeedMph     *float64
	WindGustsMph     *float64
	WindDirectionDeg *float64
	WaveHeightFt     *float64
	WavePeriodS      *float64
	WaveDirectionDeg *float64
	WaterQuality     string
}

// ToDisplay normalizes a raw reading. Missing inputs stay missing.
func ToDisplay(r Reading) Display {
	return Display{
		WindSpeedMph:     scale(r.WindSpeedMps, MpsToMph),
		WindGustsMph:     scale(r.WindGustsMps, MpsToMph),
		WindDirectionDeg: r.WindDirectionDeg,
		WaveHeightFt:     scale(r.WaveHeightM, MetersToFeet),
		WavePeriodS:      r.WavePeriodS,
		WaveDirectionDeg: r.WaveDirectionDeg,
		WaterQuality:     r.WaterQuality,
	}
}

// GustFactor returns gusts minus sustained wind in mph, or nil when either
// value is absent.
func (d Display) GustFactor() *float64 {
	if d.WindSpeedMph == nil || d.WindGustsMph == nil {
		return nil
	}
	gf := *d.WindGustsMph - *d.WindSpeedMph
	return &gf
}

// Series is an hourly forecast ordered by time.
type Series []Reading

// Times returns the timestamp of every reading.
func (s Series) Times() []time.Time {
	times := make([]time.Time, len(s))
	for i, r := range s {
		times[i] = r.Time
	}
	return times
}
