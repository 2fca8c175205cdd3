package marine

import (
	"fmt"
	"math"
	"time"

	"github.com/tidewise/tidewise/internal/conditions"
)

// ConsistencyWindow is the number of hours analysed from the current hour.
const ConsistencyWindow = 24

// Consistency summarizes how steady the swell is over the next day.
type Consistency struct {
	Score       float64
	Level       string
	Description string

	HeightConsistency    float64
	PeriodConsistency    float64
	DirectionConsistency float64

	AvgHeightM       float64
	AvgPeriodS       float64
	MeanDirectionDeg float64

	// Time is the first hour of the analysed window.
	Time time.Time
}

// WaveConsistency analyses up to ConsistencyWindow samples starting at
// current. Height and period consistency are 100 minus the coefficient of
// variation; direction consistency is the mean resultant length.
func WaveConsistency(samples []conditions.WaveSample, current int) (*Consistency, error) {
	if current < 0 || current >= len(samples) {
		return nil, fmt.Errorf("%w: current index %d of %d", ErrInsufficientData, current, len(samples))
	}
	window := samples[current:min(len(samples), current+ConsistencyWindow)]

	var heights, periods, dirs []float64
	for _, s := range window {
		if valid(s.HeightM) {
			heights = append(heights, *s.HeightM)
		}
		if valid(s.PeriodS) {
			periods = append(periods, *s.PeriodS)
		}
		if valid(s.DirectionDeg) {
			dirs = append(dirs, *s.DirectionDeg)
		}
	}
	if len(heights) == 0 || len(periods) == 0 || len(dirs) == 0 {
		return nil, fmt.Errorf("%w: need height, period and direction samples", ErrInsufficientData)
	}

	avgH, cvH := coefficientOfVariation(heights)
	avgP, cvP := coefficientOfVariation(periods)
	meanDir, resultant := circularMean(dirs)

	c := &Consistency{
		HeightConsistency:    math.Max(0, 100-cvH),
		PeriodConsistency:    math.Max(0, 100-cvP),
		DirectionConsistency: resultant * 100,
		AvgHeightM:           avgH,
		AvgPeriodS:           avgP,
		MeanDirectionDeg:     meanDir,
		Time:                 window[0].Time,
	}
	c.Score = 0.4*c.HeightConsistency + 0.3*c.PeriodConsistency + 0.3*c.DirectionConsistency

	switch {
	case c.Score >= 80:
		c.Level, c.Description = "Excellent", "Very consistent conditions"
	case c.Score >= 65:
		c.Level, c.Description = "Good", "Consistent conditions"
	case c.Score >= 50:
		c.Level, c.Description = "Fair", "Moderately consistent"
	case c.Score >= 35:
		c.Level, c.Description = "Poor", "Inconsistent conditions"
	default:
		c.Level, c.Description = "Very Poor", "Very inconsistent conditions"
	}
	return c, nil
}

// coefficientOfVariation returns the mean and the population CV in percent.
// A zero mean yields a CV of 0.
func coefficientOfVariation(vals []float64) (mean, cv float64) {
	for _, v := range vals {
		mean += v
	}
	mean /= float64(len(vals))
	if mean == 0 {
		return 0, 0
	}

	var variance float64
	for _, v := range vals {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(vals))
	return mean, math.Sqrt(variance) / mean * 100
}

// circularMean returns the mean bearing in degrees (-180, 180] and the mean
// resultant length in [0, 1].
func circularMean(degs []float64) (mean, resultant float64) {
	var sinSum, cosSum float64
	for _, d := range degs {
		rad := d * math.Pi / 180
		sinSum += math.Sin(rad)
		cosSum += math.Cos(rad)
	}
	n := float64(len(degs))
	mean = math.Atan2(sinSum/n, cosSum/n) * 180 / math.Pi
	resultant = math.Hypot(sinSum, cosSum) / n
	return mean, resultant
}
