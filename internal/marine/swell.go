package marine

import (
	"fmt"
	"math"
	"time"

	"github.com/tidewise/tidewise/internal/conditions"
)

// SwellComponent is one swell train.
type SwellComponent struct {
	HeightM      float64
	PeriodS      float64
	DirectionDeg float64
	Cardinal     string
}

// SwellReport splits the current sea state into a primary swell and an
// estimated secondary swell.
type SwellReport struct {
	Primary   SwellComponent
	Secondary SwellComponent
	Time      time.Time
}

// Swell builds the swell report for samples[idx]. The primary period is the
// peak period when known. The secondary swell is estimated at 60% of the
// height, the mean period of the surrounding five hours and a 30° offset.
func Swell(samples []conditions.WaveSample, idx int) (*SwellReport, error) {
	if idx < 0 || idx >= len(samples) {
		return nil, fmt.Errorf("%w: index %d of %d", ErrInsufficientData, idx, len(samples))
	}
	cur := samples[idx]
	if !valid(cur.HeightM) || !valid(cur.DirectionDeg) {
		return nil, fmt.Errorf("%w: height and direction are required", ErrInvalidWaveData)
	}

	primary := SwellComponent{
		HeightM:      *cur.HeightM,
		DirectionDeg: *cur.DirectionDeg,
		Cardinal:     Cardinal(*cur.DirectionDeg),
	}
	switch {
	case valid(cur.PeakPeriodS) && *cur.PeakPeriodS > 0:
		primary.PeriodS = *cur.PeakPeriodS
	case valid(cur.PeriodS):
		primary.PeriodS = *cur.PeriodS
	}

	var sum float64
	var n int
	for i := max(0, idx-2); i < min(len(samples), idx+3); i++ {
		if valid(samples[i].PeriodS) {
			sum += *samples[i].PeriodS
			n++
		}
	}
	secondaryDir := math.Mod(*cur.DirectionDeg+30, 360)
	secondary := SwellComponent{
		HeightM:      *cur.HeightM * 0.6,
		DirectionDeg: secondaryDir,
		Cardinal:     Cardinal(secondaryDir),
	}
	if n > 0 {
		secondary.PeriodS = sum / float64(n)
	}

	return &SwellReport{
		Primary:   primary,
		Secondary: secondary,
		Time:      cur.Time,
	}, nil
}
