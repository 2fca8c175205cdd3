package marine

import (
	"math"
	"time"

	"github.com/tidewise/tidewise/internal/conditions"
)

// Underwater visibility bounds, in feet.
const (
	baseVisibilityFt = 25.0
	minVisibilityFt  = 2.0
	maxVisibilityFt  = 50.0
)

// Visibility is an estimate of underwater visibility.
type Visibility struct {
	Feet        float64
	Level       string
	Description string

	WaveHeightFt *float64
	WavePeriodS  *float64
	WindSpeedMph *float64

	Time time.Time
}

// WaterVisibility estimates visibility from sea state. Each present input
// scales the calm-water baseline down; missing inputs are ignored.
func WaterVisibility(d conditions.Display) *Visibility {
	vis := baseVisibilityFt

	if h := d.WaveHeightFt; valid(h) {
		switch {
		case *h < 1:
		case *h < 2:
			vis *= 0.8
		case *h < 3:
			vis *= 0.6
		default:
			vis *= 0.4
		}
	}

	if p := d.WavePeriodS; valid(p) {
		switch {
		case *p < 4:
			vis *= 0.7
		case *p < 6:
			vis *= 0.85
		}
	}

	if w := d.WindSpeedMph; valid(w) {
		switch {
		case *w < 5:
		case *w < 10:
			vis *= 0.9
		case *w < 15:
			vis *= 0.75
		case *w < 20:
			vis *= 0.6
		default:
			vis *= 0.4
		}
	}

	if gf := d.GustFactor(); valid(gf) {
		switch {
		case *gf > 10:
			vis *= 0.8
		case *gf > 5:
			vis *= 0.9
		}
	}

	v := &Visibility{
		Feet:         math.Max(minVisibilityFt, math.Min(maxVisibilityFt, vis)),
		WaveHeightFt: d.WaveHeightFt,
		WavePeriodS:  d.WavePeriodS,
		WindSpeedMph: d.WindSpeedMph,
	}
	switch {
	case v.Feet >= 30:
		v.Level, v.Description = "Excellent", "Crystal clear water - excellent visibility"
	case v.Feet >= 20:
		v.Level, v.Description = "Very Good", "Very clear water - great visibility"
	case v.Feet >= 15:
		v.Level, v.Description = "Good", "Good visibility for snorkeling"
	case v.Feet >= 10:
		v.Level, v.Description = "Fair", "Moderate visibility"
	case v.Feet >= 5:
		v.Level, v.Description = "Poor", "Limited visibility - choppy conditions"
	default:
		v.Level, v.Description = "Very Poor", "Very poor visibility - avoid snorkeling"
	}
	return v
}
