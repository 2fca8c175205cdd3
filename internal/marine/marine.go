// Package marine derives sea-state analytics from wave and wind readings:
// wave energy, swell consistency, underwater visibility and swell
// decomposition.
package marine

import (
	"errors"
	"math"
)

// Marine errors.
var (
	ErrInvalidWaveData  = errors.New("invalid wave data")
	ErrInsufficientData = errors.New("insufficient data")
)

var cardinals = [16]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// Cardinal returns the 16-point compass name for a bearing in degrees.
func Cardinal(deg float64) string {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return cardinals[int(math.Round(deg/22.5))%16]
}

func valid(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}
