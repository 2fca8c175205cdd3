package marine

import (
	"fmt"
	"time"
)

const (
	seawaterDensity = 1025.0 // kg/m³
	gravity         = 9.81   // m/s²
)

// Energy is the wave energy estimate for one reading.
type Energy struct {
	// EnergyKJ is wave energy density in kJ/m².
	EnergyKJ float64

	// PowerKW is energy flux in kW/m.
	PowerKW float64

	Level       string
	Description string

	HeightM float64
	PeriodS float64

	// Time is the forecast hour the estimate describes.
	Time time.Time
}

// WaveEnergy computes E = ρgH²T/8 and P = E/T for a wave height in metres
// and a period in seconds.
func WaveEnergy(heightM, periodS *float64) (*Energy, error) {
	if !valid(heightM) || !valid(periodS) || *periodS <= 0 {
		return nil, fmt.Errorf("%w: height and period are required", ErrInvalidWaveData)
	}
	h, t := *heightM, *periodS

	kj := seawaterDensity * gravity * h * h * t / 8 / 1000
	e := &Energy{
		EnergyKJ: kj,
		PowerKW:  kj / t,
		HeightM:  h,
		PeriodS:  t,
	}

	switch {
	case kj > 50:
		e.Level, e.Description = "Very High", "Powerful surf"
	case kj > 30:
		e.Level, e.Description = "High", "Strong conditions"
	case kj > 15:
		e.Level, e.Description = "Moderate", "Good surf energy"
	case kj > 5:
		e.Level, e.Description = "Low-Moderate", "Moderate conditions"
	default:
		e.Level, e.Description = "Low", "Gentle conditions"
	}
	return e, nil
}
