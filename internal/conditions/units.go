package conditions

// Unit conversion constants. Every scorer uses these, so one raw input always
// yields the same display value.
const (
	MpsToMph     = 2.23694
	MetersToFeet = 3.28084
)

// MpsToMphValue converts a speed in m/s to mph.
func MpsToMphValue(mps float64) float64 {
	return mps * MpsToMph
}

// MetersToFeetValue converts a length in meters to feet.
func MetersToFeetValue(m float64) float64 {
	return m * MetersToFeet
}

// Float64 returns a pointer to v. Useful for building readings.
func Float64(v float64) *float64 {
	return &v
}

func scale(v *float64, factor float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v * factor
	return &out
}
