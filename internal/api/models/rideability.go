package models

// RideabilityRequest is the body of POST /v1/rideability. Speeds are in
// mph, direction in degrees and wave height in feet.
type RideabilityRequest struct {
	WindSpeed    *float64 `json:"windSpeed"`
	Gusts        *float64 `json:"gusts"`
	Direction    *float64 `json:"direction"`
	WaveHeight   *float64 `json:"waveHeight"`
	WaterQuality string   `json:"waterQuality"`
}

// Validate returns one FieldError per missing or out-of-range field.
func (r RideabilityRequest) Validate() []FieldError {
	var errs []FieldError
	nonNegative := func(field string, v *float64) {
		switch {
		case v == nil:
			errs = append(errs, FieldError{Field: field, Message: "required", Code: "REQUIRED"})
		case *v < 0:
			errs = append(errs, FieldError{Field: field, Message: "must not be negative", Code: "OUT_OF_RANGE"})
		}
	}
	nonNegative("windSpeed", r.WindSpeed)
	nonNegative("gusts", r.Gusts)
	nonNegative("waveHeight", r.WaveHeight)

	switch {
	case r.Direction == nil:
		errs = append(errs, FieldError{Field: "direction", Message: "required", Code: "REQUIRED"})
	case *r.Direction < 0 || *r.Direction > 360:
		errs = append(errs, FieldError{Field: "direction", Message: "must be between 0 and 360", Code: "OUT_OF_RANGE"})
	}
	return errs
}

// Rideability is the quick go/no-go rating.
type Rideability struct {
	Score   int    `json:"score"`
	Message string `json:"message"`
}
