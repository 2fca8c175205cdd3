package marine

import "strings"

// RideabilityInput is the quick-check payload. Speeds are in mph and wave
// height in feet.
type RideabilityInput struct {
	WindSpeed    float64 `json:"windSpeed"`
	Gusts        float64 `json:"gusts"`
	Direction    float64 `json:"direction"`
	WaveHeight   float64 `json:"waveHeight"`
	WaterQuality string  `json:"waterQuality"`
}

// Rideability is a coarse go/no-go rating for kite sessions.
type Rideability struct {
	Score   int    `json:"score"`
	Message string `json:"message"`
}

// Rate starts from 100 and subtracts a fixed penalty per unfavourable
// condition. Winds from 190° to 350° exclusive count as offshore.
func Rate(in RideabilityInput) Rideability {
	score := 100
	if in.WindSpeed < 12 {
		score -= 30
	}
	if in.WindSpeed > 30 {
		score -= 20
	}
	if in.Gusts-in.WindSpeed > 5 {
		score -= 10
	}
	if in.WaveHeight > 2.5 {
		score -= 10
	}
	if !strings.EqualFold(in.WaterQuality, "Good") {
		score -= 15
	}
	if in.Direction > 190 && in.Direction < 350 {
		score -= 10
	}

	msg := "Perfect 🌞"
	switch {
	case score < 40:
		msg = "Unsafe 🚫"
	case score < 60:
		msg = "Marginal ⚠️"
	}
	return Rideability{Score: score, Message: msg}
}
