package conditions

import (
	"fmt"
	"strings"
)

// Sport identifies a scored activity.
type Sport string

const (
	Surfing        Sport = "surfing"
	Kiteboarding   Sport = "kiteboarding"
	Wakeboarding   Sport = "wakeboarding"
	Snorkeling     Sport = "snorkeling"
	Paddleboarding Sport = "paddleboarding"
	Sailing        Sport = "sailing"
)

// Sports returns every supported sport in display order.
func Sports() []Sport {
	return []Sport{Surfing, Kiteboarding, Wakeboarding, Snorkeling, Paddleboarding, Sailing}
}

// ParseSport resolves a sport name. Matching is case-insensitive and a
// trailing "-conditions" is ignored.
func ParseSport(s string) (Sport, error) {
	name := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "-conditions")
	for _, sport := range Sports() {
		if string(sport) == name {
			return sport, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSport, s)
}

func (s Sport) String() string {
	return string(s)
}

// Level is the qualitative band of a score.
type Level string

const (
	LevelExcellent Level = "Excellent"
	LevelGood      Level = "Good"
	LevelFair      Level = "Fair"
	LevelPoor      Level = "Poor"
	LevelVeryPoor  Level = "Very Poor"
)

// Levels returns every level from best to worst.
func Levels() []Level {
	return []Level{LevelExcellent, LevelGood, LevelFair, LevelPoor, LevelVeryPoor}
}

// LevelFor maps a clamped score to its level.
func LevelFor(score int) Level {
	switch {
	case score >= 80:
		return LevelExcellent
	case score >= 65:
		return LevelGood
	case score >= 50:
		return LevelFair
	case score >= 35:
		return LevelPoor
	default:
		return LevelVeryPoor
	}
}
