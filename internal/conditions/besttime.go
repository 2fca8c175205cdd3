package conditions

import "time"

// BestTime is a forecast hour that beats the current score.
type BestTime struct {
	Index int
	Score int
	Time  time.Time

	// Formatted and HoursFromNow are filled in by the engine.
	Formatted    string
	HoursFromNow int
}

// SearchBestTime scores up to MaxForecastHours readings starting at current
// and returns the best one. It returns nil when current is out of range or
// no hour strictly beats currentScore.
func SearchBestTime(series Series, current, currentScore int, score func(Reading) int) *BestTime {
	if current < 0 || current >= len(series) {
		return nil
	}
	end := current + min(MaxForecastHours, len(series)-current)

	bestIdx := current
	bestScore := currentScore
	for i := current; i < end; i++ {
		if s := score(series[i]); s > bestScore {
			bestIdx = i
			bestScore = s
		}
	}
	if bestIdx == current || bestScore <= currentScore {
		return nil
	}
	return &BestTime{
		Index: bestIdx,
		Score: bestScore,
		Time:  series[bestIdx].Time,
	}
}
