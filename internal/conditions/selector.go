package conditions

import "time"

// NearestIndex returns the index whose timestamp is closest to now, or -1
// for an empty series. The first of several equally close entries wins.
func NearestIndex(times []time.Time, now time.Time) int {
	best := -1
	var bestDist time.Duration
	for i, t := range times {
		dist := t.Sub(now)
		if dist < 0 {
			dist = -dist
		}
		if best == -1 || dist < bestDist {
			best = i
			bestDist = dist
		}
	}
	return best
}
