package conditions

import (
	"fmt"
	"math"
)

// Result is the outcome of scoring one reading.
type Result struct {
	Score       int
	Level       Level
	Description string
	Emoji       string

	// Factors holds the formatted value of every input that contributed.
	Factors map[Factor]string

	// Adjustments holds the delta each factor added to the base score.
	Adjustments map[Factor]int
}

// Score applies a profile to a normalized reading. Missing inputs are
// skipped, and the total is clamped to [0, 100].
func Score(p *Profile, d Display) Result {
	res := Result{
		Factors:     make(map[Factor]string),
		Adjustments: make(map[Factor]int),
	}
	rel := p.relations(d)
	total := BaseScore

	for _, f := range bandedFactors {
		bands, ok := p.Bands[f]
		if !ok {
			continue
		}
		v := factorValue(f, d)
		if v == nil || math.IsNaN(*v) {
			continue
		}
		res.Factors[f] = formatFactor(f, *v)
		if b, ok := lookup(bands, *v, rel); ok {
			total += b.Delta
			res.Adjustments[f] = b.Delta
		}
	}

	if p.Direction != nil && p.Direction.Delta != 0 && rel.holds(p.Direction.Relation) {
		total += p.Direction.Delta
		res.Adjustments[FactorDirection] = p.Direction.Delta
	}
	if d.WindDirectionDeg != nil && p.Direction != nil {
		res.Factors[FactorDirection] = fmt.Sprintf("%.0f°", *d.WindDirectionDeg)
	}

	if len(p.Quality) > 0 && d.WaterQuality != "" {
		res.Factors[FactorWaterQuality] = d.WaterQuality
		for _, kb := range p.Quality {
			if kb.matches(d.WaterQuality) {
				total += kb.Delta
				res.Adjustments[FactorWaterQuality] = kb.Delta
				break
			}
		}
	}

	res.Score = clamp(total)
	res.Level = LevelFor(res.Score)
	text := p.Levels[res.Level]
	res.Description = text.Description
	res.Emoji = text.Emoji
	return res
}

func factorValue(f Factor, d Display) *float64 {
	switch f {
	case FactorWindSpeed:
		return d.WindSpeedMph
	case FactorGustFactor:
		return d.GustFactor()
	case FactorWaveHeight:
		return d.WaveHeightFt
	case FactorWavePeriod:
		return d.WavePeriodS
	default:
		return nil
	}
}

func formatFactor(f Factor, v float64) string {
	switch f {
	case FactorWindSpeed, FactorGustFactor:
		return fmt.Sprintf("%.1f mph", v)
	case FactorWaveHeight:
		return fmt.Sprintf("%.1f ft", v)
	case FactorWavePeriod:
		return fmt.Sprintf("%.0f s", v)
	default:
		return fmt.Sprintf("%.1f", v)
	}
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
