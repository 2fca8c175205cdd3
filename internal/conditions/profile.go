package conditions

import (
	"math"
	"strings"
)

// Factor names a scored input.
type Factor string

const (
	FactorWindSpeed    Factor = "windSpeed"
	FactorGustFactor   Factor = "gustFactor"
	FactorWaveHeight   Factor = "waveHeight"
	FactorWavePeriod   Factor = "wavePeriod"
	FactorDirection    Factor = "direction"
	FactorWaterQuality Factor = "waterQuality"
)

// bandedFactors are looked up in band tables, in scoring order.
var bandedFactors = []Factor{FactorWindSpeed, FactorGustFactor, FactorWaveHeight, FactorWavePeriod}

// Relation is a wind direction relationship a band can depend on.
type Relation int

const (
	RelationNone Relation = iota
	// RelationOnshore holds when the wind direction falls in the profile's onshore window.
	RelationOnshore
	// RelationOffshore holds when |windDir - waveDir| is in (90, 270).
	RelationOffshore
)

// Band is one row of an adjustment table: an interval and its delta.
// Bands are checked in order and the first match wins.
type Band struct {
	Min, Max                   float64
	MinInclusive, MaxInclusive bool
	Delta                      int

	// Requires skips the band unless the relation is known and holds.
	Requires Relation
}

// Between is the closed interval [lo, hi].
func Between(lo, hi float64, delta int) Band {
	return Band{Min: lo, Max: hi, MinInclusive: true, MaxInclusive: true, Delta: delta}
}

// Below matches values strictly under x.
func Below(x float64, delta int) Band {
	return Band{Min: math.Inf(-1), Max: x, Delta: delta}
}

// Above matches values strictly over x.
func Above(x float64, delta int) Band {
	return Band{Min: x, Max: math.Inf(1), Delta: delta}
}

// Otherwise matches any value.
func Otherwise(delta int) Band {
	return Band{Min: math.Inf(-1), Max: math.Inf(1), Delta: delta}
}

// When returns a copy of the band that only applies under r.
func (b Band) When(r Relation) Band {
	b.Requires = r
	return b
}

// Contains reports whether v falls inside the band's interval.
func (b Band) Contains(v float64) bool {
	if b.MinInclusive {
		if v < b.Min {
			return false
		}
	} else if v <= b.Min {
		return false
	}
	if b.MaxInclusive {
		if v > b.Max {
			return false
		}
	} else if v >= b.Max {
		return false
	}
	return true
}

// KeywordBand adjusts the score when free text contains any keyword.
type KeywordBand struct {
	Keywords []string
	Delta    int
}

func (k KeywordBand) matches(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range k.Keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// DirectionRule declares which wind relation a sport cares about.
type DirectionRule struct {
	Relation Relation

	// OnshoreMin and OnshoreMax bound the onshore wind window, inclusive.
	OnshoreMin float64
	OnshoreMax float64

	// Delta is added when the relation holds.
	Delta int
}

// Anchor selects the series that defines a sport's forecast hours.
type Anchor int

const (
	AnchorWind Anchor = iota
	AnchorWaves
)

// LevelText is the per-sport wording for a level.
type LevelText struct {
	Description string
	Emoji       string
}

// Profile parameterizes the generic scorer for one sport.
type Profile struct {
	Sport     Sport
	Bands     map[Factor][]Band
	Quality   []KeywordBand
	Direction *DirectionRule
	Levels    map[Level]LevelText
	Anchor    Anchor
	BestTime  bool
}

// relations evaluates the profile's direction relation for a reading.
// Each result is nil when its inputs are missing.
type relations struct {
	onshore  *bool
	offshore *bool
}

func (p *Profile) relations(d Display) relations {
	var rel relations
	if p.Direction == nil {
		return rel
	}
	switch p.Direction.Relation {
	case RelationOnshore:
		if d.WindDirectionDeg != nil {
			on := *d.WindDirectionDeg >= p.Direction.OnshoreMin && *d.WindDirectionDeg <= p.Direction.OnshoreMax
			rel.onshore = &on
		}
	case RelationOffshore:
		if d.WindDirectionDeg != nil && d.WaveDirectionDeg != nil {
			diff := math.Abs(*d.WindDirectionDeg - *d.WaveDirectionDeg)
			off := diff > 90 && diff < 270
			rel.offshore = &off
		}
	}
	return rel
}

func (r relations) holds(rel Relation) bool {
	switch rel {
	case RelationNone:
		return true
	case RelationOnshore:
		return r.onshore != nil && *r.onshore
	case RelationOffshore:
		return r.offshore != nil && *r.offshore
	default:
		return false
	}
}

// lookup returns the first band that contains v and whose relation holds.
func lookup(bands []Band, v float64, rel relations) (Band, bool) {
	for _, b := range bands {
		if !b.Contains(v) || !rel.holds(b.Requires) {
			continue
		}
		return b, true
	}
	return Band{}, false
}
