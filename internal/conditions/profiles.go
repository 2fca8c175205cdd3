package conditions

const (
	// BaseScore is the starting point for every sport before adjustments.
	BaseScore = 50

	// MaxForecastHours bounds the best-time search window.
	MaxForecastHours = 48
)

// onshore wind window shared by the beach sports, in degrees.
const (
	onshoreMin = 90
	onshoreMax = 180
)

func m(meters float64) float64 {
	return meters * MetersToFeet
}

func levelTexts(emoji, excellent, good, fair, poor, veryPoor string) map[Level]LevelText {
	return map[Level]LevelText{
		LevelExcellent: {Description: excellent, Emoji: emoji},
		LevelGood:      {Description: good, Emoji: "👍"},
		LevelFair:      {Description: fair, Emoji: "🤷"},
		LevelPoor:      {Description: poor, Emoji: "⚠️"},
		LevelVeryPoor:  {Description: veryPoor, Emoji: "❌"},
	}
}

// Gust bands shared by the wind sports.
var windSportGusts = []Band{
	Below(5, 15),
	Below(10, 5),
	Above(15, -15),
	Otherwise(-5),
}

// Wave and period bands shared by the flat-water sports.
var (
	flatWaterWaves = []Band{
		Below(m(0.3), 25),
		Below(m(0.5), 15),
		Below(m(1.0), 5),
		Below(m(1.5), -10),
		Otherwise(-20),
	}
	flatWaterPeriods = []Band{
		Above(8, 10),
		Below(4, -10),
	}
)

// DefaultProfiles returns the built-in scoring profile of every sport.
func DefaultProfiles() map[Sport]*Profile {
	return map[Sport]*Profile{
		Kiteboarding:   kiteboardingProfile(),
		Surfing:        surfingProfile(),
		Sailing:        sailingProfile(),
		Wakeboarding:   wakeboardingProfile(),
		Snorkeling:     snorkelingProfile(),
		Paddleboarding: paddleboardingProfile(),
	}
}

func kiteboardingProfile() *Profile {
	return &Profile{
		Sport: Kiteboarding,
		Bands: map[Factor][]Band{
			FactorWindSpeed: {
				Between(12, 25, 30),
				Between(10, 30, 20),
				Between(8, 35, 10),
				Below(8, -25),
				Above(35, -30),
			},
			FactorGustFactor: windSportGusts,
			FactorWaveHeight: {
				Below(m(0.5), 15),
				Below(m(1.0), 5),
				Above(m(2.0), -10),
			},
		},
		Direction: &DirectionRule{Relation: RelationOnshore, OnshoreMin: onshoreMin, OnshoreMax: onshoreMax, Delta: 5},
		Levels: levelTexts("🪁",
			"Perfect kiteboarding conditions",
			"Great conditions for kiteboarding",
			"Kiteable conditions",
			"Marginal conditions",
			"Not recommended - unsafe"),
		Anchor:   AnchorWind,
		BestTime: true,
	}
}

func surfingProfile() *Profile {
	return &Profile{
		Sport: Surfing,
		Bands: map[Factor][]Band{
			FactorWaveHeight: {
				Between(1.6, 6.6, 25),
				Between(1.0, 8.2, 15),
				Below(1.0, -20),
				Above(9.8, -15),
			},
			FactorWavePeriod: {
				Between(8, 15, 20),
				Between(6, 18, 10),
				Below(6, -15),
			},
			FactorWindSpeed: {
				Below(5, 15),
				Below(10, 10).When(RelationOffshore),
				Above(20, -20),
				Above(15, -10),
			},
		},
		Direction: &DirectionRule{Relation: RelationOffshore},
		Levels: levelTexts("🏄‍♂️",
			"Perfect surfing conditions",
			"Great conditions for surfing",
			"Surfable conditions",
			"Marginal conditions",
			"Not recommended"),
		Anchor:   AnchorWaves,
		BestTime: true,
	}
}

func sailingProfile() *Profile {
	return &Profile{
		Sport: Sailing,
		Bands: map[Factor][]Band{
			FactorWindSpeed: {
				Between(10, 18, 30),
				Between(8, 22, 20),
				Between(5, 25, 10),
				Below(5, -25),
				Above(30, -30),
				Above(25, -15),
			},
			FactorGustFactor: windSportGusts,
			FactorWaveHeight: {
				Between(1, 4, 15),
				Below(1, 10),
				Between(0.5, 6, 5),
				Above(8, -20),
				Above(6, -10),
			},
			FactorWavePeriod: {
				Above(8, 10),
				Below(4, -10),
			},
		},
		Levels: levelTexts("⛵",
			"Perfect sailing conditions",
			"Great conditions for sailing",
			"Sailable conditions",
			"Marginal conditions",
			"Not recommended - unsafe"),
		Anchor:   AnchorWind,
		BestTime: true,
	}
}

func wakeboardingProfile() *Profile {
	return &Profile{
		Sport: Wakeboarding,
		Bands: map[Factor][]Band{
			FactorWindSpeed: {
				Below(5, 30),
				Below(10, 20),
				Below(15, 5),
				Below(20, -10),
				Otherwise(-25),
			},
			FactorWaveHeight: flatWaterWaves,
			FactorWavePeriod: flatWaterPeriods,
			FactorGustFactor: {
				Below(3, 10),
				Above(8, -10),
			},
		},
		Levels: levelTexts("🌊",
			"Perfect wakeboarding conditions - glassy water",
			"Great conditions for wakeboarding",
			"Wakeable conditions",
			"Marginal conditions - choppy water",
			"Not recommended - too choppy"),
		Anchor:   AnchorWind,
		BestTime: true,
	}
}

func snorkelingProfile() *Profile {
	return &Profile{
		Sport: Snorkeling,
		Bands: map[Factor][]Band{
			FactorWindSpeed: {
				Below(5, 25),
				Below(10, 15),
				Below(15, 5),
				Below(20, -10),
				Otherwise(-25),
			},
			FactorWaveHeight: flatWaterWaves,
			FactorWavePeriod: flatWaterPeriods,
			FactorGustFactor: {
				Below(3, 5),
				Above(8, -5),
			},
		},
		Quality: []KeywordBand{
			{Keywords: []string{"good", "excellent"}, Delta: 15},
			{Keywords: []string{"fair", "acceptable"}, Delta: 5},
			{Keywords: []string{"poor", "unsafe"}, Delta: -20},
		},
		Levels: levelTexts("🤿",
			"Perfect snorkeling conditions - clear and calm",
			"Great conditions for snorkeling",
			"Snorkelable conditions",
			"Marginal conditions - choppy water",
			"Not recommended - poor visibility"),
		Anchor: AnchorWind,
	}
}

func paddleboardingProfile() *Profile {
	return &Profile{
		Sport: Paddleboarding,
		Bands: map[Factor][]Band{
			FactorWindSpeed: {
				Below(5, 30),
				Below(10, 15),
				Below(15, 0),
				Below(20, -15),
				Otherwise(-30),
			},
			FactorWaveHeight: {
				Below(1, 20),
				Below(2, 10),
				Below(3, -5),
				Otherwise(-20),
			},
			FactorWavePeriod: {
				Above(8, 5),
				Below(4, -10),
			},
			FactorGustFactor: {
				Below(3, 10),
				Above(8, -10),
			},
		},
		Direction: &DirectionRule{Relation: RelationOnshore, OnshoreMin: onshoreMin, OnshoreMax: onshoreMax, Delta: 5},
		Levels: levelTexts("🛶",
			"Perfect paddleboarding conditions - flat and calm",
			"Great conditions for paddleboarding",
			"Paddleable conditions",
			"Marginal conditions - choppy water",
			"Not recommended - too windy"),
		Anchor: AnchorWind,
	}
}
