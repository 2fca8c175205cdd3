package conditions_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidewise/tidewise/internal/conditions"
)

// mph returns a wind speed in m/s that normalizes to v mph.
func mph(v float64) *float64 {
	return conditions.Float64(v / conditions.MpsToMph)
}

func f(v float64) *float64 {
	return conditions.Float64(v)
}

func profile(t *testing.T, sport conditions.Sport) *conditions.Profile {
	t.Helper()
	p, ok := conditions.DefaultProfiles()[sport]
	require.True(t, ok, "missing profile for %s", sport)
	return p
}

func TestScore_KiteboardingIdealClampsToExcellent(t *testing.T) {
	r := conditions.Reading{
		WindSpeedMps:     mph(15),
		WindGustsMps:     mph(17),
		WindDirectionDeg: f(135),
		WaveHeightM:      f(0.3),
	}

	res := conditions.Score(profile(t, conditions.Kiteboarding), conditions.ToDisplay(r))

	assert.Equal(t, 100, res.Score)
	assert.Equal(t, conditions.LevelExcellent, res.Level)
	assert.Equal(t, "Perfect kiteboarding conditions", res.Description)
	assert.Equal(t, "🪁", res.Emoji)
	assert.Equal(t, 30, res.Adjustments[conditions.FactorWindSpeed])
	assert.Equal(t, 15, res.Adjustments[conditions.FactorGustFactor])
	assert.Equal(t, 15, res.Adjustments[conditions.FactorWaveHeight])
	assert.Equal(t, 5, res.Adjustments[conditions.FactorDirection])
	assert.Equal(t, "15.0 mph", res.Factors[conditions.FactorWindSpeed])
	assert.Equal(t, "1.0 ft", res.Factors[conditions.FactorWaveHeight])
}

func TestScore_SnorkelingRoughClampsToZero(t *testing.T) {
	r := conditions.Reading{
		WindSpeedMps: mph(25),
		WaveHeightM:  f(1.8),
		WavePeriodS:  f(3),
	}

	res := conditions.Score(profile(t, conditions.Snorkeling), conditions.ToDisplay(r))

	assert.Equal(t, 0, res.Score)
	assert.Equal(t, conditions.LevelVeryPoor, res.Level)
	assert.Equal(t, "Not recommended - poor visibility", res.Description)
	assert.Equal(t, -25, res.Adjustments[conditions.FactorWindSpeed])
	assert.Equal(t, -20, res.Adjustments[conditions.FactorWaveHeight])
	assert.Equal(t, -10, res.Adjustments[conditions.FactorWavePeriod])
	assert.NotContains(t, res.Adjustments, conditions.FactorWaterQuality)
	assert.NotContains(t, res.Factors, conditions.FactorGustFactor)
}

func TestScore_SurfingOffshoreClampsToExcellent(t *testing.T) {
	r := conditions.Reading{
		WindSpeedMps:     mph(3),
		WindDirectionDeg: f(0),
		WaveHeightM:      f(2),
		WavePeriodS:      f(10),
		WaveDirectionDeg: f(180),
	}

	res := conditions.Score(profile(t, conditions.Surfing), conditions.ToDisplay(r))

	assert.Equal(t, 100, res.Score)
	assert.Equal(t, conditions.LevelExcellent, res.Level)
	assert.Equal(t, 25, res.Adjustments[conditions.FactorWaveHeight])
	assert.Equal(t, 20, res.Adjustments[conditions.FactorWavePeriod])
	assert.Equal(t, 15, res.Adjustments[conditions.FactorWindSpeed])
}

func TestScore_SurfingOffshoreBandNeedsBothDirections(t *testing.T) {
	base := conditions.Reading{
		WindSpeedMps: mph(7),
		WaveHeightM:  f(1),
		WavePeriodS:  f(7),
	}
	p := profile(t, conditions.Surfing)

	tests := []struct {
		name      string
		windDir   *float64
		waveDir   *float64
		wantDelta int
		wantScore int
	}{
		{name: "offshore", windDir: f(270), waveDir: f(90), wantDelta: 10, wantScore: 50 + 25 + 10 + 10},
		{name: "onshore", windDir: f(90), waveDir: f(90), wantDelta: 0, wantScore: 50 + 25 + 10},
		{name: "missing wave direction", windDir: f(270), wantDelta: 0, wantScore: 50 + 25 + 10},
		{name: "boundary 90 is not offshore", windDir: f(180), waveDir: f(90), wantDelta: 0, wantScore: 50 + 25 + 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := base
			r.WindDirectionDeg = tt.windDir
			r.WaveDirectionDeg = tt.waveDir

			res := conditions.Score(p, conditions.ToDisplay(r))

			assert.Equal(t, tt.wantScore, res.Score)
			assert.Equal(t, tt.wantDelta, res.Adjustments[conditions.FactorWindSpeed])
		})
	}
}

func TestScore_ZeroGustFactorLandsInFirstBand(t *testing.T) {
	for sport, p := range conditions.DefaultProfiles() {
		bands, ok := p.Bands[conditions.FactorGustFactor]
		if !ok {
			continue
		}
		t.Run(string(sport), func(t *testing.T) {
			r := conditions.Reading{
				WindSpeedMps: f(5),
				WindGustsMps: f(5),
			}

			res := conditions.Score(p, conditions.ToDisplay(r))

			assert.Equal(t, bands[0].Delta, res.Adjustments[conditions.FactorGustFactor])
			assert.Positive(t, res.Adjustments[conditions.FactorGustFactor])
		})
	}
}

func TestScore_EmptyReadingIsBase(t *testing.T) {
	for sport, p := range conditions.DefaultProfiles() {
		res := conditions.Score(p, conditions.ToDisplay(conditions.Reading{}))
		assert.Equal(t, conditions.BaseScore, res.Score, sport)
		assert.Equal(t, conditions.LevelFair, res.Level, sport)
		assert.Empty(t, res.Adjustments, sport)
	}
}

func TestScore_AlwaysClamped(t *testing.T) {
	for sport, p := range conditions.DefaultProfiles() {
		for wind := 0.0; wind <= 60; wind += 5 {
			for wave := 0.0; wave <= 5; wave += 0.5 {
				for period := 0.0; period <= 20; period += 4 {
					r := conditions.Reading{
						WindSpeedMps: f(wind),
						WindGustsMps: f(wind * 1.5),
						WaveHeightM:  f(wave),
						WavePeriodS:  f(period),
					}
					res := conditions.Score(p, conditions.ToDisplay(r))
					require.GreaterOrEqual(t, res.Score, 0, sport)
					require.LessOrEqual(t, res.Score, 100, sport)
					require.Equal(t, conditions.LevelFor(res.Score), res.Level)
				}
			}
		}
	}
}

func TestScore_Deterministic(t *testing.T) {
	r := conditions.Reading{
		WindSpeedMps:     f(6),
		WindGustsMps:     f(8),
		WindDirectionDeg: f(120),
		WaveHeightM:      f(0.8),
		WavePeriodS:      f(7),
	}
	for _, p := range conditions.DefaultProfiles() {
		assert.Equal(t, conditions.Score(p, conditions.ToDisplay(r)), conditions.Score(p, conditions.ToDisplay(r)))
	}
}

func TestScore_SnorkelingWaterQuality(t *testing.T) {
	tests := []struct {
		quality string
		want    int
	}{
		{quality: "Good", want: 15},
		{quality: "EXCELLENT swimming", want: 15},
		{quality: "Fair", want: 5},
		{quality: "acceptable", want: 5},
		{quality: "Poor", want: -20},
		{quality: "Unsafe for swimming", want: -20},
		{quality: "Unavailable", want: 0},
	}

	p := profile(t, conditions.Snorkeling)
	for _, tt := range tests {
		t.Run(tt.quality, func(t *testing.T) {
			res := conditions.Score(p, conditions.ToDisplay(conditions.Reading{WaterQuality: tt.quality}))

			assert.Equal(t, conditions.BaseScore+tt.want, res.Score)
			assert.Equal(t, tt.quality, res.Factors[conditions.FactorWaterQuality])
		})
	}
}

func TestScore_KiteboardingOnshoreWindow(t *testing.T) {
	p := profile(t, conditions.Kiteboarding)

	for _, dir := range []float64{90, 135, 180} {
		res := conditions.Score(p, conditions.ToDisplay(conditions.Reading{WindDirectionDeg: f(dir)}))
		assert.Equal(t, 55, res.Score, dir)
	}
	for _, dir := range []float64{0, 89, 181, 270} {
		res := conditions.Score(p, conditions.ToDisplay(conditions.Reading{WindDirectionDeg: f(dir)}))
		assert.Equal(t, 50, res.Score, dir)
	}
}

func TestScore_SailingBands(t *testing.T) {
	tests := []struct {
		name  string
		r     conditions.Reading
		score int
	}{
		{
			name:  "ideal",
			r:     conditions.Reading{WindSpeedMps: mph(14), WindGustsMps: mph(16), WaveHeightM: f(0.6), WavePeriodS: f(9)},
			score: 100,
		},
		{
			name:  "gale",
			r:     conditions.Reading{WindSpeedMps: mph(35), WindGustsMps: mph(55), WaveHeightM: f(3), WavePeriodS: f(3)},
			score: 0,
		},
		{
			name:  "light air flat water",
			r:     conditions.Reading{WindSpeedMps: mph(4), WaveHeightM: f(0.2)},
			score: 50 - 25 + 10,
		},
	}

	p := profile(t, conditions.Sailing)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.score, conditions.Score(p, conditions.ToDisplay(tt.r)).Score)
		})
	}
}
