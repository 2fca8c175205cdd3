package conditions_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidewise/tidewise/internal/conditions"
)

func TestParseSport(t *testing.T) {
	tests := []struct {
		in      string
		want    conditions.Sport
		wantErr bool
	}{
		{in: "surfing", want: conditions.Surfing},
		{in: "Kiteboarding", want: conditions.Kiteboarding},
		{in: "sailing-conditions", want: conditions.Sailing},
		{in: " paddleboarding ", want: conditions.Paddleboarding},
		{in: "curling", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := conditions.ParseSport(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, conditions.ErrUnknownSport)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLevelFor(t *testing.T) {
	tests := []struct {
		score int
		want  conditions.Level
	}{
		{100, conditions.LevelExcellent},
		{80, conditions.LevelExcellent},
		{79, conditions.LevelGood},
		{65, conditions.LevelGood},
		{64, conditions.LevelFair},
		{50, conditions.LevelFair},
		{49, conditions.LevelPoor},
		{35, conditions.LevelPoor},
		{34, conditions.LevelVeryPoor},
		{0, conditions.LevelVeryPoor},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, conditions.LevelFor(tt.score), "score %d", tt.score)
	}
}

func TestLevelFor_Monotonic(t *testing.T) {
	rank := make(map[conditions.Level]int)
	for i, l := range conditions.Levels() {
		rank[l] = i
	}

	prev := rank[conditions.LevelFor(0)]
	for s := 1; s <= 100; s++ {
		r, ok := rank[conditions.LevelFor(s)]
		require.True(t, ok)
		assert.LessOrEqual(t, r, prev, "score %d", s)
		prev = r
	}
}

func TestProfiles_DescribeEveryLevel(t *testing.T) {
	profiles := conditions.DefaultProfiles()
	require.Len(t, profiles, len(conditions.Sports()))

	for _, sport := range conditions.Sports() {
		p := profiles[sport]
		require.NotNil(t, p, sport)
		for _, l := range conditions.Levels() {
			text, ok := p.Levels[l]
			assert.True(t, ok, "%s missing %s", sport, l)
			assert.NotEmpty(t, text.Description)
			assert.NotEmpty(t, text.Emoji)
		}
	}
}

func TestToDisplay_UsesSingleConversionConstants(t *testing.T) {
	d := conditions.ToDisplay(conditions.Reading{
		WindSpeedMps: f(10),
		WindGustsMps: f(12),
		WaveHeightM:  f(2),
	})

	assert.InDelta(t, 22.3694, *d.WindSpeedMph, 1e-9)
	assert.InDelta(t, 26.84328, *d.WindGustsMph, 1e-9)
	assert.InDelta(t, 6.56168, *d.WaveHeightFt, 1e-9)
	assert.InDelta(t, 4.47388, *d.GustFactor(), 1e-9)
	assert.Nil(t, d.WavePeriodS)
}
