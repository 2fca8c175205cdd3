package conditions_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidewise/tidewise/internal/conditions"
)

func newEngine(t *testing.T) *conditions.Engine {
	t.Helper()
	e, err := conditions.NewEngine(conditions.EngineConfig{})
	require.NoError(t, err)
	return e
}

func miamiNoon(t *testing.T) time.Time {
	t.Helper()
	loc, err := time.LoadLocation(conditions.DefaultTimeZone)
	require.NoError(t, err)
	return time.Date(2024, 6, 1, 12, 0, 0, 0, loc)
}

func TestEngine_ComputeUnknownSport(t *testing.T) {
	e := newEngine(t)

	_, err := e.Compute("curling", conditions.Reading{}, nil)

	assert.ErrorIs(t, err, conditions.ErrUnknownSport)
}

func TestEngine_ComputeReportsRelations(t *testing.T) {
	e := newEngine(t)
	r := conditions.Reading{
		WindSpeedMps:     mph(15),
		WindGustsMps:     mph(17),
		WindDirectionDeg: f(135),
		WaveDirectionDeg: f(135),
		WaveHeightM:      f(0.3),
	}

	kite, err := e.Compute(conditions.Kiteboarding, r, nil)
	require.NoError(t, err)
	require.NotNil(t, kite.IsOnshore)
	assert.True(t, *kite.IsOnshore)
	assert.Nil(t, kite.IsOffshore)
	require.NotNil(t, kite.GustFactor)
	assert.InDelta(t, 2, *kite.GustFactor, 1e-9)
	assert.InDelta(t, 15, *kite.Display.WindSpeedMph, 1e-9)

	surf, err := e.Compute(conditions.Surfing, r, nil)
	require.NoError(t, err)
	require.NotNil(t, surf.IsOffshore)
	assert.False(t, *surf.IsOffshore)
	assert.Nil(t, surf.IsOnshore)

	sail, err := e.Compute(conditions.Sailing, r, nil)
	require.NoError(t, err)
	assert.Nil(t, sail.IsOnshore)
	assert.Nil(t, sail.IsOffshore)
}

func TestEngine_ComputeBestTime(t *testing.T) {
	e := newEngine(t)
	now := miamiNoon(t)

	series := make(conditions.Series, 6)
	for i := range series {
		series[i] = conditions.Reading{
			Time:         now.Add(time.Duration(i) * time.Hour),
			WindSpeedMps: mph(5),
		}
	}
	series[3].WindSpeedMps = mph(15)
	series[3].WindGustsMps = mph(17)

	c, err := e.Compute(conditions.Kiteboarding, series[0], &conditions.Forecast{
		Series:       series,
		CurrentIndex: 0,
		Now:          now,
	})

	require.NoError(t, err)
	assert.Equal(t, 25, c.Score)
	assert.Equal(t, conditions.LevelVeryPoor, c.Level)
	require.NotNil(t, c.Best)
	assert.Equal(t, 3, c.Best.Index)
	assert.Equal(t, 95, c.Best.Score)
	assert.Equal(t, "3:00 PM", c.Best.Formatted)
	assert.Equal(t, 3, c.Best.HoursFromNow)
}

func TestEngine_ComputeBestTimeOmittedWhenNotBetter(t *testing.T) {
	e := newEngine(t)
	now := miamiNoon(t)
	series := conditions.Series{
		{Time: now, WindSpeedMps: mph(15)},
		{Time: now.Add(time.Hour), WindSpeedMps: mph(15)},
	}

	c, err := e.Compute(conditions.Kiteboarding, series[0], &conditions.Forecast{Series: series, Now: now})

	require.NoError(t, err)
	assert.Nil(t, c.Best)
}

func TestEngine_ComputeRejectsBadIndex(t *testing.T) {
	e := newEngine(t)
	series := conditions.Series{{WindSpeedMps: mph(10)}}

	_, err := e.Compute(conditions.Sailing, series[0], &conditions.Forecast{Series: series, CurrentIndex: 4})

	assert.ErrorIs(t, err, conditions.ErrIndexOutOfRange)
}

func TestEngine_ComputeIgnoresForecastForSportsWithoutBestTime(t *testing.T) {
	e := newEngine(t)
	now := miamiNoon(t)
	series := conditions.Series{
		{Time: now, WindSpeedMps: mph(25)},
		{Time: now.Add(time.Hour), WindSpeedMps: mph(2)},
	}

	for _, sport := range []conditions.Sport{conditions.Snorkeling, conditions.Paddleboarding} {
		c, err := e.Compute(sport, series[0], &conditions.Forecast{Series: series, Now: now})
		require.NoError(t, err)
		assert.Nil(t, c.Best, sport)
	}
}

func TestEngine_Evaluate(t *testing.T) {
	e := newEngine(t)
	now := miamiNoon(t)

	wind := []conditions.WindSample{
		{Time: now, SpeedMps: mph(5), GustsMps: mph(6), DirectionDeg: f(100)},
		{Time: now.Add(time.Hour), SpeedMps: mph(14), GustsMps: mph(16), DirectionDeg: f(100)},
	}
	waves := []conditions.WaveSample{
		{Time: now, HeightM: f(0.4), PeriodS: f(6), DirectionDeg: f(90)},
		{Time: now.Add(time.Hour), HeightM: f(0.4), PeriodS: f(6), DirectionDeg: f(90)},
	}

	c, err := e.Evaluate(conditions.Kiteboarding, conditions.Inputs{Wind: wind, Waves: waves}, now.Add(10*time.Minute))

	require.NoError(t, err)
	assert.Equal(t, now, c.Timestamp)
	require.NotNil(t, c.Best)
	assert.Equal(t, 1, c.Best.Index)
	assert.Equal(t, "1:00 PM", c.Best.Formatted)
	assert.Equal(t, 1, c.Best.HoursFromNow)
}

func TestEngine_EvaluateEmptyAnchor(t *testing.T) {
	e := newEngine(t)
	now := miamiNoon(t)
	waves := []conditions.WaveSample{{Time: now, HeightM: f(1.5), PeriodS: f(10)}}

	_, err := e.Evaluate(conditions.Kiteboarding, conditions.Inputs{Waves: waves}, now)
	assert.ErrorIs(t, err, conditions.ErrEmptySeries)

	c, err := e.Evaluate(conditions.Surfing, conditions.Inputs{Waves: waves}, now)
	require.NoError(t, err)
	assert.Equal(t, conditions.Surfing, c.Sport)
	assert.Nil(t, c.Display.WindSpeedMph)
}

func TestEngine_CustomProfiles(t *testing.T) {
	e, err := conditions.NewEngine(conditions.EngineConfig{
		Location: time.UTC,
		Profiles: map[conditions.Sport]*conditions.Profile{
			conditions.Surfing: conditions.DefaultProfiles()[conditions.Surfing],
		},
	})
	require.NoError(t, err)
	assert.Equal(t, time.UTC, e.Location())

	_, err = e.Compute(conditions.Sailing, conditions.Reading{}, nil)
	assert.ErrorIs(t, err, conditions.ErrUnknownSport)
}
