package conditions_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidewise/tidewise/internal/conditions"
)

var seriesStart = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

func windAt(h int, speed float64) conditions.WindSample {
	return conditions.WindSample{
		Time:         seriesStart.Add(time.Duration(h) * time.Hour),
		SpeedMps:     conditions.Float64(speed),
		GustsMps:     conditions.Float64(speed + 1),
		DirectionDeg: conditions.Float64(120),
	}
}

func waveAt(h int, height float64) conditions.WaveSample {
	return conditions.WaveSample{
		Time:         seriesStart.Add(time.Duration(h) * time.Hour),
		HeightM:      conditions.Float64(height),
		PeriodS:      conditions.Float64(8),
		DirectionDeg: conditions.Float64(90),
	}
}

func TestBuildSeries_JoinsOnTimestamp(t *testing.T) {
	wind := []conditions.WindSample{windAt(0, 5), windAt(1, 6), windAt(2, 7), windAt(3, 8)}
	waves := []conditions.WaveSample{waveAt(1, 0.5), waveAt(2, 0.6), waveAt(3, 0.7), waveAt(4, 0.8)}

	t.Run("wind anchor", func(t *testing.T) {
		series := conditions.BuildSeries(conditions.AnchorWind, wind, waves, "Good")

		require.Len(t, series, 4)
		assert.Equal(t, seriesStart, series[0].Time)
		assert.Nil(t, series[0].WaveHeightM)
		require.NotNil(t, series[1].WaveHeightM)
		assert.InDelta(t, 0.5, *series[1].WaveHeightM, 1e-9)
		assert.InDelta(t, 6, *series[1].WindSpeedMps, 1e-9)
		assert.Equal(t, "Good", series[3].WaterQuality)
	})

	t.Run("wave anchor", func(t *testing.T) {
		series := conditions.BuildSeries(conditions.AnchorWaves, wind, waves, "")

		require.Len(t, series, 4)
		assert.Equal(t, seriesStart.Add(time.Hour), series[0].Time)
		require.NotNil(t, series[0].WindSpeedMps)
		assert.InDelta(t, 6, *series[0].WindSpeedMps, 1e-9)
		assert.Nil(t, series[3].WindSpeedMps)
		assert.NotNil(t, series[3].WaveHeightM)
	})

	t.Run("matches across zones", func(t *testing.T) {
		est := time.FixedZone("EST", -5*3600)
		shifted := []conditions.WaveSample{waveAt(0, 0.4)}
		shifted[0].Time = shifted[0].Time.In(est)

		series := conditions.BuildSeries(conditions.AnchorWind, wind[:1], shifted, "")

		require.Len(t, series, 1)
		assert.NotNil(t, series[0].WaveHeightM)
	})
}

func TestCurrentReading_IndexesEachSeriesIndependently(t *testing.T) {
	wind := []conditions.WindSample{windAt(0, 5), windAt(1, 6), windAt(2, 7)}
	// The wave grid starts later and is offset by half an hour.
	waves := []conditions.WaveSample{waveAt(2, 1.0), waveAt(3, 1.5)}
	for i := range waves {
		waves[i].Time = waves[i].Time.Add(30 * time.Minute)
	}
	now := seriesStart.Add(time.Hour)

	r, ok := conditions.CurrentReading(conditions.AnchorWind, wind, waves, "Fair", now)

	require.True(t, ok)
	assert.Equal(t, seriesStart.Add(time.Hour), r.Time)
	assert.InDelta(t, 6, *r.WindSpeedMps, 1e-9)
	assert.InDelta(t, 1.0, *r.WaveHeightM, 1e-9)
	assert.Equal(t, "Fair", r.WaterQuality)

	r, ok = conditions.CurrentReading(conditions.AnchorWaves, wind, waves, "", now)
	require.True(t, ok)
	assert.Equal(t, waves[0].Time, r.Time)
}

func TestCurrentReading_MissingSeries(t *testing.T) {
	waves := []conditions.WaveSample{waveAt(0, 1.0)}

	_, ok := conditions.CurrentReading(conditions.AnchorWind, nil, waves, "", seriesStart)
	assert.False(t, ok)

	r, ok := conditions.CurrentReading(conditions.AnchorWaves, nil, waves, "", seriesStart)
	require.True(t, ok)
	assert.Nil(t, r.WindSpeedMps)
	assert.NotNil(t, r.WaveHeightM)
}
