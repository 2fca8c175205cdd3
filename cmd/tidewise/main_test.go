package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidewise/tidewise/internal/conditions"
	"github.com/tidewise/tidewise/internal/config"
	"github.com/tidewise/tidewise/internal/forecast"
	"github.com/tidewise/tidewise/internal/marine"
	"github.com/tidewise/tidewise/internal/spots"
)

var errDown = errors.New("upstream down")

func ptr(v float64) *float64 { return &v }

type fakeForecast struct {
	failSpot string
	station  string
}

func (f *fakeForecast) condition(sport conditions.Sport) *conditions.Condition {
	return &conditions.Condition{
		Sport: sport,
		Result: conditions.Result{
			Score:       72,
			Level:       conditions.LevelGood,
			Description: "Good conditions",
		},
		Display:   conditions.Display{WindSpeedMph: ptr(14.2), WaveHeightFt: ptr(2.5)},
		Timestamp: time.Date(2024, 6, 1, 16, 0, 0, 0, time.UTC),
		Best:      &conditions.BestTime{Score: 85, Formatted: "3:00 PM", HoursFromNow: 3},
	}
}

func (f *fakeForecast) Conditions(_ context.Context, sport conditions.Sport, _ forecast.Location) (*conditions.Condition, error) {
	return f.condition(sport), nil
}

func (f *fakeForecast) AllConditions(_ context.Context, loc forecast.Location) (map[conditions.Sport]*conditions.Condition, error) {
	if loc.ID == f.failSpot {
		return nil, errDown
	}
	return map[conditions.Sport]*conditions.Condition{
		conditions.Sailing: f.condition(conditions.Sailing),
		conditions.Surfing: f.condition(conditions.Surfing),
	}, nil
}

func (f *fakeForecast) Tides(_ context.Context, loc forecast.Location) (*forecast.TideData, error) {
	f.station = loc.Station()
	return &forecast.TideData{
		StationID: loc.Station(),
		Predictions: []forecast.TidePrediction{
			{Time: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC), HeightFt: 2.31, Type: forecast.TideHigh},
			{Time: time.Date(2024, 6, 1, 16, 12, 0, 0, time.UTC), HeightFt: -0.12, Type: forecast.TideLow},
		},
	}, nil
}

func (f *fakeForecast) WaveEnergy(context.Context, forecast.Location) (*marine.Energy, error) {
	return &marine.Energy{EnergyKJ: 1.2, PowerKW: 3.4, Level: "Low"}, nil
}

func (f *fakeForecast) WaveConsistency(context.Context, forecast.Location) (*marine.Consistency, error) {
	return nil, marine.ErrInsufficientData
}

func (f *fakeForecast) WaterVisibility(context.Context, forecast.Location) (*marine.Visibility, error) {
	return &marine.Visibility{Feet: 40, Level: "Good"}, nil
}

func (f *fakeForecast) Swell(context.Context, forecast.Location) (*marine.SwellReport, error) {
	return nil, forecast.ErrNoData
}

func run(t *testing.T, f *fakeForecast, args ...string) (string, error) {
	t.Helper()
	c := &cli{
		v: config.New(),
		newService: func(*config.Config, zerolog.Logger) (forecaster, error) {
			return f, nil
		},
	}
	var out bytes.Buffer
	root := newRootCmd(c)
	root.SetArgs(append(args, "--no-color"))
	root.SetOut(&out)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestConditions_SingleSportTable(t *testing.T) {
	out, err := run(t, &fakeForecast{}, "conditions", "kiteboarding", "--spot", "miami")
	require.NoError(t, err)

	assert.Contains(t, out, "kiteboarding")
	assert.Contains(t, out, "72")
	assert.Contains(t, out, "Good")
	assert.Contains(t, out, "14.2 mph")
	assert.Contains(t, out, "3:00 PM (85)")
	assert.Contains(t, out, "Conditions for Miami")
}

func TestConditions_AllSportsJSON(t *testing.T) {
	out, err := run(t, &fakeForecast{}, "conditions", "--lat", "25.7", "--lon", "-80.1", "-o", "json")
	require.NoError(t, err)

	var got []conditionSummary
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "surfing", got[0].Sport)
	assert.Equal(t, "sailing", got[1].Sport)
	assert.Equal(t, forecast.GridKey(25.7, -80.1), got[0].Location)
	require.NotNil(t, got[0].BestScore)
	assert.Equal(t, 85, *got[0].BestScore)
}

func TestConditions_Errors(t *testing.T) {
	_, err := run(t, &fakeForecast{}, "conditions", "curling")
	assert.ErrorIs(t, err, conditions.ErrUnknownSport)

	_, err = run(t, &fakeForecast{}, "conditions", "--lat", "25.7")
	assert.ErrorIs(t, err, forecast.ErrMissingInput)

	_, err = run(t, &fakeForecast{}, "conditions", "--spot", "atlantis")
	assert.ErrorIs(t, err, spots.ErrNotFound)

	_, err = run(t, &fakeForecast{}, "conditions", "--lat", "95", "--lon", "0")
	assert.ErrorIs(t, err, forecast.ErrInvalidCoordinates)
}

func TestSpots_ReportsFailuresPerSpot(t *testing.T) {
	out, err := run(t, &fakeForecast{failSpot: "naples"}, "spots", "-o", "json")
	require.NoError(t, err)

	var reports []spotReport
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, len(spots.All()))

	for i, s := range spots.All() {
		assert.Equal(t, s.ID, reports[i].Spot)
		if s.ID == "naples" {
			assert.Equal(t, errDown.Error(), reports[i].Error)
			assert.Empty(t, reports[i].Scores)
			continue
		}
		assert.Empty(t, reports[i].Error)
		assert.Len(t, reports[i].Scores, 2)
	}
}

func TestSpots_Table(t *testing.T) {
	out, err := run(t, &fakeForecast{failSpot: "naples"}, "spots")
	require.NoError(t, err)

	assert.Contains(t, out, "Crandon Park")
	assert.Contains(t, out, "72 Good")
	assert.Contains(t, out, "(1 unavailable)")
}

func TestTides_DefaultStation(t *testing.T) {
	f := &fakeForecast{}
	out, err := run(t, f, "tides", "-o", "json")
	require.NoError(t, err)

	assert.Equal(t, "8723214", f.station)

	var rows []tideRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "high", rows[0].Type)
	assert.Equal(t, "low", rows[1].Type)
	assert.InDelta(t, -0.12, rows[1].HeightFt, 1e-9)
}

func TestTides_TableNamesStation(t *testing.T) {
	out, err := run(t, &fakeForecast{}, "tides", "--station", "8724580")
	require.NoError(t, err)

	assert.Contains(t, out, "2.31 ft")
	assert.Contains(t, out, "Station 8724580 Key West, FL")
}

func TestMarine_PartialReport(t *testing.T) {
	out, err := run(t, &fakeForecast{}, "marine", "-o", "json")
	require.NoError(t, err)

	var report map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, `"miami"`, string(report["location"]))
	assert.Equal(t, "null", string(report["consistency"]))
	assert.Equal(t, "null", string(report["swell"]))
	assert.NotEqual(t, "null", string(report["energy"]))
}

func TestMarine_Table(t *testing.T) {
	out, err := run(t, &fakeForecast{}, "marine")
	require.NoError(t, err)

	assert.Contains(t, out, "1.2 kJ/m²")
	assert.Contains(t, out, "40 ft")
	assert.Contains(t, out, "unavailable")
}

func TestServeInfo_JSON(t *testing.T) {
	out, err := run(t, &fakeForecast{}, "serve-info", "-o", "json")
	require.NoError(t, err)

	var settings map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &settings))
	assert.Equal(t, "5m0s", settings["cache.ttl"])
	assert.Equal(t, "8723214", settings["upstream.default-station"])
	assert.NotContains(t, settings, "output")
}

func TestRoot_RejectsUnknownOutput(t *testing.T) {
	_, err := run(t, &fakeForecast{}, "spots", "-o", "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}
