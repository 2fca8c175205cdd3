package coops_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidewise/tidewise/internal/forecast"
	"github.com/tidewise/tidewise/internal/forecast/coops"
)

func newClient(t *testing.T, handler http.HandlerFunc) *coops.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := coops.NewClient(coops.ClientConfig{BaseURL: server.URL})
	require.NoError(t, err)
	return client
}

func writeJSON(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}

func TestClient_GetTides(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "8723214", q.Get("station"))
		assert.Equal(t, "predictions", q.Get("product"))
		assert.Equal(t, "MLLW", q.Get("datum"))
		assert.Equal(t, "hilo", q.Get("interval"))
		assert.Equal(t, "english", q.Get("units"))
		assert.Equal(t, "lst_ldt", q.Get("time_zone"))
		assert.Equal(t, "20240601", q.Get("begin_date"))
		assert.Equal(t, "20240602", q.Get("end_date"))
		assert.Equal(t, coops.Application, q.Get("application"))

		writeJSON(w, map[string]any{
			"metadata": map[string]string{"id": "8723214", "name": "Virginia Key, Biscayne Bay"},
			"predictions": []map[string]string{
				{"t": "2024-06-01 04:12", "v": "2.311", "type": "H"},
				{"t": "2024-06-01 10:30", "v": "-0.104", "type": "L"},
				{"t": "bad", "v": "1.0", "type": "H"},
				{"t": "2024-06-01 16:40", "v": "n/a", "type": "H"},
			},
		})
	})

	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	from := time.Date(2024, 6, 1, 0, 0, 0, 0, ny)

	data, err := client.GetTides(context.Background(), "8723214", from, 2)
	require.NoError(t, err)

	assert.Equal(t, "Virginia Key, Biscayne Bay", data.StationName)
	require.Len(t, data.Predictions, 2)
	assert.Equal(t, forecast.TideHigh, data.Predictions[0].Type)
	assert.InDelta(t, 2.311, data.Predictions[0].HeightFt, 1e-9)
	assert.True(t, time.Date(2024, 6, 1, 4, 12, 0, 0, ny).Equal(data.Predictions[0].Time))
	assert.Equal(t, forecast.TideLow, data.Predictions[1].Type)

	next := data.Next(forecast.TideLow, from)
	require.NotNil(t, next)
	assert.InDelta(t, -0.104, next.HeightFt, 1e-9)
	assert.Nil(t, data.Next(forecast.TideHigh, from.Add(12*time.Hour)))
}

func TestClient_GetTidesAPIError(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]any{
			"error": map[string]string{"message": "No Predictions data was found."},
		})
	})

	_, err := client.GetTides(context.Background(), "0000000", time.Now(), 2)
	assert.True(t, errors.Is(err, forecast.ErrNoData))
}

func TestClient_GetWaterTemperature(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "water_temperature", q.Get("product"))
		assert.Equal(t, "24", q.Get("range"))
		assert.Equal(t, "MSL", q.Get("datum"))

		writeJSON(w, map[string]any{
			"data": []map[string]string{
				{"t": "2024-06-01 10:00", "v": "84.2"},
				{"t": "2024-06-01 10:06", "v": "84.4"},
				{"t": "2024-06-01 10:12", "v": ""},
			},
		})
	})

	temp, err := client.GetWaterTemperature(context.Background(), forecast.Location{ID: "miami", StationID: "8723214"})
	require.NoError(t, err)

	assert.InDelta(t, 84.4, temp.Fahrenheit, 1e-9)
	assert.Equal(t, 6, temp.Time.Minute())
	assert.Equal(t, "8723214", temp.StationID)
	assert.Equal(t, coops.ProviderName, temp.Source)
}

func TestClient_GetWaterTemperatureWithoutStation(t *testing.T) {
	client := newClient(t, func(_ http.ResponseWriter, _ *http.Request) {
		t.Error("no request expected")
	})

	_, err := client.GetWaterTemperature(context.Background(), forecast.Location{ID: "25.78:-80.13"})
	assert.True(t, errors.Is(err, forecast.ErrNoData))
}

func TestClient_GetWaterQuality(t *testing.T) {
	tests := []struct {
		name     string
		body     map[string]any
		status   string
		salinity bool
	}{
		{
			name:     "salinity reported",
			body:     map[string]any{"data": []map[string]string{{"t": "2024-06-01 10:00", "v": "35.1"}}},
			status:   forecast.QualityGood,
			salinity: true,
		},
		{
			name:   "station without salinity",
			body:   map[string]any{"error": map[string]string{"message": "No data was found."}},
			status: forecast.QualityUnavailable,
		},
		{
			name:   "empty data",
			body:   map[string]any{"data": []map[string]string{}},
			status: forecast.QualityUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "salinity", r.URL.Query().Get("product"))
				assert.Equal(t, "latest", r.URL.Query().Get("date"))
				writeJSON(w, tt.body)
			})

			q, err := client.GetWaterQuality(context.Background(), "8723214")
			require.NoError(t, err)
			assert.Equal(t, tt.status, q.Status)
			assert.Equal(t, tt.salinity, q.SalinityPSU != nil)
		})
	}
}

func TestClient_UnexpectedStatus(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	_, err := client.GetWaterQuality(context.Background(), "8723214")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status code: 400")
}
