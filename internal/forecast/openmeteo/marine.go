package openmeteo

import (
	"context"
	"fmt"
	"time"

	"github.com/tidewise/tidewise/internal/conditions"
	"github.com/tidewise/tidewise/internal/forecast"
)

// MarineProviderName identifies the marine forecast provider.
const MarineProviderName = "open-meteo-marine"

// MarineClient fetches waves and sea surface temperature from the
// Open-Meteo marine API.
type MarineClient struct {
	*client
}

// NewMarineClient creates a marine client.
func NewMarineClient(cfg ClientConfig) (*MarineClient, error) {
	c, err := newClient(cfg, DefaultMarineURL, MarineProviderName)
	if err != nil {
		return nil, err
	}
	return &MarineClient{client: c}, nil
}

// Name returns the provider name.
func (c *MarineClient) Name() string {
	return MarineProviderName
}

// GetWaves fetches the hourly wave forecast.
func (c *MarineClient) GetWaves(ctx context.Context, lat, lon float64) (*forecast.WaveForecast, error) {
	resp, err := c.fetch(ctx, lat, lon, "wave_height,wave_period,wave_direction,wave_peak_period", nil)
	if err != nil {
		return nil, err
	}

	h := resp.Hourly
	times := c.times(h.Time)
	samples := make([]conditions.WaveSample, 0, len(times))
	for i, t := range times {
		if t.IsZero() {
			continue
		}
		samples = append(samples, conditions.WaveSample{
			Time:         t,
			HeightM:      at(h.WaveHeight, i),
			PeriodS:      at(h.WavePeriod, i),
			DirectionDeg: at(h.WaveDirection, i),
			PeakPeriodS:  at(h.WavePeakPeriod, i),
		})
	}

	return &forecast.WaveForecast{
		Samples:   samples,
		Provider:  MarineProviderName,
		FetchedAt: time.Now(),
	}, nil
}

// GetWaterTemperature returns the hourly sea surface temperature nearest
// to now, converted to Fahrenheit.
func (c *MarineClient) GetWaterTemperature(ctx context.Context, loc forecast.Location) (*forecast.WaterTemperature, error) {
	resp, err := c.fetch(ctx, loc.Lat, loc.Lon, "sea_surface_temperature", nil)
	if err != nil {
		return nil, err
	}

	var (
		times []time.Time
		temps []float64
	)
	for i, t := range c.times(resp.Hourly.Time) {
		v := at(resp.Hourly.SeaSurfaceTemperature, i)
		if v == nil || t.IsZero() {
			continue
		}
		times = append(times, t)
		temps = append(temps, *v)
	}

	idx := conditions.NearestIndex(times, time.Now())
	if idx < 0 {
		return nil, fmt.Errorf("%w: no sea surface temperature", forecast.ErrNoData)
	}
	return &forecast.WaterTemperature{
		Fahrenheit: temps[idx]*9/5 + 32,
		Time:       times[idx],
		Source:     MarineProviderName,
	}, nil
}
