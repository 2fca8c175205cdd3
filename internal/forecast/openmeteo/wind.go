package openmeteo

import (
	"context"
	"net/url"
	"time"

	"github.com/tidewise/tidewise/internal/conditions"
	"github.com/tidewise/tidewise/internal/forecast"
)

// WindProviderName identifies the wind forecast provider.
const WindProviderName = "open-meteo"

// WindClient fetches hourly 10 m wind from the Open-Meteo forecast API.
type WindClient struct {
	*client
}

// NewWindClient creates a wind client.
func NewWindClient(cfg ClientConfig) (*WindClient, error) {
	c, err := newClient(cfg, DefaultForecastURL, WindProviderName)
	if err != nil {
		return nil, err
	}
	return &WindClient{client: c}, nil
}

// Name returns the provider name.
func (c *WindClient) Name() string {
	return WindProviderName
}

// GetWind fetches the hourly wind forecast in m/s.
func (c *WindClient) GetWind(ctx context.Context, lat, lon float64) (*forecast.WindForecast, error) {
	resp, err := c.fetch(ctx, lat, lon, "wind_speed_10m,wind_gusts_10m,wind_direction_10m",
		url.Values{"wind_speed_unit": {"ms"}})
	if err != nil {
		return nil, err
	}

	h := resp.Hourly
	times := c.times(h.Time)
	samples := make([]conditions.WindSample, 0, len(times))
	for i, t := range times {
		if t.IsZero() {
			continue
		}
		samples = append(samples, conditions.WindSample{
			Time:         t,
			SpeedMps:     at(h.WindSpeed10m, i),
			GustsMps:     at(h.WindGusts10m, i),
			DirectionDeg: at(h.WindDirection10m, i),
		})
	}

	return &forecast.WindForecast{
		Samples:   samples,
		Provider:  WindProviderName,
		FetchedAt: time.Now(),
	}, nil
}
