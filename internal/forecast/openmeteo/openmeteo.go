// Package openmeteo implements wind, wave and sea surface temperature
// providers backed by the Open-Meteo forecast and marine APIs.
package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/tidewise/tidewise/internal/provider/resilience"
)

const (
	// DefaultForecastURL is the Open-Meteo weather forecast endpoint.
	DefaultForecastURL = "https://api.open-meteo.com/v1/forecast"

	// DefaultMarineURL is the Open-Meteo marine forecast endpoint.
	DefaultMarineURL = "https://marine-api.open-meteo.com/v1/marine"

	// DefaultTimeZone is the zone hourly timestamps are requested in.
	DefaultTimeZone = "America/New_York"

	timeLayout = "2006-01-02T15:04"
)

// ClientConfig holds configuration shared by the Open-Meteo clients.
type ClientConfig struct {
	// BaseURL overrides the endpoint (optional).
	BaseURL string

	// TimeZone is passed to the API and used to parse timestamps.
	TimeZone string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient *resilience.Client

	Logger zerolog.Logger
}

type client struct {
	baseURL    string
	timeZone   string
	location   *time.Location
	httpClient *resilience.Client
	logger     zerolog.Logger
}

func newClient(cfg ClientConfig, defaultURL, name string) (*client, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultURL
	}

	tz := cfg.TimeZone
	if tz == "" {
		tz = DefaultTimeZone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("loading time zone %q: %w", tz, err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.DefaultClientConfig(name))
	}

	return &client{
		baseURL:    baseURL,
		timeZone:   tz,
		location:   loc,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}, nil
}

// hourlyResponse is the common envelope of both APIs. Values are pointers
// because the API reports missing hours as null.
type hourlyResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
	Hourly    struct {
		Time []string `json:"time"`

		WindSpeed10m     []*float64 `json:"wind_speed_10m"`
		WindGusts10m     []*float64 `json:"wind_gusts_10m"`
		WindDirection10m []*float64 `json:"wind_direction_10m"`

		WaveHeight            []*float64 `json:"wave_height"`
		WavePeriod            []*float64 `json:"wave_period"`
		WaveDirection         []*float64 `json:"wave_direction"`
		WavePeakPeriod        []*float64 `json:"wave_peak_period"`
		SeaSurfaceTemperature []*float64 `json:"sea_surface_temperature"`
	} `json:"hourly"`
}

func (c *client) fetch(ctx context.Context, lat, lon float64, hourly string, extra url.Values) (*hourlyResponse, error) {
	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%.4f", lat))
	params.Set("longitude", fmt.Sprintf("%.4f", lon))
	params.Set("hourly", hourly)
	params.Set("timezone", c.timeZone)
	for k, v := range extra {
		params[k] = v
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var out hourlyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return &out, nil
}

// times parses the hourly timestamps. Unparsable entries come back as the
// zero time and are dropped by the callers.
func (c *client) times(raw []string) []time.Time {
	out := make([]time.Time, len(raw))
	for i, s := range raw {
		t, err := time.ParseInLocation(timeLayout, s, c.location)
		if err != nil {
			c.logger.Debug().Str("value", s).Msg("skipping unparsable timestamp")
			continue
		}
		out[i] = t
	}
	return out
}

// at returns vals[i], or nil when the array is short.
func at(vals []*float64, i int) *float64 {
	if i < len(vals) {
		return vals[i]
	}
	return nil
}
