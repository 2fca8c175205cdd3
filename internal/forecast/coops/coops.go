// Package coops implements tide, water temperature and salinity providers
// backed by the NOAA CO-OPS datagetter API.
package coops

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/tidewise/tidewise/internal/forecast"
	"github.com/tidewise/tidewise/internal/provider/resilience"
)

const (
	// ProviderName identifies the CO-OPS provider.
	ProviderName = "noaa-coops"

	// DefaultBaseURL is the CO-OPS datagetter endpoint.
	DefaultBaseURL = "https://api.tidesandcurrents.noaa.gov/api/prod/datagetter"

	// Application is sent with every request as CO-OPS asks.
	Application = "tidewise"

	timeLayout = "2006-01-02 15:04"
	dateLayout = "20060102"
)

// ClientConfig holds configuration for the CO-OPS client.
type ClientConfig struct {
	// BaseURL overrides the datagetter endpoint (optional).
	BaseURL string

	// Location is the station local zone timestamps are parsed in
	// (default: America/New_York).
	Location *time.Location

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient *resilience.Client

	Logger zerolog.Logger
}

// Client fetches station products from CO-OPS.
type Client struct {
	baseURL    string
	location   *time.Location
	httpClient *resilience.Client
	logger     zerolog.Logger
}

// NewClient creates a new CO-OPS client.
func NewClient(cfg ClientConfig) (*Client, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	loc := cfg.Location
	if loc == nil {
		var err error
		if loc, err = time.LoadLocation("America/New_York"); err != nil {
			return nil, fmt.Errorf("loading time zone: %w", err)
		}
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.DefaultClientConfig(ProviderName))
	}

	return &Client{
		baseURL:    baseURL,
		location:   loc,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}, nil
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

type metadata struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Lat  string `json:"lat"`
	Lon  string `json:"lon"`
}

// apiError is returned in a 200 response when a station lacks a product.
type apiError struct {
	Message string `json:"message"`
}

type predictionsResponse struct {
	Metadata    metadata  `json:"metadata"`
	Error       *apiError `json:"error"`
	Predictions []struct {
		Time   string `json:"t"`
		Height string `json:"v"`
		Type   string `json:"type"`
	} `json:"predictions"`
}

type observationsResponse struct {
	Metadata metadata  `json:"metadata"`
	Error    *apiError `json:"error"`
	Data     []struct {
		Time  string `json:"t"`
		Value string `json:"v"`
	} `json:"data"`
}

// GetTides fetches high/low tide predictions in feet above MLLW for the
// given number of days starting at from.
func (c *Client) GetTides(ctx context.Context, stationID string, from time.Time, days int) (*forecast.TideData, error) {
	if days < 1 {
		days = 1
	}
	from = from.In(c.location)
	params := url.Values{}
	params.Set("begin_date", from.Format(dateLayout))
	params.Set("end_date", from.AddDate(0, 0, days-1).Format(dateLayout))
	params.Set("station", stationID)
	params.Set("product", "predictions")
	params.Set("datum", "MLLW")
	params.Set("interval", "hilo")
	params.Set("units", "english")

	var resp predictionsResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("%w: %s", forecast.ErrNoData, resp.Error.Message)
	}

	data := &forecast.TideData{
		StationID:   stationID,
		StationName: resp.Metadata.Name,
		Predictions: make([]forecast.TidePrediction, 0, len(resp.Predictions)),
		FetchedAt:   time.Now(),
	}
	for _, p := range resp.Predictions {
		t, err := time.ParseInLocation(timeLayout, p.Time, c.location)
		if err != nil {
			continue
		}
		height, err := strconv.ParseFloat(p.Height, 64)
		if err != nil {
			continue
		}
		typ := forecast.TideLow
		if p.Type == "H" {
			typ = forecast.TideHigh
		}
		data.Predictions = append(data.Predictions, forecast.TidePrediction{
			Time:     t,
			HeightFt: height,
			Type:     typ,
		})
	}

	if len(data.Predictions) == 0 {
		return nil, fmt.Errorf("%w: no tide predictions for station %s", forecast.ErrNoData, stationID)
	}
	return data, nil
}

// GetWaterTemperature returns the latest reading over the past day from the
// location's station.
func (c *Client) GetWaterTemperature(ctx context.Context, loc forecast.Location) (*forecast.WaterTemperature, error) {
	if loc.StationID == "" {
		return nil, fmt.Errorf("%w: no station for %s", forecast.ErrNoData, loc.ID)
	}

	params := url.Values{}
	params.Set("station", loc.StationID)
	params.Set("product", "water_temperature")
	params.Set("datum", "MSL")
	params.Set("range", "24")
	params.Set("units", "english")

	t, v, err := c.latest(ctx, params)
	if err != nil {
		return nil, err
	}
	return &forecast.WaterTemperature{
		Fahrenheit: v,
		Time:       t,
		StationID:  loc.StationID,
		Source:     ProviderName,
	}, nil
}

// GetWaterQuality reports Good when the station publishes a salinity
// reading and Unavailable otherwise.
func (c *Client) GetWaterQuality(ctx context.Context, stationID string) (*forecast.WaterQuality, error) {
	params := url.Values{}
	params.Set("station", stationID)
	params.Set("product", "salinity")
	params.Set("date", "latest")

	q := &forecast.WaterQuality{
		Status:    forecast.QualityUnavailable,
		StationID: stationID,
		Source:    ProviderName,
	}

	t, v, err := c.latest(ctx, params)
	switch {
	case err == nil:
		q.Status = forecast.QualityGood
		q.SalinityPSU = &v
		q.Time = t
	case errors.Is(err, forecast.ErrNoData):
		c.logger.Debug().Str("station", stationID).Msg("no salinity for station")
	default:
		return nil, err
	}
	return q, nil
}

// latest returns the last parsable observation of a product.
func (c *Client) latest(ctx context.Context, params url.Values) (time.Time, float64, error) {
	var resp observationsResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return time.Time{}, 0, err
	}
	if resp.Error != nil {
		return time.Time{}, 0, fmt.Errorf("%w: %s", forecast.ErrNoData, resp.Error.Message)
	}

	for i := len(resp.Data) - 1; i >= 0; i-- {
		obs := resp.Data[i]
		v, err := strconv.ParseFloat(obs.Value, 64)
		if err != nil {
			continue
		}
		t, err := time.ParseInLocation(timeLayout, obs.Time, c.location)
		if err != nil {
			continue
		}
		return t, v, nil
	}
	return time.Time{}, 0, fmt.Errorf("%w: %s", forecast.ErrNoData, params.Get("product"))
}

func (c *Client) get(ctx context.Context, params url.Values, out any) error {
	params.Set("time_zone", "lst_ldt")
	params.Set("format", "json")
	params.Set("application", Application)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
