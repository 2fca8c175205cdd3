// Package nws implements an alert provider backed by the National Weather
// Service API.
package nws

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/tidewise/tidewise/internal/forecast"
	"github.com/tidewise/tidewise/internal/provider/resilience"
)

const (
	// ProviderName identifies the NWS provider.
	ProviderName = "nws"

	// DefaultBaseURL is the NWS API root.
	DefaultBaseURL = "https://api.weather.gov"

	// DefaultUserAgent is sent with every request; the API rejects
	// anonymous clients.
	DefaultUserAgent = "TideWise/1.0 (github.com/tidewise/tidewise)"
)

// marineEvents are the alert events relevant to people on the water.
var marineEvents = map[string]bool{
	"Small Craft Advisory":         true,
	"Gale Warning":                 true,
	"Storm Warning":                true,
	"Hurricane Force Wind Warning": true,
	"Special Marine Warning":       true,
	"Marine Weather Statement":     true,
	"Hazardous Seas Warning":       true,
	"Rip Current Statement":        true,
	"High Surf Advisory":           true,
	"Beach Hazards Statement":      true,
	"Coastal Flood Advisory":       true,
	"Tropical Storm Warning":       true,
	"Hurricane Warning":            true,
}

// IsMarine reports whether an NWS event name is marine-related.
func IsMarine(event string) bool {
	return marineEvents[event]
}

// ClientConfig holds configuration for the NWS client.
type ClientConfig struct {
	// BaseURL overrides the API root (optional).
	BaseURL string

	// UserAgent identifies the application (default: DefaultUserAgent).
	UserAgent string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient *resilience.Client

	Logger zerolog.Logger
}

// Client fetches active alerts from the NWS API.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *resilience.Client
	logger     zerolog.Logger
}

// NewClient creates a new NWS client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.DefaultClientConfig(ProviderName))
	}

	return &Client{
		baseURL:    baseURL,
		userAgent:  userAgent,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// GetAlerts fetches active marine alerts for a point.
func (c *Client) GetAlerts(ctx context.Context, lat, lon float64) (*forecast.AlertData, error) {
	url := fmt.Sprintf("%s/alerts/active?point=%.4f,%.4f", c.baseURL, lat, lon)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/geo+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var alertResp alertResponse
	if err := json.NewDecoder(resp.Body).Decode(&alertResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	data := &forecast.AlertData{
		Alerts:    make([]forecast.Alert, 0, len(alertResp.Features)),
		FetchedAt: time.Now(),
	}
	for _, feature := range alertResp.Features {
		props := feature.Properties
		if !IsMarine(props.Event) {
			continue
		}

		onset, _ := time.Parse(time.RFC3339, props.Onset)
		expires, _ := time.Parse(time.RFC3339, props.Expires)

		var areas []string
		if props.AreaDesc != "" {
			areas = append(areas, props.AreaDesc)
		}

		data.Alerts = append(data.Alerts, forecast.Alert{
			ID:          props.ID,
			Event:       props.Event,
			Headline:    props.Headline,
			Description: props.Description,
			Severity:    mapSeverity(props.Severity),
			Urgency:     props.Urgency,
			Certainty:   props.Certainty,
			Onset:       onset,
			Expires:     expires,
			Areas:       areas,
			Instruction: props.Instruction,
		})
	}

	c.logger.Debug().
		Int("features", len(alertResp.Features)).
		Int("marine", len(data.Alerts)).
		Msg("fetched alerts")

	return data, nil
}

func mapSeverity(s string) forecast.AlertSeverity {
	switch s {
	case "Extreme":
		return forecast.SeverityExtreme
	case "Severe":
		return forecast.SeveritySevere
	case "Moderate":
		return forecast.SeverityModerate
	case "Minor":
		return forecast.SeverityMinor
	default:
		return forecast.SeverityUnknown
	}
}

type alertResponse struct {
	Features []struct {
		ID         string `json:"id"`
		Properties struct {
			ID          string `json:"id"`
			Event       string `json:"event"`
			Headline    string `json:"headline"`
			Description string `json:"description"`
			Severity    string `json:"severity"`
			Urgency     string `json:"urgency"`
			Certainty   string `json:"certainty"`
			Onset       string `json:"onset"`
			Expires     string `json:"expires"`
			AreaDesc    string `json:"areaDesc"`
			Instruction string `json:"instruction"`
		} `json:"properties"`
	} `json:"features"`
}
