package forecast

import (
	"context"
	"time"
)

// WindProvider supplies hourly wind forecasts.
type WindProvider interface {
	GetWind(ctx context.Context, lat, lon float64) (*WindForecast, error)
	Name() string
}

// WaveProvider supplies hourly marine forecasts.
type WaveProvider interface {
	GetWaves(ctx context.Context, lat, lon float64) (*WaveForecast, error)
	Name() string
}

// TideProvider supplies high/low tide predictions for a station.
type TideProvider interface {
	GetTides(ctx context.Context, stationID string, from time.Time, days int) (*TideData, error)
	Name() string
}

// WaterTemperatureProvider supplies the latest water temperature.
type WaterTemperatureProvider interface {
	GetWaterTemperature(ctx context.Context, loc Location) (*WaterTemperature, error)
	Name() string
}

// WaterQualityProvider supplies a water-quality label for a station.
type WaterQualityProvider interface {
	GetWaterQuality(ctx context.Context, stationID string) (*WaterQuality, error)
	Name() string
}

// AlertProvider supplies active marine alerts near a point.
type AlertProvider interface {
	GetAlerts(ctx context.Context, lat, lon float64) (*AlertData, error)
	Name() string
}

// Observer receives cache and scoring events. Implementations must be safe
// for concurrent use.
type Observer interface {
	ObserveCache(kind, result string)
	ObserveCondition(sport, location, level string, score int)
}

type nopObserver struct{}

func (nopObserver) ObserveCache(string, string) {}
func (nopObserver) ObserveCondition(string, string, string, int) {}
