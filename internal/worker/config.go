// Package worker keeps the forecast cache warm for the built-in spots.
package worker

import (
	"time"

	"github.com/tidewise/tidewise/internal/spots"
)

// RefreshConfig holds configuration for the spot refresh job.
type RefreshConfig struct {
	// Spots are the locations to refresh. If empty, uses spots.All().
	Spots []spots.Spot

	// Stations are the CO-OPS stations whose tides are refreshed.
	// If empty, uses spots.Stations().
	Stations []spots.Station

	// Concurrency is the number of spots refreshed at once.
	// Default: 4
	Concurrency int

	// Timeout bounds the refresh of a single spot.
	// Default: 30 seconds
	Timeout time.Duration

	// RefreshTides enables the tide refresh after the spot pass.
	// Default: true
	RefreshTides bool
}

// DefaultRefreshConfig returns the default refresh configuration.
func DefaultRefreshConfig() RefreshConfig {
	return RefreshConfig{
		Spots:        spots.All(),
		Stations:     spots.Stations(),
		Concurrency:  4,
		Timeout:      30 * time.Second,
		RefreshTides: true,
	}
}

func (c RefreshConfig) withDefaults() RefreshConfig {
	def := DefaultRefreshConfig()
	if len(c.Spots) == 0 {
		c.Spots = def.Spots
	}
	if len(c.Stations) == 0 {
		c.Stations = def.Stations
	}
	if c.Concurrency < 1 {
		c.Concurrency = def.Concurrency
	}
	if c.Timeout <= 0 {
		c.Timeout = def.Timeout
	}
	return c
}

// TotalSpots returns the number of spots to refresh.
func (c RefreshConfig) TotalSpots() int {
	return len(c.Spots)
}
