package handler

import (
	"github.com/tidewise/tidewise/internal/api/models"
	"github.com/tidewise/tidewise/internal/conditions"
	"github.com/tidewise/tidewise/internal/forecast"
	"github.com/tidewise/tidewise/internal/marine"
	"github.com/tidewise/tidewise/internal/spots"
)

func newCondition(c *conditions.Condition, locationID string) models.Condition {
	d := c.Display
	out := models.Condition{
		Sport:         string(c.Sport),
		LocationID:    locationID,
		Score:         c.Score,
		Level:         string(c.Level),
		Description:   c.Description,
		Emoji:         c.Emoji,
		WindSpeed:     models.RoundPtr(d.WindSpeedMph, 1),
		WindGusts:     models.RoundPtr(d.WindGustsMph, 1),
		WindDirection: models.RoundPtr(d.WindDirectionDeg, 0),
		WaveHeight:    models.RoundPtr(d.WaveHeightFt, 2),
		WavePeriod:    models.RoundPtr(d.WavePeriodS, 1),
		GustFactor:    models.RoundPtr(c.GustFactor, 1),
		WaterQuality:  d.WaterQuality,
		IsOnshore:     c.IsOnshore,
		IsOffshore:    c.IsOffshore,
		Timestamp:     models.Timestamp(c.Timestamp),
		Unit:          models.UnitFeet,
		WindUnit:      models.UnitMph,
	}
	if len(c.Factors) > 0 {
		out.Factors = make(map[string]string, len(c.Factors))
		for f, v := range c.Factors {
			out.Factors[string(f)] = v
		}
	}
	if b := c.Best; b != nil {
		score, hours := b.Score, b.HoursFromNow
		out.BestTime = models.TimestampPtr(b.Time)
		out.BestScore = &score
		out.BestTimeFormatted = b.Formatted
		out.HoursFromNow = &hours
	}
	return out
}

// newLocationConditions orders the scored sports for display and records
// why the others are missing.
func newLocationConditions(loc forecast.Location, all map[conditions.Sport]*conditions.Condition) models.LocationConditions {
	out := models.LocationConditions{
		Location:   newLocationRef(loc),
		Conditions: make([]models.Condition, 0, len(all)),
	}
	for _, sport := range conditions.Sports() {
		c, ok := all[sport]
		if !ok {
			if out.Unavailable == nil {
				out.Unavailable = make(map[string]string)
			}
			out.Unavailable[string(sport)] = "required forecast series unavailable"
			continue
		}
		out.Conditions = append(out.Conditions, newCondition(c, loc.ID))
	}
	return out
}

func newLocationRef(loc forecast.Location) models.LocationRef {
	return models.LocationRef{
		ID:        loc.ID,
		Name:      loc.Name,
		Lat:       loc.Lat,
		Lon:       loc.Lon,
		StationID: loc.Station(),
	}
}

func newSpot(s spots.Spot) models.Spot {
	return models.Spot{
		ID:        s.ID,
		Name:      s.Name,
		Region:    s.Region,
		Point:     models.Point{Lat: s.Lat, Lon: s.Lon},
		StationID: s.StationID,
		Default:   s.ID == spots.DefaultID,
	}
}

func newWaveEnergy(e *marine.Energy) models.WaveEnergy {
	return models.WaveEnergy{
		Energy:      models.Round(e.EnergyKJ, 1),
		Power:       models.Round(e.PowerKW, 2),
		Unit:        "kJ/m²",
		PowerUnit:   "kW/m",
		Level:       e.Level,
		Description: e.Description,
		WaveHeight:  models.Round(e.HeightM, 2),
		WavePeriod:  models.Round(e.PeriodS, 1),
		Timestamp:   models.Timestamp(e.Time),
	}
}

func newWaveConsistency(c *marine.Consistency) models.WaveConsistency {
	return models.WaveConsistency{
		Score:                models.Round(c.Score, 0),
		Level:                c.Level,
		Description:          c.Description,
		HeightConsistency:    models.Round(c.HeightConsistency, 0),
		PeriodConsistency:    models.Round(c.PeriodConsistency, 0),
		DirectionConsistency: models.Round(c.DirectionConsistency, 0),
		AvgHeight:            models.Round(c.AvgHeightM, 2),
		AvgPeriod:            models.Round(c.AvgPeriodS, 1),
		MeanDirection:        models.Round(c.MeanDirectionDeg, 0),
		Timestamp:            models.Timestamp(c.Time),
	}
}

func newWaterVisibility(v *marine.Visibility) models.WaterVisibility {
	return models.WaterVisibility{
		Visibility:  models.Round(v.Feet, 1),
		Level:       v.Level,
		Description: v.Description,
		WaveHeight:  models.RoundPtr(v.WaveHeightFt, 2),
		WavePeriod:  models.RoundPtr(v.WavePeriodS, 1),
		WindSpeed:   models.RoundPtr(v.WindSpeedMph, 1),
		Unit:        models.UnitFeet,
		Timestamp:   models.Timestamp(v.Time),
	}
}

func newSwellComponent(c marine.SwellComponent) models.SwellComponent {
	return models.SwellComponent{
		Height:    models.Round(c.HeightM, 2),
		Period:    models.Round(c.PeriodS, 1),
		Direction: models.Round(c.DirectionDeg, 0),
		Cardinal:  c.Cardinal,
	}
}

func newSwell(s *marine.SwellReport) models.Swell {
	return models.Swell{
		Primary:   newSwellComponent(s.Primary),
		Secondary: newSwellComponent(s.Secondary),
		Unit:      models.UnitMeters,
		Timestamp: models.Timestamp(s.Time),
	}
}

func newTidePrediction(p forecast.TidePrediction) models.TidePrediction {
	kind := "low"
	if p.Type == forecast.TideHigh {
		kind = "high"
	}
	return models.TidePrediction{
		Time:   models.Timestamp(p.Time),
		Height: models.Round(p.HeightFt, 2),
		Type:   kind,
	}
}
