package models

// WaveEnergy is the energy carried by the current sea state. Wave height
// is in metres.
type WaveEnergy struct {
	Energy      float64   `json:"energy"`
	Power       float64   `json:"power"`
	Unit        string    `json:"unit"`
	PowerUnit   string    `json:"powerUnit"`
	Level       string    `json:"level"`
	Description string    `json:"description"`
	WaveHeight  float64   `json:"waveHeight"`
	WavePeriod  float64   `json:"wavePeriod"`
	Timestamp   Timestamp `json:"timestamp"`
}

// WaveConsistency describes how steady the swell is over the next day.
// Consistency values are percentages.
type WaveConsistency struct {
	Score                float64   `json:"score"`
	Level                string    `json:"level"`
	Description          string    `json:"description"`
	HeightConsistency    float64   `json:"heightConsistency"`
	PeriodConsistency    float64   `json:"periodConsistency"`
	DirectionConsistency float64   `json:"directionConsistency"`
	AvgHeight            float64   `json:"avgHeight"`
	AvgPeriod            float64   `json:"avgPeriod"`
	MeanDirection        float64   `json:"meanDirection"`
	Timestamp            Timestamp `json:"timestamp"`
}

// WaterVisibility is an underwater visibility estimate in feet.
type WaterVisibility struct {
	Visibility  float64   `json:"visibility"`
	Level       string    `json:"level"`
	Description string    `json:"description"`
	WaveHeight  *float64  `json:"waveHeight"`
	WavePeriod  *float64  `json:"wavePeriod"`
	WindSpeed   *float64  `json:"windSpeed"`
	Unit        string    `json:"unit"`
	Timestamp   Timestamp `json:"timestamp"`
}

// SwellComponent is one swell train. Height is in metres.
type SwellComponent struct {
	Height    float64 `json:"height"`
	Period    float64 `json:"period"`
	Direction float64 `json:"direction"`
	Cardinal  string  `json:"cardinal"`
}

// Swell splits the sea state into primary and secondary swell.
type Swell struct {
	Primary   SwellComponent `json:"primary"`
	Secondary SwellComponent `json:"secondary"`
	Unit      string         `json:"unit"`
	Timestamp Timestamp      `json:"timestamp"`
}

// TidePrediction is one predicted high or low water, height in feet.
type TidePrediction struct {
	Time   Timestamp `json:"time"`
	Height float64   `json:"height"`
	Type   string    `json:"type"`
}

// Tides lists upcoming high and low waters for a station.
type Tides struct {
	StationID   string           `json:"stationId"`
	StationName string           `json:"stationName,omitempty"`
	Predictions []TidePrediction `json:"predictions"`
	NextHigh    *TidePrediction  `json:"nextHigh,omitempty"`
	NextLow     *TidePrediction  `json:"nextLow,omitempty"`
	Unit        string           `json:"unit"`
	Source      string           `json:"source"`
}

// WaterTemperature is the latest water temperature in °F.
type WaterTemperature struct {
	Temperature float64   `json:"temperature"`
	Unit        string    `json:"unit"`
	StationID   string    `json:"stationId,omitempty"`
	Source      string    `json:"source"`
	Timestamp   Timestamp `json:"timestamp"`
}

// WaterQuality is the coarse water quality label for a station.
type WaterQuality struct {
	Status    string     `json:"status"`
	Salinity  *float64   `json:"salinity,omitempty"`
	StationID string     `json:"stationId,omitempty"`
	Source    string     `json:"source"`
	Timestamp *Timestamp `json:"timestamp,omitempty"`
}

// Alert is an active marine weather alert.
type Alert struct {
	ID          string     `json:"id"`
	Event       string     `json:"event"`
	Headline    string     `json:"headline,omitempty"`
	Description string     `json:"description,omitempty"`
	Instruction string     `json:"instruction,omitempty"`
	Severity    string     `json:"severity"`
	Urgency     string     `json:"urgency,omitempty"`
	Certainty   string     `json:"certainty,omitempty"`
	Onset       *Timestamp `json:"onset,omitempty"`
	Expires     *Timestamp `json:"expires,omitempty"`
	Areas       []string   `json:"areas,omitempty"`
}

// Alerts lists the active marine alerts for a point.
type Alerts struct {
	Alerts    []Alert   `json:"alerts"`
	Count     int       `json:"count"`
	Source    string    `json:"source"`
	FetchedAt Timestamp `json:"fetchedAt"`
}

// Wind is the wind reading nearest to now.
type Wind struct {
	Speed     *float64  `json:"speed"`
	Gusts     *float64  `json:"gusts"`
	Direction *float64  `json:"direction"`
	Cardinal  string    `json:"cardinal,omitempty"`
	Unit      string    `json:"unit"`
	Timestamp Timestamp `json:"timestamp"`
}

// Waves is the wave reading nearest to now.
type Waves struct {
	WaveHeight    *float64  `json:"waveHeight"`
	WavePeriod    *float64  `json:"wavePeriod"`
	WaveDirection *float64  `json:"waveDirection"`
	Cardinal      string    `json:"cardinal,omitempty"`
	Unit          string    `json:"unit"`
	Timestamp     Timestamp `json:"timestamp"`
}
