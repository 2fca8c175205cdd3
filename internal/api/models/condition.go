package models

// Condition is the scored suitability of one sport at one location.
// Wind values are in mph and wave heights in feet.
type Condition struct {
	Sport       string `json:"sport"`
	LocationID  string `json:"locationId,omitempty"`
	Score       int    `json:"score"`
	Level       string `json:"level"`
	Description string `json:"description"`
	Emoji       string `json:"emoji"`

	WindSpeed     *float64 `json:"windSpeed"`
	WindGusts     *float64 `json:"windGusts"`
	WindDirection *float64 `json:"windDirection"`
	WaveHeight    *float64 `json:"waveHeight"`
	WavePeriod    *float64 `json:"wavePeriod"`
	GustFactor    *float64 `json:"gustFactor"`
	WaterQuality  string   `json:"waterQuality,omitempty"`

	IsOnshore  *bool `json:"isOnshore,omitempty"`
	IsOffshore *bool `json:"isOffshore,omitempty"`

	// Factors is the formatted value of each input that moved the score.
	Factors map[string]string `json:"factors,omitempty"`

	Timestamp Timestamp `json:"timestamp"`
	Unit      string    `json:"unit"`
	WindUnit  string    `json:"windUnit"`

	BestTime          *Timestamp `json:"bestTime,omitempty"`
	BestScore         *int       `json:"bestScore,omitempty"`
	BestTimeFormatted string     `json:"bestTimeFormatted,omitempty"`
	HoursFromNow      *int       `json:"hoursFromNow,omitempty"`
}

// LocationRef identifies the place a response describes.
type LocationRef struct {
	ID        string  `json:"id"`
	Name      string  `json:"name,omitempty"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	StationID string  `json:"stationId,omitempty"`
}

// LocationConditions holds one location's conditions for every sport that
// could be scored, in display order.
type LocationConditions struct {
	Location   LocationRef `json:"location"`
	Conditions []Condition `json:"conditions"`

	// Unavailable maps sports that could not be scored to the reason.
	Unavailable map[string]string `json:"unavailable,omitempty"`
}
