package models

// Spot is a built-in location.
type Spot struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Region    string `json:"region"`
	Point     Point  `json:"point"`
	StationID string `json:"stationId,omitempty"`
	Default   bool   `json:"default,omitempty"`
}

// SpotList lists every built-in spot.
type SpotList struct {
	Items []Spot `json:"items"`
	Count int    `json:"count"`
}

// Station is a NOAA CO-OPS station.
type Station struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Webcam is a public live view of a spot.
type Webcam struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// SpotMetadata bundles the reference data clients render alongside spots.
type SpotMetadata struct {
	Stations []Station `json:"stations"`
	Webcams  []Webcam  `json:"webcams"`
	Sports   []string  `json:"sports"`
	Levels   []string  `json:"levels"`
}
