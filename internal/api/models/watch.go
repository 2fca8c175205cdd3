package models

// WatchConditions is the compact payload polled by smartwatch widgets.
// Keys are abbreviated to keep the body small.
type WatchConditions struct {
	// TS is the response time in Unix milliseconds.
	TS       int64      `json:"ts"`
	Wind     WatchWind  `json:"w"`
	Waves    WatchWaves `json:"v"`
	Score    WatchScore `json:"c"`
	Location *string    `json:"loc"`
}

// WatchWind is wind speed and gusts in mph, direction in degrees.
type WatchWind struct {
	Speed     *float64 `json:"s"`
	Gusts     *float64 `json:"g"`
	Direction *float64 `json:"d"`
	Cardinal  *string  `json:"dc"`
}

// WatchWaves is wave height in feet and period in seconds.
type WatchWaves struct {
	Height *float64 `json:"h"`
	Period *float64 `json:"p"`
}

// WatchScore is the condition score, level and emoji.
type WatchScore struct {
	Score *int    `json:"s"`
	Level *string `json:"l"`
	Emoji *string `json:"e"`
}
