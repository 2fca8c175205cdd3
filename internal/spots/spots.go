// Package spots holds the built-in Miami-area locations, their CO-OPS
// stations and the beach webcams shown alongside them.
package spots

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidewise/tidewise/internal/forecast"
)

// ErrNotFound is returned for an unknown spot ID.
var ErrNotFound = errors.New("spot not found")

// DefaultID is the spot used when a request names no location.
const DefaultID = "miami"

// Spot is a named place conditions are computed for.
type Spot struct {
	ID        string
	Name      string
	Region    string
	Lat       float64
	Lon       float64
	StationID string
}

// Location converts the spot for the forecast service. The spot ID keys
// the cache.
func (s Spot) Location() forecast.Location {
	return forecast.Location{
		ID:        s.ID,
		Name:      s.Name,
		Lat:       s.Lat,
		Lon:       s.Lon,
		StationID: s.StationID,
	}
}

// Station is a NOAA CO-OPS station.
type Station struct {
	ID   string
	Name string
}

// Webcam is a public live camera near a spot.
type Webcam struct {
	Title string
	URL   string
}

var all = []Spot{
	{ID: "miami", Name: "Miami", Region: "Biscayne Bay", Lat: 25.7617, Lon: -80.1918, StationID: "8723214"},
	{ID: "virginia-key", Name: "Virginia Key", Region: "Biscayne Bay", Lat: 25.7312, Lon: -80.1617, StationID: "8723214"},
	{ID: "crandon-park", Name: "Crandon Park", Region: "Key Biscayne", Lat: 25.7090, Lon: -80.1545, StationID: "8723214"},
	{ID: "south-beach", Name: "South Beach", Region: "Miami Beach", Lat: 25.7826, Lon: -80.1300},
	{ID: "haulover", Name: "Haulover", Region: "North Miami Beach", Lat: 25.9061, Lon: -80.1203},
	{ID: "fowey-rocks", Name: "Fowey Rocks", Region: "Biscayne National Park", Lat: 25.5900, Lon: -80.0967, StationID: "8723218"},
	{ID: "key-west", Name: "Key West", Region: "Florida Keys", Lat: 24.5551, Lon: -81.8075, StationID: "8724580"},
	{ID: "vaca-key", Name: "Vaca Key", Region: "Florida Keys", Lat: 24.7110, Lon: -81.1065, StationID: "8723970"},
	{ID: "naples", Name: "Naples", Region: "Gulf Coast", Lat: 26.1317, Lon: -81.8075, StationID: "8725110"},
}

var stations = []Station{
	{ID: "8723214", Name: "Virginia Key, FL"},
	{ID: "8723218", Name: "Fowey Rocks, FL"},
	{ID: "8724580", Name: "Key West, FL"},
	{ID: "8723970", Name: "Vaca Key, FL"},
	{ID: "8725110", Name: "Naples, FL"},
}

var webcams = []Webcam{
	{Title: "Key Biscayne Beach Cam", URL: "https://relay.ozolio.com/player/?camId=5121&autoplay=true"},
	{Title: "PortMiami Live HD Cam", URL: "https://www.portmiamiwebcam.com/live.html"},
	{Title: "Sunny Isles - Newport Pier", URL: "https://relay.ozolio.com/player/?camId=5201&autoplay=true"},
	{Title: "Miami & Beaches Webcams", URL: "https://www.miamiandbeaches.com/plan-your-trip/miami-webcams?wc=2"},
}

// All returns every built-in spot.
func All() []Spot {
	out := make([]Spot, len(all))
	copy(out, all)
	return out
}

// Get returns the spot with the given ID. Matching ignores case.
func Get(id string) (Spot, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, s := range all {
		if s.ID == id {
			return s, nil
		}
	}
	return Spot{}, fmt.Errorf("%w: %q", ErrNotFound, id)
}

// Default returns the Miami spot.
func Default() Spot {
	s, _ := Get(DefaultID)
	return s
}

// Stations returns the known CO-OPS stations.
func Stations() []Station {
	out := make([]Station, len(stations))
	copy(out, stations)
	return out
}

// StationName returns the name of a known station, or "" if unknown.
func StationName(id string) string {
	for _, st := range stations {
		if st.ID == id {
			return st.Name
		}
	}
	return ""
}

// Webcams returns the public webcams around Miami.
func Webcams() []Webcam {
	out := make([]Webcam, len(webcams))
	copy(out, webcams)
	return out
}
