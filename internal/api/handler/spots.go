package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/tidewise/tidewise/internal/api/models"
	"github.com/tidewise/tidewise/internal/api/response"
	"github.com/tidewise/tidewise/internal/conditions"
	"github.com/tidewise/tidewise/internal/spots"
)

// referenceMaxAge is how long clients may cache static reference data.
const referenceMaxAge = time.Hour

// SpotsHandler serves the built-in spots and reference data.
type SpotsHandler struct {
	log zerolog.Logger
}

// NewSpotsHandler creates a new SpotsHandler.
func NewSpotsHandler(log zerolog.Logger) *SpotsHandler {
	return &SpotsHandler{log: log}
}

// List handles GET /v1/spots.
func (h *SpotsHandler) List(w http.ResponseWriter, r *http.Request) {
	all := spots.All()
	list := models.SpotList{Items: make([]models.Spot, 0, len(all)), Count: len(all)}
	for _, s := range all {
		list.Items = append(list.Items, newSpot(s))
	}
	response.CacheFor(w, referenceMaxAge)
	response.JSON(w, r, http.StatusOK, list)
}

// Get handles GET /v1/spots/{spotId}.
func (h *SpotsHandler) Get(w http.ResponseWriter, r *http.Request) {
	spot, err := spots.Get(chi.URLParam(r, "spotId"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	response.CacheFor(w, referenceMaxAge)
	response.JSON(w, r, http.StatusOK, newSpot(spot))
}

// Metadata handles GET /v1/metadata: stations, webcams, sports and levels.
func (h *SpotsHandler) Metadata(w http.ResponseWriter, r *http.Request) {
	meta := models.SpotMetadata{}
	for _, s := range spots.Stations() {
		meta.Stations = append(meta.Stations, models.Station{ID: s.ID, Name: s.Name})
	}
	for _, c := range spots.Webcams() {
		meta.Webcams = append(meta.Webcams, models.Webcam{Title: c.Title, URL: c.URL})
	}
	for _, s := range conditions.Sports() {
		meta.Sports = append(meta.Sports, string(s))
	}
	for _, l := range conditions.Levels() {
		meta.Levels = append(meta.Levels, string(l))
	}
	response.CacheFor(w, referenceMaxAge)
	response.JSON(w, r, http.StatusOK, meta)
}
