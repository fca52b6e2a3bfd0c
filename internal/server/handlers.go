package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/lucasinocencio1/surf-forecast/internal/forecast"
	"github.com/lucasinocencio1/surf-forecast/internal/geocoding"
	"github.com/lucasinocencio1/surf-forecast/internal/models"
	"github.com/lucasinocencio1/surf-forecast/internal/observability"
	"github.com/lucasinocencio1/surf-forecast/internal/scoring"
	"github.com/lucasinocencio1/surf-forecast/internal/spots"
)

// Handlers implements the API endpoints over the spot store, the
// forecast service and the geocoder.
type Handlers struct {
	spots    *spots.Service
	forecast *forecast.Service
	history  *spots.HistoryRepository
	geocoder spots.Locator
	metrics  *observability.Metrics
	logger   zerolog.Logger
}

// NewHandlers wires the endpoint dependencies. history may be nil when
// the deployment does not persist fetches.
func NewHandlers(spotSvc *spots.Service, forecastSvc *forecast.Service, history *spots.HistoryRepository, geocoder spots.Locator, metrics *observability.Metrics, logger zerolog.Logger) *Handlers {
	return &Handlers{
		spots:    spotSvc,
		forecast: forecastSvc,
		history:  history,
		geocoder: geocoder,
		metrics:  metrics,
		logger:   logger,
	}
}

// spotRequest is the POST/PUT payload for a spot. Location, when set,
// is geocoded to fill latitude/longitude, so clients can create spots
// from a place name without a separate geocode round trip.
type spotRequest struct {
	Name        string                  `json:"name"`
	Latitude    float64                 `json:"latitude"`
	Longitude   float64                 `json:"longitude"`
	Location    string                  `json:"location,omitempty"`
	FacingDeg   float64                 `json:"facing_deg"`
	SwellWindow *models.DirectionWindow `json:"swell_window,omitempty"`
	WindWindow  *models.DirectionWindow `json:"wind_window,omitempty"`
}

// toSpot resolves the request into a validated spot, geocoding the
// location query when coordinates were not given.
func (h *Handlers) toSpot(r *http.Request, req spotRequest) (*models.Spot, error) {
	spot := &models.Spot{
		Name:        req.Name,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		FacingDeg:   req.FacingDeg,
		SwellWindow: req.SwellWindow,
		WindWindow:  req.WindWindow,
	}

	if req.Location != "" && req.Latitude == 0 && req.Longitude == 0 {
		loc, err := h.geocoder.Geocode(r.Context(), req.Location)
		if err != nil {
			return nil, fmt.Errorf("geocoding %q: %w", req.Location, err)
		}
		spot.Latitude = loc.Latitude
		spot.Longitude = loc.Longitude
	}

	if err := spot.Validate(); err != nil {
		return nil, err
	}
	return spot, nil
}

// ListSpots handles GET /api/spots
func (h *Handlers) ListSpots(w http.ResponseWriter, r *http.Request) {
	list, err := h.spots.List()
	if err != nil {
		h.serverError(w, r, "listing spots", err)
		return
	}
	if list == nil {
		list = []models.Spot{}
	}
	writeJSON(w, http.StatusOK, list)
}

// CreateSpot handles POST /api/spots
func (h *Handlers) CreateSpot(w http.ResponseWriter, r *http.Request) {
	var req spotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	spot, err := h.toSpot(r, req)
	if err != nil {
		if errors.Is(err, geocoding.ErrNoResults) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.spots.Save(spot); err != nil {
		h.serverError(w, r, "saving spot", err)
		return
	}

	writeJSON(w, http.StatusCreated, spot)
}

// GetSpot handles GET /api/spots/{id}
func (h *Handlers) GetSpot(w http.ResponseWriter, r *http.Request) {
	spot, ok := h.spotFromPath(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, spot)
}

// UpdateSpot handles PUT /api/spots/{id}
func (h *Handlers) UpdateSpot(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromPath(w, r)
	if !ok {
		return
	}

	var req spotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	spot, err := h.toSpot(r, req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	spot.ID = id

	if err := h.spots.Update(spot); err != nil {
		if errors.Is(err, spots.ErrNotFound) {
			writeError(w, http.StatusNotFound, "spot not found")
			return
		}
		h.serverError(w, r, "updating spot", err)
		return
	}

	writeJSON(w, http.StatusOK, spot)
}

// DeleteSpot handles DELETE /api/spots/{id}
func (h *Handlers) DeleteSpot(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromPath(w, r)
	if !ok {
		return
	}

	if err := h.spots.Delete(id); err != nil {
		if errors.Is(err, spots.ErrNotFound) {
			writeError(w, http.StatusNotFound, "spot not found")
			return
		}
		h.serverError(w, r, "deleting spot", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// NearestSpots handles GET /api/spots/nearest?lat=&lon=&max_km=
func (h *Handlers) NearestSpots(w http.ResponseWriter, r *http.Request) {
	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "lat is required")
		return
	}
	lon, err := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "lon is required")
		return
	}

	maxKm := 100.0
	if v := r.URL.Query().Get("max_km"); v != "" {
		maxKm, err = strconv.ParseFloat(v, 64)
		if err != nil || maxKm <= 0 {
			writeError(w, http.StatusBadRequest, "max_km must be a positive number")
			return
		}
	}

	nearby, err := h.spots.Nearest(lat, lon, maxKm)
	if err != nil {
		h.serverError(w, r, "finding nearest spots", err)
		return
	}
	if nearby == nil {
		nearby = []spots.SpotDistance{}
	}
	writeJSON(w, http.StatusOK, nearby)
}

// GetForecast handles GET /api/spots/{id}/forecast
func (h *Handlers) GetForecast(w http.ResponseWriter, r *http.Request) {
	spot, ok := h.spotFromPath(w, r)
	if !ok {
		return
	}

	f, ok := h.fetchForecast(w, r, spot)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, f)
}

// bestResponse is the GET /api/spots/{id}/best payload. NoData is set
// instead of Best when nothing in the series could be scored.
type bestResponse struct {
	Spot           models.Spot          `json:"spot"`
	Best           *models.ScoredSample `json:"best,omitempty"`
	Notes          string               `json:"notes,omitempty"`
	SkippedSamples int                  `json:"skipped_samples"`
	NoData         bool                 `json:"no_data,omitempty"`
}

// GetBest handles GET /api/spots/{id}/best
func (h *Handlers) GetBest(w http.ResponseWriter, r *http.Request) {
	spot, ok := h.spotFromPath(w, r)
	if !ok {
		return
	}

	f, ok := h.fetchForecast(w, r, spot)
	if !ok {
		return
	}

	resp := bestResponse{Spot: *spot, SkippedSamples: f.SkippedSamples}
	if best, found := forecast.Best(f); found {
		resp.Best = &best
		resp.Notes = scoring.Notes(best.ForecastSample)
	} else {
		resp.NoData = true
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetHistory handles GET /api/spots/{id}/history?since=&limit=
func (h *Handlers) GetHistory(w http.ResponseWriter, r *http.Request) {
	spot, ok := h.spotFromPath(w, r)
	if !ok {
		return
	}
	if h.history == nil {
		writeError(w, http.StatusNotFound, "history is not enabled")
		return
	}

	since := time.Now().AddDate(0, 0, -7)
	if v := r.URL.Query().Get("since"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "since must be RFC3339")
			return
		}
		since = parsed
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = parsed
	}

	entries, err := h.history.ForSpot(spot.ID, since, limit)
	if err != nil {
		h.serverError(w, r, "reading history", err)
		return
	}
	if entries == nil {
		entries = []spots.HistoryEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// Rank handles GET /api/rank
func (h *Handlers) Rank(w http.ResponseWriter, r *http.Request) {
	list, err := h.spots.List()
	if err != nil {
		h.serverError(w, r, "listing spots", err)
		return
	}

	rankings := h.forecast.Rank(r.Context(), list)
	if rankings == nil {
		rankings = []models.SpotRanking{}
	}
	writeJSON(w, http.StatusOK, rankings)
}

// Geocode handles GET /api/geocode?q=
func (h *Handlers) Geocode(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "q is required")
		return
	}

	loc, err := h.geocoder.Geocode(r.Context(), query)
	if err != nil {
		if errors.Is(err, geocoding.ErrNoResults) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("no results for %q", query))
			return
		}
		h.logger.Warn().Err(err).Str("query", query).Msg("geocoding failed")
		writeError(w, http.StatusBadGateway, "geocoding failed")
		return
	}

	writeJSON(w, http.StatusOK, loc)
}

// Health handles GET /healthz
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// NotFound is the fallback for unknown routes.
func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "not found")
}

// fetchForecast runs a live fetch for a spot, recording metrics, and
// writes the error response itself on failure.
func (h *Handlers) fetchForecast(w http.ResponseWriter, r *http.Request, spot *models.Spot) (*models.SpotForecast, bool) {
	start := time.Now()
	f, err := h.forecast.Fetch(r.Context(), spot)
	h.metrics.FetchDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		h.metrics.ForecastFetches.WithLabelValues("error").Inc()
		h.logger.Warn().Err(err).Str("spot", spot.Name).Msg("forecast fetch failed")
		writeError(w, http.StatusBadGateway, fmt.Sprintf("fetching forecast for %s failed", spot.Name))
		return nil, false
	}

	h.metrics.ForecastFetches.WithLabelValues("success").Inc()
	h.metrics.SamplesScored.Add(float64(len(f.Samples)))
	h.metrics.SamplesSkipped.Add(float64(f.SkippedSamples))
	return f, true
}

// spotFromPath loads the spot named by the {id} path variable, writing
// the error response itself when the id is bad or unknown.
func (h *Handlers) spotFromPath(w http.ResponseWriter, r *http.Request) (*models.Spot, bool) {
	id, ok := idFromPath(w, r)
	if !ok {
		return nil, false
	}

	spot, err := h.spots.Get(id)
	if err != nil {
		if errors.Is(err, spots.ErrNotFound) {
			writeError(w, http.StatusNotFound, "spot not found")
			return nil, false
		}
		h.serverError(w, r, "loading spot", err)
		return nil, false
	}
	return spot, true
}

func idFromPath(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid spot id")
		return 0, false
	}
	return id, true
}

func (h *Handlers) serverError(w http.ResponseWriter, r *http.Request, action string, err error) {
	requestID, _ := r.Context().Value(requestIDKey).(string)
	h.logger.Error().Err(err).Str("request_id", requestID).Msg(action + " failed")
	writeError(w, http.StatusInternalServerError, "internal error")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
