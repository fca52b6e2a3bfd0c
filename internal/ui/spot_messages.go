package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lucasinocencio1/surf-forecast/internal/forecast"
	"github.com/lucasinocencio1/surf-forecast/internal/models"
	"github.com/lucasinocencio1/surf-forecast/internal/spots"
)

// spotsLoadedMsg is sent when the stored spots have been read
type spotsLoadedMsg struct {
	spots []models.Spot
	err   error
}

// spotSavedMsg is sent when a new spot has been geocoded and saved
type spotSavedMsg struct {
	spot *models.Spot
	err  error
}

// loadSpots reads the stored spots in the background
func loadSpots(svc *spots.Service) tea.Cmd {
	return func() tea.Msg {
		list, err := svc.List()
		return spotsLoadedMsg{spots: list, err: err}
	}
}

// fetchForecast fetches, merges and scores the forecast for a spot
func fetchForecast(svc *forecast.Service, spot models.Spot) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		f, err := svc.Fetch(ctx, &spot)
		return forecastFetchedMsg{forecast: f, err: err}
	}
}

// fetchTides fetches the predicted sea level curve for a spot
func fetchTides(source TideSource, spot models.Spot, days int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		start := time.Now().Truncate(time.Hour)
		length := time.Duration(days) * 24 * time.Hour
		series, err := source.GetHeights(ctx, spot.Latitude, spot.Longitude, start, length)
		return tidesFetchedMsg{tides: series, err: err}
	}
}

// saveSpot geocodes the form location and stores the new spot
func saveSpot(svc *spots.Service, name, location string, facingDeg float64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		spot, err := svc.Create(ctx, name, location, facingDeg)
		return spotSavedMsg{spot: spot, err: err}
	}
}
