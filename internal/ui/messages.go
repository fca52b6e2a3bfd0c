package ui

import (
	"github.com/lucasinocencio1/surf-forecast/internal/models"
)

// Message types for async operations

// forecastFetchedMsg is sent when the scored forecast for a spot has
// been fetched
type forecastFetchedMsg struct {
	forecast *models.SpotForecast
	err      error
}

// tidesFetchedMsg is sent when tide data has been fetched
type tidesFetchedMsg struct {
	tides *models.TideSeries
	err   error
}

// errMsg is a message type for errors
type errMsg struct {
	err error
}
