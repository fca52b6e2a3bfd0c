package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"github.com/lucasinocencio1/surf-forecast/internal/models"
)

// spotItem wraps a Spot for use in a list
type spotItem struct {
	spot models.Spot
}

// FilterValue implements list.Item
func (s spotItem) FilterValue() string {
	return s.spot.Name
}

// Title implements list.DefaultItem
func (s spotItem) Title() string {
	return s.spot.Name
}

// Description implements list.DefaultItem
func (s spotItem) Description() string {
	return fmt.Sprintf("%.3f, %.3f • faces %s (%.0f°)",
		s.spot.Latitude, s.spot.Longitude,
		models.DegreesToCompass(s.spot.FacingDeg), s.spot.FacingDeg)
}

// createSpotList creates a list.Model from stored spots
func createSpotList(spotRows []models.Spot, width, height int) list.Model {
	items := make([]list.Item, len(spotRows))
	for i, spot := range spotRows {
		items[i] = spotItem{spot: spot}
	}

	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = "Select a Surf Spot"
	l.SetShowHelp(true)
	l.SetFilteringEnabled(false)

	return l
}
