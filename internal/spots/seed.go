package spots

import (
	"fmt"

	"github.com/lucasinocencio1/surf-forecast/internal/models"
)

// DefaultSpots returns the three Portuguese breaks the project started
// with. Facing azimuths are the approximate beach orientations; swell
// windows span 30 degrees either side of facing.
func DefaultSpots() []models.Spot {
	return []models.Spot{
		{
			Name:        "Costa da Caparica",
			Latitude:    38.643,
			Longitude:   -9.236,
			FacingDeg:   240,
			SwellWindow: &models.DirectionWindow{FromDeg: 210, ToDeg: 270},
		},
		{
			Name:        "Carcavelos",
			Latitude:    38.676,
			Longitude:   -9.335,
			FacingDeg:   250,
			SwellWindow: &models.DirectionWindow{FromDeg: 220, ToDeg: 280},
		},
		{
			Name:        "Peniche - Supertubos",
			Latitude:    39.343,
			Longitude:   -9.361,
			FacingDeg:   210,
			SwellWindow: &models.DirectionWindow{FromDeg: 180, ToDeg: 240},
		},
	}
}

// SeedDefaults inserts the default spots when the table is empty, so a
// fresh install has something to forecast. Existing data is left alone.
func (r *Repository) SeedDefaults() error {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM spots").Scan(&count); err != nil {
		return fmt.Errorf("counting spots: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, spot := range DefaultSpots() {
		s := spot
		if err := r.Save(&s); err != nil {
			return fmt.Errorf("seeding %q: %w", spot.Name, err)
		}
	}

	return nil
}
