package spots

import (
	"context"
	"fmt"
	"strings"

	"github.com/lucasinocencio1/surf-forecast/internal/geocoding"
	"github.com/lucasinocencio1/surf-forecast/internal/models"
)

// Locator resolves a free-form place query to coordinates. Satisfied by
// geocoding.Geocoder.
type Locator interface {
	Geocode(ctx context.Context, query string) (*geocoding.Location, error)
}

// Service orchestrates spot operations
type Service struct {
	repo    *Repository
	locator Locator
}

// NewService creates a spot service
func NewService(repo *Repository, locator Locator) *Service {
	return &Service{repo: repo, locator: locator}
}

// Create builds and saves a spot from a name, a location query and the
// beach facing azimuth. The location may be a place name ("Ericeira,
// Portugal") or literal "lat,lon" coordinates.
func (s *Service) Create(ctx context.Context, name, location string, facingDeg float64) (*models.Spot, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("spot name is required")
	}

	loc, err := s.locator.Geocode(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("geocoding location: %w", err)
	}

	spot := &models.Spot{
		Name:      name,
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
		FacingDeg: facingDeg,
	}

	if err := s.repo.Save(spot); err != nil {
		return nil, fmt.Errorf("saving spot: %w", err)
	}

	return spot, nil
}

// Save stores a fully specified spot, updating the row with the same
// name if one exists. Used by callers that already hold coordinates.
func (s *Service) Save(spot *models.Spot) error {
	return s.repo.Save(spot)
}

// List returns all stored spots.
func (s *Service) List() ([]models.Spot, error) {
	return s.repo.List()
}

// Get returns one spot by id.
func (s *Service) Get(id int64) (*models.Spot, error) {
	return s.repo.Get(id)
}

// GetByName returns one spot by name.
func (s *Service) GetByName(name string) (*models.Spot, error) {
	return s.repo.GetByName(name)
}

// Update rewrites a stored spot.
func (s *Service) Update(spot *models.Spot) error {
	return s.repo.Update(spot)
}

// Delete removes a spot by id.
func (s *Service) Delete(id int64) error {
	return s.repo.Delete(id)
}

// Nearest returns stored spots within maxDistanceKm of a point,
// closest first.
func (s *Service) Nearest(lat, lon, maxDistanceKm float64) ([]SpotDistance, error) {
	return s.repo.Nearest(lat, lon, maxDistanceKm)
}
