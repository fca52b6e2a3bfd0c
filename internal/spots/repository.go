// Package spots stores surf spot configurations and the scored forecast
// history recorded for them.
package spots

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/lucasinocencio1/surf-forecast/internal/models"
)

// ErrNotFound is returned when a spot does not exist.
var ErrNotFound = errors.New("spot not found")

// Repository handles persistence for configured surf spots
type Repository struct {
	db *sql.DB
}

// NewRepository creates a spot repository on an open database handle
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Save inserts a spot, or updates the existing row with the same name.
// The spot's ID and CreatedAt are filled in on return.
func (r *Repository) Save(spot *models.Spot) error {
	if err := spot.Validate(); err != nil {
		return fmt.Errorf("invalid spot: %w", err)
	}

	query := `
		INSERT INTO spots (name, latitude, longitude, facing_deg, swell_from_deg, swell_to_deg, wind_from_deg, wind_to_deg, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			latitude = excluded.latitude,
			longitude = excluded.longitude,
			facing_deg = excluded.facing_deg,
			swell_from_deg = excluded.swell_from_deg,
			swell_to_deg = excluded.swell_to_deg,
			wind_from_deg = excluded.wind_from_deg,
			wind_to_deg = excluded.wind_to_deg
	`

	if spot.CreatedAt.IsZero() {
		spot.CreatedAt = time.Now()
	}

	var swellFrom, swellTo, windFrom, windTo any
	if spot.SwellWindow != nil {
		swellFrom, swellTo = spot.SwellWindow.FromDeg, spot.SwellWindow.ToDeg
	}
	if spot.WindWindow != nil {
		windFrom, windTo = spot.WindWindow.FromDeg, spot.WindWindow.ToDeg
	}

	_, err := r.db.Exec(query,
		spot.Name,
		spot.Latitude,
		spot.Longitude,
		spot.FacingDeg,
		swellFrom,
		swellTo,
		windFrom,
		windTo,
		spot.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving spot: %w", err)
	}

	// The upsert keeps the original row id, so read it back by name.
	saved, err := r.GetByName(spot.Name)
	if err != nil {
		return fmt.Errorf("reading back saved spot: %w", err)
	}
	spot.ID = saved.ID

	return nil
}

// List retrieves all spots ordered by name
func (r *Repository) List() ([]models.Spot, error) {
	rows, err := r.db.Query(selectColumns + " FROM spots ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("querying spots: %w", err)
	}
	defer rows.Close()

	var spots []models.Spot
	for rows.Next() {
		spot, err := scanSpot(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning spot: %w", err)
		}
		spots = append(spots, spot)
	}

	return spots, rows.Err()
}

// Get retrieves a spot by id, returning ErrNotFound when absent.
func (r *Repository) Get(id int64) (*models.Spot, error) {
	row := r.db.QueryRow(selectColumns+" FROM spots WHERE id = ?", id)
	spot, err := scanSpot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying spot %d: %w", id, err)
	}
	return &spot, nil
}

// GetByName retrieves a spot by its unique name, returning ErrNotFound
// when absent.
func (r *Repository) GetByName(name string) (*models.Spot, error) {
	row := r.db.QueryRow(selectColumns+" FROM spots WHERE name = ?", name)
	spot, err := scanSpot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying spot %q: %w", name, err)
	}
	return &spot, nil
}

// Update rewrites an existing spot in place.
func (r *Repository) Update(spot *models.Spot) error {
	if err := spot.Validate(); err != nil {
		return fmt.Errorf("invalid spot: %w", err)
	}

	var swellFrom, swellTo, windFrom, windTo any
	if spot.SwellWindow != nil {
		swellFrom, swellTo = spot.SwellWindow.FromDeg, spot.SwellWindow.ToDeg
	}
	if spot.WindWindow != nil {
		windFrom, windTo = spot.WindWindow.FromDeg, spot.WindWindow.ToDeg
	}

	res, err := r.db.Exec(`
		UPDATE spots
		SET name = ?, latitude = ?, longitude = ?, facing_deg = ?,
			swell_from_deg = ?, swell_to_deg = ?, wind_from_deg = ?, wind_to_deg = ?
		WHERE id = ?`,
		spot.Name, spot.Latitude, spot.Longitude, spot.FacingDeg,
		swellFrom, swellTo, windFrom, windTo, spot.ID,
	)
	if err != nil {
		return fmt.Errorf("updating spot: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes a spot by id. History rows cascade with it.
func (r *Repository) Delete(id int64) error {
	res, err := r.db.Exec("DELETE FROM spots WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting spot: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// SpotDistance pairs a spot with its distance from a query point
type SpotDistance struct {
	Spot       models.Spot `json:"spot"`
	DistanceKm float64     `json:"distance_km"`
}

// Nearest returns the stored spots within maxDistanceKm of a point,
// closest first.
func (r *Repository) Nearest(lat, lon, maxDistanceKm float64) ([]SpotDistance, error) {
	all, err := r.List()
	if err != nil {
		return nil, err
	}

	var nearby []SpotDistance
	for _, spot := range all {
		d := HaversineKm(lat, lon, spot.Latitude, spot.Longitude)
		if d <= maxDistanceKm {
			nearby = append(nearby, SpotDistance{Spot: spot, DistanceKm: d})
		}
	}

	sort.Slice(nearby, func(i, j int) bool {
		return nearby[i].DistanceKm < nearby[j].DistanceKm
	})

	return nearby, nil
}

// HaversineKm calculates the great-circle distance in kilometres between
// two lat/lon points.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusKm = 6371.0

	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

const selectColumns = "SELECT id, name, latitude, longitude, facing_deg, swell_from_deg, swell_to_deg, wind_from_deg, wind_to_deg, created_at"

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func scanSpot(row scanner) (models.Spot, error) {
	var spot models.Spot
	var swellFrom, swellTo, windFrom, windTo sql.NullFloat64

	err := row.Scan(
		&spot.ID,
		&spot.Name,
		&spot.Latitude,
		&spot.Longitude,
		&spot.FacingDeg,
		&swellFrom,
		&swellTo,
		&windFrom,
		&windTo,
		&spot.CreatedAt,
	)
	if err != nil {
		return models.Spot{}, err
	}

	if swellFrom.Valid && swellTo.Valid {
		spot.SwellWindow = &models.DirectionWindow{FromDeg: swellFrom.Float64, ToDeg: swellTo.Float64}
	}
	if windFrom.Valid && windTo.Valid {
		spot.WindWindow = &models.DirectionWindow{FromDeg: windFrom.Float64, ToDeg: windTo.Float64}
	}

	return spot, nil
}
