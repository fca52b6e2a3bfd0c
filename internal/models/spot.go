package models

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// DirectionWindow is an inclusive arc of compass bearings in degrees.
// Arcs may wrap through north: {From: 350, To: 10} covers 350..360 and 0..10.
type DirectionWindow struct {
	FromDeg float64 `json:"from_deg" yaml:"from_deg"`
	ToDeg   float64 `json:"to_deg" yaml:"to_deg"`
}

// Contains reports whether a bearing falls inside the arc.
func (w DirectionWindow) Contains(deg float64) bool {
	deg = NormalizeDeg(deg)
	from := NormalizeDeg(w.FromDeg)
	to := NormalizeDeg(w.ToDeg)
	if from <= to {
		return deg >= from && deg <= to
	}
	// Wrapping arc, e.g. 350..10.
	return deg >= from || deg <= to
}

// Validate checks that both edges are valid bearings.
func (w DirectionWindow) Validate() error {
	if w.FromDeg < 0 || w.FromDeg >= 360 {
		return fmt.Errorf("from_deg %.1f outside [0,360)", w.FromDeg)
	}
	if w.ToDeg < 0 || w.ToDeg >= 360 {
		return fmt.Errorf("to_deg %.1f outside [0,360)", w.ToDeg)
	}
	return nil
}

// Spot represents a surf break and the geometry used to score it.
// It can be a transient object from config seeding or a saved row.
type Spot struct {
	ID          int64            `json:"id" yaml:"-"`
	Name        string           `json:"name" yaml:"name"`
	Latitude    float64          `json:"latitude" yaml:"latitude"`
	Longitude   float64          `json:"longitude" yaml:"longitude"`
	FacingDeg   float64          `json:"facing_deg" yaml:"facing_deg"`                       // azimuth the beach looks toward, 0 = north
	SwellWindow *DirectionWindow `json:"swell_window,omitempty" yaml:"swell_window,omitempty"` // ideal swell origin arc; FacingDeg when nil
	WindWindow  *DirectionWindow `json:"wind_window,omitempty" yaml:"wind_window,omitempty"`   // ideal wind origin arc; offshore bearing when nil
	CreatedAt   time.Time        `json:"created_at" yaml:"-"`
}

// OffshoreDeg returns the bearing an offshore wind blows from,
// directly opposite the facing azimuth.
func (s *Spot) OffshoreDeg() float64 {
	return math.Mod(s.FacingDeg+180, 360)
}

// Validate rejects malformed spot configuration before it reaches
// storage or the scoring engine.
func (s *Spot) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("spot name is required")
	}
	if s.Latitude < -90 || s.Latitude > 90 {
		return fmt.Errorf("latitude %.4f outside [-90,90]", s.Latitude)
	}
	if s.Longitude < -180 || s.Longitude > 180 {
		return fmt.Errorf("longitude %.4f outside [-180,180]", s.Longitude)
	}
	if s.FacingDeg < 0 || s.FacingDeg >= 360 {
		return fmt.Errorf("facing_deg %.1f outside [0,360)", s.FacingDeg)
	}
	if s.SwellWindow != nil {
		if err := s.SwellWindow.Validate(); err != nil {
			return fmt.Errorf("swell_window: %w", err)
		}
	}
	if s.WindWindow != nil {
		if err := s.WindWindow.Validate(); err != nil {
			return fmt.Errorf("wind_window: %w", err)
		}
	}
	return nil
}
