package models

import (
	"testing"
)

func TestDirectionWindow_Contains(t *testing.T) {
	tests := []struct {
		name   string
		window DirectionWindow
		deg    float64
		want   bool
	}{
		{"inside simple arc", DirectionWindow{FromDeg: 260, ToDeg: 280}, 270, true},
		{"edge inclusive low", DirectionWindow{FromDeg: 260, ToDeg: 280}, 260, true},
		{"edge inclusive high", DirectionWindow{FromDeg: 260, ToDeg: 280}, 280, true},
		{"outside simple arc", DirectionWindow{FromDeg: 260, ToDeg: 280}, 250, false},
		{"wrapping arc contains north", DirectionWindow{FromDeg: 350, ToDeg: 10}, 0, true},
		{"wrapping arc low side", DirectionWindow{FromDeg: 350, ToDeg: 10}, 355, true},
		{"wrapping arc high side", DirectionWindow{FromDeg: 350, ToDeg: 10}, 5, true},
		{"wrapping arc outside", DirectionWindow{FromDeg: 350, ToDeg: 10}, 180, false},
		{"normalizes input bearing", DirectionWindow{FromDeg: 260, ToDeg: 280}, 630, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.window.Contains(tt.deg); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.deg, got, tt.want)
			}
		})
	}
}

func TestSpot_Validate(t *testing.T) {
	valid := func() Spot {
		return Spot{
			Name:      "Carcavelos",
			Latitude:  38.676,
			Longitude: -9.335,
			FacingDeg: 250,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Spot)
		wantErr bool
	}{
		{"valid spot", func(s *Spot) {}, false},
		{"empty name", func(s *Spot) { s.Name = "  " }, true},
		{"latitude too high", func(s *Spot) { s.Latitude = 91 }, true},
		{"longitude too low", func(s *Spot) { s.Longitude = -181 }, true},
		{"facing negative", func(s *Spot) { s.FacingDeg = -1 }, true},
		{"facing 360 rejected", func(s *Spot) { s.FacingDeg = 360 }, true},
		{"facing 359.9 accepted", func(s *Spot) { s.FacingDeg = 359.9 }, false},
		{"bad swell window", func(s *Spot) {
			s.SwellWindow = &DirectionWindow{FromDeg: 400, ToDeg: 20}
		}, true},
		{"bad wind window", func(s *Spot) {
			s.WindWindow = &DirectionWindow{FromDeg: 80, ToDeg: 360}
		}, true},
		{"valid windows", func(s *Spot) {
			s.SwellWindow = &DirectionWindow{FromDeg: 260, ToDeg: 280}
			s.WindWindow = &DirectionWindow{FromDeg: 60, ToDeg: 120}
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spot := valid()
			tt.mutate(&spot)
			err := spot.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSpot_OffshoreDeg(t *testing.T) {
	tests := []struct {
		facing float64
		want   float64
	}{
		{240, 60},
		{250, 70},
		{210, 30},
		{0, 180},
		{180, 0},
	}

	for _, tt := range tests {
		spot := Spot{FacingDeg: tt.facing}
		if got := spot.OffshoreDeg(); got != tt.want {
			t.Errorf("OffshoreDeg() with facing %v = %v, want %v", tt.facing, got, tt.want)
		}
	}
}
