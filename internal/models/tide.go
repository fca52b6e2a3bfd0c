package models

import "time"

// TideType represents whether a tide extreme is high or low
type TideType string

const (
	TideHigh TideType = "H"
	TideLow  TideType = "L"
)

// TidePoint is one predicted sea level sample.
type TidePoint struct {
	Time    time.Time `json:"time"`
	HeightM float64   `json:"height_m"` // metres relative to mean sea level
}

// TideEvent represents a single high or low tide occurrence
type TideEvent struct {
	Time    time.Time `json:"time"`
	Type    TideType  `json:"type"`
	HeightM float64   `json:"height_m"`
}

// TideSeries contains predicted sea levels for a location
type TideSeries struct {
	Station   string      `json:"station,omitempty"`
	Points    []TidePoint `json:"points"` // ordered by time
	UpdatedAt time.Time   `json:"updated_at"`
}

// PointsForDay returns the samples falling on a specific date.
func (ts *TideSeries) PointsForDay(date time.Time) []TidePoint {
	var points []TidePoint
	startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)

	for _, p := range ts.Points {
		if !p.Time.Before(startOfDay) && p.Time.Before(endOfDay) {
			points = append(points, p)
		}
	}
	return points
}

// Extremes derives high and low tide events from the sampled curve by
// scanning for local turning points.
func (ts *TideSeries) Extremes() []TideEvent {
	var events []TideEvent
	for i := 1; i < len(ts.Points)-1; i++ {
		prev, cur, next := ts.Points[i-1].HeightM, ts.Points[i].HeightM, ts.Points[i+1].HeightM
		switch {
		case cur >= prev && cur > next:
			events = append(events, TideEvent{Time: ts.Points[i].Time, Type: TideHigh, HeightM: cur})
		case cur <= prev && cur < next:
			events = append(events, TideEvent{Time: ts.Points[i].Time, Type: TideLow, HeightM: cur})
		}
	}
	return events
}
