package models

import "time"

// ForecastSample is one hourly slot of merged marine and wind data for a
// location. Fields are pointers because the upstream APIs return null for
// hours a model does not cover; nil means missing, not zero. Samples are
// treated as immutable once built.
type ForecastSample struct {
	Time              time.Time `json:"time"`
	SwellHeightM      *float64  `json:"swell_height_m"`
	SwellPeriodS      *float64  `json:"swell_period_s"`
	SwellDirectionDeg *float64  `json:"swell_direction_deg"`
	WindSpeedMS       *float64  `json:"wind_speed_ms"`
	WindDirectionDeg  *float64  `json:"wind_direction_deg"`

	// Extras carried for display and history, never required for scoring.
	WaveHeightM *float64 `json:"wave_height_m,omitempty"`
	WindGustsMS *float64 `json:"wind_gusts_ms,omitempty"`
	AirTempC    *float64 `json:"air_temp_c,omitempty"`
	SeaTempC    *float64 `json:"sea_temp_c,omitempty"`
}

// Complete reports whether every field the scoring engine needs is present.
func (s *ForecastSample) Complete() bool {
	return s.SwellHeightM != nil &&
		s.SwellPeriodS != nil &&
		s.SwellDirectionDeg != nil &&
		s.WindSpeedMS != nil &&
		s.WindDirectionDeg != nil
}

// ScoreBreakdown exposes the factors behind a score, all in [0,1].
// Height, Period, Direction and Wind are the four weighted components;
// Alignment, Offshore and Calm are the raw factors the last two blend.
type ScoreBreakdown struct {
	Height    float64 `json:"height"`
	Period    float64 `json:"period"`
	Direction float64 `json:"direction"`
	Wind      float64 `json:"wind"`
	Alignment float64 `json:"alignment"`
	Offshore  float64 `json:"offshore"`
	Calm      float64 `json:"calm"`
}

// ScoredSample is a forecast sample with its surf score attached.
type ScoredSample struct {
	ForecastSample
	Score     float64        `json:"score"` // 0..10, two decimals
	Breakdown ScoreBreakdown `json:"breakdown"`
}

// GoodWindow is a run of consecutive samples at or above a score threshold.
type GoodWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// SpotForecast is the full scored series for one spot, as served by the
// API and rendered by the dashboard.
type SpotForecast struct {
	Spot           Spot           `json:"spot"`
	Samples        []ScoredSample `json:"samples"`
	SkippedSamples int            `json:"skipped_samples"`
	GoodWindows    []GoodWindow   `json:"good_windows"`
	FetchedAt      time.Time      `json:"fetched_at"`
}

// SpotRanking is one row of the cross-spot comparison: the best upcoming
// window for a spot with its headline conditions.
type SpotRanking struct {
	Spot           Spot      `json:"spot"`
	BestTime       time.Time `json:"best_time"`
	BestScore      float64   `json:"best_score"`
	SwellHeightM   float64   `json:"swell_height_m"`
	SwellPeriodS   float64   `json:"swell_period_s"`
	WindSpeedMS    float64   `json:"wind_speed_ms"`
	SkippedSamples int       `json:"skipped_samples"`
	NoData         bool      `json:"no_data"`
}
