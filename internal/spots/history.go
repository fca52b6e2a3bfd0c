package spots

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lucasinocencio1/surf-forecast/internal/models"
)

// HistoryRepository persists scored forecast samples so past fetches can
// be compared against what the day actually delivered.
type HistoryRepository struct {
	db *sql.DB
}

// NewHistoryRepository creates a history repository on an open database
// handle
func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Record stores one scored series for a spot under a single fetch time.
func (r *HistoryRepository) Record(spotID int64, scored []models.ScoredSample, fetchedAt time.Time) error {
	if len(scored) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning history transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO forecast_history (
			spot_id, sample_time,
			swell_height_m, swell_period_s, swell_direction_deg,
			wind_speed_ms, wind_direction_deg, wind_gusts_ms,
			air_temp_c, sea_temp_c, score, fetched_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing history insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range scored {
		_, err := stmt.Exec(
			spotID, s.Time,
			nullable(s.SwellHeightM), nullable(s.SwellPeriodS), nullable(s.SwellDirectionDeg),
			nullable(s.WindSpeedMS), nullable(s.WindDirectionDeg), nullable(s.WindGustsMS),
			nullable(s.AirTempC), nullable(s.SeaTempC), s.Score, fetchedAt,
		)
		if err != nil {
			return fmt.Errorf("inserting history row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing history: %w", err)
	}

	return nil
}

// HistoryEntry is one stored scored sample.
type HistoryEntry struct {
	SampleTime time.Time             `json:"sample_time"`
	Score      float64               `json:"score"`
	Sample     models.ForecastSample `json:"sample"`
	FetchedAt  time.Time             `json:"fetched_at"`
}

// ForSpot returns stored samples for a spot since a cutoff, newest fetch
// first, sample times ascending within a fetch.
func (r *HistoryRepository) ForSpot(spotID int64, since time.Time, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = 500
	}

	rows, err := r.db.Query(`
		SELECT sample_time,
			swell_height_m, swell_period_s, swell_direction_deg,
			wind_speed_ms, wind_direction_deg, wind_gusts_ms,
			air_temp_c, sea_temp_c, score, fetched_at
		FROM forecast_history
		WHERE spot_id = ? AND sample_time >= ?
		ORDER BY fetched_at DESC, sample_time ASC
		LIMIT ?`,
		spotID, since, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		var height, period, swellDir, windSpeed, windDir, gusts, airTemp, seaTemp sql.NullFloat64

		err := rows.Scan(
			&e.SampleTime,
			&height, &period, &swellDir,
			&windSpeed, &windDir, &gusts,
			&airTemp, &seaTemp, &e.Score, &e.FetchedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}

		e.Sample = models.ForecastSample{
			Time:              e.SampleTime,
			SwellHeightM:      fromNull(height),
			SwellPeriodS:      fromNull(period),
			SwellDirectionDeg: fromNull(swellDir),
			WindSpeedMS:       fromNull(windSpeed),
			WindDirectionDeg:  fromNull(windDir),
			WindGustsMS:       fromNull(gusts),
			AirTempC:          fromNull(airTemp),
			SeaTempC:          fromNull(seaTemp),
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Prune deletes history rows fetched before the cutoff and reports how
// many were removed.
func (r *HistoryRepository) Prune(before time.Time) (int64, error) {
	res, err := r.db.Exec("DELETE FROM forecast_history WHERE fetched_at < ?", before)
	if err != nil {
		return 0, fmt.Errorf("pruning history: %w", err)
	}
	return res.RowsAffected()
}

func nullable(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func fromNull(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
