// Package database owns the sqlite file shared by the spot store and
// forecast history.
package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DBPath returns the default path to the single shared database
func DBPath() string {
	return filepath.Join("data", "surf-forecast.db")
}

// Open opens the database, creating its directory if needed, with the
// pragmas the app relies on.
func Open(dbPath string) (*sql.DB, error) {
	if dir := filepath.Dir(dbPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	// foreign_keys is a per-connection pragma, so it rides the DSN and
	// reaches every connection the pool opens. History rows cascade on
	// spot deletes.
	db, err := sql.Open("sqlite", "file:"+dbPath+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Set pragmas for performance
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA synchronous=NORMAL")
	db.Exec("PRAGMA cache_size=10000")

	return db, nil
}

// EnsureSchema creates the spots and forecast_history tables. Safe to
// call multiple times.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS spots (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			latitude REAL NOT NULL,
			longitude REAL NOT NULL,
			facing_deg REAL NOT NULL,
			swell_from_deg REAL,
			swell_to_deg REAL,
			wind_from_deg REAL,
			wind_to_deg REAL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_spots_name ON spots(name);

		CREATE TABLE IF NOT EXISTS forecast_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			spot_id INTEGER NOT NULL REFERENCES spots(id) ON DELETE CASCADE,
			sample_time DATETIME NOT NULL,
			swell_height_m REAL,
			swell_period_s REAL,
			swell_direction_deg REAL,
			wind_speed_ms REAL,
			wind_direction_deg REAL,
			wind_gusts_ms REAL,
			air_temp_c REAL,
			sea_temp_c REAL,
			score REAL NOT NULL,
			fetched_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_history_spot_time ON forecast_history(spot_id, sample_time);
	`)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	return nil
}
