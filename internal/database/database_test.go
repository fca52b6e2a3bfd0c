package database

import (
	"path/filepath"
	"testing"
)

func TestDBPath(t *testing.T) {
	expected := filepath.Join("data", "surf-forecast.db")
	if got := DBPath(); got != expected {
		t.Errorf("DBPath() = %v, want %v", got, expected)
	}
}

func TestOpenAndEnsureSchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")

	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer db.Close()

	if err := EnsureSchema(db); err != nil {
		t.Fatalf("EnsureSchema() error = %v", err)
	}
	// Idempotent: a second run must not fail.
	if err := EnsureSchema(db); err != nil {
		t.Fatalf("EnsureSchema() second run error = %v", err)
	}

	res, err := db.Exec(
		"INSERT INTO spots (name, latitude, longitude, facing_deg) VALUES (?, ?, ?, ?)",
		"Carcavelos", 38.676, -9.335, 250.0,
	)
	if err != nil {
		t.Fatalf("inserting spot: %v", err)
	}
	id, _ := res.LastInsertId()
	if id == 0 {
		t.Error("expected non-zero spot id")
	}

	_, err = db.Exec(
		"INSERT INTO forecast_history (spot_id, sample_time, score, fetched_at) VALUES (?, datetime('now'), ?, datetime('now'))",
		id, 7.5,
	)
	if err != nil {
		t.Fatalf("inserting history row: %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM forecast_history WHERE spot_id = ?", id).Scan(&count); err != nil {
		t.Fatalf("counting history: %v", err)
	}
	if count != 1 {
		t.Errorf("history count = %d, want 1", count)
	}
}

func TestEnsureSchema_UniqueSpotNames(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer db.Close()

	if err := EnsureSchema(db); err != nil {
		t.Fatalf("EnsureSchema() error = %v", err)
	}

	insert := "INSERT INTO spots (name, latitude, longitude, facing_deg) VALUES (?, ?, ?, ?)"
	if _, err := db.Exec(insert, "Peniche - Supertubos", 39.343, -9.361, 210.0); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if _, err := db.Exec(insert, "Peniche - Supertubos", 39.343, -9.361, 210.0); err == nil {
		t.Error("expected unique constraint violation for duplicate name")
	}
}
