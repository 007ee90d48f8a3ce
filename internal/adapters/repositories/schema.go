package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the database schema. Idempotent; runs at startup.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createFixesQuery := `
	CREATE TABLE IF NOT EXISTS location_fixes (
		session_id TEXT NOT NULL,
		lat REAL NOT NULL,
		lon REAL NOT NULL,
		accuracy REAL,
		recorded_at TIMESTAMP NOT NULL
	);
	`

	createFixesIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_location_fixes_session_recorded
	ON location_fixes(session_id, recorded_at);
	`

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
		address TEXT PRIMARY KEY,
		lat REAL NOT NULL,
		lon REAL NOT NULL
	);
	`

	statements := []string{
		createFixesQuery,
		createFixesIndexQuery,
		createGeocodeCacheQuery,
	}

	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit: %w", err)
	}

	return nil
}
