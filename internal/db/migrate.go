package db

import (
	"database/sql"
	"fmt"
)

// migrations are applied in order. PRAGMA user_version records how many have
// run, so each step executes exactly once per database.
var migrations = [][]string{
	{
		`CREATE TABLE IF NOT EXISTS itineraries (
			id             TEXT PRIMARY KEY,
			destination    TEXT NOT NULL DEFAULT '',
			start_date     TEXT NOT NULL,
			end_date       TEXT NOT NULL,
			budget         TEXT NOT NULL,
			total_cost     TEXT NOT NULL,
			activity_count INTEGER NOT NULL DEFAULT 0,
			warning_count  INTEGER NOT NULL DEFAULT 0,
			total_score    REAL NOT NULL DEFAULT 0,
			payload        TEXT NOT NULL,
			created_at     TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS itinerary_days (
			itinerary_id   TEXT NOT NULL REFERENCES itineraries(id) ON DELETE CASCADE,
			date           TEXT NOT NULL,
			activity_count INTEGER NOT NULL DEFAULT 0,
			total_cost     TEXT NOT NULL,
			outdoor_suitability REAL NOT NULL,
			PRIMARY KEY (itinerary_id, date)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_itineraries_created ON itineraries(created_at)`,
	},
	{
		`CREATE TABLE IF NOT EXISTS planner_profile (
			id               INTEGER PRIMARY KEY CHECK (id = 1),
			weight_preference REAL NOT NULL,
			weight_weather    REAL NOT NULL,
			weight_budget     REAL NOT NULL,
			weight_popularity REAL NOT NULL,
			soft_cap          REAL NOT NULL,
			buffer_min        INTEGER NOT NULL,
			day_start         TEXT NOT NULL,
			day_end           TEXT NOT NULL,
			max_per_day       INTEGER NOT NULL,
			max_daily_spend   TEXT NOT NULL DEFAULT '0',
			interests         TEXT NOT NULL DEFAULT '[]',
			updated_at        TEXT NOT NULL
		)`,
	},
}

// Migrate brings the schema up to date. Running it again is a no-op.
func Migrate(db *sql.DB) error {
	var version int
	if err := db.QueryRow(`PRAGMA user_version`).Scan(&version); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}
	for i := version; i < len(migrations); i++ {
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
		for _, stmt := range migrations[i] {
			if _, err := tx.Exec(stmt); err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("migration %d: %w", i+1, err)
			}
		}
		// PRAGMA does not accept bound parameters.
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d: recording version: %w", i+1, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("migration %d: commit: %w", i+1, err)
		}
	}
	return nil
}

// SchemaVersion reports how many migrations have been applied.
func SchemaVersion(db *sql.DB) (int, error) {
	var v int
	err := db.QueryRow(`PRAGMA user_version`).Scan(&v)
	return v, err
}
