package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Statements are idempotent; the
// migration system re-runs all of them on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	// The single active plan. Plans are small; the 7-day schedule and the
	// forecast it assumed are stored as JSON documents.
	`CREATE TABLE IF NOT EXISTS plans (
		id                    INTEGER PRIMARY KEY CHECK (id = 1),
		reasoning             TEXT NOT NULL,
		schedule_json         TEXT NOT NULL,
		assumed_forecast_json TEXT NOT NULL DEFAULT '[]',
		updated_at            TEXT NOT NULL
	)`,

	// Candidate plans offered but not yet chosen: the minimal direct change
	// and, optionally, the compensated alternative.
	`CREATE TABLE IF NOT EXISTS plan_candidates (
		kind       TEXT PRIMARY KEY CHECK (kind IN ('direct','compensated')),
		plan_json  TEXT NOT NULL,
		follow_up  TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,

	// Append-only log of every actuation result with its source tag.
	`CREATE TABLE IF NOT EXISTS action_log (
		id         TEXT PRIMARY KEY,
		action     TEXT NOT NULL,
		source     TEXT NOT NULL,
		ok         INTEGER NOT NULL,
		message    TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_action_log_created_at ON action_log(created_at)`,
}
