package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// migrations are run in order on every open. Statements must stay
// idempotent; ALTER TABLE additions rely on the duplicate-column guard
// in Migrate.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		name       TEXT NOT NULL UNIQUE,
		color      TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS time_entries (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		task         TEXT NOT NULL,
		category_id  INTEGER REFERENCES categories(id) ON DELETE SET NULL,
		category     TEXT NOT NULL DEFAULT '',
		start_time   TEXT NOT NULL,
		end_time     TEXT,
		duration_sec INTEGER NOT NULL DEFAULT 0,
		created_at   TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS app_usage (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		app_name     TEXT NOT NULL,
		window_title TEXT NOT NULL DEFAULT '',
		domain       TEXT NOT NULL DEFAULT '',
		url          TEXT NOT NULL DEFAULT '',
		is_browser   INTEGER NOT NULL DEFAULT 0,
		is_idle      INTEGER NOT NULL DEFAULT 0,
		category_id  INTEGER REFERENCES categories(id) ON DELETE SET NULL,
		category     TEXT NOT NULL DEFAULT '',
		start_time   TEXT NOT NULL,
		end_time     TEXT,
		duration_sec INTEGER NOT NULL DEFAULT 0,
		created_at   TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS pomodoro_sessions (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		label        TEXT NOT NULL DEFAULT '',
		session_type TEXT NOT NULL CHECK(session_type IN ('focus','break')),
		completed    INTEGER NOT NULL DEFAULT 0,
		interrupted  INTEGER NOT NULL DEFAULT 0,
		start_time   TEXT NOT NULL,
		end_time     TEXT,
		duration_sec INTEGER NOT NULL DEFAULT 0,
		created_at   TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS tags (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		name       TEXT NOT NULL UNIQUE,
		color      TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS activity_tags (
		tag_id       INTEGER NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
		record_id    INTEGER NOT NULL,
		source_table TEXT NOT NULL,
		PRIMARY KEY (tag_id, record_id, source_table)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_time_entries_start ON time_entries(start_time)`,
	`CREATE INDEX IF NOT EXISTS idx_app_usage_start ON app_usage(start_time)`,
	`CREATE INDEX IF NOT EXISTS idx_pomodoro_start ON pomodoro_sessions(start_time)`,
	`CREATE INDEX IF NOT EXISTS idx_activity_tags_record ON activity_tags(record_id, source_table)`,
}

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
