package db

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"
)

// Migrate runs all schema migrations. The statement list only grows;
// every statement is safe to re-run against an already-migrated database.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE statements re-run on every start; a duplicate
			// column just means the migration already applied.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateCoerceUnknownDays(db); err != nil {
		return fmt.Errorf("coercing unknown day keys: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS variants (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		start_date TEXT,
		end_date   TEXT,
		cities     TEXT NOT NULL DEFAULT '[]',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	// Seed the default variant so a fresh database is usable immediately.
	`INSERT OR IGNORE INTO variants (id, name, cities, created_at, updated_at)
		VALUES ('default', 'Main plan', '[]',
			strftime('%Y-%m-%dT%H:%M:%SZ', 'now'),
			strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))`,

	`CREATE TABLE IF NOT EXISTS items (
		id                INTEGER PRIMARY KEY AUTOINCREMENT,
		title             TEXT NOT NULL,
		notes             TEXT NOT NULL DEFAULT '',
		day               TEXT NOT NULL DEFAULT 'unassigned',
		variant_id        TEXT NOT NULL DEFAULT '',
		global_variant_id TEXT NOT NULL DEFAULT '',
		order_index       INTEGER NOT NULL DEFAULT 0,
		group_id          TEXT NOT NULL DEFAULT '',
		datetime          TEXT,
		pinned_time       INTEGER NOT NULL DEFAULT 0,
		duration_min      INTEGER,
		category          TEXT NOT NULL DEFAULT 'activity'
		                  CHECK(category IN ('activity','transport','accommodation','free')),
		created_at        TEXT NOT NULL,
		updated_at        TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_items_bucket ON items(day, variant_id, global_variant_id)`,
	`CREATE INDEX IF NOT EXISTS idx_items_group ON items(group_id) WHERE group_id != ''`,

	`CREATE TABLE IF NOT EXISTS transport_segments (
		id                    TEXT PRIMARY KEY,
		from_item_id          INTEGER NOT NULL REFERENCES items(id) ON DELETE CASCADE,
		to_item_id            INTEGER NOT NULL REFERENCES items(id) ON DELETE CASCADE,
		mode                  TEXT NOT NULL DEFAULT 'walk'
		                      CHECK(mode IN ('walk','car','transit','flight','bike','manual')),
		duration_calc_min     INTEGER,
		duration_override_min INTEGER,
		created_at            TEXT NOT NULL,
		updated_at            TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_segments_from ON transport_segments(from_item_id)`,
	`CREATE INDEX IF NOT EXISTS idx_segments_to ON transport_segments(to_item_id)`,

	`CREATE TABLE IF NOT EXISTS checklist_entries (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		text        TEXT NOT NULL,
		done        INTEGER NOT NULL DEFAULT 0,
		order_index INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	// Add place column to items
	`ALTER TABLE items ADD COLUMN place TEXT NOT NULL DEFAULT ''`,
}

var dayKeyPattern = regexp.MustCompile(`^day-[0-9]+$`)

// migrateCoerceUnknownDays moves items with a corrupted day key into the
// unassigned bucket. Runs on every start; matching rows are normally zero.
func migrateCoerceUnknownDays(db *sql.DB) error {
	ctx := context.Background()

	rows, err := db.QueryContext(ctx,
		`SELECT DISTINCT day FROM items WHERE day != 'unassigned'`)
	if err != nil {
		return fmt.Errorf("listing day keys: %w", err)
	}
	var bad []string
	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			rows.Close()
			return fmt.Errorf("scanning day key: %w", err)
		}
		if !dayKeyPattern.MatchString(day) {
			bad = append(bad, day)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating day keys: %w", err)
	}

	for _, day := range bad {
		if _, err := db.ExecContext(ctx,
			`UPDATE items SET day = 'unassigned' WHERE day = ?`, day); err != nil {
			return fmt.Errorf("coercing day %q: %w", day, err)
		}
	}
	return nil
}
