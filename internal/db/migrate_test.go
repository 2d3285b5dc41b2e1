package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateCreatesTables(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	for _, table := range []string{"variants", "items", "transport_segments", "checklist_entries"} {
		var name string
		err := database.QueryRow(
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		assert.NoError(t, err, "table %s should exist", table)
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, Migrate(database))
	require.NoError(t, Migrate(database))
}

func TestMigrateSeedsDefaultVariant(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	var name string
	require.NoError(t, database.QueryRow(
		`SELECT name FROM variants WHERE id = 'default'`).Scan(&name))
	assert.Equal(t, "Main plan", name)
}

func TestMigrateCoercesUnknownDayKeys(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	_, err = database.Exec(`INSERT INTO items (title, day, created_at, updated_at)
		VALUES ('corrupted', 'day-x', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z'),
		       ('fine', 'day-2', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)

	require.NoError(t, Migrate(database))

	var day string
	require.NoError(t, database.QueryRow(
		`SELECT day FROM items WHERE title = 'corrupted'`).Scan(&day))
	assert.Equal(t, "unassigned", day)

	require.NoError(t, database.QueryRow(
		`SELECT day FROM items WHERE title = 'fine'`).Scan(&day))
	assert.Equal(t, "day-2", day, "well-formed day keys are untouched")
}
