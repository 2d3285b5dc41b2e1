package db

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithinTxCommits(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	uow := NewSQLiteUnitOfWork(database)
	err = uow.WithinTx(context.Background(), func(ctx context.Context, tx DBTX) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO checklist_entries (text, created_at, updated_at)
			VALUES ('passport', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
		return err
	})
	require.NoError(t, err)

	var count int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM checklist_entries`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestWithinTxRollsBackOnError(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	boom := errors.New("boom")
	uow := NewSQLiteUnitOfWork(database)
	err = uow.WithinTx(context.Background(), func(ctx context.Context, tx DBTX) error {
		_, execErr := tx.ExecContext(ctx, `INSERT INTO checklist_entries (text, created_at, updated_at)
			VALUES ('sunscreen', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
		require.NoError(t, execErr)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var count int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM checklist_entries`).Scan(&count))
	assert.Equal(t, 0, count, "failed transaction leaves no partial writes")
}
