package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wayplan/internal/testutil"
)

func TestChecklistCreateListToggle(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteChecklistRepo(database)
	ctx := context.Background()

	passport := testutil.NewTestChecklistEntry("passport", 0)
	adapter := testutil.NewTestChecklistEntry("power adapter", 1)
	require.NoError(t, repo.Create(ctx, passport))
	require.NoError(t, repo.Create(ctx, adapter))
	require.NotZero(t, passport.ID)

	entries, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "passport", entries[0].Text)

	passport.Done = true
	passport.UpdatedAt = time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.Update(ctx, passport))

	got, err := repo.GetByID(ctx, passport.ID)
	require.NoError(t, err)
	assert.True(t, got.Done)
}

func TestChecklistDelete(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteChecklistRepo(database)
	ctx := context.Background()

	e := testutil.NewTestChecklistEntry("sunscreen", 0)
	require.NoError(t, repo.Create(ctx, e))
	require.NoError(t, repo.Delete(ctx, e.ID))

	_, err := repo.GetByID(ctx, e.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
