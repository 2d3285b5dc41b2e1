package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wayplan/internal/domain"
	"wayplan/internal/testutil"
)

func seedPair(t *testing.T, items *SQLiteItemRepo) (int64, int64) {
	t.Helper()
	ctx := context.Background()
	a := testutil.NewTestItem("from")
	b := testutil.NewTestItem("to")
	require.NoError(t, items.Create(ctx, a))
	require.NoError(t, items.Create(ctx, b))
	return a.ID, b.ID
}

func TestSegmentUpsertReplacesEstimate(t *testing.T) {
	database := testutil.NewTestDB(t)
	items := NewSQLiteItemRepo(database)
	repo := NewSQLiteSegmentRepo(database)
	ctx := context.Background()

	from, to := seedPair(t, items)
	require.NoError(t, repo.Upsert(ctx, testutil.NewTestSegment(from, to, domain.TransportModeWalk, 15)))

	// Second estimate for the same adjacency replaces the first row.
	seg := testutil.NewTestSegment(from, to, domain.TransportModeTransit, 8)
	seg.UpdatedAt = time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.Upsert(ctx, seg))

	got, err := repo.GetByID(ctx, domain.SegmentID(from, to))
	require.NoError(t, err)
	assert.Equal(t, domain.TransportModeTransit, got.Mode)
	require.NotNil(t, got.DurationCalcMin)
	assert.Equal(t, 8, *got.DurationCalcMin)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSegmentUpsertDerivesID(t *testing.T) {
	database := testutil.NewTestDB(t)
	items := NewSQLiteItemRepo(database)
	repo := NewSQLiteSegmentRepo(database)
	ctx := context.Background()

	from, to := seedPair(t, items)
	seg := testutil.NewTestSegment(from, to, domain.TransportModeCar, 25)
	seg.ID = ""
	require.NoError(t, repo.Upsert(ctx, seg))
	assert.Equal(t, domain.SegmentID(from, to), seg.ID)
}

func TestSegmentDeleteByItem(t *testing.T) {
	database := testutil.NewTestDB(t)
	items := NewSQLiteItemRepo(database)
	repo := NewSQLiteSegmentRepo(database)
	ctx := context.Background()

	a := testutil.NewTestItem("a")
	b := testutil.NewTestItem("b")
	c := testutil.NewTestItem("c")
	for _, it := range []*domain.Item{a, b, c} {
		require.NoError(t, items.Create(ctx, it))
	}
	require.NoError(t, repo.Upsert(ctx, testutil.NewTestSegment(a.ID, b.ID, domain.TransportModeWalk, 5)))
	require.NoError(t, repo.Upsert(ctx, testutil.NewTestSegment(b.ID, c.ID, domain.TransportModeWalk, 5)))
	require.NoError(t, repo.Upsert(ctx, testutil.NewTestSegment(c.ID, a.ID, domain.TransportModeWalk, 5)))

	require.NoError(t, repo.DeleteByItem(ctx, b.ID))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, domain.SegmentID(c.ID, a.ID), all[0].ID)
}
