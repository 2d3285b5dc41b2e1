package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wayplan/internal/db"
	"wayplan/internal/domain"
	"wayplan/internal/repository"
	"wayplan/internal/testutil"
)

func TestItemCreateAppliesDefaults(t *testing.T) {
	uow := testutil.NewTestUoW(testutil.NewTestDB(t))
	svc := NewItemService(uow, nil)

	item := &domain.Item{Title: "louvre", Day: "not-a-day"}
	require.NoError(t, svc.Create(context.Background(), item))

	stored, err := svc.GetByID(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DayUnassigned, stored.Day, "unknown day key coerced")
	assert.Equal(t, domain.CategoryActivity, stored.Category)
	assert.Positive(t, stored.Order, "creation-time order places new items last")
}

func TestItemDeleteRenumbersAndCascadesSegments(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	seedItems(t, uow,
		testutil.NewTestItem("A", testutil.WithOrder(0)),
		testutil.NewTestItem("B", testutil.WithOrder(1)),
		testutil.NewTestItem("C", testutil.WithOrder(2)),
	)
	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteSegmentRepo(tx).Upsert(ctx,
			testutil.NewTestSegment(1, 2, domain.TransportModeWalk, 15))
	})
	require.NoError(t, err)

	svc := NewItemService(uow, nil)
	require.NoError(t, svc.Delete(context.Background(), 2))

	items := loadItems(t, uow)
	assert.Len(t, items, 2)
	assert.Equal(t, int64(0), items[1].Order)
	assert.Equal(t, int64(1), items[3].Order, "gap closed after delete")

	err = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		segments, err := repository.NewSQLiteSegmentRepo(tx).List(ctx)
		if err != nil {
			return err
		}
		assert.Empty(t, segments, "segments touching the item are gone")
		return nil
	})
	require.NoError(t, err)
}

func TestItemDeleteMissingIsNoOp(t *testing.T) {
	uow := testutil.NewTestUoW(testutil.NewTestDB(t))
	svc := NewItemService(uow, nil)

	assert.NoError(t, svc.Delete(context.Background(), 42))
}

func TestItemUpdatePublishesBothBuckets(t *testing.T) {
	uow := testutil.NewTestUoW(testutil.NewTestDB(t))
	seedItems(t, uow, testutil.NewTestItem("A", testutil.WithOrder(0)))

	notifier := NewBucketNotifier()
	var got []domain.BucketKey
	notifier.Subscribe(func(changed []domain.BucketKey) {
		got = append(got, changed...)
	})
	svc := NewItemService(uow, notifier)

	item, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	item.Day = "day-2"
	require.NoError(t, svc.Update(context.Background(), item))

	assert.Len(t, got, 2, "old and new bucket both invalidated")
}
