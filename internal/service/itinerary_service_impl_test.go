package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wayplan/internal/contract"
	"wayplan/internal/db"
	"wayplan/internal/domain"
	"wayplan/internal/repository"
	"wayplan/internal/schedule"
	"wayplan/internal/testutil"
)

func seedItems(t *testing.T, uow db.UnitOfWork, items ...*domain.Item) {
	t.Helper()
	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteItemRepo(tx)
		for _, i := range items {
			if err := repo.Create(ctx, i); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)
}

func loadItems(t *testing.T, uow db.UnitOfWork) map[int64]*domain.Item {
	t.Helper()
	byID := make(map[int64]*domain.Item)
	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		all, err := repository.NewSQLiteItemRepo(tx).List(ctx)
		if err != nil {
			return err
		}
		for _, i := range all {
			byID[i.ID] = i
		}
		return nil
	})
	require.NoError(t, err)
	return byID
}

func setVariantStartDate(t *testing.T, uow db.UnitOfWork, id string, start time.Time) {
	t.Helper()
	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		variants := repository.NewSQLiteVariantRepo(tx)
		v, err := variants.GetByID(ctx, id)
		if err != nil {
			return err
		}
		v.StartDate = &start
		return variants.Update(ctx, v)
	})
	require.NoError(t, err)
}

func TestMoveToBucketAppendsAndRenumbersBoth(t *testing.T) {
	uow := testutil.NewTestUoW(testutil.NewTestDB(t))
	seedItems(t, uow,
		testutil.NewTestItem("A", testutil.WithOrder(0)),
		testutil.NewTestItem("B", testutil.WithOrder(1), testutil.WithGroup("g1")),
		testutil.NewTestItem("C", testutil.WithOrder(2)),
		testutil.NewTestItem("P", testutil.WithDay("day-2"), testutil.WithOrder(0)),
		testutil.NewTestItem("Q", testutil.WithDay("day-2"), testutil.WithOrder(1)),
	)
	svc := NewItineraryService(uow, nil)

	result, err := svc.MoveToBucket(context.Background(), 2, "day-2", "", "")
	require.NoError(t, err)
	assert.False(t, result.NoOp)
	assert.Len(t, result.Before, 2)
	assert.Len(t, result.After, 2)
	assert.Len(t, result.Changed, 2)

	items := loadItems(t, uow)
	assert.Equal(t, "day-2", items[2].Day)
	assert.Equal(t, int64(2), items[2].Order, "moved item lands at the end")
	assert.Empty(t, items[2].GroupID, "cross-bucket move leaves the group")

	assert.Equal(t, int64(0), items[1].Order)
	assert.Equal(t, int64(1), items[3].Order, "source bucket closes the gap")
	assert.Equal(t, int64(0), items[4].Order)
	assert.Equal(t, int64(1), items[5].Order)
}

func TestMoveToBucketMissingItemIsNoOp(t *testing.T) {
	uow := testutil.NewTestUoW(testutil.NewTestDB(t))
	svc := NewItineraryService(uow, nil)

	result, err := svc.MoveToBucket(context.Background(), 999, "day-1", "", "")
	require.NoError(t, err)
	assert.True(t, result.NoOp)
	assert.Empty(t, result.Changed)
}

func TestMoveToBucketRedatesPreservingWallClock(t *testing.T) {
	uow := testutil.NewTestUoW(testutil.NewTestDB(t))
	setVariantStartDate(t, uow, "default", time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))
	seedItems(t, uow, testutil.NewTestItem("dinner",
		testutil.WithOrder(0),
		testutil.WithDatetime(time.Date(2026, 3, 10, 19, 30, 0, 0, time.UTC), true),
	))
	svc := NewItineraryService(uow, nil)

	_, err := svc.MoveToBucket(context.Background(), 1, "day-3", "", "")
	require.NoError(t, err)

	items := loadItems(t, uow)
	require.NotNil(t, items[1].Datetime)
	assert.Equal(t, time.Date(2026, 3, 12, 19, 30, 0, 0, time.UTC), items[1].Datetime.UTC())
}

func TestMoveToBucketCoercesUnknownDay(t *testing.T) {
	uow := testutil.NewTestUoW(testutil.NewTestDB(t))
	seedItems(t, uow, testutil.NewTestItem("A", testutil.WithOrder(0)))
	svc := NewItineraryService(uow, nil)

	_, err := svc.MoveToBucket(context.Background(), 1, "banana", "", "")
	require.NoError(t, err)

	items := loadItems(t, uow)
	assert.Equal(t, domain.DayUnassigned, items[1].Day)
}

func TestMoveHereSplicesBeforeAnchorIdempotently(t *testing.T) {
	uow := testutil.NewTestUoW(testutil.NewTestDB(t))
	seedItems(t, uow,
		testutil.NewTestItem("A", testutil.WithOrder(0)),
		testutil.NewTestItem("B", testutil.WithOrder(1)),
		testutil.NewTestItem("X", testutil.WithDay("day-2"), testutil.WithOrder(0)),
	)
	svc := NewItineraryService(uow, nil)

	for range 2 {
		_, err := svc.MoveHere(context.Background(), 3, "day-1", "", "", "", 2)
		require.NoError(t, err)
	}

	items := loadItems(t, uow)
	assert.Equal(t, "day-1", items[3].Day)
	assert.Equal(t, int64(0), items[1].Order)
	assert.Equal(t, int64(1), items[3].Order, "spliced before B")
	assert.Equal(t, int64(2), items[2].Order)
}

func TestMoveHereMissingAnchorAppends(t *testing.T) {
	uow := testutil.NewTestUoW(testutil.NewTestDB(t))
	seedItems(t, uow,
		testutil.NewTestItem("A", testutil.WithOrder(0)),
		testutil.NewTestItem("X", testutil.WithDay("day-2"), testutil.WithOrder(0)),
	)
	svc := NewItineraryService(uow, nil)

	_, err := svc.MoveHere(context.Background(), 2, "day-1", "", "", "g7", 555)
	require.NoError(t, err)

	items := loadItems(t, uow)
	assert.Equal(t, int64(1), items[2].Order)
	assert.Equal(t, "g7", items[2].GroupID, "adopts the requested group")
}

func TestReorderItemOverItemInheritsGroup(t *testing.T) {
	uow := testutil.NewTestUoW(testutil.NewTestDB(t))
	seedItems(t, uow,
		testutil.NewTestItem("A", testutil.WithOrder(0), testutil.WithGroup("g1")),
		testutil.NewTestItem("B", testutil.WithOrder(1), testutil.WithGroup("g1")),
		testutil.NewTestItem("C", testutil.WithOrder(2)),
	)
	svc := NewItineraryService(uow, nil)

	_, err := svc.Reorder(context.Background(),
		contract.ItemDrag(3), contract.ItemDrop(2), "day-1", "", "")
	require.NoError(t, err)

	items := loadItems(t, uow)
	assert.Equal(t, int64(0), items[1].Order)
	assert.Equal(t, int64(1), items[3].Order, "C sits before B")
	assert.Equal(t, int64(2), items[2].Order)
	assert.Equal(t, "g1", items[3].GroupID, "single mover joins the anchor's group")
}

func TestReorderGroupBlockKeepsOwnGroupAndOrder(t *testing.T) {
	uow := testutil.NewTestUoW(testutil.NewTestDB(t))
	seedItems(t, uow,
		testutil.NewTestItem("A", testutil.WithOrder(0), testutil.WithGroup("mv")),
		testutil.NewTestItem("B", testutil.WithOrder(1), testutil.WithGroup("mv")),
		testutil.NewTestItem("X", testutil.WithDay("day-2"), testutil.WithOrder(0), testutil.WithGroup("other")),
		testutil.NewTestItem("Y", testutil.WithDay("day-2"), testutil.WithOrder(1)),
	)
	svc := NewItineraryService(uow, nil)

	_, err := svc.Reorder(context.Background(),
		contract.GroupDrag("mv"), contract.ItemDrop(4), "day-2", "", "")
	require.NoError(t, err)

	items := loadItems(t, uow)
	assert.Equal(t, "day-2", items[1].Day)
	assert.Equal(t, "day-2", items[2].Day)
	assert.Equal(t, int64(0), items[3].Order)
	assert.Equal(t, int64(1), items[1].Order, "block preserves relative order")
	assert.Equal(t, int64(2), items[2].Order)
	assert.Equal(t, int64(3), items[4].Order)
	assert.Equal(t, "mv", items[1].GroupID, "group move never absorbs the target's group")
	assert.Equal(t, "mv", items[2].GroupID)
}

func TestReorderDropOnBucketClearsGroup(t *testing.T) {
	uow := testutil.NewTestUoW(testutil.NewTestDB(t))
	seedItems(t, uow,
		testutil.NewTestItem("A", testutil.WithOrder(0), testutil.WithGroup("g1")),
		testutil.NewTestItem("X", testutil.WithDay("day-2"), testutil.WithOrder(0)),
	)
	svc := NewItineraryService(uow, nil)

	_, err := svc.Reorder(context.Background(),
		contract.ItemDrag(1), contract.BucketDrop(), "day-2", "", "")
	require.NoError(t, err)

	items := loadItems(t, uow)
	assert.Equal(t, "day-2", items[1].Day)
	assert.Equal(t, int64(1), items[1].Order, "appended after X")
	assert.Empty(t, items[1].GroupID)
}

func TestGroupTogglesMintsAndClears(t *testing.T) {
	uow := testutil.NewTestUoW(testutil.NewTestDB(t))
	seedItems(t, uow,
		testutil.NewTestItem("A", testutil.WithOrder(0)),
		testutil.NewTestItem("B", testutil.WithOrder(1)),
	)
	svc := NewItineraryService(uow, nil)

	_, err := svc.Group(context.Background(), 1)
	require.NoError(t, err)
	items := loadItems(t, uow)
	require.NotEmpty(t, items[1].GroupID)
	assert.Equal(t, items[1].GroupID, items[2].GroupID, "fresh group spans both")

	// Second invocation toggles the successor back out.
	_, err = svc.Group(context.Background(), 1)
	require.NoError(t, err)
	items = loadItems(t, uow)
	assert.NotEmpty(t, items[1].GroupID)
	assert.Empty(t, items[2].GroupID)
}

func TestGroupJoinsSuccessorsExistingGroup(t *testing.T) {
	uow := testutil.NewTestUoW(testutil.NewTestDB(t))
	seedItems(t, uow,
		testutil.NewTestItem("A", testutil.WithOrder(0)),
		testutil.NewTestItem("B", testutil.WithOrder(1), testutil.WithGroup("g2")),
	)
	svc := NewItineraryService(uow, nil)

	_, err := svc.Group(context.Background(), 1)
	require.NoError(t, err)

	items := loadItems(t, uow)
	assert.Equal(t, "g2", items[1].GroupID)
}

func TestGroupWithoutSuccessorIsNoOp(t *testing.T) {
	uow := testutil.NewTestUoW(testutil.NewTestDB(t))
	seedItems(t, uow, testutil.NewTestItem("last", testutil.WithOrder(0)))
	svc := NewItineraryService(uow, nil)

	result, err := svc.Group(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, result.NoOp)
}

func TestExtractFromGroupLeavesRestIntact(t *testing.T) {
	uow := testutil.NewTestUoW(testutil.NewTestDB(t))
	seedItems(t, uow,
		testutil.NewTestItem("A", testutil.WithOrder(0), testutil.WithGroup("g1")),
		testutil.NewTestItem("B", testutil.WithOrder(1), testutil.WithGroup("g1")),
		testutil.NewTestItem("C", testutil.WithOrder(2), testutil.WithGroup("g1")),
	)
	svc := NewItineraryService(uow, nil)

	_, err := svc.ExtractFromGroup(context.Background(), 2)
	require.NoError(t, err)

	items := loadItems(t, uow)
	assert.Empty(t, items[2].GroupID)
	assert.Equal(t, "g1", items[1].GroupID)
	assert.Equal(t, "g1", items[3].GroupID)
}

func TestUngroupAllClearsEveryMember(t *testing.T) {
	uow := testutil.NewTestUoW(testutil.NewTestDB(t))
	seedItems(t, uow,
		testutil.NewTestItem("A", testutil.WithOrder(0), testutil.WithGroup("g1")),
		testutil.NewTestItem("B", testutil.WithDay("day-2"), testutil.WithOrder(0), testutil.WithGroup("g1")),
		testutil.NewTestItem("C", testutil.WithOrder(1)),
	)
	svc := NewItineraryService(uow, nil)

	result, err := svc.UngroupAll(context.Background(), "g1")
	require.NoError(t, err)
	assert.Len(t, result.Changed, 2, "members spanned two buckets")

	items := loadItems(t, uow)
	assert.Empty(t, items[1].GroupID)
	assert.Empty(t, items[2].GroupID)
}

func TestMutationRollsBackOnPersistFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	seedItems(t, uow,
		testutil.NewTestItem("A", testutil.WithOrder(0)),
		testutil.NewTestItem("B", testutil.WithOrder(1)),
	)

	boom := errors.New("disk full")
	failing := &testutil.FailOnNthExecUoW{DB: database, FailOn: 1, Err: boom}
	svc := NewItineraryService(failing, nil)

	_, err := svc.MoveToBucket(context.Background(), 1, "day-2", "", "")
	require.ErrorIs(t, err, boom)

	items := loadItems(t, uow)
	assert.Equal(t, "day-1", items[1].Day, "failed mutation leaves no trace")
	assert.Equal(t, int64(0), items[1].Order)
}

func TestMutationPublishesChangedBuckets(t *testing.T) {
	uow := testutil.NewTestUoW(testutil.NewTestDB(t))
	seedItems(t, uow, testutil.NewTestItem("A", testutil.WithOrder(0)))

	notifier := NewBucketNotifier()
	var got []domain.BucketKey
	notifier.Subscribe(func(changed []domain.BucketKey) {
		got = append(got, changed...)
	})
	svc := NewItineraryService(uow, notifier)

	_, err := svc.MoveToBucket(context.Background(), 1, "day-2", "", "")
	require.NoError(t, err)
	assert.ElementsMatch(t, []domain.BucketKey{
		schedule.Key("day-1", "", ""),
		schedule.Key("day-2", "", ""),
	}, got)

	// A no-op must not wake subscribers.
	got = nil
	_, err = svc.MoveToBucket(context.Background(), 999, "day-2", "", "")
	require.NoError(t, err)
	assert.Empty(t, got)
}
