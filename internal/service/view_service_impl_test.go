package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wayplan/internal/contract"
	"wayplan/internal/db"
	"wayplan/internal/domain"
	"wayplan/internal/repository"
	"wayplan/internal/testutil"
)

func TestDaySchedulesDerivesCascadingTimes(t *testing.T) {
	uow := testutil.NewTestUoW(testutil.NewTestDB(t))
	setVariantStartDate(t, uow, "default", time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC))
	seedItems(t, uow,
		testutil.NewTestItem("breakfast", testutil.WithOrder(0), testutil.WithDuration(45)),
		testutil.NewTestItem("museum", testutil.WithOrder(1)),
		testutil.NewTestItem("parked", testutil.WithDay(domain.DayUnassigned), testutil.WithOrder(0)),
	)
	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteSegmentRepo(tx).Upsert(ctx,
			testutil.NewTestSegment(1, 2, domain.TransportModeTransit, 30))
	})
	require.NoError(t, err)

	svc := NewViewService(uow, nil)
	resp, err := svc.DaySchedules(context.Background(), contract.ViewRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Days, 2)

	day1 := resp.Days[0]
	assert.Equal(t, "day-1", day1.Day)
	assert.Equal(t, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), day1.Date)
	require.Len(t, day1.Items, 2)
	assert.Equal(t, time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC), day1.Items[0].Start)
	// 09:00 + 45m duration + 30m transit = 10:15.
	assert.Equal(t, time.Date(2026, 7, 1, 10, 15, 0, 0, time.UTC), day1.Items[1].Start)

	unassigned := resp.Days[1]
	assert.Equal(t, domain.DayUnassigned, unassigned.Day)
	require.Len(t, unassigned.Items, 1)
	assert.True(t, unassigned.Items[0].Start.IsZero(), "parked items carry no derived time")
}

func TestDaySchedulesRespectsVariantOverrides(t *testing.T) {
	uow := testutil.NewTestUoW(testutil.NewTestDB(t))
	seedItems(t, uow,
		testutil.NewTestItem("base plan", testutil.WithOrder(0)),
		testutil.NewTestItem("rainy plan", testutil.WithOrder(0), testutil.WithVariant("rainy")),
	)

	svc := NewViewService(uow, nil)
	resp, err := svc.DaySchedules(context.Background(), contract.ViewRequest{
		DayVariants: map[string]string{"day-1": "rainy"},
	})
	require.NoError(t, err)
	require.Len(t, resp.Days, 1)
	require.Len(t, resp.Days[0].Items, 1)
	assert.Equal(t, "rainy plan", resp.Days[0].Items[0].Item.Title)
}

func TestDaySchedulesCacheInvalidatedByNotifier(t *testing.T) {
	uow := testutil.NewTestUoW(testutil.NewTestDB(t))
	seedItems(t, uow, testutil.NewTestItem("A", testutil.WithOrder(0)))

	notifier := NewBucketNotifier()
	views := NewViewService(uow, notifier)
	svc := NewItineraryService(uow, notifier)

	req := contract.ViewRequest{}
	resp, err := views.DaySchedules(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, resp.Days, 1)
	assert.Equal(t, "day-1", resp.Days[0].Day)

	// The mutation publishes, the cache drops, the next read sees the move.
	_, err = svc.MoveToBucket(context.Background(), 1, "day-2", "", "")
	require.NoError(t, err)

	resp, err = views.DaySchedules(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, resp.Days, 1)
	assert.Equal(t, "day-2", resp.Days[0].Day)
}

func TestFilteredOrderedFlattensByDayThenOrder(t *testing.T) {
	uow := testutil.NewTestUoW(testutil.NewTestDB(t))
	seedItems(t, uow,
		testutil.NewTestItem("late", testutil.WithDay("day-2"), testutil.WithOrder(0)),
		testutil.NewTestItem("second", testutil.WithOrder(1)),
		testutil.NewTestItem("first", testutil.WithOrder(0)),
		testutil.NewTestItem("other-variant", testutil.WithOrder(0), testutil.WithGlobalVariant("alt")),
	)

	svc := NewViewService(uow, nil)
	items, err := svc.FilteredOrdered(context.Background(), contract.ViewRequest{})
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "first", items[0].Title)
	assert.Equal(t, "second", items[1].Title)
	assert.Equal(t, "late", items[2].Title)
}

func TestFilteredOrderedSelectedDays(t *testing.T) {
	uow := testutil.NewTestUoW(testutil.NewTestDB(t))
	seedItems(t, uow,
		testutil.NewTestItem("keep", testutil.WithDay("day-2"), testutil.WithOrder(0)),
		testutil.NewTestItem("drop", testutil.WithOrder(0)),
	)

	svc := NewViewService(uow, nil)
	items, err := svc.FilteredOrdered(context.Background(), contract.ViewRequest{
		SelectedDays: []string{"day-2"},
	})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "keep", items[0].Title)
}
