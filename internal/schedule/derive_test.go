package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wayplan/internal/domain"
	"wayplan/internal/testutil"
)

var base = time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

func at(hour, min int) time.Time {
	return time.Date(2026, 9, 14, hour, min, 0, 0, time.UTC)
}

func TestDeriveStartsAtDefaultHour(t *testing.T) {
	items := []*domain.Item{testutil.NewTestItem("a")}
	items[0].ID = 1

	out := DeriveTimes(items, nil, base)
	require.Len(t, out, 1)
	assert.Equal(t, at(9, 0), out[0].Start)
}

func TestDeriveDefaultDurationIs60(t *testing.T) {
	a := testutil.NewTestItem("a")
	b := testutil.NewTestItem("b")
	a.ID, b.ID = 1, 2

	out := DeriveTimes([]*domain.Item{a, b}, nil, base)
	require.Len(t, out, 2)
	assert.Equal(t, at(10, 0), out[1].Start)
}

func TestDeriveTransportAccrual(t *testing.T) {
	a := testutil.NewTestItem("a", testutil.WithDuration(10))
	b := testutil.NewTestItem("b")
	a.ID, b.ID = 1, 2
	lookup := BuildTransportLookup([]*domain.TransportSegment{
		testutil.NewTestSegment(1, 2, domain.TransportModeWalk, 20),
	})

	out := DeriveTimes([]*domain.Item{a, b}, lookup, base)
	require.Len(t, out, 2)
	assert.Equal(t, 30*time.Minute, out[1].Start.Sub(out[0].Start),
		"successor starts after duration plus transport")
}

func TestDeriveIgnoresNonAdjacentSegments(t *testing.T) {
	a := testutil.NewTestItem("a", testutil.WithDuration(30))
	b := testutil.NewTestItem("b")
	a.ID, b.ID = 1, 2
	// Orphaned segment for a pair that is no longer adjacent.
	lookup := BuildTransportLookup([]*domain.TransportSegment{
		testutil.NewTestSegment(2, 1, domain.TransportModeWalk, 45),
	})

	out := DeriveTimes([]*domain.Item{a, b}, lookup, base)
	assert.Equal(t, 30*time.Minute, out[1].Start.Sub(out[0].Start))
}

func TestDeriveNoBackPropagation(t *testing.T) {
	a := testutil.NewTestItem("a", testutil.WithDuration(30))
	b := testutil.NewTestItem("b", testutil.WithDatetime(at(11, 30), true), testutil.WithDuration(45))
	c := testutil.NewTestItem("c")
	a.ID, b.ID, c.ID = 1, 2, 3

	out := DeriveTimes([]*domain.Item{a, b, c}, nil, base)
	require.Len(t, out, 3)
	assert.Equal(t, at(9, 0), out[0].Start, "earlier items never move to accommodate a later pin")
	assert.Equal(t, at(11, 30), out[1].Start, "pin is respected even though 09:30 < 11:30")
	assert.Equal(t, at(12, 15), out[2].Start, "successor cascades from the pin")
}

func TestDerivePinSnapsTimeOfDayOnly(t *testing.T) {
	// Pinned datetime carries a different calendar date; only its
	// time of day matters.
	pinnedAt := time.Date(2026, 1, 3, 14, 15, 0, 0, time.UTC)
	a := testutil.NewTestItem("a", testutil.WithDatetime(pinnedAt, true))
	a.ID = 1

	out := DeriveTimes([]*domain.Item{a}, nil, base)
	assert.Equal(t, at(14, 15), out[0].Start, "derived date stays the running clock's date")
}

func TestDeriveUnpinnedDatetimeIsIgnored(t *testing.T) {
	a := testutil.NewTestItem("a", testutil.WithDatetime(at(13, 0), false))
	a.ID = 1

	out := DeriveTimes([]*domain.Item{a}, nil, base)
	assert.Equal(t, at(9, 0), out[0].Start)
}

func TestDeriveConcreteDay(t *testing.T) {
	a := testutil.NewTestItem("a", testutil.WithOrder(0), testutil.WithDuration(60),
		testutil.WithDatetime(at(9, 0), true))
	b := testutil.NewTestItem("b", testutil.WithOrder(1), testutil.WithDuration(90))
	c := testutil.NewTestItem("c", testutil.WithOrder(2), testutil.WithDuration(45))
	a.ID, b.ID, c.ID = 1, 2, 3
	lookup := BuildTransportLookup([]*domain.TransportSegment{
		testutil.NewTestSegment(1, 2, domain.TransportModeWalk, 15),
		testutil.NewTestSegment(2, 3, domain.TransportModeTransit, 10),
	})

	out := DeriveTimes([]*domain.Item{a, b, c}, lookup, base)
	require.Len(t, out, 3)
	assert.Equal(t, at(9, 0), out[0].Start)
	assert.Equal(t, at(10, 15), out[1].Start)
	assert.Equal(t, at(11, 55), out[2].Start)
}

func TestDeriveRollsOverMidnight(t *testing.T) {
	// 2026-01-31 so the cascade also crosses a month boundary.
	eom := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	a := testutil.NewTestItem("a", testutil.WithDatetime(time.Date(2026, 1, 31, 23, 30, 0, 0, time.UTC), true),
		testutil.WithDuration(45))
	b := testutil.NewTestItem("b")
	a.ID, b.ID = 1, 2

	out := DeriveTimes([]*domain.Item{a, b}, nil, eom)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 15, 0, 0, time.UTC), out[1].Start,
		"absolute instant arithmetic rolls the month boundary")
}

func TestDeriveFreeItemsConsumeDuration(t *testing.T) {
	a := testutil.NewTestItem("a", testutil.WithCategory(domain.CategoryFree), testutil.WithDuration(120))
	b := testutil.NewTestItem("b")
	a.ID, b.ID = 1, 2

	out := DeriveTimes([]*domain.Item{a, b}, nil, base)
	assert.Equal(t, at(11, 0), out[1].Start, "free blocks stay in the chain and consume their duration")
}
