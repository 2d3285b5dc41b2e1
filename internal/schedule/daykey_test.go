package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wayplan/internal/domain"
	"wayplan/internal/testutil"
)

func TestDayIndex(t *testing.T) {
	idx, err := DayIndex("day-3")
	require.NoError(t, err)
	assert.Equal(t, 3, idx)

	for _, bad := range []string{"day-0", "day-x", "unassigned", "", "3"} {
		_, err := DayIndex(bad)
		assert.Error(t, err, "%q is not a day key", bad)
	}
}

func TestDayKeyRoundTrip(t *testing.T) {
	assert.Equal(t, "day-7", DayKey(7))
	idx, err := DayIndex(DayKey(7))
	require.NoError(t, err)
	assert.Equal(t, 7, idx)
}

func TestValidDay(t *testing.T) {
	assert.True(t, ValidDay("day-1"))
	assert.True(t, ValidDay(domain.DayUnassigned))
	assert.False(t, ValidDay("day-x"))
	assert.False(t, ValidDay(""))
}

func TestDateForDay(t *testing.T) {
	start := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	v := testutil.NewTestVariant("trip", testutil.WithStartDate(start))

	assert.Equal(t, start, DateForDay(v, "day-1"))
	assert.Equal(t, start.AddDate(0, 0, 2), DateForDay(v, "day-3"))
}

func TestDateForDayFallsBack(t *testing.T) {
	assert.Equal(t, DefaultBaseDate, DateForDay(nil, "day-1"), "no variant at all")

	v := testutil.NewTestVariant("no dates")
	assert.Equal(t, DefaultBaseDate, DateForDay(v, "day-1"), "variant without start date")
	assert.Equal(t, DefaultBaseDate, DateForDay(v, "nonsense"), "malformed day key")
}

func TestRedateForDayPreservesTimeOfDay(t *testing.T) {
	start := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	v := testutil.NewTestVariant("trip", testutil.WithStartDate(start))

	orig := time.Date(2026, 9, 14, 18, 45, 30, 0, time.UTC)
	moved := RedateForDay(orig, v, "day-4")
	assert.Equal(t, time.Date(2026, 9, 17, 18, 45, 30, 0, time.UTC), moved)
}
