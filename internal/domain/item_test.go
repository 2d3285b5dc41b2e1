package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDurationOrDefault(t *testing.T) {
	var i Item
	assert.Equal(t, DefaultDurationMin, i.DurationOrDefault(), "absent duration defaults to 60")

	d := 45
	i.DurationMin = &d
	assert.Equal(t, 45, i.DurationOrDefault())
}

func TestUnassigned(t *testing.T) {
	assert.True(t, (&Item{Day: DayUnassigned}).Unassigned())
	assert.True(t, (&Item{}).Unassigned(), "empty day counts as unassigned")
	assert.False(t, (&Item{Day: "day-1"}).Unassigned())
}

func TestSegmentID(t *testing.T) {
	assert.Equal(t, "12-34", SegmentID(12, 34))
	assert.NotEqual(t, SegmentID(1, 2), SegmentID(2, 1), "segment keys are directional")
}

func TestEffectiveDurationMin(t *testing.T) {
	calc, override := 20, 35

	var s TransportSegment
	_, ok := s.EffectiveDurationMin()
	assert.False(t, ok)

	s.DurationOverrideMin = &override
	got, ok := s.EffectiveDurationMin()
	assert.True(t, ok)
	assert.Equal(t, 35, got)

	s.DurationCalcMin = &calc
	got, _ = s.EffectiveDurationMin()
	assert.Equal(t, 20, got, "calculated duration takes precedence")
}

func TestRoutedStop(t *testing.T) {
	assert.True(t, CategoryActivity.RoutedStop())
	assert.False(t, CategoryTransport.RoutedStop())
	assert.False(t, CategoryAccommodation.RoutedStop())
	assert.False(t, CategoryFree.RoutedStop())
}
