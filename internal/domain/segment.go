package domain

import (
	"fmt"
	"time"
)

// TransportSegment is a directed travel-time estimate between two items
// that are (or were) adjacent in a bucket. Its ID is deterministic per
// ordered pair, so segments for pairs that are no longer adjacent become
// orphaned rows that are simply never looked up again.
type TransportSegment struct {
	ID         string
	FromItemID int64
	ToItemID   int64
	Mode       TransportMode

	DurationCalcMin     *int
	DurationOverrideMin *int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SegmentID builds the deterministic segment key for an ordered item pair.
func SegmentID(fromItemID, toItemID int64) string {
	return fmt.Sprintf("%d-%d", fromItemID, toItemID)
}

// EffectiveDurationMin returns the duration that contributes to time
// derivation. A calculated duration takes precedence over an override.
func (s *TransportSegment) EffectiveDurationMin() (int, bool) {
	if s.DurationCalcMin != nil {
		return *s.DurationCalcMin, true
	}
	if s.DurationOverrideMin != nil {
		return *s.DurationOverrideMin, true
	}
	return 0, false
}
