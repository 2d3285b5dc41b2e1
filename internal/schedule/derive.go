package schedule

import (
	"time"

	"wayplan/internal/domain"
)

// Scheduled pairs an item with its derived start time. The derived time is
// display-only and never persisted.
type Scheduled struct {
	Item  *domain.Item
	Start time.Time
}

// TransportLookup resolves transport segments by their deterministic
// adjacency key.
type TransportLookup map[string]*domain.TransportSegment

// BuildTransportLookup indexes segments by ID.
func BuildTransportLookup(segments []*domain.TransportSegment) TransportLookup {
	lookup := make(TransportLookup, len(segments))
	for _, s := range segments {
		lookup[s.ID] = s
	}
	return lookup
}

// DeriveTimes computes a start time for every item of one bucket, given in
// final order. A running clock starts at DefaultStartHour on baseDate and
// cascades strictly forward:
//
//  1. A pinned item snaps the clock's time of day to its datetime; the
//     date stays the running clock's date.
//  2. The item's derived start is the clock value.
//  3. The clock advances by the item's duration, plus the effective
//     duration of the (this, next) transport segment when one exists.
//
// A late pin pushes everything after it later; nothing is ever pulled
// backward to accommodate a pin (no back-propagation).
func DeriveTimes(ordered []*domain.Item, lookup TransportLookup, baseDate time.Time) []Scheduled {
	clock := time.Date(baseDate.Year(), baseDate.Month(), baseDate.Day(),
		DefaultStartHour, 0, 0, 0, baseDate.Location())

	out := make([]Scheduled, 0, len(ordered))
	for idx, item := range ordered {
		if item.PinnedTime && item.Datetime != nil {
			dt := item.Datetime
			clock = time.Date(clock.Year(), clock.Month(), clock.Day(),
				dt.Hour(), dt.Minute(), 0, 0, clock.Location())
		}
		out = append(out, Scheduled{Item: item, Start: clock})

		clock = clock.Add(time.Duration(item.DurationOrDefault()) * time.Minute)
		if idx+1 < len(ordered) {
			if seg, ok := lookup[domain.SegmentID(item.ID, ordered[idx+1].ID)]; ok {
				if minutes, ok := seg.EffectiveDurationMin(); ok {
					clock = clock.Add(time.Duration(minutes) * time.Minute)
				}
			}
		}
	}
	return out
}
