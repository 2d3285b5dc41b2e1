package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"wayplan/internal/domain"
)

// DefaultStartHour is the hour a day's derived schedule starts at when no
// pinned time says otherwise.
const DefaultStartHour = 9

// DefaultBaseDate anchors derivation when no variant start date resolves.
// A fixed constant keeps derived output deterministic; it never blocks
// rendering.
var DefaultBaseDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

const dayKeyPrefix = "day-"

// DayIndex parses a day key like "day-3" into its 1-based index.
func DayIndex(day string) (int, error) {
	raw, ok := strings.CutPrefix(day, dayKeyPrefix)
	if !ok {
		return 0, fmt.Errorf("not a day key: %q", day)
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("not a day key: %q", day)
	}
	return n, nil
}

// DayKey builds the day key for a 1-based index.
func DayKey(index int) string {
	return fmt.Sprintf("%s%d", dayKeyPrefix, index)
}

// ValidDay reports whether day is the unassigned sentinel or a well-formed
// day key. Anything else is corrupted state and gets coerced to unassigned.
func ValidDay(day string) bool {
	if day == domain.DayUnassigned {
		return true
	}
	_, err := DayIndex(day)
	return err == nil
}

// DateForDay maps a day key onto a calendar date using the variant's start
// date. Missing start dates and malformed keys fall back to DefaultBaseDate.
func DateForDay(variant *domain.Variant, day string) time.Time {
	base := DefaultBaseDate
	if variant != nil && variant.StartDate != nil {
		base = *variant.StartDate
	}
	idx, err := DayIndex(day)
	if err != nil {
		return base
	}
	return base.AddDate(0, 0, idx-1)
}

// RedateForDay shifts a timestamp onto the calendar date implied by the
// target day, preserving the wall-clock time of day.
func RedateForDay(t time.Time, variant *domain.Variant, targetDay string) time.Time {
	date := DateForDay(variant, targetDay)
	return time.Date(date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), t.Second(), 0, t.Location())
}
