package contract

import (
	"sort"
	"strings"
	"time"

	"wayplan/internal/domain"
)

// ViewRequest selects the active view: one global variant, optional
// per-day variant overrides, and an optional day restriction.
type ViewRequest struct {
	GlobalVariantID string
	DayVariants     map[string]string
	SelectedDays    []string
}

// Fingerprint produces a stable cache key for the request.
func (r ViewRequest) Fingerprint() string {
	var b strings.Builder
	b.WriteString(r.GlobalVariantID)
	b.WriteByte('|')

	overrides := make([]string, 0, len(r.DayVariants))
	for day, variant := range r.DayVariants {
		overrides = append(overrides, day+"="+variant)
	}
	sort.Strings(overrides)
	b.WriteString(strings.Join(overrides, ","))
	b.WriteByte('|')

	days := append([]string(nil), r.SelectedDays...)
	sort.Strings(days)
	b.WriteString(strings.Join(days, ","))
	return b.String()
}

// ScheduledItem is an item annotated with its derived start time.
type ScheduledItem struct {
	Item  domain.Item
	Start time.Time
}

// DaySchedule is one day's ordered, time-annotated sequence.
type DaySchedule struct {
	Day   string
	Date  time.Time
	Items []ScheduledItem
}

// ViewResponse is the full derived view, days in calendar order.
type ViewResponse struct {
	Days []DaySchedule
}
