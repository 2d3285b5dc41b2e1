package domain

import "time"

// DayUnassigned is the sentinel bucket for items without a day placement.
// Unassigned items are excluded from time derivation and transport accrual.
const DayUnassigned = "unassigned"

// DefaultDurationMin is assumed for items without an explicit duration,
// for time-derivation purposes only.
const DefaultDurationMin = 60

type Item struct {
	ID    int64
	Title string
	Place string
	Notes string

	// Placement
	Day             string
	VariantID       string
	GlobalVariantID string
	Order           int64
	GroupID         string

	// Schedule
	Datetime    *time.Time
	PinnedTime  bool
	DurationMin *int

	Category Category

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DurationOrDefault returns the explicit duration in minutes, or
// DefaultDurationMin when absent.
func (i *Item) DurationOrDefault() int {
	return IntFromPtrWithDefault(DefaultDurationMin, i.DurationMin)
}

// InGroup reports whether the item belongs to a group.
func (i *Item) InGroup() bool {
	return i.GroupID != ""
}

// Unassigned reports whether the item sits in the unassigned bucket.
func (i *Item) Unassigned() bool {
	return i.Day == DayUnassigned || i.Day == ""
}
