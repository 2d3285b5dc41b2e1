package testutil

import (
	"time"

	"github.com/google/uuid"

	"wayplan/internal/domain"
)

// Item options
type ItemOption func(*domain.Item)

func WithDay(day string) ItemOption {
	return func(i *domain.Item) {
		i.Day = day
	}
}

func WithOrder(order int64) ItemOption {
	return func(i *domain.Item) {
		i.Order = order
	}
}

func WithVariant(variantID string) ItemOption {
	return func(i *domain.Item) {
		i.VariantID = variantID
	}
}

func WithGlobalVariant(globalVariantID string) ItemOption {
	return func(i *domain.Item) {
		i.GlobalVariantID = globalVariantID
	}
}

func WithGroup(groupID string) ItemOption {
	return func(i *domain.Item) {
		i.GroupID = groupID
	}
}

func WithCategory(c domain.Category) ItemOption {
	return func(i *domain.Item) {
		i.Category = c
	}
}

func WithDuration(minutes int) ItemOption {
	return func(i *domain.Item) {
		i.DurationMin = &minutes
	}
}

func WithDatetime(t time.Time, pinned bool) ItemOption {
	return func(i *domain.Item) {
		i.Datetime = &t
		i.PinnedTime = pinned
	}
}

func NewTestItem(title string, opts ...ItemOption) *domain.Item {
	now := time.Now().UTC().Truncate(time.Second)
	i := &domain.Item{
		Title:     title,
		Day:       "day-1",
		Category:  domain.CategoryActivity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Variant options
type VariantOption func(*domain.Variant)

func WithStartDate(d time.Time) VariantOption {
	return func(v *domain.Variant) {
		v.StartDate = &d
	}
}

func WithEndDate(d time.Time) VariantOption {
	return func(v *domain.Variant) {
		v.EndDate = &d
	}
}

func WithCities(cities ...string) VariantOption {
	return func(v *domain.Variant) {
		v.Cities = cities
	}
}

func NewTestVariant(name string, opts ...VariantOption) *domain.Variant {
	now := time.Now().UTC().Truncate(time.Second)
	v := &domain.Variant{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// NewTestSegment builds a transport segment with a calculated duration.
func NewTestSegment(fromID, toID int64, mode domain.TransportMode, calcMin int) *domain.TransportSegment {
	now := time.Now().UTC().Truncate(time.Second)
	return &domain.TransportSegment{
		ID:              domain.SegmentID(fromID, toID),
		FromItemID:      fromID,
		ToItemID:        toID,
		Mode:            mode,
		DurationCalcMin: &calcMin,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func NewTestChecklistEntry(text string, order int64) *domain.ChecklistEntry {
	now := time.Now().UTC().Truncate(time.Second)
	return &domain.ChecklistEntry{
		Text:      text,
		Order:     order,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
