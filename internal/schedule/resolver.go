package schedule

import (
	"sort"

	"wayplan/internal/domain"
)

// DefaultVariantID is assumed wherever a variant discriminator is absent.
// The defaulting rule lives here and nowhere else.
const DefaultVariantID = "default"

// EffectiveVariantID returns the per-day variant discriminator with the
// default applied.
func EffectiveVariantID(id string) string {
	return domain.CoalesceStr(id, DefaultVariantID)
}

// EffectiveGlobalVariantID returns the top-level plan discriminator with
// the default applied.
func EffectiveGlobalVariantID(id string) string {
	return domain.CoalesceStr(id, DefaultVariantID)
}

// KeyFor builds the effective bucket key for an item.
func KeyFor(i *domain.Item) domain.BucketKey {
	return domain.BucketKey{
		Day:             domain.CoalesceStr(i.Day, domain.DayUnassigned),
		VariantID:       EffectiveVariantID(i.VariantID),
		GlobalVariantID: EffectiveGlobalVariantID(i.GlobalVariantID),
	}
}

// Key builds an effective bucket key from raw components.
func Key(day, variantID, globalVariantID string) domain.BucketKey {
	return domain.BucketKey{
		Day:             domain.CoalesceStr(day, domain.DayUnassigned),
		VariantID:       EffectiveVariantID(variantID),
		GlobalVariantID: EffectiveGlobalVariantID(globalVariantID),
	}
}

// InActiveView reports whether the item belongs to the view defined by the
// active global variant and the per-day variant override map.
func InActiveView(i *domain.Item, activeGlobalVariantID string, dayVariants map[string]string) bool {
	if EffectiveGlobalVariantID(i.GlobalVariantID) != EffectiveGlobalVariantID(activeGlobalVariantID) {
		return false
	}
	return EffectiveVariantID(i.VariantID) == EffectiveVariantID(dayVariants[i.Day])
}

// SortByOrder sorts items by order ascending, id as tiebreak. Orders may
// transiently collide after an interrupted run; the tiebreak keeps reads
// deterministic until the next renumbering heals them.
func SortByOrder(items []*domain.Item) {
	sort.SliceStable(items, func(a, b int) bool {
		if items[a].Order != items[b].Order {
			return items[a].Order < items[b].Order
		}
		return items[a].ID < items[b].ID
	})
}

// Bucket filters items down to one bucket and returns them in order.
func Bucket(items []*domain.Item, key domain.BucketKey) []*domain.Item {
	var members []*domain.Item
	for _, i := range items {
		if KeyFor(i) == key {
			members = append(members, i)
		}
	}
	SortByOrder(members)
	return members
}

// SortChronoThenOrder orders bucket members the way the day renders them:
// items with a datetime first, chronologically, then undated items by
// order. Group adjacency is judged against this sequence.
func SortChronoThenOrder(items []*domain.Item) {
	sort.SliceStable(items, func(a, b int) bool {
		da, db := items[a].Datetime, items[b].Datetime
		if (da == nil) != (db == nil) {
			return da != nil
		}
		if da != nil && db != nil && !da.Equal(*db) {
			return da.Before(*db)
		}
		if items[a].Order != items[b].Order {
			return items[a].Order < items[b].Order
		}
		return items[a].ID < items[b].ID
	})
}
