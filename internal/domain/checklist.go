package domain

import "time"

// ChecklistEntry is a packing/preparation list row. Entries are ordered
// with the same dense renumbering rules as items.
type ChecklistEntry struct {
	ID    int64
	Text  string
	Done  bool
	Order int64

	CreatedAt time.Time
	UpdatedAt time.Time
}
