package domain

import "time"

// Variant is a named top-level plan alternative. StartDate maps day keys
// like "day-3" onto calendar dates; Cities is a presentation hint.
type Variant struct {
	ID        string
	Name      string
	StartDate *time.Time
	EndDate   *time.Time
	Cities    []string

	CreatedAt time.Time
	UpdatedAt time.Time
}
