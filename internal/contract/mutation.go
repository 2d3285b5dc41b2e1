package contract

import "wayplan/internal/domain"

// BucketSnapshot is a value copy of one bucket's members in order, taken
// before a mutation touches it. An undo facility stores these; the engine
// itself keeps no history.
type BucketSnapshot struct {
	Key   domain.BucketKey
	Items []domain.Item
}

// MutationResult reports a completed structural operation. NoOp is set
// when the referenced item no longer exists; that is a benign race with a
// deletion, not an error.
type MutationResult struct {
	Op      string
	NoOp    bool
	Before  []BucketSnapshot
	After   []BucketSnapshot
	Changed []domain.BucketKey
}
