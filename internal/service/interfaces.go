package service

import (
	"context"

	"wayplan/internal/contract"
	"wayplan/internal/domain"
)

// ItineraryService owns the structural mutations of the plan. Every
// operation is atomic: it reads the full item set, computes the new
// placement, persists it in one transaction, and renumbers every affected
// bucket densely before returning. Missing item ids are benign races with
// a deletion and resolve to a NoOp result.
//
// Operations touching the same bucket must be serialized by the caller;
// operations on disjoint buckets may run independently.
type ItineraryService interface {
	MoveToBucket(ctx context.Context, itemID int64, day, variantID, globalVariantID string) (*contract.MutationResult, error)
	MoveHere(ctx context.Context, itemID int64, day, variantID, globalVariantID string, groupID string, insertBeforeID int64) (*contract.MutationResult, error)
	Reorder(ctx context.Context, active contract.DragRef, over contract.DropRef, day, variantID, globalVariantID string) (*contract.MutationResult, error)
	Group(ctx context.Context, itemID int64) (*contract.MutationResult, error)
	ExtractFromGroup(ctx context.Context, itemID int64) (*contract.MutationResult, error)
	UngroupAll(ctx context.Context, groupID string) (*contract.MutationResult, error)
}

type ItemService interface {
	Create(ctx context.Context, i *domain.Item) error
	GetByID(ctx context.Context, id int64) (*domain.Item, error)
	List(ctx context.Context) ([]*domain.Item, error)
	Update(ctx context.Context, i *domain.Item) error
	Delete(ctx context.Context, id int64) error
}

type VariantService interface {
	Create(ctx context.Context, v *domain.Variant) error
	GetByID(ctx context.Context, id string) (*domain.Variant, error)
	List(ctx context.Context) ([]*domain.Variant, error)
	Update(ctx context.Context, v *domain.Variant) error
	Delete(ctx context.Context, id string) error
}

// SegmentService records travel-time estimates between ordered item
// pairs. Estimates come from an external routing source or manual entry;
// this service only stores and keys them.
type SegmentService interface {
	RecordEstimate(ctx context.Context, fromItemID, toItemID int64, mode domain.TransportMode, minutes int) (*domain.TransportSegment, error)
	SetOverride(ctx context.Context, fromItemID, toItemID int64, minutes int) (*domain.TransportSegment, error)
	List(ctx context.Context) ([]*domain.TransportSegment, error)
}

type ChecklistService interface {
	Add(ctx context.Context, text string) (*domain.ChecklistEntry, error)
	List(ctx context.Context) ([]*domain.ChecklistEntry, error)
	Toggle(ctx context.Context, id int64) (*domain.ChecklistEntry, error)
	Delete(ctx context.Context, id int64) error
}

// ViewService is the only read path collaborators should use. It never
// mutates state; derived times are recomputed whenever a mutation
// invalidates the cached view.
type ViewService interface {
	DaySchedules(ctx context.Context, req contract.ViewRequest) (*contract.ViewResponse, error)
	FilteredOrdered(ctx context.Context, req contract.ViewRequest) ([]*domain.Item, error)
}

// ExportService renders the derived schedule as an iCalendar document.
type ExportService interface {
	ICS(ctx context.Context, req contract.ViewRequest) (string, error)
}
