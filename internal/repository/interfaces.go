package repository

import (
	"context"

	"wayplan/internal/domain"
)

type ItemRepo interface {
	Create(ctx context.Context, i *domain.Item) error
	GetByID(ctx context.Context, id int64) (*domain.Item, error)
	List(ctx context.Context) ([]*domain.Item, error)
	ListByGroup(ctx context.Context, groupID string) ([]*domain.Item, error)
	Update(ctx context.Context, i *domain.Item) error
	Delete(ctx context.Context, id int64) error
}

type SegmentRepo interface {
	Upsert(ctx context.Context, s *domain.TransportSegment) error
	GetByID(ctx context.Context, id string) (*domain.TransportSegment, error)
	List(ctx context.Context) ([]*domain.TransportSegment, error)
	Delete(ctx context.Context, id string) error
	DeleteByItem(ctx context.Context, itemID int64) error
}

type VariantRepo interface {
	Create(ctx context.Context, v *domain.Variant) error
	GetByID(ctx context.Context, id string) (*domain.Variant, error)
	List(ctx context.Context) ([]*domain.Variant, error)
	Update(ctx context.Context, v *domain.Variant) error
	Delete(ctx context.Context, id string) error
}

type ChecklistRepo interface {
	Create(ctx context.Context, e *domain.ChecklistEntry) error
	GetByID(ctx context.Context, id int64) (*domain.ChecklistEntry, error)
	List(ctx context.Context) ([]*domain.ChecklistEntry, error)
	Update(ctx context.Context, e *domain.ChecklistEntry) error
	Delete(ctx context.Context, id int64) error
}
