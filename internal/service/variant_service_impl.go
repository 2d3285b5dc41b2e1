package service

import (
	"context"

	"github.com/google/uuid"

	"wayplan/internal/db"
	"wayplan/internal/domain"
	"wayplan/internal/repository"
)

type variantService struct {
	uow db.UnitOfWork
}

func NewVariantService(uow db.UnitOfWork) VariantService {
	return &variantService{uow: uow}
}

func (s *variantService) Create(ctx context.Context, v *domain.Variant) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteVariantRepo(tx).Create(ctx, v)
	})
}

func (s *variantService) GetByID(ctx context.Context, id string) (*domain.Variant, error) {
	var v *domain.Variant
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		v, err = repository.NewSQLiteVariantRepo(tx).GetByID(ctx, id)
		return err
	})
	return v, err
}

func (s *variantService) List(ctx context.Context) ([]*domain.Variant, error) {
	var variants []*domain.Variant
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		variants, err = repository.NewSQLiteVariantRepo(tx).List(ctx)
		return err
	})
	return variants, err
}

func (s *variantService) Update(ctx context.Context, v *domain.Variant) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteVariantRepo(tx).Update(ctx, v)
	})
}

func (s *variantService) Delete(ctx context.Context, id string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteVariantRepo(tx).Delete(ctx, id)
	})
}
