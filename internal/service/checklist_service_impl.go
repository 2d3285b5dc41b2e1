package service

import (
	"context"
	"time"

	"wayplan/internal/db"
	"wayplan/internal/domain"
	"wayplan/internal/repository"
)

type checklistService struct {
	uow db.UnitOfWork
}

func NewChecklistService(uow db.UnitOfWork) ChecklistService {
	return &checklistService{uow: uow}
}

// Add appends an entry at the end of the list.
func (s *checklistService) Add(ctx context.Context, text string) (*domain.ChecklistEntry, error) {
	now := time.Now().UTC()
	entry := &domain.ChecklistEntry{Text: text, CreatedAt: now, UpdatedAt: now}
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		entries := repository.NewSQLiteChecklistRepo(tx)
		existing, err := entries.List(ctx)
		if err != nil {
			return err
		}
		entry.Order = int64(len(existing))
		return entries.Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *checklistService) List(ctx context.Context) ([]*domain.ChecklistEntry, error) {
	var entries []*domain.ChecklistEntry
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		entries, err = repository.NewSQLiteChecklistRepo(tx).List(ctx)
		return err
	})
	return entries, err
}

func (s *checklistService) Toggle(ctx context.Context, id int64) (*domain.ChecklistEntry, error) {
	var entry *domain.ChecklistEntry
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		entries := repository.NewSQLiteChecklistRepo(tx)
		var err error
		entry, err = entries.GetByID(ctx, id)
		if err != nil {
			return err
		}
		entry.Done = !entry.Done
		entry.UpdatedAt = time.Now().UTC()
		return entries.Update(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// Delete removes the entry and compacts the remaining orders.
func (s *checklistService) Delete(ctx context.Context, id int64) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		entries := repository.NewSQLiteChecklistRepo(tx)
		if err := entries.Delete(ctx, id); err != nil {
			return err
		}
		remaining, err := entries.List(ctx)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		for idx, e := range remaining {
			if e.Order == int64(idx) {
				continue
			}
			e.Order = int64(idx)
			e.UpdatedAt = now
			if err := entries.Update(ctx, e); err != nil {
				return err
			}
		}
		return nil
	})
}
