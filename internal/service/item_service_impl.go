package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"wayplan/internal/db"
	"wayplan/internal/domain"
	"wayplan/internal/repository"
	"wayplan/internal/schedule"
)

type itemService struct {
	uow      db.UnitOfWork
	notifier *BucketNotifier
	logger   *slog.Logger
}

func NewItemService(uow db.UnitOfWork, notifier *BucketNotifier) ItemService {
	return &itemService{uow: uow, notifier: notifier, logger: slog.Default()}
}

func (s *itemService) notify(keys ...domain.BucketKey) {
	if s.notifier != nil {
		s.notifier.Publish(dedupeKeys(keys)...)
	}
}

func (s *itemService) coerceDay(i *domain.Item) {
	if i.Day == "" || schedule.ValidDay(i.Day) {
		return
	}
	s.logger.Warn("coercing unknown day key to unassigned", "item", i.ID, "day", i.Day)
	i.Day = domain.DayUnassigned
}

// Create appends the item to its bucket. New items are ordered by creation
// instant; the next structural mutation of the bucket compacts orders to a
// dense sequence.
func (s *itemService) Create(ctx context.Context, i *domain.Item) error {
	now := time.Now().UTC()
	s.coerceDay(i)
	if i.Category == "" {
		i.Category = domain.CategoryActivity
	}
	if i.Order == 0 {
		i.Order = now.UnixMilli()
	}
	i.CreatedAt = now
	i.UpdatedAt = now

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteItemRepo(tx).Create(ctx, i)
	})
	if err != nil {
		return err
	}
	s.notify(schedule.KeyFor(i))
	return nil
}

func (s *itemService) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	var item *domain.Item
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		item, err = repository.NewSQLiteItemRepo(tx).GetByID(ctx, id)
		return err
	})
	return item, err
}

func (s *itemService) List(ctx context.Context) ([]*domain.Item, error) {
	var items []*domain.Item
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		items, err = repository.NewSQLiteItemRepo(tx).List(ctx)
		return err
	})
	return items, err
}

func (s *itemService) Update(ctx context.Context, i *domain.Item) error {
	s.coerceDay(i)
	i.UpdatedAt = time.Now().UTC()

	var before domain.BucketKey
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		items := repository.NewSQLiteItemRepo(tx)
		stored, err := items.GetByID(ctx, i.ID)
		if err != nil {
			return err
		}
		before = schedule.KeyFor(stored)
		return items.Update(ctx, i)
	})
	if err != nil {
		return err
	}
	s.notify(before, schedule.KeyFor(i))
	return nil
}

// Delete removes the item, its transport segments in both directions, and
// closes the order gap it leaves behind. A missing id is a no-op.
func (s *itemService) Delete(ctx context.Context, id int64) error {
	var (
		key     domain.BucketKey
		deleted bool
	)
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		items := repository.NewSQLiteItemRepo(tx)
		item, err := items.GetByID(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		key = schedule.KeyFor(item)

		if err := repository.NewSQLiteSegmentRepo(tx).DeleteByItem(ctx, id); err != nil {
			return err
		}
		if err := items.Delete(ctx, id); err != nil {
			return err
		}
		deleted = true

		all, err := items.List(ctx)
		if err != nil {
			return err
		}
		return renumberBucket(ctx, items, all, key, time.Now().UTC())
	})
	if err != nil {
		return err
	}
	if deleted {
		s.notify(key)
	}
	return nil
}
