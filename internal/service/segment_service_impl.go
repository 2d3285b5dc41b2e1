package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wayplan/internal/db"
	"wayplan/internal/domain"
	"wayplan/internal/repository"
)

type segmentService struct {
	uow      db.UnitOfWork
	notifier *BucketNotifier
}

func NewSegmentService(uow db.UnitOfWork, notifier *BucketNotifier) SegmentService {
	return &segmentService{uow: uow, notifier: notifier}
}

// RecordEstimate stores a calculated travel estimate for the ordered pair.
// Re-recording replaces the previous estimate and keeps any override.
func (s *segmentService) RecordEstimate(ctx context.Context, fromItemID, toItemID int64, mode domain.TransportMode, minutes int) (*domain.TransportSegment, error) {
	return s.upsert(ctx, fromItemID, toItemID, func(seg *domain.TransportSegment) {
		if mode != "" {
			seg.Mode = mode
		}
		seg.DurationCalcMin = &minutes
	})
}

// SetOverride stores a manual duration for the ordered pair. It only takes
// effect while no calculated estimate exists.
func (s *segmentService) SetOverride(ctx context.Context, fromItemID, toItemID int64, minutes int) (*domain.TransportSegment, error) {
	return s.upsert(ctx, fromItemID, toItemID, func(seg *domain.TransportSegment) {
		seg.DurationOverrideMin = &minutes
	})
}

func (s *segmentService) upsert(ctx context.Context, fromItemID, toItemID int64, apply func(*domain.TransportSegment)) (*domain.TransportSegment, error) {
	if fromItemID == toItemID {
		return nil, fmt.Errorf("segment endpoints must differ: %d", fromItemID)
	}
	var (
		seg  *domain.TransportSegment
		keys []domain.BucketKey
	)
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		items := repository.NewSQLiteItemRepo(tx)
		from, err := items.GetByID(ctx, fromItemID)
		if err != nil {
			return fmt.Errorf("segment origin: %w", err)
		}
		to, err := items.GetByID(ctx, toItemID)
		if err != nil {
			return fmt.Errorf("segment destination: %w", err)
		}
		keys = bucketKeysOf(from, to)

		segments := repository.NewSQLiteSegmentRepo(tx)
		now := time.Now().UTC()
		seg, err = segments.GetByID(ctx, domain.SegmentID(fromItemID, toItemID))
		if errors.Is(err, repository.ErrNotFound) {
			seg = &domain.TransportSegment{
				FromItemID: fromItemID,
				ToItemID:   toItemID,
				Mode:       domain.TransportModeWalk,
				CreatedAt:  now,
			}
		} else if err != nil {
			return err
		}
		apply(seg)
		seg.UpdatedAt = now
		return segments.Upsert(ctx, seg)
	})
	if err != nil {
		return nil, err
	}
	if s.notifier != nil {
		s.notifier.Publish(keys...)
	}
	return seg, nil
}

func (s *segmentService) List(ctx context.Context) ([]*domain.TransportSegment, error) {
	var segments []*domain.TransportSegment
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		segments, err = repository.NewSQLiteSegmentRepo(tx).List(ctx)
		return err
	})
	return segments, err
}
