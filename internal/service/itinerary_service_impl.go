package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"wayplan/internal/contract"
	"wayplan/internal/db"
	"wayplan/internal/domain"
	"wayplan/internal/repository"
	"wayplan/internal/schedule"
)

type itineraryService struct {
	uow      db.UnitOfWork
	notifier *BucketNotifier
	observer MutationObserver
	logger   *slog.Logger
}

func NewItineraryService(uow db.UnitOfWork, notifier *BucketNotifier, observers ...MutationObserver) ItineraryService {
	return &itineraryService{
		uow:      uow,
		notifier: notifier,
		observer: mutationObserverOrNoop(observers),
		logger:   slog.Default(),
	}
}

// run wraps one structural operation: transaction, telemetry, and change
// notification. The notifier only fires after a successful commit, so
// readers never refresh against rolled-back state.
func (s *itineraryService) run(
	ctx context.Context,
	op string,
	fn func(ctx context.Context, tx db.DBTX, result *contract.MutationResult) error,
) (*contract.MutationResult, error) {
	started := time.Now()
	result := &contract.MutationResult{Op: op}

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, tx, result)
	})

	s.observer.ObserveMutation(ctx, MutationEvent{
		Op:        op,
		Buckets:   result.Changed,
		Duration:  time.Since(started),
		NoOp:      result.NoOp,
		Err:       err,
		StartedAt: started,
	})
	if err != nil {
		return nil, err
	}
	if s.notifier != nil && !result.NoOp {
		s.notifier.Publish(result.Changed...)
	}
	return result, nil
}

// normalizeDay coerces day keys outside the known set to unassigned.
// Corrupted keys are healed, not fatal.
func (s *itineraryService) normalizeDay(day string) string {
	if day == "" || schedule.ValidDay(day) {
		return day
	}
	s.logger.Warn("coercing unknown day key to unassigned", "day", day)
	return domain.DayUnassigned
}

// loadVariant resolves the variant used for day-to-date mapping. A missing
// record just means derivation falls back to the default base date.
func loadVariant(ctx context.Context, repo repository.VariantRepo, globalVariantID string) *domain.Variant {
	v, err := repo.GetByID(ctx, schedule.EffectiveGlobalVariantID(globalVariantID))
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			slog.Default().Warn("loading variant for day mapping", "error", err)
		}
		return nil
	}
	return v
}

// redate shifts the item's datetime onto the target day's calendar date,
// preserving the wall-clock time of day. Moving into unassigned keeps the
// datetime untouched.
func redate(ctx context.Context, tx db.DBTX, item *domain.Item, target domain.BucketKey) {
	if item.Day == target.Day || item.Datetime == nil || target.Day == domain.DayUnassigned {
		return
	}
	variants := repository.NewSQLiteVariantRepo(tx)
	v := loadVariant(ctx, variants, target.GlobalVariantID)
	moved := schedule.RedateForDay(*item.Datetime, v, target.Day)
	item.Datetime = &moved
}

func (s *itineraryService) MoveToBucket(ctx context.Context, itemID int64, day, variantID, globalVariantID string) (*contract.MutationResult, error) {
	return s.run(ctx, "move_to_bucket", func(ctx context.Context, tx db.DBTX, result *contract.MutationResult) error {
		items := repository.NewSQLiteItemRepo(tx)
		all, err := items.List(ctx)
		if err != nil {
			return err
		}
		item := findItem(all, itemID)
		if item == nil {
			result.NoOp = true
			return nil
		}

		source := schedule.KeyFor(item)
		target := schedule.Key(s.normalizeDay(day), variantID, globalVariantID)
		result.Before = snapshotBuckets(all, source, target)
		result.Changed = dedupeKeys([]domain.BucketKey{source, target})

		now := time.Now().UTC()
		endOrder := maxOrder(schedule.Bucket(all, target)) + 1

		redate(ctx, tx, item, target)
		item.Day = target.Day
		item.VariantID = target.VariantID
		item.GlobalVariantID = target.GlobalVariantID
		item.GroupID = ""
		item.Order = endOrder
		item.UpdatedAt = now
		if err := items.Update(ctx, item); err != nil {
			return err
		}

		if err := renumberBucket(ctx, items, all, source, now); err != nil {
			return err
		}
		if err := renumberBucket(ctx, items, all, target, now); err != nil {
			return err
		}
		result.After = snapshotBuckets(all, result.Changed...)
		return nil
	})
}

func (s *itineraryService) MoveHere(ctx context.Context, itemID int64, day, variantID, globalVariantID string, groupID string, insertBeforeID int64) (*contract.MutationResult, error) {
	return s.run(ctx, "move_here", func(ctx context.Context, tx db.DBTX, result *contract.MutationResult) error {
		items := repository.NewSQLiteItemRepo(tx)
		all, err := items.List(ctx)
		if err != nil {
			return err
		}
		item := findItem(all, itemID)
		if item == nil {
			result.NoOp = true
			return nil
		}

		source := schedule.KeyFor(item)
		target := schedule.Key(s.normalizeDay(day), variantID, globalVariantID)
		result.Before = snapshotBuckets(all, source, target)
		result.Changed = dedupeKeys([]domain.BucketKey{source, target})

		now := time.Now().UTC()
		redate(ctx, tx, item, target)
		item.Day = target.Day
		item.VariantID = target.VariantID
		item.GlobalVariantID = target.GlobalVariantID
		item.GroupID = groupID
		item.UpdatedAt = now
		if err := items.Update(ctx, item); err != nil {
			return err
		}

		// Splice before the anchor; a missing or foreign anchor appends.
		members := schedule.Bucket(all, target)
		spliced := make([]*domain.Item, 0, len(members))
		inserted := false
		for _, m := range members {
			if m.ID == item.ID {
				continue
			}
			if !inserted && insertBeforeID != 0 && m.ID == insertBeforeID {
				spliced = append(spliced, item)
				inserted = true
			}
			spliced = append(spliced, m)
		}
		if !inserted {
			spliced = append(spliced, item)
		}

		if err := renumberSpliced(ctx, items, spliced, now); err != nil {
			return err
		}
		if err := renumberBucket(ctx, items, all, source, now); err != nil {
			return err
		}
		result.After = snapshotBuckets(all, result.Changed...)
		return nil
	})
}

func (s *itineraryService) Reorder(ctx context.Context, active contract.DragRef, over contract.DropRef, day, variantID, globalVariantID string) (*contract.MutationResult, error) {
	return s.run(ctx, "reorder", func(ctx context.Context, tx db.DBTX, result *contract.MutationResult) error {
		items := repository.NewSQLiteItemRepo(tx)
		all, err := items.List(ctx)
		if err != nil {
			return err
		}

		var movers []*domain.Item
		groupMove := false
		switch active.Kind {
		case contract.RefItem:
			item := findItem(all, active.ItemID)
			if item == nil {
				result.NoOp = true
				return nil
			}
			movers = []*domain.Item{item}
		case contract.RefGroup:
			movers = groupMembers(all, active.GroupID)
			if len(movers) == 0 {
				result.NoOp = true
				return nil
			}
			groupMove = true
		default:
			result.NoOp = true
			return nil
		}

		target := schedule.Key(s.normalizeDay(day), variantID, globalVariantID)
		keys := []domain.BucketKey{target}
		for _, m := range movers {
			keys = append(keys, schedule.KeyFor(m))
		}
		keys = dedupeKeys(keys)
		result.Before = snapshotBuckets(all, keys...)
		result.Changed = keys

		moving := make(map[int64]bool, len(movers))
		for _, m := range movers {
			moving[m.ID] = true
		}

		// Target bucket without the movers, in current order.
		var current []*domain.Item
		for _, m := range schedule.Bucket(all, target) {
			if !moving[m.ID] {
				current = append(current, m)
			}
		}

		// Resolve the insertion point and group adoption. A group move
		// keeps its own group and never absorbs the target's.
		insertAt := len(current)
		switch over.Kind {
		case contract.RefBucket:
			if !groupMove {
				movers[0].GroupID = ""
			}
		case contract.RefItem:
			for idx, m := range current {
				if m.ID == over.ItemID {
					insertAt = idx
					if !groupMove {
						movers[0].GroupID = m.GroupID
					}
					break
				}
			}
		case contract.RefGroup:
			for idx, m := range current {
				if m.GroupID == over.GroupID {
					insertAt = idx
					if !groupMove {
						movers[0].GroupID = over.GroupID
					}
					break
				}
			}
		}

		now := time.Now().UTC()
		for _, m := range movers {
			redate(ctx, tx, m, target)
			m.Day = target.Day
			m.VariantID = target.VariantID
			m.GlobalVariantID = target.GlobalVariantID
			m.UpdatedAt = now
			if err := items.Update(ctx, m); err != nil {
				return err
			}
		}

		spliced := make([]*domain.Item, 0, len(current)+len(movers))
		spliced = append(spliced, current[:insertAt]...)
		spliced = append(spliced, movers...)
		spliced = append(spliced, current[insertAt:]...)
		if err := renumberSpliced(ctx, items, spliced, now); err != nil {
			return err
		}

		for _, key := range keys {
			if key == target {
				continue
			}
			if err := renumberBucket(ctx, items, all, key, now); err != nil {
				return err
			}
		}
		result.After = snapshotBuckets(all, result.Changed...)
		return nil
	})
}

func (s *itineraryService) Group(ctx context.Context, itemID int64) (*contract.MutationResult, error) {
	return s.run(ctx, "group", func(ctx context.Context, tx db.DBTX, result *contract.MutationResult) error {
		items := repository.NewSQLiteItemRepo(tx)
		all, err := items.List(ctx)
		if err != nil {
			return err
		}
		item := findItem(all, itemID)
		if item == nil {
			result.NoOp = true
			return nil
		}

		key := schedule.KeyFor(item)
		// The successor is judged against render order: dated items
		// chronologically first, then undated by order.
		seq := schedule.Bucket(all, key)
		schedule.SortChronoThenOrder(seq)

		var succ *domain.Item
		for idx, m := range seq {
			if m.ID == item.ID && idx+1 < len(seq) {
				succ = seq[idx+1]
				break
			}
		}
		if succ == nil {
			result.NoOp = true
			return nil
		}

		result.Before = snapshotBuckets(all, key)
		result.Changed = []domain.BucketKey{key}

		now := time.Now().UTC()
		switch {
		case item.InGroup() && item.GroupID == succ.GroupID:
			// Already merged; toggle the successor back out.
			succ.GroupID = ""
		case item.InGroup():
			succ.GroupID = item.GroupID
		case succ.InGroup():
			item.GroupID = succ.GroupID
		default:
			gid := uuid.New().String()
			item.GroupID = gid
			succ.GroupID = gid
		}
		item.UpdatedAt = now
		succ.UpdatedAt = now
		if err := items.Update(ctx, item); err != nil {
			return err
		}
		if err := items.Update(ctx, succ); err != nil {
			return err
		}
		if err := renumberBucket(ctx, items, all, key, now); err != nil {
			return err
		}
		result.After = snapshotBuckets(all, result.Changed...)
		return nil
	})
}

func (s *itineraryService) ExtractFromGroup(ctx context.Context, itemID int64) (*contract.MutationResult, error) {
	return s.run(ctx, "extract_from_group", func(ctx context.Context, tx db.DBTX, result *contract.MutationResult) error {
		items := repository.NewSQLiteItemRepo(tx)
		all, err := items.List(ctx)
		if err != nil {
			return err
		}
		item := findItem(all, itemID)
		if item == nil || !item.InGroup() {
			result.NoOp = true
			return nil
		}

		key := schedule.KeyFor(item)
		result.Before = snapshotBuckets(all, key)
		result.Changed = []domain.BucketKey{key}

		// Remaining members keep their group id, even a lone survivor.
		item.GroupID = ""
		item.UpdatedAt = time.Now().UTC()
		if err := items.Update(ctx, item); err != nil {
			return err
		}
		result.After = snapshotBuckets(all, result.Changed...)
		return nil
	})
}

func (s *itineraryService) UngroupAll(ctx context.Context, groupID string) (*contract.MutationResult, error) {
	return s.run(ctx, "ungroup_all", func(ctx context.Context, tx db.DBTX, result *contract.MutationResult) error {
		items := repository.NewSQLiteItemRepo(tx)
		all, err := items.List(ctx)
		if err != nil {
			return err
		}
		members := groupMembers(all, groupID)
		if groupID == "" || len(members) == 0 {
			result.NoOp = true
			return nil
		}

		var keys []domain.BucketKey
		for _, m := range members {
			keys = append(keys, schedule.KeyFor(m))
		}
		keys = dedupeKeys(keys)
		result.Before = snapshotBuckets(all, keys...)
		result.Changed = keys

		now := time.Now().UTC()
		for _, m := range members {
			m.GroupID = ""
			m.UpdatedAt = now
			if err := items.Update(ctx, m); err != nil {
				return err
			}
		}
		result.After = snapshotBuckets(all, result.Changed...)
		return nil
	})
}
