package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"wayplan/internal/contract"
	"wayplan/internal/db"
	"wayplan/internal/domain"
	"wayplan/internal/repository"
	"wayplan/internal/schedule"
)

type viewService struct {
	uow db.UnitOfWork

	mu    sync.Mutex
	cache map[string]*contract.ViewResponse
}

// NewViewService builds the read facade. When a notifier is given the
// derived-view cache is dropped whenever any bucket changes; recomputation
// is cheap enough that per-bucket invalidation is not worth tracking.
func NewViewService(uow db.UnitOfWork, notifier *BucketNotifier) ViewService {
	s := &viewService{uow: uow, cache: make(map[string]*contract.ViewResponse)}
	if notifier != nil {
		notifier.Subscribe(func([]domain.BucketKey) {
			s.mu.Lock()
			s.cache = make(map[string]*contract.ViewResponse)
			s.mu.Unlock()
		})
	}
	return s
}

func (s *viewService) DaySchedules(ctx context.Context, req contract.ViewRequest) (*contract.ViewResponse, error) {
	key := req.Fingerprint()
	s.mu.Lock()
	if cached, ok := s.cache[key]; ok {
		s.mu.Unlock()
		return cached, nil
	}
	s.mu.Unlock()

	resp, err := s.build(ctx, req)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.cache[key] = resp
	s.mu.Unlock()
	return resp, nil
}

func (s *viewService) build(ctx context.Context, req contract.ViewRequest) (*contract.ViewResponse, error) {
	var (
		items    []*domain.Item
		segments []*domain.TransportSegment
		variant  *domain.Variant
	)
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		if items, err = repository.NewSQLiteItemRepo(tx).List(ctx); err != nil {
			return err
		}
		if segments, err = repository.NewSQLiteSegmentRepo(tx).List(ctx); err != nil {
			return err
		}
		variants := repository.NewSQLiteVariantRepo(tx)
		variant, err = variants.GetByID(ctx, schedule.EffectiveGlobalVariantID(req.GlobalVariantID))
		if errors.Is(err, repository.ErrNotFound) {
			variant = nil
			return nil
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	visible := filterView(items, req)
	lookup := schedule.BuildTransportLookup(segments)

	byDay := make(map[string][]*domain.Item)
	for _, i := range visible {
		day := domain.CoalesceStr(i.Day, domain.DayUnassigned)
		byDay[day] = append(byDay[day], i)
	}

	resp := &contract.ViewResponse{}
	for _, day := range orderedDays(byDay) {
		members := byDay[day]
		schedule.SortByOrder(members)

		ds := contract.DaySchedule{Day: day}
		if day == domain.DayUnassigned {
			// Unassigned items are parked, not scheduled; no times.
			for _, m := range members {
				ds.Items = append(ds.Items, contract.ScheduledItem{Item: *m})
			}
		} else {
			ds.Date = schedule.DateForDay(variant, day)
			for _, sc := range schedule.DeriveTimes(members, lookup, ds.Date) {
				ds.Items = append(ds.Items, contract.ScheduledItem{Item: *sc.Item, Start: sc.Start})
			}
		}
		resp.Days = append(resp.Days, ds)
	}
	return resp, nil
}

// FilteredOrdered returns the active view's items flattened in day order,
// each day by its stored order. It bypasses the derived-view cache.
func (s *viewService) FilteredOrdered(ctx context.Context, req contract.ViewRequest) ([]*domain.Item, error) {
	var items []*domain.Item
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		items, err = repository.NewSQLiteItemRepo(tx).List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	visible := filterView(items, req)
	byDay := make(map[string][]*domain.Item)
	for _, i := range visible {
		day := domain.CoalesceStr(i.Day, domain.DayUnassigned)
		byDay[day] = append(byDay[day], i)
	}

	var out []*domain.Item
	for _, day := range orderedDays(byDay) {
		members := byDay[day]
		schedule.SortByOrder(members)
		out = append(out, members...)
	}
	return out, nil
}

func filterView(items []*domain.Item, req contract.ViewRequest) []*domain.Item {
	selected := make(map[string]bool, len(req.SelectedDays))
	for _, d := range req.SelectedDays {
		selected[d] = true
	}

	var visible []*domain.Item
	for _, i := range items {
		if !schedule.InActiveView(i, req.GlobalVariantID, req.DayVariants) {
			continue
		}
		if len(selected) > 0 && !selected[domain.CoalesceStr(i.Day, domain.DayUnassigned)] {
			continue
		}
		visible = append(visible, i)
	}
	return visible
}

// orderedDays sorts day keys by day index, with unassigned last.
func orderedDays(byDay map[string][]*domain.Item) []string {
	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Slice(days, func(a, b int) bool {
		ia, errA := schedule.DayIndex(days[a])
		ib, errB := schedule.DayIndex(days[b])
		if (errA == nil) != (errB == nil) {
			return errA == nil
		}
		if errA != nil {
			return days[a] < days[b]
		}
		return ia < ib
	})
	return days
}
