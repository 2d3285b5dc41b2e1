package service

import (
	"context"
	"fmt"
	"time"

	"wayplan/internal/contract"
	"wayplan/internal/domain"
	"wayplan/internal/repository"
	"wayplan/internal/schedule"
)

func findItem(items []*domain.Item, id int64) *domain.Item {
	for _, i := range items {
		if i.ID == id {
			return i
		}
	}
	return nil
}

// groupMembers returns the items sharing groupID, in order.
func groupMembers(items []*domain.Item, groupID string) []*domain.Item {
	var members []*domain.Item
	for _, i := range items {
		if i.GroupID == groupID {
			members = append(members, i)
		}
	}
	schedule.SortByOrder(members)
	return members
}

func maxOrder(members []*domain.Item) int64 {
	var max int64 = -1
	for _, m := range members {
		if m.Order > max {
			max = m.Order
		}
	}
	return max
}

// snapshotBuckets copies the current contents of the given buckets,
// deduplicating keys. Taken before and after a mutation, the pair feeds
// an undo facility.
func snapshotBuckets(all []*domain.Item, keys ...domain.BucketKey) []contract.BucketSnapshot {
	var snapshots []contract.BucketSnapshot
	seen := make(map[domain.BucketKey]bool, len(keys))
	for _, key := range keys {
		if seen[key] {
			continue
		}
		seen[key] = true
		members := schedule.Bucket(all, key)
		items := make([]domain.Item, len(members))
		for i, m := range members {
			items[i] = *m
		}
		snapshots = append(snapshots, contract.BucketSnapshot{Key: key, Items: items})
	}
	return snapshots
}

func bucketKeysOf(items ...*domain.Item) []domain.BucketKey {
	keys := make([]domain.BucketKey, 0, len(items))
	for _, i := range items {
		keys = append(keys, schedule.KeyFor(i))
	}
	return dedupeKeys(keys)
}

func dedupeKeys(keys []domain.BucketKey) []domain.BucketKey {
	var out []domain.BucketKey
	seen := make(map[domain.BucketKey]bool, len(keys))
	for _, k := range keys {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}

// renumberSpliced assigns order 0..n-1 in slice order, persisting only the
// rows whose order actually changes.
func renumberSpliced(ctx context.Context, repo repository.ItemRepo, members []*domain.Item, now time.Time) error {
	for idx, m := range members {
		if m.Order == int64(idx) {
			continue
		}
		m.Order = int64(idx)
		m.UpdatedAt = now
		if err := repo.Update(ctx, m); err != nil {
			return fmt.Errorf("renumbering bucket: %w", err)
		}
	}
	return nil
}

// renumberBucket renumbers one bucket of the full item set densely.
// Persisted order values are never trusted as-is: sparse or duplicate
// sequences left by an interrupted run are healed here.
func renumberBucket(ctx context.Context, repo repository.ItemRepo, all []*domain.Item, key domain.BucketKey, now time.Time) error {
	return renumberSpliced(ctx, repo, schedule.Bucket(all, key), now)
}
