package service

import (
	"sync"

	"wayplan/internal/domain"
)

// BucketNotifier is the explicit subscribe/notify seam between the
// mutation engine and readers. Mutations publish the bucket keys they
// changed; subscribers (view caches, UIs) invalidate or refresh. There is
// no hidden shared store behind it.
type BucketNotifier struct {
	mu   sync.Mutex
	subs []func(changed []domain.BucketKey)
}

func NewBucketNotifier() *BucketNotifier {
	return &BucketNotifier{}
}

// Subscribe registers fn for every future publish. Subscribers must not
// block; they are invoked synchronously in publish order.
func (n *BucketNotifier) Subscribe(fn func(changed []domain.BucketKey)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.subs = append(n.subs, fn)
}

// Publish fans the changed bucket keys out to all subscribers.
func (n *BucketNotifier) Publish(changed ...domain.BucketKey) {
	if len(changed) == 0 {
		return
	}
	n.mu.Lock()
	subs := make([]func([]domain.BucketKey), len(n.subs))
	copy(subs, n.subs)
	n.mu.Unlock()

	for _, fn := range subs {
		fn(changed)
	}
}
