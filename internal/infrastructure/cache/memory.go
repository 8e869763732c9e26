package cache

import (
	"context"
	"sync"
	"time"
)

// WindowStore counts requests per identifier over a sliding time window
type WindowStore interface {
	// Allow records a hit for identifier and reports whether it is within the limit
	Allow(ctx context.Context, identifier string) (bool, error)
}

// MemoryWindowStore is an in-process sliding-window log with expiration
type MemoryWindowStore struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	hits   map[string][]time.Time
	now    func() time.Time
}

// NewMemoryWindowStore creates a new in-memory window store.
// Stale identifiers are removed by a cleanup goroutine until ctx is cancelled.
func NewMemoryWindowStore(ctx context.Context, limit int, window time.Duration) *MemoryWindowStore {
	store := &MemoryWindowStore{
		limit:  limit,
		window: window,
		hits:   make(map[string][]time.Time),
		now:    time.Now,
	}

	// Start cleanup goroutine to remove expired identifiers
	go store.cleanupExpired(ctx)

	return store
}

// Allow records a hit unless identifier already used its quota for the window.
// Rejected requests are not recorded.
func (ms *MemoryWindowStore) Allow(_ context.Context, identifier string) (bool, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := ms.now()
	hits := prune(ms.hits[identifier], now.Add(-ms.window))
	if len(hits) >= ms.limit {
		ms.hits[identifier] = hits
		return false, nil
	}
	ms.hits[identifier] = append(hits, now)
	return true, nil
}

// prune drops hits at or before cutoff; hits are kept in ascending order
func prune(hits []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(hits) && !hits[i].After(cutoff) {
		i++
	}
	return hits[i:]
}

// cleanupExpired periodically removes identifiers with no hits in the window
func (ms *MemoryWindowStore) cleanupExpired(ctx context.Context) {
	ticker := time.NewTicker(ms.window)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			ms.mu.Lock()
			cutoff := ms.now().Add(-ms.window)
			for key, hits := range ms.hits {
				if hits = prune(hits, cutoff); len(hits) == 0 {
					delete(ms.hits, key)
				} else {
					ms.hits[key] = hits
				}
			}
			ms.mu.Unlock()
		}
	}
}
