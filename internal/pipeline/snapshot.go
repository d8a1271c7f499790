package pipeline

import (
	"context"
	"sync"
	"time"
)

// Loader fetches the current server-side collection.
type Loader[T any] func(ctx context.Context) ([]T, error)

// Snapshot caches the latest fetched copy of a collection. The server is the system of record:
// writes never touch the snapshot directly, they invalidate it and a refresh re-reads the truth.
//
// Every Refresh takes a generation number when it starts. A response is stored only if no later
// refresh has been stored already, so a slow response can never overwrite a newer one.
// Invalidate also raises a barrier: refreshes started before it are never stored.
type Snapshot[T any] struct {
	load Loader[T]

	mu        sync.RWMutex
	items     []T
	stale     bool
	started   uint64
	stored    uint64
	barrier   uint64
	fetchedAt time.Time
}

// NewSnapshot returns an empty, stale snapshot backed by load.
func NewSnapshot[T any](load Loader[T]) *Snapshot[T] {
	return &Snapshot[T]{load: load, stale: true}
}

// Refresh fetches the collection and stores it unless a newer refresh already landed
// or the snapshot was invalidated while it was in flight. It reports whether this
// response was stored.
func (s *Snapshot[T]) Refresh(ctx context.Context) (bool, error) {
	s.mu.Lock()
	s.started++
	gen := s.started
	s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen < s.stored || gen <= s.barrier {
		return false, nil
	}
	s.items = items
	s.stored = gen
	s.stale = false
	s.fetchedAt = time.Now()
	return true, nil
}

// Invalidate marks the cached collection as out of date. Responses of refreshes
// already in flight are dropped when they arrive.
func (s *Snapshot[T]) Invalidate() {
	s.mu.Lock()
	s.stale = true
	s.barrier = s.started
	s.mu.Unlock()
}

// Items returns a copy of the cached collection.
func (s *Snapshot[T]) Items() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Get returns the cached collection, refreshing first when it is stale.
func (s *Snapshot[T]) Get(ctx context.Context) ([]T, error) {
	if s.Stale() {
		if _, err := s.Refresh(ctx); err != nil {
			return nil, err
		}
	}
	return s.Items(), nil
}

func (s *Snapshot[T]) Stale() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stale
}

// Generation is the generation of the stored response, 0 before the first refresh.
func (s *Snapshot[T]) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stored
}

func (s *Snapshot[T]) FetchedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fetchedAt
}
