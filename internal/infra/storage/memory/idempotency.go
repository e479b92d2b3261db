package memory

import (
	"context"
	"sync"
	"time"

	"stayquote/internal/app/middleware"
)

// IdempotencyStore stores results in memory. Records older than the TTL are
// dropped on read; a zero TTL keeps them forever.
type IdempotencyStore struct {
	mu    sync.RWMutex
	ttl   time.Duration
	items map[string]middleware.IdempotencyRecord
}

func NewIdempotencyStore(ttl time.Duration) *IdempotencyStore {
	return &IdempotencyStore{
		ttl:   ttl,
		items: make(map[string]middleware.IdempotencyRecord),
	}
}

func (s *IdempotencyStore) Get(ctx context.Context, key string) (middleware.IdempotencyRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.items[key]
	if !ok {
		return middleware.IdempotencyRecord{}, false, nil
	}
	if s.ttl > 0 && time.Since(rec.OccurredAt) > s.ttl {
		delete(s.items, key)
		return middleware.IdempotencyRecord{}, false, nil
	}
	return rec, true, nil
}

func (s *IdempotencyStore) Save(ctx context.Context, rec middleware.IdempotencyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[rec.Key] = rec
	return nil
}

var _ middleware.IdempotencyStore = (*IdempotencyStore)(nil)
