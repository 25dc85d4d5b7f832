// Package repo implements the data persistence layer for activity logs.
// This file provides the in-memory Store used for local development and
// tests: a map guarded by a mutex plus a monotonic id counter. Filtering,
// sorting and pagination are O(n) per call, which is fine at this scale;
// the durable twin (GormStore) pushes the same semantics down to SQL.
package repo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/kimmyna/Tripspark-Log/internal/domain"
)

// MemoryStore keeps committed log entries in process memory. The zero value
// is not usable; construct with NewMemoryStore. All methods are safe for
// concurrent use; id assignment is serialized by the mutex so concurrent
// Persist calls always receive distinct, increasing ids.
type MemoryStore struct {
	mu     sync.RWMutex
	logs   map[int64]domain.Log
	nextID int64

	// now stamps CreatedAt; overridable in tests.
	now func() time.Time
}

// NewMemoryStore returns an empty in-memory store. Ids start at 1 to match
// SQLite's autoincrement behavior, which keeps the two backends observably
// identical.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		logs:   make(map[int64]domain.Log),
		nextID: 1,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Persist assigns the next id, stamps CreatedAt, and stores the record.
func (s *MemoryStore) Persist(ctx context.Context, in domain.LogInput) (*domain.Log, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	l := in.Record(s.nextID, s.now())
	s.nextID++
	s.logs[l.ID] = l
	return &l, nil
}

// List filters, sorts and paginates a snapshot of the stored records.
func (s *MemoryStore) List(ctx context.Context, f Filter, offset, limit int) ([]domain.Log, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	matched := s.snapshot(f)

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	if offset >= len(matched) {
		return []domain.Log{}, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

// GetByID fetches one record, or ErrNotFound.
func (s *MemoryStore) GetByID(ctx context.Context, id int64) (*domain.Log, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.logs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &l, nil
}

// Stats reports the matching count and the newest CreatedAt (unix seconds).
func (s *MemoryStore) Stats(ctx context.Context, f Filter) (int64, *int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, nil, err
	}
	matched := s.snapshot(f)
	if len(matched) == 0 {
		return 0, nil, nil
	}
	max := matched[0].CreatedAt
	for _, l := range matched[1:] {
		if l.CreatedAt.After(max) {
			max = l.CreatedAt
		}
	}
	unix := max.Unix()
	return int64(len(matched)), &unix, nil
}

// snapshot copies the records matching f out of the map under the read lock.
func (s *MemoryStore) snapshot(f Filter) []domain.Log {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Log, 0, len(s.logs))
	for _, l := range s.logs {
		if f.UserID != "" && l.UserID != f.UserID {
			continue
		}
		if f.PlaceName != "" && l.PlaceName != f.PlaceName {
			continue
		}
		out = append(out, l)
	}
	return out
}
