// Package repo implements the data persistence layer for activity logs.
// This file defines the Store contract satisfied by both backends (GORM and
// in-memory), so that everything above the persistence layer is agnostic to
// where committed log entries actually live.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/kimmyna/Tripspark-Log/internal/domain"
)

// Store is the storage backend contract. It is the sole authority for
// identity assignment and commit timestamping: Persist assigns the next id
// and stamps CreatedAt, and both are immutable afterwards.
//
// Implementations must be safe for concurrent use; in particular two
// concurrent Persist calls must never yield the same id.
type Store interface {
	// Persist assigns identity and CreatedAt to in, stores the committed
	// record, and returns it.
	Persist(ctx context.Context, in domain.LogInput) (*domain.Log, error)

	// List returns records matching f (AND semantics), ordered by CreatedAt
	// descending with id descending as tie-break, skipping offset rows and
	// returning at most limit.
	List(ctx context.Context, f Filter, offset, limit int) ([]domain.Log, error)

	// GetByID fetches one record by id, or ErrNotFound.
	GetByID(ctx context.Context, id int64) (*domain.Log, error)

	// Stats returns the number of records and the newest CreatedAt, used by
	// the HTTP layer for conditional responses. maxCreatedAt is nil when the
	// store is empty.
	Stats(ctx context.Context, f Filter) (count int64, maxCreatedAt *int64, err error)
}

// GormStore adapts the repository free functions to the Store interface.
// It keeps callers decoupled from the concrete repo functions while reusing
// them, including inside tests that exercise the functions directly.
type GormStore struct {
	DB *gorm.DB
}

// NewGormStore returns a Store backed by the given GORM handle.
func NewGormStore(db *gorm.DB) *GormStore { return &GormStore{DB: db} }

// Persist proxies CreateLog.
func (s *GormStore) Persist(ctx context.Context, in domain.LogInput) (*domain.Log, error) {
	return CreateLog(ctx, s.DB, in)
}

// List proxies ListLogs.
func (s *GormStore) List(ctx context.Context, f Filter, offset, limit int) ([]domain.Log, error) {
	return ListLogs(ctx, s.DB, f, offset, limit)
}

// GetByID proxies GetLog.
func (s *GormStore) GetByID(ctx context.Context, id int64) (*domain.Log, error) {
	return GetLog(ctx, s.DB, id)
}

// Stats proxies LogsStats.
func (s *GormStore) Stats(ctx context.Context, f Filter) (int64, *int64, error) {
	count, maxTS, err := LogsStats(ctx, s.DB, f)
	if err != nil || maxTS == nil {
		return count, nil, err
	}
	unix := maxTS.Unix()
	return count, &unix, nil
}
