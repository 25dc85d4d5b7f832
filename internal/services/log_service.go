// Package services – LogService
//
// This file implements the read side of the API: filtered, paginated
// listing and lookup by id of committed log entries. The service is backend
// agnostic; it talks to whichever repo.Store the application was wired
// with, so the in-memory and relational backends answer identically.
package services

import (
	"context"
	"errors"

	"github.com/kimmyna/Tripspark-Log/internal/domain"
	"github.com/kimmyna/Tripspark-Log/internal/repo"
)

// Pagination bounds for list queries.
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// LogService answers read queries over committed log entries.
type LogService struct {
	// Store is the storage backend queried by all read operations.
	Store repo.Store
}

// List returns a page of log entries matching f, newest first. Offset must
// be >= 0 and limit within [1,MaxLimit]; out-of-range values are rejected
// with ErrInvalidPage, never clamped.
func (s *LogService) List(ctx context.Context, f repo.Filter, offset, limit int) ([]domain.Log, error) {
	if offset < 0 || limit < 1 || limit > MaxLimit {
		return nil, ErrInvalidPage
	}
	out, err := s.Store.List(ctx, f, offset, limit)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Log{}
	}
	return out, nil
}

// Get fetches a single log entry by id, mapping the repo sentinel to
// ErrLogNotFound for the handler layer.
func (s *LogService) Get(ctx context.Context, id int64) (*domain.Log, error) {
	l, err := s.Store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrLogNotFound
		}
		return nil, err
	}
	return l, nil
}

// Stats exposes the backend aggregate used for conditional list responses.
func (s *LogService) Stats(ctx context.Context, f repo.Filter) (int64, *int64, error) {
	return s.Store.Stats(ctx, f)
}
