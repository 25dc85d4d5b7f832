// Package repo implements the data persistence layer for activity logs,
// backed by GORM. This file provides repository functions for the Log model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations. They
// follow the "thin repository" approach: no business logic, only persistence
// and query composition.
//
// Error semantics:
//   - When a log entry is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/kimmyna/Tripspark-Log/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for consistency across the service
// layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// Filter restricts list queries. Empty fields are ignored; set fields are
// combined with AND semantics.
type Filter struct {
	UserID    string
	PlaceName string
}

// apply composes the WHERE clauses for f onto q.
func (f Filter) apply(q *gorm.DB) *gorm.DB {
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.PlaceName != "" {
		q = q.Where("place_name = ?", f.PlaceName)
	}
	return q
}

// CreateLog inserts a committed log row built from in. The database assigns
// the auto-incrementing id; CreatedAt is stamped here, at persist time, in
// UTC. On success the fully-formed row is returned.
func CreateLog(ctx context.Context, db *gorm.DB, in domain.LogInput) (*domain.Log, error) {
	l := in.Record(0, time.Now().UTC())
	if err := db.WithContext(ctx).Create(&l).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

// ListLogs returns a page of log entries matching f, newest first with id
// descending as the tie-break, skipping offset rows and returning at most
// limit. Filtering, ordering and pagination are pushed down to the query
// engine.
func ListLogs(ctx context.Context, db *gorm.DB, f Filter, offset, limit int) ([]domain.Log, error) {
	var out []domain.Log
	err := f.apply(db.WithContext(ctx)).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// CountLogs returns the total number of log entries matching f.
func CountLogs(ctx context.Context, db *gorm.DB, f Filter) (int64, error) {
	var total int64
	err := f.apply(db.WithContext(ctx).Model(&domain.Log{})).Count(&total).Error
	return total, err
}

// GetLog fetches a single log entry by its numeric id. If the record does
// not exist, it returns ErrNotFound.
func GetLog(ctx context.Context, db *gorm.DB, id int64) (*domain.Log, error) {
	var l domain.Log
	if err := db.WithContext(ctx).Where("id = ?", id).First(&l).Error; err != nil {
		return nil, err
	}
	return &l, nil
}
