// Package repo implements the data persistence layer for activity logs.
// This file provides small aggregate queries used primarily for conditional
// responses (ETag generation) in the HTTP layer.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/kimmyna/Tripspark-Log/internal/domain"
)

// LogsStats returns aggregate metadata for the log entries matching f: the
// total number of rows and the greatest CreatedAt among them.
//
// When no rows match, count is 0 and maxCreatedAt is nil.
func LogsStats(ctx context.Context, db *gorm.DB, f Filter) (count int64, maxCreatedAt *time.Time, err error) {
	q := f.apply(db.WithContext(ctx).Model(&domain.Log{}))

	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Latest created_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		CreatedAt time.Time
	}
	if err = q.Select("created_at").Order("created_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.CreatedAt, nil
}
