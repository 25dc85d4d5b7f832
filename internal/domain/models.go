// Package domain defines the persistence model for activity-log entries.
// These types are mapped with GORM and form the core data layer of the
// TripSpark log service.
package domain

import "time"

// Log represents a committed activity-log entry: a user action (visiting a
// place, leaving a rating or feedback) recorded against a place. Once
// persisted a log entry is immutable; there are no update or delete paths.
//
// Fields:
//   - ID: auto-incrementing primary key, assigned by the storage backend at
//     persist time, never reused.
//   - UserID: UUID of the acting user, stored as its string form (char(36)).
//   - UserName: display name of the user at the time of the action.
//   - PlaceName: place the action relates to; used as an equality filter.
//   - Rating: optional rating in [1,5].
//   - Feedback: optional free-text feedback.
//   - Action: action tag, e.g. "visited_place".
//   - CreatedAt: stamped by the backend when the background write commits,
//     not when the HTTP request arrived.
type Log struct {
	ID        int64     `json:"id"         gorm:"primaryKey;autoIncrement"`
	UserID    string    `json:"user_id"    gorm:"type:char(36);not null;index:idx_logs_user"`
	UserName  string    `json:"user_name"  gorm:"type:varchar(255);not null"`
	PlaceName string    `json:"place_name" gorm:"type:varchar(255);not null;index:idx_logs_place"`
	Rating    *float64  `json:"rating,omitempty"`
	Feedback  *string   `json:"feedback,omitempty" gorm:"type:text"`
	Action    string    `json:"action"     gorm:"type:varchar(64);not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index:idx_logs_created"`
}

// TableName returns the database table name for Log.
func (Log) TableName() string { return "logs" }

// LogInput carries the client-supplied fields of a log entry before
// validation and persistence. ID and CreatedAt do not exist yet; both are
// assigned by the storage backend when the deferred write runs.
type LogInput struct {
	UserID    string   `json:"user_id"`
	UserName  string   `json:"user_name"`
	PlaceName string   `json:"place_name"`
	Rating    *float64 `json:"rating,omitempty"`
	Feedback  *string  `json:"feedback,omitempty"`
	Action    string   `json:"action"`
}

// Record builds the committed Log for this input. The caller supplies the
// identity and commit timestamp; everything else is copied verbatim.
func (in LogInput) Record(id int64, createdAt time.Time) Log {
	return Log{
		ID:        id,
		UserID:    in.UserID,
		UserName:  in.UserName,
		PlaceName: in.PlaceName,
		Rating:    in.Rating,
		Feedback:  in.Feedback,
		Action:    in.Action,
		CreatedAt: createdAt,
	}
}
