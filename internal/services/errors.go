// Package services defines the business logic for accepting and querying
// activity-log entries. This file centralizes common service-level error
// values so that they can be consistently returned by service methods and
// checked by callers.
//
// These errors are intended for internal use by the service layer;
// translation into user-facing messages or HTTP status codes is performed
// at the handler layer.
package services

import "errors"

var (
	// ErrLogNotFound indicates that the requested log entry does not exist.
	ErrLogNotFound = errors.New("log not found")

	// ErrInvalidInput is returned when a submitted log entry fails schema
	// validation (missing required fields, malformed user id, rating out of
	// range). It is always wrapped with a field-level reason.
	ErrInvalidInput = errors.New("invalid log entry")

	// ErrInvalidPage is returned when list parameters fall outside the
	// allowed bounds (offset < 0 or limit outside [1,100]).
	ErrInvalidPage = errors.New("invalid pagination parameters")
)
