// Package handlers defines HTTP-layer error codes used across all API
// endpoints.
//
// These symbolic constants are mapped to HTTP responses via the fail()
// helper and give clients a stable, machine-readable error taxonomy that
// supplements the human-readable message. Codes are lowercase snake_case;
// generic codes mirror common HTTP status semantics.
//
// Example response:
//
//	{
//	  "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6",
//	  "code": "validation_failed",
//	  "message": "rating must be between 1 and 5"
//	}
package handlers

const (
	ErrCodeValidation       = "validation_failed"
	ErrCodeNotFound         = "not_found"
	ErrCodeMethodNotAllowed = "method_not_allowed"
	ErrCodeInternal         = "internal_error"

	// Domain-specific:
	ErrCodeUnavailable = "storage_unavailable"
)
