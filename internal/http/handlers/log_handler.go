// Log HTTP handlers.
//
// This file exposes the REST endpoints for activity-log entries:
//   - POST /logs       (accept an entry for asynchronous persistence)
//   - GET  /logs       (list entries, filtered and paginated, ETag support)
//   - GET  /logs/{id}  (fetch a single entry)
//   - GET  /           (service status)
//
// Handlers are transport-thin: they parse and normalize inputs, delegate
// to application services, and translate service errors into HTTP results.
// A successful POST only promises the entry was accepted for processing;
// the durable write happens after the 202 response, so entries become
// queryable eventually, not immediately.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kimmyna/Tripspark-Log/internal/domain"
	"github.com/kimmyna/Tripspark-Log/internal/repo"
	"github.com/kimmyna/Tripspark-Log/internal/services"
	"github.com/kimmyna/Tripspark-Log/internal/utils"
)

//
// Service contracts
//

// Ingestor accepts validated log entries for deferred persistence.
type Ingestor interface {
	// Submit validates in and schedules exactly one background persist.
	Submit(in domain.LogInput) error
}

// Querier answers read queries over committed log entries.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type Querier interface {
	// List returns a page of entries matching f, newest first.
	List(ctx context.Context, f repo.Filter, offset, limit int) ([]domain.Log, error)
	// Get fetches one entry by id.
	Get(ctx context.Context, id int64) (*domain.Log, error)
	// Stats returns the matching count and newest commit time (unix seconds).
	Stats(ctx context.Context, f repo.Filter) (int64, *int64, error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for log entries. It depends on
// abstract service interfaces to keep transport concerns separate from
// business logic.
type Handlers struct {
	ingest Ingestor
	query  Querier

	// Service metadata reported by the status endpoint.
	ServiceName string
	Version     string
	Backend     string
}

// New constructs a Handlers instance bound to the given services.
func New(ingest Ingestor, query Querier) *Handlers {
	return &Handlers{ingest: ingest, query: query}
}

//
// DTOs
//

// AcceptedResponse is the JSON body of a successful POST /logs.
type AcceptedResponse struct {
	Status string `json:"status"`
}

// StatusResponse is the JSON body of the root status endpoint.
type StatusResponse struct {
	Service string `json:"service"`
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Backend string `json:"backend,omitempty"`
}

//
// Handlers
//

// CreateLog accepts a log entry and schedules its persistence.
//
// The entry is validated synchronously; on success the response is
// 202 Accepted and the durable write happens in the background. Validation
// failures return 422 and schedule nothing.
func (h *Handlers) CreateLog(c *gin.Context) {
	var in domain.LogInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusUnprocessableEntity, ErrCodeValidation, "invalid JSON body")
		return
	}

	if err := h.ingest.Submit(in); err != nil {
		if isValidation(err) {
			fail(c, http.StatusUnprocessableEntity, ErrCodeValidation, err.Error())
			return
		}
		// The executor refused the task (e.g. during shutdown).
		fail(c, http.StatusServiceUnavailable, ErrCodeUnavailable, "unable to accept log entry")
		return
	}

	ok(c, http.StatusAccepted, AcceptedResponse{Status: "accepted"})
}

// ListLogs returns committed log entries, optionally filtered by user_id
// and/or place_name, paginated with offset/limit (default 10, max 100).
// Out-of-range parameters are rejected with 422, never clamped. A weak
// ETag derived from the matching count and newest commit time supports
// If-None-Match / 304.
func (h *Handlers) ListLogs(c *gin.Context) {
	ctx := c.Request.Context()

	f := repo.Filter{
		UserID:    c.Query("user_id"),
		PlaceName: c.Query("place_name"),
	}
	if f.UserID != "" {
		if _, err := uuid.Parse(f.UserID); err != nil {
			fail(c, http.StatusUnprocessableEntity, ErrCodeValidation, "user_id must be a valid UUID")
			return
		}
	}

	offset, err := utils.ParseIntDefault(c.Query("offset"), 0)
	if err != nil {
		fail(c, http.StatusUnprocessableEntity, ErrCodeValidation, "offset must be an integer")
		return
	}
	limit, err := utils.ParseIntDefault(c.Query("limit"), services.DefaultLimit)
	if err != nil {
		fail(c, http.StatusUnprocessableEntity, ErrCodeValidation, "limit must be an integer")
		return
	}

	// Bounds are checked before the conditional-request path so an
	// out-of-range page never short-circuits into a 304.
	if offset < 0 || limit < 1 || limit > services.MaxLimit {
		fail(c, http.StatusUnprocessableEntity, ErrCodeValidation,
			fmt.Sprintf("offset must be >= 0 and limit between 1 and %d", services.MaxLimit))
		return
	}

	// ETag pre-check (best effort). The header is only emitted on the
	// 200/304 paths.
	var etag string
	if count, maxTS, err := h.query.Stats(ctx, f); err == nil {
		var ts int64
		if maxTS != nil {
			ts = *maxTS
		}
		etag = fmt.Sprintf(`W/"logs:%s:%s:%d:%d"`, f.UserID, f.PlaceName, count, ts)
		if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
			c.Header("ETag", etag)
			c.Status(http.StatusNotModified)
			return
		}
	}

	items, err := h.query.List(ctx, f, offset, limit)
	if err != nil {
		if isValidation(err) {
			fail(c, http.StatusUnprocessableEntity, ErrCodeValidation,
				fmt.Sprintf("offset must be >= 0 and limit between 1 and %d", services.MaxLimit))
			return
		}
		fail(c, http.StatusServiceUnavailable, ErrCodeUnavailable, err.Error())
		return
	}

	if etag != "" {
		c.Header("ETag", etag)
	}
	ok(c, http.StatusOK, items)
}

// GetLog fetches a single log entry by its numeric id.
func (h *Handlers) GetLog(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		fail(c, http.StatusUnprocessableEntity, ErrCodeValidation, "id must be an integer")
		return
	}

	l, err := h.query.Get(c.Request.Context(), id)
	if err != nil {
		switch err {
		case services.ErrLogNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "log not found")
		default:
			fail(c, http.StatusServiceUnavailable, ErrCodeUnavailable, err.Error())
		}
		return
	}

	ok(c, http.StatusOK, l)
}

// Status reports basic service metadata, used as the root endpoint.
func (h *Handlers) Status(c *gin.Context) {
	ok(c, http.StatusOK, StatusResponse{
		Service: h.ServiceName,
		Status:  "ok",
		Version: h.Version,
		Backend: h.Backend,
	})
}

// isValidation reports whether err belongs to the validation family of
// service errors.
func isValidation(err error) bool {
	return errors.Is(err, services.ErrInvalidInput) || errors.Is(err, services.ErrInvalidPage)
}
