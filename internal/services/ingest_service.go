// Package services – IngestService
//
// This file implements the asynchronous ingestion path: a submitted log
// entry is validated synchronously, then handed to a task scheduler for
// deferred persistence so the HTTP response never waits on storage I/O.
// The caller only learns that the entry was accepted; durability happens
// on the scheduler's execution context. A failed background persist is
// terminal for that record (no retry) and is pushed to the failure
// reporter instead of any client.
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kimmyna/Tripspark-Log/internal/domain"
	"github.com/kimmyna/Tripspark-Log/internal/repo"
)

// Rating bounds for submitted entries.
const (
	MinRating = 1.0
	MaxRating = 5.0
)

var (
	// ingestAccepted counts entries that passed validation and were scheduled.
	ingestAccepted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ingest_accepted_total",
		Help: "Log entries accepted and scheduled for background persistence.",
	})

	// ingestCommitted counts entries whose deferred persist completed.
	ingestCommitted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ingest_committed_total",
		Help: "Log entries durably persisted by the background worker.",
	})

	// ingestFailures counts deferred persists that errored. These never
	// surface to a client; the response was already sent.
	ingestFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ingest_persist_failures_total",
		Help: "Background persistence attempts that failed.",
	})
)

func init() {
	prometheus.MustRegister(ingestAccepted, ingestCommitted, ingestFailures)
}

// Scheduler runs a task on a separate execution context after Submit has
// returned. Implementations must attempt each scheduled task at least once
// and provide no ordering guarantee between tasks.
type Scheduler interface {
	// Schedule enqueues task for execution. It returns an error only when
	// the task could not be accepted at all (e.g. the executor is shutting
	// down); it never waits for the task to run.
	Schedule(task func()) error
}

// FailureReporter is the side channel for background persistence failures.
// Implementations must not panic; they run on the worker goroutine.
type FailureReporter interface {
	PersistFailed(in domain.LogInput, err error)
}

// IngestService accepts log entries and schedules their persistence.
type IngestService struct {
	// Store commits validated entries; it assigns id and CreatedAt.
	Store repo.Store
	// Scheduler executes the deferred persist.
	Scheduler Scheduler
	// Reporter receives background persist failures. Required: failures are
	// invisible to clients and must not be silently swallowed.
	Reporter FailureReporter
	// PersistTimeout bounds each background write. Zero means no deadline.
	PersistTimeout time.Duration
}

// Submit validates in and schedules exactly one deferred persistence task.
//
// Validation failures are returned immediately (wrapped ErrInvalidInput)
// and nothing is scheduled. On success Submit returns before the actual
// write happens; the entry becomes visible to reads only once the
// background task commits it.
func (s *IngestService) Submit(in domain.LogInput) error {
	if err := ValidateInput(in); err != nil {
		return err
	}

	err := s.Scheduler.Schedule(func() { s.persist(in) })
	if err != nil {
		return err
	}
	ingestAccepted.Inc()
	return nil
}

// persist runs on the scheduler's goroutine, after the 202 response.
func (s *IngestService) persist(in domain.LogInput) {
	ctx := context.Background()
	if s.PersistTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.PersistTimeout)
		defer cancel()
	}

	if _, err := s.Store.Persist(ctx, in); err != nil {
		ingestFailures.Inc()
		if s.Reporter != nil {
			s.Reporter.PersistFailed(in, err)
		}
		return
	}
	ingestCommitted.Inc()
}

// ValidateInput checks in against the log entry schema: required fields
// present, user id a well-formed UUID, rating within [MinRating,MaxRating]
// when given. The first violation is returned, wrapped in ErrInvalidInput.
func ValidateInput(in domain.LogInput) error {
	if strings.TrimSpace(in.UserID) == "" {
		return fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}
	if _, err := uuid.Parse(in.UserID); err != nil {
		return fmt.Errorf("%w: user_id must be a valid UUID", ErrInvalidInput)
	}
	if strings.TrimSpace(in.UserName) == "" {
		return fmt.Errorf("%w: user_name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.PlaceName) == "" {
		return fmt.Errorf("%w: place_name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Action) == "" {
		return fmt.Errorf("%w: action is required", ErrInvalidInput)
	}
	if in.Rating != nil && (*in.Rating < MinRating || *in.Rating > MaxRating) {
		return fmt.Errorf("%w: rating must be between %v and %v", ErrInvalidInput, MinRating, MaxRating)
	}
	return nil
}
