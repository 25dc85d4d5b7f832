// Package services – failure reporting side channel.
//
// Background persistence runs after the client already received its 202,
// so its failures cannot travel back over HTTP. LogReporter is the default
// FailureReporter: it emits a structured error log carrying enough of the
// input to identify the lost record.
package services

import (
	"github.com/rs/zerolog"

	"github.com/kimmyna/Tripspark-Log/internal/domain"
)

// LogReporter reports background persist failures through zerolog.
type LogReporter struct {
	Log zerolog.Logger
}

// NewLogReporter returns a reporter writing to lg.
func NewLogReporter(lg zerolog.Logger) *LogReporter { return &LogReporter{Log: lg} }

// PersistFailed logs the failed write. The record itself is gone; the log
// line is the only trace it ever existed.
func (r *LogReporter) PersistFailed(in domain.LogInput, err error) {
	r.Log.Error().
		Err(err).
		Str("user_id", in.UserID).
		Str("place_name", in.PlaceName).
		Str("action", in.Action).
		Msg("background persist failed; record dropped")
}
