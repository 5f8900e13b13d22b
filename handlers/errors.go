// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/election-portal/election"
	"github.com/danielhkuo/election-portal/metrics"
	"github.com/danielhkuo/election-portal/middleware"
	"github.com/danielhkuo/election-portal/models"
)

// statusFor maps an engine error kind to its HTTP status.
func statusFor(kind string) int {
	switch kind {
	case models.KindUnauthorized:
		return http.StatusUnauthorized
	case models.KindForbidden:
		return http.StatusForbidden
	case models.KindInvalidCandidate, models.KindAlreadyVoted, models.KindValidation, models.KindBadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// engineError writes err as a JSON error. Storage causes are logged, never sent.
func engineError(w http.ResponseWriter, err error, attrs ...any) {
	kind := election.KindOf(err)
	status := statusFor(kind)
	if status == http.StatusInternalServerError {
		slog.Error("election operation failed", append([]any{"error", err}, attrs...)...)
	}
	middleware.ErrorResponse(w, status, kind, election.MessageOf(err))
}

// voteOutcome is the metrics label for a CastVote result.
func voteOutcome(err error) string {
	if err == nil {
		return metrics.OutcomeAccepted
	}
	switch election.KindOf(err) {
	case models.KindAlreadyVoted:
		return metrics.OutcomeAlreadyVoted
	case models.KindInvalidCandidate:
		return metrics.OutcomeInvalidCandidate
	case models.KindStorage:
		return metrics.OutcomeError
	default:
		return metrics.OutcomeRejected
	}
}
