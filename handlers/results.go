// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/election-portal/auth"
	"github.com/danielhkuo/election-portal/election"
	"github.com/danielhkuo/election-portal/middleware"
	"github.com/danielhkuo/election-portal/models"
)

type ResultsHandler struct {
	engine   *election.Engine
	sessions *auth.Resolver
}

func NewResultsHandler(engine *election.Engine, sessions *auth.Resolver) *ResultsHandler {
	return &ResultsHandler{engine: engine, sessions: sessions}
}

// GetResults handles GET /results
// Admins only; counts come from the vote ledger, not the cached counters
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.sessions.Resolve(r)
	if !ok {
		engineError(w, election.ErrUnauthorized)
		return
	}
	if !identity.IsAdmin() {
		slog.Warn("non-admin requested results", "voter_id", identity.VoterID)
		middleware.ErrorResponse(w, http.StatusForbidden, models.KindForbidden, "Admin access required")
		return
	}

	positions, err := h.engine.Tally(r.Context())
	if err != nil {
		engineError(w, err)
		return
	}

	completed, total, err := h.engine.Turnout(r.Context())
	if err != nil {
		engineError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ResultsResponse{
		Positions:       positions,
		VotersCompleted: completed,
		VotersTotal:     total,
	})
}
