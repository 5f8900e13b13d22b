// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/election-portal/auth"
	"github.com/danielhkuo/election-portal/election"
	"github.com/danielhkuo/election-portal/metrics"
	"github.com/danielhkuo/election-portal/middleware"
	"github.com/danielhkuo/election-portal/models"
)

type VotingHandler struct {
	engine   *election.Engine
	sessions *auth.Resolver
}

func NewVotingHandler(engine *election.Engine, sessions *auth.Resolver) *VotingHandler {
	return &VotingHandler{engine: engine, sessions: sessions}
}

// CastVote handles POST /vote
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.sessions.Resolve(r)
	if !ok {
		metrics.Ballot.VotesTotal.With("outcome", metrics.OutcomeRejected).Add(1)
		engineError(w, election.ErrUnauthorized)
		return
	}

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		metrics.Ballot.VotesTotal.With("outcome", metrics.OutcomeRejected).Add(1)
		middleware.ErrorResponse(w, http.StatusBadRequest, models.KindBadRequest, "Invalid JSON")
		return
	}

	outcome, err := h.engine.CastVote(r.Context(), identity, req.Position, req.CandidateID)
	metrics.Ballot.VotesTotal.With("outcome", voteOutcome(err)).Add(1)
	if err != nil {
		engineError(w, err, "voter_id", identity.VoterID, "candidate_id", req.CandidateID)
		return
	}
	if outcome.Completed {
		metrics.Ballot.VotersCompleted.Add(1)
	}

	middleware.JSONResponse(w, http.StatusOK, models.CastVoteResponse{
		Success:            outcome.Success,
		HasCompletedVoting: outcome.Completed,
	})
}

// MyVotes handles GET /votes
// Only the caller's own votes are ever returned
func (h *VotingHandler) MyVotes(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.sessions.Resolve(r)
	if !ok {
		engineError(w, election.ErrUnauthorized)
		return
	}

	votes, err := h.engine.History(r.Context(), identity)
	if err != nil {
		engineError(w, err, "voter_id", identity.VoterID)
		return
	}

	entries := make([]models.VoteHistoryEntry, 0, len(votes))
	for _, v := range votes {
		entries = append(entries, models.VoteHistoryEntry{
			Position:    v.Position,
			CandidateID: v.CandidateID,
			VotedAt:     v.VotedAt,
		})
	}

	middleware.JSONResponse(w, http.StatusOK, models.VoteHistoryResponse{Votes: entries})
}

// Candidates handles GET /candidates
func (h *VotingHandler) Candidates(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.sessions.Resolve(r); !ok {
		engineError(w, election.ErrUnauthorized)
		return
	}

	positions, err := h.engine.Catalog(r.Context())
	if err != nil {
		engineError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.CandidatesResponse{Positions: positions})
}
