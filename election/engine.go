// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/election-portal/models"
	"github.com/danielhkuo/election-portal/store"
)

// Store is what the engine needs from the catalog and the vote ledger.
// RecordVote must enforce one vote per (voter, position key) atomically and
// report a rejected duplicate as store.ErrDuplicateVote.
type Store interface {
	Candidate(ctx context.Context, id string) (models.Candidate, error)
	Candidates(ctx context.Context) ([]models.Candidate, error)
	HasVote(ctx context.Context, voterID, positionKey string) (bool, error)
	RecordVote(ctx context.Context, v models.Vote) error
	CountVotedPositions(ctx context.Context, voterID string) (int, error)
	CountPositions(ctx context.Context) (int, error)
	MarkCompleted(ctx context.Context, voterID string) error
	VotesByVoter(ctx context.Context, voterID string) ([]models.Vote, error)
	VoteCounts(ctx context.Context) (map[string]int, error)
	Turnout(ctx context.Context) (completed, total int, err error)
}

// Outcome is the result of a successful CastVote.
type Outcome struct {
	Success   bool
	Completed bool
}

// Engine admits votes, records each exactly once, and tracks completion.
type Engine struct {
	store Store
	norm  Normalizer
	now   func() time.Time
}

func NewEngine(st Store, norm Normalizer) *Engine {
	return &Engine{store: st, norm: norm, now: time.Now}
}

// PositionKey normalizes a position name the way the engine compares them.
func (e *Engine) PositionKey(position string) string {
	return e.norm.Key(position)
}

// CastVote records voter's choice of candidateID for position.
//
// Checks run in order: authenticated voter, required fields, candidate
// standing for the declared position, no earlier vote. The earlier-vote check
// only gives a fast answer; the ledger's uniqueness constraint decides, and a
// rejected insert is reported as ErrAlreadyVoted.
func (e *Engine) CastVote(ctx context.Context, voter models.Identity, position, candidateID string) (Outcome, error) {
	if voter.VoterID == "" {
		return Outcome{}, ErrUnauthorized
	}

	candidateID = strings.TrimSpace(candidateID)
	if candidateID == "" {
		return Outcome{}, validation("Candidate ID is required")
	}
	key := e.norm.Key(position)
	if strings.TrimSpace(key) == "" {
		return Outcome{}, validation("Position is required")
	}

	candidate, err := e.store.Candidate(ctx, candidateID)
	if errors.Is(err, store.ErrNotFound) {
		return Outcome{}, ErrInvalidCandidate
	}
	if err != nil {
		return Outcome{}, storage(err)
	}
	if e.norm.Key(candidate.Position) != key {
		return Outcome{}, ErrInvalidCandidate
	}

	// Votes are keyed by the catalog's stored key so the ledger always
	// lines up with the position count used for completion
	voted, err := e.store.HasVote(ctx, voter.VoterID, candidate.PositionKey)
	if err != nil {
		return Outcome{}, storage(err)
	}
	if voted {
		return Outcome{}, ErrAlreadyVoted
	}

	vote := models.Vote{
		ID:          uuid.NewString(),
		VoterID:     voter.VoterID,
		Position:    candidate.Position,
		PositionKey: candidate.PositionKey,
		CandidateID: candidate.ID,
		VotedAt:     e.now().UTC(),
	}
	if err := e.store.RecordVote(ctx, vote); err != nil {
		if errors.Is(err, store.ErrDuplicateVote) {
			slog.Info("duplicate vote rejected by ledger", "voter_id", voter.VoterID, "position", candidate.Position)
			return Outcome{}, ErrAlreadyVoted
		}
		return Outcome{}, storage(err)
	}

	slog.Info("vote cast", "voter_id", voter.VoterID, "position", candidate.Position, "vote_id", vote.ID)

	// The vote is committed; a failed completion check must not turn it into an error
	completed, err := e.Completion(ctx, voter.VoterID)
	if err != nil {
		slog.Error("failed to recompute completion", "error", err, "voter_id", voter.VoterID)
		return Outcome{Success: true}, nil
	}

	return Outcome{Success: true, Completed: completed}, nil
}

// Completion recomputes from the ledger whether the voter has voted in every
// catalog position, and sets the stored flag when so.
func (e *Engine) Completion(ctx context.Context, voterID string) (bool, error) {
	total, err := e.store.CountPositions(ctx)
	if err != nil {
		return false, storage(err)
	}
	voted, err := e.store.CountVotedPositions(ctx, voterID)
	if err != nil {
		return false, storage(err)
	}

	completed := total > 0 && voted >= total
	if completed {
		if err := e.store.MarkCompleted(ctx, voterID); err != nil {
			// The flag is a cache of the ledger; the answer stands
			slog.Warn("failed to set completion flag", "error", err, "voter_id", voterID)
		}
	}
	return completed, nil
}

// History returns the voter's own votes, oldest first.
func (e *Engine) History(ctx context.Context, voter models.Identity) ([]models.Vote, error) {
	if voter.VoterID == "" {
		return nil, ErrUnauthorized
	}
	votes, err := e.store.VotesByVoter(ctx, voter.VoterID)
	if err != nil {
		return nil, storage(err)
	}
	return votes, nil
}

// Catalog groups the candidates by position, both in catalog order.
func (e *Engine) Catalog(ctx context.Context) ([]models.PositionCandidates, error) {
	candidates, err := e.store.Candidates(ctx)
	if err != nil {
		return nil, storage(err)
	}

	var positions []models.PositionCandidates
	index := make(map[string]int)
	for _, c := range candidates {
		i, ok := index[c.PositionKey]
		if !ok {
			i = len(positions)
			index[c.PositionKey] = i
			positions = append(positions, models.PositionCandidates{Position: c.Position})
		}
		positions[i].Candidates = append(positions[i].Candidates, c)
	}
	if positions == nil {
		positions = []models.PositionCandidates{}
	}
	return positions, nil
}
