// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/danielhkuo/election-portal/models"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrDuplicateVote = errors.New("vote already recorded for this position")
)

// Store is the SQL-backed candidate catalog, voter registry, and vote ledger.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// CreateVoter inserts a voter. A voter whose id or reg_number exists is left untouched.
func (s *Store) CreateVoter(ctx context.Context, v models.Voter) error {
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO voter (id, email, reg_number, level, has_voted, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT DO NOTHING
	`, v.ID, v.Email, v.RegNumber, v.Level, v.HasVoted, v.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert voter: %w", err)
	}
	return nil
}

// CreateCandidate inserts a candidate. An existing id is left untouched.
func (s *Store) CreateCandidate(ctx context.Context, c models.Candidate) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO candidate (id, full_name, position, position_key, bio, image_url, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT DO NOTHING
	`, c.ID, c.FullName, c.Position, c.PositionKey, c.Bio, c.ImageURL, c.SortOrder)
	if err != nil {
		return fmt.Errorf("failed to insert candidate: %w", err)
	}
	return nil
}

// VoterByCredentials finds a voter by email (case-insensitive) and registration number.
func (s *Store) VoterByCredentials(ctx context.Context, email, regNumber string) (models.Voter, error) {
	var v models.Voter
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, reg_number, level, has_voted, created_at
		FROM voter
		WHERE LOWER(email) = LOWER($1) AND reg_number = $2
	`, strings.TrimSpace(email), strings.TrimSpace(regNumber)).Scan(
		&v.ID, &v.Email, &v.RegNumber, &v.Level, &v.HasVoted, &v.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return models.Voter{}, ErrNotFound
	}
	if err != nil {
		return models.Voter{}, fmt.Errorf("failed to query voter: %w", err)
	}
	return v, nil
}

// Candidate looks up a single candidate by id.
func (s *Store) Candidate(ctx context.Context, id string) (models.Candidate, error) {
	var c models.Candidate
	err := s.db.QueryRowContext(ctx, `
		SELECT id, full_name, position, position_key, bio, image_url, vote_count, sort_order
		FROM candidate
		WHERE id = $1
	`, id).Scan(
		&c.ID, &c.FullName, &c.Position, &c.PositionKey, &c.Bio,
		&c.ImageURL, &c.VoteCount, &c.SortOrder,
	)
	if err == sql.ErrNoRows {
		return models.Candidate{}, ErrNotFound
	}
	if err != nil {
		return models.Candidate{}, fmt.Errorf("failed to query candidate: %w", err)
	}
	return c, nil
}

// Candidates returns the whole catalog in catalog order.
func (s *Store) Candidates(ctx context.Context) ([]models.Candidate, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, full_name, position, position_key, bio, image_url, vote_count, sort_order
		FROM candidate
		ORDER BY sort_order, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		var c models.Candidate
		if err := rows.Scan(
			&c.ID, &c.FullName, &c.Position, &c.PositionKey, &c.Bio,
			&c.ImageURL, &c.VoteCount, &c.SortOrder,
		); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read candidates: %w", err)
	}
	return candidates, nil
}

// HasVote reports whether the voter already holds a vote for the position.
func (s *Store) HasVote(ctx context.Context, voterID, positionKey string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM vote
			WHERE voter_id = $1 AND position_key = $2
		)
	`, voterID, positionKey).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check existing vote: %w", err)
	}
	return exists, nil
}

// RecordVote durably writes a vote and bumps the candidate's cached count in
// one transaction. The (voter_id, position_key) constraint rejects a second
// vote for the same position with ErrDuplicateVote.
func (s *Store) RecordVote(ctx context.Context, v models.Vote) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO vote (id, voter_id, position_key, candidate_id, voted_at)
		VALUES ($1, $2, $3, $4, $5)
	`, v.ID, v.VoterID, v.PositionKey, v.CandidateID, v.VotedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateVote
		}
		return fmt.Errorf("failed to insert vote: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE candidate SET vote_count = vote_count + 1 WHERE id = $1
	`, v.CandidateID)
	if err != nil {
		return fmt.Errorf("failed to update vote count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateVote
		}
		return fmt.Errorf("failed to commit vote: %w", err)
	}
	return nil
}

// CountVotedPositions counts the distinct positions the voter holds a vote for.
func (s *Store) CountVotedPositions(ctx context.Context, voterID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(DISTINCT position_key) FROM vote WHERE voter_id = $1
	`, voterID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count voted positions: %w", err)
	}
	return n, nil
}

// CountPositions counts the distinct positions in the catalog.
func (s *Store) CountPositions(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(DISTINCT position_key) FROM candidate
	`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count positions: %w", err)
	}
	return n, nil
}

// MarkCompleted sets the voter's completion flag. Idempotent. The flag is never
// cleared, which holds only while the catalog is fixed for the election.
func (s *Store) MarkCompleted(ctx context.Context, voterID string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE voter SET has_voted = TRUE WHERE id = $1 AND has_voted = FALSE
	`, voterID)
	if err != nil {
		return fmt.Errorf("failed to mark voter completed: %w", err)
	}
	return nil
}

// VotesByVoter returns the voter's own votes, oldest first.
func (s *Store) VotesByVoter(ctx context.Context, voterID string) ([]models.Vote, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT v.id, v.voter_id, c.position, v.position_key, v.candidate_id, v.voted_at
		FROM vote v
		JOIN candidate c ON c.id = v.candidate_id
		WHERE v.voter_id = $1
		ORDER BY v.voted_at, v.id
	`, voterID)
	if err != nil {
		return nil, fmt.Errorf("failed to query votes: %w", err)
	}
	defer rows.Close()

	votes := []models.Vote{}
	for rows.Next() {
		var v models.Vote
		if err := rows.Scan(&v.ID, &v.VoterID, &v.Position, &v.PositionKey, &v.CandidateID, &v.VotedAt); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		votes = append(votes, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read votes: %w", err)
	}
	return votes, nil
}

// VoteCounts returns ledger vote counts keyed by candidate id.
func (s *Store) VoteCounts(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT candidate_id, COUNT(*) FROM vote GROUP BY candidate_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to count votes: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var id string
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("failed to scan vote count: %w", err)
		}
		counts[id] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read vote counts: %w", err)
	}
	return counts, nil
}

// Turnout returns how many voters hold a vote in every catalog position, out
// of all registered voters. Completion is counted from the ledger, not from
// the has_voted cache. An empty catalog completes nobody.
func (s *Store) Turnout(ctx context.Context) (completed, total int, err error) {
	err = s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM (
				SELECT voter_id FROM vote
				GROUP BY voter_id
				HAVING COUNT(DISTINCT position_key) >= (SELECT COUNT(DISTINCT position_key) FROM candidate)
			) done
			WHERE EXISTS (SELECT 1 FROM candidate)),
			(SELECT COUNT(*) FROM voter)
	`).Scan(&completed, &total)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count turnout: %w", err)
	}
	return completed, total, nil
}

// isUniqueViolation recognises unique constraint failures from both drivers.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
	}
	return false
}
