// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/election-portal/election"
	"github.com/danielhkuo/election-portal/models"
	"github.com/danielhkuo/election-portal/store"
	"github.com/danielhkuo/election-portal/testutil"
)

func TestRecordVoteUniqueness(t *testing.T) {
	db := testutil.SetupTestDB(t)
	st := store.New(db)
	ctx := context.Background()

	voter := testutil.CreateTestVoter(t, db, "SPE-1", models.LevelVoter)
	a := testutil.AddTestCandidate(t, db, "A", "President")
	b := testutil.AddTestCandidate(t, db, "B", "President")

	vote := models.Vote{ID: "v1", VoterID: voter.ID, PositionKey: "president", CandidateID: a, VotedAt: time.Now().UTC()}
	if err := st.RecordVote(ctx, vote); err != nil {
		t.Fatalf("RecordVote() error = %v", err)
	}

	dup := models.Vote{ID: "v2", VoterID: voter.ID, PositionKey: "president", CandidateID: b, VotedAt: time.Now().UTC()}
	if err := st.RecordVote(ctx, dup); !errors.Is(err, store.ErrDuplicateVote) {
		t.Fatalf("RecordVote() duplicate error = %v, want ErrDuplicateVote", err)
	}

	counts, err := st.VoteCounts(ctx)
	if err != nil {
		t.Fatalf("VoteCounts() error = %v", err)
	}
	if counts[a] != 1 || counts[b] != 0 {
		t.Errorf("VoteCounts() = %v", counts)
	}

	// cached count follows the ledger and rolls back with it
	c, _ := st.Candidate(ctx, b)
	if c.VoteCount != 0 {
		t.Errorf("B vote_count = %d after rejected vote", c.VoteCount)
	}
	c, _ = st.Candidate(ctx, a)
	if c.VoteCount != 1 {
		t.Errorf("A vote_count = %d, want 1", c.VoteCount)
	}
}

func TestRecordVoteUnknownVoter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	st := store.New(db)
	a := testutil.AddTestCandidate(t, db, "A", "President")

	err := st.RecordVote(context.Background(), models.Vote{
		ID: "v1", VoterID: "ghost", PositionKey: "president", CandidateID: a, VotedAt: time.Now().UTC(),
	})
	if err == nil || errors.Is(err, store.ErrDuplicateVote) {
		t.Errorf("RecordVote() for unknown voter error = %v, want foreign key failure", err)
	}
}

func TestCandidateNotFound(t *testing.T) {
	st := store.New(testutil.SetupTestDB(t))
	if _, err := st.Candidate(context.Background(), "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Candidate() error = %v, want ErrNotFound", err)
	}
}

func TestVoterByCredentials(t *testing.T) {
	db := testutil.SetupTestDB(t)
	st := store.New(db)
	voter := testutil.CreateTestVoter(t, db, "SPE-42", models.LevelAdmin)

	tests := []struct {
		name    string
		email   string
		reg     string
		wantErr error
	}{
		{"exact", voter.Email, "SPE-42", nil},
		{"email case and space", "  " + strings.ToUpper(voter.Email), " SPE-42 ", nil},
		{"wrong reg number", voter.Email, "SPE-43", store.ErrNotFound},
		{"wrong email", "nobody@example.com", "SPE-42", store.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := st.VoterByCredentials(context.Background(), tt.email, tt.reg)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if err == nil && (got.ID != voter.ID || got.Level != models.LevelAdmin) {
				t.Errorf("got %+v", got)
			}
		})
	}
}

func TestCountsAndTurnout(t *testing.T) {
	db := testutil.SetupTestDB(t)
	st := store.New(db)
	ctx := context.Background()

	v1 := testutil.CreateTestVoter(t, db, "SPE-1", models.LevelVoter)
	testutil.CreateTestVoter(t, db, "SPE-2", models.LevelVoter)
	a := testutil.AddTestCandidate(t, db, "A", "President")
	testutil.AddTestCandidate(t, db, "B", "President")
	c := testutil.AddTestCandidate(t, db, "C", "Treasurer")

	positions, err := st.CountPositions(ctx)
	if err != nil || positions != 2 {
		t.Fatalf("CountPositions() = %d, %v", positions, err)
	}

	st.RecordVote(ctx, models.Vote{ID: "v1", VoterID: v1.ID, PositionKey: "president", CandidateID: a, VotedAt: time.Now().UTC()})
	voted, err := st.CountVotedPositions(ctx, v1.ID)
	if err != nil || voted != 1 {
		t.Fatalf("CountVotedPositions() = %d, %v", voted, err)
	}

	if err := st.MarkCompleted(ctx, v1.ID); err != nil {
		t.Fatal(err)
	}
	// idempotent
	if err := st.MarkCompleted(ctx, v1.ID); err != nil {
		t.Fatal(err)
	}

	// The flag alone does not count: one of two positions is still open
	completed, total, err := st.Turnout(ctx)
	if err != nil || completed != 0 || total != 2 {
		t.Errorf("Turnout() with partial ballot = %d/%d, %v", completed, total, err)
	}

	st.RecordVote(ctx, models.Vote{ID: "v2", VoterID: v1.ID, PositionKey: "treasurer", CandidateID: c, VotedAt: time.Now().UTC()})
	// A lost flag update does not hide a full ballot
	if _, err := db.Exec("UPDATE voter SET has_voted = FALSE WHERE id = $1", v1.ID); err != nil {
		t.Fatal(err)
	}
	completed, total, err = st.Turnout(ctx)
	if err != nil || completed != 1 || total != 2 {
		t.Errorf("Turnout() = %d/%d, %v, want 1/2", completed, total, err)
	}

	votes, err := st.VotesByVoter(ctx, v1.ID)
	if err != nil || len(votes) != 2 || votes[0].Position != "President" {
		t.Errorf("VotesByVoter() = %+v, %v", votes, err)
	}
}

const seedJSON = `{
	"voters": [
		{"id": "voter-1", "email": "ada@example.com", "reg_number": "SPE-1"},
		{"email": "root@example.com", "reg_number": "SPE-ADMIN", "level": 1}
	],
	"candidates": [
		{"id": "cand-1", "full_name": "Alice", "position": "President", "bio": "Runs things"},
		{"id": "cand-2", "full_name": "Bob", "position": " president"},
		{"id": "cand-3", "full_name": "Carol", "position": "Treasurer", "image_url": "https://example.com/c.png"}
	]
}`

func TestImportSeed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	st := store.New(db)
	ctx := context.Background()

	seed, err := store.ReadSeed(strings.NewReader(seedJSON))
	if err != nil {
		t.Fatalf("ReadSeed() error = %v", err)
	}
	if err := st.Import(ctx, seed, election.DefaultNormalizer.Key); err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	// Importing again leaves existing rows alone, including the admin
	// whose id is generated fresh each time
	if err := st.Import(ctx, seed, election.DefaultNormalizer.Key); err != nil {
		t.Fatalf("second Import() error = %v", err)
	}
	_, voters, _ := st.Turnout(ctx)
	if voters != 2 {
		t.Errorf("voters after re-import = %d, want 2", voters)
	}

	positions, _ := st.CountPositions(ctx)
	if positions != 2 {
		t.Errorf("CountPositions() = %d, want 2", positions)
	}

	candidates, _ := st.Candidates(ctx)
	if len(candidates) != 3 || candidates[0].ID != "cand-1" || candidates[2].ID != "cand-3" {
		t.Fatalf("Candidates() order = %+v", candidates)
	}
	if candidates[1].PositionKey != "president" {
		t.Errorf("cand-2 key = %q", candidates[1].PositionKey)
	}
	if candidates[2].ImageURL == nil || *candidates[2].ImageURL != "https://example.com/c.png" {
		t.Error("image_url not stored")
	}

	admin, err := st.VoterByCredentials(ctx, "root@example.com", "SPE-ADMIN")
	if err != nil || admin.Level != models.LevelAdmin {
		t.Errorf("admin voter = %+v, %v", admin, err)
	}
}

func TestImportSeedKeyMatchesStoredPosition(t *testing.T) {
	st := store.New(testutil.SetupTestDB(t))
	ctx := context.Background()

	seed, err := store.ReadSeed(strings.NewReader(`{"candidates": [{"id": "c1", "full_name": "Ann", "position": "  Vice President "}]}`))
	if err != nil {
		t.Fatalf("ReadSeed() error = %v", err)
	}
	exact := election.Normalizer{FoldCase: true}
	if err := st.Import(ctx, seed, exact.Key); err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	c, err := st.Candidate(ctx, "c1")
	if err != nil {
		t.Fatal(err)
	}
	if c.Position != "Vice President" {
		t.Errorf("Position = %q, want trimmed", c.Position)
	}
	if c.PositionKey != exact.Key(c.Position) {
		t.Errorf("PositionKey = %q, want %q", c.PositionKey, exact.Key(c.Position))
	}
}

func TestReadSeedValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "nope"},
		{"unknown field", `{"voters": [], "ballots": []}`},
		{"voter without reg number", `{"voters": [{"email": "a@example.com"}]}`},
		{"candidate without position", `{"candidates": [{"full_name": "A"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := store.ReadSeed(strings.NewReader(tt.body)); err == nil {
				t.Error("expected error")
			}
		})
	}
}
