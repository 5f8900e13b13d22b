// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/election-portal/auth"
	"github.com/danielhkuo/election-portal/captcha"
	"github.com/danielhkuo/election-portal/cliparse"
	"github.com/danielhkuo/election-portal/election"
	"github.com/danielhkuo/election-portal/models"
	"github.com/danielhkuo/election-portal/store"
	"github.com/danielhkuo/election-portal/testutil"
)

type stubVerifier struct {
	err error
}

func (s stubVerifier) Verify(context.Context, string, string) error { return s.err }

// testEnv is a wired set of handlers over a fresh database
type testEnv struct {
	db       *sql.DB
	cfg      cliparse.Config
	tokens   *auth.TokenService
	sessions *auth.Resolver
	engine   *election.Engine

	auth    *AuthHandler
	voting  *VotingHandler
	results *ResultsHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()

	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		t.Fatalf("Failed to create token service: %v", err)
	}
	sessions := auth.NewResolver(tokens, false)
	st := store.New(db)
	engine := election.NewEngine(st, election.DefaultNormalizer)

	return &testEnv{
		db:       db,
		cfg:      cfg,
		tokens:   tokens,
		sessions: sessions,
		engine:   engine,
		auth:     NewAuthHandler(st, engine, tokens, sessions, captcha.NopVerifier{}),
		voting:   NewVotingHandler(engine, sessions),
		results:  NewResultsHandler(engine, sessions),
	}
}

// voter registers a voter and returns it with a valid session token
func (e *testEnv) voter(t *testing.T, regNumber string, level int) (models.Voter, string) {
	t.Helper()
	v := testutil.CreateTestVoter(t, e.db, regNumber, level)
	return v, testutil.TestToken(t, e.cfg, v)
}

// castVote posts a vote with the given session token (empty for none)
func (e *testEnv) castVote(token, candidateID, position string) *httptest.ResponseRecorder {
	req := testutil.MakeRequest("POST", "/vote", models.CastVoteRequest{
		CandidateID: candidateID,
		Position:    position,
	}, nil)
	if token != "" {
		testutil.WithSession(req, token)
	}
	w := httptest.NewRecorder()
	e.voting.CastVote(w, req)
	return w
}

// get calls a GET handler with the given session token
func get(h http.HandlerFunc, path, token string) *httptest.ResponseRecorder {
	req := testutil.MakeRequest("GET", path, nil, nil)
	if token != "" {
		testutil.WithSession(req, token)
	}
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func assertErrorKind(t *testing.T, w *httptest.ResponseRecorder, status int, kind string) {
	t.Helper()
	testutil.AssertStatus(t, w, status)
	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Error != kind {
		t.Errorf("Expected error kind '%s', got '%s'", kind, resp.Error)
	}
	if resp.Message == "" {
		t.Error("Expected a message")
	}
}
