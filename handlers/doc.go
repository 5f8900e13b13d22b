// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the election portal API.

# Handler Types

Each handler is a struct holding the collaborators it needs:

  - AuthHandler: Login, logout and session check
  - VotingHandler: Candidate catalog, vote casting and vote history
  - ResultsHandler: Admin tally and turnout

Handlers are created via constructor functions; router.NewRouter wires them:

	votingHandler := handlers.NewVotingHandler(engine, sessions)

# Sessions

Every handler except Login and Logout resolves the caller from the
auth-token cookie (or an Authorization: Bearer header) and passes the
resulting models.Identity into the election engine explicitly.

	POST /auth/login  → Login (CAPTCHA, credentials, sets cookie)
	POST /auth/logout → Logout
	GET  /auth/check  → Check

# Voting Flow

	GET  /candidates → Candidates
	POST /vote       → CastVote
	GET  /votes      → MyVotes

CastVote leaves the one-vote-per-position rule to the engine and the
ledger's unique constraint. Engine errors carry a kind that maps to the
status code:

	unauthorized                                  → 401
	validation_error, invalid_candidate,
	already_voted, bad_request                    → 400
	storage_error                                 → 500 (cause logged only)

# Results

	GET /results → GetResults (level >= 1, otherwise 403)
*/
package handlers
