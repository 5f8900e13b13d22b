// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the election portal API.

# Route Registration

NewRouter wires the store, voting engine, session resolver and CAPTCHA
verifier, and returns the mux wrapped in CORS and panic recovery:

	handler, err := router.NewRouter(db, cfg)

It fails only when the token service cannot be built (no JWT secret).

# Endpoints

Health and metrics:

	GET /health
	GET /metrics - Prometheus exposition

Session (auth-token cookie, or Authorization: Bearer):

	POST /auth/login  - Exchange email + registration number for a session
	POST /auth/logout - Clear the session cookie
	GET  /auth/check  - Session validity and completion state

Voting (any voter):

	GET  /candidates - Catalog grouped by position
	POST /vote       - Cast one vote for one position
	GET  /votes      - The caller's own votes

Results (level >= 1):

	GET /results - Tally per position plus turnout
*/
package router
