// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the election portal API server.

The portal runs a single election: registered voters log in with their
email and registration number, see the candidates grouped by position,
and cast exactly one vote per position. Admins read the tally.

# Starting the Server

The server reads a .env file if present, then environment variables, then
CLI flags:

	JWT_SECRET_KEY=... SEED_FILE=election.json go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -jwt-secret ... -seed election.json

# Configuration

Required settings:

  - JWT_SECRET_KEY (-jwt-secret): HS256 signing key for session tokens

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - DATABASE_URL (-d): Connection string (sqlite default: file:election.db)
  - TOKEN_TTL (-token-ttl): Session lifetime (default: 24h)
  - SEED_FILE (-seed): JSON file of voters and candidates to import at start
  - RECAPTCHA_SECRET_KEY: Enables reCAPTCHA at login
  - ALLOWED_ORIGINS: Comma-separated frontend origins for CORS
  - POSITION_FOLD_CASE, POSITION_TRIM_SPACE: Position name normalization

# Architecture

  - handlers: HTTP request handlers (auth, voting, results)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, recovery, logging, JSON helpers
  - election: Voting engine and tally
  - store: SQL catalog, voter registry and vote ledger; seed import
  - auth: Session tokens and request resolution
  - captcha: reCAPTCHA verification
  - metrics: Prometheus collectors
  - models: Request/response and domain types
  - db: Driver selection and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
