// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

Environment variables are read first; CLI flags take precedence over them.

# Environment Variables

	PORT                  (-p)          Server port (default: 3318)
	DATABASE_URL          (-d)          Database URL (sqlite default: file:election.db)
	DATABASE_TYPE         (-t)          sqlite or postgres (default: sqlite)
	JWT_SECRET_KEY        (-jwt-secret) Session token signing secret (required)
	TOKEN_TTL             (-token-ttl)  Session lifetime (default: 24h)
	SEED_FILE             (-seed)       Voters and candidates to load at startup
	SECURE_COOKIES                      Mark the session cookie Secure
	RECAPTCHA_SECRET_KEY                reCAPTCHA secret; empty disables the check
	RECAPTCHA_VERIFY_URL                reCAPTCHA verification endpoint
	ALLOWED_ORIGINS                     Comma separated CORS origins
	POSITION_FOLD_CASE                  Case-fold position names (default: true)
	POSITION_TRIM_SPACE                 Trim and collapse whitespace in position names (default: true)

# Example

	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	conn, err := db.Open(cfg)
	// ...
	mux := router.NewRouter(conn, cfg)
*/
package cliparse
