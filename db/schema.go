// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/election-portal/cliparse"
)

// Open connects to the configured database and verifies the connection.
func Open(cfg cliparse.Config) (*sql.DB, error) {
	driver, dsn := "postgres", cfg.DatabaseURL
	if cfg.DatabaseType == "sqlite" {
		driver, dsn = "sqlite", sqliteDSN(cfg.DatabaseURL)
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}

	// SQLite allows one writer; a single connection queues writers
	// instead of surfacing SQLITE_BUSY to voters
	if driver == "sqlite" {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", driver, err)
	}

	return conn, nil
}

func sqliteDSN(url string) string {
	pragmas := "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	if strings.Contains(url, "?") {
		return url + "&" + pragmas
	}
	return url + "?" + pragmas
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// DropSchema removes every table. Used by tests.
func DropSchema(db *sql.DB) error {
	_, err := db.Exec(`
		DROP TABLE IF EXISTS vote;
		DROP TABLE IF EXISTS candidate;
		DROP TABLE IF EXISTS voter;
	`)
	if err != nil {
		return fmt.Errorf("failed to drop schema: %w", err)
	}
	return nil
}

// The DDL sticks to the subset SQLite and PostgreSQL share.
const schema = `
-- Voters
CREATE TABLE IF NOT EXISTS voter (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL,
    reg_number TEXT NOT NULL UNIQUE,
    level INTEGER NOT NULL DEFAULT 0,
    has_voted BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_voter_email ON voter(email);

-- Candidates (the catalog; positions are the distinct position_key values)
CREATE TABLE IF NOT EXISTS candidate (
    id TEXT PRIMARY KEY,
    full_name TEXT NOT NULL,
    position TEXT NOT NULL,
    position_key TEXT NOT NULL,
    bio TEXT NOT NULL DEFAULT '',
    image_url TEXT,
    vote_count INTEGER NOT NULL DEFAULT 0,
    sort_order INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_candidate_position_key ON candidate(position_key);

-- Votes (the ledger)
CREATE TABLE IF NOT EXISTS vote (
    id TEXT PRIMARY KEY,
    voter_id TEXT NOT NULL REFERENCES voter(id),
    position_key TEXT NOT NULL,
    candidate_id TEXT NOT NULL REFERENCES candidate(id),
    voted_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (voter_id, position_key)
);

CREATE INDEX IF NOT EXISTS idx_vote_candidate_id ON vote(candidate_id);
`
