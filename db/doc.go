// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates the schema.

# Drivers

Open picks the driver from DATABASE_TYPE:

  - sqlite (default): modernc.org/sqlite, pure Go. Foreign keys, WAL and a
    busy timeout are set through DSN pragmas, and the pool is limited to one
    connection so writers queue instead of failing with SQLITE_BUSY.
  - postgres: github.com/lib/pq.

The same SQL runs on both; queries use $N placeholders.

# Schema Creation

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - voter: Registered voters, level (0 voter, 1 admin), has_voted cache
  - candidate: Catalog; position as displayed plus its normalized position_key
  - vote: The ledger

# Relationships

	voter 1──* vote *──1 candidate

UNIQUE(voter_id, position_key) on vote is what enforces one vote per
position. candidate.vote_count is a cache updated in the same transaction
as the ledger insert.
*/
package db
