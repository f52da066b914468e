// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections, schema creation and count storage.

# Connections

Open picks the driver from the configured database type:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

SQLite (modernc.org/sqlite) is the default; PostgreSQL uses lib/pq.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - count_run: One row per count with its parameters and headline result
  - result_snapshot: The full JSON result of a count, rounds included

# Relationships

	count_run 1──1 result_snapshot

# Store

Store wraps the queries the handlers need. Queries use ? placeholders,
rewritten to $1, $2, ... for PostgreSQL. Timestamps are stored as RFC 3339
text so both databases sort them the same way.
*/
package db
