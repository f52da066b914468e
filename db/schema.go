// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// The schema sticks to types both SQLite and PostgreSQL accept. Timestamps
// are RFC 3339 text and seeds are decimal text, since a uint64 seed does not
// fit a signed BIGINT.
const schema = `
-- Count runs
CREATE TABLE IF NOT EXISTS count_run (
    id TEXT PRIMARY KEY,
    label TEXT NOT NULL DEFAULT '',
    seats INTEGER NOT NULL CHECK (seats > 0),
    seed TEXT NOT NULL,
    last_seat_shortcut INTEGER NOT NULL DEFAULT 0,
    quota BIGINT NOT NULL,
    total_ballots BIGINT NOT NULL,
    state TEXT NOT NULL CHECK (state IN ('all-seats-filled', 'deadlocked')),
    rounds INTEGER NOT NULL,
    inputs_hash TEXT NOT NULL,
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_count_run_inputs_hash ON count_run(inputs_hash);
CREATE INDEX IF NOT EXISTS idx_count_run_created_at ON count_run(created_at);

-- Result Snapshots
CREATE TABLE IF NOT EXISTS result_snapshot (
    count_id TEXT PRIMARY KEY REFERENCES count_run(id) ON DELETE CASCADE,
    computed_at TEXT NOT NULL,
    payload TEXT NOT NULL
);
`
