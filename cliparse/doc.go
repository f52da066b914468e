// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: SQLite path or PostgreSQL connection string (required)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - AdminKeySalt: Secret for admin key HMAC (required)
  - MaxBallots: Ballot papers allowed per count (default: 1,000,000)
  - CacheSize: Count results kept in memory (default: 256)

# CLI Flags

	-p            Server port
	-d            Database URL
	-t            Database type
	-max-ballots  Ballot paper limit
	-cache-size   Result cache entries
	-admin-salt   Admin key salt

# Environment Variables

Flags fall back to environment variables, which may be set in a .env file:

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	MAX_BALLOTS    → -max-ballots
	RESULT_CACHE_SIZE → -cache-size
	ADMIN_KEY_SALT → -admin-salt

CLI flags take precedence over environment variables, and variables already
set take precedence over .env.

# Validation

ParseFlags returns an error if:

  - DATABASE_URL is missing
  - ADMIN_KEY_SALT is missing
  - the database type is not sqlite or postgres
  - PORT, MAX_BALLOTS or RESULT_CACHE_SIZE is not a number
  - the cache size is below 1

# Example

	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	// ...
	mux := router.NewRouter(db.NewStore(conn, cfg.DatabaseType), cfg, reg)
*/
package cliparse
