// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the senate-recount API server.

senate-recount runs Australian Senate style single transferable vote counts
(Droop quota, weighted inclusive Gregory surplus transfers) and keeps every
result with its full distribution of preferences. The offline counterpart
for AEC data files lives in cmd/senatecount.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=counts.db ADMIN_KEY_SALT=... go run main.go

Or with flags:

	go run main.go -p 3318 -t postgres -d "postgres://..."

Settings may also come from a .env file in the working directory.

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite path or PostgreSQL connection string
  - ADMIN_KEY_SALT (-admin-salt): Secret for admin key HMAC

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - MAX_BALLOTS (-max-ballots): Ballot papers allowed per count
  - RESULT_CACHE_SIZE (-cache-size): Count results kept in memory

# Architecture

The server uses a handler-based architecture with dependency injection:

  - count: The counting engine
  - ballotparse: AEC candidate and formal preference file readers
  - handlers: HTTP request handlers
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - auth: Admin key generation and validation
  - metrics: Prometheus collectors
  - db: Schema and count storage
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
