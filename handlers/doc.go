// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the senate-recount API.

# Handler Types

CountHandler serves every count endpoint. It is created with the count
store, the server configuration and a metrics collector:

	countHandler := handlers.NewCountHandler(store, cfg, metrics.New(reg, ""))

# Count Lifecycle

A count is computed once, when it is created, and never changes afterwards:

	POST   /counts             → CreateCount (returns count_id and admin_key)
	GET    /counts             → ListCounts (?limit=, newest first)
	GET    /counts/{id}        → GetCount (summary and result without rounds)
	GET    /counts/{id}/rounds → GetRounds (full distribution of preferences)
	DELETE /counts/{id}        → DeleteCount

DeleteCount requires the X-Admin-Key header returned by CreateCount.

# Status Codes

  - 400: malformed JSON or an invalid election (unknown candidate, repeated
    preference, more seats than candidates, ...)
  - 413: more ballot papers than the configured maximum
  - 422: the count deadlocked or overflowed its fixed-point arithmetic
  - 401, 404: bad admin key, unknown count

# Result Cache

Results are cached in memory keyed by the ballot digest, seats, seed and
shortcut option. The cache holds at most CacheSize results and drops the
oldest first. Repeating a count skips the engine but still stores a new
count with its own id; the response reports "cached": true.
*/
package handlers
