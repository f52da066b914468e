// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the senate-recount API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(store, cfg, registry)

# Endpoints

Health and metrics:

	GET /health
	GET /metrics - Prometheus exposition of the given registry

Counts:

	POST   /counts             - Run a count and store its result
	GET    /counts             - List stored counts, newest first
	GET    /counts/{id}        - Count summary and result
	GET    /counts/{id}/rounds - Round-by-round distribution of preferences
	DELETE /counts/{id}        - Remove a count (requires X-Admin-Key)

# Handler Initialization

The router registers the count metrics on the registry and hands them to
the count handler along with the store and configuration:

	countHandler := handlers.NewCountHandler(store, cfg, metrics.New(reg, ""))
*/
package router
