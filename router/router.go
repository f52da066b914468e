// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielhkuo/senate-recount/cliparse"
	"github.com/danielhkuo/senate-recount/db"
	"github.com/danielhkuo/senate-recount/handlers"
	"github.com/danielhkuo/senate-recount/metrics"
	"github.com/danielhkuo/senate-recount/middleware"
)

func NewRouter(store *db.Store, cfg cliparse.Config, reg *prometheus.Registry) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	countHandler := handlers.NewCountHandler(store, cfg, metrics.New(reg, ""))

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Counts
	mux.HandleFunc("POST /counts", middleware.WithLogging(countHandler.CreateCount))
	mux.HandleFunc("GET /counts", middleware.WithLogging(countHandler.ListCounts))
	mux.HandleFunc("GET /counts/{id}", middleware.WithLogging(countHandler.GetCount))
	mux.HandleFunc("GET /counts/{id}/rounds", middleware.WithLogging(countHandler.GetRounds))
	mux.HandleFunc("DELETE /counts/{id}", middleware.WithLogging(countHandler.DeleteCount))

	// Prometheus scrape endpoint
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("senate-recount API v1"))
	})

	return mux
}
