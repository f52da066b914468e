// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/senate-recount/auth"
	"github.com/danielhkuo/senate-recount/cliparse"
	"github.com/danielhkuo/senate-recount/count"
	"github.com/danielhkuo/senate-recount/db"
	"github.com/danielhkuo/senate-recount/metrics"
	"github.com/danielhkuo/senate-recount/middleware"
	"github.com/danielhkuo/senate-recount/models"
)

var errTooManyBallots = errors.New("too many ballots")

const (
	defaultListLimit = 50
	maxListLimit     = 500

	// A national paper count as unique preference sequences fits well inside this.
	maxRequestBytes = 256 << 20
)

type CountHandler struct {
	store   *db.Store
	cfg     cliparse.Config
	metrics *metrics.Collector

	// Results keyed by input digest and count options. A count is a pure
	// function of these, so entries never go stale.
	cache *resultCache
}

func NewCountHandler(store *db.Store, cfg cliparse.Config, m *metrics.Collector) *CountHandler {
	size := cfg.CacheSize
	if size < 1 {
		size = cliparse.DefaultCacheSize
	}
	return &CountHandler{
		store:   store,
		cfg:     cfg,
		metrics: m,
		cache:   newResultCache(size),
	}
}

func cacheKey(digest string, cfg count.Config) string {
	return fmt.Sprintf("%s/%d/%d/%t", digest, cfg.Seats, cfg.Seed, cfg.LastSeatShortcut)
}

// CreateCount handles POST /counts
func (h *CountHandler) CreateCount(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCountRequest
	if err := middleware.DecodeJSONBody(w, r, &req, maxRequestBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge, err.Error())
			return
		}
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	start := time.Now()
	roster, store, err := buildInputs(req, h.cfg.MaxBallots)
	if errors.Is(err, errTooManyBallots) {
		h.metrics.ObserveCount(metrics.OutcomeInvalid, time.Since(start), 0, 0)
		middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge, err.Error())
		return
	}
	if err != nil {
		h.metrics.ObserveCount(metrics.OutcomeInvalid, time.Since(start), 0, 0)
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	cfg := count.Config{
		Seats:            req.Seats,
		Seed:             req.Seed,
		LastSeatShortcut: req.LastSeatShortcut,
		Logger:           slog.Default(),
	}
	digest := count.Digest(store)
	key := cacheKey(digest, cfg)

	result, cached := h.cache.Load(key)
	h.metrics.ObserveCache(cached)
	if !cached {
		res, err := count.Run(roster, store, cfg)
		if err != nil {
			h.countFailed(w, err, time.Since(start))
			return
		}
		h.metrics.ObserveCount(metrics.OutcomeFilled, time.Since(start), len(res.Rounds), res.TotalBallots)

		view := resultView(roster, res)
		result = &view
		h.cache.Store(key, result)
	}

	payload, err := json.Marshal(result)
	if err != nil {
		slog.Error("failed to encode result", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to store count")
		return
	}

	countID := uuid.NewString()
	run := db.CountRun{
		ID:               countID,
		Label:            req.Label,
		Seats:            result.Seats,
		Seed:             result.Seed,
		LastSeatShortcut: req.LastSeatShortcut,
		Quota:            result.Quota,
		TotalBallots:     result.TotalBallots,
		State:            result.State,
		Rounds:           len(result.Rounds),
		InputsHash:       digest,
		CreatedAt:        time.Now(),
	}
	if err := h.store.InsertRun(r.Context(), run, payload); err != nil {
		slog.Error("failed to insert count run", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to store count")
		return
	}

	slog.Info("count created",
		"count_id", countID,
		"seats", run.Seats,
		"ballots", run.TotalBallots,
		"rounds", run.Rounds,
		"cached", cached,
	)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateCountResponse{
		CountID:  countID,
		AdminKey: auth.GenerateAdminKey(countID, h.cfg.AdminKeySalt),
		Cached:   cached,
		Result:   *result,
	})
}

// countFailed maps a count error to a response. Deadlocks and precision
// failures are valid requests the count cannot finish.
func (h *CountHandler) countFailed(w http.ResponseWriter, err error, took time.Duration) {
	var dl *count.DeadlockError
	switch {
	case errors.As(err, &dl):
		h.metrics.ObserveCount(metrics.OutcomeDeadlocked, took, dl.Round-1, 0)
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, count.ErrPrecisionExceeded):
		h.metrics.ObserveCount(metrics.OutcomeError, took, 0, 0)
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, count.ErrInvalidInput):
		h.metrics.ObserveCount(metrics.OutcomeInvalid, took, 0, 0)
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	default:
		h.metrics.ObserveCount(metrics.OutcomeError, took, 0, 0)
		slog.Error("count failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Count failed")
	}
}

func summary(run db.CountRun) models.CountSummary {
	return models.CountSummary{
		ID:               run.ID,
		Label:            run.Label,
		Seats:            run.Seats,
		Seed:             run.Seed,
		LastSeatShortcut: run.LastSeatShortcut,
		Quota:            run.Quota,
		TotalBallots:     run.TotalBallots,
		State:            run.State,
		Rounds:           run.Rounds,
		InputsHash:       run.InputsHash,
		CreatedAt:        run.CreatedAt,
	}
}

// ListCounts handles GET /counts
func (h *CountHandler) ListCounts(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxListLimit)
	}

	runs, err := h.store.ListRuns(r.Context(), limit)
	if err != nil {
		slog.Error("failed to list counts", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	resp := models.ListCountsResponse{Counts: []models.CountSummary{}}
	for _, run := range runs {
		resp.Counts = append(resp.Counts, summary(run))
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}

// loadResult fetches a run and its decoded snapshot, writing the error
// response itself when it returns false.
func (h *CountHandler) loadResult(w http.ResponseWriter, r *http.Request) (db.CountRun, models.CountResult, bool) {
	countID := r.PathValue("id")
	if countID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "count id is required")
		return db.CountRun{}, models.CountResult{}, false
	}

	run, err := h.store.GetRun(r.Context(), countID)
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Count not found")
		return db.CountRun{}, models.CountResult{}, false
	}
	if err != nil {
		slog.Error("failed to query count", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return db.CountRun{}, models.CountResult{}, false
	}

	payload, err := h.store.GetSnapshot(r.Context(), countID)
	if err != nil {
		slog.Error("failed to query result snapshot", "count_id", countID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return db.CountRun{}, models.CountResult{}, false
	}

	var result models.CountResult
	if err := json.Unmarshal(payload, &result); err != nil {
		slog.Error("failed to decode result snapshot", "count_id", countID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Corrupt result snapshot")
		return db.CountRun{}, models.CountResult{}, false
	}
	return run, result, true
}

// GetCount handles GET /counts/{id}
func (h *CountHandler) GetCount(w http.ResponseWriter, r *http.Request) {
	run, result, ok := h.loadResult(w, r)
	if !ok {
		return
	}
	result.Rounds = nil

	middleware.JSONResponse(w, http.StatusOK, models.CountDetailResponse{
		Count:  summary(run),
		Result: result,
	})
}

// GetRounds handles GET /counts/{id}/rounds
func (h *CountHandler) GetRounds(w http.ResponseWriter, r *http.Request) {
	run, result, ok := h.loadResult(w, r)
	if !ok {
		return
	}
	rounds := result.Rounds
	if rounds == nil {
		rounds = []models.RoundView{}
	}

	middleware.JSONResponse(w, http.StatusOK, models.CountRoundsResponse{
		CountID: run.ID,
		Rounds:  rounds,
	})
}

// DeleteCount handles DELETE /counts/{id}
func (h *CountHandler) DeleteCount(w http.ResponseWriter, r *http.Request) {
	countID := r.PathValue("id")
	if countID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "count id is required")
		return
	}

	// Validate admin key
	if err := auth.CheckRequest(r, countID, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	err := h.store.DeleteRun(r.Context(), countID)
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Count not found")
		return
	}
	if err != nil {
		slog.Error("failed to delete count", "count_id", countID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("count deleted", "count_id", countID)
	w.WriteHeader(http.StatusNoContent)
}
