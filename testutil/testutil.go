// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/senate-recount/cliparse"
	"github.com/danielhkuo/senate-recount/db"
	"github.com/danielhkuo/senate-recount/models"
)

// TestDBURL is an in-memory SQLite database private to one connection pool
const TestDBURL = ":memory:"

// SetupTestDB creates a fresh test database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// SetupTestStore wraps a fresh test database in a Store
func SetupTestStore(t *testing.T) *db.Store {
	t.Helper()
	return db.NewStore(SetupTestDB(t), db.TypeSQLite)
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  TestDBURL,
		DatabaseType: db.TypeSQLite,
		AdminKeySalt: "test-admin-salt",
		MaxBallots:   cliparse.DefaultMaxBallots,
		CacheSize:    cliparse.DefaultCacheSize,
	}
}

// SampleCountRequest returns a two-seat count over four candidates. Alice
// is elected on first preferences with a surplus of 5, Carol takes the
// second seat after Dave and Bob are excluded.
func SampleCountRequest() models.CreateCountRequest {
	return models.CreateCountRequest{
		Label: "sample",
		Seats: 2,
		Candidates: []models.CandidateInput{
			{ID: 1, Name: "Alice", Party: "Red"},
			{ID: 2, Name: "Bob", Party: "Blue"},
			{ID: 3, Name: "Carol", Party: "Green"},
			{ID: 4, Name: "Dave"},
		},
		Ballots: []models.BallotInput{
			{Preferences: []int{1, 3}, Papers: 6},
			{Preferences: []int{1, 4}, Papers: 6},
			{Preferences: []int{2}, Papers: 5},
			{Preferences: []int{3, 4}, Papers: 2},
			{Preferences: []int{4, 3}},
		},
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
