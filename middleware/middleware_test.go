// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/senate-recount/models"
)

// captureLogs routes the default logger into a buffer for one test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestWithLoggingLevels(t *testing.T) {
	tests := []struct {
		name   string
		status int
		level  string
	}{
		{"created", http.StatusCreated, "INFO"},
		{"not found", http.StatusNotFound, "WARN"},
		{"too many ballots", http.StatusRequestEntityTooLarge, "WARN"},
		{"deadlock", http.StatusUnprocessableEntity, "WARN"},
		{"store down", http.StatusServiceUnavailable, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLogs(t)

			handler := WithLogging(func(w http.ResponseWriter, r *http.Request) {
				ErrorResponse(w, tt.status, "detail")
			})
			req := httptest.NewRequest("POST", "/counts", nil)
			req.RemoteAddr = "10.1.2.3:5555"
			w := httptest.NewRecorder()
			handler(w, req)

			if w.Code != tt.status {
				t.Errorf("Expected response status %d, got %d", tt.status, w.Code)
			}

			var entry map[string]any
			if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
				t.Fatalf("Expected one JSON log line, got %q: %v", buf.String(), err)
			}
			if entry["msg"] != "request completed" {
				t.Errorf("Expected completion message, got %v", entry["msg"])
			}
			if entry["level"] != tt.level {
				t.Errorf("Expected level %s, got %v", tt.level, entry["level"])
			}
			if entry["status"] != float64(tt.status) {
				t.Errorf("Expected status %d in log, got %v", tt.status, entry["status"])
			}
			if entry["path"] != "/counts" || entry["method"] != "POST" {
				t.Errorf("Expected POST /counts in log, got %v %v", entry["method"], entry["path"])
			}
			if entry["remote"] != "10.1.2.3" {
				t.Errorf("Expected remote 10.1.2.3, got %v", entry["remote"])
			}
		})
	}
}

func TestWithLoggingImplicitOK(t *testing.T) {
	buf := captureLogs(t)

	handler := WithLogging(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{}"))
	})
	handler(httptest.NewRecorder(), httptest.NewRequest("GET", "/counts/abc/rounds", nil))

	if !strings.Contains(buf.String(), `"status":200`) {
		t.Errorf("Expected status 200 when the handler never calls WriteHeader, got %s", buf.String())
	}
}

func TestJSONResponseCountResult(t *testing.T) {
	result := models.CountResult{
		State:        models.StateAllSeatsFilled,
		Seats:        1,
		Quota:        4,
		TotalBallots: 6,
		Elected: []models.ElectedView{
			{Order: 1, Round: 1, Candidate: models.CandidateView{ID: 1, Name: "Alice"}},
		},
		Excluded:       []int{},
		Exhausted:      "0.000000",
		LostByFraction: "0.333334",
	}

	w := httptest.NewRecorder()
	JSONResponse(w, http.StatusCreated, result)

	if w.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected application/json, got %q", ct)
	}

	body := w.Body.String()
	for _, want := range []string{`"lost_by_fraction":"0.333334"`, `"state":"all-seats-filled"`, `"excluded":[]`} {
		if !strings.Contains(body, want) {
			t.Errorf("Expected %s in %s", want, body)
		}
	}
	if strings.Contains(body, `"rounds"`) {
		t.Errorf("Expected rounds to be omitted from a summary, got %s", body)
	}
	if strings.Contains(body, `"party"`) {
		t.Errorf("Expected empty party to be omitted, got %s", body)
	}
}

func TestJSONResponseRoundView(t *testing.T) {
	from := 2
	round := models.RoundView{
		Number:     2,
		Action:     "exclude",
		Candidates: []int{2},
		Transfers: []models.TransferView{
			{From: &from, To: nil, Value: "1.000000", Papers: 3, Votes: "3.000000"},
		},
		TieBreaks: []models.TieBreakView{
			{Kind: "exclusion", Tied: []int{2, 3}, Method: "draw", Seed: 7, Chosen: 2},
		},
		Exhausted:      "3.000000",
		LostByFraction: "0.000000",
	}

	w := httptest.NewRecorder()
	JSONResponse(w, http.StatusOK, round)

	body := w.Body.String()
	if !strings.Contains(body, `"to":null`) {
		t.Errorf("Expected exhausted transfer to encode to as null, got %s", body)
	}
	if !strings.Contains(body, `"from":2`) {
		t.Errorf("Expected from candidate, got %s", body)
	}
	if strings.Contains(body, `"at_round"`) {
		t.Errorf("Expected at_round to be omitted for a draw, got %s", body)
	}
	if strings.Contains(body, `"surplus"`) {
		t.Errorf("Expected no surplus on an exclusion round, got %s", body)
	}
}

func TestErrorResponse(t *testing.T) {
	tests := []struct {
		status int
		detail string
	}{
		{http.StatusRequestEntityTooLarge, "too many ballots: 10 papers, limit 5"},
		{http.StatusUnprocessableEntity, "count deadlocked in round 3"},
		{http.StatusForbidden, ""},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			w := httptest.NewRecorder()
			ErrorResponse(w, tt.status, tt.detail)

			if w.Code != tt.status {
				t.Errorf("Expected status %d, got %d", tt.status, w.Code)
			}
			var resp models.ErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("Failed to decode error body: %v", err)
			}
			if resp.Error != http.StatusText(tt.status) {
				t.Errorf("Expected error %q, got %q", http.StatusText(tt.status), resp.Error)
			}
			if resp.Message != tt.detail {
				t.Errorf("Expected message %q, got %q", tt.detail, resp.Message)
			}
		})
	}
}

func TestDecodeJSONBody(t *testing.T) {
	t.Run("count request", func(t *testing.T) {
		body := `{"label":"Tas 2016","seats":2,"seed":9,"last_seat_shortcut":true,
			"candidates":[{"id":1,"name":"A","group":"B"},{"id":2,"name":"C"}],
			"ballots":[{"preferences":[1,2],"papers":40},{"preferences":[2]}]}` + "\n"
		req := httptest.NewRequest("POST", "/counts", strings.NewReader(body))

		var got models.CreateCountRequest
		if err := DecodeJSONBody(httptest.NewRecorder(), req, &got, 1<<20); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if got.Seats != 2 || got.Seed != 9 || !got.LastSeatShortcut {
			t.Errorf("Options not decoded: %+v", got)
		}
		if len(got.Candidates) != 2 || got.Candidates[0].Group != "B" {
			t.Errorf("Candidates not decoded: %+v", got.Candidates)
		}
		if len(got.Ballots) != 2 || got.Ballots[0].Papers != 40 || got.Ballots[1].Papers != 0 {
			t.Errorf("Ballots not decoded: %+v", got.Ballots)
		}
	})

	tests := []struct {
		name  string
		body  string
		limit int64
		check func(t *testing.T, err error)
	}{
		{
			name: "empty body",
			body: "",
			check: func(t *testing.T, err error) {
				if !errors.Is(err, ErrEmptyBody) {
					t.Errorf("Expected ErrEmptyBody, got %v", err)
				}
			},
		},
		{
			name: "truncated",
			body: `{"seats":2,"candidates":[`,
			check: func(t *testing.T, err error) {
				if !strings.Contains(err.Error(), "invalid JSON") {
					t.Errorf("Expected invalid JSON, got %v", err)
				}
			},
		},
		{
			name: "seats as string",
			body: `{"seats":"two"}`,
			check: func(t *testing.T, err error) {
				var typeErr *json.UnmarshalTypeError
				if !errors.As(err, &typeErr) || typeErr.Field != "seats" {
					t.Errorf("Expected type error on seats, got %v", err)
				}
			},
		},
		{
			name: "negative seed",
			body: `{"seed":-1}`,
			check: func(t *testing.T, err error) {
				var typeErr *json.UnmarshalTypeError
				if !errors.As(err, &typeErr) {
					t.Errorf("Expected type error on seed, got %v", err)
				}
			},
		},
		{
			name: "unknown field",
			body: `{"seats":1,"quota":5}`,
			check: func(t *testing.T, err error) {
				if !strings.Contains(err.Error(), `"quota"`) {
					t.Errorf("Expected error naming quota, got %v", err)
				}
			},
		},
		{
			name: "two documents",
			body: `{"seats":1}{"seats":2}`,
			check: func(t *testing.T, err error) {
				if !errors.Is(err, ErrTrailingData) {
					t.Errorf("Expected ErrTrailingData, got %v", err)
				}
			},
		},
		{
			name:  "over limit",
			body:  `{"label":"` + strings.Repeat("x", 64) + `"}`,
			limit: 32,
			check: func(t *testing.T, err error) {
				var tooLarge *http.MaxBytesError
				if !errors.As(err, &tooLarge) {
					t.Errorf("Expected MaxBytesError, got %v", err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit := tt.limit
			if limit == 0 {
				limit = 1 << 20
			}
			req := httptest.NewRequest("POST", "/counts", strings.NewReader(tt.body))

			var got models.CreateCountRequest
			err := DecodeJSONBody(httptest.NewRecorder(), req, &got, limit)
			if err == nil {
				t.Fatal("Expected an error")
			}
			tt.check(t, err)
		})
	}
}

func TestCORS(t *testing.T) {
	t.Run("delete preflight", func(t *testing.T) {
		called := false
		handler := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))

		req := httptest.NewRequest("OPTIONS", "/counts/3f1c", nil)
		req.Header.Set("Origin", "https://results.example.org")
		req.Header.Set("Access-Control-Request-Method", "DELETE")
		req.Header.Set("Access-Control-Request-Headers", "X-Admin-Key")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if called {
			t.Error("Expected preflight to stop before the handler")
		}
		if w.Code != http.StatusNoContent {
			t.Errorf("Expected 204, got %d", w.Code)
		}
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://results.example.org" {
			t.Errorf("Expected origin to be echoed, got %q", got)
		}
		if w.Header().Get("Access-Control-Allow-Credentials") != "true" {
			t.Error("Expected credentials to be allowed for a named origin")
		}
		if !strings.Contains(w.Header().Get("Access-Control-Allow-Headers"), "X-Admin-Key") {
			t.Errorf("Expected X-Admin-Key to be allowed, got %q", w.Header().Get("Access-Control-Allow-Headers"))
		}
		methods := w.Header().Get("Access-Control-Allow-Methods")
		if !strings.Contains(methods, "DELETE") || strings.Contains(methods, "PUT") {
			t.Errorf("Expected DELETE without PUT, got %q", methods)
		}
		if w.Header().Get("Vary") != "Origin" {
			t.Errorf("Expected Vary: Origin, got %q", w.Header().Get("Vary"))
		}
	})

	t.Run("no origin", func(t *testing.T) {
		called := false
		handler := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			w.WriteHeader(http.StatusOK)
		}))

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/counts", nil))

		if !called {
			t.Error("Expected GET to reach the handler")
		}
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("Expected wildcard origin, got %q", got)
		}
		if w.Header().Get("Access-Control-Allow-Credentials") != "" {
			t.Error("Expected no credentials with a wildcard origin")
		}
	})
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name    string
		remote  string
		headers map[string]string
		want    string
	}{
		{"remote addr", "192.0.2.7:40000", nil, "192.0.2.7"},
		{"ipv6 remote", "[2001:db8::1]:443", nil, "2001:db8::1"},
		{"no port", "192.0.2.7", nil, "192.0.2.7"},
		{"forwarded chain", "10.0.0.1:80", map[string]string{"X-Forwarded-For": " 203.0.113.5 , 10.0.0.9"}, "203.0.113.5"},
		{"real ip", "10.0.0.1:80", map[string]string{"X-Real-IP": "198.51.100.2"}, "198.51.100.2"},
		{"forwarded wins", "10.0.0.1:80", map[string]string{"X-Forwarded-For": "203.0.113.5", "X-Real-IP": "198.51.100.2"}, "203.0.113.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/counts", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := GetClientIP(req); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}
