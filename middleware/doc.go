// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware holds the HTTP plumbing shared by the count endpoints.

# Logging

WithLogging writes one "request completed" line per request with method,
path, status, remote and duration_ms. The level follows the status: 5xx is
ERROR, 4xx is WARN, anything else INFO, so a failed store shows up without
turning on debug output.

	mux.HandleFunc("POST /counts", middleware.WithLogging(h.CreateCount))

# Request Bodies

DecodeJSONBody reads a single JSON document with a byte cap and rejects
unknown fields:

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

An empty body is ErrEmptyBody and a second document is ErrTrailingData.

# Responses

JSONResponse encodes any value. Count results carry vote figures as
six-place decimal strings, so nothing is rounded on the way out.
ErrorResponse puts the status text in "error" and the detail in "message".

# CORS

CORS allows GET, POST and DELETE with the Content-Type and X-Admin-Key
headers, so a dashboard on another origin can delete a count it created.
Preflights are answered with 204.
*/
package middleware
