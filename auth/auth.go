// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
)

// AdminKeyHeader carries the admin key on requests that change a count.
const AdminKeyHeader = "X-Admin-Key"

var (
	ErrInvalidAdminKey = errors.New("invalid admin key")
	ErrMissingAdminKey = errors.New("missing admin key")
)

// GenerateAdminKey creates an HMAC-based admin key for a count
// This is deterministic and verifiable
func GenerateAdminKey(countID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(countID))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner keys
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateAdminKey checks if the provided admin key is valid for the count
func ValidateAdminKey(countID, adminKey, salt string) error {
	expected := GenerateAdminKey(countID, salt)
	if !hmac.Equal([]byte(adminKey), []byte(expected)) {
		return ErrInvalidAdminKey
	}
	return nil
}

// CheckRequest validates the admin key header of r for the count
func CheckRequest(r *http.Request, countID, salt string) error {
	key := strings.TrimSpace(r.Header.Get(AdminKeyHeader))
	if key == "" {
		return ErrMissingAdminKey
	}
	return ValidateAdminKey(countID, key, salt)
}
