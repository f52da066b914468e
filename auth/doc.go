// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides admin keys for stored counts.

# Admin Keys

Admin keys use HMAC-SHA256 to create deterministic, verifiable keys:

	adminKey := auth.GenerateAdminKey(countID, salt)
	err := auth.ValidateAdminKey(countID, adminKey, salt)

The key is URL-safe base64 encoded without padding. Since it's deterministic,
the same count ID and salt always produce the same key. This allows validation
without storing the key in the database.

The key is returned once, when the count is created, and must be sent in the
X-Admin-Key header to delete the count:

	if err := auth.CheckRequest(r, countID, cfg.AdminKeySalt); err != nil {
		// 401
	}

# Errors

  - ErrMissingAdminKey: no X-Admin-Key header
  - ErrInvalidAdminKey: the key does not match the count
*/
package auth
