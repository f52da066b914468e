// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package count

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// Digest fingerprints the inputs of a count: every candidate with all of its
// labels and every distinct ballot with its paper count, in store order. Two stores with the
// same digest produce the same result for the same seats and seed.
func Digest(store *BallotStore) string {
	h := sha256.New()
	var buf []byte

	for _, c := range store.roster.candidates {
		buf = binary.AppendVarint(buf[:0], int64(c.ID))
		buf = binary.AppendUvarint(buf, uint64(len(c.Name)))
		buf = append(buf, c.Name...)
		buf = binary.AppendUvarint(buf, uint64(len(c.Party)))
		buf = append(buf, c.Party...)
		buf = binary.AppendUvarint(buf, uint64(len(c.Group)))
		buf = append(buf, c.Group...)
		buf = binary.AppendVarint(buf, int64(c.Position))
		h.Write(buf)
	}
	for _, b := range store.ballots {
		buf = binary.AppendUvarint(buf[:0], uint64(b.papers))
		buf = binary.AppendUvarint(buf, uint64(len(b.prefs)))
		for _, p := range b.prefs {
			buf = binary.AppendUvarint(buf, uint64(p))
		}
		h.Write(buf)
	}
	return hex.EncodeToString(h.Sum(nil))
}
