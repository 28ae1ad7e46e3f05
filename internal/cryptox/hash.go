// Package cryptox holds the project's cryptographic helpers: one-way hashing
// of voter-identifying values for the audit log, and Ed25519 key encoding.
package cryptox

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// Hasher turns tokens and voter ids into stable, non-reversible identifiers.
// With a key the digest is a keyed BLAKE2b-256 MAC, so short tokens cannot be
// recovered by enumerating the alphabet without the key.
type Hasher struct {
	key []byte
}

// NewHasher accepts a key of at most 64 bytes; an empty key yields plain BLAKE2b-256.
func NewHasher(key []byte) (*Hasher, error) {
	if len(key) > blake2b.Size {
		return nil, fmt.Errorf("hash key too long: %d bytes (max %d)", len(key), blake2b.Size)
	}
	k := make([]byte, len(key))
	copy(k, key)
	return &Hasher{key: k}, nil
}

// Sum returns the hex digest of s, or "" for an empty input so that missing
// values stay distinguishable in the audit table.
func (h *Hasher) Sum(s string) string {
	if s == "" {
		return ""
	}
	d, err := blake2b.New256(h.key)
	if err != nil {
		// unreachable: key length is validated in NewHasher
		panic(err)
	}
	d.Write([]byte(s))
	return hex.EncodeToString(d.Sum(nil))
}
