// Package id generates the opaque 32-char hex identifiers used for loans,
// borrowers and virtual accounts.
package id

import (
	"crypto/rand"
	"encoding/hex"
)

// NewID32 returns 32 lowercase hex characters backed by 16 random bytes.
// No separators or prefixes; the hex32 validation rule accepts exactly
// this shape.
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
