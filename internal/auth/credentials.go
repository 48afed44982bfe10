// Package auth provides the credential utility: one-way password
// hashing and verification. Token issuance lives in the request layer.
package auth

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashPassword returns the hex-encoded SHA-256 digest of the password.
// The hash is deterministic and unsalted; verification is a straight
// digest comparison.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// VerifyPassword reports whether password hashes to digest.
func VerifyPassword(password, digest string) bool {
	return HashPassword(password) == digest
}
