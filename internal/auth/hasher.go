// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Gatehouse Contributors

package auth

import (
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/argon2"
)

// OWASP-recommended argon2id parameters.
const (
	argon2Time    = 1         // iterations
	argon2Memory  = 64 * 1024 // 64 MB
	argon2Threads = 4         // parallelism
	argon2KeyLen  = 32        // output length in bytes; digests are 64 hex chars
)

// SaltLength is the length of the per-account alphanumeric salt generated at
// account creation. The salt never changes for the lifetime of the account.
const SaltLength = 32

// dummySalt and dummyDigest are used when a login targets a username that
// does not exist: verification still runs so response time does not reveal
// whether the account exists. The digest can never match real output.
const (
	dummySalt   = "00000000000000000000000000000000"
	dummyDigest = "0000000000000000000000000000000000000000000000000000000000000000"
)

// PasswordHasher produces and verifies salted one-way password digests.
type PasswordHasher interface {
	// Hash computes the deterministic digest of password under salt,
	// hex-encoded at fixed length.
	Hash(password, salt string) string

	// GenerateSalt returns a cryptographically random alphanumeric salt of
	// length n.
	GenerateSalt(n int) (string, error)

	// Verify reports whether password reproduces the account's stored digest.
	Verify(password string, account *Account) bool
}

// Argon2Hasher implements PasswordHasher using argon2id.
type Argon2Hasher struct{}

// NewArgon2Hasher creates a new Argon2Hasher.
func NewArgon2Hasher() *Argon2Hasher {
	return &Argon2Hasher{}
}

// Hash computes the argon2id digest of password under salt, hex-encoded.
// The same (password, salt) pair always yields the same digest.
func (h *Argon2Hasher) Hash(password, salt string) string {
	key := argon2.IDKey([]byte(password), []byte(salt), argon2Time, argon2Memory, argon2Threads, argon2KeyLen)
	return hex.EncodeToString(key)
}

// GenerateSalt returns a cryptographically random alphanumeric salt.
func (h *Argon2Hasher) GenerateSalt(n int) (string, error) {
	return randAlphanumeric(n)
}

// Verify recomputes the digest with the account's salt and compares in
// constant time.
func (h *Argon2Hasher) Verify(password string, account *Account) bool {
	computed := h.Hash(password, account.Salt)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(account.PasswordDigest)) == 1
}

// Compile-time interface check.
var _ PasswordHasher = (*Argon2Hasher)(nil)
