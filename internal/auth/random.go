// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Gatehouse Contributors

package auth

import (
	"crypto/rand"

	"github.com/samber/oops"
)

// alphanumerics is the alphabet for salts and session tokens.
const alphanumerics = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// randAlphanumeric returns a cryptographically random alphanumeric string of
// length n. Bytes from the CSPRNG are rejection-sampled so every character of
// the alphabet is equally likely.
func randAlphanumeric(n int) (string, error) {
	if n <= 0 {
		return "", oops.Code("AUTH_RANDOM_FAILED").Errorf("length must be positive, got %d", n)
	}

	// Largest multiple of len(alphanumerics) that fits in a byte. Values at
	// or above it are rejected to avoid modulo bias.
	limit := byte(256 - 256%len(alphanumerics)) // 248

	out := make([]byte, 0, n)
	buf := make([]byte, n)
	for len(out) < n {
		if _, err := rand.Read(buf); err != nil {
			return "", oops.Code("AUTH_RANDOM_FAILED").
				With("operation", "crypto/rand.Read").
				Wrap(err)
		}
		for _, b := range buf {
			if b >= limit {
				continue
			}
			out = append(out, alphanumerics[int(b)%len(alphanumerics)])
			if len(out) == n {
				break
			}
		}
	}
	return string(out), nil
}
