// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Gatehouse Contributors

// Package auth implements the credential/token authentication core:
// extraction of Basic credentials and Bearer tokens from untrusted
// Authorization header bytes, salted password hashing and verification, and
// the session-token lifecycle.
//
// # Extraction
//
// ParseBasic and ParseBearer are pure functions over the raw header values;
// transports compose them with handlers (middleware) so the core stays
// transport-agnostic. All parse errors are terminal for the request.
//
// # Services
//
//   - Service — orchestrates login, signup, logout, and protected-request
//     authentication over an AccountStore.
//   - TokenService — generates and verifies opaque session tokens with a
//     fixed 24-hour lifetime.
//   - Argon2Hasher — deterministic argon2id digests under per-account salts.
//
// The AccountStore is the only source of truth for session state; nothing in
// this package caches it between requests.
package auth
