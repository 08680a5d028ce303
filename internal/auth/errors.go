// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Gatehouse Contributors

package auth

import "errors"

// ErrNotFound is returned when a requested account or session does not exist.
var ErrNotFound = errors.New("not found")

// ErrExists is returned when an account with the same username already exists.
var ErrExists = errors.New("already exists")

// ErrSessionConflict is returned by AccountStore.BeginSession when the stored
// token no longer matches the value the caller observed, i.e. a concurrent
// login won the race.
var ErrSessionConflict = errors.New("session conflict")
