// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Gatehouse Contributors

// Package memory provides an in-memory AccountStore. It backs transport
// tests and small deployments; all session mutations are serialized under
// one mutex, which satisfies the store's atomicity contract trivially.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/gatehouse/gatehouse/internal/auth"
)

// AccountStore implements auth.AccountStore in memory.
type AccountStore struct {
	mu       sync.Mutex
	byID     map[ulid.ULID]*auth.Account
	byName   map[string]ulid.ULID
	sessions map[string]ulid.ULID // token -> account ID
}

// NewAccountStore creates an empty AccountStore.
func NewAccountStore() *AccountStore {
	return &AccountStore{
		byID:     make(map[ulid.ULID]*auth.Account),
		byName:   make(map[string]ulid.ULID),
		sessions: make(map[string]ulid.ULID),
	}
}

// Create stores a new account.
func (s *AccountStore) Create(_ context.Context, account *auth.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byName[account.Username]; taken {
		return oops.Code("ACCOUNT_CREATE_FAILED").
			With("username", account.Username).
			Wrap(auth.ErrExists)
	}

	clone := *account
	s.byID[clone.ID] = &clone
	s.byName[clone.Username] = clone.ID
	return nil
}

// GetByID retrieves an account by ID.
func (s *AccountStore) GetByID(_ context.Context, id ulid.ULID) (*auth.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyOf(id)
}

// GetByUsername retrieves an account by exact username.
func (s *AccountStore) GetByUsername(_ context.Context, username string) (*auth.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byName[username]
	if !ok {
		return nil, oops.Code("ACCOUNT_NOT_FOUND").
			With("username", username).
			Wrap(auth.ErrNotFound)
	}
	return s.copyOf(id)
}

// GetByToken retrieves the account holding the exact session token.
func (s *AccountStore) GetByToken(_ context.Context, token string) (*auth.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.sessions[token]
	if !ok {
		return nil, oops.Code("ACCOUNT_NOT_FOUND").Wrap(auth.ErrNotFound)
	}
	return s.copyOf(id)
}

// BeginSession writes token and expiry, but only if the stored token still
// equals prevToken.
func (s *AccountStore) BeginSession(_ context.Context, id ulid.ULID, prevToken *string, token string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.byID[id]
	if !ok {
		return oops.Code("ACCOUNT_NOT_FOUND").
			With("id", id.String()).
			Wrap(auth.ErrNotFound)
	}

	if !tokensEqual(account.Token, prevToken) {
		return oops.Code("SESSION_CONFLICT").
			With("id", id.String()).
			Wrap(auth.ErrSessionConflict)
	}

	if account.Token != nil {
		delete(s.sessions, *account.Token)
	}
	expiry := expiresAt
	account.Token = &token
	account.TokenExpire = &expiry
	account.UpdatedAt = time.Now()
	s.sessions[token] = id
	return nil
}

// ClearSession clears token and expiry together.
func (s *AccountStore) ClearSession(_ context.Context, id ulid.ULID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.byID[id]
	if !ok {
		return oops.Code("ACCOUNT_NOT_FOUND").
			With("id", id.String()).
			Wrap(auth.ErrNotFound)
	}
	if account.Token == nil {
		return oops.Code("SESSION_NOT_FOUND").
			With("id", id.String()).
			Wrap(auth.ErrNotFound)
	}

	delete(s.sessions, *account.Token)
	account.Token = nil
	account.TokenExpire = nil
	account.UpdatedAt = time.Now()
	return nil
}

// DeleteExpiredSessions clears every session whose expiry is in the past.
func (s *AccountStore) DeleteExpiredSessions(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	var cleared int64
	for token, id := range s.sessions {
		account := s.byID[id]
		if account.TokenExpire == nil || now.Unix() >= account.TokenExpire.Unix() {
			delete(s.sessions, token)
			account.Token = nil
			account.TokenExpire = nil
			account.UpdatedAt = now
			cleared++
		}
	}
	return cleared, nil
}

// copyOf returns a copy so callers cannot mutate stored state. Must be
// called with the mutex held.
func (s *AccountStore) copyOf(id ulid.ULID) (*auth.Account, error) {
	account, ok := s.byID[id]
	if !ok {
		return nil, oops.Code("ACCOUNT_NOT_FOUND").
			With("id", id.String()).
			Wrap(auth.ErrNotFound)
	}

	clone := *account
	if account.Token != nil {
		token := *account.Token
		clone.Token = &token
	}
	if account.TokenExpire != nil {
		expire := *account.TokenExpire
		clone.TokenExpire = &expire
	}
	return &clone, nil
}

func tokensEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Compile-time interface check.
var _ auth.AccountStore = (*AccountStore)(nil)
