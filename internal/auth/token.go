// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Gatehouse Contributors

package auth

import (
	"context"
	"errors"
	"time"

	"github.com/samber/oops"
)

// Session token configuration.
const (
	TokenLength = 32             // alphanumeric characters
	TokenTTL    = 24 * time.Hour // fixed lifetime from the moment of generation
)

// Token is a verified session token together with the account it resolved
// to. It is produced only by TokenService.Verify and is valid for the
// handling of one request.
type Token struct {
	Value   string
	Account *Account
}

// TokenService generates, verifies, and expires session tokens. Session
// state lives solely in the AccountStore; the service holds none.
type TokenService struct {
	store AccountStore
	now   func() time.Time
}

// NewTokenService creates a TokenService backed by store.
func NewTokenService(store AccountStore) (*TokenService, error) {
	return NewTokenServiceWithClock(store, time.Now)
}

// NewTokenServiceWithClock creates a TokenService with an injected clock.
// Used by tests to pin expiry boundaries.
func NewTokenServiceWithClock(store AccountStore, clock func() time.Time) (*TokenService, error) {
	if store == nil {
		return nil, oops.Code("AUTH_INVALID_DEPENDENCY").Errorf("account store is required")
	}
	if clock == nil {
		return nil, oops.Code("AUTH_INVALID_DEPENDENCY").Errorf("clock is required")
	}
	return &TokenService{store: store, now: clock}, nil
}

// Generate returns a fresh session token: TokenLength alphanumeric
// characters from a secure random source. The token is the sole secret
// guarding a session.
func (s *TokenService) Generate() (string, error) {
	return randAlphanumeric(TokenLength)
}

// ParseBearer extracts the opaque token from the raw Authorization header
// values of a request. Structure matches ParseBasic except the scheme must
// be Bearer. Pure; verification is a separate step.
func ParseBearer(headers []string) (string, error) {
	return authorizationPayload(headers, SchemeBearer, "AUTH_TOKEN_MISSING")
}

// Verify resolves token to its account and checks expiry.
//
// A stored token without an expiry is reported as AUTH_SESSION_STATE_MISSING
// rather than dereferenced: the pair is written atomically, so the state is
// corrupt and the session must not be honored. Expiry comparison is at
// second granularity and equality counts as expired.
func (s *TokenService) Verify(ctx context.Context, token string) (*Token, error) {
	if token == "" {
		return nil, oops.Code("AUTH_TOKEN_MISSING").Errorf("session token cannot be empty")
	}

	account, err := s.store.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, oops.Code("AUTH_TOKEN_UNKNOWN").Wrap(err)
		}
		return nil, oops.Code("AUTH_STORE_FAILED").
			With("operation", "get account by token").
			Wrap(err)
	}

	if account.TokenExpire == nil {
		return nil, oops.Code("AUTH_SESSION_STATE_MISSING").
			With("account_id", account.ID.String()).
			Errorf("session token has no expiry")
	}
	if s.now().Unix() >= account.TokenExpire.Unix() {
		return nil, oops.Code("AUTH_TOKEN_EXPIRED").
			With("token", token).
			Errorf("session token expired")
	}

	return &Token{Value: token, Account: account}, nil
}
