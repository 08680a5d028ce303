// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Gatehouse Contributors

package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/samber/oops"

	"github.com/gatehouse/gatehouse/pkg/errutil"
)

// Service orchestrates the login, signup, logout, and protected-request
// flows. It composes the extractors, the password hasher, and the token
// service over a single AccountStore and holds no session state of its own.
type Service struct {
	store  AccountStore
	hasher PasswordHasher
	tokens *TokenService
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a Service.
func NewService(store AccountStore, hasher PasswordHasher) (*Service, error) {
	return NewServiceWithLogger(store, hasher, slog.Default())
}

// NewServiceWithLogger creates a Service with an explicit logger. Store
// failures are logged with full context here; clients only ever see a
// generic internal error.
func NewServiceWithLogger(store AccountStore, hasher PasswordHasher, logger *slog.Logger) (*Service, error) {
	if store == nil {
		return nil, oops.Code("AUTH_INVALID_DEPENDENCY").Errorf("account store is required")
	}
	if hasher == nil {
		return nil, oops.Code("AUTH_INVALID_DEPENDENCY").Errorf("password hasher is required")
	}
	if logger == nil {
		return nil, oops.Code("AUTH_INVALID_DEPENDENCY").Errorf("logger is required")
	}

	tokens, err := NewTokenService(store)
	if err != nil {
		return nil, err
	}

	return &Service{
		store:  store,
		hasher: hasher,
		tokens: tokens,
		logger: logger,
		now:    time.Now,
	}, nil
}

// WithClock replaces the service clock (and the token service's) for tests.
func (s *Service) WithClock(clock func() time.Time) *Service {
	s.now = clock
	s.tokens.now = clock
	return s
}

// Tokens exposes the token service for transports that verify Bearer tokens
// directly.
func (s *Service) Tokens() *TokenService {
	return s.tokens
}

// Login verifies a username/password pair and opens a session.
//
// Unknown username and wrong password both yield AUTH_INVALID_CREDENTIALS
// with the identical message, and verification runs against a dummy digest
// when the account does not exist so response timing is uniform; username
// enumeration is prevented by both measures.
//
// The session write is a conditional swap on the previously observed token,
// so two concurrent logins cannot both succeed: the loser observes a
// conflict and reports AUTH_ALREADY_LOGGED_IN.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	account, lookupErr := s.store.GetByUsername(ctx, username)

	target := account
	exists := true
	if lookupErr != nil {
		if !errors.Is(lookupErr, ErrNotFound) {
			return "", oops.Code("AUTH_STORE_FAILED").
				With("operation", "get account by username").
				Wrap(lookupErr)
		}
		target = &Account{Salt: dummySalt, PasswordDigest: dummyDigest}
		exists = false
	}

	valid := s.hasher.Verify(password, target)
	if !exists || !valid {
		return "", oops.Code("AUTH_INVALID_CREDENTIALS").Errorf("invalid username or password")
	}

	// A still-valid session blocks a second login. The check runs against the
	// account already in hand rather than a second store round-trip, so a
	// transient lookup failure cannot masquerade as an absent session. An
	// expired or cleared token does not block: the conditional write below
	// replaces it.
	if account.SessionActiveAt(s.now()) {
		return "", oops.Code("AUTH_ALREADY_LOGGED_IN").
			With("username", username).
			Errorf("user already logged in")
	}

	token, err := s.tokens.Generate()
	if err != nil {
		return "", err
	}

	expiresAt := s.now().Add(TokenTTL)
	if err := s.store.BeginSession(ctx, account.ID, account.Token, token, expiresAt); err != nil {
		if errors.Is(err, ErrSessionConflict) {
			return "", oops.Code("AUTH_ALREADY_LOGGED_IN").
				With("username", username).
				Errorf("user already logged in")
		}
		errutil.LogError(s.logger, "failed to persist session", err)
		return "", oops.Code("AUTH_STORE_FAILED").
			With("operation", "begin session").
			Wrap(err)
	}

	return token, nil
}

// Signup creates a new account with a fresh salt and digest. The username
// must be unused; uniqueness is enforced by the store, not by a lookup, so
// two concurrent signups cannot both succeed.
func (s *Service) Signup(ctx context.Context, username, password string) (*Account, error) {
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}
	if password == "" {
		return nil, oops.Code("AUTH_INVALID_PASSWORD").Errorf("password cannot be empty")
	}

	salt, err := s.hasher.GenerateSalt(SaltLength)
	if err != nil {
		return nil, err
	}

	account, err := NewAccount(username, s.hasher.Hash(password, salt), salt)
	if err != nil {
		return nil, err
	}

	if err := s.store.Create(ctx, account); err != nil {
		if errors.Is(err, ErrExists) {
			return nil, oops.Code("AUTH_USER_EXISTS").
				With("username", username).
				Errorf("user already exists")
		}
		errutil.LogError(s.logger, "failed to create account", err)
		return nil, oops.Code("AUTH_STORE_FAILED").
			With("operation", "create account").
			Wrap(err)
	}

	return account, nil
}

// Logout clears the account's session. An account with no token set, or no
// account at all, reports AUTH_NOT_LOGGED_IN. Token and expiry are cleared
// in one atomic update.
func (s *Service) Logout(ctx context.Context, username string) error {
	account, err := s.store.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return oops.Code("AUTH_NOT_LOGGED_IN").
				With("username", username).
				Errorf("user is not logged in")
		}
		return oops.Code("AUTH_STORE_FAILED").
			With("operation", "get account by username").
			Wrap(err)
	}

	if account.Token == nil {
		return oops.Code("AUTH_NOT_LOGGED_IN").
			With("username", username).
			Errorf("user is not logged in")
	}

	if err := s.store.ClearSession(ctx, account.ID); err != nil {
		// A concurrent logout may have cleared it first; same outcome.
		if errors.Is(err, ErrNotFound) {
			return oops.Code("AUTH_NOT_LOGGED_IN").
				With("username", username).
				Errorf("user is not logged in")
		}
		errutil.LogError(s.logger, "failed to clear session", err)
		return oops.Code("AUTH_STORE_FAILED").
			With("operation", "clear session").
			Wrap(err)
	}

	return nil
}

// Authenticate resolves the Bearer token on a protected request to a Token.
// Extraction and verification errors propagate unchanged for the transport
// to map to status codes.
func (s *Service) Authenticate(ctx context.Context, headers []string) (*Token, error) {
	token, err := ParseBearer(headers)
	if err != nil {
		return nil, err
	}
	return s.tokens.Verify(ctx, token)
}
