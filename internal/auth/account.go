// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Gatehouse Contributors

package auth

import (
	"context"
	"regexp"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// DefaultRole is the permission level assigned at signup. The value is opaque
// to this package; authorization layers interpret it.
const DefaultRole = 1

// Username validation constraints.
const (
	MinUsernameLength = 3
	MaxUsernameLength = 30
)

// usernameRegex matches usernames that start with a letter and contain only
// letters, numbers, and underscores.
var usernameRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

// Account is a stored user account. Token and TokenExpire are set together
// while a session is active and are both nil when logged out; the core never
// caches Account state beyond a single request.
type Account struct {
	ID             ulid.ULID
	Username       string
	PasswordDigest string
	Salt           string
	Role           int
	Token          *string
	TokenExpire    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewAccount creates a validated Account with a fresh ID and the default role.
// PasswordDigest and Salt must already be produced by a PasswordHasher.
func NewAccount(username, passwordDigest, salt string) (*Account, error) {
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}
	if passwordDigest == "" {
		return nil, oops.Code("AUTH_INVALID_ACCOUNT").Errorf("password digest cannot be empty")
	}
	if salt == "" {
		return nil, oops.Code("AUTH_INVALID_ACCOUNT").Errorf("salt cannot be empty")
	}

	now := time.Now()
	return &Account{
		ID:             ulid.Make(),
		Username:       username,
		PasswordDigest: passwordDigest,
		Salt:           salt,
		Role:           DefaultRole,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// SessionActiveAt reports whether the account holds a session that is still
// valid at t: both token and expiry present, and t strictly before the expiry.
// Comparison is at second granularity; equality counts as expired.
func (a *Account) SessionActiveAt(t time.Time) bool {
	return a.Token != nil && a.TokenExpire != nil && t.Unix() < a.TokenExpire.Unix()
}

// ValidateUsername validates a username: MinUsernameLength to
// MaxUsernameLength characters, starting with a letter, containing only
// letters, numbers, and underscores.
func ValidateUsername(username string) error {
	if username == "" {
		return oops.Code("AUTH_INVALID_USERNAME").Errorf("username cannot be empty")
	}
	if len(username) < MinUsernameLength {
		return oops.Code("AUTH_INVALID_USERNAME").
			With("min", MinUsernameLength).
			Errorf("username must be at least %d characters", MinUsernameLength)
	}
	if len(username) > MaxUsernameLength {
		return oops.Code("AUTH_INVALID_USERNAME").
			With("max", MaxUsernameLength).
			Errorf("username must be at most %d characters", MaxUsernameLength)
	}
	if !usernameRegex.MatchString(username) {
		return oops.Code("AUTH_INVALID_USERNAME").
			Errorf("username must start with a letter and contain only letters, numbers, and underscores")
	}
	return nil
}

// AccountStore manages account persistence. It is the sole source of truth
// for session state; implementations must serialize mutations to a single
// account's token/expiry pair.
type AccountStore interface {
	// Create stores a new account. Returns an error wrapping ErrExists when
	// the username is already taken.
	Create(ctx context.Context, account *Account) error

	// GetByID retrieves an account by ID.
	GetByID(ctx context.Context, id ulid.ULID) (*Account, error)

	// GetByUsername retrieves an account by exact username.
	GetByUsername(ctx context.Context, username string) (*Account, error)

	// GetByToken retrieves the account holding the exact session token.
	GetByToken(ctx context.Context, token string) (*Account, error)

	// BeginSession writes token and expiry in one atomic update, but only if
	// the stored token still equals prevToken (nil meaning no session).
	// Returns an error wrapping ErrSessionConflict when the stored token has
	// changed since it was read, and one wrapping ErrNotFound when the
	// account does not exist.
	BeginSession(ctx context.Context, id ulid.ULID, prevToken *string, token string, expiresAt time.Time) error

	// ClearSession atomically clears both token and expiry. Returns an error
	// wrapping ErrNotFound when the account has no active session to clear.
	ClearSession(ctx context.Context, id ulid.ULID) error

	// DeleteExpiredSessions clears every token/expiry pair whose expiry is in
	// the past and returns the number of sessions cleared.
	DeleteExpiredSessions(ctx context.Context) (int64, error)
}
