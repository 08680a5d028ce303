// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Gatehouse Contributors

// Package postgres implements auth.AccountStore on PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/gatehouse/gatehouse/internal/auth"
)

// poolIface abstracts the pgx pool methods the repository uses, so tests can
// substitute pgxmock.
type poolIface interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// AccountRepository implements auth.AccountStore using PostgreSQL.
type AccountRepository struct {
	pool poolIface
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool poolIface) *AccountRepository {
	return &AccountRepository{pool: pool}
}

const accountColumns = `id, username, password_digest, salt, role, token, token_expire, created_at, updated_at`

// Create stores a new account. A duplicate username surfaces as an error
// wrapping auth.ErrExists via the unique constraint, so concurrent signups
// cannot both succeed.
func (r *AccountRepository) Create(ctx context.Context, account *auth.Account) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO accounts (id, username, password_digest, salt, role, token, token_expire, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		account.ID.String(),
		account.Username,
		account.PasswordDigest,
		account.Salt,
		account.Role,
		account.Token,
		account.TokenExpire,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return oops.Code("ACCOUNT_CREATE_FAILED").
				With("username", account.Username).
				Wrap(auth.ErrExists)
		}
		return oops.Code("ACCOUNT_CREATE_FAILED").
			With("operation", "insert account").
			With("username", account.Username).
			Wrap(err)
	}
	return nil
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id ulid.ULID) (*auth.Account, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE id = $1
	`, id.String())

	account, err := r.scanAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("ACCOUNT_NOT_FOUND").
			With("id", id.String()).
			Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("ACCOUNT_GET_BY_ID_FAILED").
			With("operation", "get account by id").
			With("id", id.String()).
			Wrap(err)
	}
	return account, nil
}

// GetByUsername retrieves an account by exact username.
func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*auth.Account, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE username = $1
	`, username)

	account, err := r.scanAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("ACCOUNT_NOT_FOUND").
			With("username", username).
			Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("ACCOUNT_GET_BY_USERNAME_FAILED").
			With("operation", "get account by username").
			With("username", username).
			Wrap(err)
	}
	return account, nil
}

// GetByToken retrieves the account holding the exact session token.
func (r *AccountRepository) GetByToken(ctx context.Context, token string) (*auth.Account, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE token = $1
	`, token)

	account, err := r.scanAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("ACCOUNT_NOT_FOUND").Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("ACCOUNT_GET_BY_TOKEN_FAILED").
			With("operation", "get account by token").
			Wrap(err)
	}
	return account, nil
}

// BeginSession writes token and expiry in a single conditional update. The
// WHERE clause compares against the token the caller observed (NULL when
// logged out), so a concurrent login that already replaced it makes this a
// no-op reported as auth.ErrSessionConflict.
func (r *AccountRepository) BeginSession(ctx context.Context, id ulid.ULID, prevToken *string, token string, expiresAt time.Time) error {
	result, err := r.pool.Exec(ctx, `
		UPDATE accounts
		SET token = $2, token_expire = $3, updated_at = $4
		WHERE id = $1 AND token IS NOT DISTINCT FROM $5
	`, id.String(), token, expiresAt, time.Now(), prevToken)
	if err != nil {
		return oops.Code("SESSION_BEGIN_FAILED").
			With("operation", "begin session").
			With("id", id.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		exists, checkErr := r.accountExists(ctx, id)
		if checkErr != nil {
			return checkErr
		}
		if !exists {
			return oops.Code("ACCOUNT_NOT_FOUND").
				With("id", id.String()).
				Wrap(auth.ErrNotFound)
		}
		return oops.Code("SESSION_CONFLICT").
			With("id", id.String()).
			Wrap(auth.ErrSessionConflict)
	}
	return nil
}

// ClearSession clears token and expiry together in one statement, so no
// failure can leave a token without an expiry.
func (r *AccountRepository) ClearSession(ctx context.Context, id ulid.ULID) error {
	result, err := r.pool.Exec(ctx, `
		UPDATE accounts
		SET token = NULL, token_expire = NULL, updated_at = $2
		WHERE id = $1 AND token IS NOT NULL
	`, id.String(), time.Now())
	if err != nil {
		return oops.Code("SESSION_CLEAR_FAILED").
			With("operation", "clear session").
			With("id", id.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("SESSION_NOT_FOUND").
			With("id", id.String()).
			Wrap(auth.ErrNotFound)
	}
	return nil
}

// DeleteExpiredSessions clears every expired token/expiry pair and returns
// the number of sessions cleared.
func (r *AccountRepository) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	result, err := r.pool.Exec(ctx, `
		UPDATE accounts
		SET token = NULL, token_expire = NULL, updated_at = $1
		WHERE token_expire IS NOT NULL AND token_expire <= $1
	`, time.Now())
	if err != nil {
		return 0, oops.Code("SESSION_DELETE_EXPIRED_FAILED").
			With("operation", "delete expired sessions").
			Wrap(err)
	}
	return result.RowsAffected(), nil
}

// accountExists distinguishes a lost conditional update from a missing row.
func (r *AccountRepository) accountExists(ctx context.Context, id ulid.ULID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM accounts WHERE id = $1)`,
		id.String()).Scan(&exists)
	if err != nil {
		return false, oops.Code("ACCOUNT_EXISTS_CHECK_FAILED").
			With("operation", "check account exists").
			With("id", id.String()).
			Wrap(err)
	}
	return exists, nil
}

// scanAccount scans a single row into an Account. Callers are responsible
// for handling pgx.ErrNoRows.
func (r *AccountRepository) scanAccount(row pgx.Row) (*auth.Account, error) {
	var (
		idStr       string
		username    string
		digest      string
		salt        string
		role        int
		token       *string
		tokenExpire *time.Time
		createdAt   time.Time
		updatedAt   time.Time
	)

	err := row.Scan(&idStr, &username, &digest, &salt, &role, &token, &tokenExpire, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err //nolint:wrapcheck // Callers wrap with context-specific info
		}
		return nil, oops.Code("ACCOUNT_SCAN_FAILED").
			With("operation", "scan account").
			Wrap(err)
	}

	id, err := ulid.Parse(idStr)
	if err != nil {
		return nil, oops.Code("ACCOUNT_INVALID_ID").
			With("operation", "parse account id").
			With("id", idStr).
			Wrap(err)
	}

	return &auth.Account{
		ID:             id,
		Username:       username,
		PasswordDigest: digest,
		Salt:           salt,
		Role:           role,
		Token:          token,
		TokenExpire:    tokenExpire,
		CreatedAt:      createdAt,
		UpdatedAt:      updatedAt,
	}, nil
}

// Compile-time interface check.
var _ auth.AccountStore = (*AccountRepository)(nil)
