// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Gatehouse Contributors

//go:build integration

package postgres_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/gatehouse/gatehouse/internal/auth"
	"github.com/gatehouse/gatehouse/internal/auth/postgres"
	"github.com/gatehouse/gatehouse/internal/store"
)

// testPool is the shared database pool for integration tests.
var testPool *pgxpool.Pool

// TestMain sets up a PostgreSQL testcontainer and runs migrations.
func TestMain(m *testing.M) {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("gatehouse_test"),
		tcpostgres.WithUsername("gatehouse"),
		tcpostgres.WithPassword("gatehouse"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		panic("failed to start postgres container: " + err.Error())
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		panic("failed to get connection string: " + err.Error())
	}

	migrator, err := store.NewMigrator(connStr)
	if err != nil {
		_ = container.Terminate(ctx)
		panic("failed to create migrator: " + err.Error())
	}
	if err := migrator.Up(); err != nil {
		_ = migrator.Close()
		_ = container.Terminate(ctx)
		panic("failed to run migrations: " + err.Error())
	}
	_ = migrator.Close()

	pool, err := store.Connect(ctx, connStr)
	if err != nil {
		_ = container.Terminate(ctx)
		panic("failed to create pool: " + err.Error())
	}

	testPool = pool
	code := m.Run()

	pool.Close()
	_ = container.Terminate(ctx)

	os.Exit(code)
}

// createTestAccount inserts an account and registers cleanup.
func createTestAccount(ctx context.Context, t *testing.T, repo *postgres.AccountRepository) *auth.Account {
	t.Helper()
	account, err := auth.NewAccount("user_"+ulid.Make().String()[:20], "digest", "salt")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, account))

	t.Cleanup(func() {
		_, _ = testPool.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, account.ID.String())
	})
	return account
}

func TestAccountRepository_Integration_CreateAndLookup(t *testing.T) {
	ctx := context.Background()
	repo := postgres.NewAccountRepository(testPool)

	account := createTestAccount(ctx, t, repo)

	t.Run("get by id", func(t *testing.T) {
		got, err := repo.GetByID(ctx, account.ID)
		require.NoError(t, err)
		assert.Equal(t, account.Username, got.Username)
		assert.Nil(t, got.Token)
		assert.Nil(t, got.TokenExpire)
	})

	t.Run("get by username", func(t *testing.T) {
		got, err := repo.GetByUsername(ctx, account.Username)
		require.NoError(t, err)
		assert.Equal(t, account.ID, got.ID)
	})

	t.Run("duplicate username wraps ErrExists", func(t *testing.T) {
		dup, err := auth.NewAccount(account.Username, "digest", "salt")
		require.NoError(t, err)
		err = repo.Create(ctx, dup)
		require.Error(t, err)
		assert.ErrorIs(t, err, auth.ErrExists)
	})

	t.Run("unknown username wraps ErrNotFound", func(t *testing.T) {
		_, err := repo.GetByUsername(ctx, "nosuchuser")
		require.Error(t, err)
		assert.ErrorIs(t, err, auth.ErrNotFound)
	})
}

func TestAccountRepository_Integration_SessionLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := postgres.NewAccountRepository(testPool)

	account := createTestAccount(ctx, t, repo)
	expiry := time.Now().Add(24 * time.Hour)

	require.NoError(t, repo.BeginSession(ctx, account.ID, nil, "integrationtoken1", expiry))

	t.Run("token resolves to the account", func(t *testing.T) {
		got, err := repo.GetByToken(ctx, "integrationtoken1")
		require.NoError(t, err)
		assert.Equal(t, account.ID, got.ID)
		require.NotNil(t, got.TokenExpire)
		assert.Equal(t, expiry.Unix(), got.TokenExpire.Unix())
	})

	t.Run("stale conditional write conflicts", func(t *testing.T) {
		err := repo.BeginSession(ctx, account.ID, nil, "integrationtoken2", expiry)
		require.Error(t, err)
		assert.ErrorIs(t, err, auth.ErrSessionConflict)
	})

	t.Run("swap with observed token succeeds", func(t *testing.T) {
		prev := "integrationtoken1"
		require.NoError(t, repo.BeginSession(ctx, account.ID, &prev, "integrationtoken2", expiry))
		_, err := repo.GetByToken(ctx, "integrationtoken1")
		assert.ErrorIs(t, err, auth.ErrNotFound)
	})

	t.Run("clear removes both columns", func(t *testing.T) {
		require.NoError(t, repo.ClearSession(ctx, account.ID))
		got, err := repo.GetByID(ctx, account.ID)
		require.NoError(t, err)
		assert.Nil(t, got.Token)
		assert.Nil(t, got.TokenExpire)
	})

	t.Run("second clear wraps ErrNotFound", func(t *testing.T) {
		err := repo.ClearSession(ctx, account.ID)
		require.Error(t, err)
		assert.ErrorIs(t, err, auth.ErrNotFound)
	})
}

func TestAccountRepository_Integration_BeginSessionUnknownAccount(t *testing.T) {
	ctx := context.Background()
	repo := postgres.NewAccountRepository(testPool)

	err := repo.BeginSession(ctx, ulid.Make(), nil, "sometoken", time.Now().Add(time.Hour))
	require.Error(t, err)
	assert.ErrorIs(t, err, auth.ErrNotFound)
}

func TestAccountRepository_Integration_DeleteExpiredSessions(t *testing.T) {
	ctx := context.Background()
	repo := postgres.NewAccountRepository(testPool)

	expired := createTestAccount(ctx, t, repo)
	require.NoError(t, repo.BeginSession(ctx, expired.ID, nil, "expiredintegration", time.Now().Add(-time.Minute)))

	active := createTestAccount(ctx, t, repo)
	require.NoError(t, repo.BeginSession(ctx, active.ID, nil, "activeintegration", time.Now().Add(time.Hour)))

	count, err := repo.DeleteExpiredSessions(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, count, int64(1))

	_, err = repo.GetByToken(ctx, "expiredintegration")
	assert.ErrorIs(t, err, auth.ErrNotFound)
	_, err = repo.GetByToken(ctx, "activeintegration")
	assert.NoError(t, err)
}
