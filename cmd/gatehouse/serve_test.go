// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Gatehouse Contributors

package main

import (
	"bytes"
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatehouse/gatehouse/internal/auth"
	"github.com/gatehouse/gatehouse/internal/auth/memory"
	"github.com/gatehouse/gatehouse/internal/config"
	"github.com/gatehouse/gatehouse/internal/observability"
)

func TestServeCommand_Flags(t *testing.T) {
	cmd := NewServeCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	require.NoError(t, cmd.Execute())

	output := buf.String()
	expectedFlags := []string{
		"--api-addr",
		"--metrics-addr",
		"--database-url",
		"--auth-sweep-interval",
		"--log-format",
		"--log-level",
	}
	for _, flag := range expectedFlags {
		assert.Contains(t, output, flag, "Help missing %q flag", flag)
	}
}

func TestServeCommand_Properties(t *testing.T) {
	cmd := NewServeCmd()

	assert.Equal(t, "serve", cmd.Use)
	assert.Contains(t, cmd.Short, "API")
	assert.Contains(t, cmd.Long, "sweeper")
}

func TestServeCommand_NoDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	configFile = ""

	cmd := NewRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"serve"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "database.url") ||
		strings.Contains(err.Error(), "DATABASE_URL"),
		"error should mention the missing database URL, got: %v", err)
}

func testServeConfig() config.Config {
	cfg := config.Default()
	cfg.API.Addr = "127.0.0.1:0"
	cfg.Metrics.Addr = "127.0.0.1:0"
	cfg.Database.URL = "postgres://unused/unused"
	cfg.Auth.SweepInterval = time.Hour
	return cfg
}

func testStoreFactory(context.Context, string) (auth.AccountStore, observability.ReadinessChecker, func(), error) {
	return memory.NewAccountStore(), func() bool { return true }, func() {}, nil
}

func TestRunServe_StartsAndStopsOnContextCancel(t *testing.T) {
	deps := &ServeDeps{StoreFactory: testStoreFactory}

	ctx, cancel := context.WithCancel(context.Background())

	cmd := &cobra.Command{}
	out := new(bytes.Buffer)
	cmd.SetOut(out)

	done := make(chan error, 1)
	go func() {
		done <- runServe(ctx, testServeConfig(), cmd, deps)
	}()

	// Give the servers a moment to come up, then trigger shutdown.
	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("timeout waiting for serve to shut down")
	}

	assert.Contains(t, out.String(), "Gatehouse started")
}

func TestRunServe_StoreFactoryFailure(t *testing.T) {
	deps := &ServeDeps{
		StoreFactory: func(context.Context, string) (auth.AccountStore, observability.ReadinessChecker, func(), error) {
			return nil, nil, nil, assert.AnError
		},
	}

	cmd := &cobra.Command{}
	cmd.SetOut(new(bytes.Buffer))

	err := runServe(context.Background(), testServeConfig(), cmd, deps)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database")
}

func TestRunServe_ReadinessReflectsStoreProbe(t *testing.T) {
	var storeUp atomic.Bool
	storeUp.Store(true)

	// The checker handed to the observability server must be the probe the
	// store factory returned, so readiness tracks the backing store.
	wired := make(chan observability.ReadinessChecker, 1)
	deps := &ServeDeps{
		StoreFactory: func(context.Context, string) (auth.AccountStore, observability.ReadinessChecker, func(), error) {
			return memory.NewAccountStore(), func() bool { return storeUp.Load() }, func() {}, nil
		},
		ObservabilityServerFactory: func(addr string, checker observability.ReadinessChecker) *observability.Server {
			wired <- checker
			return observability.NewServer(addr, checker)
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cmd := &cobra.Command{}
	cmd.SetOut(new(bytes.Buffer))

	done := make(chan error, 1)
	go func() {
		done <- runServe(ctx, testServeConfig(), cmd, deps)
	}()

	var checker observability.ReadinessChecker
	select {
	case checker = <-wired:
	case <-time.After(10 * time.Second):
		t.Fatal("timeout waiting for observability server")
	}

	require.NotNil(t, checker)
	assert.True(t, checker())
	storeUp.Store(false)
	assert.False(t, checker())

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("timeout waiting for serve to shut down")
	}
}

func TestRunServe_MetricsDisabled(t *testing.T) {
	deps := &ServeDeps{StoreFactory: testStoreFactory}

	cfg := testServeConfig()
	cfg.Metrics.Addr = ""

	ctx, cancel := context.WithCancel(context.Background())

	cmd := &cobra.Command{}
	cmd.SetOut(new(bytes.Buffer))

	done := make(chan error, 1)
	go func() {
		done <- runServe(ctx, cfg, cmd, deps)
	}()

	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("timeout waiting for serve to shut down")
	}
}
