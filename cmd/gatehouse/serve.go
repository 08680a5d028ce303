// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Gatehouse Contributors

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gatehouse/gatehouse/internal/auth"
	authpg "github.com/gatehouse/gatehouse/internal/auth/postgres"
	"github.com/gatehouse/gatehouse/internal/config"
	"github.com/gatehouse/gatehouse/internal/httpapi"
	"github.com/gatehouse/gatehouse/internal/logging"
	"github.com/gatehouse/gatehouse/internal/observability"
	"github.com/gatehouse/gatehouse/internal/store"
)

const shutdownTimeout = 5 * time.Second

const storePingTimeout = 2 * time.Second

// ServeDeps allows tests to swap the store and the observability server.
// Nil fields use the default implementations.
type ServeDeps struct {
	// StoreFactory returns the account store, a readiness probe against the
	// backing store, and a close function. A nil probe reports always-ready.
	StoreFactory func(ctx context.Context, databaseURL string) (auth.AccountStore, observability.ReadinessChecker, func(), error)
	// ObservabilityServerFactory builds the metrics/health listener.
	ObservabilityServerFactory func(addr string, checker observability.ReadinessChecker) *observability.Server
}

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the authentication API server",
		Long: `Start the HTTP authentication API along with the observability
listener and the expired-session sweeper.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(resolveConfigFile(), cmd.Flags())
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg, cmd, nil)
		},
	}

	// Flag names map to config keys with dashes replaced by dots.
	cmd.Flags().String("api-addr", "", "public API listen address")
	cmd.Flags().String("metrics-addr", "", "metrics/health HTTP address (empty = disabled)")
	cmd.Flags().String("database-url", "", "PostgreSQL connection URL")
	cmd.Flags().Duration("auth-sweep-interval", 0, "how often expired sessions are cleared")
	cmd.Flags().String("log-format", "", "log format (json or text)")
	cmd.Flags().String("log-level", "", "minimum log level")

	return cmd
}

// runServe starts the server processes with injectable dependencies. If deps
// is nil, default implementations are used.
func runServe(ctx context.Context, cfg config.Config, cmd *cobra.Command, deps *ServeDeps) error {
	if deps == nil {
		deps = &ServeDeps{}
	}
	if deps.StoreFactory == nil {
		deps.StoreFactory = func(ctx context.Context, databaseURL string) (auth.AccountStore, observability.ReadinessChecker, func(), error) {
			pool, err := store.Connect(ctx, databaseURL)
			if err != nil {
				return nil, nil, nil, err
			}
			ping := func() bool {
				pingCtx, cancel := context.WithTimeout(context.Background(), storePingTimeout)
				defer cancel()
				return pool.Ping(pingCtx) == nil
			}
			return authpg.NewAccountRepository(pool), ping, pool.Close, nil
		}
	}
	if deps.ObservabilityServerFactory == nil {
		deps.ObservabilityServerFactory = observability.NewServer
	}

	logging.SetDefault("gatehouse", version, cfg.Log.Format, cfg.Log.SlogLevel())

	slog.Info("starting gatehouse",
		"api_addr", cfg.API.Addr,
		"metrics_addr", cfg.Metrics.Addr,
		"log_format", cfg.Log.Format,
	)

	accounts, storeReady, closeStore, err := deps.StoreFactory(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer closeStore()

	slog.Info("connected to database")

	svc, err := auth.NewServiceWithLogger(accounts, auth.NewArgon2Hasher(), slog.Default())
	if err != nil {
		return fmt.Errorf("failed to build auth service: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Start observability server if configured
	var obsServer *observability.Server
	var handlerMetrics *httpapi.HandlerMetrics
	var sessionsSwept func(int64)
	if cfg.Metrics.Addr != "" {
		obsServer = deps.ObservabilityServerFactory(cfg.Metrics.Addr, storeReady)
		obsErrChan, obsErr := obsServer.Start()
		if obsErr != nil {
			return fmt.Errorf("failed to start observability server: %w", obsErr)
		}
		go monitorServerErrors(ctx, cancel, obsErrChan, "observability")

		m := obsServer.Metrics()
		handlerMetrics = &httpapi.HandlerMetrics{
			Logins:             m.LoginsTotal,
			Signups:            m.SignupsTotal,
			Logouts:            m.LogoutsTotal,
			TokenVerifications: m.TokenVerificationsTotal,
		}
		sessionsSwept = func(count int64) {
			m.SessionsSweptTotal.Add(float64(count))
		}
	}

	apiServer, err := httpapi.NewServer(cfg.API.Addr, svc, slog.Default(), handlerMetrics)
	if err != nil {
		return fmt.Errorf("failed to build api server: %w", err)
	}
	apiErrChan, err := apiServer.Start()
	if err != nil {
		if obsServer != nil {
			stopServer(obsServer, "observability")
		}
		return fmt.Errorf("failed to start api server: %w", err)
	}
	go monitorServerErrors(ctx, cancel, apiErrChan, "api")

	// Sweeper runs until the serve context is cancelled
	sweeper := auth.NewSweeper(accounts, cfg.Auth.SweepInterval, slog.Default(), sessionsSwept)
	go sweeper.Run(ctx)

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	cmd.Println("Gatehouse started")
	slog.Info("gatehouse ready", "api_addr", apiServer.Addr())

	select {
	case sig := <-sigChan:
		slog.Info("received shutdown signal", "signal", sig)
	case <-ctx.Done():
		slog.Info("context cancelled, shutting down")
	}

	slog.Info("shutting down...")

	stopServer(apiServer, "api")
	if obsServer != nil {
		stopServer(obsServer, "observability")
	}

	slog.Info("shutdown complete")
	return nil
}

// stoppable is satisfied by both server types.
type stoppable interface {
	Stop(ctx context.Context) error
}

func stopServer(srv stoppable, name string) {
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		slog.Warn("error stopping server", "server", name, "error", err)
	}
}

// monitorServerErrors cancels the serve context when a server reports a
// failure. It exits when an error arrives, the channel closes, or the
// context is cancelled.
func monitorServerErrors(ctx context.Context, cancel context.CancelFunc, errCh <-chan error, serverName string) {
	select {
	case err, ok := <-errCh:
		if !ok {
			return
		}
		if err != nil {
			slog.Error("server error, triggering shutdown",
				"server", serverName,
				"error", err,
			)
			cancel()
		}
	case <-ctx.Done():
	}
}
