// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Gatehouse Contributors

package auth

import (
	"context"
	"log/slog"
	"time"
)

// Sweeper periodically clears expired sessions from the store. Request
// handling never depends on it; expiry is always checked at verification
// time. The sweeper only keeps the table from accumulating dead rows.
type Sweeper struct {
	store    AccountStore
	interval time.Duration
	logger   *slog.Logger
	onSwept  func(count int64)
}

// NewSweeper creates a Sweeper. onSwept, when non-nil, is called after each
// sweep that cleared at least one session.
func NewSweeper(store AccountStore, interval time.Duration, logger *slog.Logger, onSwept func(count int64)) *Sweeper {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sweeper{store: store, interval: interval, logger: logger, onSwept: onSwept}
}

// Run sweeps on every interval tick until ctx is cancelled. Store errors are
// logged and the loop continues; a transient failure must not kill the
// sweeper.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	count, err := s.store.DeleteExpiredSessions(ctx)
	if err != nil {
		s.logger.Error("session sweep failed", "error", err)
		return
	}
	if count > 0 {
		s.logger.Info("cleared expired sessions", "count", count)
		if s.onSwept != nil {
			s.onSwept(count)
		}
	}
}
