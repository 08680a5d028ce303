// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Gatehouse Contributors

// Package httpapi serves the public authentication API. All responses use a
// {body, message} JSON envelope.
package httpapi

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/oops"

	"github.com/gatehouse/gatehouse/internal/auth"
)

// publicPaths are served without a bearer token. Everything else under the
// router requires one.
var publicPaths = []string{
	"/api/login",
	"/api/signup",
	"/api/logout/*",
}

// Server serves the authentication API over HTTP.
type Server struct {
	addr       string
	listener   net.Listener
	httpServer *http.Server
	engine     *gin.Engine
	running    atomic.Bool
}

// NewServer builds the gin engine with all routes registered. Metrics may be
// nil.
func NewServer(addr string, svc *auth.Service, logger *slog.Logger, metrics *HandlerMetrics) (*Server, error) {
	handler, err := NewHandler(svc, logger, metrics)
	if err != nil {
		return nil, err
	}

	var verifications *outcomeCounter
	if metrics != nil {
		verifications = newOutcomeCounter(metrics.TokenVerifications)
	}
	requireToken, err := RequireToken(svc, publicPaths, verifications)
	if err != nil {
		return nil, err
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger())

	api := engine.Group("/api", requireToken)
	api.GET("/login", handler.Login)
	api.POST("/signup", handler.Signup)
	api.GET("/logout/:username", handler.Logout)
	api.GET("/whoami", handler.Whoami)

	return &Server{addr: addr, engine: engine}, nil
}

// Engine exposes the router for in-process tests.
func (s *Server) Engine() http.Handler {
	return s.engine
}

// Start begins serving the API. It returns an error channel that receives
// any server failure after startup and is closed on graceful stop.
func (s *Server) Start() (<-chan error, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, oops.Errorf("api server already running")
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		s.running.Store(false)
		return nil, oops.With("addr", s.addr).Wrap(err)
	}
	s.listener = listener

	httpSrv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.httpServer = httpSrv

	errCh := make(chan error, 1)

	go func() {
		defer close(errCh)
		if serveErr := httpSrv.Serve(listener); serveErr != nil && serveErr != http.ErrServerClosed {
			slog.Error("api server error", "error", serveErr)
			errCh <- serveErr
		}
	}()

	slog.Info("api server started", "addr", listener.Addr().String())
	return errCh, nil
}

// Stop gracefully shuts down the API server.
func (s *Server) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			// Restore running state so the server can be stopped again
			s.running.Store(true)
			return oops.With("operation", "shutdown_api_server").Wrap(err)
		}
	}

	slog.Info("api server stopped")
	return nil
}

// Addr returns the listen address, or "" when not running.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return ""
}
