// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Gatehouse Contributors

package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gobwas/glob"
	"github.com/samber/oops"

	"github.com/gatehouse/gatehouse/internal/auth"
	"github.com/gatehouse/gatehouse/pkg/errutil"
)

// ContextTokenKey is the gin context key under which RequireToken stores the
// resolved *auth.Token.
const ContextTokenKey = "gatehouse.token"

// TokenFromContext returns the token RequireToken resolved for this request.
func TokenFromContext(c *gin.Context) (*auth.Token, bool) {
	v, ok := c.Get(ContextTokenKey)
	if !ok {
		return nil, false
	}
	token, ok := v.(*auth.Token)
	return token, ok
}

// RequireToken returns a middleware that authenticates every request with a
// Bearer token before its handler runs. Paths matching one of publicPatterns
// (glob syntax) pass through unauthenticated.
//
// Malformed headers are 400; unknown, expired, or corrupt tokens are 401;
// the message never distinguishes unknown from expired.
func RequireToken(svc *auth.Service, publicPatterns []string, verifications *outcomeCounter) (gin.HandlerFunc, error) {
	public := make([]glob.Glob, 0, len(publicPatterns))
	for _, pattern := range publicPatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, oops.Code("API_INVALID_PATTERN").
				With("pattern", pattern).
				Wrap(err)
		}
		public = append(public, g)
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, g := range public {
			if g.Match(path) {
				c.Next()
				return
			}
		}

		token, err := svc.Authenticate(c.Request.Context(), c.Request.Header.Values("Authorization"))
		if err != nil {
			verifications.record(err)
			status := statusForAuthError(err)
			if status == http.StatusInternalServerError {
				errutil.LogError(slog.Default(), "token verification failed", err)
				internalError(c)
			} else {
				respond(c, status, "", "invalid or missing token")
			}
			c.Abort()
			return
		}

		verifications.record(nil)
		c.Set(ContextTokenKey, token)
		c.Next()
	}, nil
}

// requestLogger logs one line per request with method, path, status, and
// duration, through the process slog handler.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.InfoContext(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
