// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Gatehouse Contributors

package httpapi

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gatehouse/gatehouse/internal/auth"
	"github.com/gatehouse/gatehouse/pkg/errutil"
)

// Handler carries the auth service into the route handlers.
type Handler struct {
	svc     *auth.Service
	logger  *slog.Logger
	logins  *outcomeCounter
	signups *outcomeCounter
	logouts *outcomeCounter
}

// NewHandler creates a Handler. Metrics counters may be nil, in which case
// outcomes are not recorded.
func NewHandler(svc *auth.Service, logger *slog.Logger, metrics *HandlerMetrics) (*Handler, error) {
	if svc == nil {
		return nil, fmt.Errorf("auth service is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{svc: svc, logger: logger}
	if metrics != nil {
		h.logins = newOutcomeCounter(metrics.Logins)
		h.signups = newOutcomeCounter(metrics.Signups)
		h.logouts = newOutcomeCounter(metrics.Logouts)
	}
	return h, nil
}

// Login authenticates the Basic credential in the Authorization header and
// opens a session. The token is returned in the response body field.
func (h *Handler) Login(c *gin.Context) {
	cred, err := auth.ParseBasic(c.Request.Header.Values("Authorization"))
	if err != nil {
		h.logins.record(err)
		respond(c, statusForAuthError(err), "", "invalid authorization header")
		return
	}

	token, err := h.svc.Login(c.Request.Context(), cred.Username, cred.Password)
	h.logins.record(err)
	if err != nil {
		switch errutil.CodeOf(err) {
		case "AUTH_INVALID_CREDENTIALS":
			respond(c, http.StatusUnauthorized, "", "invalid username or password")
		case "AUTH_ALREADY_LOGGED_IN":
			respond(c, http.StatusBadRequest, "",
				fmt.Sprintf("user: %s has already login", cred.Username))
		default:
			errutil.LogError(h.logger, "login failed", err)
			internalError(c)
		}
		return
	}

	respond(c, http.StatusOK, token,
		fmt.Sprintf("user: %s login successfully", cred.Username))
}

// Signup registers a new account from the form fields name and password.
func (h *Handler) Signup(c *gin.Context) {
	name := c.PostForm("name")
	password := c.PostForm("password")

	_, err := h.svc.Signup(c.Request.Context(), name, password)
	h.signups.record(err)
	if err != nil {
		switch errutil.CodeOf(err) {
		case "AUTH_USER_EXISTS":
			respond(c, http.StatusBadRequest, "", fmt.Sprintf("user: %s exists", name))
		case "AUTH_INVALID_USERNAME":
			respond(c, http.StatusBadRequest, "", "invalid username")
		case "AUTH_INVALID_PASSWORD":
			respond(c, http.StatusBadRequest, "", "invalid password")
		default:
			errutil.LogError(h.logger, "signup failed", err)
			internalError(c)
		}
		return
	}

	respond(c, http.StatusOK, "", fmt.Sprintf("user: %s signed up", name))
}

// Logout closes the named account's session.
func (h *Handler) Logout(c *gin.Context) {
	username := c.Param("username")

	err := h.svc.Logout(c.Request.Context(), username)
	h.logouts.record(err)
	if err != nil {
		if errutil.CodeOf(err) == "AUTH_NOT_LOGGED_IN" {
			respond(c, http.StatusBadRequest, "",
				fmt.Sprintf("user: %s doesn't login", username))
			return
		}
		errutil.LogError(h.logger, "logout failed", err)
		internalError(c)
		return
	}

	respond(c, http.StatusOK, "",
		fmt.Sprintf("user: %s logout successfully", username))
}

// Whoami reports the account behind the bearer token resolved by the
// RequireToken middleware.
func (h *Handler) Whoami(c *gin.Context) {
	token, ok := TokenFromContext(c)
	if !ok || token.Account == nil {
		internalError(c)
		return
	}
	respond(c, http.StatusOK, token.Account.Username,
		fmt.Sprintf("user: %s is logged in", token.Account.Username))
}
