// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Gatehouse Contributors

package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gatehouse/gatehouse/pkg/errutil"
)

// Response is the wire envelope for every API reply. Body carries the
// payload (the session token on login, empty otherwise); Message is
// human-readable.
type Response struct {
	Body    string `json:"body"`
	Message string `json:"message"`
}

// respond writes the envelope with the given status.
func respond(c *gin.Context, status int, body, message string) {
	c.JSON(status, Response{Body: body, Message: message})
}

// internalError is the only thing a client sees for a store failure; the
// cause is logged server-side.
func internalError(c *gin.Context) {
	respond(c, http.StatusInternalServerError, "", "internal server error")
}

// statusForAuthError maps the stable codes of the auth core to HTTP status
// codes. Malformed requests are 400; failed authentication is 401; store
// trouble is 500. Unknown codes are treated as internal errors so a new
// code can never silently grant access.
func statusForAuthError(err error) int {
	switch errutil.CodeOf(err) {
	case "AUTH_HEADER_MISSING", "AUTH_HEADER_INVALID",
		"AUTH_METHOD_MISSING", "AUTH_METHOD_INVALID",
		"AUTH_CREDENTIAL_MISSING", "AUTH_CREDENTIAL_INVALID",
		"AUTH_DECODE_FAILED", "AUTH_ENCODING_INVALID",
		"AUTH_TOKEN_MISSING",
		"AUTH_INVALID_USERNAME", "AUTH_INVALID_PASSWORD",
		"AUTH_ALREADY_LOGGED_IN", "AUTH_NOT_LOGGED_IN", "AUTH_USER_EXISTS":
		return http.StatusBadRequest
	case "AUTH_INVALID_CREDENTIALS",
		"AUTH_TOKEN_UNKNOWN", "AUTH_TOKEN_EXPIRED", "AUTH_SESSION_STATE_MISSING":
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
