// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Gatehouse Contributors

package auth

import (
	"strings"

	"github.com/samber/oops"
)

// Supported Authorization schemes. Matching is case-sensitive.
const (
	SchemeBasic  = "Basic"
	SchemeBearer = "Bearer"
)

// authorizationPayload extracts the payload of the single Authorization
// header carrying the given scheme. headers holds every Authorization value
// present on the request, in order.
//
// The structural contract is shared by Basic and Bearer extraction; only the
// scheme and the code reported for a missing payload differ.
func authorizationPayload(headers []string, scheme, payloadMissingCode string) (string, error) {
	switch len(headers) {
	case 0:
		return "", oops.Code("AUTH_HEADER_MISSING").Errorf("authorization header missing")
	case 1:
		// fall through to parse
	default:
		return "", oops.Code("AUTH_HEADER_INVALID").
			With("count", len(headers)).
			Errorf("multiple authorization headers")
	}

	parts := strings.Fields(headers[0])
	if len(parts) == 0 {
		return "", oops.Code("AUTH_METHOD_MISSING").Errorf("authorization method missing")
	}
	if parts[0] != scheme {
		return "", oops.Code("AUTH_METHOD_INVALID").
			With("scheme", parts[0]).
			Errorf("unsupported authorization method %q", parts[0])
	}
	if len(parts) < 2 {
		return "", oops.Code(payloadMissingCode).Errorf("authorization payload missing")
	}
	return parts[1], nil
}
