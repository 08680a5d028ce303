// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Gatehouse Contributors

package auth

import (
	"encoding/base64"
	"strings"
	"unicode/utf8"

	"github.com/samber/oops"
)

// Credential is a username/password pair decoded from a Basic Authorization
// header. It is request-scoped: used once for verification and discarded.
type Credential struct {
	Username string
	Password string
}

// ParseBasic decodes a Basic credential from the raw Authorization header
// values of a request. It is a pure function with no side effects; transports
// call it before any handler runs.
func ParseBasic(headers []string) (*Credential, error) {
	payload, err := authorizationPayload(headers, SchemeBasic, "AUTH_CREDENTIAL_MISSING")
	if err != nil {
		return nil, err
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, oops.Code("AUTH_DECODE_FAILED").
			With("operation", "decode base64 credential").
			Wrap(err)
	}
	if !utf8.Valid(raw) {
		return nil, oops.Code("AUTH_ENCODING_INVALID").Errorf("credential is not valid UTF-8")
	}

	// Split on the first colon only: passwords may themselves contain colons
	// and must be preserved verbatim.
	username, password, found := strings.Cut(string(raw), ":")
	if !found {
		return nil, oops.Code("AUTH_CREDENTIAL_INVALID").Errorf("credential must be username:password")
	}

	return &Credential{Username: username, Password: password}, nil
}
