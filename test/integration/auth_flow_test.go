// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Gatehouse Contributors

//go:build integration

package integration_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/gatehouse/gatehouse/internal/httpapi"
)

// get performs a GET with an optional Authorization header and decodes the
// response envelope.
func get(path, authorization string) (int, httpapi.Response) {
	req, err := http.NewRequest(http.MethodGet, env.baseURL+path, nil)
	Expect(err).NotTo(HaveOccurred())
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	return do(req)
}

func postForm(path string, form url.Values) (int, httpapi.Response) {
	req, err := http.NewRequest(http.MethodPost, env.baseURL+path, strings.NewReader(form.Encode()))
	Expect(err).NotTo(HaveOccurred())
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return do(req)
}

func do(req *http.Request) (int, httpapi.Response) {
	resp, err := http.DefaultClient.Do(req)
	Expect(err).NotTo(HaveOccurred())
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	Expect(err).NotTo(HaveOccurred())

	var envelope httpapi.Response
	Expect(json.Unmarshal(body, &envelope)).To(Succeed(), "body: %s", string(body))
	return resp.StatusCode, envelope
}

func basicAuth(username, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}

func signup(name, password string) (int, httpapi.Response) {
	return postForm("/api/signup", url.Values{"name": {name}, "password": {password}})
}

var _ = Describe("Authentication flow", func() {
	BeforeEach(func() {
		cleanupAccounts(context.Background(), env.pool)
	})

	Describe("signup", func() {
		It("registers a new account", func() {
			status, envelope := signup("alice", "secret")
			Expect(status).To(Equal(http.StatusOK))
			Expect(envelope.Message).To(Equal("user: alice signed up"))
		})

		It("rejects a duplicate username", func() {
			status, _ := signup("alice", "secret")
			Expect(status).To(Equal(http.StatusOK))

			status, envelope := signup("alice", "other")
			Expect(status).To(Equal(http.StatusBadRequest))
			Expect(envelope.Message).To(Equal("user: alice exists"))
		})

		It("rejects an invalid username", func() {
			status, envelope := signup("9lives", "secret")
			Expect(status).To(Equal(http.StatusBadRequest))
			Expect(envelope.Message).To(Equal("invalid username"))
		})
	})

	Describe("login", func() {
		BeforeEach(func() {
			status, _ := signup("alice", "secret")
			Expect(status).To(Equal(http.StatusOK))
		})

		It("returns a session token", func() {
			status, envelope := get("/api/login", basicAuth("alice", "secret"))
			Expect(status).To(Equal(http.StatusOK))
			Expect(envelope.Body).To(MatchRegexp(`^[a-zA-Z0-9]{32}$`))
			Expect(envelope.Message).To(Equal("user: alice login successfully"))
		})

		It("rejects a second login while the session is active", func() {
			status, _ := get("/api/login", basicAuth("alice", "secret"))
			Expect(status).To(Equal(http.StatusOK))

			status, envelope := get("/api/login", basicAuth("alice", "secret"))
			Expect(status).To(Equal(http.StatusBadRequest))
			Expect(envelope.Message).To(Equal("user: alice has already login"))
		})

		It("rejects a wrong password with the generic message", func() {
			status, envelope := get("/api/login", basicAuth("alice", "wrong"))
			Expect(status).To(Equal(http.StatusUnauthorized))
			Expect(envelope.Message).To(Equal("invalid username or password"))
		})

		It("rejects an unknown user with the same message", func() {
			status, envelope := get("/api/login", basicAuth("mallory", "secret"))
			Expect(status).To(Equal(http.StatusUnauthorized))
			Expect(envelope.Message).To(Equal("invalid username or password"))
		})
	})

	Describe("protected requests", func() {
		var token string

		BeforeEach(func() {
			status, _ := signup("alice", "secret")
			Expect(status).To(Equal(http.StatusOK))
			var envelope httpapi.Response
			status, envelope = get("/api/login", basicAuth("alice", "secret"))
			Expect(status).To(Equal(http.StatusOK))
			token = envelope.Body
		})

		It("accepts the bearer token", func() {
			status, envelope := get("/api/whoami", "Bearer "+token)
			Expect(status).To(Equal(http.StatusOK))
			Expect(envelope.Body).To(Equal("alice"))
			Expect(envelope.Message).To(Equal("user: alice is logged in"))
		})

		It("rejects a missing token", func() {
			status, envelope := get("/api/whoami", "")
			Expect(status).To(Equal(http.StatusBadRequest))
			Expect(envelope.Message).To(Equal("invalid or missing token"))
		})

		It("rejects the token after logout", func() {
			status, _ := get("/api/logout/alice", "")
			Expect(status).To(Equal(http.StatusOK))

			status, envelope := get("/api/whoami", "Bearer "+token)
			Expect(status).To(Equal(http.StatusUnauthorized))
			Expect(envelope.Message).To(Equal("invalid or missing token"))
		})
	})

	Describe("logout", func() {
		BeforeEach(func() {
			status, _ := signup("alice", "secret")
			Expect(status).To(Equal(http.StatusOK))
		})

		It("closes the active session", func() {
			status, _ := get("/api/login", basicAuth("alice", "secret"))
			Expect(status).To(Equal(http.StatusOK))

			status, envelope := get("/api/logout/alice", "")
			Expect(status).To(Equal(http.StatusOK))
			Expect(envelope.Message).To(Equal("user: alice logout successfully"))
		})

		It("reports a closed session", func() {
			status, envelope := get("/api/logout/alice", "")
			Expect(status).To(Equal(http.StatusBadRequest))
			Expect(envelope.Message).To(Equal("user: alice doesn't login"))
		})

		It("allows a fresh login afterwards", func() {
			status, first := get("/api/login", basicAuth("alice", "secret"))
			Expect(status).To(Equal(http.StatusOK))

			status, _ = get("/api/logout/alice", "")
			Expect(status).To(Equal(http.StatusOK))

			status, second := get("/api/login", basicAuth("alice", "secret"))
			Expect(status).To(Equal(http.StatusOK))
			Expect(second.Body).NotTo(Equal(first.Body))
		})
	})

	Describe("expired sessions", func() {
		It("clears them from the store", func() {
			status, _ := signup("alice", "secret")
			Expect(status).To(Equal(http.StatusOK))

			ctx := context.Background()
			account, err := env.repo.GetByUsername(ctx, "alice")
			Expect(err).NotTo(HaveOccurred())
			Expect(env.repo.BeginSession(ctx, account.ID, nil, "expiredflowtokenexpiredflowtoken", time.Now().Add(-time.Minute))).To(Succeed())

			count, err := env.repo.DeleteExpiredSessions(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(BeNumerically(">=", 1))

			status, envelope := get("/api/whoami", "Bearer expiredflowtokenexpiredflowtoken")
			Expect(status).To(Equal(http.StatusUnauthorized))
			Expect(envelope.Message).To(Equal("invalid or missing token"))
		})
	})
})
