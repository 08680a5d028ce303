// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Gatehouse Contributors

package httpapi

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/gatehouse/gatehouse/pkg/errutil"
)

// HandlerMetrics holds the counters the API increments. Any field may be
// nil.
type HandlerMetrics struct {
	Logins             *prometheus.CounterVec
	Signups            *prometheus.CounterVec
	Logouts            *prometheus.CounterVec
	TokenVerifications *prometheus.CounterVec
}

// outcomeCounter counts operation outcomes by stable error code ("ok" on
// success). A nil counter is a no-op so tests can run without a registry.
type outcomeCounter struct {
	vec *prometheus.CounterVec
}

func newOutcomeCounter(vec *prometheus.CounterVec) *outcomeCounter {
	if vec == nil {
		return nil
	}
	return &outcomeCounter{vec: vec}
}

func (c *outcomeCounter) record(err error) {
	if c == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = errutil.CodeOf(err)
		if outcome == "" {
			outcome = "error"
		}
	}
	c.vec.WithLabelValues(outcome).Inc()
}
