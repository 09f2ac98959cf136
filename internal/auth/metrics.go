// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SignGate Contributors

package auth

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Result labels for use case metrics.
const (
	ResultInvalid = "invalid"
	ResultFailure = "failure"
	ResultSuccess = "success"
	ResultError   = "error"
)

// UseCaseExecutions counts use case executions.
// Use RegisterMetrics to register this with a Prometheus registry.
var UseCaseExecutions = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "signgate_usecase_executions_total",
		Help: "Total number of sign-in and sign-up executions by result and status class",
	},
	[]string{"operation", "result", "status_class"},
)

// BackendDuration observes backend call latency.
// Use RegisterMetrics to register this with a Prometheus registry.
var BackendDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "signgate_backend_duration_seconds",
		Help:    "Authentication backend call duration in seconds",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// RegisterMetrics registers auth metrics with the given Prometheus registry.
// Panics if registration fails (following prometheus convention).
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(UseCaseExecutions)
	reg.MustRegister(BackendDuration)
}

func recordOutcome(operation, result string, o Outcome) {
	UseCaseExecutions.WithLabelValues(operation, result, o.statusClass()).Inc()
}

func recordError(operation string) {
	UseCaseExecutions.WithLabelValues(operation, ResultError, "none").Inc()
}

func recordBackendDuration(operation string, d time.Duration) {
	BackendDuration.WithLabelValues(operation).Observe(d.Seconds())
}
