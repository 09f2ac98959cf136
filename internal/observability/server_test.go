// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SignGate Contributors

package observability

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signgate/signgate/internal/auth"
)

// startServer starts s and stops it when the test ends.
func startServer(t *testing.T, s *Server) <-chan error {
	t.Helper()
	errCh, err := s.Start()
	require.NoError(t, err)
	require.NotEmpty(t, s.Addr())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.Stop(ctx)
	})
	return errCh
}

// get fetches path from s and returns the status and trimmed body.
func get(t *testing.T, s *Server, path string) (int, string) {
	t.Helper()
	resp, err := http.Get("http://" + s.Addr() + path)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, strings.TrimSpace(string(body))
}

func TestServer_ReadinessFollowsServeLifecycle(t *testing.T) {
	var ready atomic.Bool
	s := NewServer("127.0.0.1:0", ready.Load)
	startServer(t, s)

	status, body := get(t, s, "/healthz/readiness")
	assert.Equal(t, http.StatusServiceUnavailable, status, "before the API listens")
	assert.Equal(t, "not ready", body)

	ready.Store(true)
	status, body = get(t, s, "/healthz/readiness")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body)

	ready.Store(false)
	status, _ = get(t, s, "/healthz/readiness")
	assert.Equal(t, http.StatusServiceUnavailable, status, "while shutting down")

	status, body = get(t, s, "/healthz/liveness")
	assert.Equal(t, http.StatusOK, status, "liveness ignores readiness")
	assert.Equal(t, "ok", body)
}

func TestServer_NilReadinessMeansReady(t *testing.T) {
	s := NewServer("127.0.0.1:0", nil)
	startServer(t, s)

	status, _ := get(t, s, "/healthz/readiness")
	assert.Equal(t, http.StatusOK, status)
}

func TestServer_ExposesRequestMetrics(t *testing.T) {
	s := NewServer("127.0.0.1:0", nil)
	startServer(t, s)

	m := s.Metrics()
	m.ObserveRequest("/sign/up", http.StatusBadRequest, time.Millisecond)
	m.ObserveRequest("/sign/up", http.StatusBadRequest, time.Millisecond)
	m.ObserveRequest("/sign/in", http.StatusTooManyRequests, time.Millisecond)

	status, body := get(t, s, "/metrics")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `signgate_http_requests_total{route="/sign/up",status="400"} 2`)
	assert.Contains(t, body, `signgate_http_requests_total{route="/sign/in",status="429"} 1`)
	assert.Contains(t, body, `signgate_http_request_duration_seconds_count{route="/sign/up"} 2`)
	assert.Contains(t, body, "go_goroutines")
	assert.Contains(t, body, "process_")
}

func TestServer_AuthRegistrationExposesUseCaseMetrics(t *testing.T) {
	s := NewServer("127.0.0.1:0", nil, auth.RegisterMetrics)
	startServer(t, s)

	auth.UseCaseExecutions.WithLabelValues(auth.OperationSignUp, auth.ResultInvalid, "4xx").Inc()
	auth.BackendDuration.WithLabelValues(auth.OperationSignIn).Observe(0.01)

	_, body := get(t, s, "/metrics")
	assert.Contains(t, body, "signgate_usecase_executions_total")
	assert.Contains(t, body, `operation="sign_up"`)
	assert.Contains(t, body, "signgate_backend_duration_seconds")
}

func TestServer_RegistriesAreIndependent(t *testing.T) {
	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "signgate_registration_total",
		Help: "Counter registered through a Registration",
	})
	register := func(reg prometheus.Registerer) { reg.MustRegister(counter) }

	// Each server owns a registry, so the same collector registers twice.
	first := NewServer("127.0.0.1:0", nil, register)
	second := NewServer("127.0.0.1:0", nil, register)
	counter.Inc()
	startServer(t, first)
	startServer(t, second)

	for _, s := range []*Server{first, second} {
		_, body := get(t, s, "/metrics")
		assert.Contains(t, body, "signgate_registration_total 1")
	}
}

func TestServer_StartTwiceFails(t *testing.T) {
	s := NewServer("127.0.0.1:0", nil)
	startServer(t, s)

	_, err := s.Start()
	assert.Error(t, err)
}

func TestServer_StartOnBusyAddressFails(t *testing.T) {
	busy := NewServer("127.0.0.1:0", nil)
	startServer(t, busy)

	s := NewServer(busy.Addr(), nil)
	_, err := s.Start()
	require.Error(t, err)
	assert.Empty(t, s.Addr())

	// Stop after a failed start is a no-op.
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, s.Stop(ctx))
}

func TestServer_StopBeforeStart(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, NewServer("127.0.0.1:0", nil).Stop(ctx))
}

func TestServer_ErrorChannel(t *testing.T) {
	t.Run("closes on graceful stop", func(t *testing.T) {
		s := NewServer("127.0.0.1:0", nil)
		errCh := startServer(t, s)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		require.NoError(t, s.Stop(ctx))

		select {
		case err, ok := <-errCh:
			assert.False(t, ok && err != nil, "unexpected serve error: %v", err)
		case <-time.After(2 * time.Second):
			t.Fatal("error channel not closed after stop")
		}
	})

	t.Run("reports a failed listener", func(t *testing.T) {
		s := NewServer("127.0.0.1:0", nil)
		errCh := startServer(t, s)

		require.NoError(t, s.listener.Close())

		select {
		case err := <-errCh:
			assert.Error(t, err)
		case <-time.After(2 * time.Second):
			t.Fatal("serve error not reported")
		}
	})
}
