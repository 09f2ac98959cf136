// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SignGate Contributors

package main

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/signgate/signgate/internal/backend/gotrue"
	"github.com/signgate/signgate/internal/config"
	"github.com/signgate/signgate/internal/xdg"
)

func TestServeCommand_Flags(t *testing.T) {
	cmd := newServeCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	require.NoError(t, cmd.Execute())

	output := buf.String()
	for _, flag := range []string{
		"--addr",
		"--backend-url",
		"--backend-api-key",
		"--backend-timeout",
		"--backend-max-retries",
		"--backend-retry-base",
		"--log-format",
		"--log-level",
		"--metrics-addr",
		"--throttle-threshold",
		"--throttle-lockout",
		"--print-config",
	} {
		assert.Contains(t, output, flag, "Help missing %q flag", flag)
	}
}

func TestServeCommand_PrintConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	configFile = ""
	cmd := newServeCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{
		"--print-config",
		"--backend-url", "https://auth.example.com/auth/v1",
		"--backend-api-key", "super-secret",
		"--log-level", "debug",
	})

	require.NoError(t, cmd.Execute())

	out := buf.String()
	assert.NotContains(t, out, "super-secret")
	assert.Contains(t, out, "[REDACTED]")

	var printed map[string]map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &printed))
	assert.Equal(t, "https://auth.example.com/auth/v1", printed["backend"]["base_url"])
	assert.Equal(t, "10s", printed["backend"]["timeout"])
	assert.Equal(t, "debug", printed["log"]["level"])
}

func TestServeCommand_RejectsInvalidConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	configFile = ""
	cmd := newServeCmd()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--log-format", "xml"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestResolveConfigFile(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)

	path, err := resolveConfigFile("")
	require.NoError(t, err)
	assert.Empty(t, path, "no default file yet")

	dir := filepath.Join(base, "signgate")
	require.NoError(t, os.MkdirAll(dir, 0o700))
	defaultPath := filepath.Join(dir, xdg.ConfigFileName)
	require.NoError(t, os.WriteFile(defaultPath, []byte("log:\n  level: warn\n"), 0o600))

	path, err = resolveConfigFile("")
	require.NoError(t, err)
	assert.Equal(t, defaultPath, path)

	path, err = resolveConfigFile("explicit.yaml")
	require.NoError(t, err)
	assert.Equal(t, "explicit.yaml", path, "explicit path wins")
}

func TestServeCommand_LoadsXDGConfig(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)
	dir := filepath.Join(base, "signgate")
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, xdg.ConfigFileName),
		[]byte("backend:\n  base_url: https://xdg.example.com\n"), 0o600))

	configFile = ""
	cmd := newServeCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--print-config"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "https://xdg.example.com")
}

func fakeGoTrue(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if strings.Contains(string(body), "taken@email.com") {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = io.WriteString(w, `{"code":422,"error_code":"user_already_exists","msg":"User already registered"}`)
			return
		}
		_, _ = io.WriteString(w, `{
			"access_token": "5CQcsREkB5xcqbY1L",
			"refresh_token": "r1DdCw8",
			"expires_in": 3600,
			"user": {"email": "bed@email.com", "user_metadata": {"name": "Bed"}}
		}`)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(baseURL string) config.Config {
	cfg := config.Default()
	cfg.Backend.BaseURL = baseURL
	cfg.Metrics.Addr = ""
	return cfg
}

func TestBuildApp_ServesSignUp(t *testing.T) {
	srv := fakeGoTrue(t)
	a, err := buildApp(testConfig(srv.URL), slog.New(slog.DiscardHandler), nil)
	require.NoError(t, err)
	assert.Nil(t, a.observer)

	req := httptest.NewRequest(http.MethodPost, "/sign/up",
		strings.NewReader(`{"name":"Bed Ramos","email":"bed@email.com","password":"secret123"}`))
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"accessToken": "5CQcsREkB5xcqbY1L",
		"refreshToken": "r1DdCw8",
		"expireIn": 3600,
		"user": {"email": "bed@email.com", "userMetadata": {"name": "Bed"}}
	}`, rec.Body.String())
}

func TestBuildApp_TranslatesDuplicateEmail(t *testing.T) {
	srv := fakeGoTrue(t)
	a, err := buildApp(testConfig(srv.URL), slog.New(slog.DiscardHandler), nil)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/sign/up",
		strings.NewReader(`{"name":"Bed Ramos","email":"taken@email.com","password":"secret123"}`))
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"message":"`+gotrue.MessageEmailTaken+`"}`, rec.Body.String())
}

func TestBuildApp_WithMetrics(t *testing.T) {
	cfg := testConfig("https://auth.example.com")
	cfg.Metrics.Addr = "127.0.0.1:0"

	a, err := buildApp(cfg, slog.New(slog.DiscardHandler), func() bool { return true })
	require.NoError(t, err)
	require.NotNil(t, a.observer)
}

func TestBuildApp_InvalidBackend(t *testing.T) {
	_, err := buildApp(testConfig("not a url"), slog.New(slog.DiscardHandler), nil)
	require.Error(t, err)
}
