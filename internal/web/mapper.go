// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SignGate Contributors

package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/signgate/signgate/internal/auth"
)

// ResultMapper renders outcomes as HTTP responses. The outcome status
// becomes the response status and the payload is written as JSON unchanged.
type ResultMapper struct {
	logger *slog.Logger
}

// NewResultMapper creates a ResultMapper. A nil logger discards write errors.
func NewResultMapper(logger *slog.Logger) *ResultMapper {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ResultMapper{logger: logger}
}

// Write renders the outcome. An outcome holding neither variant, or one
// whose status is not a valid HTTP status, is rendered as a bad gateway.
func (m *ResultMapper) Write(ctx context.Context, w http.ResponseWriter, outcome auth.Outcome) {
	if outcome.Status() < 100 || outcome.Status() > 599 {
		m.Message(ctx, w, http.StatusBadGateway, MessageUnavailable)
		return
	}

	written := false
	outcome.Fold(
		func(status int, payload auth.MessageResponse) {
			m.JSON(ctx, w, status, payload)
			written = true
		},
		func(status int, payload auth.AuthenticationResponse) {
			m.JSON(ctx, w, status, payload)
			written = true
		},
	)
	if !written {
		m.Message(ctx, w, http.StatusBadGateway, MessageUnavailable)
	}
}

// Message writes a MessageResponse with the given status.
func (m *ResultMapper) Message(ctx context.Context, w http.ResponseWriter, status int, message string) {
	m.JSON(ctx, w, status, auth.MessageResponse{Message: message})
}

// JSON writes v as the response body.
func (m *ResultMapper) JSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		m.logger.DebugContext(ctx, "failed to write response", "status", status, "error", err)
	}
}
