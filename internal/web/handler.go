// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SignGate Contributors

// Package web exposes the sign-in and sign-up use cases over HTTP.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/samber/oops"

	"github.com/signgate/signgate/internal/auth"
	"github.com/signgate/signgate/internal/parameter"
	"github.com/signgate/signgate/internal/value"
	"github.com/signgate/signgate/pkg/errutil"
)

// Messages written by the handlers themselves.
const (
	MessageMalformedBody = "Requisição inválida."
	MessageUnavailable   = "Serviço de autenticação indisponível. Tente novamente mais tarde."
	MessageTooManyTries  = "Muitas tentativas. Tente novamente mais tarde."
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 64 << 10

// SignInExecutor runs the sign-in use case.
type SignInExecutor interface {
	Execute(ctx context.Context, p parameter.SignIn) (auth.Outcome, error)
}

// SignUpExecutor runs the sign-up use case.
type SignUpExecutor interface {
	Execute(ctx context.Context, p parameter.SignUp) (auth.Outcome, error)
}

// Handler serves POST /sign/in and POST /sign/up.
type Handler struct {
	signIn   SignInExecutor
	signUp   SignUpExecutor
	mapper   *ResultMapper
	logger   *slog.Logger
	observer RequestObserver
	throttle *auth.Throttle
}

// Option configures a Handler.
type Option func(*Handler)

// WithObserver reports every request to observer.
func WithObserver(observer RequestObserver) Option {
	return func(h *Handler) {
		h.observer = observer
	}
}

// WithThrottle limits repeated failed sign-ins per e-mail.
func WithThrottle(throttle *auth.Throttle) Option {
	return func(h *Handler) {
		h.throttle = throttle
	}
}

// NewHandler creates a Handler. A nil logger discards output.
func NewHandler(signIn SignInExecutor, signUp SignUpExecutor, logger *slog.Logger, opts ...Option) (*Handler, error) {
	if signIn == nil {
		return nil, oops.Errorf("sign-in use case is required")
	}
	if signUp == nil {
		return nil, oops.Errorf("sign-up use case is required")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	h := &Handler{
		signIn: signIn,
		signUp: signUp,
		mapper: NewResultMapper(logger),
		logger: logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Routes returns the router with request ids, access logs and panic recovery.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(RequestID)
	r.Use(AccessLog(h.logger, h.observer))
	r.Use(middleware.Recoverer)

	r.Post("/sign/in", h.SignIn)
	r.Post("/sign/up", h.SignUp)
	return r
}

// SignIn handles POST /sign/in.
func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	var view SignInView
	if !h.decode(w, r, &view) {
		return
	}
	p := view.Parameter()
	if !h.precheck(w, r, p.Validate()) {
		return
	}

	var (
		outcome auth.Outcome
		err     error
	)
	if h.throttle != nil {
		key := strings.ToLower(string(p.Email))
		if result, ok := h.throttle.Acquire(key); !ok {
			h.tooManyAttempts(w, r, key, result)
			return
		}
		defer func() { h.settleAttempt(key, outcome, err) }()
	}
	outcome, err = h.signIn.Execute(r.Context(), p)
	h.respond(w, r, outcome, err)
}

// settleAttempt resolves the attempt reserved for key. Only a credential
// failure stays counted.
func (h *Handler) settleAttempt(key string, outcome auth.Outcome, err error) {
	switch {
	case err == nil && outcome.IsSuccess():
		h.throttle.Reset(key)
	case err == nil && isCredentialFailure(outcome):
		h.throttle.RecordFailure(key)
	default:
		h.throttle.Release(key)
	}
}

// SignUp handles POST /sign/up.
func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	var view SignUpView
	if !h.decode(w, r, &view) {
		return
	}
	p := view.Parameter()
	if !h.precheck(w, r, p.Validate()) {
		return
	}
	outcome, err := h.signUp.Execute(r.Context(), p)
	h.respond(w, r, outcome, err)
}

// isCredentialFailure reports failures caused by wrong credentials.
func isCredentialFailure(outcome auth.Outcome) bool {
	if !outcome.IsFailure() {
		return false
	}
	return outcome.Status() == http.StatusBadRequest || outcome.Status() == http.StatusUnauthorized
}

func (h *Handler) tooManyAttempts(w http.ResponseWriter, r *http.Request, email string, result auth.RateLimitResult) {
	retryAfter := int(math.Ceil(result.RetryAfter().Seconds()))
	h.logger.InfoContext(r.Context(), "sign-in throttled",
		"request_id", RequestIDFromContext(r.Context()),
		"email", email,
		"locked_out", result.IsLockedOut,
		"retry_after_seconds", retryAfter,
	)
	w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	h.mapper.Message(r.Context(), w, http.StatusTooManyRequests, MessageTooManyTries)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.logger.DebugContext(r.Context(), "malformed request body",
			"request_id", RequestIDFromContext(r.Context()),
			"error", err,
		)
		h.mapper.Message(r.Context(), w, http.StatusBadRequest, MessageMalformedBody)
		return false
	}
	return true
}

// precheck rejects invalid input before the use case runs.
func (h *Handler) precheck(w http.ResponseWriter, r *http.Request, err error) bool {
	if err == nil {
		return true
	}
	var verr *value.ValidationError
	if errors.As(err, &verr) {
		h.logger.DebugContext(r.Context(), "request rejected",
			"request_id", RequestIDFromContext(r.Context()),
			"field", verr.Field,
		)
	}
	h.mapper.Message(r.Context(), w, http.StatusBadRequest, value.Message(err))
	return false
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, outcome auth.Outcome, err error) {
	ctx := r.Context()
	if err != nil {
		if errutil.Code(err) == auth.CodeCancelled || errors.Is(err, context.Canceled) {
			h.logger.DebugContext(ctx, "request cancelled",
				"request_id", RequestIDFromContext(ctx),
			)
			h.mapper.Message(ctx, w, http.StatusServiceUnavailable, MessageUnavailable)
			return
		}
		errutil.LogErrorContext(ctx, h.logger.With("request_id", RequestIDFromContext(ctx)),
			"authentication request failed", err)
		h.mapper.Message(ctx, w, http.StatusBadGateway, MessageUnavailable)
		return
	}
	h.mapper.Write(ctx, w, outcome)
}
