// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SignGate Contributors

package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/samber/oops"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/signgate/signgate/internal/parameter"
	"github.com/signgate/signgate/internal/value"
	"github.com/signgate/signgate/pkg/errutil"
)

// useCase holds the dependencies shared by SignInUseCase and SignUpUseCase.
type useCase struct {
	backend Backend
	logger  *slog.Logger
	tracer  trace.Tracer
}

// Option configures a use case.
type Option func(*useCase)

// WithLogger sets the logger used by the use case.
func WithLogger(logger *slog.Logger) Option {
	return func(u *useCase) {
		u.logger = logger
	}
}

// WithTracer sets the tracer used by the use case.
func WithTracer(tracer trace.Tracer) Option {
	return func(u *useCase) {
		u.tracer = tracer
	}
}

func newUseCase(backend Backend, opts []Option) (useCase, error) {
	if backend == nil {
		return useCase{}, oops.Errorf("backend is required")
	}
	u := useCase{
		backend: backend,
		logger:  slog.New(slog.DiscardHandler),
		tracer:  noop.NewTracerProvider().Tracer("signgate/auth"),
	}
	for _, opt := range opts {
		opt(&u)
	}
	if u.logger == nil {
		return useCase{}, oops.Errorf("logger is required")
	}
	if u.tracer == nil {
		return useCase{}, oops.Errorf("tracer is required")
	}
	return u, nil
}

// SignInUseCase authenticates an existing account.
type SignInUseCase struct {
	useCase
}

// NewSignInUseCase creates a SignInUseCase.
// Returns an error if backend is nil.
func NewSignInUseCase(backend Backend, opts ...Option) (*SignInUseCase, error) {
	u, err := newUseCase(backend, opts)
	if err != nil {
		return nil, err
	}
	return &SignInUseCase{useCase: u}, nil
}

// Execute validates p and, if valid, signs in through the backend.
func (u *SignInUseCase) Execute(ctx context.Context, p parameter.SignIn) (Outcome, error) {
	return run(ctx, &u.useCase, OperationSignIn, p.Credentials, u.backend.SignIn)
}

// SignUpUseCase creates a new account.
type SignUpUseCase struct {
	useCase
}

// NewSignUpUseCase creates a SignUpUseCase.
// Returns an error if backend is nil.
func NewSignUpUseCase(backend Backend, opts ...Option) (*SignUpUseCase, error) {
	u, err := newUseCase(backend, opts)
	if err != nil {
		return nil, err
	}
	return &SignUpUseCase{useCase: u}, nil
}

// Execute validates p and, if valid, signs up through the backend.
func (u *SignUpUseCase) Execute(ctx context.Context, p parameter.SignUp) (Outcome, error) {
	return run(ctx, &u.useCase, OperationSignUp, p.Credentials, u.backend.SignUp)
}

// run validates, calls the backend at most once and returns exactly one
// result: an Outcome, or an error when the backend call itself failed.
// Invalid input never reaches the backend.
func run[C any](
	ctx context.Context,
	u *useCase,
	operation string,
	credentials func() (C, error),
	call func(context.Context, C) (Outcome, error),
) (Outcome, error) {
	ctx, span := u.tracer.Start(ctx, "auth."+operation,
		trace.WithAttributes(attribute.String("auth.operation", operation)))
	defer span.End()

	creds, err := credentials()
	if err != nil {
		outcome := ValidationFailure(value.Message(err))
		var ve *value.ValidationError
		if errors.As(err, &ve) {
			span.SetAttributes(attribute.String("auth.invalid_field", ve.Field))
		}
		span.SetAttributes(attribute.Int("auth.status", outcome.Status()))
		u.logger.DebugContext(ctx, "rejected invalid input",
			"operation", operation,
			"error", err,
		)
		recordOutcome(operation, ResultInvalid, outcome)
		return outcome, nil
	}

	start := time.Now()
	outcome, err := call(ctx, creds)
	recordBackendDuration(operation, time.Since(start))

	if err != nil {
		wrapped := oops.Code(CodeBackendFailed).
			With("operation", operation).
			Wrap(err)
		span.RecordError(wrapped)
		span.SetStatus(codes.Error, "backend call failed")
		errutil.LogErrorContext(ctx, u.logger, "authentication backend call failed", wrapped)
		recordError(operation)
		return Outcome{}, wrapped
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		span.SetStatus(codes.Error, "cancelled")
		recordError(operation)
		return Outcome{}, oops.Code(CodeCancelled).
			With("operation", operation).
			Wrap(ctxErr)
	}

	if !outcome.IsFailure() && !outcome.IsSuccess() {
		span.SetStatus(codes.Error, "empty outcome")
		recordError(operation)
		return Outcome{}, oops.Code(CodeEmptyOutcome).
			With("operation", operation).
			Errorf("backend returned an outcome with no payload")
	}

	span.SetAttributes(attribute.Int("auth.status", outcome.Status()))
	result := ResultSuccess
	if outcome.IsFailure() {
		result = ResultFailure
	}
	recordOutcome(operation, result, outcome)

	u.logger.InfoContext(ctx, "authentication completed",
		"operation", operation,
		"result", result,
		"status", outcome.Status(),
	)
	return outcome, nil
}
