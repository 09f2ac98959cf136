// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SignGate Contributors

// Package gotrue implements auth.Backend against a GoTrue-compatible
// authentication API (the API served by Supabase Auth).
//
// Business failures reported by the API become failure Outcomes carrying the
// API's status and a localized message. Network failures and retryable
// statuses are retried with bounded exponential backoff and, once retries are
// exhausted, returned as errors coded BACKEND_UNAVAILABLE.
package gotrue

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/signgate/signgate/internal/auth"
	"github.com/signgate/signgate/internal/parameter"
)

// Error codes returned by the client.
const (
	CodeUnavailable = "BACKEND_UNAVAILABLE"
	CodeBadResponse = "BACKEND_BAD_RESPONSE"
	CodeRequest     = "BACKEND_REQUEST_FAILED"
)

// Default client settings.
const (
	DefaultTimeout    = 10 * time.Second
	DefaultMaxRetries = 2
	DefaultRetryBase  = 200 * time.Millisecond

	maxResponseBytes = 1 << 20
)

// Endpoint paths relative to Config.BaseURL.
const (
	signInPath = "/token?grant_type=password"
	signUpPath = "/signup"
)

// HTTPDoer executes HTTP requests. *http.Client satisfies it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config holds the connection settings for the authentication API.
type Config struct {
	// BaseURL is the API root, e.g. "https://project.supabase.co/auth/v1".
	BaseURL string

	// APIKey is sent in the "apikey" header when set.
	APIKey string

	// Timeout bounds each HTTP attempt when the default HTTP client is used.
	Timeout time.Duration

	// MaxRetries is the number of retries after the first attempt.
	MaxRetries uint64

	// RetryBase is the initial backoff between attempts.
	RetryBase time.Duration
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return oops.Code("CONFIG_INVALID").Errorf("backend base url is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return oops.Code("CONFIG_INVALID").With("base_url", c.BaseURL).Wrap(err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return oops.Code("CONFIG_INVALID").
			With("base_url", c.BaseURL).
			Errorf("backend base url must use http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return oops.Code("CONFIG_INVALID").
			With("base_url", c.BaseURL).
			Errorf("backend base url has no host")
	}
	if c.Timeout < 0 {
		return oops.Code("CONFIG_INVALID").Errorf("backend timeout cannot be negative")
	}
	if c.RetryBase < 0 {
		return oops.Code("CONFIG_INVALID").Errorf("backend retry base cannot be negative")
	}
	return nil
}

// Client is an auth.Backend backed by a GoTrue-compatible HTTP API.
type Client struct {
	cfg      Config
	http     HTTPDoer
	logger   *slog.Logger
	tracer   trace.Tracer
	messages Messages
}

var _ auth.Backend = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(doer HTTPDoer) Option {
	return func(c *Client) {
		c.http = doer
	}
}

// WithLogger sets the client logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTracer sets the client tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *Client) {
		c.tracer = tracer
	}
}

// WithMessages replaces the error message translations.
func WithMessages(messages Messages) Option {
	return func(c *Client) {
		c.messages = messages
	}
}

// New creates a Client. Zero Timeout and RetryBase take their defaults.
func New(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RetryBase == 0 {
		cfg.RetryBase = DefaultRetryBase
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	c := &Client{
		cfg:      cfg,
		http:     &http.Client{Timeout: cfg.Timeout},
		logger:   slog.New(slog.DiscardHandler),
		tracer:   noop.NewTracerProvider().Tracer("signgate/gotrue"),
		messages: DefaultMessages(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		return nil, oops.Errorf("http client is required")
	}
	if c.logger == nil {
		return nil, oops.Errorf("logger is required")
	}
	if c.tracer == nil {
		return nil, oops.Errorf("tracer is required")
	}
	if c.messages == nil {
		return nil, oops.Errorf("messages are required")
	}
	return c, nil
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signUpRequest struct {
	Email    string            `json:"email"`
	Password string            `json:"password"`
	Data     map[string]string `json:"data,omitempty"`
}

// SignIn exchanges e-mail and password for a session.
func (c *Client) SignIn(ctx context.Context, creds parameter.SignInCredentials) (auth.Outcome, error) {
	return c.post(ctx, "SignIn", signInPath, signInRequest{
		Email:    creds.Email,
		Password: creds.Password,
	})
}

// SignUp registers a new account with the name stored in user metadata.
func (c *Client) SignUp(ctx context.Context, creds parameter.SignUpCredentials) (auth.Outcome, error) {
	return c.post(ctx, "SignUp", signUpPath, signUpRequest{
		Email:    creds.Email,
		Password: creds.Password,
		Data:     map[string]string{"name": creds.Name},
	})
}

func (c *Client) post(ctx context.Context, operation, path string, body any) (auth.Outcome, error) {
	ctx, span := c.tracer.Start(ctx, "gotrue."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("http.route", path)))
	defer span.End()

	payload, err := json.Marshal(body)
	if err != nil {
		return auth.Outcome{}, oops.Code(CodeRequest).With("operation", operation).Wrap(err)
	}

	endpoint := c.cfg.BaseURL + path
	backoff := retry.WithMaxRetries(c.cfg.MaxRetries, retry.NewExponential(c.cfg.RetryBase))

	var (
		outcome auth.Outcome
		attempt int
	)
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		if attempt > 1 {
			c.logger.WarnContext(ctx, "retrying authentication backend request",
				"operation", operation,
				"attempt", attempt,
			)
		}

		status, respBody, err := c.do(ctx, endpoint, payload)
		if err != nil {
			if ctx.Err() != nil {
				return oops.Code(CodeUnavailable).With("operation", operation).Wrap(err)
			}
			return retry.RetryableError(oops.Code(CodeUnavailable).
				With("operation", operation).
				With("attempt", attempt).
				Wrap(err))
		}
		span.SetAttributes(attribute.Int("http.status_code", status))

		if isRetryableStatus(status) {
			return retry.RetryableError(oops.Code(CodeUnavailable).
				With("operation", operation).
				With("status", status).
				With("attempt", attempt).
				Errorf("authentication backend returned status %d", status))
		}

		outcome, err = c.decode(ctx, status, respBody)
		return err
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "authentication backend request failed")
		return auth.Outcome{}, err
	}
	return outcome, nil
}

// do performs a single attempt and returns the status and body.
func (c *Client) do(ctx context.Context, endpoint string, payload []byte) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, oops.Code(CodeRequest).With("endpoint", endpoint).Wrap(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("apikey", c.cfg.APIKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err //nolint:wrapcheck // wrapped by the caller with retry context
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return 0, nil, err //nolint:wrapcheck // wrapped by the caller with retry context
	}
	return resp.StatusCode, respBody, nil
}

// isRetryableStatus reports statuses that indicate a transient gateway problem.
// 500 and 429 are returned to the caller as is.
func isRetryableStatus(status int) bool {
	switch status {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}
