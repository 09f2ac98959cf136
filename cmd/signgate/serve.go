// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SignGate Contributors

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"gopkg.in/yaml.v3"

	"github.com/signgate/signgate/internal/auth"
	"github.com/signgate/signgate/internal/backend/gotrue"
	"github.com/signgate/signgate/internal/config"
	"github.com/signgate/signgate/internal/logging"
	"github.com/signgate/signgate/internal/observability"
	"github.com/signgate/signgate/internal/web"
	"github.com/signgate/signgate/internal/xdg"
)

const (
	serviceName     = "signgate"
	shutdownTimeout = 10 * time.Second
)

// serveOptions holds flags that are not part of config.Config.
type serveOptions struct {
	printConfig bool
}

func newServeCmd() *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the authentication API server",
		Long: `Start the HTTP server exposing POST /sign/in and POST /sign/up,
plus the metrics and health endpoints when --metrics-addr is set.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := resolveConfigFile(configFile)
			if err != nil {
				return err
			}
			cfg, err := config.Load(path, cmd.Flags())
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if opts.printConfig {
				return printConfig(cmd.OutOrStdout(), cfg)
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			return runServe(cmd.Context(), cfg, cmd)
		},
	}

	config.RegisterFlags(cmd.Flags())
	cmd.Flags().BoolVar(&opts.printConfig, "print-config", false, "print the effective configuration as YAML and exit")

	return cmd
}

// resolveConfigFile returns explicit when set, otherwise the config file in
// the XDG config directory if one exists.
func resolveConfigFile(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	path, err := xdg.DefaultConfigFile()
	if err != nil {
		return "", fmt.Errorf("failed to locate configuration: %w", err)
	}
	return path, nil
}

// printConfig writes the configuration as YAML with secrets redacted.
func printConfig(w io.Writer, cfg config.Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg.Redacted()); err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	return nil
}

// app is the wired service.
type app struct {
	handler  http.Handler
	observer *observability.Server
}

// buildApp wires the backend client, use cases and HTTP handler.
// The observability server is created only when a metrics address is set.
func buildApp(cfg config.Config, logger *slog.Logger, ready observability.ReadinessChecker) (*app, error) {
	client, err := gotrue.New(gotrue.Config{
		BaseURL:    cfg.Backend.BaseURL,
		APIKey:     cfg.Backend.APIKey,
		Timeout:    cfg.Backend.Timeout,
		MaxRetries: cfg.Backend.MaxRetries,
		RetryBase:  cfg.Backend.RetryBase,
	},
		gotrue.WithLogger(logger.With("component", "gotrue")),
		gotrue.WithTracer(otel.Tracer("signgate/gotrue")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create backend client: %w", err)
	}

	ucOpts := []auth.Option{
		auth.WithLogger(logger.With("component", "auth")),
		auth.WithTracer(otel.Tracer("signgate/auth")),
	}
	signIn, err := auth.NewSignInUseCase(client, ucOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sign-in use case: %w", err)
	}
	signUp, err := auth.NewSignUpUseCase(client, ucOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sign-up use case: %w", err)
	}

	a := &app{}
	var handlerOpts []web.Option
	if cfg.Throttle.Threshold > 0 {
		handlerOpts = append(handlerOpts, web.WithThrottle(auth.NewThrottle(cfg.Throttle.Threshold, cfg.Throttle.Lockout)))
	}
	if cfg.Metrics.Addr != "" {
		a.observer = observability.NewServer(cfg.Metrics.Addr, ready, auth.RegisterMetrics)
		handlerOpts = append(handlerOpts, web.WithObserver(a.observer.Metrics()))
	}

	handler, err := web.NewHandler(signIn, signUp, logger.With("component", "web"), handlerOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create handler: %w", err)
	}
	a.handler = handler.Routes()
	return a, nil
}

// runServe starts the servers and blocks until a signal or a server failure.
func runServe(ctx context.Context, cfg config.Config, cmd *cobra.Command) error {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	logger := logging.SetDefault(serviceName, version, cfg.Log.Format, level)

	logger.Info("starting signgate",
		"addr", cfg.Server.Addr,
		"backend_url", cfg.Backend.BaseURL,
		"metrics_addr", cfg.Metrics.Addr,
	)

	var ready atomic.Bool
	a, err := buildApp(cfg, logger, ready.Load)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if a.observer != nil {
		obsErrCh, startErr := a.observer.Start()
		if startErr != nil {
			return fmt.Errorf("failed to start observability server: %w", startErr)
		}
		go monitorServerErrors(ctx, cancel, obsErrCh, "observability")
	}

	api := web.NewServer(cfg.Server.Addr, a.handler, logger)
	apiErrCh, err := api.Start()
	if err != nil {
		stopObserver(a.observer)
		return fmt.Errorf("failed to start api server: %w", err)
	}
	go monitorServerErrors(ctx, cancel, apiErrCh, "api")

	ready.Store(true)
	cmd.Println("SignGate started on " + api.Addr())

	<-ctx.Done()
	ready.Store(false)
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := api.Stop(shutdownCtx); err != nil {
		logger.Warn("error stopping api server", "error", err)
	}
	stopObserver(a.observer)

	logger.Info("shutdown complete")
	return nil
}

func stopObserver(obs *observability.Server) {
	if obs == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := obs.Stop(ctx); err != nil {
		slog.Warn("error stopping observability server", "error", err)
	}
}

// monitorServerErrors cancels ctx when a server reports an error. It returns
// when the channel closes or ctx is done.
func monitorServerErrors(ctx context.Context, cancel context.CancelFunc, errCh <-chan error, serverName string) {
	select {
	case err, ok := <-errCh:
		if !ok {
			return
		}
		if err != nil {
			slog.Error("server error, triggering shutdown",
				"server", serverName,
				"error", err,
			)
			cancel()
		}
	case <-ctx.Done():
	}
}
