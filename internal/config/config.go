// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SignGate Contributors

// Package config loads the service configuration from an optional YAML file
// and command-line flags. Flags that were set explicitly win over the file,
// and the file wins over flag defaults.
package config

import (
	"net/url"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"

	"github.com/signgate/signgate/internal/logging"
)

// CodeInvalid is the error code for configuration problems.
const CodeInvalid = "CONFIG_INVALID"

// Default values.
const (
	DefaultAddr        = ":8080"
	DefaultMetricsAddr = "127.0.0.1:9100"
	DefaultLogFormat   = "json"
	DefaultLogLevel    = "info"
	DefaultTimeout     = 10 * time.Second
	DefaultMaxRetries  = 2
	DefaultRetryBase   = 200 * time.Millisecond

	DefaultThrottleThreshold = 7
	DefaultThrottleLockout   = 15 * time.Minute
)

// Config is the complete service configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server" yaml:"server"`
	Backend  BackendConfig  `koanf:"backend" yaml:"backend"`
	Log      LogConfig      `koanf:"log" yaml:"log"`
	Metrics  MetricsConfig  `koanf:"metrics" yaml:"metrics"`
	Throttle ThrottleConfig `koanf:"throttle" yaml:"throttle"`
}

// ServerConfig configures the API listener.
type ServerConfig struct {
	Addr string `koanf:"addr" yaml:"addr"`
}

// BackendConfig configures the authentication API client.
type BackendConfig struct {
	BaseURL    string        `koanf:"base_url" yaml:"base_url"`
	APIKey     string        `koanf:"api_key" yaml:"api_key"`
	Timeout    time.Duration `koanf:"timeout" yaml:"timeout"`
	MaxRetries uint64        `koanf:"max_retries" yaml:"max_retries"`
	RetryBase  time.Duration `koanf:"retry_base" yaml:"retry_base"`
}

// LogConfig configures logging.
type LogConfig struct {
	Format string `koanf:"format" yaml:"format"`
	Level  string `koanf:"level" yaml:"level"`
}

// MetricsConfig configures the metrics and health listener. An empty Addr
// disables it.
type MetricsConfig struct {
	Addr string `koanf:"addr" yaml:"addr"`
}

// ThrottleConfig limits repeated failed sign-ins per e-mail. A zero
// Threshold disables throttling.
type ThrottleConfig struct {
	Threshold int           `koanf:"threshold" yaml:"threshold"`
	Lockout   time.Duration `koanf:"lockout" yaml:"lockout"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Server: ServerConfig{Addr: DefaultAddr},
		Backend: BackendConfig{
			Timeout:    DefaultTimeout,
			MaxRetries: DefaultMaxRetries,
			RetryBase:  DefaultRetryBase,
		},
		Log:     LogConfig{Format: DefaultLogFormat, Level: DefaultLogLevel},
		Metrics: MetricsConfig{Addr: DefaultMetricsAddr},
		Throttle: ThrottleConfig{
			Threshold: DefaultThrottleThreshold,
			Lockout:   DefaultThrottleLockout,
		},
	}
}

// flagKeys maps flag names to configuration keys.
var flagKeys = map[string]string{
	"addr":                "server.addr",
	"backend-url":         "backend.base_url",
	"backend-api-key":     "backend.api_key",
	"backend-timeout":     "backend.timeout",
	"backend-max-retries": "backend.max_retries",
	"backend-retry-base":  "backend.retry_base",
	"log-format":          "log.format",
	"log-level":           "log.level",
	"metrics-addr":        "metrics.addr",
	"throttle-threshold":  "throttle.threshold",
	"throttle-lockout":    "throttle.lockout",
}

// RegisterFlags adds the configuration flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.String("addr", d.Server.Addr, "API listen address")
	fs.String("backend-url", d.Backend.BaseURL, "authentication API base URL")
	fs.String("backend-api-key", d.Backend.APIKey, "authentication API key")
	fs.Duration("backend-timeout", d.Backend.Timeout, "timeout for each backend request")
	fs.Uint64("backend-max-retries", d.Backend.MaxRetries, "retries after a failed backend request")
	fs.Duration("backend-retry-base", d.Backend.RetryBase, "initial backoff between backend retries")
	fs.String("log-format", d.Log.Format, "log format (json or text)")
	fs.String("log-level", d.Log.Level, "log level (debug, info, warn, error)")
	fs.String("metrics-addr", d.Metrics.Addr, "metrics/health HTTP address (empty = disabled)")
	fs.Int("throttle-threshold", d.Throttle.Threshold, "failed sign-ins before lockout (0 = disabled)")
	fs.Duration("throttle-lockout", d.Throttle.Lockout, "lockout duration after too many failed sign-ins")
}

// Load builds the configuration from defaults, the YAML file at path (if
// path is not empty) and the flags in fs (if fs is not nil).
func Load(path string, fs *pflag.FlagSet) (Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, oops.Code(CodeInvalid).With("path", path).Wrap(err)
		}
	}

	if fs != nil {
		provider := posflag.ProviderWithFlag(fs, ".", k, func(f *pflag.Flag) (string, interface{}) {
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(fs, f)
		})
		if err := k.Load(provider, nil); err != nil {
			return Config{}, oops.Code(CodeInvalid).Wrap(err)
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, oops.Code(CodeInvalid).With("path", path).Wrap(err)
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.Server.Addr == "" {
		return oops.Code(CodeInvalid).Errorf("server.addr is required")
	}
	if c.Backend.BaseURL == "" {
		return oops.Code(CodeInvalid).Errorf("backend.base_url is required")
	}
	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return oops.Code(CodeInvalid).
			With("base_url", c.Backend.BaseURL).
			Errorf("backend.base_url must be an absolute http(s) URL")
	}
	if c.Backend.Timeout < 0 {
		return oops.Code(CodeInvalid).Errorf("backend.timeout cannot be negative")
	}
	if c.Backend.RetryBase < 0 {
		return oops.Code(CodeInvalid).Errorf("backend.retry_base cannot be negative")
	}
	if c.Throttle.Threshold < 0 {
		return oops.Code(CodeInvalid).Errorf("throttle.threshold cannot be negative")
	}
	if c.Throttle.Threshold > 0 && c.Throttle.Lockout <= 0 {
		return oops.Code(CodeInvalid).Errorf("throttle.lockout must be positive when throttling is enabled")
	}
	if c.Log.Format != "json" && c.Log.Format != "text" {
		return oops.Code(CodeInvalid).
			With("format", c.Log.Format).
			Errorf("log.format must be 'json' or 'text', got %q", c.Log.Format)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return oops.Code(CodeInvalid).
			With("level", c.Log.Level).
			Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}
	return nil
}

// Redacted returns a copy safe to print.
func (c Config) Redacted() Config {
	if c.Backend.APIKey != "" {
		c.Backend.APIKey = "[REDACTED]"
	}
	return c
}
