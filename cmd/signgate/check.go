// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SignGate Contributors

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/signgate/signgate/internal/value"
)

// errInvalidInput is returned when at least one checked value is invalid.
var errInvalidInput = errors.New("invalid input")

// checkConfig holds the values given to the check command.
type checkConfig struct {
	name     string
	email    string
	password string
}

func newCheckCmd() *cobra.Command {
	cfg := &checkConfig{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a name, e-mail or password",
		Long: `Validate values with the same rules the server applies and print the
message a client would receive for each one.`,
		Example: `  signgate check --email bed@email.com
  signgate check --name "Gabriel Ramos" --password secret123`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.name, "name", "", "full name to validate")
	cmd.Flags().StringVar(&cfg.email, "email", "", "e-mail to validate")
	cmd.Flags().StringVar(&cfg.password, "password", "", "password to validate")

	return cmd
}

type checkedValue struct {
	label string
	value value.Value
	show  bool
}

// runCheck validates every flag that was set and reports each result.
func runCheck(cmd *cobra.Command, cfg *checkConfig) error {
	var checks []checkedValue
	if cmd.Flags().Changed("name") {
		checks = append(checks, checkedValue{label: "name", value: value.Name(cfg.name), show: true})
	}
	if cmd.Flags().Changed("email") {
		checks = append(checks, checkedValue{label: "email", value: value.Email(cfg.email), show: true})
	}
	if cmd.Flags().Changed("password") {
		checks = append(checks, checkedValue{label: "password", value: value.Password(cfg.password)})
	}
	if len(checks) == 0 {
		return fmt.Errorf("nothing to check: set --name, --email or --password")
	}

	failed := false
	for _, c := range checks {
		valid, err := c.value.Validate()
		switch {
		case err != nil:
			failed = true
			cmd.Printf("%s: %s\n", c.label, value.Message(err))
		case c.show:
			cmd.Printf("%s: ok (%s)\n", c.label, valid)
		default:
			cmd.Printf("%s: ok\n", c.label)
		}
	}
	if failed {
		return errInvalidInput
	}
	return nil
}
