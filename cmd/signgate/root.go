// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SignGate Contributors

package main

import (
	"github.com/spf13/cobra"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the SignGate CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signgate",
		Short: "SignGate - sign-in and sign-up gateway",
		Long: `SignGate validates sign-in and sign-up requests and forwards valid
credentials to a GoTrue-compatible authentication API.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (YAML, default $XDG_CONFIG_HOME/signgate/config.yaml)")

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newCheckCmd())

	return cmd
}
