// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"github.com/spf13/cobra"

	"github.com/holomush/disguise/internal/config"
)

// Global flags available to all subcommands.
var (
	configFile string
	grants     []string
)

// NewRootCmd creates the root command for the disguisectl CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "disguisectl",
		Short: "Parse and inspect disguise commands",
		Long: `disguisectl parses disguise commands the way a game server would,
using the roles, templates and locale of a configuration file.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (default: XDG_CONFIG_HOME/disguise/config.yaml)")
	cmd.PersistentFlags().StringSliceVar(&grants, "grant", nil, "assign a role at runtime as sender=role (repeatable)")
	config.BindFlags(cmd.PersistentFlags())

	cmd.AddCommand(newParseCmd())
	cmd.AddCommand(newCategoriesCmd())
	cmd.AddCommand(newOptionsCmd())
	cmd.AddCommand(newShellCmd())
	cmd.AddCommand(newValidateConfigCmd())
	cmd.AddCommand(newInitConfigCmd())

	return cmd
}
