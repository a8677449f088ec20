// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/samber/oops"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/holomush/disguise/internal/config"
	"github.com/holomush/disguise/internal/host"
	"github.com/holomush/disguise/internal/xdg"
)

func newValidateConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate-config [file]",
		Short: "Check a configuration file",
		Long: `Check a configuration file against the schema and the supported
versions, then compile its roles and templates.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := resolveConfigPath()
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				return oops.In("disguisectl").Code("NO_CONFIG").Errorf("no configuration file given or found")
			}

			cfg, err := config.Load(path, nil)
			if err != nil {
				return err
			}
			applyDefaults(cfg)
			// a throwaway engine proves roles, locale and templates compile
			if _, err := host.New(cmd.Context(), cfg, discardLogger()); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: valid (version %s, %d roles, %d templates)\n",
				path, cfg.Version, len(cfg.Permissions.Roles), len(cfg.CustomDisguises))
			return err
		},
	}
}

func newInitConfigCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init-config",
		Short: "Write a default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := configFile
			if path == "" {
				var err error
				if path, err = xdg.ConfigFile(); err != nil {
					return err
				}
			}
			if _, err := os.Stat(path); err == nil && !force {
				return oops.In("disguisectl").
					Code("CONFIG_EXISTS").
					With("path", path).
					Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := xdg.EnsureDir(filepath.Dir(path)); err != nil {
				return err
			}

			data, err := yaml.Marshal(config.Default())
			if err != nil {
				return fmt.Errorf("failed to encode configuration: %w", err)
			}
			header := fmt.Sprintf("# yaml-language-server: $schema=%s\n", config.SchemaID)
			if err := os.WriteFile(path, append([]byte(header), data...), 0o600); err != nil {
				return oops.In("disguisectl").With("path", path).Wrapf(err, "write configuration")
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return err
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	return cmd
}
