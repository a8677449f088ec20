// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/holomush/disguise/internal/config"
	"github.com/holomush/disguise/internal/host"
	"github.com/holomush/disguise/internal/logging"
	"github.com/holomush/disguise/internal/xdg"
	"github.com/holomush/disguise/pkg/errutil"
)

// environment is what every command that parses needs.
type environment struct {
	path   string // configuration file in use, empty for defaults
	cfg    *config.Config
	logger *slog.Logger
	engine *host.Engine
}

// resolveConfigPath returns --config, or the default file when it exists.
func resolveConfigPath() string {
	if configFile != "" {
		return configFile
	}
	path, err := xdg.ConfigFile()
	if err != nil {
		return ""
	}
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// applyDefaults fills values that depend on the environment rather than the file.
func applyDefaults(cfg *config.Config) {
	if cfg.LocalesDir != "" {
		return
	}
	dir, err := xdg.DataDir()
	if err != nil {
		return
	}
	if info, err := os.Stat(filepath.Join(dir, "locales")); err == nil && info.IsDir() {
		cfg.LocalesDir = dir
	}
}

func setup(cmd *cobra.Command) (*environment, error) {
	path := resolveConfigPath()
	cfg, err := config.Load(path, cmd.Flags())
	if err != nil {
		return nil, err
	}
	applyDefaults(cfg)

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := logging.SetDefault(logging.Options{
		Service: "disguisectl",
		Version: version,
		Format:  cfg.LogFormat,
		Level:   level,
		Writer:  cmd.ErrOrStderr(),
	})

	engine, err := host.New(cmd.Context(), cfg, logger)
	if err != nil {
		errutil.LogError(logger, "failed to build disguise engine", err, "config", path)
		return nil, err
	}
	for _, grant := range grants {
		sender, role, ok := strings.Cut(grant, "=")
		if !ok {
			return nil, oops.In("disguisectl").
				Code("INVALID_GRANT").
				With("grant", grant).
				Errorf("grant must be sender=role, got %q", grant)
		}
		if err := engine.Access().AssignRole(sender, role); err != nil {
			return nil, err
		}
	}

	return &environment{path: path, cfg: cfg, logger: logger, engine: engine}, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
