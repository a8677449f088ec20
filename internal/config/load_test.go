// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package config_test

import (
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/disguise/internal/config"
	"github.com/holomush/disguise/pkg/errutil"
)

func flagSet(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	config.BindFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, t.TempDir(), sample)

	cfg, err := config.Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "1.2.0", cfg.Version)
	assert.Equal(t, "de-DE", cfg.Locale)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, map[string][]string{"builder": {"disguise.*.*", "disguise.clone"}}, cfg.Permissions.Roles)
	assert.Equal(t, map[string][]string{"alice": {"builder"}}, cfg.Permissions.Senders)
	assert.Equal(t, map[string]string{"tinycow": "cow baby"}, cfg.CustomDisguises)
	assert.Equal(t, 5, cfg.Clones.MaxEntries)
}

func TestLoad_DefaultsFillGaps(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "version: 1.0.0\n")

	cfg, err := config.Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_FlagsOverrideFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), sample)

	cfg, err := config.Load(path, flagSet(t, "--locale", "en-US", "--log-format", "text"))
	require.NoError(t, err)
	assert.Equal(t, "en-US", cfg.Locale)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "debug", cfg.LogLevel, "unset flags keep file values")
}

func TestLoad_FlagsWithoutFile(t *testing.T) {
	cfg, err := config.Load("", flagSet(t, "--log-level", "warn", "--locales-dir", "/srv/locales"))
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "/srv/locales", cfg.LocalesDir)
	assert.Equal(t, "en-US", cfg.Locale)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := config.Load(filepath.Join(dir, "missing.yaml"), nil)
	errutil.AssertErrorCode(t, err, "READ_FAILED")

	_, err = config.Load(writeConfig(t, dir, "version: 3.0.0\n"), nil)
	errutil.AssertErrorCode(t, err, "UNSUPPORTED_VERSION")

	_, err = config.Load(writeConfig(t, dir, "version: 1.0.0\nlocale: 7\n"), nil)
	errutil.AssertErrorCode(t, err, "SCHEMA_VIOLATION")

	_, err = config.Load(writeConfig(t, dir, "version: 1.0.0\n"), flagSet(t, "--log-format", "xml"))
	errutil.AssertErrorCode(t, err, "INVALID_CONFIG")
}
