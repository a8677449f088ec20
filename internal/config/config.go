// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package config loads and watches the disguise configuration file.
//
// A file is accepted only when it matches the JSON schema reflected from
// Config, carries a version inside SupportedVersions and passes Validate.
// Command-line flags override file values.
package config

import (
	"github.com/Masterminds/semver/v3"
	"github.com/samber/oops"

	"github.com/holomush/disguise/internal/logging"
)

// SupportedVersions is the range of configuration versions this build reads.
const SupportedVersions = ">= 1.0.0, < 2.0.0"

// CurrentVersion is written by Default.
const CurrentVersion = "1.0.0"

// Config is the configuration file.
type Config struct {
	Version    string `koanf:"version" json:"version" yaml:"version" jsonschema:"description=Configuration format version (semver)"`
	Locale     string `koanf:"locale" json:"locale,omitempty" yaml:"locale,omitempty" jsonschema:"description=Locale for disguise and option names, e.g. en-US"`
	LocalesDir string `koanf:"locales_dir" json:"locales_dir,omitempty" yaml:"locales_dir,omitempty" jsonschema:"description=Directory with locales/<locale>/<domain>.yaml overrides"`
	LogFormat  string `koanf:"log_format" json:"log_format,omitempty" yaml:"log_format,omitempty" jsonschema:"enum=json,enum=text"`
	LogLevel   string `koanf:"log_level" json:"log_level,omitempty" yaml:"log_level,omitempty" jsonschema:"enum=debug,enum=info,enum=warn,enum=error"`
	// Catalog is a kind catalog file replacing the embedded one. Read once at startup.
	Catalog string `koanf:"catalog" json:"catalog,omitempty" yaml:"catalog,omitempty" jsonschema:"description=Kind catalog file replacing the built-in catalog"`

	Permissions     Permissions       `koanf:"permissions" json:"permissions,omitempty" yaml:"permissions,omitempty"`
	CustomDisguises map[string]string `koanf:"custom_disguises" json:"custom_disguises,omitempty" yaml:"custom_disguises,omitempty" jsonschema:"description=Template name to disguise command"`
	Clones          Clones            `koanf:"clones" json:"clones,omitempty" yaml:"clones,omitempty"`
}

// Permissions defines roles as lists of permission nodes and assigns them to senders.
// No roles means the built-in member, builder and admin roles.
type Permissions struct {
	Roles   map[string][]string `koanf:"roles" json:"roles,omitempty" yaml:"roles,omitempty"`
	Senders map[string][]string `koanf:"senders" json:"senders,omitempty" yaml:"senders,omitempty"`
}

// Clones configures the clone reference store.
type Clones struct {
	MaxEntries int `koanf:"max_entries" json:"max_entries,omitempty" yaml:"max_entries,omitempty" jsonschema:"minimum=0"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Version:   CurrentVersion,
		Locale:    "en-US",
		LogFormat: "text",
		LogLevel:  "info",
		Clones:    Clones{MaxEntries: 100},
	}
}

// Validate checks values the schema cannot express.
func (c *Config) Validate() error {
	if err := CheckVersion(c.Version); err != nil {
		return err
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return oops.In("config").
			Code("INVALID_CONFIG").
			With("log_format", c.LogFormat).
			Errorf("log_format must be 'json' or 'text', got %q", c.LogFormat)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return oops.In("config").Wrap(err)
	}
	if c.Clones.MaxEntries < 0 {
		return oops.In("config").
			Code("INVALID_CONFIG").
			With("max_entries", c.Clones.MaxEntries).
			Errorf("clones.max_entries cannot be negative")
	}
	for sender, roles := range c.Permissions.Senders {
		if len(roles) == 0 {
			return oops.In("config").
				Code("INVALID_CONFIG").
				With("sender", sender).
				Errorf("sender %s has no roles", sender)
		}
	}
	return nil
}

// CheckVersion reports whether v is a configuration version this build reads.
func CheckVersion(v string) error {
	if v == "" {
		return oops.In("config").Code("UNSUPPORTED_VERSION").Errorf("version is required")
	}
	version, err := semver.NewVersion(v)
	if err != nil {
		return oops.In("config").
			Code("UNSUPPORTED_VERSION").
			With("version", v).
			Wrapf(err, "parse version")
	}
	constraint, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		return oops.In("config").Wrapf(err, "parse supported versions")
	}
	if ok, errs := constraint.Validate(version); !ok {
		return oops.In("config").
			Code("UNSUPPORTED_VERSION").
			With("version", v).
			With("supported", SupportedVersions).
			With("reasons", errs).
			Errorf("configuration version %s is not supported", v)
	}
	return nil
}
