// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"
)

// Flag names bound by BindFlags. Each maps to the config key with dashes
// replaced by underscores.
const (
	FlagLocale     = "locale"
	FlagLocalesDir = "locales-dir"
	FlagLogFormat  = "log-format"
	FlagLogLevel   = "log-level"
	FlagCatalog    = "catalog"
)

// BindFlags registers the flags that override file values.
func BindFlags(fs *pflag.FlagSet) {
	fs.String(FlagLocale, "", "locale for disguise and option names (default from config, en-US)")
	fs.String(FlagLocalesDir, "", "directory with locale overrides")
	fs.String(FlagLogFormat, "", "log format (json or text)")
	fs.String(FlagLogLevel, "", "log level (debug, info, warn, error)")
	fs.String(FlagCatalog, "", "kind catalog file replacing the built-in one")
}

// Load reads the configuration. An empty path means defaults only; flags
// may be nil. Only flags set on the command line override the file.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, oops.In("config").
				Code("READ_FAILED").
				With("path", path).
				Wrapf(err, "read configuration")
		}
		if err := ValidateSchema(data); err != nil {
			return nil, oops.In("config").With("path", path).Wrap(err)
		}
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, oops.In("config").
				Code("PARSE_FAILED").
				With("path", path).
				Wrapf(err, "load configuration")
		}
	}

	if flags != nil {
		provider := posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		})
		if err := k.Load(provider, nil); err != nil {
			return nil, oops.In("config").Code("PARSE_FAILED").Wrapf(err, "load flags")
		}
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, oops.In("config").
			Code("PARSE_FAILED").
			With("path", path).
			Wrapf(err, "decode configuration")
	}
	if err := cfg.Validate(); err != nil {
		return nil, oops.In("config").With("path", path).Wrap(err)
	}
	return cfg, nil
}
