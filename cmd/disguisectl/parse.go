// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/holomush/disguise/internal/access"
	"github.com/holomush/disguise/internal/host"
	"github.com/holomush/disguise/internal/parser"
	"github.com/holomush/disguise/pkg/errutil"
)

// Default values for sender-scoped flags.
const (
	defaultSender    = access.SubjectSystem
	defaultNamespace = "world"
)

// errRejected is returned after the rejection message has been printed.
var errRejected = errors.New("disguise rejected")

// parseConfig holds configuration for the parse command.
type parseConfig struct {
	sender    string
	namespace string
}

func newParseCmd() *cobra.Command {
	cfg := &parseConfig{}

	cmd := &cobra.Command{
		Use:   "parse [flags] -- <disguise> [option [value...]...]",
		Short: "Parse a disguise command and print the result",
		Long: `Parse a disguise command with the permissions of a sender and print
the resulting disguise as YAML, or the message the sender would see.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, cfg, args)
		},
	}

	cmd.Flags().StringVar(&cfg.sender, "sender", defaultSender, "sender whose permissions apply")
	cmd.Flags().StringVar(&cfg.namespace, "namespace", defaultNamespace, "permission namespace")

	return cmd
}

func runParse(cmd *cobra.Command, cfg *parseConfig, args []string) error {
	env, err := setup(cmd)
	if err != nil {
		return err
	}

	d, err := env.engine.Parse(cmd.Context(), cfg.sender, cfg.namespace, args)
	if err != nil {
		return reject(cmd.OutOrStdout(), env, err)
	}
	return printSummary(cmd.OutOrStdout(), env.engine.Summarize(d))
}

// reject prints what the sender sees for a failed command.
func reject(w io.Writer, env *environment, err error) error {
	if !parser.IsParseError(err) {
		errutil.LogError(env.logger, "disguise command failed", err)
	}
	if _, werr := fmt.Fprintln(w, env.engine.Render(err)); werr != nil {
		return werr
	}
	return errRejected
}

func printSummary(w io.Writer, s host.Summary) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to encode disguise: %w", err)
	}
	return enc.Close()
}
