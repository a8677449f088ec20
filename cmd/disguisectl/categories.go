// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/holomush/disguise/internal/disguise"
)

func newCategoriesCmd() *cobra.Command {
	cfg := &parseConfig{}

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List the disguises a sender may use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := setup(cmd)
			if err != nil {
				return err
			}
			view := env.engine.Access().View(cfg.sender, cfg.namespace)
			cats := env.engine.Parser().AllowedCategories(view)

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tCLASS\tSOURCE")
			for _, cat := range cats {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", env.engine.DisplayName(cat), cat.Kind().Class, source(cat))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&cfg.sender, "sender", defaultSender, "sender whose permissions apply")
	cmd.Flags().StringVar(&cfg.namespace, "namespace", defaultNamespace, "permission namespace")

	return cmd
}

func source(cat disguise.Category) string {
	if cat.IsCustom() {
		return "template"
	}
	return "builtin"
}

func newOptionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "options <disguise> [prefix]",
		Short: "List the options of a disguise",
		Long: `List the options of a disguise. With a prefix, print the single option
the prefix completes to in the configured locale.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd)
			if err != nil {
				return err
			}
			cat, ok := env.engine.Parser().ResolveCategory(args[0])
			if !ok {
				return fmt.Errorf("unknown disguise %q", args[0])
			}
			out := cmd.OutOrStdout()
			if len(args) == 2 {
				name, err := env.engine.Parser().ResolveOption(cat, args[1])
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, name)
				return err
			}
			fmt.Fprintf(out, "%s (%s)\n", env.engine.DisplayName(cat), cat.Kind().Name)
			_, err = fmt.Fprintln(out, strings.Join(env.engine.Parser().Options(cat), "\n"))
			return err
		},
	}
}
