// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/holomush/disguise/internal/clone"
	"github.com/holomush/disguise/internal/config"
	"github.com/holomush/disguise/internal/observability"
	"github.com/holomush/disguise/internal/parser"
	"github.com/holomush/disguise/pkg/errutil"
)

const shellPrompt = "disguise> "

// shellConfig holds configuration for the shell command.
type shellConfig struct {
	parseConfig
	metricsAddr string
	watch       bool
}

func newShellCmd() *cobra.Command {
	cfg := &shellConfig{}

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Read disguise commands line by line",
		Long: `Read disguise commands from standard input and answer each one.

Besides disguise commands the shell understands:
  save <name> <disguise...>   parse a disguise and store it as @name
  clones                      list stored clone references
  as <sender>                 switch the sender
  quit                        leave the shell`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShell(cmd, cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.sender, "sender", defaultSender, "sender whose permissions apply")
	cmd.Flags().StringVar(&cfg.namespace, "namespace", defaultNamespace, "permission namespace")
	cmd.Flags().StringVar(&cfg.metricsAddr, "metrics-addr", "", "metrics/health HTTP address (empty = disabled)")
	cmd.Flags().BoolVar(&cfg.watch, "watch", true, "reload the configuration file when it changes")

	return cmd
}

func runShell(cmd *cobra.Command, cfg *shellConfig) error {
	env, err := setup(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var metrics *observability.Metrics
	if cfg.metricsAddr != "" {
		srv := observability.NewServer(cfg.metricsAddr, func() bool { return true }, parser.RegisterMetrics)
		errCh, err := srv.Start()
		if err != nil {
			return fmt.Errorf("failed to start observability server: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Stop(shutdownCtx); err != nil {
				env.logger.Warn("error stopping observability server", "error", err)
			}
		}()
		go func() {
			for err := range errCh {
				errutil.LogError(env.logger, "observability server failed", err)
			}
		}()
		metrics = srv.Metrics()
	}

	if cfg.watch && env.path != "" {
		reloader := config.ReloaderFunc(func(ctx context.Context, next *config.Config) error {
			applyDefaults(next)
			return env.engine.Reload(ctx, next)
		})
		w, err := config.NewWatcher(env.path, cmd.Flags(), reloader,
			config.WithLogger(env.logger),
			config.WithResultHook(func(err error) {
				if metrics != nil {
					metrics.ReloadsTotal.WithLabelValues(outcome(err)).Inc()
				}
			}),
		)
		if err != nil {
			return err
		}
		if err := w.Start(ctx); err != nil {
			return err
		}
		defer w.Stop()
	}

	sh := &shell{env: env, metrics: metrics, sender: cfg.sender, namespace: cfg.namespace}
	return sh.run(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
}

func outcome(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}

// shell answers one line at a time.
type shell struct {
	env       *environment
	metrics   *observability.Metrics
	sender    string
	namespace string
}

func (s *shell) run(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprint(out, shellPrompt)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) > 0 {
			if fields[0] == "quit" || fields[0] == "exit" {
				return nil
			}
			s.handle(ctx, out, fields)
		}
		fmt.Fprint(out, shellPrompt)
	}
	fmt.Fprintln(out)
	return scanner.Err()
}

func (s *shell) handle(ctx context.Context, out io.Writer, fields []string) {
	command, reply, status := "parse", "", "ok"
	switch fields[0] {
	case "save":
		command = "save"
		if len(fields) < 3 {
			reply, status = "usage: save <name> <disguise...>", "error"
			break
		}
		entry, err := s.env.engine.Save(ctx, s.sender, s.namespace, fields[1], fields[2:])
		if err != nil {
			reply, status = s.render(err)
			break
		}
		reply = fmt.Sprintf("Saved %s%s as a %s disguise", clone.RefPrefix, entry.Name, entry.Kind)
	case "clones":
		command = "clones"
		names := s.env.engine.Clones().Names()
		if len(names) == 0 {
			reply = "No stored disguises"
			break
		}
		reply = clone.RefPrefix + strings.Join(names, " "+clone.RefPrefix)
	case "as":
		command = "as"
		if len(fields) != 2 {
			reply, status = "usage: as <sender>", "error"
			break
		}
		s.sender = fields[1]
		reply = "Now acting as " + s.sender
	default:
		d, err := s.env.engine.Parse(ctx, s.sender, s.namespace, fields)
		if err != nil {
			reply, status = s.render(err)
			break
		}
		var b strings.Builder
		if err := printSummary(&b, s.env.engine.Summarize(d)); err != nil {
			reply, status = s.render(err)
			break
		}
		reply = strings.TrimRight(b.String(), "\n")
	}

	if s.metrics != nil {
		s.metrics.CommandsTotal.WithLabelValues(command, status).Inc()
	}
	if _, err := fmt.Fprintln(out, reply); err != nil {
		observability.RecordOutputFailure(command)
		s.env.logger.Warn("failed to write reply", "command", command, "error", err)
	}
}

func (s *shell) render(err error) (string, string) {
	if !parser.IsParseError(err) {
		errutil.LogError(s.env.logger, "shell command failed", err, "sender", s.sender)
		return s.env.engine.Render(err), "error"
	}
	return s.env.engine.Render(err), "rejected"
}
