// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/petar-djukic/stubgen/internal/config"
	"github.com/petar-djukic/stubgen/internal/logging"
	"github.com/petar-djukic/stubgen/internal/stubcheck"
)

// newCheckCmd creates the "check" command.
func newCheckCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [SNIPPET...]",
		Short: "Validate a generated stub tree",
		Long:  "Check parses every stub in the tree, verifies that example snippets only import names the stubs declare, and optionally type-checks the snippets with mypy.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, v, args)
		},
	}

	cmd.Flags().String(config.KeyMypy, "", "mypy command used to type-check snippets (empty to skip)")
	cmd.Flags().String(config.KeyFormat, config.DefaultFormat, "Report format: text, json, or yaml")
	bindFlags(v, cmd.Flags(), config.KeyMypy, config.KeyFormat)

	return cmd
}

func runCheck(cmd *cobra.Command, v *viper.Viper, snippets []string) error {
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	log := logging.NewWithWriter(cmd.ErrOrStderr(), cfg.Verbose)
	defer log.Sync() //nolint:errcheck

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	checker := stubcheck.New(stubcheck.Config{
		Dir:     cfg.OutputDir,
		Package: cfg.Package,
		Mypy:    cfg.Mypy,
		Logger:  log,
	})
	rep, err := checker.Run(ctx, snippets)
	if err != nil {
		return err
	}

	if err := stubcheck.Encode(cmd.OutOrStdout(), rep, cfg.Format); err != nil {
		return err
	}
	if !rep.OK() {
		log.Debugw("check failed", "errors", rep.Errors())
		return errReported
	}
	return nil
}
