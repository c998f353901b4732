// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/petar-djukic/stubgen/internal/config"
	"github.com/petar-djukic/stubgen/internal/logging"
	"github.com/petar-djukic/stubgen/internal/report"
	"github.com/petar-djukic/stubgen/pkg/stubgen"
)

// newGenerateCmd creates the "generate" command.
func newGenerateCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate stubs for the configured package",
		Long:  "Generate walks the package's modules and writes one .pyi file per module. Existing files are kept unless --overwrite is set.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, v)
		},
	}

	cmd.Flags().Bool(config.KeyOverwrite, false, "Overwrite existing stub files")
	cmd.Flags().String(config.KeyRequireVersion, "", "Semantic version constraint the library must satisfy")
	cmd.Flags().Bool(config.KeyCommit, false, "Commit written stubs to the enclosing git repository")
	bindFlags(v, cmd.Flags(), config.KeyOverwrite, config.KeyRequireVersion, config.KeyCommit)

	return cmd
}

func runGenerate(cmd *cobra.Command, v *viper.Viper) error {
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	log := logging.NewWithWriter(cmd.ErrOrStderr(), cfg.Verbose)
	defer log.Sync() //nolint:errcheck

	g, err := stubgen.New(stubgen.Config{
		Package:        cfg.Package,
		OutputDir:      cfg.OutputDir,
		Overwrite:      cfg.Overwrite,
		Python:         cfg.Python,
		PythonPath:     cfg.PythonPath,
		Timeout:        cfg.Timeout,
		RequireVersion: cfg.RequireVersion,
		Commit:         cfg.Commit,
		Verbose:        cfg.Verbose,
		Out:            out,
		Logger:         log,
	})
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cli := report.NewCLI(cmd.ErrOrStderr(), cfg.Verbose)
	result, err := g.Run(ctx)
	switch {
	case errors.Is(err, stubgen.ErrNotImportable):
		log.Debugw("library import failed", "package", cfg.Package, "error", err)
		cli.Fatal(fmt.Sprintf("%s library not found. Please install it first.", cfg.Package))
		return errReported
	case errors.Is(err, stubgen.ErrVersionMismatch):
		cli.Fatal(err.Error())
		return errReported
	case err != nil:
		return err
	}

	if result.Committed {
		fmt.Fprintln(out, "Committed generated stubs.")
	}
	return nil
}

// bindFlags binds each named flag to the viper key of the same name.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet, names ...string) {
	for _, name := range names {
		_ = v.BindPFlag(name, flags.Lookup(name))
	}
}
