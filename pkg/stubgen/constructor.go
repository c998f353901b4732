// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package stubgen

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"go.uber.org/zap"

	"github.com/petar-djukic/stubgen/internal/generator"
	"github.com/petar-djukic/stubgen/internal/git"
	"github.com/petar-djukic/stubgen/internal/probe"
	"github.com/petar-djukic/stubgen/internal/report"
)

// New validates the config and returns a ready-to-use Generator. It does
// not start the interpreter; that happens in Run.
func New(cfg Config) (Generator, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	log := cfg.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	deps := generator.Deps{
		Introspector: probe.New(probe.Config{
			Python:     cfg.Python,
			PythonPath: cfg.PythonPath,
			Timeout:    cfg.Timeout,
		}),
		Logger:         log,
		Package:        cfg.Package,
		OutputDir:      cfg.OutputDir,
		Overwrite:      cfg.Overwrite,
		RequireVersion: cfg.RequireVersion,
	}
	if cfg.Out != nil {
		deps.Reporter = report.NewCLI(cfg.Out, cfg.Verbose)
	}

	return &generatorAdapter{
		runner: generator.NewRunner(deps),
		cfg:    cfg,
		log:    log,
	}, nil
}

// generatorAdapter adapts internal/generator.Runner to the public
// Generator interface and adds the commit step.
type generatorAdapter struct {
	runner *generator.Runner
	cfg    Config
	log    *zap.SugaredLogger
}

func (a *generatorAdapter) Run(ctx context.Context) (*Result, error) {
	ir, err := a.runner.Run(ctx)
	if ir == nil {
		return &Result{Library: a.cfg.Package}, err
	}

	result := convert(ir)
	if err != nil {
		return result, err
	}

	if a.cfg.Commit {
		result.Committed = a.commit(result)
	}
	return result, nil
}

// commit records the written stubs in git. Failing to commit never fails
// the run.
func (a *generatorAdapter) commit(result *Result) bool {
	if len(result.Files) == 0 {
		a.log.Debugw("nothing to commit")
		return false
	}

	repo, err := git.Open(a.cfg.OutputDir)
	if err != nil {
		if errors.Is(err, git.ErrNoGit) {
			a.log.Warnw("output directory is not inside a git repository, skipping commit", "dir", a.cfg.OutputDir)
		} else {
			a.log.Warnw("opening repository failed", "error", err)
		}
		return false
	}

	committed, err := repo.CommitStubs(result.Files, result.Library, result.Version)
	if err != nil {
		a.log.Warnw("committing stubs failed", "error", err)
		return false
	}
	if committed {
		a.log.Infow("committed stubs", "files", len(result.Files))
	}
	return committed
}

func convert(ir *generator.Result) *Result {
	result := &Result{
		Library:   ir.Library,
		Version:   ir.Version,
		Generated: ir.Generated,
		Skipped:   ir.Skipped,
		Failed:    ir.Failed,
		Files:     ir.Written(),
	}
	for _, o := range ir.Outcomes {
		if o.Failed() {
			result.Failures = append(result.Failures, ModuleFailure{Module: o.Module, Error: o.Err.Error()})
		}
	}
	return result
}

// validateConfig checks that required fields are present.
func validateConfig(cfg Config) error {
	if strings.TrimSpace(cfg.Package) == "" {
		return fmt.Errorf("Package is required")
	}
	if strings.TrimSpace(cfg.OutputDir) == "" {
		return fmt.Errorf("OutputDir is required")
	}
	if cfg.Timeout < 0 {
		return fmt.Errorf("Timeout must not be negative")
	}
	if cfg.RequireVersion != "" {
		if _, err := semver.NewConstraint(cfg.RequireVersion); err != nil {
			return fmt.Errorf("RequireVersion %q: %v", cfg.RequireVersion, err)
		}
	}
	return nil
}
