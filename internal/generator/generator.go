// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package generator runs a stub generation pass: discover the modules of a
// root package, then load, render, and write each one in sorted order.
package generator

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/semver/v3"
	"go.uber.org/zap"

	"github.com/petar-djukic/stubgen/internal/discover"
	"github.com/petar-djukic/stubgen/internal/render"
	"github.com/petar-djukic/stubgen/internal/stubfile"
	"github.com/petar-djukic/stubgen/pkg/types"
)

const unknownVersion = "unknown"

// ErrVersionMismatch is returned when the installed library does not
// satisfy the required version constraint.
var ErrVersionMismatch = errors.New("library version does not satisfy constraint")

// Introspector abstracts the probe so the runner is testable.
type Introspector interface {
	Discover(ctx context.Context, root string) (*types.Library, error)
	Load(ctx context.Context, module string) (*types.Module, error)
}

// Reporter receives human-facing progress.
type Reporter interface {
	Start(library, version, outDir string, overwrite bool)
	File(action stubfile.Action, path string)
	Summary(generated, skipped, failed int)
}

// Deps holds injected dependencies and settings for the runner.
type Deps struct {
	Introspector   Introspector
	Reporter       Reporter           // Optional
	Logger         *zap.SugaredLogger // Optional; defaults to a no-op logger
	Package        string             // Root package name
	OutputDir      string             // Root of the stub tree
	Overwrite      bool               // Replace existing stub files
	RequireVersion string             // Semver constraint (empty to skip)
}

// Outcome is what happened to one module.
type Outcome struct {
	Module string
	Path   string          // Empty when the module failed before a path was known
	Action stubfile.Action // Meaningful only when Err is nil
	Err    error
}

// Failed reports whether the module could not be processed.
func (o Outcome) Failed() bool {
	return o.Err != nil
}

// Result summarizes a run.
type Result struct {
	Library   string
	Version   string
	Generated int // Files written, new or overwritten
	Skipped   int // Existing files left untouched
	Failed    int // Modules that could not be processed
	Outcomes  []Outcome
}

// Written returns the paths of the files written during the run.
func (r *Result) Written() []string {
	var paths []string
	for _, o := range r.Outcomes {
		if o.Err == nil && o.Action.Written() {
			paths = append(paths, o.Path)
		}
	}
	return paths
}

// Runner orchestrates a generation pass.
type Runner struct {
	deps Deps
	log  *zap.SugaredLogger
}

// NewRunner creates a Runner with the given dependencies.
func NewRunner(deps Deps) *Runner {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Runner{deps: deps, log: log}
}

// Run discovers the library's modules and generates a stub for each one.
// It fails only when the library cannot be discovered, its version is
// rejected, or ctx is cancelled; per-module errors are recorded in the
// result and processing moves on.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	lib, err := r.deps.Introspector.Discover(ctx, r.deps.Package)
	if err != nil {
		return nil, err
	}

	result := &Result{Library: r.deps.Package, Version: lib.Version}
	if result.Version == "" {
		result.Version = unknownVersion
	}

	if err := r.checkVersion(result.Version); err != nil {
		return result, err
	}

	if r.deps.Reporter != nil {
		r.deps.Reporter.Start(r.deps.Package, result.Version, r.deps.OutputDir, r.deps.Overwrite)
	}

	modules := discover.Modules(r.deps.Package, lib.Modules)
	r.log.Debugw("discovered modules", "package", r.deps.Package, "count", len(modules))

	writer := &stubfile.Writer{
		OutDir:    r.deps.OutputDir,
		Root:      r.deps.Package,
		Overwrite: r.deps.Overwrite,
	}

	for _, name := range modules {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		outcome := r.processModule(ctx, writer, name)
		result.Outcomes = append(result.Outcomes, outcome)

		switch {
		case outcome.Failed():
			result.Failed++
			r.log.Warnw("failed to process module", "module", name, "error", outcome.Err)
		case outcome.Action == stubfile.Skipped:
			result.Skipped++
			r.log.Debugw("skipped existing stub", "module", name, "path", outcome.Path)
		default:
			result.Generated++
			r.log.Debugw("wrote stub", "module", name, "path", outcome.Path, "action", outcome.Action.String())
		}

		if !outcome.Failed() && r.deps.Reporter != nil {
			r.deps.Reporter.File(outcome.Action, outcome.Path)
		}
	}

	if r.deps.Reporter != nil {
		r.deps.Reporter.Summary(result.Generated, result.Skipped, result.Failed)
	}
	return result, nil
}

// processModule loads, renders, and writes one module. Every error is
// returned in the outcome rather than aborting the run.
func (r *Runner) processModule(ctx context.Context, w *stubfile.Writer, name string) Outcome {
	outcome := Outcome{Module: name}

	mod, err := r.deps.Introspector.Load(ctx, name)
	if err != nil {
		outcome.Err = fmt.Errorf("loading %s: %w", name, err)
		return outcome
	}
	if mod.Name == "" {
		mod.Name = name
	}

	outcome.Path = w.Path(name, mod.IsPackage)
	action, err := w.Write(outcome.Path, render.Module(mod))
	if err != nil {
		outcome.Err = err
		return outcome
	}
	outcome.Action = action
	return outcome
}

// checkVersion enforces RequireVersion. Versions that are unknown or not
// semver-shaped cannot be compared and only produce a warning.
func (r *Runner) checkVersion(version string) error {
	if r.deps.RequireVersion == "" {
		return nil
	}

	constraint, err := semver.NewConstraint(r.deps.RequireVersion)
	if err != nil {
		return fmt.Errorf("parsing version constraint %q: %w", r.deps.RequireVersion, err)
	}

	if version == unknownVersion {
		r.log.Warnw("library version unknown, skipping version check", "constraint", r.deps.RequireVersion)
		return nil
	}

	v, err := semver.NewVersion(version)
	if err != nil {
		r.log.Warnw("library version is not semver, skipping version check", "version", version, "error", err)
		return nil
	}

	if !constraint.Check(v) {
		return fmt.Errorf("%w: %s %s does not match %q", ErrVersionMismatch, r.deps.Package, version, r.deps.RequireVersion)
	}
	return nil
}
