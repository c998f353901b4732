// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package stubgen defines the public interface for generating .pyi type
// stubs from an installed Python library by runtime introspection.
package stubgen

import (
	"context"
	"errors"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/petar-djukic/stubgen/internal/generator"
	"github.com/petar-djukic/stubgen/internal/probe"
)

// Error types for the Generator API.
var (
	ErrInvalidConfig   = errors.New("invalid config")
	ErrNotImportable   = probe.ErrNotImportable
	ErrVersionMismatch = generator.ErrVersionMismatch
)

// Config configures a Generator instance.
type Config struct {
	Package        string             // Root package to introspect (required)
	OutputDir      string             // Root of the stub tree (required)
	Overwrite      bool               // Replace existing stub files
	Python         string             // Interpreter command (default python3)
	PythonPath     []string           // Extra PYTHONPATH entries for the probe
	Timeout        time.Duration      // Per-call probe timeout (default 60s)
	RequireVersion string             // Semver constraint on the library version
	Commit         bool               // Commit written stubs to the enclosing git repository
	Verbose        bool               // Report skipped files
	Out            io.Writer          // Progress output (nil for none)
	Logger         *zap.SugaredLogger // Optional
}

// ModuleFailure is a module that could not be processed.
type ModuleFailure struct {
	Module string `json:"module"`
	Error  string `json:"error"`
}

// Result holds the outcome of a Generator.Run invocation.
type Result struct {
	Library   string          `json:"library"`
	Version   string          `json:"version"`
	Generated int             `json:"generated"`
	Skipped   int             `json:"skipped"`
	Failed    int             `json:"failed"`
	Files     []string        `json:"files"` // Stub files written
	Failures  []ModuleFailure `json:"failures,omitempty"`
	Committed bool            `json:"committed"`
}

// Generator produces a stub tree for one library.
type Generator interface {
	// Run discovers the library's modules, writes a stub for each, and
	// commits the written files when configured. Per-module failures are
	// reported in the result; the error is non-nil only when the run as a
	// whole could not proceed.
	Run(ctx context.Context) (*Result, error)
}
