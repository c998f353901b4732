// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package probe runs the embedded Python introspection script against an
// installed library and decodes the raw facts it reports.
package probe

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/petar-djukic/stubgen/pkg/types"
)

const (
	defaultPython  = "python3"
	defaultTimeout = 60 * time.Second

	// notImportableExit is the exit status probe.py uses when the root
	// package cannot be imported.
	notImportableExit = 3
)

//go:embed probe.py
var script string

// ErrNotImportable is returned when the root package (or the interpreter
// itself) is unavailable.
var ErrNotImportable = errors.New("library not importable")

// Config configures the probe runner.
type Config struct {
	Python     string        // Interpreter command (default python3)
	PythonPath []string      // Extra entries prepended to PYTHONPATH
	Dir        string        // Working directory for the interpreter
	Timeout    time.Duration // Timeout for each probe call (default 60s)
}

// Runner invokes probe.py in a fresh interpreter for every call, so a
// module that crashes on import cannot affect the next one.
type Runner struct {
	cfg Config
}

// New creates a Runner, filling in defaults.
func New(cfg Config) *Runner {
	if cfg.Python == "" {
		cfg.Python = defaultPython
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Runner{cfg: cfg}
}

// Discover imports the root package and returns its version and the raw
// names found by walking its submodules. It returns an error wrapping
// ErrNotImportable when the package or the interpreter is missing.
func (r *Runner) Discover(ctx context.Context, root string) (*types.Library, error) {
	out, err := r.run(ctx, "discover", root)
	if err != nil {
		var pe *Error
		if errors.As(err, &pe) && pe.ExitCode == notImportableExit {
			return nil, fmt.Errorf("%w: %s", ErrNotImportable, pe.Message)
		}
		var ee *exec.Error
		if errors.As(err, &ee) || errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %v", ErrNotImportable, err)
		}
		return nil, err
	}

	var lib types.Library
	if err := json.Unmarshal(out, &lib); err != nil {
		return nil, fmt.Errorf("decoding discover output: %w", err)
	}
	return &lib, nil
}

// Load imports one module and returns the facts about its attributes.
func (r *Runner) Load(ctx context.Context, module string) (*types.Module, error) {
	out, err := r.run(ctx, "load", module)
	if err != nil {
		return nil, err
	}

	var mod types.Module
	if err := json.Unmarshal(out, &mod); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", module, err)
	}
	return &mod, nil
}

// Error is a non-zero exit of the probe script.
type Error struct {
	Args     []string // Probe arguments (command and target)
	ExitCode int      // Interpreter exit status
	Message  string   // Last non-empty line of stderr
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("probe %s exited with status %d", strings.Join(e.Args, " "), e.ExitCode)
	}
	return fmt.Sprintf("probe %s: %s", strings.Join(e.Args, " "), e.Message)
}

// run executes probe.py with a timeout and returns its stdout.
func (r *Runner) run(ctx context.Context, args ...string) ([]byte, error) {
	cmdCtx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	cmd := exec.CommandContext(cmdCtx, r.cfg.Python, append([]string{"-c", script}, args...)...)
	cmd.Dir = r.cfg.Dir
	cmd.Env = r.env()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return stdout.Bytes(), nil
	}
	if cmdCtx.Err() != nil {
		return nil, fmt.Errorf("probe %s: %w", strings.Join(args, " "), cmdCtx.Err())
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return nil, &Error{
			Args:     args,
			ExitCode: exitErr.ExitCode(),
			Message:  lastLine(stderr.String()),
		}
	}
	return nil, err
}

// env returns the process environment with the configured PYTHONPATH
// entries prepended.
func (r *Runner) env() []string {
	env := os.Environ()
	if len(r.cfg.PythonPath) == 0 {
		return env
	}

	entries := append([]string{}, r.cfg.PythonPath...)
	if existing := os.Getenv("PYTHONPATH"); existing != "" {
		entries = append(entries, existing)
	}
	return append(env, "PYTHONPATH="+strings.Join(entries, string(filepath.ListSeparator)))
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}
