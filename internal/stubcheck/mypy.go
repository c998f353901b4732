// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package stubcheck

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const defaultMypyTimeout = 120 * time.Second

// MypyConfig configures a mypy run.
type MypyConfig struct {
	Command  string        // mypy command line, e.g. "mypy" or "python3 -m mypy"
	StubDir  string        // Root of the stub tree
	Package  string        // Root package the tree describes
	Snippets []string      // Files to type-check
	Timeout  time.Duration // Default 120s
}

// mypyLineRegex matches mypy output lines:
// snippet.py:3:5: error: Module has no attribute "x"  [attr-defined]
// snippet.py:3: note: See docs
var mypyLineRegex = regexp.MustCompile(`^(.+?):(\d+)(?::(\d+))?: (error|note|warning): (.+?)(?:\s+\[([a-z0-9-]+)\])?$`)

// Mypy type-checks the snippets against the stub tree. The tree is exposed
// to mypy as a package named after the root by linking it into a temporary
// MYPYPATH directory.
func Mypy(ctx context.Context, cfg MypyConfig) ([]Diagnostic, error) {
	parts := strings.Fields(cfg.Command)
	if len(parts) == 0 {
		return nil, errors.New("empty mypy command")
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultMypyTimeout
	}

	searchPath, err := os.MkdirTemp("", "stubgen-mypy-*")
	if err != nil {
		return nil, fmt.Errorf("creating mypy path: %w", err)
	}
	defer os.RemoveAll(searchPath)

	stubDir, err := filepath.Abs(cfg.StubDir)
	if err != nil {
		return nil, err
	}
	if err := os.Symlink(stubDir, filepath.Join(searchPath, cfg.Package)); err != nil {
		return nil, fmt.Errorf("linking stub tree: %w", err)
	}

	args := append(parts[1:], "--no-error-summary", "--show-error-codes")
	args = append(args, cfg.Snippets...)

	cmdCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(cmdCtx, parts[0], args...)
	cmd.Env = append(os.Environ(), "MYPYPATH="+searchPath)

	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	runErr := cmd.Run()
	diags := parseMypy(buf.String())

	// mypy exits 1 when it reports type errors; anything else without
	// parsed output is a failure to run.
	var exitErr *exec.ExitError
	if runErr != nil && len(diags) == 0 {
		if errors.As(runErr, &exitErr) {
			return nil, fmt.Errorf("mypy exited with status %d: %s", exitErr.ExitCode(), strings.TrimSpace(buf.String()))
		}
		return nil, fmt.Errorf("running mypy: %w", runErr)
	}
	return diags, nil
}

// parseMypy extracts diagnostics from mypy output.
func parseMypy(output string) []Diagnostic {
	var diags []Diagnostic
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		m := mypyLineRegex.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		lineNum, _ := strconv.Atoi(m[2])
		col := 0
		if m[3] != "" {
			col, _ = strconv.Atoi(m[3])
		}

		diags = append(diags, Diagnostic{
			File:     m[1],
			Line:     lineNum,
			Column:   col,
			Severity: m[4],
			Message:  m[5],
			Code:     m[6],
			Source:   SourceMypy,
		})
	}
	return diags
}
