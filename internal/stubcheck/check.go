// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package stubcheck

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/petar-djukic/stubgen/internal/stubfile"
)

// Config configures a Checker.
type Config struct {
	Dir     string             // Root of the stub tree
	Package string             // Root package the tree describes
	Mypy    string             // mypy command line (empty to skip)
	Logger  *zap.SugaredLogger // Optional
}

// Checker validates a stub tree and example snippets against it.
type Checker struct {
	cfg      Config
	log      *zap.SugaredLogger
	declared map[string][]string // Cached declared names by stub path
}

// New creates a Checker.
func New(cfg Config) *Checker {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Checker{cfg: cfg, log: log, declared: make(map[string][]string)}
}

// Run checks the syntax of every stub, the imports of every snippet, and
// runs mypy over the snippets when configured.
func (c *Checker) Run(ctx context.Context, snippets []string) (*Report, error) {
	report := &Report{Dir: c.cfg.Dir, Snippets: len(snippets)}

	stubs, diags, err := c.Syntax(ctx)
	if err != nil {
		return nil, err
	}
	report.Stubs = stubs
	report.Diagnostics = append(report.Diagnostics, diags...)

	for _, snippet := range snippets {
		diags, err := c.Snippet(ctx, snippet)
		if err != nil {
			return nil, err
		}
		report.Diagnostics = append(report.Diagnostics, diags...)
	}

	if c.cfg.Mypy != "" && len(snippets) > 0 {
		diags, err := Mypy(ctx, MypyConfig{
			Command:  c.cfg.Mypy,
			StubDir:  c.cfg.Dir,
			Package:  c.cfg.Package,
			Snippets: snippets,
		})
		if err != nil {
			return nil, err
		}
		report.MypyRan = true
		report.Diagnostics = append(report.Diagnostics, diags...)
	}

	c.log.Debugw("check finished", "stubs", report.Stubs, "snippets", report.Snippets, "errors", report.Errors())
	return report, nil
}

// Syntax parses every .pyi file under the stub tree and returns the number
// of files parsed with their syntax diagnostics.
func (c *Checker) Syntax(ctx context.Context) (int, []Diagnostic, error) {
	files, err := stubFiles(c.cfg.Dir)
	if err != nil {
		return 0, nil, err
	}

	var diags []Diagnostic
	for _, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			return 0, nil, fmt.Errorf("reading %s: %w", path, err)
		}
		d, err := SyntaxErrors(ctx, path, content)
		if err != nil {
			return 0, nil, err
		}
		if len(d) > 0 {
			c.log.Debugw("stub has syntax errors", "file", path, "count", len(d))
		}
		diags = append(diags, d...)
	}
	return len(files), diags, nil
}

// Snippet checks that every import of the root package in a snippet names
// a stub module that exists and declares the imported names.
func (c *Checker) Snippet(ctx context.Context, path string) ([]Diagnostic, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snippet %s: %w", path, err)
	}

	imports, err := Imports(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("parsing snippet %s: %w", path, err)
	}

	var diags []Diagnostic
	for _, imp := range imports {
		if imp.Module != c.cfg.Package && !strings.HasPrefix(imp.Module, c.cfg.Package+".") {
			continue
		}

		stub, ok := c.stubFor(imp.Module)
		if !ok {
			diags = append(diags, importDiagnostic(path, imp.Line, fmt.Sprintf("no stub for module %s", imp.Module)))
			continue
		}
		if imp.Wildcard {
			continue
		}

		declared, err := c.declaredIn(ctx, stub)
		if err != nil {
			return nil, err
		}
		for _, name := range imp.Names {
			if contains(declared, name) {
				continue
			}
			if _, ok := c.stubFor(imp.Module + "." + name); ok {
				continue
			}
			diags = append(diags, importDiagnostic(path, imp.Line, fmt.Sprintf("%s does not declare %s", imp.Module, name)))
		}
	}
	return diags, nil
}

// stubFor finds the stub file of a module, trying the package form first.
func (c *Checker) stubFor(module string) (string, bool) {
	w := &stubfile.Writer{OutDir: c.cfg.Dir, Root: c.cfg.Package}
	for _, isPackage := range []bool{true, false} {
		path := w.Path(module, isPackage)
		if ok, err := stubfile.Exists(path); err == nil && ok {
			return path, true
		}
	}
	return "", false
}

func (c *Checker) declaredIn(ctx context.Context, stub string) ([]string, error) {
	if names, ok := c.declared[stub]; ok {
		return names, nil
	}
	content, err := os.ReadFile(stub)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", stub, err)
	}
	names, err := Declared(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", stub, err)
	}
	c.declared[stub] = names
	return names, nil
}

func importDiagnostic(file string, line int, msg string) Diagnostic {
	return Diagnostic{File: file, Line: line, Severity: "error", Message: msg, Source: SourceImports}
}

func contains(sorted []string, name string) bool {
	i := sort.SearchStrings(sorted, name)
	return i < len(sorted) && sorted[i] == name
}

// stubFiles lists the .pyi files under dir in lexical order.
func stubFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == ".pyi" {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}
	return files, nil
}
