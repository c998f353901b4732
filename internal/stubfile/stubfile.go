// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package stubfile maps dotted module names onto the stub tree and writes
// rendered stubs, honoring the overwrite setting.
package stubfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	stubExt  = ".pyi"
	initStub = "__init__" + stubExt
)

// Action is what Write did with a stub file.
type Action int

const (
	Generated   Action = iota // File did not exist and was written
	Overwritten               // File existed and was replaced
	Skipped                   // File existed and was left untouched
)

func (a Action) String() string {
	switch a {
	case Generated:
		return "Generated"
	case Overwritten:
		return "Overwritten"
	case Skipped:
		return "Skipped"
	default:
		return "Unknown"
	}
}

// Written reports whether the action put new content on disk.
func (a Action) Written() bool {
	return a == Generated || a == Overwritten
}

// Writer places stubs for the modules of one root package under OutDir.
type Writer struct {
	OutDir    string // Root of the stub tree
	Root      string // Root package name, e.g. "raysect"
	Overwrite bool   // Replace existing stub files
}

// Path returns the stub path for module. The root package maps to
// OutDir/__init__.pyi, a sub-package to OutDir/<path>/__init__.pyi, and a
// plain module to OutDir/<path>.pyi.
func (w *Writer) Path(module string, isPackage bool) string {
	if module == w.Root {
		return filepath.Join(w.OutDir, initStub)
	}

	rel := strings.TrimPrefix(module, w.Root+".")
	rel = filepath.Join(strings.Split(rel, ".")...)
	if isPackage {
		return filepath.Join(w.OutDir, rel, initStub)
	}
	return filepath.Join(w.OutDir, rel+stubExt)
}

// Exists reports whether a stub file is already present at path.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Write stores content at path. An existing file is left untouched unless
// Overwrite is set. Parent directories are created as needed.
func (w *Writer) Write(path, content string) (Action, error) {
	exists, err := Exists(path)
	if err != nil {
		return Skipped, fmt.Errorf("checking %s: %w", path, err)
	}
	if exists && !w.Overwrite {
		return Skipped, nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Skipped, fmt.Errorf("creating directory %s: %w", dir, err)
	}

	if err := writeFile(path, []byte(content)); err != nil {
		return Skipped, fmt.Errorf("writing %s: %w", path, err)
	}

	if exists {
		return Overwritten, nil
	}
	return Generated, nil
}

// writeFile replaces the stub at path in one rename so a reader never sees
// half a stub. A regenerated stub keeps the mode of the one it replaces.
func writeFile(path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating temp stub: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing temp stub: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing temp stub: %w", err)
	}
	if err = os.Chmod(tmp.Name(), stubMode(path)); err != nil {
		return fmt.Errorf("setting stub mode: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}

// stubMode is the mode of the existing stub at path, or 0644.
func stubMode(path string) fs.FileMode {
	if info, err := os.Stat(path); err == nil {
		return info.Mode().Perm()
	}
	return 0o644
}
