// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package git commits regenerated stub files to the repository that holds
// the stub tree.
package git

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

const (
	authorName       = "stubgen"
	authorEmail      = "noreply@stubgen"
	generatedTrailer = "Generated-By: stubgen"
)

// ErrNoGit is returned when the directory is not inside a git repository.
var ErrNoGit = errors.New("not a git repository")

// ErrOutsideRepo is returned when a file to commit lies outside the
// repository's worktree.
var ErrOutsideRepo = errors.New("file outside repository")

// Repo wraps a go-git repository for the operations we need.
type Repo struct {
	repo *gogit.Repository
	root string // Worktree root, symlinks resolved
}

// Open opens the repository enclosing dir, searching parent directories for
// the .git directory. Returns ErrNoGit if there is none.
func Open(dir string) (*Repo, error) {
	r, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoGit, err)
	}

	wt, err := r.Worktree()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoGit, err)
	}

	root, err := resolve(wt.Filesystem.Root())
	if err != nil {
		return nil, fmt.Errorf("resolving worktree root: %w", err)
	}
	return &Repo{repo: r, root: root}, nil
}

// CommitStubs stages files and commits them with a message naming the
// library and version. It reports false without committing when files is
// empty or the staged content matches HEAD.
func (r *Repo) CommitStubs(files []string, library, version string) (bool, error) {
	if len(files) == 0 {
		return false, nil
	}

	wt, err := r.repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("getting worktree: %w", err)
	}

	rels := make([]string, 0, len(files))
	for _, f := range files {
		rel, err := r.relative(f)
		if err != nil {
			return false, err
		}
		if _, err := wt.Add(rel); err != nil {
			return false, fmt.Errorf("staging %s: %w", rel, err)
		}
		rels = append(rels, rel)
	}

	_, err = wt.Commit(CommitMessage(library, version, rels), &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  authorName,
			Email: authorEmail,
			When:  time.Now(),
		},
	})
	if errors.Is(err, gogit.ErrEmptyCommit) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("committing: %w", err)
	}
	return true, nil
}

// relative converts path to a slash-separated path relative to the
// worktree root.
func (r *Repo) relative(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	if resolved, err := resolve(abs); err == nil {
		abs = resolved
	}

	rel, err := filepath.Rel(r.root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRepo, path)
	}
	return filepath.ToSlash(rel), nil
}

func resolve(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
