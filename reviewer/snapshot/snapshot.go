/*
Copyright 2026 The Up for Grabs Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package snapshot produces local working-tree snapshots of a pull request's
// head revision and computes path-scoped diffs between two references.
//
// Every operation shells out to git with an explicit argument list and
// returns a structured result; a snapshot owns its temporary working tree
// exclusively and removes it on Close.
package snapshot

import (
	"context"
	"fmt"
	"os"

	"github.com/chainguard-dev/clog"
	"github.com/waigani/diffparser"
)

const workdirPrefix = "project-review-"

// Snapshot is a checked-out working tree owned by a single pipeline run.
type Snapshot struct {
	dir string
}

// Clone clones the repository at url into a fresh temporary directory.
// The returned Snapshot must be released with Close on every exit path.
func Clone(ctx context.Context, url string) (*Snapshot, error) {
	dir, err := os.MkdirTemp("", workdirPrefix)
	if err != nil {
		return nil, fmt.Errorf("creating temp dir: %w", err)
	}

	clog.FromContext(ctx).Infof("Cloning %s into %s", url, dir)
	if _, err := runGit(ctx, "", "clone", "--quiet", url, dir); err != nil {
		os.RemoveAll(dir)
		return nil, fmt.Errorf("cloning repository: %w", err)
	}

	return &Snapshot{dir: dir}, nil
}

// Dir returns the absolute path of the working tree.
func (s *Snapshot) Dir() string {
	return s.dir
}

// AddRemote registers url under name and fetches it, making its commits
// available for diffing. Used when the pull request's base repository is
// distinct from the head clone (fork PRs).
func (s *Snapshot) AddRemote(ctx context.Context, name, url string) error {
	if _, err := runGit(ctx, s.dir, "remote", "add", name, url); err != nil {
		return fmt.Errorf("adding remote %s: %w", name, err)
	}
	if _, err := runGit(ctx, s.dir, "fetch", "--quiet", name); err != nil {
		return fmt.Errorf("fetching remote %s: %w", name, err)
	}
	return nil
}

// Checkout moves the working tree to ref. A missing ref (force-pushed away
// since the event fired) surfaces as an error for the caller to log.
func (s *Snapshot) Checkout(ctx context.Context, ref string) error {
	if _, err := runGit(ctx, s.dir, "checkout", "--quiet", ref); err != nil {
		return fmt.Errorf("checking out %s: %w", ref, err)
	}
	return nil
}

// ChangedPaths diffs rangeExpr (e.g. "base...head") scoped to pathPrefix and
// returns the changed file paths in diff order. Rename detection is disabled
// so a moved file surfaces as a delete plus an add; deleted files are
// reported under their original name and the descriptor loader drops them
// later.
func (s *Snapshot) ChangedPaths(ctx context.Context, rangeExpr, pathPrefix string) ([]string, error) {
	res, err := runGit(ctx, s.dir, "diff", "--no-renames", rangeExpr, "--", pathPrefix)
	if err != nil {
		return nil, fmt.Errorf("diffing %s: %w", rangeExpr, err)
	}

	diff, err := diffparser.Parse(res.stdout)
	if err != nil {
		return nil, fmt.Errorf("parsing diff: %w", err)
	}

	paths := make([]string, 0, len(diff.Files))
	for _, f := range diff.Files {
		name := f.NewName
		if f.Mode == diffparser.DELETED {
			name = f.OrigName
		}
		if name == "" {
			continue
		}
		paths = append(paths, name)
	}
	return paths, nil
}

// Close removes the working tree. Safe to call more than once.
func (s *Snapshot) Close() error {
	if s.dir == "" {
		return nil
	}
	err := os.RemoveAll(s.dir)
	s.dir = ""
	return err
}
