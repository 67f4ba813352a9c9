/*
Copyright 2026 The Up for Grabs Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package reviewer drives the project review pipeline: snapshot the pull
// request's head revision, diff out the changed project descriptor files,
// validate each one, and reconcile the single consolidated review comment
// on the pull request.
//
// Every terminal state is a valid one: posted, skipped (nothing relevant
// changed), or aborted (the snapshot could not be built). A run that cannot
// produce a complete report posts nothing and only leaves a log trace.
package reviewer

import (
	"context"
	"strings"

	"github.com/chainguard-dev/clog"

	"github.com/up-for-grabs/project-review/reviewer/descriptor"
	"github.com/up-for-grabs/project-review/reviewer/report"
	"github.com/up-for-grabs/project-review/reviewer/snapshot"
	"github.com/up-for-grabs/project-review/reviewer/validation"
)

// baseRemote is the remote name registered for the base repository when the
// pull request comes from a fork.
const baseRemote = "base"

// Validator classifies one descriptor. *validation.Engine satisfies it.
type Validator interface {
	Validate(ctx context.Context, p *descriptor.Project) validation.Outcome
}

// CommentService reconciles the review comment thread.
// *comments.Reconciler satisfies it.
type CommentService interface {
	Clean(ctx context.Context, owner, repo string, number int) error
	Post(ctx context.Context, subjectID, body string) error
}

// Config fixes the upstream identity and descriptor location.
type Config struct {
	// Upstream is the full name of the one repository this pipeline reviews.
	Upstream string

	// ProjectsDir is the reserved subdirectory holding project descriptors.
	ProjectsDir string
}

// Reviewer is the pipeline orchestrator. One Review call handles one event;
// concurrent events run on independent Reviewer-owned snapshots with no
// shared mutable state.
type Reviewer struct {
	cfg       Config
	validator Validator
	comments  CommentService
}

// New constructs a Reviewer.
func New(cfg Config, validator Validator, comments CommentService) *Reviewer {
	return &Reviewer{cfg: cfg, validator: validator, comments: comments}
}

// Review runs the pipeline for one pull request event. Snapshot failures are
// expected, frequent conditions (broken clones, force-pushed-away commits):
// they abort the run with a log trace and a nil return so the job runtime
// does not retry a report that can never be built.
func (r *Reviewer) Review(ctx context.Context, ev *PullRequestEvent) error {
	log := clog.FromContext(ctx)

	if !ev.Eligible(r.cfg.Upstream) {
		log.Infof("Ignoring %q event for %s#%d", ev.Action, ev.Repository.FullName, ev.PullRequest.Number)
		return nil
	}

	snap, err := snapshot.Clone(ctx, ev.PullRequest.Head.Repo.CloneURL)
	if err != nil {
		log.Warnf("Unable to clone head repository, skipping review: %v", err)
		return nil
	}
	defer snap.Close()

	headURL := ev.PullRequest.Head.Repo.CloneURL
	if baseURL := ev.PullRequest.Base.Repo.CloneURL; baseURL != "" && baseURL != headURL {
		if err := snap.AddRemote(ctx, baseRemote, baseURL); err != nil {
			log.Warnf("Unable to fetch base repository, skipping review: %v", err)
			return nil
		}
	}

	if err := snap.Checkout(ctx, ev.PullRequest.Head.SHA); err != nil {
		log.Warnf("Unable to check out head commit, skipping review: %v", err)
		return nil
	}

	rangeExpr := ev.PullRequest.Base.SHA + "..." + ev.PullRequest.Head.SHA
	paths, err := snap.ChangedPaths(ctx, rangeExpr, r.cfg.ProjectsDir)
	if err != nil {
		log.Warnf("Unable to diff %s, skipping review: %v", rangeExpr, err)
		return nil
	}
	if len(paths) == 0 {
		log.Infof("No project files changed in %s#%d, nothing to review",
			ev.Repository.FullName, ev.PullRequest.Number)
		return nil
	}

	owner, repo, ok := splitFullName(ev.Repository.FullName)
	if !ok {
		log.Warnf("Malformed repository full name %q, skipping review", ev.Repository.FullName)
		return nil
	}

	// Prior comments come down even when nothing is left to report: a stale
	// report about since-deleted files must not outlive them.
	if err := r.comments.Clean(ctx, owner, repo, ev.PullRequest.Number); err != nil {
		// Stale comments are tolerable; the next run converges on cleanup.
		log.Warnf("Unable to clean up prior review comments: %v", err)
	}

	projects := make([]*descriptor.Project, 0, len(paths))
	for _, path := range paths {
		if p := descriptor.Load(path, snap.Dir()); p != nil {
			projects = append(projects, p)
		}
	}
	if len(projects) == 0 {
		log.Infof("All changed project files were deleted in %s#%d, nothing to review",
			ev.Repository.FullName, ev.PullRequest.Number)
		return nil
	}

	outcomes := make([]validation.Outcome, 0, len(projects))
	for _, p := range projects {
		outcomes = append(outcomes, r.validator.Validate(ctx, p))
	}

	body := report.Render(outcomes)
	if err := r.comments.Post(ctx, ev.PullRequest.NodeID, body); err != nil {
		log.Errorf("Unable to post review comment: %v", err)
	}
	return nil
}

func splitFullName(fullName string) (owner, repo string, ok bool) {
	owner, repo, found := strings.Cut(fullName, "/")
	if !found || owner == "" || repo == "" {
		return "", "", false
	}
	return owner, repo, true
}
