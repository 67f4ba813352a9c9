/*
Copyright 2026 The Up for Grabs Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package validation classifies each changed project descriptor into exactly
// one review outcome. Checks run in a strict order, short-circuiting at the
// first failing check: schema, tags, then (for GitHub-hosted projects)
// repository and label liveness.
package validation

import (
	"context"
	"fmt"
	"strings"

	"github.com/chainguard-dev/clog"
	"github.com/up-for-grabs/project-review/reviewer/descriptor"
	"github.com/up-for-grabs/project-review/reviewer/liveness"
)

// Checker is the liveness collaborator the engine queries for GitHub-hosted
// projects. *liveness.Checker satisfies it; tests substitute fakes.
type Checker interface {
	Repository(ctx context.Context, owner, name string) liveness.Result
	Label(ctx context.Context, owner, name, label string) liveness.Result
}

// Engine runs the per-descriptor checks.
type Engine struct {
	checker Checker
}

// NewEngine returns an Engine using the given liveness checker.
func NewEngine(checker Checker) *Engine {
	return &Engine{checker: checker}
}

// Validate classifies one descriptor. Failures scoped to the descriptor are
// converted into its outcome, never propagated; a rate-limited liveness
// check is inconclusive and yields a valid outcome by contract.
func (e *Engine) Validate(ctx context.Context, p *descriptor.Project) Outcome {
	log := clog.FromContext(ctx)

	if violations := schemaViolations(p); len(violations) > 0 {
		return Outcome{Project: p, Kind: KindValidationError, Violations: violations}
	}

	if violations := tagViolations(p); len(violations) > 0 {
		return Outcome{Project: p, Kind: KindTagsError, Violations: violations}
	}

	owner, name, ok := p.GitHubRepo()
	if !ok {
		// Projects hosted elsewhere get no liveness checking.
		return Outcome{Project: p, Kind: KindValid}
	}

	res := e.checker.Repository(ctx, owner, name)
	if res.RateLimited {
		log.Infof("Repository check for %s/%s was rate limited, treating as inconclusive", owner, name)
		return Outcome{Project: p, Kind: KindValid}
	}
	switch res.Reason {
	case liveness.ReasonOK:
		// fall through to the label check
	case liveness.ReasonArchived:
		return Outcome{Project: p, Kind: KindRepositoryError,
			Message: fmt.Sprintf("The repository `%s/%s` looks inactive because it has been archived.", owner, name)}
	case liveness.ReasonMissing:
		return Outcome{Project: p, Kind: KindRepositoryError,
			Message: fmt.Sprintf("The repository `%s/%s` cannot be located. Please check the link in the project file.", owner, name)}
	case liveness.ReasonRedirect:
		if res.Redirect == nil {
			return Outcome{Project: p, Kind: KindRepositoryError,
				Message: fmt.Sprintf("The repository `%s/%s` has moved. Please update the project file to point at the new location.", owner, name)}
		}
		return Outcome{Project: p, Kind: KindRepositoryError,
			Message: fmt.Sprintf("The repository `%s` has moved to `%s`. Please update the project file to point at the new location.",
				res.Redirect.From, res.Redirect.To)}
	case liveness.ReasonError:
		return Outcome{Project: p, Kind: KindRepositoryError,
			Message: fmt.Sprintf("Checking the repository `%s/%s` failed: %s", owner, name, res.Detail)}
	default:
		return unrecognized(p, "repository", res)
	}

	label, _ := p.UpForGrabsName()
	res = e.checker.Label(ctx, owner, name, label)
	if res.RateLimited {
		log.Infof("Label check for %s/%s was rate limited, treating as inconclusive", owner, name)
		return Outcome{Project: p, Kind: KindValid}
	}
	switch res.Reason {
	case liveness.ReasonOK:
		link, _ := p.UpForGrabsLink()
		// Heuristic: only flag stale links that look like a label listing.
		if link != res.LabelURL && strings.Contains(link, "/labels/") {
			return Outcome{Project: p, Kind: KindLabelError,
				Message: fmt.Sprintf("The `upforgrabs.link` value does not match the current label listing. Please update it to %s.", res.LabelURL)}
		}
		return Outcome{Project: p, Kind: KindValid}
	case liveness.ReasonRepositoryMissing:
		return Outcome{Project: p, Kind: KindLabelError,
			Message: fmt.Sprintf("The repository referenced by `upforgrabs.link` (`%s/%s`) could not be found.", owner, name)}
	case liveness.ReasonMissing:
		return Outcome{Project: p, Kind: KindLabelError,
			Message: fmt.Sprintf("The label %q could not be found on `%s/%s`. This might be a typo in the project file, or a value from the template that was never updated.",
				label, owner, name)}
	case liveness.ReasonError:
		return Outcome{Project: p, Kind: KindLabelError,
			Message: fmt.Sprintf("Checking the label %q on `%s/%s` failed: %s", label, owner, name, res.Detail)}
	default:
		return unrecognized(p, "label", res)
	}
}

// unrecognized handles result kinds the engine does not know; the report
// flags these for maintainer attention instead of dropping the descriptor.
func unrecognized(p *descriptor.Project, check string, res liveness.Result) Outcome {
	return Outcome{Project: p, Kind: KindUnrecognized,
		Message: fmt.Sprintf("The %s check returned an unrecognized result (%q). A maintainer needs to look into this.", check, res.Reason)}
}
