/*
Copyright 2026 The Up for Grabs Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package liveness answers whether a referenced GitHub repository and its
// "help wanted" label still exist and are active. Results are typed at the
// boundary: the wire response is decoded into a Result whose reason tag the
// validation engine maps onto review outcomes.
package liveness

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v84/github"
)

// Reason classifies a liveness check.
type Reason string

const (
	ReasonOK                Reason = "ok"
	ReasonArchived          Reason = "archived"
	ReasonMissing           Reason = "missing"
	ReasonRedirect          Reason = "redirect"
	ReasonRepositoryMissing Reason = "repository-missing"
	ReasonError             Reason = "error"
)

// Redirect records a repository rename observed during a check.
type Redirect struct {
	From string
	To   string
}

// Result is the decoded outcome of one liveness query.
//
// When RateLimited is set the reason is not authoritative: the check was
// inconclusive and must never be treated as a failure.
type Result struct {
	RateLimited bool
	Reason      Reason
	Redirect    *Redirect
	LabelURL    string
	Detail      string
}

// Checker runs liveness queries against the GitHub API.
type Checker struct {
	client *github.Client
}

// NewChecker returns a Checker backed by the given client.
func NewChecker(client *github.Client) *Checker {
	return &Checker{client: client}
}

// Repository checks whether owner/name exists, is active, and still lives at
// the referenced location.
func (c *Checker) Repository(ctx context.Context, owner, name string) Result {
	repo, _, err := c.client.Repositories.Get(ctx, owner, name)
	if err != nil {
		return classifyError(err, ReasonMissing)
	}

	requested := owner + "/" + name
	if got := repo.GetFullName(); !strings.EqualFold(got, requested) {
		return Result{
			Reason:   ReasonRedirect,
			Redirect: &Redirect{From: requested, To: got},
		}
	}

	if repo.GetArchived() {
		return Result{Reason: ReasonArchived}
	}

	return Result{Reason: ReasonOK}
}

// Label checks whether the named label exists on owner/name and reports the
// canonical URL of its label listing. A missing repository is distinguished
// from a missing label by re-probing the repository on 404.
func (c *Checker) Label(ctx context.Context, owner, name, label string) Result {
	_, _, err := c.client.Issues.GetLabel(ctx, owner, name, label)
	if err != nil {
		res := classifyError(err, ReasonMissing)
		if res.RateLimited || res.Reason != ReasonMissing {
			return res
		}

		// The labels endpoint 404s for both an unknown label and an unknown
		// repository; only the repository probe tells them apart.
		if _, _, rerr := c.client.Repositories.Get(ctx, owner, name); rerr != nil {
			repoRes := classifyError(rerr, ReasonRepositoryMissing)
			if repoRes.RateLimited || repoRes.Reason == ReasonRepositoryMissing {
				return repoRes
			}
		}
		return Result{Reason: ReasonMissing}
	}

	return Result{
		Reason:   ReasonOK,
		LabelURL: canonicalLabelURL(owner, name, label),
	}
}

// canonicalLabelURL is the label-listing URL GitHub itself links to.
func canonicalLabelURL(owner, name, label string) string {
	return fmt.Sprintf("https://github.com/%s/%s/labels/%s", owner, name, url.PathEscape(label))
}

// classifyError decodes a go-github error into a Result. notFound names the
// reason to use for a 404, which differs between the two queries.
func classifyError(err error, notFound Reason) Result {
	var rle *github.RateLimitError
	if errors.As(err, &rle) {
		return Result{RateLimited: true, Detail: err.Error()}
	}
	var arle *github.AbuseRateLimitError
	if errors.As(err, &arle) {
		return Result{RateLimited: true, Detail: err.Error()}
	}

	var ger *github.ErrorResponse
	if errors.As(err, &ger) && ger.Response != nil && ger.Response.StatusCode == http.StatusNotFound {
		return Result{Reason: notFound}
	}

	return Result{Reason: ReasonError, Detail: err.Error()}
}
