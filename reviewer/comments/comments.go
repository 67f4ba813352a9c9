/*
Copyright 2026 The Up for Grabs Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package comments reconciles the review comment on a pull request: it
// deletes the comments this system posted previously and posts the freshly
// rendered report, so each run converges on a single up-to-date comment.
package comments

import (
	"context"
	"fmt"
	"strings"

	"github.com/chainguard-dev/clog"
	"github.com/google/go-github/v84/github"
	"github.com/shurcooL/githubv4"

	"github.com/up-for-grabs/project-review/reviewer/report"
)

// listPageSize bounds the cleanup scan to the most recent comments.
const listPageSize = 50

// Reconciler manages the review comment thread for a fixed bot identity.
type Reconciler struct {
	rest     *github.Client
	gql      *githubv4.Client
	botLogin string
}

// NewReconciler returns a Reconciler posting as botLogin. The REST client
// lists and deletes comments; the GraphQL client posts the new report
// against the pull request's subject ID.
func NewReconciler(rest *github.Client, gql *githubv4.Client, botLogin string) *Reconciler {
	return &Reconciler{rest: rest, gql: gql, botLogin: botLogin}
}

// Clean deletes prior review comments on the pull request: only comments
// authored by the bot identity whose body carries the report marker are
// touched. Individual deletion failures are logged, not fatal.
func (r *Reconciler) Clean(ctx context.Context, owner, repo string, number int) error {
	log := clog.FromContext(ctx)

	opts := &github.IssueListCommentsOptions{
		Sort:        github.Ptr("created"),
		Direction:   github.Ptr("desc"),
		ListOptions: github.ListOptions{PerPage: listPageSize},
	}
	existing, _, err := r.rest.Issues.ListComments(ctx, owner, repo, number, opts)
	if err != nil {
		return fmt.Errorf("listing comments on %s/%s#%d: %w", owner, repo, number, err)
	}

	for _, c := range existing {
		if !r.ownsComment(c) {
			continue
		}
		if _, err := r.rest.Issues.DeleteComment(ctx, owner, repo, c.GetID()); err != nil {
			log.Warnf("Unable to delete prior review comment %d: %v", c.GetID(), err)
			continue
		}
		log.Infof("Deleted prior review comment %d", c.GetID())
	}

	return nil
}

// ownsComment is the sole identity test for "is this our prior comment":
// the author must match the bot login and the body must carry the marker.
func (r *Reconciler) ownsComment(c *github.IssueComment) bool {
	return c.GetUser().GetLogin() == r.botLogin &&
		strings.Contains(c.GetBody(), report.Marker)
}

// Post adds body as a new comment on the subject (the pull request's node
// ID). API errors are returned with full detail for the caller to log; a
// failed post ends the run, it never crashes it.
func (r *Reconciler) Post(ctx context.Context, subjectID, body string) error {
	var m struct {
		AddComment struct {
			CommentEdge struct {
				Node struct {
					URL githubv4.URI `graphql:"url"`
				}
			}
		} `graphql:"addComment(input: $input)"`
	}
	input := githubv4.AddCommentInput{
		SubjectID: githubv4.ID(subjectID),
		Body:      githubv4.String(body),
	}

	if err := r.gql.Mutate(ctx, &m, input, nil); err != nil {
		return fmt.Errorf("posting review comment: %w", err)
	}

	clog.FromContext(ctx).Infof("Posted review comment %s", m.AddComment.CommentEdge.Node.URL.String())
	return nil
}
