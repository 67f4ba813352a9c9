/*
Copyright 2026 The Up for Grabs Authors
SPDX-License-Identifier: Apache-2.0
*/

package reviewer

import (
	"encoding/json"
	"fmt"
)

// Actions that trigger a review. Everything else is ineligible.
const (
	ActionOpened      = "opened"
	ActionReopened    = "reopened"
	ActionSynchronize = "synchronize"
)

// PullRequestEvent is the webhook-shaped record this pipeline consumes.
// It is decoded once from the event payload and immutable thereafter.
type PullRequestEvent struct {
	Action      string `json:"action"`
	PullRequest struct {
		Number int    `json:"number"`
		NodeID string `json:"node_id"`
		Head   Commit `json:"head"`
		Base   Commit `json:"base"`
	} `json:"pull_request"`
	Repository Repository `json:"repository"`
}

// Commit identifies one side of the pull request.
type Commit struct {
	SHA  string `json:"sha"`
	Ref  string `json:"ref"`
	Repo struct {
		FullName string `json:"full_name"`
		CloneURL string `json:"clone_url"`
	} `json:"repo"`
}

// Repository is the repository the pull request was opened against.
type Repository struct {
	FullName      string `json:"full_name"`
	DefaultBranch string `json:"default_branch"`
}

// ParseEvent decodes a pull request event payload.
func ParseEvent(payload []byte) (*PullRequestEvent, error) {
	var ev PullRequestEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		return nil, fmt.Errorf("decoding event payload: %w", err)
	}
	return &ev, nil
}

// Eligible is the precondition gate: only synchronize/opened/reopened events
// on the fixed upstream repository, targeting its default branch, trigger
// the pipeline at all.
func (ev *PullRequestEvent) Eligible(upstream string) bool {
	switch ev.Action {
	case ActionOpened, ActionReopened, ActionSynchronize:
	default:
		return false
	}
	if ev.Repository.FullName != upstream {
		return false
	}
	return ev.PullRequest.Base.Ref == ev.Repository.DefaultBranch
}
