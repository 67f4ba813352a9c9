/*
Copyright 2026 The Up for Grabs Authors
SPDX-License-Identifier: Apache-2.0
*/

// Command reviewer runs one project review for a pull request event.
// The queued-job runtime that delivers the event payload owns retries and
// execution-time limits; this process runs the pipeline exactly once.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/chainguard-dev/clog"
	"github.com/google/go-github/v84/github"
	"github.com/sethvargo/go-envconfig"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/up-for-grabs/project-review/reviewer"
	"github.com/up-for-grabs/project-review/reviewer/comments"
	"github.com/up-for-grabs/project-review/reviewer/liveness"
	"github.com/up-for-grabs/project-review/reviewer/validation"
)

type config struct {
	GitHubToken string `env:"GITHUB_TOKEN,required"`
	EventPath   string `env:"EVENT_PATH,required"`

	Upstream    string `env:"UPSTREAM_REPO,default=up-for-grabs/up-for-grabs.net"`
	ProjectsDir string `env:"PROJECTS_DIR,default=_data/projects"`
	BotLogin    string `env:"BOT_LOGIN,default=github-actions[bot]"`
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var cfg config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		clog.FatalContextf(ctx, "processing config: %v", err)
	}

	payload, err := os.ReadFile(cfg.EventPath)
	if err != nil {
		clog.FatalContextf(ctx, "reading event payload: %v", err)
	}
	ev, err := reviewer.ParseEvent(payload)
	if err != nil {
		clog.FatalContextf(ctx, "parsing event payload: %v", err)
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.GitHubToken})
	httpClient := oauth2.NewClient(ctx, ts)
	rest := github.NewClient(httpClient)
	gql := githubv4.NewClient(httpClient)

	rev := reviewer.New(
		reviewer.Config{
			Upstream:    cfg.Upstream,
			ProjectsDir: cfg.ProjectsDir,
		},
		validation.NewEngine(liveness.NewChecker(rest)),
		comments.NewReconciler(rest, gql, cfg.BotLogin),
	)

	if err := rev.Review(ctx, ev); err != nil {
		clog.FatalContextf(ctx, "reviewing pull request: %v", err)
	}
	clog.InfoContextf(ctx, "Review run complete for %s#%d", ev.Repository.FullName, ev.PullRequest.Number)
}
