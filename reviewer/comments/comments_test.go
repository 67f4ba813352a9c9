/*
Copyright 2026 The Up for Grabs Authors
SPDX-License-Identifier: Apache-2.0
*/

package comments

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-github/v84/github"
	"github.com/shurcooL/githubv4"

	"github.com/up-for-grabs/project-review/reviewer/report"
)

const botLogin = "github-actions[bot]"

func restClient(t *testing.T, handler http.Handler) *github.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := github.NewClient(nil)
	base, err := url.Parse(srv.URL + "/")
	if err != nil {
		t.Fatalf("parsing test server URL: %v", err)
	}
	client.BaseURL = base
	return client
}

func comment(id int64, login, body string) *github.IssueComment {
	return &github.IssueComment{
		ID:   github.Ptr(id),
		Body: github.Ptr(body),
		User: &github.User{Login: github.Ptr(login)},
	}
}

func TestOwnsComment(t *testing.T) {
	r := &Reconciler{botLogin: botLogin}

	tests := []struct {
		name string
		c    *github.IssueComment
		want bool
	}{{
		name: "bot author with marker",
		c:    comment(1, botLogin, report.Marker+"\nprior report"),
		want: true,
	}, {
		name: "bot author without marker",
		c:    comment(2, botLogin, "unrelated bot chatter"),
		want: false,
	}, {
		name: "human comment quoting the marker author mismatch",
		c:    comment(3, "alice", report.Marker+"\nlooks legit"),
		want: false,
	}, {
		name: "human comment",
		c:    comment(4, "alice", "nice project!"),
		want: false,
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.ownsComment(tt.c); got != tt.want {
				t.Errorf("ownsComment = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCleanDeletesOnlyOwnComments(t *testing.T) {
	var deleted []string

	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/up-for-grabs/up-for-grabs.net/issues/42/comments", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		comments := []*github.IssueComment{
			comment(11, botLogin, report.Marker+"\nstale report"),
			comment(12, "alice", "human comment"),
			comment(13, "alice", report.Marker+"\nquoted marker"),
			comment(14, botLogin, "bot comment without marker"),
			comment(15, botLogin, report.Marker+"\neven staler report"),
		}
		if err := json.NewEncoder(w).Encode(comments); err != nil {
			t.Errorf("encoding comments: %v", err)
		}
	})
	mux.HandleFunc("DELETE /repos/up-for-grabs/up-for-grabs.net/issues/comments/{id}", func(w http.ResponseWriter, r *http.Request) {
		deleted = append(deleted, r.PathValue("id"))
		w.WriteHeader(http.StatusNoContent)
	})

	r := NewReconciler(restClient(t, mux), nil, botLogin)
	if err := r.Clean(context.Background(), "up-for-grabs", "up-for-grabs.net", 42); err != nil {
		t.Fatalf("Clean: %v", err)
	}

	if diff := cmp.Diff([]string{"11", "15"}, deleted); diff != "" {
		t.Errorf("deleted comments mismatch (-want +got):\n%s", diff)
	}
}

func TestCleanSurvivesDeletionFailure(t *testing.T) {
	var deleted []string

	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/o/r/issues/1/comments", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		comments := []*github.IssueComment{
			comment(21, botLogin, report.Marker),
			comment(22, botLogin, report.Marker),
		}
		if err := json.NewEncoder(w).Encode(comments); err != nil {
			t.Errorf("encoding comments: %v", err)
		}
	})
	mux.HandleFunc("DELETE /repos/o/r/issues/comments/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") == "21" {
			http.Error(w, `{"message": "nope"}`, http.StatusForbidden)
			return
		}
		deleted = append(deleted, r.PathValue("id"))
		w.WriteHeader(http.StatusNoContent)
	})

	r := NewReconciler(restClient(t, mux), nil, botLogin)
	if err := r.Clean(context.Background(), "o", "r", 1); err != nil {
		t.Fatalf("Clean should tolerate individual deletion failures: %v", err)
	}

	if diff := cmp.Diff([]string{"22"}, deleted); diff != "" {
		t.Errorf("deleted comments mismatch (-want +got):\n%s", diff)
	}
}

func TestCleanListFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message": "boom"}`, http.StatusInternalServerError)
	})

	r := NewReconciler(restClient(t, mux), nil, botLogin)
	if err := r.Clean(context.Background(), "o", "r", 1); err == nil {
		t.Error("expected an error when listing comments fails")
	}
}

func TestPost(t *testing.T) {
	var gotQuery string
	var gotVariables map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Query     string         `json:"query"`
			Variables map[string]any `json:"variables"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding graphql request: %v", err)
		}
		gotQuery = req.Query
		gotVariables = req.Variables

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data": {"addComment": {"commentEdge": {"node": {"url": "https://github.com/up-for-grabs/up-for-grabs.net/pull/42#issuecomment-1"}}}}}`)
	}))
	t.Cleanup(srv.Close)

	r := NewReconciler(nil, githubv4.NewEnterpriseClient(srv.URL, srv.Client()), botLogin)
	if err := r.Post(context.Background(), "PR_abc123", report.Marker+"\nfresh report"); err != nil {
		t.Fatalf("Post: %v", err)
	}

	if !strings.Contains(gotQuery, "addComment") {
		t.Errorf("mutation does not call addComment: %s", gotQuery)
	}
	input, ok := gotVariables["input"].(map[string]any)
	if !ok {
		t.Fatalf("missing input variable: %v", gotVariables)
	}
	if input["subjectId"] != "PR_abc123" {
		t.Errorf("subjectId = %v, want PR_abc123", input["subjectId"])
	}
	body, _ := input["body"].(string)
	if !strings.Contains(body, report.Marker) {
		t.Errorf("posted body missing the marker: %q", body)
	}
}

func TestPostAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"errors": [{"message": "Could not resolve to a node with the global id"}]}`)
	}))
	t.Cleanup(srv.Close)

	r := NewReconciler(nil, githubv4.NewEnterpriseClient(srv.URL, srv.Client()), botLogin)
	err := r.Post(context.Background(), "bogus", "body")
	if err == nil {
		t.Fatal("expected an error from the API")
	}
	if !strings.Contains(err.Error(), "Could not resolve") {
		t.Errorf("error does not carry the API detail: %v", err)
	}
}
