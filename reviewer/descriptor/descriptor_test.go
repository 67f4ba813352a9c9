/*
Copyright 2026 The Up for Grabs Authors
SPDX-License-Identifier: Apache-2.0
*/

package descriptor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `name: Sample
desc: A sample project looking for contributors
site: https://example.com
tags:
- go
- testing
upforgrabs:
  name: help wanted
  link: https://github.com/example/sample/labels/help%20wanted
`

func writeDescriptor(t *testing.T, workdir, relPath, content string) {
	t.Helper()
	full := filepath.Join(workdir, relPath)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

func TestLoad(t *testing.T) {
	workdir := t.TempDir()
	rel := filepath.Join("_data", "projects", "sample.yml")
	writeDescriptor(t, workdir, rel, sampleYAML)

	p := Load(rel, workdir)
	require.NotNil(t, p, "Load returned nil for an existing descriptor")
	require.NoError(t, p.ParseErr)

	if name, ok := p.StringField("name"); !ok || name != "Sample" {
		t.Errorf("name = %q, %v", name, ok)
	}
	tags, ok := p.StringList("tags")
	if !ok {
		t.Fatal("tags not a string list")
	}
	if diff := cmp.Diff([]string{"go", "testing"}, tags); diff != "" {
		t.Errorf("tags mismatch (-want +got):\n%s", diff)
	}

	if label, ok := p.UpForGrabsName(); !ok || label != "help wanted" {
		t.Errorf("upforgrabs.name = %q, %v", label, ok)
	}
	owner, repo, ok := p.GitHubRepo()
	if !ok || owner != "example" || repo != "sample" {
		t.Errorf("GitHubRepo = %q/%q, %v", owner, repo, ok)
	}
}

func TestLoadMissingFileReturnsNil(t *testing.T) {
	if p := Load("_data/projects/deleted.yml", t.TempDir()); p != nil {
		t.Errorf("expected nil for a missing descriptor, got %+v", p)
	}
}

func TestLoadParseFailureIsRecorded(t *testing.T) {
	workdir := t.TempDir()
	rel := filepath.Join("_data", "projects", "broken.yml")
	writeDescriptor(t, workdir, rel, "name: [unclosed\n  desc: {{nope")

	p := Load(rel, workdir)
	if p == nil {
		t.Fatal("parse failures must surface on the descriptor, not drop it")
	}
	if p.ParseErr == nil {
		t.Error("expected ParseErr to be set")
	}
}

func TestGitHubRepo(t *testing.T) {
	tests := []struct {
		name      string
		link      string
		wantOwner string
		wantRepo  string
		wantOK    bool
	}{{
		name:      "label listing link",
		link:      "https://github.com/owner/repo/labels/help%20wanted",
		wantOwner: "owner",
		wantRepo:  "repo",
		wantOK:    true,
	}, {
		name:      "bare repository link",
		link:      "https://github.com/owner/repo",
		wantOwner: "owner",
		wantRepo:  "repo",
		wantOK:    true,
	}, {
		name:      "www host",
		link:      "https://www.github.com/owner/repo/issues",
		wantOwner: "owner",
		wantRepo:  "repo",
		wantOK:    true,
	}, {
		name:   "not github",
		link:   "https://gitlab.com/owner/repo/-/labels",
		wantOK: false,
	}, {
		name:   "owner only",
		link:   "https://github.com/owner",
		wantOK: false,
	}, {
		name:   "empty link",
		link:   "",
		wantOK: false,
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Project{Fields: map[string]any{
				"upforgrabs": map[string]any{"name": "help wanted", "link": tt.link},
			}}
			owner, repo, ok := p.GitHubRepo()
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if owner != tt.wantOwner || repo != tt.wantRepo {
				t.Errorf("got %q/%q, want %q/%q", owner, repo, tt.wantOwner, tt.wantRepo)
			}
		})
	}
}
