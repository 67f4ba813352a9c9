/*
Copyright 2026 The Up for Grabs Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package descriptor loads the YAML project descriptor files that make up
// the curated index. One descriptor describes a single open-source project's
// "help wanted" metadata.
package descriptor

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Project is one parsed descriptor file. Fields holds the raw associative
// record; typed access goes through the accessor methods so that validation
// can report precise violations instead of panicking on shape mismatches.
type Project struct {
	// RelativePath is the path of the descriptor within the repository,
	// unique per run.
	RelativePath string

	// FullPath is the absolute path within the snapshot working tree.
	FullPath string

	// Fields is the parsed record. Empty when ParseErr is set.
	Fields map[string]any

	// ParseErr records a read or parse failure. It is surfaced through the
	// schema check rather than aborting the run.
	ParseErr error
}

// Load reads and parses the descriptor at relPath under workdir. It returns
// nil when the file no longer exists at the snapshot (e.g. deleted in the
// same pull request); callers must drop nil descriptors and must not count
// them as validation failures. Read and parse failures are recorded on the
// returned Project so the validation engine reports them.
func Load(relPath, workdir string) *Project {
	p := &Project{
		RelativePath: relPath,
		FullPath:     filepath.Join(workdir, relPath),
	}

	data, err := os.ReadFile(p.FullPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		p.ParseErr = fmt.Errorf("reading descriptor: %w", err)
		return p
	}

	if err := yaml.Unmarshal(data, &p.Fields); err != nil {
		p.ParseErr = fmt.Errorf("parsing descriptor: %w", err)
	}
	return p
}

// StringField returns a string-valued top-level field.
func (p *Project) StringField(key string) (string, bool) {
	v, ok := p.Fields[key].(string)
	return v, ok
}

// StringList returns a list-of-strings top-level field. The second return is
// false when the field is absent, not a list, or contains non-strings.
func (p *Project) StringList(key string) ([]string, bool) {
	list, ok := p.Fields[key].([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

func (p *Project) upforgrabs() map[string]any {
	m, _ := p.Fields["upforgrabs"].(map[string]any)
	return m
}

// UpForGrabsName returns the claimed "help wanted" label text.
func (p *Project) UpForGrabsName() (string, bool) {
	v, ok := p.upforgrabs()["name"].(string)
	return v, ok
}

// UpForGrabsLink returns the recorded URL into the project's label listing.
func (p *Project) UpForGrabsLink() (string, bool) {
	v, ok := p.upforgrabs()["link"].(string)
	return v, ok
}

// GitHubRepo derives the owner/name pair from the upforgrabs link when the
// project is hosted on GitHub. Projects hosted elsewhere return ok=false and
// skip the liveness checks entirely.
func (p *Project) GitHubRepo() (owner, name string, ok bool) {
	link, ok := p.UpForGrabsLink()
	if !ok {
		return "", "", false
	}

	u, err := url.Parse(link)
	if err != nil {
		return "", "", false
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	if host != "github.com" {
		return "", "", false
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}
