/*
Copyright 2026 The Up for Grabs Authors
SPDX-License-Identifier: Apache-2.0
*/

package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/up-for-grabs/project-review/reviewer/descriptor"
)

// tagFormat is the accepted tag vocabulary: lowercase words with the few
// punctuation characters real language names need (c#, c++, .net, node.js).
var tagFormat = regexp.MustCompile(`^[a-z0-9+#.][a-z0-9+#.-]*$`)

// deprecatedTags maps retired tag spellings to the curated replacement.
var deprecatedTags = map[string]string{
	"golang":  "go",
	"csharp":  "c#",
	"c-sharp": "c#",
	"dotnet":  ".net",
	"nodejs":  "node.js",
	"js":      "javascript",
}

// tagViolations checks every tag against the accepted vocabulary and
// format, collecting all violations.
func tagViolations(p *descriptor.Project) []string {
	tags, ok := p.StringList("tags")
	if !ok {
		return nil // shape problems are the schema check's to report
	}

	var violations []string
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		if _, dup := seen[tag]; dup {
			violations = append(violations, fmt.Sprintf("tag %q is listed more than once", tag))
			continue
		}
		seen[tag] = struct{}{}

		if replacement, ok := deprecatedTags[tag]; ok {
			violations = append(violations, fmt.Sprintf("tag %q is deprecated, use %q instead", tag, replacement))
			continue
		}

		switch {
		case tag != strings.ToLower(tag):
			violations = append(violations, fmt.Sprintf("tag %q must be lowercase", tag))
		case !tagFormat.MatchString(tag):
			violations = append(violations, fmt.Sprintf("tag %q contains characters outside the accepted format", tag))
		}
	}

	return violations
}
