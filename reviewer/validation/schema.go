/*
Copyright 2026 The Up for Grabs Authors
SPDX-License-Identifier: Apache-2.0
*/

package validation

import (
	"fmt"
	"net/url"

	"github.com/up-for-grabs/project-review/reviewer/descriptor"
)

// schemaViolations checks the descriptor's required fields and shapes,
// collecting every violation rather than stopping at the first so the
// contributor sees the whole picture in one review.
func schemaViolations(p *descriptor.Project) []string {
	if p.ParseErr != nil {
		return []string{fmt.Sprintf("the file could not be read as a structured record: %v", p.ParseErr)}
	}

	var violations []string
	requireString := func(key string) (string, bool) {
		v, ok := p.StringField(key)
		if !ok || v == "" {
			violations = append(violations, fmt.Sprintf("required field `%s` is missing or not a non-empty string", key))
			return "", false
		}
		return v, true
	}

	requireString("name")
	requireString("desc")

	if site, ok := requireString("site"); ok && !isURL(site) {
		violations = append(violations, fmt.Sprintf("field `site` is not a valid URL: %q", site))
	}

	if tags, ok := p.StringList("tags"); !ok {
		violations = append(violations, "required field `tags` is missing or not a list of strings")
	} else if len(tags) == 0 {
		violations = append(violations, "field `tags` must list at least one tag")
	}

	if _, ok := p.Fields["upforgrabs"]; !ok {
		violations = append(violations, "required field `upforgrabs` is missing")
		return violations
	}

	if name, ok := p.UpForGrabsName(); !ok || name == "" {
		violations = append(violations, "required field `upforgrabs.name` is missing or not a non-empty string")
	}
	switch link, ok := p.UpForGrabsLink(); {
	case !ok || link == "":
		violations = append(violations, "required field `upforgrabs.link` is missing or not a non-empty string")
	case !isURL(link):
		violations = append(violations, fmt.Sprintf("field `upforgrabs.link` is not a valid URL: %q", link))
	}

	return violations
}

func isURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
