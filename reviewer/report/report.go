/*
Copyright 2026 The Up for Grabs Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package report renders an ordered list of review outcomes into the single
// Markdown comment posted on the pull request. Rendering is a pure function:
// the same outcomes always produce byte-identical output, which keeps
// re-runs idempotent and the comment diffable in tests.
package report

import (
	"fmt"
	"strings"

	"github.com/up-for-grabs/project-review/reviewer/validation"
)

// Marker is the reserved literal prefixed to every report. It identifies
// this system's prior comments for cleanup and must never appear in
// legitimate human comments.
const Marker = "<!-- UP-FOR-GRABS PROJECT REVIEW -->"

const preamble = "Thanks for contributing to the project index! " +
	"This is the automated review of the project files changed in this pull request."

// Render produces the Markdown report, one section per outcome in input
// order, joined by blank lines under the fixed preamble.
func Render(outcomes []validation.Outcome) string {
	parts := make([]string, 0, len(outcomes)+1)
	parts = append(parts, Marker+"\n"+preamble)
	for _, o := range outcomes {
		parts = append(parts, section(o))
	}
	return strings.Join(parts, "\n\n") + "\n"
}

func section(o validation.Outcome) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "#### `%s`\n\n", o.Project.RelativePath)

	switch o.Kind {
	case validation.KindValid:
		sb.WriteString(":white_check_mark: This project file passes review.")
	case validation.KindValidationError:
		sb.WriteString(":x: This project file did not pass schema validation:\n")
		writeList(&sb, o.Violations)
	case validation.KindTagsError:
		sb.WriteString(":x: This project file has problems with its tags:\n")
		writeList(&sb, o.Violations)
	case validation.KindRepositoryError, validation.KindLabelError:
		sb.WriteString(":x: " + o.Message)
	default:
		sb.WriteString(":question: " + o.Message)
	}

	return sb.String()
}

func writeList(sb *strings.Builder, items []string) {
	for _, item := range items {
		fmt.Fprintf(sb, "\n- %s", item)
	}
}
