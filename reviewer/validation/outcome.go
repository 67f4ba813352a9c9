/*
Copyright 2026 The Up for Grabs Authors
SPDX-License-Identifier: Apache-2.0
*/

package validation

import "github.com/up-for-grabs/project-review/reviewer/descriptor"

// Kind tags a review outcome. The set is closed: anything the engine cannot
// classify becomes KindUnrecognized so it is flagged for a maintainer rather
// than silently dropped.
type Kind string

const (
	KindValid           Kind = "valid"
	KindValidationError Kind = "validation-error"
	KindTagsError       Kind = "tags-error"
	KindRepositoryError Kind = "repository-error"
	KindLabelError      Kind = "label-error"
	KindUnrecognized    Kind = "unrecognized"
)

// Outcome is the single classification produced for one descriptor.
// Kind determines which payload field is populated: Violations for
// validation-error and tags-error, Message for the rest.
type Outcome struct {
	Project    *descriptor.Project
	Kind       Kind
	Violations []string
	Message    string
}
