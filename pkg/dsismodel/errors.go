// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Equinor ASA

package dsismodel

import (
	"fmt"
	"strings"
)

// IssueCode classifies one validation issue.
type IssueCode string

const (
	// CodeMissing marks a required field absent from the input.
	CodeMissing IssueCode = "missing"

	// CodeWrongType marks a value whose type does not match the field kind.
	CodeWrongType IssueCode = "wrong_type"

	// CodeConstraint marks a value that fails a schema constraint.
	CodeConstraint IssueCode = "constraint"
)

// Issue is one validation finding for one field.
type Issue struct {
	// Field is the sanitized identifier.
	Field string

	// Wire is the property's wire name.
	Wire string

	Code    IssueCode
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Field, i.Message)
}

// ValidationError reports every issue found while constructing a record,
// not just the first. Issues appear in field declaration order.
type ValidationError struct {
	// Model is the schema title of the model being constructed.
	Model string

	Issues []Issue
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		msgs[i] = issue.String()
	}
	return fmt.Sprintf("validation failed for %s: %s", e.Model, strings.Join(msgs, "; "))
}

// Missing returns the identifiers reported missing, in declaration order.
func (e *ValidationError) Missing() []string {
	var names []string
	for _, issue := range e.Issues {
		if issue.Code == CodeMissing {
			names = append(names, issue.Field)
		}
	}
	return names
}
