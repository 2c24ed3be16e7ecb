// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Equinor ASA

package compile

import "fmt"

// TypeMappingError reports a property whose type/format combination has no
// mapping. It is fatal for its schema; there is no fallback to an untyped
// representation.
type TypeMappingError struct {
	// SchemaID identifies the schema ($id, or title when absent).
	SchemaID string
	Property string
	JSONType string
	Format   string
}

func (e *TypeMappingError) Error() string {
	if e.Format != "" {
		return fmt.Sprintf("schema %s: property %q: unsupported type %q with format %q", e.SchemaID, e.Property, e.JSONType, e.Format)
	}
	return fmt.Sprintf("schema %s: property %q: unsupported type %q", e.SchemaID, e.Property, e.JSONType)
}

// IdentifierCollisionError reports two distinct raw property names that
// sanitize to the same identifier. Dropping one silently would lose a
// field, so the schema fails instead.
type IdentifierCollisionError struct {
	SchemaID   string
	Identifier string
	// First and Second are the raw property names, in declaration order.
	First  string
	Second string
}

func (e *IdentifierCollisionError) Error() string {
	return fmt.Sprintf("schema %s: properties %q and %q both sanitize to identifier %q", e.SchemaID, e.First, e.Second, e.Identifier)
}

// EmptyModelError reports a schema with no usable properties.
type EmptyModelError struct {
	SchemaID string
}

func (e *EmptyModelError) Error() string {
	return fmt.Sprintf("schema %s: no properties to generate a model from", e.SchemaID)
}
