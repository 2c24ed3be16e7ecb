// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Equinor ASA

// Package jschema provides loading, parsing, and indexing of DSIS JSON Schema
// documents (the draft 2020-12 subset used by the OpenWorks Common Model and
// the OW5000 Native Model corpora).
package jschema

import "strings"

// Schema is one node of a parsed schema document. It covers the keyword
// subset emitted by the DSIS schema exporter plus the vendor keyword
// sqlType, and carries both JSON and YAML tags so documents can be authored
// in either format.
type Schema struct {
	ID          string `json:"$id,omitempty" yaml:"$id,omitempty"`
	SchemaURI   string `json:"$schema,omitempty" yaml:"$schema,omitempty"`
	Ref         string `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	Type   string `json:"type,omitempty" yaml:"type,omitempty"`
	Format string `json:"format,omitempty" yaml:"format,omitempty"`

	Properties map[string]*Schema `json:"properties,omitempty" yaml:"properties,omitempty"`
	Required   []string           `json:"required,omitempty" yaml:"required,omitempty"`
	Items      *Schema            `json:"items,omitempty" yaml:"items,omitempty"`

	Defs        map[string]*Schema `json:"$defs,omitempty" yaml:"$defs,omitempty"`
	Definitions map[string]*Schema `json:"definitions,omitempty" yaml:"definitions,omitempty"`

	Enum             []any    `json:"enum,omitempty" yaml:"enum,omitempty"`
	Const            any      `json:"const,omitempty" yaml:"const,omitempty"`
	Pattern          string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	MinLength        *int     `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength        *int     `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Minimum          *float64 `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	Maximum          *float64 `json:"maximum,omitempty" yaml:"maximum,omitempty"`
	ExclusiveMinimum *float64 `json:"exclusiveMinimum,omitempty" yaml:"exclusiveMinimum,omitempty"`
	ExclusiveMaximum *float64 `json:"exclusiveMaximum,omitempty" yaml:"exclusiveMaximum,omitempty"`
	MultipleOf       *float64 `json:"multipleOf,omitempty" yaml:"multipleOf,omitempty"`
	MinItems         *int     `json:"minItems,omitempty" yaml:"minItems,omitempty"`
	MaxItems         *int     `json:"maxItems,omitempty" yaml:"maxItems,omitempty"`
	Default          any      `json:"default,omitempty" yaml:"default,omitempty"`

	// SQLType is the DSIS exporter's vendor keyword describing the source
	// column type. It is carried into generated field descriptions verbatim.
	SQLType string `json:"sqlType,omitempty" yaml:"sqlType,omitempty"`

	// PropertyOrder preserves the declaration order of the properties map.
	// It is populated by the loader from the raw document bytes and is never
	// serialized.
	PropertyOrder []string `json:"-" yaml:"-"`
}

// IsInternalRef returns true if ref points inside a schema registry
// ("#/definitions/..." or "#/$defs/...") rather than at an external file.
func IsInternalRef(ref string) bool {
	return strings.HasPrefix(ref, "#/")
}

// RefName extracts the registry key from an internal reference, stripping
// the "#/definitions/" or "#/$defs/" prefix.
func RefName(ref string) string {
	if name, ok := strings.CutPrefix(ref, "#/definitions/"); ok {
		return name
	}
	if name, ok := strings.CutPrefix(ref, "#/$defs/"); ok {
		return name
	}
	return ref
}

// IsRequired reports whether name appears in the schema's required list.
func (s *Schema) IsRequired(name string) bool {
	for _, r := range s.Required {
		if r == name {
			return true
		}
	}
	return false
}
