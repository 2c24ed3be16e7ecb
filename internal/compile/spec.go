// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Equinor ASA

package compile

import "github.com/equinor/dsis-schemas/internal/jschema"

// ResolvedField is one fully-resolved model field.
type ResolvedField struct {
	// Identifier is the sanitized field name, valid in the target language.
	Identifier string
	// WireName is the raw schema property name, set only when it differs
	// from Identifier. Emitted models must serialize under this name.
	WireName string
	// Type is the semantic type.
	Type TypeRef
	// TypeExpr is the target-language type expression rendered from Type.
	TypeExpr string
	// Tag is a target-specific annotation (struct tag, trailing default),
	// filled by the target's EnrichField.
	Tag string
	// Required marks fields listed in the schema's required array. Required
	// fields have no default; optional fields default to the absence
	// sentinel at runtime.
	Required bool
	// Default is a schema-declared explicit default, nil if none.
	Default any
	// Constraints are the validation rules carried into the emitted field.
	Constraints Constraints
	// Description is the human-readable field annotation (from the source
	// column type).
	Description string
}

// ModelSpec is the ordered, fully-resolved specification of one generated
// model. It references its source schema by id and title only.
type ModelSpec struct {
	// Name is the generated class name.
	Name string
	// Module is the file stem the model is emitted to.
	Module string
	// Title is the source schema name ("OpenWorksCommonModel.Well").
	Title string
	// SchemaID is the source schema's $id.
	SchemaID string
	Family   jschema.Family
	// SQLTable is the source table hint (title with "." → "_").
	SQLTable    string
	Description string
	// Fields are ordered: schema declaration order, with required fields
	// stably moved ahead of optional ones when the target profile demands
	// it.
	Fields []ResolvedField
}

// RequiredFields returns the fields with Required set, in order.
func (m *ModelSpec) RequiredFields() []ResolvedField {
	var out []ResolvedField
	for _, f := range m.Fields {
		if f.Required {
			out = append(out, f)
		}
	}
	return out
}

// OptionalFields returns the fields without Required set, in order.
func (m *ModelSpec) OptionalFields() []ResolvedField {
	var out []ResolvedField
	for _, f := range m.Fields {
		if !f.Required {
			out = append(out, f)
		}
	}
	return out
}

// Refs returns the distinct reference targets of the model's fields, in
// field order. Emitters use it for import generation.
func (m *ModelSpec) Refs() []*RefTarget {
	var out []*RefTarget
	seen := make(map[string]struct{})
	for _, f := range m.Fields {
		for t := &f.Type; t != nil; t = t.Elem {
			if t.Ref == nil {
				continue
			}
			key := string(t.Ref.Family) + "\x00" + t.Ref.Name
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, t.Ref)
		}
	}
	return out
}
