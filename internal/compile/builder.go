// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Equinor ASA

package compile

import (
	"errors"
	"sort"

	"github.com/equinor/dsis-schemas/internal/jschema"
)

// Builder resolves schema documents into model specifications for one
// emission target. All state is read-only after construction, so one
// Builder serves any number of concurrent Build calls.
type Builder struct {
	registry  *jschema.Registry
	resolver  TypeResolver
	sanitizer *Sanitizer
	profile   Profile
}

// NewBuilder creates a Builder that resolves references through registry
// and renders type expressions with resolver under the given profile.
func NewBuilder(registry *jschema.Registry, profile Profile, resolver TypeResolver) *Builder {
	return &Builder{
		registry:  registry,
		resolver:  resolver,
		sanitizer: NewSanitizer(profile),
		profile:   profile,
	}
}

// Build turns one schema document into a ModelSpec. Properties resolve in
// declaration order; required fields are stably moved ahead of optional
// ones when the profile needs defaulted parameters last. Two raw names
// sanitizing to one identifier fail the schema rather than dropping a
// field.
func (b *Builder) Build(doc *jschema.Document) (*ModelSpec, error) {
	if len(doc.Properties) == 0 {
		return nil, &EmptyModelError{SchemaID: schemaID(doc)}
	}

	name := ClassName(doc.Family, doc.Title)
	spec := &ModelSpec{
		Name:        name,
		Module:      ModuleName(name),
		Title:       doc.Title,
		SchemaID:    doc.ID,
		Family:      doc.Family,
		SQLTable:    doc.SQLTable,
		Description: doc.Schema().Description,
	}

	seen := make(map[string]string, len(doc.Properties))
	for _, prop := range doc.Properties {
		field, err := b.resolveField(doc, prop)
		if err != nil {
			return nil, err
		}
		if first, ok := seen[field.Identifier]; ok {
			return nil, &IdentifierCollisionError{
				SchemaID:   schemaID(doc),
				Identifier: field.Identifier,
				First:      first,
				Second:     prop.Name,
			}
		}
		seen[field.Identifier] = prop.Name
		spec.Fields = append(spec.Fields, field)
	}

	if b.profile.RequiredFirst {
		sort.SliceStable(spec.Fields, func(i, j int) bool {
			return spec.Fields[i].Required && !spec.Fields[j].Required
		})
	}

	for i := range spec.Fields {
		spec.Fields[i].TypeExpr = b.typeExpr(spec.Fields[i].Type)
		b.resolver.EnrichField(&spec.Fields[i])
	}

	return spec, nil
}

func (b *Builder) resolveField(doc *jschema.Document, prop jschema.Property) (ResolvedField, error) {
	if prop.Schema == nil {
		return ResolvedField{}, &TypeMappingError{SchemaID: schemaID(doc), Property: prop.Name, JSONType: "null"}
	}

	typeRef, err := b.resolveType(doc, prop.Name, prop.Schema)
	if err != nil {
		return ResolvedField{}, err
	}

	ident, aliased := b.sanitizer.Sanitize(prop.Name)

	field := ResolvedField{
		Identifier:  ident,
		Type:        typeRef,
		Required:    doc.IsRequired(prop.Name),
		Default:     prop.Schema.Default,
		Constraints: fieldConstraints(typeRef.Kind, prop.Schema),
		Description: describeField(prop.Schema),
	}
	if aliased {
		field.WireName = prop.Name
	}
	return field, nil
}

func (b *Builder) resolveType(doc *jschema.Document, propName string, s *jschema.Schema) (TypeRef, error) {
	if s.Ref != "" {
		target, err := b.registry.Resolve(doc, s.Ref)
		if err != nil {
			var resErr *jschema.ResolutionError
			if errors.As(err, &resErr) {
				resErr.Property = propName
			}
			return TypeRef{}, err
		}
		return TypeRef{Kind: KindRef, Ref: &RefTarget{
			Name:   ClassName(target.Family, target.Title),
			Title:  target.Title,
			Family: target.Family,
		}}, nil
	}

	switch s.Type {
	// The DSIS exporter omits "type" on a handful of text columns.
	case "string", "":
		return TypeRef{Kind: stringKind(s.Format)}, nil
	case "integer":
		return TypeRef{Kind: KindInt}, nil
	case "number":
		if s.Format == "float" {
			return TypeRef{Kind: KindFloat}, nil
		}
		return TypeRef{Kind: KindDecimal}, nil
	case "boolean":
		return TypeRef{Kind: KindBool}, nil
	case "array":
		if s.Items == nil {
			return TypeRef{Kind: KindList, Elem: &TypeRef{Kind: KindText}}, nil
		}
		// One level only: the corpora are flat SQL projections, and the
		// runtime field descriptors carry a single element kind.
		if s.Items.Type == "array" {
			return TypeRef{}, &TypeMappingError{SchemaID: schemaID(doc), Property: propName, JSONType: "array of arrays"}
		}
		elem, err := b.resolveType(doc, propName, s.Items)
		if err != nil {
			return TypeRef{}, err
		}
		return TypeRef{Kind: KindList, Elem: &elem}, nil
	default:
		// Inline objects included: they have no generated model to point
		// at, the corpus references other tables via $ref.
		return TypeRef{}, &TypeMappingError{SchemaID: schemaID(doc), Property: propName, JSONType: s.Type, Format: s.Format}
	}
}

func (b *Builder) typeExpr(t TypeRef) string {
	switch t.Kind {
	case KindList:
		elem := TypeRef{Kind: KindText}
		if t.Elem != nil {
			elem = *t.Elem
		}
		return b.resolver.ArrayType(b.typeExpr(elem))
	case KindRef:
		return b.resolver.RefType(t.Ref)
	default:
		return b.resolver.PrimitiveType(t.Kind)
	}
}

func stringKind(format string) Kind {
	switch format {
	case "date":
		return KindDate
	case "time", "date-time":
		return KindDateTime
	case "binary":
		return KindBinary
	default:
		return KindText
	}
}

// fieldConstraints applies the source conventions: length binds text and
// binary fields (date and time columns carry vestigial lengths from the
// export and drop them), numeric rules bind numeric fields, item counts
// bind lists. Zero-valued lengths and multiples are treated as unset.
func fieldConstraints(kind Kind, s *jschema.Schema) Constraints {
	c := Constraints{
		Enum:    s.Enum,
		Pattern: s.Pattern,
		Format:  s.Format,
	}
	if kind == KindText || kind == KindBinary {
		c.MinLength = nonZeroInt(s.MinLength)
		c.MaxLength = nonZeroInt(s.MaxLength)
	}
	if kind.Numeric() {
		c.Minimum = s.Minimum
		c.Maximum = s.Maximum
		c.ExclusiveMinimum = s.ExclusiveMinimum
		c.ExclusiveMaximum = s.ExclusiveMaximum
		c.MultipleOf = nonZeroFloat(s.MultipleOf)
	}
	if kind == KindList {
		c.MinItems = s.MinItems
		c.MaxItems = s.MaxItems
	}
	return c
}

func nonZeroInt(p *int) *int {
	if p == nil || *p == 0 {
		return nil
	}
	return p
}

func nonZeroFloat(p *float64) *float64 {
	if p == nil || *p == 0 {
		return nil
	}
	return p
}

// describeField derives the field description. The exporter's sqlType
// keyword wins, rendered the way the source SDK did; a plain description
// keyword is used when no sqlType is present.
func describeField(s *jschema.Schema) string {
	if s.SQLType != "" {
		return "SQL Type: " + s.SQLType
	}
	return s.Description
}

// schemaID names a document in errors: its $id, falling back to the title
// when the export declared none.
func schemaID(doc *jschema.Document) string {
	if doc.ID != "" {
		return doc.ID
	}
	return doc.Title
}
