// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Equinor ASA

package jschema

import "strings"

// Family identifies which of the two schema corpora a document belongs to.
// The families share no identifier namespace: the same title may appear in
// both and must generate two independent models.
type Family string

const (
	// FamilyCommon is the OpenWorks Common Model corpus.
	FamilyCommon Family = "common"
	// FamilyNative is the OW5000 Native Model corpus.
	FamilyNative Family = "native"
)

// Families lists the supported families in their canonical order.
func Families() []Family {
	return []Family{FamilyCommon, FamilyNative}
}

// ParseFamily converts a user-supplied string to a Family.
func ParseFamily(s string) (Family, bool) {
	switch Family(strings.ToLower(strings.TrimSpace(s))) {
	case FamilyCommon:
		return FamilyCommon, true
	case FamilyNative:
		return FamilyNative, true
	}
	return "", false
}

// Label returns the human-readable corpus name used in generated headers.
func (f Family) Label() string {
	switch f {
	case FamilyCommon:
		return "OpenWorks Common Model"
	case FamilyNative:
		return "OW5000 Native Model"
	default:
		return string(f)
	}
}

// Property is one named property of a schema document, in declaration order.
type Property struct {
	Name   string
	Schema *Schema
}

// Document is one parsed schema unit: a single model-to-be. It is created by
// the Loader and immutable afterwards.
type Document struct {
	// ID is the schema's $id, unique within its family.
	ID string
	// Title is the schema title ("OpenWorksCommonModel.Well",
	// "SYSADMIN.SESSIONS", ...), falling back to the file stem when absent.
	Title string
	// Family is the corpus the document was loaded from.
	Family Family
	// SQLTable is the source table hint: the title with "." replaced by "_".
	SQLTable string
	// Path is the file the document was read from, for error reporting.
	Path string
	// Properties lists the object's properties in declaration order.
	Properties []Property

	required map[string]struct{}
	schema   *Schema
}

// newDocument builds a Document from a parsed schema. The title argument is
// the already-resolved schema name: the combined-file key, or the document's
// own title falling back to the file stem. Property order follows
// schema.PropertyOrder where present, with a sorted-name fallback so that a
// document missing raw ordering still generates deterministically.
func newDocument(title, path string, family Family, schema *Schema) (*Document, error) {
	if schema.Type != "object" {
		return nil, &ParseError{Path: path, Reason: `schema must declare "type": "object"`}
	}
	if schema.Properties == nil {
		return nil, &ParseError{Path: path, Reason: `schema has no "properties" object`}
	}

	doc := &Document{
		ID:       schema.ID,
		Title:    title,
		Family:   family,
		SQLTable: strings.ReplaceAll(title, ".", "_"),
		Path:     path,
		required: make(map[string]struct{}, len(schema.Required)),
		schema:   schema,
	}

	for _, name := range orderedPropertyNames(schema) {
		doc.Properties = append(doc.Properties, Property{Name: name, Schema: schema.Properties[name]})
	}
	for _, r := range schema.Required {
		doc.required[r] = struct{}{}
	}

	return doc, nil
}

// IsRequired reports whether the named property is in the document's
// required set.
func (d *Document) IsRequired(name string) bool {
	_, ok := d.required[name]
	return ok
}

// Required returns the required property names in schema declaration order.
func (d *Document) Required() []string {
	return append([]string(nil), d.schema.Required...)
}

// Schema exposes the underlying parsed schema tree, used by Traverse-based
// checks. Callers must not mutate it.
func (d *Document) Schema() *Schema {
	return d.schema
}
