// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Equinor ASA

// Package dsismodel is the runtime for generated DSIS models. Generated
// packages declare one Descriptor per model; records built from a
// descriptor validate their input up front and keep wire names, typed
// values, and provenance metadata available for introspection.
package dsismodel

import "sync"

// Kind is the semantic type of a descriptor field.
type Kind int

const (
	KindInvalid Kind = iota
	KindText
	KindDate
	KindDateTime
	KindBinary
	KindInt
	KindFloat
	KindDecimal
	KindBool
	KindList
	KindRef
)

var kindNames = map[Kind]string{
	KindInvalid:  "invalid",
	KindText:     "text",
	KindDate:     "date",
	KindDateTime: "datetime",
	KindBinary:   "binary",
	KindInt:      "integer",
	KindFloat:    "float",
	KindDecimal:  "decimal",
	KindBool:     "boolean",
	KindList:     "list",
	KindRef:      "ref",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Field describes one model field: its in-memory identifier, the wire name
// it round-trips through, its kind, and the constraints validated at
// construction time.
type Field struct {
	// Name is the sanitized identifier.
	Name string

	// Wire is the property name in the external JSON form. Equal to Name
	// unless the identifier was sanitized.
	Wire string

	Kind Kind

	// Elem is the element kind when Kind is KindList.
	Elem Kind

	// Ref is the title of the referenced model when Kind is KindRef, or
	// when Kind is KindList and Elem is KindRef.
	Ref string

	Required bool

	// Description carries the column metadata ("SQL Type: VARCHAR2(12)").
	Description string

	// Constraints. Zero values mean "not constrained".
	MaxLength        int
	MinLength        int
	Pattern          string
	Enum             []any
	Minimum          *float64
	Maximum          *float64
	ExclusiveMinimum *float64
	ExclusiveMaximum *float64
	MultipleOf       float64
	MinItems         int
	MaxItems         int
}

// Float returns a pointer to v. Generated descriptors use it to set the
// optional numeric bound constraints inline.
func Float(v float64) *float64 {
	return &v
}

// Descriptor describes one generated model: identity, provenance, and
// fields in schema declaration order.
type Descriptor struct {
	// Name is the generated model name ("Well").
	Name string

	// Title is the originating schema title ("OW5000.Well").
	Title string

	// ID is the originating schema $id, when the schema carried one.
	ID string

	// Family is the schema family the model belongs to ("common",
	// "native").
	Family string

	// SQLTable is the underscored table name the schema maps to.
	SQLTable string

	Description string

	Fields []Field
}

// Field returns the field with the given identifier.
func (d *Descriptor) Field(name string) (*Field, bool) {
	for i := range d.Fields {
		if d.Fields[i].Name == name {
			return &d.Fields[i], true
		}
	}
	return nil, false
}

// FieldByWire returns the field with the given wire name.
func (d *Descriptor) FieldByWire(wire string) (*Field, bool) {
	for i := range d.Fields {
		if d.Fields[i].Wire == wire {
			return &d.Fields[i], true
		}
	}
	return nil, false
}

// Required returns the identifiers of the required fields, in declaration
// order.
func (d *Descriptor) Required() []string {
	var names []string
	for _, f := range d.Fields {
		if f.Required {
			names = append(names, f.Name)
		}
	}
	return names
}

// registry indexes descriptors by schema title so references resolve
// lazily by name. Generated packages register their descriptors from init
// functions, which keeps reference cycles between models legal.
var registry = struct {
	sync.RWMutex
	byTitle map[string]*Descriptor
}{byTitle: make(map[string]*Descriptor)}

// Register adds a descriptor to the runtime registry.
func Register(d *Descriptor) {
	registry.Lock()
	defer registry.Unlock()
	registry.byTitle[d.Title] = d
}

// Lookup returns the registered descriptor for a schema title.
func Lookup(title string) (*Descriptor, bool) {
	registry.RLock()
	defer registry.RUnlock()
	d, ok := registry.byTitle[title]
	return d, ok
}
