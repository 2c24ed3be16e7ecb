// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Equinor ASA

// Package compile turns schema documents into fully-resolved model
// specifications: semantic type resolution, identifier sanitation, field
// ordering, and the error taxonomy for everything that can go wrong on the
// way. Target packages translate the resolved specifications into source
// text.
package compile

import "github.com/equinor/dsis-schemas/internal/jschema"

// Kind is the semantic type of a resolved field, independent of any target
// language syntax.
type Kind int

const (
	KindInvalid Kind = iota
	// KindText is a plain string.
	KindText
	// KindDate is a calendar date (string + format=date).
	KindDate
	// KindDateTime is a timestamp (string + format=time or date-time).
	KindDateTime
	// KindBinary is a byte sequence (string + format=binary).
	KindBinary
	// KindInt is a 64-bit signed integer.
	KindInt
	// KindFloat is a binary floating-point number (number + format=float).
	KindFloat
	// KindDecimal is an exact decimal number (number without a float
	// format; DSIS exports NUMBER(p,s) columns this way).
	KindDecimal
	// KindBool is a boolean.
	KindBool
	// KindList is an ordered sequence of Elem.
	KindList
	// KindRef is a named reference to another generated model.
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

// Numeric reports whether the kind accepts numeric constraints.
func (k Kind) Numeric() bool {
	return k == KindInt || k == KindFloat || k == KindDecimal
}

// RefTarget identifies the model a KindRef field points at.
type RefTarget struct {
	// Name is the resolved class name of the target model.
	Name string
	// Title is the target schema's name ("OW5000.EmWell").
	Title  string
	Family jschema.Family
}

// TypeRef is a resolved type: a kind plus element or reference target.
type TypeRef struct {
	Kind Kind
	// Elem is the element type when Kind is KindList.
	Elem *TypeRef
	// Ref is the reference target when Kind is KindRef.
	Ref *RefTarget
}
