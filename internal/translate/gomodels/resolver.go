// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Equinor ASA

// Package gomodels emits the generated models as Go descriptor declarations
// backed by the pkg/dsismodel runtime.
package gomodels

import "github.com/equinor/dsis-schemas/internal/compile"

type resolver struct{}

func (r *resolver) PrimitiveType(kind compile.Kind) string {
	switch kind {
	case compile.KindDate, compile.KindDateTime:
		return "time.Time"
	case compile.KindBinary:
		return "[]byte"
	case compile.KindInt:
		return "int64"
	case compile.KindFloat:
		return "float64"
	case compile.KindDecimal:
		return "decimal128.Decimal"
	case compile.KindBool:
		return "bool"
	default:
		return "string"
	}
}

func (r *resolver) ArrayType(elemType string) string {
	return "[]" + elemType
}

// RefType renders references as runtime records. The target descriptor is
// looked up by title at validation time, so reference cycles between models
// need no ordering at emission time.
func (r *resolver) RefType(target *compile.RefTarget) string {
	return "*dsismodel.Record"
}

// EnrichField keeps identifiers as-is: descriptor field names are data, not
// Go identifiers, and the runtime matches them against wire names.
func (r *resolver) EnrichField(f *compile.ResolvedField) {}
