// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Equinor ASA

package compile

// TypeResolver converts resolved semantic types to target-language type
// strings and applies target conventions to fields. Each emission target
// implements this interface; the Builder stays language-neutral.
type TypeResolver interface {
	// PrimitiveType maps a scalar kind to a target type string.
	PrimitiveType(kind Kind) string

	// ArrayType wraps an element type string in the target's sequence type.
	ArrayType(elemType string) string

	// RefType returns the type string for a reference to another generated
	// model.
	RefType(target *RefTarget) string

	// EnrichField applies target-specific post-processing to a resolved
	// field. It may mutate the field's properties:
	//   - Identifier: rename for target conventions (e.g. exported names)
	//   - TypeExpr:   wrap for optionality (e.g. Optional[T])
	//   - Tag:        set annotations (e.g. struct tags)
	// Called once per field after type resolution and ordering, before
	// template execution.
	EnrichField(f *ResolvedField)
}

// Constraints carries the validation keywords attached to one property.
// The Builder filters them per the source conventions: maxLength applies to
// text and binary fields only, numeric bounds to numeric fields only.
type Constraints struct {
	Enum             []any
	Pattern          string
	Format           string
	MinLength        *int
	MaxLength        *int
	Minimum          *float64
	Maximum          *float64
	ExclusiveMinimum *float64
	ExclusiveMaximum *float64
	MultipleOf       *float64
	MinItems         *int
	MaxItems         *int
}

// Empty reports whether no constraint is set.
func (c Constraints) Empty() bool {
	return len(c.Enum) == 0 && c.Pattern == "" &&
		c.MinLength == nil && c.MaxLength == nil &&
		c.Minimum == nil && c.Maximum == nil &&
		c.ExclusiveMinimum == nil && c.ExclusiveMaximum == nil &&
		c.MultipleOf == nil && c.MinItems == nil && c.MaxItems == nil
}
