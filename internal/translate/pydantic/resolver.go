// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Equinor ASA

// Package pydantic emits the generated models as pydantic classes, the form
// the DSIS Python SDK ships in.
package pydantic

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/equinor/dsis-schemas/internal/compile"
)

type resolver struct{}

func (r *resolver) PrimitiveType(kind compile.Kind) string {
	switch kind {
	case compile.KindDate:
		return "date"
	case compile.KindDateTime:
		return "datetime"
	case compile.KindBinary:
		return "bytes"
	case compile.KindInt:
		return "int"
	case compile.KindFloat:
		return "float"
	case compile.KindDecimal:
		return "Decimal"
	case compile.KindBool:
		return "bool"
	default:
		return "str"
	}
}

func (r *resolver) ArrayType(elemType string) string {
	return "list[" + elemType + "]"
}

// RefType renders references as quoted forward names, so a model can embed
// another regardless of definition order.
func (r *resolver) RefType(target *compile.RefTarget) string {
	return `"` + target.Name + `"`
}

func (r *resolver) EnrichField(f *compile.ResolvedField) {
	if !f.Required {
		f.TypeExpr = "Optional[" + f.TypeExpr + "]"
	}
	f.Tag = fieldTag(f)
}

// fieldTag renders the trailing Field(...) assignment. Required fields with
// no configuration stay bare annotations, so omitting them at construction
// time is a validation failure; optional fields always default to None.
func fieldTag(f *compile.ResolvedField) string {
	var parts []string
	if !f.Required {
		parts = append(parts, "default="+pyLiteral(f.Default))
	}
	if f.Description != "" {
		parts = append(parts, "description="+pyString(f.Description))
	}

	c := f.Constraints
	if c.MinLength != nil {
		parts = append(parts, "min_length="+strconv.Itoa(*c.MinLength))
	}
	if c.MaxLength != nil {
		parts = append(parts, "max_length="+strconv.Itoa(*c.MaxLength))
	}
	if c.MinItems != nil {
		parts = append(parts, "min_length="+strconv.Itoa(*c.MinItems))
	}
	if c.MaxItems != nil {
		parts = append(parts, "max_length="+strconv.Itoa(*c.MaxItems))
	}
	if c.Pattern != "" {
		parts = append(parts, "pattern="+pyString(c.Pattern))
	}
	if c.Minimum != nil {
		parts = append(parts, "ge="+pyFloat(*c.Minimum))
	}
	if c.Maximum != nil {
		parts = append(parts, "le="+pyFloat(*c.Maximum))
	}
	if c.ExclusiveMinimum != nil {
		parts = append(parts, "gt="+pyFloat(*c.ExclusiveMinimum))
	}
	if c.ExclusiveMaximum != nil {
		parts = append(parts, "lt="+pyFloat(*c.ExclusiveMaximum))
	}
	if c.MultipleOf != nil {
		parts = append(parts, "multiple_of="+pyFloat(*c.MultipleOf))
	}
	if f.WireName != "" {
		parts = append(parts, "alias="+pyString(f.WireName))
	}

	if len(parts) == 0 {
		if f.Required {
			return ""
		}
		return " = None"
	}
	return " = Field(" + strings.Join(parts, ", ") + ")"
}

func pyLiteral(v any) string {
	switch tv := v.(type) {
	case nil:
		return "None"
	case string:
		return pyString(tv)
	case bool:
		if tv {
			return "True"
		}
		return "False"
	case float64:
		return pyFloat(tv)
	case int:
		return strconv.Itoa(tv)
	case int64:
		return strconv.FormatInt(tv, 10)
	default:
		return pyString(fmt.Sprint(tv))
	}
}

func pyString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return `"` + s + `"`
}

func pyFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
