// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Equinor ASA

package gomodels

import (
	"bytes"
	"embed"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/equinor/dsis-schemas/internal/compile"
	"github.com/equinor/dsis-schemas/internal/jschema"
	"github.com/equinor/dsis-schemas/internal/modindex"
	"github.com/equinor/dsis-schemas/internal/translate"
)

//go:embed gomodels.go.tmpl index.go.tmpl models.go.tmpl
var tmplFS embed.FS

var tmpl = template.Must(template.ParseFS(tmplFS, "gomodels.go.tmpl", "index.go.tmpl", "models.go.tmpl"))

func init() {
	translate.Register(&Translator{})
}

// Translator renders model specs as dsismodel descriptor declarations, one
// Go file per model grouped into a package per family.
type Translator struct{}

// Name returns the target's registry name.
func (t *Translator) Name() string {
	return "gomodels"
}

// Profile returns the Go identifier rules. Descriptors have no defaulted
// parameters, so schema field order is kept as-is.
func (t *Translator) Profile() compile.Profile {
	return compile.GoProfile()
}

// Resolver returns the Go type resolver.
func (t *Translator) Resolver() compile.TypeResolver {
	return &resolver{}
}

// FileExtension returns the file extension for Go source files.
func (t *Translator) FileExtension() string {
	return ".go"
}

// Translate converts a model spec to a descriptor declaration.
func (t *Translator) Translate(spec *compile.ModelSpec) ([]byte, error) {
	fields := make([]string, 0, len(spec.Fields))
	for i := range spec.Fields {
		fields = append(fields, fieldLiteral(&spec.Fields[i]))
	}

	var buf bytes.Buffer
	err := tmpl.ExecuteTemplate(&buf, "gomodels.go.tmpl", struct {
		Spec    *compile.ModelSpec
		Package string
		Fields  []string
	}{Spec: spec, Package: string(spec.Family), Fields: fields})
	if err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.Bytes(), nil
}

// fieldLiteral renders one dsismodel.Field composite literal. Only set
// attributes appear, so the emitted line mirrors what the schema declared.
func fieldLiteral(f *compile.ResolvedField) string {
	wire := f.WireName
	if wire == "" {
		wire = f.Identifier
	}

	parts := []string{
		"Name: " + strconv.Quote(f.Identifier),
		"Wire: " + strconv.Quote(wire),
		"Kind: " + kindConst(f.Type.Kind),
	}
	if f.Type.Kind == compile.KindList && f.Type.Elem != nil {
		parts = append(parts, "Elem: "+kindConst(f.Type.Elem.Kind))
		if f.Type.Elem.Ref != nil {
			parts = append(parts, "Ref: "+strconv.Quote(f.Type.Elem.Ref.Title))
		}
	}
	if f.Type.Ref != nil {
		parts = append(parts, "Ref: "+strconv.Quote(f.Type.Ref.Title))
	}
	if f.Required {
		parts = append(parts, "Required: true")
	}

	c := f.Constraints
	if c.MaxLength != nil {
		parts = append(parts, "MaxLength: "+strconv.Itoa(*c.MaxLength))
	}
	if c.MinLength != nil {
		parts = append(parts, "MinLength: "+strconv.Itoa(*c.MinLength))
	}
	if c.Pattern != "" {
		parts = append(parts, "Pattern: "+strconv.Quote(c.Pattern))
	}
	if len(c.Enum) > 0 {
		vals := make([]string, len(c.Enum))
		for i, v := range c.Enum {
			vals[i] = goLiteral(v)
		}
		parts = append(parts, "Enum: []any{"+strings.Join(vals, ", ")+"}")
	}
	if c.Minimum != nil {
		parts = append(parts, "Minimum: dsismodel.Float("+goFloat(*c.Minimum)+")")
	}
	if c.Maximum != nil {
		parts = append(parts, "Maximum: dsismodel.Float("+goFloat(*c.Maximum)+")")
	}
	if c.ExclusiveMinimum != nil {
		parts = append(parts, "ExclusiveMinimum: dsismodel.Float("+goFloat(*c.ExclusiveMinimum)+")")
	}
	if c.ExclusiveMaximum != nil {
		parts = append(parts, "ExclusiveMaximum: dsismodel.Float("+goFloat(*c.ExclusiveMaximum)+")")
	}
	if c.MultipleOf != nil {
		parts = append(parts, "MultipleOf: "+goFloat(*c.MultipleOf))
	}
	if c.MinItems != nil {
		parts = append(parts, "MinItems: "+strconv.Itoa(*c.MinItems))
	}
	if c.MaxItems != nil {
		parts = append(parts, "MaxItems: "+strconv.Itoa(*c.MaxItems))
	}
	if f.Description != "" {
		parts = append(parts, "Description: "+strconv.Quote(f.Description))
	}

	return "{" + strings.Join(parts, ", ") + "}"
}

func kindConst(k compile.Kind) string {
	switch k {
	case compile.KindText:
		return "dsismodel.KindText"
	case compile.KindDate:
		return "dsismodel.KindDate"
	case compile.KindDateTime:
		return "dsismodel.KindDateTime"
	case compile.KindBinary:
		return "dsismodel.KindBinary"
	case compile.KindInt:
		return "dsismodel.KindInt"
	case compile.KindFloat:
		return "dsismodel.KindFloat"
	case compile.KindDecimal:
		return "dsismodel.KindDecimal"
	case compile.KindBool:
		return "dsismodel.KindBool"
	case compile.KindList:
		return "dsismodel.KindList"
	case compile.KindRef:
		return "dsismodel.KindRef"
	default:
		return "dsismodel.KindInvalid"
	}
}

func goLiteral(v any) string {
	switch tv := v.(type) {
	case string:
		return strconv.Quote(tv)
	case bool:
		return strconv.FormatBool(tv)
	case float64:
		return goFloat(tv)
	case int:
		return strconv.Itoa(tv)
	case int64:
		return strconv.FormatInt(tv, 10)
	default:
		return strconv.Quote(fmt.Sprint(tv))
	}
}

func goFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// ReservedModules names the file IndexFiles writes into a family package,
// so no schema can claim it as a model module.
func (t *Translator) ReservedModules() []string {
	return []string{"index"}
}

// IndexFiles renders one family package's index file mapping module names
// to descriptors.
func (t *Translator) IndexFiles(family jschema.Family, entries []modindex.Entry) ([]translate.File, error) {
	var buf bytes.Buffer
	err := tmpl.ExecuteTemplate(&buf, "index.go.tmpl", struct {
		Package string
		Label   string
		Entries []modindex.Entry
	}{Package: string(family), Label: family.Label(), Entries: entries})
	if err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return []translate.File{{Name: "index.go", Data: buf.Bytes()}}, nil
}

// RootFiles renders the models package index enumerating every export name
// and the family-scoped module that defines it.
func (t *Translator) RootFiles(exports []modindex.Export) ([]translate.File, error) {
	type line struct {
		Name   string
		Module string
	}
	lines := make([]line, 0, len(exports))
	for _, e := range exports {
		lines = append(lines, line{Name: e.Name, Module: string(e.Family) + "/" + e.Module})
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "models.go.tmpl", struct{ Exports []line }{Exports: lines}); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return []translate.File{{Name: "models.go", Data: buf.Bytes()}}, nil
}
