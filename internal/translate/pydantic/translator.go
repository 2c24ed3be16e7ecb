// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Equinor ASA

package pydantic

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/equinor/dsis-schemas/internal/compile"
	"github.com/equinor/dsis-schemas/internal/jschema"
	"github.com/equinor/dsis-schemas/internal/modindex"
	"github.com/equinor/dsis-schemas/internal/translate"
)

//go:embed pydantic.py.tmpl init.py.tmpl models_init.py.tmpl base.py
var tmplFS embed.FS

var tmpl = template.Must(template.ParseFS(tmplFS, "pydantic.py.tmpl", "init.py.tmpl", "models_init.py.tmpl"))

func init() {
	translate.Register(&Translator{})
}

// Translator renders model specs as pydantic classes over the SDK's shared
// base model.
type Translator struct{}

// Name returns the target's registry name.
func (t *Translator) Name() string {
	return "pydantic"
}

// Profile returns the Python identifier rules. Optional fields carry
// defaults, so required fields order first.
func (t *Translator) Profile() compile.Profile {
	return compile.PythonProfile()
}

// Resolver returns the Python type resolver.
func (t *Translator) Resolver() compile.TypeResolver {
	return &resolver{}
}

// FileExtension returns the file extension for Python files.
func (t *Translator) FileExtension() string {
	return ".py"
}

// modelData is the template payload for one generated model file.
type modelData struct {
	Spec    *compile.ModelSpec
	Imports []string

	// RefImports load the referenced model classes. They render below the
	// class body, not at module top: schemas reference each other in
	// cycles, and a top-level circular "from x import Y" fails while the
	// first module is still initializing. Below the body the class is
	// already defined, and model_rebuild resolves the quoted annotations.
	RefImports []string
}

// Translate converts a model spec to a pydantic class definition.
func (t *Translator) Translate(spec *compile.ModelSpec) ([]byte, error) {
	data := modelData{Spec: spec, Imports: topImports(spec)}
	for _, ref := range spec.Refs() {
		if ref.Family == spec.Family && ref.Name == spec.Name {
			continue
		}
		module := compile.ModuleName(ref.Name)
		if ref.Family == spec.Family {
			data.RefImports = append(data.RefImports, fmt.Sprintf("from .%s import %s", module, ref.Name))
		} else {
			data.RefImports = append(data.RefImports, fmt.Sprintf("from ..%s.%s import %s", ref.Family, module, ref.Name))
		}
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "pydantic.py.tmpl", data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.Bytes(), nil
}

// topImports assembles the import block from what the fields actually use.
// ClassVar is always needed for the class metadata; everything else only
// appears when some field calls for it.
func topImports(spec *compile.ModelSpec) []string {
	var optional, date, datetime, decimal, field bool
	for _, f := range spec.Fields {
		if !f.Required {
			optional = true
		}
		if f.Tag != "" {
			field = true
		}
		for ty := &f.Type; ty != nil; ty = ty.Elem {
			switch ty.Kind {
			case compile.KindDate:
				date = true
			case compile.KindDateTime:
				datetime = true
			case compile.KindDecimal:
				decimal = true
			}
		}
	}

	typing := "from typing import ClassVar"
	if optional {
		typing = "from typing import Optional, ClassVar"
	}
	imports := []string{typing}
	switch {
	case datetime && date:
		imports = append(imports, "from datetime import datetime, date")
	case datetime:
		imports = append(imports, "from datetime import datetime")
	case date:
		imports = append(imports, "from datetime import date")
	}
	if decimal {
		imports = append(imports, "from decimal import Decimal")
	}
	if field {
		imports = append(imports, "from pydantic import Field")
	}
	return imports
}

// ReservedModules names the files IndexFiles writes into a family
// directory, so no schema can claim them as model modules.
func (t *Translator) ReservedModules() []string {
	return []string{"__init__", "base"}
}

// IndexFiles renders one family's __init__.py plus the shared base module
// every generated class imports from.
func (t *Translator) IndexFiles(family jschema.Family, entries []modindex.Entry) ([]translate.File, error) {
	base, err := tmplFS.ReadFile("base.py")
	if err != nil {
		return nil, fmt.Errorf("failed to read base module: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.ExecuteTemplate(&buf, "init.py.tmpl", struct {
		Family  jschema.Family
		Label   string
		Entries []modindex.Entry
	}{Family: family, Label: family.Label(), Entries: entries})
	if err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}

	return []translate.File{
		{Name: "__init__.py", Data: buf.Bytes()},
		{Name: "base.py", Data: base},
	}, nil
}

// RootFiles renders the models package __init__.py: family subpackage
// imports plus one export line per model. Names shared across families come
// back family-prefixed from the index, so the Common and the Native model
// import side by side.
func (t *Translator) RootFiles(exports []modindex.Export) ([]translate.File, error) {
	var families []string
	seen := make(map[jschema.Family]struct{})
	for _, e := range exports {
		if _, ok := seen[e.Family]; ok {
			continue
		}
		seen[e.Family] = struct{}{}
		families = append(families, string(e.Family))
	}

	type exportLine struct {
		Import string
		Name   string
	}
	lines := make([]exportLine, 0, len(exports))
	for _, e := range exports {
		line := exportLine{Name: e.Name}
		if e.Aliased {
			line.Import = fmt.Sprintf("from .%s.%s import %s as %s", e.Family, e.Module, e.Model, e.Name)
		} else {
			line.Import = fmt.Sprintf("from .%s.%s import %s", e.Family, e.Module, e.Model)
		}
		lines = append(lines, line)
	}

	var buf bytes.Buffer
	err := tmpl.ExecuteTemplate(&buf, "models_init.py.tmpl", struct {
		Groups   string
		Families []string
		Exports  []exportLine
	}{Groups: strings.Join(families, ", "), Families: families, Exports: lines})
	if err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}

	return []translate.File{{Name: "__init__.py", Data: buf.Bytes()}}, nil
}
