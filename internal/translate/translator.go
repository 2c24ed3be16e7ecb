// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Equinor ASA

// Package translate drives model generation across a schema corpus and
// defines the interface every output target implements.
package translate

import (
	"fmt"
	"sort"

	"github.com/equinor/dsis-schemas/internal/compile"
	"github.com/equinor/dsis-schemas/internal/jschema"
	"github.com/equinor/dsis-schemas/internal/modindex"
)

// Translator defines the interface all output targets must implement.
// Implementations must be safe for concurrent use: Translate runs on
// multiple schemas at once, and identical specs must yield identical bytes.
type Translator interface {
	// Name returns the target's identifier (e.g., "pydantic", "gomodels")
	Name() string

	// Profile describes the target's identifier rules: reserved words,
	// validity, alias suffix, and field ordering
	Profile() compile.Profile

	// Resolver renders resolved field types as target type expressions
	Resolver() compile.TypeResolver

	// Translate converts one model spec to target source code
	Translate(spec *compile.ModelSpec) ([]byte, error)

	// FileExtension returns the appropriate file extension (e.g., ".py")
	FileExtension() string
}

// File is a supplementary artifact emitted alongside the generated models,
// named relative to the directory it belongs in.
type File struct {
	Name string
	Data []byte
}

// Indexer is implemented by translators that emit per-family index or
// support files and a top-level export surface.
type Indexer interface {
	// IndexFiles renders the index and support files for one family
	// directory from its claimed entries.
	IndexFiles(family jschema.Family, entries []modindex.Entry) ([]File, error)

	// RootFiles renders the files placed at the models root, covering
	// every generated model across families.
	RootFiles(exports []modindex.Export) ([]File, error)

	// ReservedModules lists the module names IndexFiles writes into each
	// family directory. They are blocked ahead of the claim pass so a
	// schema whose derived module name matches fails its claim instead of
	// having its model file overwritten by the support file.
	ReservedModules() []string
}

var translators = make(map[string]Translator)

// Register adds a translator to the registry.
func Register(t Translator) {
	translators[t.Name()] = t
}

// Get retrieves a translator by name.
func Get(name string) (Translator, error) {
	t, ok := translators[name]
	if !ok {
		return nil, fmt.Errorf("unknown translator: %s", name)
	}
	return t, nil
}

// Available returns all registered translator names, sorted.
func Available() []string {
	names := make([]string, 0, len(translators))
	for name := range translators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
