// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Equinor ASA

// Package modindex tracks module-name claims for generated models and
// assembles the per-family and top-level export indexes.
//
// Module names are derived from schema titles, and the derivation is not
// injective in general: two distinct titles can normalize to the same file
// name. Claims make that case an explicit error instead of a silent
// overwrite. The claim registry is the only state shared between schemas
// during a corpus run.
package modindex

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/equinor/dsis-schemas/internal/jschema"
)

// NamingConflictError reports two schema titles within one family whose
// generated models would land in the same module file, or a schema whose
// module name is reserved for a target's support file (First empty).
type NamingConflictError struct {
	Family jschema.Family
	Module string
	First  string
	Second string
}

func (e *NamingConflictError) Error() string {
	if e.First == "" {
		return fmt.Sprintf("%s schema %q maps to module %q, which is reserved for a generated support file",
			e.Family, e.Second, e.Module)
	}
	return fmt.Sprintf("%s schemas %q and %q both map to module %q",
		e.Family, e.First, e.Second, e.Module)
}

// Entry records where a generated model lives within its family package.
type Entry struct {
	// Model is the exported class or type name.
	Model string

	// Module is the destination file name, without extension.
	Module string

	// Title is the originating schema title.
	Title string

	Family jschema.Family
}

// Export is one line of the top-level export surface. Name equals Model
// unless the same model name exists in more than one family, in which case
// it carries the family prefix (CommonWell, NativeWell) so both remain
// importable side by side.
type Export struct {
	Entry

	Name    string
	Aliased bool
}

// Index is the shared naming registry for a corpus run.
type Index struct {
	mu       sync.Mutex
	modules  map[jschema.Family]map[string]string
	reserved map[jschema.Family]map[string]struct{}
	entries  map[jschema.Family][]Entry
}

func New() *Index {
	x := &Index{
		modules:  make(map[jschema.Family]map[string]string),
		reserved: make(map[jschema.Family]map[string]struct{}),
		entries:  make(map[jschema.Family][]Entry),
	}
	for _, f := range jschema.Families() {
		x.modules[f] = make(map[string]string)
		x.reserved[f] = make(map[string]struct{})
	}
	return x
}

// Reserve blocks module within family for a target's own support file
// (base.py, __init__.py, index.go). Reserved modules produce no index entry
// and cannot be claimed or released; a schema landing on one fails its
// claim. Reserving the same module twice is a no-op.
func (x *Index) Reserve(family jschema.Family, module string) {
	x.mu.Lock()
	defer x.mu.Unlock()

	reserved, ok := x.reserved[family]
	if !ok {
		reserved = make(map[string]struct{})
		x.reserved[family] = reserved
	}
	reserved[module] = struct{}{}
}

// Claim takes module for title within family and records the index entry.
// A second claim on the same module by a different title fails with
// NamingConflictError naming both titles; the first claim stands. A claim
// on a module blocked by Reserve fails the same way.
func (x *Index) Claim(family jschema.Family, module, model, title string) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if _, taken := x.reserved[family][module]; taken {
		return &NamingConflictError{Family: family, Module: module, Second: title}
	}

	modules, ok := x.modules[family]
	if !ok {
		modules = make(map[string]string)
		x.modules[family] = modules
	}
	if first, taken := modules[module]; taken {
		return &NamingConflictError{Family: family, Module: module, First: first, Second: title}
	}
	modules[module] = title

	x.entries[family] = append(x.entries[family], Entry{
		Model:  model,
		Module: module,
		Title:  title,
		Family: family,
	})
	return nil
}

// Release withdraws a prior claim so the index only lists models that were
// actually generated. Claims are all placed before generation starts, so a
// released name is never reused.
func (x *Index) Release(family jschema.Family, module string) {
	x.mu.Lock()
	defer x.mu.Unlock()

	if modules, ok := x.modules[family]; ok {
		delete(modules, module)
	}
	entries := x.entries[family]
	for i, e := range entries {
		if e.Module == module {
			x.entries[family] = append(entries[:i], entries[i+1:]...)
			return
		}
	}
}

// Family returns the claimed entries for one family, sorted by module name.
func (x *Index) Family(f jschema.Family) []Entry {
	x.mu.Lock()
	defer x.mu.Unlock()

	entries := make([]Entry, len(x.entries[f]))
	copy(entries, x.entries[f])
	sort.Slice(entries, func(i, j int) bool { return entries[i].Module < entries[j].Module })
	return entries
}

// Families returns the families that hold at least one entry, in canonical
// order.
func (x *Index) Families() []jschema.Family {
	x.mu.Lock()
	defer x.mu.Unlock()

	var fams []jschema.Family
	for _, f := range jschema.Families() {
		if len(x.entries[f]) > 0 {
			fams = append(fams, f)
		}
	}
	return fams
}

// Len returns the total number of claimed entries across all families.
func (x *Index) Len() int {
	x.mu.Lock()
	defer x.mu.Unlock()

	n := 0
	for _, entries := range x.entries {
		n += len(entries)
	}
	return n
}

// Exports enumerates every claimed model as a top-level export. Model names
// that appear in a single family export under their own name; names shared
// across families export under family-prefixed aliases.
func (x *Index) Exports() []Export {
	x.mu.Lock()
	defer x.mu.Unlock()

	seen := make(map[string]int)
	for _, f := range jschema.Families() {
		for _, e := range x.entries[f] {
			seen[e.Model]++
		}
	}

	var exports []Export
	for _, f := range jschema.Families() {
		entries := make([]Entry, len(x.entries[f]))
		copy(entries, x.entries[f])
		sort.Slice(entries, func(i, j int) bool { return entries[i].Module < entries[j].Module })

		for _, e := range entries {
			exp := Export{Entry: e, Name: e.Model}
			if seen[e.Model] > 1 {
				exp.Name = exportPrefix(f) + e.Model
				exp.Aliased = true
			}
			exports = append(exports, exp)
		}
	}
	return exports
}

func exportPrefix(f jschema.Family) string {
	s := string(f)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
