// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Equinor ASA

package jschema

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrDuplicateID reports two documents in one family declaring the same $id.
var ErrDuplicateID = errors.New("duplicate schema id")

// ResolutionError reports a $ref whose target exists in no family registry.
// It is fatal for the referencing schema only.
type ResolutionError struct {
	// SchemaID identifies the referencing schema ($id, or title when the
	// schema has no $id).
	SchemaID string
	// Property is the property holding the ref. Filled by the caller that
	// knows which property it was resolving; empty for whole-tree checks.
	Property string
	Ref      string
}

func (e *ResolutionError) Error() string {
	if e.Property != "" {
		return fmt.Sprintf("schema %s: property %q: cannot resolve $ref %q", e.SchemaID, e.Property, e.Ref)
	}
	return fmt.Sprintf("schema %s: cannot resolve $ref %q", e.SchemaID, e.Ref)
}

// Registry indexes loaded documents by $id within each family and resolves
// $ref pointers across the corpus. Reference targets are looked up lazily by
// name, never inlined, so reference cycles between models are harmless.
// Safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	byID  map[Family]map[string]*Document
	byKey map[Family]map[string]*Document
	docs  map[Family][]*Document
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	r := &Registry{
		byID:  make(map[Family]map[string]*Document),
		byKey: make(map[Family]map[string]*Document),
		docs:  make(map[Family][]*Document),
	}
	for _, f := range Families() {
		r.byID[f] = make(map[string]*Document)
		r.byKey[f] = make(map[string]*Document)
	}
	return r
}

// Add registers a document under its family. A second document with the
// same $id in the same family is rejected with ErrDuplicateID; the same $id
// in the other family is legitimate (families share no namespace).
func (r *Registry) Add(doc *Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.byID[doc.Family] == nil {
		r.byID[doc.Family] = make(map[string]*Document)
		r.byKey[doc.Family] = make(map[string]*Document)
	}

	if doc.ID != "" {
		if existing, ok := r.byID[doc.Family][doc.ID]; ok {
			return fmt.Errorf("%w: %q declared by both %s and %s", ErrDuplicateID, doc.ID, existing.Path, doc.Path)
		}
		r.byID[doc.Family][doc.ID] = doc
	}

	// Secondary key: the underscored title, which is what a ref name
	// reduces to when the target declares no $id.
	if _, ok := r.byKey[doc.Family][doc.SQLTable]; !ok {
		r.byKey[doc.Family][doc.SQLTable] = doc
	}
	r.docs[doc.Family] = append(r.docs[doc.Family], doc)

	return nil
}

// AddAll registers docs, collecting per-document failures.
func (r *Registry) AddAll(docs []*Document) []error {
	var errs []error
	for _, doc := range docs {
		if err := r.Add(doc); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// Lookup returns the document registered under id in family f.
func (r *Registry) Lookup(f Family, id string) (*Document, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.byID[f][id]
	return doc, ok
}

// Resolve finds the document a $ref points at. The referencing document's
// own family is searched first, then the remaining families, so a family
// that defines its own "Well" never accidentally picks up the other one.
// A ref matches on exact $id first, then on its stripped name against the
// underscored title.
func (r *Registry) Resolve(from *Document, ref string) (*Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	families := []Family{from.Family}
	for _, f := range Families() {
		if f != from.Family {
			families = append(families, f)
		}
	}

	key := RefName(ref)
	for _, f := range families {
		if doc, ok := r.byID[f][ref]; ok {
			return doc, nil
		}
		if doc, ok := r.byKey[f][key]; ok {
			return doc, nil
		}
	}

	id := from.ID
	if id == "" {
		id = from.Title
	}
	return nil, &ResolutionError{SchemaID: id, Ref: ref}
}

// Family returns family f's documents sorted by title.
func (r *Registry) Family(f Family) []*Document {
	r.mu.RLock()
	defer r.mu.RUnlock()

	docs := append([]*Document(nil), r.docs[f]...)
	sort.Slice(docs, func(i, j int) bool { return docs[i].Title < docs[j].Title })
	return docs
}

// Len returns the total number of registered documents.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, docs := range r.docs {
		n += len(docs)
	}
	return n
}

// VerifyRefs walks doc's schema tree and resolves every internal $ref,
// returning one ResolutionError per dangling reference.
func (r *Registry) VerifyRefs(doc *Document) []error {
	var errs []error
	for s := range Traverse(doc.Schema(), nil) {
		if s.Ref == "" || !IsInternalRef(s.Ref) {
			continue
		}
		if _, err := r.Resolve(doc, s.Ref); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
