// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Equinor ASA

package jschema

import (
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// CombinedFileName is the single-file corpus export: a root object mapping
// schema name → schema document. Load prefers it when present; LoadDir
// skips it.
const CombinedFileName = "all_schemas.json"

// ParseError reports a schema document that could not be turned into a
// Document: unreadable syntax, a non-object root, or a missing properties
// block. One ParseError aborts only its own schema.
type ParseError struct {
	// Path is the source file, with "#<name>" appended for entries of a
	// combined export.
	Path   string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("parse %s: %s", e.Path, e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Loader reads the schema documents of one family from a filesystem.
type Loader struct {
	fsys   fs.FS
	family Family
}

// NewLoader creates a Loader that reads from the given filesystem.
func NewLoader(fsys fs.FS, family Family) *Loader {
	return &Loader{fsys: fsys, family: family}
}

func (l *Loader) readFile(filePath string) ([]byte, error) {
	f, err := l.fsys.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	return io.ReadAll(f)
}

func decodeSchema(data []byte, filePath string) (*Schema, map[string][]string, error) {
	var schema Schema

	switch {
	case strings.HasSuffix(filePath, ".yaml") || strings.HasSuffix(filePath, ".yml"):
		if err := yaml.Unmarshal(data, &schema); err != nil {
			return nil, nil, err
		}
		var root yaml.Node
		if err := yaml.Unmarshal(data, &root); err != nil {
			return nil, nil, err
		}
		return &schema, yamlKeyOrder(&root), nil
	case strings.HasSuffix(filePath, ".json"):
		if err := json.Unmarshal(data, &schema); err != nil {
			return nil, nil, err
		}
		return &schema, extractKeyOrder(data), nil
	default:
		return nil, nil, fmt.Errorf("format not supported")
	}
}

// LoadFile loads and parses one schema file.
// The format is determined from the file extension. The document name is
// the schema's title, falling back to the file stem.
func (l *Loader) LoadFile(filePath string) (*Document, error) {
	data, err := l.readFile(filePath)
	if err != nil {
		return nil, err
	}

	schema, keyOrder, err := decodeSchema(data, filePath)
	if err != nil {
		return nil, &ParseError{Path: filePath, Reason: "invalid schema document", Err: err}
	}
	applyKeyOrder(schema, keyOrder, "")

	title := schema.Title
	if title == "" {
		base := path.Base(filePath)
		title = strings.TrimSuffix(base, path.Ext(base))
	}

	return newDocument(title, filePath, l.family, schema)
}

// LoadDir loads every schema file under dir, skipping the combined export.
// Loading is fail-soft: a document that cannot be parsed is reported in the
// returned error slice while the rest of the corpus still loads. Documents
// come back in lexical path order.
func (l *Loader) LoadDir(dir string) ([]*Document, []error) {
	var (
		docs []*Document
		errs []error
	)

	walkErr := fs.WalkDir(l.fsys, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSchemaFile(p) || path.Base(p) == CombinedFileName {
			return nil
		}
		doc, err := l.LoadFile(p)
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		docs = append(docs, doc)
		return nil
	})
	if walkErr != nil {
		errs = append(errs, walkErr)
	}

	return docs, errs
}

// LoadCombined loads a combined corpus export. The map key is the document
// name even when the embedded title disagrees. Entries come back in the
// file's key order; per-entry failures are collected, not fatal.
func (l *Loader) LoadCombined(filePath string) ([]*Document, []error) {
	data, err := l.readFile(filePath)
	if err != nil {
		return nil, []error{err}
	}

	parsed := make(map[string]*Schema)
	var keyOrder map[string][]string

	switch {
	case strings.HasSuffix(filePath, ".yaml") || strings.HasSuffix(filePath, ".yml"):
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			return nil, []error{&ParseError{Path: filePath, Reason: "invalid combined schema file", Err: err}}
		}
		var root yaml.Node
		if err := yaml.Unmarshal(data, &root); err != nil {
			return nil, []error{&ParseError{Path: filePath, Reason: "invalid combined schema file", Err: err}}
		}
		keyOrder = yamlKeyOrder(&root)
	case strings.HasSuffix(filePath, ".json"):
		if err := json.Unmarshal(data, &parsed); err != nil {
			return nil, []error{&ParseError{Path: filePath, Reason: "invalid combined schema file", Err: err}}
		}
		keyOrder = extractKeyOrder(data)
	default:
		return nil, []error{&ParseError{Path: filePath, Reason: "format not supported"}}
	}

	var (
		docs []*Document
		errs []error
	)
	for _, name := range topLevelKeys(keyOrder, parsed) {
		entryPath := filePath + "#" + name
		schema := parsed[name]
		if schema == nil {
			errs = append(errs, &ParseError{Path: entryPath, Reason: "schema entry is null"})
			continue
		}
		applyKeyOrder(schema, keyOrder, name)
		doc, err := newDocument(name, entryPath, l.family, schema)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		docs = append(docs, doc)
	}

	return docs, errs
}

// Load loads the family corpus rooted at dir, preferring the combined
// export when present and falling back to individual files otherwise.
func (l *Loader) Load(dir string) ([]*Document, []error) {
	combined := path.Join(dir, CombinedFileName)
	if _, err := fs.Stat(l.fsys, combined); err == nil {
		return l.LoadCombined(combined)
	}
	return l.LoadDir(dir)
}

func isSchemaFile(p string) bool {
	switch path.Ext(p) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}
