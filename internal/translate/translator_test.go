// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Equinor ASA

package translate

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/equinor/dsis-schemas/internal/compile"
	"github.com/equinor/dsis-schemas/internal/jschema"
	"github.com/equinor/dsis-schemas/internal/modindex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubResolver renders types as bare kind names.
type stubResolver struct{}

func (stubResolver) PrimitiveType(kind compile.Kind) string { return kind.String() }

func (stubResolver) ArrayType(elemType string) string { return "list[" + elemType + "]" }

func (stubResolver) RefType(target *compile.RefTarget) string { return target.Name }

func (stubResolver) EnrichField(*compile.ResolvedField) {}

// stubTranslator emits one line per field and can be told to fail on a
// specific schema title.
type stubTranslator struct {
	name      string
	failTitle string
}

func (s *stubTranslator) Name() string { return s.name }

func (s *stubTranslator) Profile() compile.Profile { return compile.PythonProfile() }

func (s *stubTranslator) Resolver() compile.TypeResolver { return stubResolver{} }

func (s *stubTranslator) Translate(spec *compile.ModelSpec) ([]byte, error) {
	if s.failTitle != "" && spec.Title == s.failTitle {
		return nil, errors.New("render failed")
	}
	var b strings.Builder
	fmt.Fprintf(&b, "model %s (%s)\n", spec.Name, spec.Title)
	for _, f := range spec.Fields {
		fmt.Fprintf(&b, "%s %s\n", f.Identifier, f.TypeExpr)
	}
	return []byte(b.String()), nil
}

func (s *stubTranslator) FileExtension() string { return ".txt" }

// indexingTranslator additionally emits per-family and root index files.
type indexingTranslator struct {
	stubTranslator
}

func (ix *indexingTranslator) ReservedModules() []string { return []string{"index"} }

func (ix *indexingTranslator) IndexFiles(family jschema.Family, entries []modindex.Entry) ([]File, error) {
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%s: %s\n", e.Module, e.Model)
	}
	return []File{{Name: "index.txt", Data: []byte(b.String())}}, nil
}

func (ix *indexingTranslator) RootFiles(exports []modindex.Export) ([]File, error) {
	var b strings.Builder
	for _, e := range exports {
		fmt.Fprintf(&b, "%s/%s: %s\n", e.Family, e.Module, e.Name)
	}
	return []File{{Name: "root.txt", Data: []byte(b.String())}}, nil
}

func TestRegister(t *testing.T) {
	tr := &stubTranslator{name: "stub-reg"}
	Register(tr)

	got, err := Get("stub-reg")
	require.NoError(t, err)
	assert.Same(t, tr, got)
	assert.Contains(t, Available(), "stub-reg")
}

func TestGet_Unknown(t *testing.T) {
	_, err := Get("no-such-target")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown translator")
}

func TestAvailable_Sorted(t *testing.T) {
	Register(&stubTranslator{name: "zz-stub"})
	Register(&stubTranslator{name: "aa-stub"})

	names := Available()
	assert.True(t, sort.StringsAreSorted(names), "expected sorted names, got %v", names)
}
