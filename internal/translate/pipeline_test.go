// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Equinor ASA

package translate

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/equinor/dsis-schemas/internal/compile"
	"github.com/equinor/dsis-schemas/internal/jschema"
	"github.com/equinor/dsis-schemas/internal/modindex"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	refUnitJSON = `{
		"$id": "#/definitions/OpenWorksCommonModel_RefUnit",
		"title": "OpenWorksCommonModel.RefUnit",
		"type": "object",
		"properties": {
			"unitid": {"type": "integer", "sqlType": "NUMBER(10)"},
			"name": {"type": "string", "maxLength": 40}
		},
		"required": ["unitid"]
	}`

	commonWellJSON = `{
		"$id": "#/definitions/OpenWorksCommonModel_Well",
		"title": "OpenWorksCommonModel.Well",
		"type": "object",
		"properties": {
			"wellid": {"type": "string", "maxLength": 40},
			"basin_name": {"type": "string", "maxLength": 64}
		},
		"required": ["wellid"]
	}`

	nativeWellJSON = `{
		"$id": "#/definitions/OW5000_Well",
		"title": "OW5000.Well",
		"type": "object",
		"properties": {
			"well_id": {"type": "integer"},
			"common_well_id": {"type": "string"}
		},
		"required": ["well_id"]
	}`

	brokenJSON = `{
		"$id": "#/definitions/OW5000_Broken",
		"title": "OW5000.Broken",
		"type": "object",
		"properties": {
			"shape": {"type": "geometry"}
		}
	}`
)

// loadCorpus builds a registry from inline schema sources keyed by family
// and file name.
func loadCorpus(t *testing.T, families map[jschema.Family]map[string]string) *jschema.Registry {
	t.Helper()

	registry := jschema.NewRegistry()
	for family, sources := range families {
		fsys := fstest.MapFS{}
		for name, body := range sources {
			fsys[name] = &fstest.MapFile{Data: []byte(body)}
		}
		docs, errs := jschema.NewLoader(fsys, family).Load(".")
		require.Empty(t, errs)
		require.Empty(t, registry.AddAll(docs))
	}
	return registry
}

func TestRun(t *testing.T) {
	registry := loadCorpus(t, map[jschema.Family]map[string]string{
		jschema.FamilyCommon: {"ref_unit.json": refUnitJSON, "well.json": commonWellJSON},
		jschema.FamilyNative: {"well.json": nativeWellJSON},
	})

	out := t.TempDir()
	report, err := Run(context.Background(), Options{
		Registry:   registry,
		Translator: &stubTranslator{name: "stub"},
		OutputDir:  out,
		Workers:    2,
	})
	require.NoError(t, err)
	require.NoError(t, report.Err())

	assert.Equal(t, 3, report.Models)
	assert.Empty(t, report.Failures)
	assert.Equal(t, []string{
		filepath.Join(out, "models", "common", "ref_unit.txt"),
		filepath.Join(out, "models", "common", "well.txt"),
		filepath.Join(out, "models", "native", "well.txt"),
	}, report.Files)

	data, err := os.ReadFile(filepath.Join(out, "models", "common", "ref_unit.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "model RefUnit (OpenWorksCommonModel.RefUnit)")
	assert.Contains(t, string(data), "unitid integer")
	assert.Contains(t, string(data), "name text")
}

func TestRun_IndexFiles(t *testing.T) {
	registry := loadCorpus(t, map[jschema.Family]map[string]string{
		jschema.FamilyCommon: {"ref_unit.json": refUnitJSON, "well.json": commonWellJSON},
		jschema.FamilyNative: {"well.json": nativeWellJSON},
	})

	out := t.TempDir()
	report, err := Run(context.Background(), Options{
		Registry:   registry,
		Translator: &indexingTranslator{stubTranslator{name: "stub-index"}},
		OutputDir:  out,
	})
	require.NoError(t, err)
	require.NoError(t, report.Err())

	common, err := os.ReadFile(filepath.Join(out, "models", "common", "index.txt"))
	require.NoError(t, err)
	assert.Equal(t, "ref_unit: RefUnit\nwell: Well\n", string(common))

	native, err := os.ReadFile(filepath.Join(out, "models", "native", "index.txt"))
	require.NoError(t, err)
	assert.Equal(t, "well: Well\n", string(native))

	// Well exists in both families, so the root index carries the
	// family-prefixed names.
	root, err := os.ReadFile(filepath.Join(out, "models", "root.txt"))
	require.NoError(t, err)
	assert.Equal(t, "common/ref_unit: RefUnit\ncommon/well: CommonWell\nnative/well: NativeWell\n", string(root))
}

func TestRun_FailSoft(t *testing.T) {
	registry := loadCorpus(t, map[jschema.Family]map[string]string{
		jschema.FamilyCommon: {"ref_unit.json": refUnitJSON},
		jschema.FamilyNative: {"well.json": nativeWellJSON, "broken.json": brokenJSON},
	})

	out := t.TempDir()
	report, err := Run(context.Background(), Options{
		Registry:   registry,
		Translator: &indexingTranslator{stubTranslator{name: "stub-failsoft"}},
		OutputDir:  out,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, report.Models)
	require.Len(t, report.Failures, 1)

	failure := report.Failures["#/definitions/OW5000_Broken"]
	require.Error(t, failure)
	var mapping *compile.TypeMappingError
	require.ErrorAs(t, failure, &mapping)
	assert.Equal(t, "geometry", mapping.JSONType)

	require.Error(t, report.Err())
	assert.Contains(t, report.Err().Error(), "1 of 3")

	// The failed schema is withdrawn from the index.
	native, readErr := os.ReadFile(filepath.Join(out, "models", "native", "index.txt"))
	require.NoError(t, readErr)
	assert.Equal(t, "well: Well\n", string(native))
	assert.NoFileExists(t, filepath.Join(out, "models", "native", "broken.txt"))
}

func TestRun_TranslateFailure(t *testing.T) {
	registry := loadCorpus(t, map[jschema.Family]map[string]string{
		jschema.FamilyNative: {"well.json": nativeWellJSON},
	})

	out := t.TempDir()
	report, err := Run(context.Background(), Options{
		Registry:   registry,
		Translator: &stubTranslator{name: "stub-render", failTitle: "OW5000.Well"},
		OutputDir:  out,
	})
	require.NoError(t, err)

	assert.Zero(t, report.Models)
	require.Len(t, report.Failures, 1)
	assert.ErrorContains(t, report.Failures["#/definitions/OW5000_Well"], "render failed")
}

func TestRun_FailFast(t *testing.T) {
	registry := loadCorpus(t, map[jschema.Family]map[string]string{
		jschema.FamilyCommon: {"ref_unit.json": refUnitJSON},
		jschema.FamilyNative: {"broken.json": brokenJSON},
	})

	out := t.TempDir()
	report, err := Run(context.Background(), Options{
		Registry:   registry,
		Translator: &indexingTranslator{stubTranslator{name: "stub-failfast"}},
		OutputDir:  out,
		FailFast:   true,
	})
	require.NoError(t, err)
	require.Error(t, report.Err())

	require.Len(t, report.Failures, 1)
	assert.Contains(t, report.Failures, "#/definitions/OW5000_Broken")

	// An aborted run writes no index files.
	assert.NoFileExists(t, filepath.Join(out, "models", "common", "index.txt"))
	assert.NoFileExists(t, filepath.Join(out, "models", "root.txt"))
}

func TestRun_NamingConflict(t *testing.T) {
	registry := loadCorpus(t, map[jschema.Family]map[string]string{
		jschema.FamilyNative: {
			"a.json": `{
				"$id": "#/definitions/OW5000_WellTest",
				"title": "OW5000.WellTest",
				"type": "object",
				"properties": {"well_id": {"type": "integer"}}
			}`,
			"b.json": `{
				"$id": "#/definitions/OW5000_Well_Test",
				"title": "OW5000.Well_Test",
				"type": "object",
				"properties": {"well_id": {"type": "integer"}}
			}`,
		},
	})

	out := t.TempDir()
	report, err := Run(context.Background(), Options{
		Registry:   registry,
		Translator: &stubTranslator{name: "stub-conflict"},
		OutputDir:  out,
	})
	require.NoError(t, err)

	// Titles claim in sorted order, so OW5000.WellTest wins on every run.
	assert.Equal(t, 1, report.Models)
	require.Len(t, report.Failures, 1)

	var conflict *modindex.NamingConflictError
	require.ErrorAs(t, report.Failures["#/definitions/OW5000_Well_Test"], &conflict)
	assert.Equal(t, "well_test", conflict.Module)
	assert.Equal(t, "OW5000.WellTest", conflict.First)
	assert.Equal(t, "OW5000.Well_Test", conflict.Second)

	data, err := os.ReadFile(filepath.Join(out, "models", "native", "well_test.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "model WellTest (OW5000.WellTest)")
}

func TestRun_ReservedModule(t *testing.T) {
	registry := loadCorpus(t, map[jschema.Family]map[string]string{
		jschema.FamilyNative: {
			"well.json": nativeWellJSON,
			"index.json": `{
				"$id": "#/definitions/OW5000_Index",
				"title": "OW5000.Index",
				"type": "object",
				"properties": {"index_id": {"type": "integer"}}
			}`,
		},
	})

	out := t.TempDir()
	report, err := Run(context.Background(), Options{
		Registry:   registry,
		Translator: &indexingTranslator{stubTranslator{name: "stub-reserved"}},
		OutputDir:  out,
	})
	require.NoError(t, err)

	// A schema whose module name lands on a support file fails its claim;
	// the support file is written, not the model.
	assert.Equal(t, 1, report.Models)
	require.Len(t, report.Failures, 1)

	var conflict *modindex.NamingConflictError
	require.ErrorAs(t, report.Failures["#/definitions/OW5000_Index"], &conflict)
	assert.Equal(t, "index", conflict.Module)
	assert.Empty(t, conflict.First)
	assert.Equal(t, "OW5000.Index", conflict.Second)

	// The support file and the rejected model share the file name; the
	// index content proves no model was written there first.
	native, readErr := os.ReadFile(filepath.Join(out, "models", "native", "index.txt"))
	require.NoError(t, readErr)
	assert.Equal(t, "well: Well\n", string(native))
}

func TestRun_EmptyModel(t *testing.T) {
	registry := loadCorpus(t, map[jschema.Family]map[string]string{
		jschema.FamilyNative: {
			"empty.json": `{"title": "OW5000.Empty", "type": "object", "properties": {}}`,
		},
	})

	report, err := Run(context.Background(), Options{
		Registry:   registry,
		Translator: &stubTranslator{name: "stub-empty"},
		OutputDir:  t.TempDir(),
	})
	require.NoError(t, err)

	require.Len(t, report.Failures, 1)
	var empty *compile.EmptyModelError
	require.ErrorAs(t, report.Failures["OW5000.Empty"], &empty)
}

func TestRun_Deterministic(t *testing.T) {
	families := map[jschema.Family]map[string]string{
		jschema.FamilyCommon: {"ref_unit.json": refUnitJSON, "well.json": commonWellJSON},
		jschema.FamilyNative: {"well.json": nativeWellJSON},
	}

	emit := func(workers int) map[string]string {
		out := t.TempDir()
		report, err := Run(context.Background(), Options{
			Registry:   loadCorpus(t, families),
			Translator: &indexingTranslator{stubTranslator{name: "stub-det"}},
			OutputDir:  out,
			Workers:    workers,
		})
		require.NoError(t, err)
		require.NoError(t, report.Err())
		return readTree(t, out)
	}

	first := emit(1)
	second := emit(4)
	assert.Empty(t, cmp.Diff(first, second))
}

func TestRun_OptionValidation(t *testing.T) {
	registry := jschema.NewRegistry()
	tr := &stubTranslator{name: "stub-validate"}

	_, err := Run(context.Background(), Options{Translator: tr, OutputDir: "x"})
	assert.ErrorContains(t, err, "registry")

	_, err = Run(context.Background(), Options{Registry: registry, OutputDir: "x"})
	assert.ErrorContains(t, err, "translator")

	_, err = Run(context.Background(), Options{Registry: registry, Translator: tr})
	assert.ErrorContains(t, err, "output directory")
}

func TestRun_Cancelled(t *testing.T) {
	registry := loadCorpus(t, map[jschema.Family]map[string]string{
		jschema.FamilyCommon: {"ref_unit.json": refUnitJSON},
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, Options{
		Registry:   registry,
		Translator: &stubTranslator{name: "stub-cancel"},
		OutputDir:  t.TempDir(),
	})
	assert.ErrorIs(t, err, context.Canceled)
}

// readTree returns every file under root keyed by slash-separated relative
// path.
func readTree(t *testing.T, root string) map[string]string {
	t.Helper()

	tree := make(map[string]string)
	err := fs.WalkDir(os.DirFS(root), ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, readErr := os.ReadFile(filepath.Join(root, path))
		if readErr != nil {
			return readErr
		}
		tree[path] = string(data)
		return nil
	})
	require.NoError(t, err)
	return tree
}
