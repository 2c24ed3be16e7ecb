// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Equinor ASA

package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/equinor/dsis-schemas/internal/jschema"
)

const wellSchema = `{
	"title": "OpenWorksCommonModel.Well",
	"type": "object",
	"properties": {
		"well_id": {"type": "string", "maxLength": 40},
		"well_name": {"type": "string"}
	},
	"required": ["well_id"]
}`

func writeProject(t *testing.T, configBody string, schemas map[string]string) {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(configBody), 0o644))
	for path, body := range schemas {
		full := filepath.Join(dir, path)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(body), 0o644))
	}
}

func TestLoad_NotInitialized(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := Load(context.Background())
	require.ErrorIs(t, err, ErrNotInitialized)
}

func TestLoad_InvalidConfig(t *testing.T) {
	writeProject(t, "version: 99\nfamilies:\n  common: ./schemas\n", nil)

	_, err := Load(context.Background())
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_MissingSchemaDir(t *testing.T) {
	writeProject(t, "version: 1\nfamilies:\n  common: ./nowhere\n", nil)

	_, err := Load(context.Background())
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_NoSchemas(t *testing.T) {
	writeProject(t, "version: 1\nfamilies:\n  common: ./schemas\n", nil)
	require.NoError(t, os.MkdirAll("schemas", 0o755))

	_, err := Load(context.Background())
	require.ErrorIs(t, err, ErrNoSchemas)
}

func TestLoad_Success(t *testing.T) {
	writeProject(t, "version: 1\nfamilies:\n  common: ./schemas/common\n", map[string]string{
		"schemas/common/well.json": wellSchema,
	})

	ctx, err := Load(context.Background())
	require.NoError(t, err)

	sessionCtx := From(ctx)
	require.NotNil(t, sessionCtx)
	assert.Empty(t, sessionCtx.LoadErrors)
	assert.Equal(t, 1, sessionCtx.Registry.Len())

	docs := sessionCtx.Registry.Family(jschema.FamilyCommon)
	require.Len(t, docs, 1)
	assert.Equal(t, "OpenWorksCommonModel.Well", docs[0].Title)
	assert.True(t, docs[0].IsRequired("well_id"))
}

func TestLoad_FailSoftOnBrokenSchema(t *testing.T) {
	writeProject(t, "version: 1\nfamilies:\n  common: ./schemas/common\n", map[string]string{
		"schemas/common/well.json":   wellSchema,
		"schemas/common/broken.json": "{not json",
	})

	ctx, err := Load(context.Background())
	require.NoError(t, err)

	sessionCtx := From(ctx)
	require.NotNil(t, sessionCtx)
	assert.Len(t, sessionCtx.LoadErrors, 1)
	assert.Equal(t, 1, sessionCtx.Registry.Len())
}

func TestFrom_Empty(t *testing.T) {
	assert.Nil(t, From(context.Background()))
}
