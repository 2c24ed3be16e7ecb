// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Equinor ASA

// Package session provides project context loading for CLI commands: the
// resolved configuration plus the schema registry built from the configured
// family directories.
package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/equinor/dsis-schemas/internal/config"
	"github.com/equinor/dsis-schemas/internal/jschema"
)

var (
	// ErrNotInitialized indicates no dsisgen.yaml was found in the current
	// directory.
	ErrNotInitialized = errors.New("not in a dsisgen project (dsisgen.yaml not found)")

	// ErrInvalidConfig indicates the config file exists but is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrNoSchemas indicates none of the configured family directories
	// yielded a single schema document.
	ErrNoSchemas = errors.New("no schema documents found")
)

// ConfigFileName is the name of the dsisgen configuration file.
const ConfigFileName = "dsisgen.yaml"

// contextKey is used to store Context in context.Context.
type contextKey struct{}

// Context holds the resolved project configuration and the loaded schema
// registry.
type Context struct {
	Config *config.Config

	// Registry indexes every loaded schema document by family.
	Registry *jschema.Registry

	// LoadErrors collects the per-schema failures hit while loading the
	// corpus. Loading is fail-soft: a document that cannot be parsed is
	// reported here while the rest of the corpus still loads.
	LoadErrors []error
}

// Load loads the project context from the current working directory and
// returns a new context.Context with the dsisgen Context stored in it.
func Load(ctx context.Context) (context.Context, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}

	configPath := filepath.Join(cwd, ConfigFileName)
	if _, statErr := os.Stat(configPath); os.IsNotExist(statErr) {
		return nil, ErrNotInitialized
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if validateErr := cfg.Validate(); validateErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, validateErr)
	}

	registry := jschema.NewRegistry()
	var loadErrs []error
	for _, family := range jschema.Families() {
		dir, ok := cfg.FamilyPaths()[family]
		if !ok {
			continue
		}
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(cwd, dir)
		}
		if _, statErr := os.Stat(dir); statErr != nil {
			return nil, fmt.Errorf("%w: %s schemas: %v", ErrInvalidConfig, family, statErr)
		}

		docs, errs := jschema.NewLoader(os.DirFS(dir), family).Load(".")
		loadErrs = append(loadErrs, errs...)
		loadErrs = append(loadErrs, registry.AddAll(docs)...)
	}

	if registry.Len() == 0 {
		return nil, ErrNoSchemas
	}

	sessionCtx := &Context{
		Config:     cfg,
		Registry:   registry,
		LoadErrors: loadErrs,
	}
	return context.WithValue(ctx, contextKey{}, sessionCtx), nil
}

// From extracts the dsisgen Context from a context.Context.
// Returns nil if no Context is stored.
func From(ctx context.Context) *Context {
	if sessionCtx, ok := ctx.Value(contextKey{}).(*Context); ok {
		return sessionCtx
	}
	return nil
}
