// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Equinor ASA

// Package config handles dsisgen project configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/equinor/dsis-schemas/internal/jschema"
)

// CurrentConfigVersion is the current version of the config file format.
const CurrentConfigVersion = 1

// Defaults applied when the config or the command line leaves a value out.
const (
	DefaultOutput = "./sdk"
	DefaultTarget = "pydantic"
)

// Config represents the dsisgen.yaml project configuration file.
type Config struct {
	Version int `yaml:"version"`

	// Families maps a family name ("common", "native") to the directory
	// its schema corpus is read from.
	Families map[string]string `yaml:"families"`

	// Output is the directory the generated models tree is written under.
	Output string `yaml:"output,omitempty"`

	// Target is the default emission target.
	Target string `yaml:"target,omitempty"`

	// Workers bounds the generation worker pool; 0 means one per CPU.
	Workers int `yaml:"workers,omitempty"`
}

// Load reads a Config from a file path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the Config to a file path.
func (c *Config) Save(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	return enc.Encode(c)
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	if c.Version != CurrentConfigVersion {
		return errors.New("unsupported config version")
	}
	if len(c.Families) == 0 {
		return errors.New("at least one schema family is required")
	}
	for name, dir := range c.Families {
		if _, ok := jschema.ParseFamily(name); !ok {
			return fmt.Errorf("unknown schema family %q", name)
		}
		if dir == "" {
			return fmt.Errorf("family %q has no schema directory", name)
		}
	}
	if c.Workers < 0 {
		return errors.New("workers must not be negative")
	}
	return nil
}

// FamilyPaths returns the configured families and their schema directories.
func (c *Config) FamilyPaths() map[jschema.Family]string {
	paths := make(map[jschema.Family]string, len(c.Families))
	for name, dir := range c.Families {
		if family, ok := jschema.ParseFamily(name); ok {
			paths[family] = dir
		}
	}
	return paths
}

// FamilyNames returns the configured family names, sorted.
func (c *Config) FamilyNames() []string {
	names := make([]string, 0, len(c.Families))
	for name := range c.Families {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
