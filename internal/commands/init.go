// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Equinor ASA

package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/equinor/dsis-schemas/internal/config"
	"github.com/equinor/dsis-schemas/internal/jschema"
	"github.com/equinor/dsis-schemas/internal/prompts"
	"github.com/equinor/dsis-schemas/internal/session"
	"github.com/equinor/dsis-schemas/internal/translate"
)

type initOptions struct {
	commonDir      string
	nativeDir      string
	output         string
	target         string
	nonInteractive bool
}

func newInitCmd() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new dsisgen project",
		Long: `Initialize a new dsisgen project with a dsisgen.yaml configuration file
pointing at the schema family directories.`,
		Example: `  # Interactive mode
  dsisgen init

  # Non-interactive
  dsisgen init --common ./schemas/common --native ./schemas/native --non-interactive`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(opts)
		},
	}

	cmd.Flags().StringVar(&opts.commonDir, "common", "", "Common Model schema directory")
	cmd.Flags().StringVar(&opts.nativeDir, "native", "", "Native Model schema directory")
	cmd.Flags().StringVarP(&opts.output, "output", "o", config.DefaultOutput, "Output directory for generated models")
	cmd.Flags().StringVarP(&opts.target, "target", "t", config.DefaultTarget, "Default emission target")
	cmd.Flags().BoolVar(&opts.nonInteractive, "non-interactive", false, "Run without prompts (requires --common or --native)")

	return cmd
}

func runInit(opts *initOptions) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	// Check that the current directory isn't already initialized
	configPath := filepath.Join(cwd, session.ConfigFileName)
	if _, err := os.Stat(configPath); err == nil {
		return errors.New("dsisgen.yaml already exists; project already initialized")
	}

	if opts.nonInteractive {
		if opts.commonDir == "" && opts.nativeDir == "" {
			return errors.New("non-interactive mode requires --common or --native")
		}
	} else if opts.commonDir == "" && opts.nativeDir == "" {
		if err := prompts.RunInitForm(
			&opts.commonDir,
			&opts.nativeDir,
			&opts.output,
			&opts.target,
			translate.Available(),
		); err != nil {
			return err
		}
		if opts.commonDir == "" && opts.nativeDir == "" {
			return errors.New("at least one schema family directory is required")
		}
	}

	if _, err := translate.Get(opts.target); err != nil {
		return err
	}

	cfg := config.Config{
		Version:  config.CurrentConfigVersion,
		Families: map[string]string{},
		Output:   opts.output,
		Target:   opts.target,
	}
	if opts.commonDir != "" {
		cfg.Families[string(jschema.FamilyCommon)] = opts.commonDir
	}
	if opts.nativeDir != "" {
		cfg.Families[string(jschema.FamilyNative)] = opts.nativeDir
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	for _, dir := range cfg.FamilyPaths() {
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(cwd, dir)
		}
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create schema directory: %w", err)
		}
	}

	if err := cfg.Save(configPath); err != nil {
		return fmt.Errorf("config file couldn't be saved: %w", err)
	}

	fields := []prompts.ResultField{
		{Label: "Config", Value: session.ConfigFileName},
		{Label: "Target", Value: cfg.Target},
		{Label: "Output", Value: cfg.Output},
	}
	for _, name := range cfg.FamilyNames() {
		fields = append(fields, prompts.ResultField{Label: "Schemas (" + name + ")", Value: cfg.Families[name]})
	}
	prompts.PrintResult(fields, "Initialization completed")

	return nil
}
