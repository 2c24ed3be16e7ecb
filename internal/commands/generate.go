// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Equinor ASA

package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/equinor/dsis-schemas/internal/config"
	"github.com/equinor/dsis-schemas/internal/jschema"
	"github.com/equinor/dsis-schemas/internal/prompts"
	"github.com/equinor/dsis-schemas/internal/session"
	"github.com/equinor/dsis-schemas/internal/translate"
)

type generateOptions struct {
	family   string
	all      bool
	target   string
	output   string
	workers  int
	failFast bool
}

func newGenerateCmd() *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate model source files from the schema corpora",
		Long: fmt.Sprintf(`Generate one model source file per schema, grouped by family, plus the
per-family and top-level export indexes.

Available targets: %s`, strings.Join(translate.Available(), ", ")),
		Example: `  # Interactive mode
  dsisgen generate

  # Generate every configured family
  dsisgen generate --all --target pydantic

  # One family, custom output
  dsisgen generate --family native --target gomodels --output ./sdk

  # Bounded worker pool, stop at the first failing schema
  dsisgen generate --all --workers 4 --fail-fast`,
		PreRunE: session.PreRunLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.family, "family", "f", "", "Family name(s), comma-separated (common, native)")
	cmd.Flags().BoolVarP(&opts.all, "all", "a", false, "Generate every configured family")
	cmd.Flags().StringVarP(&opts.target, "target", "t", "", fmt.Sprintf("Emission target (%s)", strings.Join(translate.Available(), ", ")))
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output directory (default from dsisgen.yaml)")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "Generation worker pool size (0 = one per CPU)")
	cmd.Flags().BoolVar(&opts.failFast, "fail-fast", false, "Stop at the first failing schema")

	return cmd
}

func runGenerate(cmd *cobra.Command, opts *generateOptions) error {
	ctx, err := session.RequireFromCommand(cmd)
	if err != nil {
		return err
	}

	// Validate mutually exclusive flags
	if opts.all && opts.family != "" {
		return errors.New("--all and --family are mutually exclusive")
	}

	// Resolve selected families from flags
	var selected []string
	if opts.all {
		selected = ctx.Config.FamilyNames()
	} else if opts.family != "" {
		for _, name := range strings.Split(opts.family, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			if _, ok := ctx.Config.Families[name]; !ok {
				return fmt.Errorf("family %q not configured in %s", name, session.ConfigFileName)
			}
			selected = append(selected, name)
		}
	}

	target := opts.target
	if target == "" {
		target = ctx.Config.Target
	}
	output := opts.output
	if output == "" {
		output = ctx.Config.Output
	}
	if output == "" {
		output = config.DefaultOutput
	}
	workers := opts.workers
	if workers == 0 {
		workers = ctx.Config.Workers
	}

	// Prompt for any values still missing
	err = prompts.RunGenerateForm(&selected, &target, &output, false, ctx.Config.FamilyNames(), translate.Available())
	if err != nil {
		return err
	}
	if len(selected) == 0 {
		return errors.New("no families selected")
	}

	translator, err := translate.Get(target)
	if err != nil {
		return fmt.Errorf("unsupported target %q. Available targets: %s",
			target, strings.Join(translate.Available(), ", "))
	}

	registry, err := familyRegistry(ctx, selected)
	if err != nil {
		return err
	}

	fmt.Printf("Generating %d schema(s) to %s...\n", registry.Len(), target)

	report, err := translate.Run(cmd.Context(), translate.Options{
		Registry:   registry,
		Translator: translator,
		OutputDir:  output,
		Workers:    workers,
		FailFast:   opts.failFast,
	})
	if err != nil {
		return err
	}

	prompts.PrintResult([]prompts.ResultField{
		{Label: "Target", Value: translator.Name()},
		{Label: "Output", Value: output},
		{Label: "Families", Value: strings.Join(selected, ", ")},
		{Label: "Models", Value: strconv.Itoa(report.Models)},
		{Label: "Files", Value: strconv.Itoa(len(report.Files))},
	}, "")

	var failures []prompts.ResultField
	for _, loadErr := range ctx.LoadErrors {
		failures = append(failures, prompts.ResultField{Label: "load", Value: loadErr.Error()})
	}
	for _, id := range report.FailedIDs() {
		failures = append(failures, prompts.ResultField{Label: id, Value: report.Failures[id].Error()})
	}
	if len(failures) > 0 {
		prompts.PrintFailures(failures)
	}

	if err := report.Err(); err != nil {
		return err
	}
	if n := len(ctx.LoadErrors); n > 0 {
		return fmt.Errorf("failed to load %d schema document(s)", n)
	}
	return nil
}

// familyRegistry narrows the session registry to the selected families.
func familyRegistry(ctx *session.Context, selected []string) (*jschema.Registry, error) {
	if len(selected) == len(ctx.Config.Families) {
		return ctx.Registry, nil
	}

	registry := jschema.NewRegistry()
	for _, name := range selected {
		family, ok := jschema.ParseFamily(name)
		if !ok {
			return nil, fmt.Errorf("unknown schema family %q", name)
		}
		if errs := registry.AddAll(ctx.Registry.Family(family)); len(errs) > 0 {
			return nil, errs[0]
		}
	}
	return registry, nil
}
