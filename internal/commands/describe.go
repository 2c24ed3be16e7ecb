// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Equinor ASA

package commands

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/equinor/dsis-schemas/internal/compile"
	"github.com/equinor/dsis-schemas/internal/jschema"
	"github.com/equinor/dsis-schemas/internal/prompts"
	"github.com/equinor/dsis-schemas/internal/session"
	"github.com/equinor/dsis-schemas/internal/translate"
)

func newDescribeCmd() *cobra.Command {
	var familyFlag string

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Show an overview of the loaded schema corpora",
		Long: `Show a summary of the project: schema counts per family, model names
shared across families, and the available emission targets.`,
		Example: `  # Describe the project
  dsisgen describe

  # One family only
  dsisgen describe --family native`,
		PreRunE: session.PreRunLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			return runDescribe(ctx, familyFlag)
		},
	}

	cmd.Flags().StringVarP(&familyFlag, "family", "f", "", "Limit the summary to one family (common, native)")

	return cmd
}

func runDescribe(ctx *session.Context, familyFlag string) error {
	var only jschema.Family
	if familyFlag != "" {
		family, ok := jschema.ParseFamily(familyFlag)
		if !ok {
			return fmt.Errorf("unknown schema family %q", familyFlag)
		}
		if _, configured := ctx.Config.Families[familyFlag]; !configured {
			return fmt.Errorf("family %q not configured in %s", familyFlag, session.ConfigFileName)
		}
		only = family
	}

	fields := []prompts.ResultField{
		{Label: "Config", Value: session.ConfigFileName},
		{Label: "Target", Value: ctx.Config.Target},
		{Label: "Output", Value: ctx.Config.Output},
	}

	names := make(map[jschema.Family]map[string]struct{})
	for _, family := range jschema.Families() {
		if only != "" && family != only {
			continue
		}
		docs := ctx.Registry.Family(family)
		if len(docs) == 0 {
			continue
		}
		names[family] = make(map[string]struct{}, len(docs))
		for _, doc := range docs {
			names[family][compile.ClassName(family, doc.Title)] = struct{}{}
		}
		fields = append(fields, prompts.ResultField{
			Label: "Schemas (" + string(family) + ")",
			Value: strconv.Itoa(len(docs)),
		})
	}

	if shared := sharedNames(names); len(shared) > 0 {
		fields = append(fields, prompts.ResultField{
			Label: "Shared model names",
			Value: strconv.Itoa(len(shared)) + " (" + strings.Join(shared, ", ") + ")",
		})
	}

	fields = append(fields, prompts.ResultField{
		Label: "Targets",
		Value: strings.Join(translate.Available(), ", "),
	})
	if n := len(ctx.LoadErrors); n > 0 {
		fields = append(fields, prompts.ResultField{
			Label: "Load failures",
			Value: strconv.Itoa(n),
		})
	}

	prompts.PrintResult(fields, "")
	return nil
}

// sharedNames returns the model names present in more than one family,
// sorted. These are the names the indexes export under family-prefixed
// aliases.
func sharedNames(names map[jschema.Family]map[string]struct{}) []string {
	counts := make(map[string]int)
	for _, set := range names {
		for name := range set {
			counts[name]++
		}
	}

	var shared []string
	for name, n := range counts {
		if n > 1 {
			shared = append(shared, name)
		}
	}
	sort.Strings(shared)
	return shared
}
