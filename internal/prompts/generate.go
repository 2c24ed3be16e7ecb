// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Equinor ASA

package prompts

import (
	"github.com/charmbracelet/huh"
)

// RunGenerateForm prompts for any generate values still missing after flag
// parsing. Values already filled in are not asked again.
func RunGenerateForm(families *[]string, target, output *string, askOutput bool, available, targets []string) error {
	var groups []*huh.Group

	if len(*families) == 0 {
		options := make([]huh.Option[string], len(available))
		for i, f := range available {
			options[i] = huh.NewOption(f, f).Selected(true)
		}
		groups = append(groups, huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Schema families").
				Options(options...).
				Value(families),
		))
	}

	if *target == "" {
		groups = append(groups, huh.NewGroup(TargetSelect(target, targets)))
	}

	if askOutput {
		groups = append(groups, huh.NewGroup(
			huh.NewInput().
				Title("Output directory").
				Placeholder("./sdk").
				Validate(requiredValidator("output directory")).
				Value(output),
		))
	}

	if len(groups) == 0 {
		return nil
	}
	return huh.NewForm(groups...).WithTheme(Theme()).Run()
}
