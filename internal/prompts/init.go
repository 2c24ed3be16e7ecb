// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Equinor ASA

package prompts

import (
	"github.com/charmbracelet/huh"
)

// RunInitForm runs the interactive form for the init command.
// It fills the provided pointers with user input; family directory inputs
// left empty mean the family is not part of this project.
func RunInitForm(commonDir, nativeDir, output, target *string, targets []string) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Common Model schema directory").
				Description("Leave empty to skip this family").
				Placeholder("./schemas/common").
				Value(commonDir),
			huh.NewInput().
				Title("Native Model schema directory").
				Description("Leave empty to skip this family").
				Placeholder("./schemas/native").
				Value(nativeDir),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Output directory").
				Placeholder("./sdk").
				Value(output),
			TargetSelect(target, targets),
		),
	).WithTheme(Theme()).Run()
}

// TargetSelect returns a select field for choosing an emission target.
func TargetSelect(value *string, targets []string) *huh.Select[string] {
	options := make([]huh.Option[string], len(targets))
	for i, t := range targets {
		options[i] = huh.NewOption(t, t)
	}
	return huh.NewSelect[string]().
		Title("Emission target").
		Options(options...).
		Value(value)
}
