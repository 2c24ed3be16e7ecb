// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Equinor ASA

package commands

import (
	"github.com/spf13/cobra"

	"github.com/equinor/dsis-schemas/internal/prompts"
	"github.com/equinor/dsis-schemas/internal/version"
)

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show the dsisgen version",
		Example: `  # Show the CLI version
  dsisgen version`,
		RunE: func(cmd *cobra.Command, args []string) error {
			prompts.PrintResult([]prompts.ResultField{
				{Label: "Version", Value: version.Version},
			}, "")
			return nil
		},
	}
	return cmd
}
