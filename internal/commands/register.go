// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Equinor ASA

// Package commands contains all CLI command definitions.
package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root command for the CLI. Emission
// targets register themselves with the translate registry on import.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dsisgen",
		Short: "Generate typed data models from DSIS JSON Schema corpora",
		Long: `dsisgen compiles the OpenWorks Common Model and OW5000 Native Model
JSON Schema corpora into statically-typed, validating data-model source
files, one model per schema.`,
	}

	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newDescribeCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}
