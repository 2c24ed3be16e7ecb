// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Equinor ASA

// Command gendocs generates markdown documentation for the dsisgen CLI.
//
// Usage:
//
//	go run ./cmd/gendocs [output-dir]
//
// Default output directory is ./docs/cli.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/equinor/dsis-schemas/internal/commands"

	// Import translators to auto-register
	_ "github.com/equinor/dsis-schemas/internal/translate/gomodels"
	_ "github.com/equinor/dsis-schemas/internal/translate/pydantic"
)

func main() {
	dir := "./docs/cli"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	rootCmd := commands.NewRootCmd()
	rootCmd.DisableAutoGenTag = true

	if err := os.MkdirAll(dir, 0o750); err != nil {
		fmt.Fprintf(os.Stderr, "error creating output dir: %v\n", err)
		os.Exit(1)
	}

	if err := doc.GenMarkdownTree(rootCmd, dir); err != nil {
		fmt.Fprintf(os.Stderr, "error generating docs: %v\n", err)
		os.Exit(1)
	}

	// Rename dsisgen.md to index.md
	oldPath := dir + "/dsisgen.md"
	newPath := dir + "/index.md"
	if err := os.Rename(oldPath, newPath); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "error renaming %s to %s: %v\n", oldPath, newPath, err)
		os.Exit(1)
	}

	fmt.Printf("Documentation generated in %s\n", dir)
}
