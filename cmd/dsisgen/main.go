// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Equinor ASA

// Package main is the entry point for the dsisgen CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/equinor/dsis-schemas/cmd/dsisgen/internal"
)

func main() {
	if err := internal.Run(context.Background(), os.Getenv); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
