// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Equinor ASA

// Package version carries the build-time version of the dsisgen CLI.
package version

// Version is overridden at release build time with
// -ldflags "-X github.com/equinor/dsis-schemas/internal/version.Version=...".
var Version = "dev"
