/*
Copyright © 2026 Lumen Labs
SPDX-License-Identifier: Apache-2.0
*/

// Package version carries the build identity stamped into the binary
// at link time.
package version

import "fmt"

// Set via ldflags, e.g.:
//
//	-X github.com/lumenlabs/lumen/pkg/version.Version=v1.2.3
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String renders the full build identity for --version output and log
// records.
func String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)
}
