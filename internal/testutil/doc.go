// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helpers shared by vshell tests: a manually
// advanced clock, builders for in-memory afero backends and cleanup helpers.
package testutil
