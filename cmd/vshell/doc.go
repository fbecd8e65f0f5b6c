// SPDX-License-Identifier: MPL-2.0

// Package cmd implements the vshell command line: the interactive shell
// over a mounted directory, the SSH server and configuration management.
package cmd
