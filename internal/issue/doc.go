// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable errors for vshell start-up and
// configuration failures, and a catalog of Markdown remediation notes
// rendered with glamour.
//
// Command-level failures inside a session never use this package; they are
// printed by the dispatcher and the session continues.
package issue
