// SPDX-License-Identifier: MPL-2.0

// Package sshserver serves vshell over SSH using the Wish library.
//
// Each connection mounts the configured root afresh and runs its own shell
// session: interactive with a line editor when the client requests a PTY,
// line-oriented otherwise. A command given on the ssh command line runs
// once and its failure sets a non-zero exit status.
package sshserver
