// SPDX-License-Identifier: MPL-2.0

// Package builtin implements the simulated coreutils commands (ls, cd, cat,
// stat, history, date, head, cp, touch and friends) and the registry the
// shell dispatches them from.
//
// Commands run against an Env holding the session's virtual filesystem,
// history and output surface. They never touch the real disk except through
// the read path of the virtual filesystem.
package builtin
