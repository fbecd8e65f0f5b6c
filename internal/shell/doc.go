// SPDX-License-Identifier: MPL-2.0

// Package shell drives the simulated commands: it tokenizes input lines,
// dispatches them to the builtin registry and runs the read-eval-print loop
// for one session.
package shell
