// SPDX-License-Identifier: MPL-2.0

// Package datetime holds the date handling shared by the date and touch
// commands: a strftime-style formatter, display-format resolution, a
// free-form date parser and the touch -t stamp grammar.
package datetime
