// SPDX-License-Identifier: MPL-2.0

//go:build !linux && !darwin

package vfs

import (
	"io/fs"
	"time"
)

// accessTime falls back to the modification time where the platform stat
// structure is not inspected.
func accessTime(info fs.FileInfo) time.Time {
	return info.ModTime()
}
