// SPDX-License-Identifier: MPL-2.0

package vfs

import (
	"errors"
	"fmt"
	"io/fs"
)

// Sentinel errors carry the coreutils wording so handlers can print them as-is.
//
//nolint:staticcheck // capitalized to match coreutils diagnostics
var (
	// ErrNotFound is returned when a path does not resolve.
	ErrNotFound = errors.New("No such file or directory")
	// ErrNotADirectory is returned when a directory was required but a file was found.
	ErrNotADirectory = errors.New("Not a directory")
	// ErrIsADirectory is returned when file content is requested from a directory.
	ErrIsADirectory = errors.New("Is a directory")
	// ErrExists is returned when creating an entry whose name is already taken.
	ErrExists = errors.New("File exists")
	// ErrInvalidName is returned for empty names, "." and "..", or names containing a separator.
	ErrInvalidName = errors.New("Invalid argument")
)

// Copy failure reasons, wrapped in *CopyError.
var (
	ErrOmitDirectory   = errors.New("omitting directory")
	ErrSameFile        = errors.New("same file")
	ErrIntoItself      = errors.New("copy into itself")
	ErrOverwriteDir    = errors.New("cannot overwrite directory with non-directory")
	ErrOverwriteNonDir = errors.New("cannot overwrite non-directory with directory")
)

type (
	// IOError reports a backend failure other than a missing path,
	// such as a permission problem.
	IOError struct {
		Path string
		Err  error
	}

	// CopyError describes why one entry of a copy could not be completed.
	CopyError struct {
		Src  string
		Dest string
		Err  error
	}
)

// Error returns the underlying reason without the backend's operation prefix.
func (e *IOError) Error() string {
	var pe *fs.PathError
	if errors.As(e.Err, &pe) {
		return pe.Err.Error()
	}
	return e.Err.Error()
}

// Unwrap returns the backend error.
func (e *IOError) Unwrap() error {
	return e.Err
}

// Error formats the failure the way cp reports it.
func (e *CopyError) Error() string {
	switch {
	case errors.Is(e.Err, ErrOmitDirectory):
		return fmt.Sprintf("-r not specified; omitting directory '%s'", e.Src)
	case errors.Is(e.Err, ErrSameFile):
		return fmt.Sprintf("'%s' and '%s' are the same file", e.Src, e.Dest)
	case errors.Is(e.Err, ErrIntoItself):
		return fmt.Sprintf("cannot copy a directory, '%s', into itself, '%s'", e.Src, e.Dest)
	case errors.Is(e.Err, ErrOverwriteDir):
		return fmt.Sprintf("cannot overwrite directory '%s' with non-directory", e.Dest)
	case errors.Is(e.Err, ErrOverwriteNonDir):
		return fmt.Sprintf("cannot overwrite non-directory '%s' with directory '%s'", e.Dest, e.Src)
	default:
		return fmt.Sprintf("cannot copy '%s' to '%s': %v", e.Src, e.Dest, e.Err)
	}
}

// Unwrap returns the failure reason.
func (e *CopyError) Unwrap() error {
	return e.Err
}

// ioError maps a backend error onto the package taxonomy.
func ioError(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return ErrNotFound
	}
	return &IOError{Path: path, Err: err}
}
