// SPDX-License-Identifier: MPL-2.0

package vfs

import (
	"errors"
	"fmt"
	"strings"
)

// CopyOptions controls conflict handling for Copy.
type CopyOptions struct {
	// Recursive permits copying directories.
	Recursive bool
	// NoClobber skips targets that already exist.
	NoClobber bool
	// Interactive asks Confirm before replacing an existing target.
	Interactive bool
	// Verbose sends one line per copied or skipped entry to Report.
	Verbose bool
	// Rename gives the top-level copy a different name inside the destination.
	Rename string

	Confirm func(prompt string) bool
	Report  func(line string)
}

// Copy copies src into the directory destDir.
//
// Files replace an existing file of the same name unless NoClobber is set or
// an interactive confirmation is refused. Directories need Recursive; they are
// merged into an existing directory of the same name. Failures below the top
// level do not stop the remaining entries and are joined into the result.
func Copy(src, destDir *Node, opts CopyOptions) error {
	if destDir.kind != Directory {
		return &CopyError{Src: display(src), Dest: display(destDir), Err: ErrNotADirectory}
	}
	name := opts.Rename
	if name == "" {
		name = src.name
	}
	existing, err := destDir.Child(name)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return &CopyError{Src: display(src), Dest: display(destDir), Err: err}
	}
	target := destDir.Path() + name
	if src.kind == Directory {
		return copyDir(src, destDir, existing, name, target, opts)
	}
	return copyFile(src, destDir, existing, name, target, opts)
}

func copyFile(src, destDir, existing *Node, name, target string, opts CopyOptions) error {
	if existing != nil {
		switch {
		case existing == src:
			return &CopyError{Src: display(src), Dest: target, Err: ErrSameFile}
		case existing.kind == Directory:
			return &CopyError{Src: display(src), Dest: target, Err: ErrOverwriteDir}
		case opts.NoClobber:
			opts.report("skipped '%s'", target)
			return nil
		case opts.Interactive && opts.Confirm != nil:
			if !opts.Confirm(fmt.Sprintf("overwrite '%s'? ", target)) {
				return nil
			}
		}
	}

	data, err := src.ReadBytes()
	if err != nil {
		return &CopyError{Src: display(src), Dest: target, Err: err}
	}
	dst := existing
	if dst == nil {
		if dst, err = destDir.AddFile(name); err != nil {
			return &CopyError{Src: display(src), Dest: target, Err: err}
		}
	}
	if err := dst.WriteBytes(data, false); err != nil {
		return &CopyError{Src: display(src), Dest: target, Err: err}
	}
	opts.report("'%s' -> '%s'", src.Path(), target)
	return nil
}

func copyDir(src, destDir, existing *Node, name, target string, opts CopyOptions) error {
	if !opts.Recursive {
		return &CopyError{Src: display(src), Dest: target, Err: ErrOmitDirectory}
	}
	if existing == src {
		return &CopyError{Src: display(src), Dest: target, Err: ErrSameFile}
	}
	if src.Contains(destDir) {
		return &CopyError{Src: display(src), Dest: target, Err: ErrIntoItself}
	}

	dst := existing
	switch {
	case dst != nil && dst.kind != Directory:
		return &CopyError{Src: display(src), Dest: target, Err: ErrOverwriteNonDir}
	case dst == nil:
		var err error
		if dst, err = destDir.AddDir(name); err != nil {
			return &CopyError{Src: display(src), Dest: target, Err: err}
		}
		opts.report("'%s' -> '%s/'", src.Path(), target)
	}

	children, err := src.Children()
	if err != nil {
		return &CopyError{Src: display(src), Dest: target, Err: err}
	}
	child := opts
	child.Rename = ""
	var errs []error
	for _, c := range children {
		if err := Copy(c, dst, child); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (o CopyOptions) report(format string, args ...any) {
	if o.Verbose && o.Report != nil {
		o.Report(fmt.Sprintf(format, args...))
	}
}

// display renders a node path without the directory marker, for messages.
func display(n *Node) string {
	p := n.Path()
	if n.parent == nil {
		return p
	}
	return strings.TrimSuffix(p, "/")
}
