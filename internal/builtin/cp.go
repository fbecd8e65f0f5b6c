// SPDX-License-Identifier: MPL-2.0

package builtin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/invowk/vshell/internal/vfs"
)

// cpCommand copies files and directories inside the virtual tree.
type cpCommand struct {
	baseCommand
}

func init() {
	RegisterDefault(newCpCommand())
}

func newCpCommand() *cpCommand {
	return &cpCommand{
		baseCommand: baseCommand{
			name: "cp",
			usage: `Usage: cp [OPTION]... [-T] SOURCE DEST
  or:  cp [OPTION]... SOURCE... DIRECTORY
  or:  cp [OPTION]... -t DIRECTORY SOURCE...
Copy SOURCE to DEST, or multiple SOURCE(s) to DIRECTORY.
  -i, --interactive                 prompt before overwrite
  -n, --no-clobber                  do not overwrite an existing file
  -r, -R, --recursive               copy directories recursively
  -t, --target-directory=DIRECTORY  copy all SOURCE arguments into DIRECTORY
  -T, --no-target-directory         treat DEST as a normal file
  -v, --verbose                     explain what is being done
A SOURCE directory ending in '/' copies its contents rather than itself.`,
		},
	}
}

// Run executes the cp command.
func (c *cpCommand) Run(_ context.Context, env *Env, args *Args) error {
	opts := args.Options()
	interactive := opts.Bool("interactive", "i", "prompt before overwrite")
	noClobber := opts.Bool("no-clobber", "n", "do not overwrite")
	recursive := opts.Bool("recursive", "r", "copy directories recursively")
	recursiveAlt := opts.Bool("", "R", "copy directories recursively")
	opts.Hide("R")
	targetDir := opts.String("target-directory", "t", "", "copy into DIRECTORY")
	noTarget := opts.Bool("no-target-directory", "T", "treat DEST as a normal file")
	verbose := opts.Bool("verbose", "v", "explain what is being done")
	opts.Exclusive("interactive", "no-clobber")
	opts.Exclusive("target-directory", "no-target-directory")
	pos, err := opts.Parse()
	if err != nil {
		return err
	}

	var sources []string
	var dest string
	switch {
	case len(pos) == 0:
		return &UsageError{Msg: "missing file operand"}
	case opts.Changed("target-directory"):
		sources, dest = pos, *targetDir
	case len(pos) == 1:
		return &UsageError{Msg: fmt.Sprintf("missing destination file operand after '%s'", pos[0])}
	default:
		sources, dest = pos[:len(pos)-1], pos[len(pos)-1]
	}
	if *noTarget && len(sources) > 1 {
		return &UsageError{Msg: fmt.Sprintf("extra operand '%s'", pos[len(pos)-1])}
	}

	copyOpts := vfs.CopyOptions{
		Recursive:   *recursive || *recursiveAlt,
		NoClobber:   *noClobber,
		Interactive: *interactive,
		Verbose:     *verbose,
		Confirm:     env.Surface.Confirm,
		Report:      func(line string) { env.Println(line) },
	}
	report := func(err error) {
		if err == nil {
			return
		}
		for _, leaf := range leafErrors(err) {
			env.Errorf(args.Name(), "%v", leaf)
		}
	}

	destNode, lookupErr := env.FS.Lookup(dest)
	intoDir := lookupErr == nil && destNode.IsDir() && !*noTarget
	if !intoDir && (opts.Changed("target-directory") || len(sources) > 1) {
		return fmt.Errorf("target '%s' is not a directory", dest)
	}

	if intoDir {
		for _, src := range sources {
			node, err := env.FS.Lookup(src)
			if err != nil {
				env.Errorf(args.Name(), "cannot stat '%s': %v", src, err)
				continue
			}
			if node.IsDir() && copyOpts.Recursive && strings.HasSuffix(src, "/") {
				report(c.copyContents(node, destNode, copyOpts))
				continue
			}
			report(vfs.Copy(node, destNode, copyOpts))
		}
		return nil
	}

	src := sources[0]
	node, err := env.FS.Lookup(src)
	if err != nil {
		return fmt.Errorf("cannot stat '%s': %w", src, err)
	}
	if lookupErr == nil {
		if destNode.Parent() == nil {
			return fmt.Errorf("cannot overwrite '%s': %w", dest, vfs.ErrExists)
		}
		copyOpts.Rename = destNode.Name()
		report(vfs.Copy(node, destNode.Parent(), copyOpts))
		return nil
	}
	parent, name, err := env.FS.ParentFor(dest)
	if err != nil {
		return fmt.Errorf("cannot create '%s': %w", dest, err)
	}
	copyOpts.Rename = name
	report(vfs.Copy(node, parent, copyOpts))
	return nil
}

// copyContents copies every child of dir into destDir.
func (c *cpCommand) copyContents(dir, destDir *vfs.Node, opts vfs.CopyOptions) error {
	if dir.Contains(destDir) {
		return &vfs.CopyError{Src: strings.TrimSuffix(dir.Path(), "/"), Dest: destDir.Path(), Err: vfs.ErrIntoItself}
	}
	children, err := dir.Children()
	if err != nil {
		return err
	}
	var errs []error
	for _, child := range children {
		if err := vfs.Copy(child, destDir, opts); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
