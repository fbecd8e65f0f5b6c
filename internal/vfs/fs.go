// SPDX-License-Identifier: MPL-2.0

package vfs

import (
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/afero"
	"golang.org/x/exp/maps"
)

// HomeVolume names the virtual root every fresh FS starts with.
const HomeVolume = "~"

type (
	// FS is the per-session filesystem facade. It owns the mounted volumes
	// and the current directory cursor. It is not safe for concurrent use.
	FS struct {
		backend afero.Fs
		now     func() time.Time
		volumes map[string]*Node
		cwd     *Node
	}

	// Option configures an FS.
	Option func(*FS)
)

// WithClock sets the function used to stamp overlay timestamps.
func WithClock(now func() time.Time) Option {
	return func(f *FS) {
		f.now = now
	}
}

// New creates an FS over backend with a single virtual "~" volume as cwd.
func New(backend afero.Fs, opts ...Option) *FS {
	f := &FS{
		backend: backend,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	home := f.newRoot(HomeVolume, "")
	f.volumes = map[string]*Node{HomeVolume: home}
	f.cwd = home
	return f
}

func (f *FS) newRoot(name, disk string) *Node {
	root := &Node{fs: f, name: name, kind: Directory, disk: disk}
	if disk == "" {
		now := f.now()
		root.loaded = true
		root.children = make(map[string]*Node)
		root.mtime, root.atime = &now, &now
	}
	return root
}

// Backend returns the afero filesystem the tree is read from.
func (f *FS) Backend() afero.Fs { return f.backend }

// Bind re-initializes the FS over an existing real directory. All previous
// volumes (and their overlays) are dropped; the cwd becomes the directory.
func (f *FS) Bind(realPath string) error {
	abs, err := filepath.Abs(realPath)
	if err != nil {
		return &IOError{Path: realPath, Err: err}
	}
	info, err := f.backend.Stat(abs)
	if err != nil {
		return ioError(abs, err)
	}
	if !info.IsDir() {
		return ErrNotADirectory
	}
	vol, rest, _ := strings.Cut(filepath.ToSlash(abs), "/")
	root := f.newRoot(vol, vol+string(filepath.Separator))
	cur, _, err := root.Resolve(rest, false)
	if err != nil {
		return err
	}
	f.volumes = map[string]*Node{vol: root}
	f.cwd = cur
	return nil
}

// volume returns the root for a "name:" segment, mounting it from the
// backend on first reference.
func (f *FS) volume(name string) (*Node, error) {
	if root, ok := f.volumes[name]; ok {
		return root, nil
	}
	disk := name + string(filepath.Separator)
	info, err := f.backend.Stat(disk)
	if err != nil {
		return nil, ioError(disk, err)
	}
	if !info.IsDir() {
		return nil, ErrNotADirectory
	}
	root := f.newRoot(name, disk)
	f.volumes[name] = root
	return root, nil
}

// Volumes returns the mounted volume names in sorted order.
func (f *FS) Volumes() []string {
	names := maps.Keys(f.volumes)
	slices.Sort(names)
	return names
}

// Cwd returns the current directory.
func (f *FS) Cwd() *Node { return f.cwd }

// Chdir moves the cursor to dir.
func (f *FS) Chdir(dir *Node) error {
	if dir.kind != Directory {
		return ErrNotADirectory
	}
	f.cwd = dir
	return nil
}

// Lookup resolves expr against the cwd.
func (f *FS) Lookup(expr string) (*Node, error) {
	n, _, err := f.cwd.Resolve(expr, false)
	return n, err
}

// LookupPartial resolves expr against the cwd, returning the deepest existing
// node and the unresolved tail.
func (f *FS) LookupPartial(expr string) (*Node, []string, error) {
	return f.cwd.Resolve(expr, true)
}

// Exists reports whether expr resolves.
func (f *FS) Exists(expr string) bool {
	_, err := f.Lookup(expr)
	return err == nil
}

// CreateFile creates an empty in-memory file at expr. The parent must exist.
func (f *FS) CreateFile(expr string) (*Node, error) {
	parent, name, err := f.parentFor(expr)
	if err != nil {
		return nil, err
	}
	return parent.AddFile(name)
}

// CreateDir creates an empty in-memory directory at expr. The parent must exist.
func (f *FS) CreateDir(expr string) (*Node, error) {
	parent, name, err := f.parentFor(expr)
	if err != nil {
		return nil, err
	}
	return parent.AddDir(name)
}

// ParentFor splits expr into an existing directory and the single missing
// name below it.
func (f *FS) ParentFor(expr string) (*Node, string, error) {
	return f.parentFor(expr)
}

func (f *FS) parentFor(expr string) (*Node, string, error) {
	parent, rest, err := f.LookupPartial(expr)
	if err != nil {
		return nil, "", err
	}
	switch {
	case len(rest) == 0:
		return nil, "", ErrExists
	case len(rest) > 1 || rest[0] == "..":
		return nil, "", ErrNotFound
	case !parent.IsDir():
		return nil, "", ErrNotADirectory
	}
	return parent, rest[0], nil
}
