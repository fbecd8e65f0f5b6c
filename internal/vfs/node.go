// SPDX-License-Identifier: MPL-2.0

package vfs

import (
	"errors"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/afero"
)

const (
	// File is a leaf node holding bytes.
	File Kind = iota
	// Directory is a node holding children.
	Directory
)

type (
	// Kind distinguishes files from directories. It never changes after creation.
	Kind int

	// Node is one entry in the virtual tree.
	//
	// The parent pointer is a lookup-only back reference; children are owned
	// by their parent. Nodes are never removed from the tree.
	Node struct {
		fs     *FS
		name   string
		parent *Node
		kind   Kind
		// disk is the backend path this node mirrors, empty for virtual nodes.
		disk string

		loaded   bool
		children map[string]*Node
		order    []string

		content    []byte
		hasContent bool
		mtime      *time.Time
		atime      *time.Time
	}
)

// String returns "file" or "directory".
func (k Kind) String() string {
	if k == Directory {
		return "directory"
	}
	return "file"
}

// Name returns the node's own path segment.
func (n *Node) Name() string { return n.name }

// Parent returns the containing directory, or nil for a volume root.
func (n *Node) Parent() *Node { return n.parent }

// Kind reports whether the node is a file or a directory.
func (n *Node) Kind() Kind { return n.kind }

// IsDir reports whether the node is a directory.
func (n *Node) IsDir() bool { return n.kind == Directory }

// Virtual reports whether the node has no backing path on disk.
func (n *Node) Virtual() bool { return n.disk == "" }

// Overlaid reports whether the node's content is served from memory.
func (n *Node) Overlaid() bool { return n.hasContent }

// Root walks parent links up to the outermost root.
func (n *Node) Root() *Node {
	cur := n
	for cur.parent != nil {
		cur = cur.parent
	}
	return cur
}

// Path renders the normalized slash path of the node.
// Roots render as "name/", directories end in "/" and files do not.
func (n *Node) Path() string {
	if n.parent == nil {
		return n.name + "/"
	}
	p := n.parent.Path() + n.name
	if n.kind == Directory {
		p += "/"
	}
	return p
}

// Contains reports whether other is n or lies below n.
func (n *Node) Contains(other *Node) bool {
	for cur := other; cur != nil; cur = cur.parent {
		if cur == n {
			return true
		}
	}
	return false
}

// Children returns the node's children in listing order.
// The first call lists the backing directory; the result is kept for the
// node's lifetime.
func (n *Node) Children() ([]*Node, error) {
	if err := n.load(); err != nil {
		return nil, err
	}
	out := make([]*Node, 0, len(n.order))
	for _, name := range n.order {
		out = append(out, n.children[name])
	}
	return out, nil
}

// Names returns the children's names in listing order.
func (n *Node) Names() ([]string, error) {
	if err := n.load(); err != nil {
		return nil, err
	}
	return slices.Clone(n.order), nil
}

// Child returns the named child or ErrNotFound.
func (n *Node) Child(name string) (*Node, error) {
	if n.kind != Directory {
		return nil, ErrNotADirectory
	}
	if err := n.load(); err != nil {
		return nil, err
	}
	child, ok := n.children[name]
	if !ok {
		return nil, ErrNotFound
	}
	return child, nil
}

func (n *Node) load() error {
	if n.loaded || n.kind != Directory {
		return nil
	}
	n.children = make(map[string]*Node)
	if n.disk != "" {
		entries, err := afero.ReadDir(n.fs.backend, n.disk)
		if err != nil {
			n.children = nil
			return ioError(n.disk, err)
		}
		for _, e := range entries {
			kind := File
			if e.IsDir() {
				kind = Directory
			}
			n.insert(&Node{
				fs:     n.fs,
				name:   e.Name(),
				parent: n,
				kind:   kind,
				disk:   filepath.Join(n.disk, e.Name()),
			})
		}
	}
	n.loaded = true
	return nil
}

func (n *Node) insert(child *Node) {
	if _, ok := n.children[child.name]; !ok {
		n.order = append(n.order, child.name)
	}
	n.children[child.name] = child
}

// AddFile creates an empty in-memory file under n.
func (n *Node) AddFile(name string) (*Node, error) {
	child, err := n.add(name, File)
	if err != nil {
		return nil, err
	}
	child.content = []byte{}
	child.hasContent = true
	return child, nil
}

// AddDir creates an empty in-memory directory under n.
func (n *Node) AddDir(name string) (*Node, error) {
	return n.add(name, Directory)
}

func (n *Node) add(name string, kind Kind) (*Node, error) {
	if !validName(name) {
		return nil, ErrInvalidName
	}
	if n.kind != Directory {
		return nil, ErrNotADirectory
	}
	if err := n.load(); err != nil {
		return nil, err
	}
	if _, ok := n.children[name]; ok {
		return nil, ErrExists
	}
	now := n.fs.now()
	child := &Node{
		fs:     n.fs,
		name:   name,
		parent: n,
		kind:   kind,
		loaded: kind == Directory,
		mtime:  &now,
		atime:  &now,
	}
	if kind == Directory {
		child.children = make(map[string]*Node)
	}
	n.insert(child)
	return child, nil
}

func validName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}

// ReadBytes returns the node's content. Overlay content wins; otherwise the
// backing file is read on every call.
func (n *Node) ReadBytes() ([]byte, error) {
	if n.kind == Directory {
		return nil, ErrIsADirectory
	}
	if n.hasContent {
		return slices.Clone(n.content), nil
	}
	if n.disk == "" {
		return []byte{}, nil
	}
	data, err := afero.ReadFile(n.fs.backend, n.disk)
	if err != nil {
		return nil, ioError(n.disk, err)
	}
	return data, nil
}

// WriteBytes replaces or extends the node's content in memory and stamps the
// modification time. The node stops reading from disk afterwards.
func (n *Node) WriteBytes(data []byte, appendMode bool) error {
	if n.kind == Directory {
		return ErrIsADirectory
	}
	if appendMode && !n.hasContent {
		seed, err := n.ReadBytes()
		if err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
		n.content = seed
	}
	if appendMode {
		n.content = append(n.content, data...)
	} else {
		n.content = slices.Clone(data)
	}
	n.hasContent = true
	now := n.fs.now()
	n.mtime = &now
	return nil
}

// Times returns the access and modification times. Each overlay timestamp
// takes precedence over the backend's value independently.
func (n *Node) Times() (atime, mtime time.Time, err error) {
	if n.atime != nil && n.mtime != nil {
		return *n.atime, *n.mtime, nil
	}
	if n.disk == "" {
		var zero time.Time
		return deref(n.atime, zero), deref(n.mtime, zero), nil
	}
	info, err := n.fs.backend.Stat(n.disk)
	if err != nil {
		return time.Time{}, time.Time{}, ioError(n.disk, err)
	}
	return deref(n.atime, accessTime(info)), deref(n.mtime, info.ModTime()), nil
}

// SetTimes stamps overlay timestamps; nil leaves that field untouched.
func (n *Node) SetTimes(atime, mtime *time.Time) {
	if atime != nil {
		t := *atime
		n.atime = &t
	}
	if mtime != nil {
		t := *mtime
		n.mtime = &t
	}
}

func deref(p *time.Time, fallback time.Time) time.Time {
	if p != nil {
		return *p
	}
	return fallback
}

// Resolve walks expr from n.
//
// With wantRemainder set, a missing segment (or ".." above a root) stops the
// walk: the deepest existing node is returned along with the segments not
// consumed. Descending into a file, or naming one with a trailing slash,
// always fails with ErrNotADirectory.
func (n *Node) Resolve(expr string, wantRemainder bool) (*Node, []string, error) {
	segs := strings.Split(expr, "/")
	cur := n
	if strings.HasPrefix(expr, "/") {
		cur = n.Root()
	}
	for i, seg := range segs {
		switch {
		case seg == "" || seg == ".":
			continue
		case i == 0 && strings.HasSuffix(seg, ":"):
			root, err := n.fs.volume(seg)
			if err != nil {
				return nil, nil, err
			}
			cur = root
			continue
		case seg == "..":
			if cur.parent == nil {
				if wantRemainder {
					return cur, remainder(segs[i:]), nil
				}
				return nil, nil, ErrNotFound
			}
			cur = cur.parent
			continue
		}
		if cur.kind != Directory {
			return nil, nil, ErrNotADirectory
		}
		child, err := cur.Child(seg)
		if errors.Is(err, ErrNotFound) && wantRemainder {
			return cur, remainder(segs[i:]), nil
		}
		if err != nil {
			return nil, nil, err
		}
		cur = child
	}
	// A trailing slash names a directory.
	if last := segs[len(segs)-1]; len(segs) > 1 && (last == "" || last == ".") && cur.kind != Directory {
		return nil, nil, ErrNotADirectory
	}
	return cur, nil, nil
}

func remainder(segs []string) []string {
	out := make([]string, 0, len(segs))
	for _, s := range segs {
		if s != "" && s != "." {
			out = append(out, s)
		}
	}
	return out
}
