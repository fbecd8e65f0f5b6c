// SPDX-License-Identifier: MPL-2.0

// Package vfs implements the virtual filesystem that vshell commands operate on.
//
// The tree overlays a real directory hierarchy reached through an afero.Fs
// backend. Entries are discovered lazily: a directory's children are listed
// from the backend the first time they are needed and that listing is kept for
// the lifetime of the node. Changes made on disk afterwards are not observed.
//
// Writes never touch the backend. Writing to a node stores the bytes in an
// in-memory overlay which from then on shadows the disk content for that node.
// Nodes created through AddFile/AddDir exist only in memory.
//
// # Paths
//
// Path expressions are slash-delimited and resolved by Node.Resolve:
//
//	/etc/hosts      anchored at the outermost root reachable from the start node
//	D:/data         anchored at volume "D:", mounted from the backend on first use
//	./a/../b        "." is a no-op, ".." moves to the parent
//
// Node.Path renders the normalized form; directories carry a trailing slash.
package vfs
