// SPDX-License-Identifier: MPL-2.0

package vfs

import (
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

type globHit struct {
	node *Node
	text string
}

// HasMeta reports whether s contains glob metacharacters.
func HasMeta(s string) bool {
	return strings.ContainsAny(s, "*?[{")
}

// Glob expands pattern against the tree, matching one path segment at a time.
// Names starting with "." only match segments that start with ".".
// Results keep the pattern's form (relative, absolute or volume-prefixed) and
// are sorted; no match yields an empty slice.
func (f *FS) Glob(pattern string) ([]string, error) {
	segs := strings.Split(pattern, "/")
	start := globHit{node: f.cwd}
	switch {
	case strings.HasPrefix(pattern, "/"):
		start = globHit{node: f.cwd.Root(), text: "/"}
		segs = segs[1:]
	case len(segs) > 0 && strings.HasSuffix(segs[0], ":") && !HasMeta(segs[0]):
		root, err := f.volume(segs[0])
		if err != nil {
			return []string{}, nil
		}
		start = globHit{node: root, text: segs[0] + "/"}
		segs = segs[1:]
	}

	hits := []globHit{start}
	for i, seg := range segs {
		if seg == "" {
			if i == len(segs)-1 {
				hits = dirsOnly(hits)
			}
			continue
		}
		next, err := expandSegment(hits, seg)
		if err != nil {
			return nil, err
		}
		hits = next
		if len(hits) == 0 {
			break
		}
	}

	out := make([]string, 0, len(hits))
	for _, h := range hits {
		if h.text != "" {
			out = append(out, h.text)
		}
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}

func expandSegment(hits []globHit, seg string) ([]globHit, error) {
	var next []globHit
	for _, h := range hits {
		if !h.node.IsDir() {
			continue
		}
		if !HasMeta(seg) {
			var child *Node
			switch seg {
			case ".":
				child = h.node
			case "..":
				child = h.node.parent
			default:
				child, _ = h.node.Child(seg)
			}
			if child != nil {
				next = append(next, globHit{node: child, text: join(h.text, seg)})
			}
			continue
		}
		children, err := h.node.Children()
		if err != nil {
			continue
		}
		for _, c := range children {
			if strings.HasPrefix(c.name, ".") && !strings.HasPrefix(seg, ".") {
				continue
			}
			ok, err := doublestar.Match(seg, c.name)
			if err != nil {
				return nil, err
			}
			if ok {
				next = append(next, globHit{node: c, text: join(h.text, c.name)})
			}
		}
	}
	return next, nil
}

func dirsOnly(hits []globHit) []globHit {
	out := hits[:0]
	for _, h := range hits {
		if h.node.IsDir() {
			if h.text != "" && !strings.HasSuffix(h.text, "/") {
				h.text += "/"
			}
			out = append(out, h)
		}
	}
	return out
}

func join(prefix, name string) string {
	switch {
	case prefix == "":
		return name
	case strings.HasSuffix(prefix, "/"):
		return prefix + name
	default:
		return prefix + "/" + name
	}
}
