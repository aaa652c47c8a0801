// Package query resolves `/`-separated path strings against a node.Dict,
// tokenizing, unescaping, computing the compound path hash and probing
// PathIndex before falling back to a naive descent — ported from
// barser.c's bsNodeGet/bsGetPathHash/bsGetPath/cleanupQuery/unescapeToken.
package query

import (
	"bytes"

	"github.com/wowczarek/barser/chartable"
	"github.com/wowczarek/barser/node"
)

// splitSegments tokenizes a `/`-separated query into unescaped segments.
// `\/` yields a literal '/' inside a segment rather than a separator, and
// `\\` yields a literal backslash; any other escaped byte is passed
// through unescaped, mirroring cleanupQuery's forgiving behaviour.
// Zero-length segments — from a leading `/`, a trailing `/`, or a doubled
// `//` — are dropped rather than kept as empty tokens, matching
// cleanupQuery's own handling of zero-length tokens in unescapeToken.
func splitSegments(query []byte) [][]byte {
	var segs [][]byte
	var cur []byte
	for i := 0; i < len(query); i++ {
		c := query[i]
		if c == chartable.Escape && i+1 < len(query) {
			next := query[i+1]
			if next == chartable.PathSep || next == chartable.Escape {
				cur = append(cur, next)
				i++
				continue
			}
			cur = append(cur, c)
			continue
		}
		if c == chartable.PathSep {
			if len(cur) > 0 {
				segs = append(segs, cur)
			}
			cur = nil
			continue
		}
		cur = append(cur, c)
	}
	if len(cur) > 0 {
		segs = append(segs, cur)
	}
	return segs
}

// escapeSegment is splitSegments' inverse for one path component: it
// escapes '/' and '\\' so the result can be concatenated back into a
// query string unambiguously.
func escapeSegment(name []byte) []byte {
	out := make([]byte, 0, len(name))
	for _, c := range name {
		if c == chartable.PathSep || c == chartable.Escape {
			out = append(out, chartable.Escape)
		}
		out = append(out, c)
	}
	return out
}

// GetPath returns n's absolute path from its dictionary's root, with `/`
// as separator and no escaping applied — the raw concatenation bsGetPath
// produces when called without the escape flag.
func GetPath(n *node.Node) []byte {
	return buildPath(n, false)
}

// GetEscapedPath is GetPath but with every segment passed through
// escapeSegment first, so the result round-trips through Resolve even if a
// node's name itself contains '/' or '\\'.
func GetEscapedPath(n *node.Node) []byte {
	return buildPath(n, true)
}

func buildPath(n *node.Node, escape bool) []byte {
	var segs [][]byte
	for cur := n; cur != nil && cur.Parent() != nil; cur = cur.Parent() {
		name := cur.Name()
		if escape {
			name = escapeSegment(name)
		}
		segs = append(segs, name)
	}
	// segs was collected leaf-to-root; reverse in place before joining.
	for i, j := 0, len(segs)-1; i < j; i, j = i+1, j-1 {
		segs[i], segs[j] = segs[j], segs[i]
	}
	return bytes.Join(segs, []byte{chartable.PathSep})
}
