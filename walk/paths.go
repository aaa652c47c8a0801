package walk

import (
	"github.com/wowczarek/barser/chartable"
	"github.com/wowczarek/barser/node"
)

// PathCallback is the path-threaded walker's callback: path is n's
// absolute path from the dictionary root, computed once per node by
// extending the parent's already-computed path rather than re-walking to
// root at every step.
type PathCallback func(dict *node.Dict, n *node.Node, user any, path []byte, stop *bool)

// WalkPaths walks dict's entire tree in preorder, handing callback each
// node's absolute path (escaped per escapeSegment when escape is true).
func WalkPaths(dict *node.Dict, user any, escape bool, callback PathCallback) *node.Node {
	return walkPaths(dict, dict.Root(), user, nil, escape, callback)
}

func walkPaths(dict *node.Dict, n *node.Node, user any, path []byte, escape bool, callback PathCallback) *node.Node {
	stop := false
	callback(dict, n, user, path, &stop)
	if stop {
		return n
	}
	for _, c := range n.Children() {
		if stopped := walkPaths(dict, c, user, extendPath(path, c, escape), escape, callback); stopped != nil {
			return stopped
		}
	}
	return nil
}

func extendPath(parentPath []byte, n *node.Node, escape bool) []byte {
	name := n.Name()
	if escape {
		name = escapeSegment(name)
	}
	if len(parentPath) == 0 {
		return append([]byte{}, name...)
	}
	out := make([]byte, 0, len(parentPath)+1+len(name))
	out = append(out, parentPath...)
	out = append(out, chartable.PathSep)
	out = append(out, name...)
	return out
}

// escapeSegment escapes '/' and '\\' in name, the inverse of query
// package's path-segment tokenizer — duplicated here rather than
// imported to keep walk from depending on query (query already depends
// on node, and nothing requires the reverse edge).
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
