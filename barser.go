// Package barser ties together node, bparse, query, walk and dump behind
// a small public API: parse a buffer into a dictionary, resolve a path
// against it, walk it, and render it back out. Most programs only need
// this package; the others remain importable directly for anything more
// specific.
package barser

import (
	"io"

	"github.com/wowczarek/barser/bparse"
	"github.com/wowczarek/barser/dump"
	"github.com/wowczarek/barser/node"
	"github.com/wowczarek/barser/query"
	"github.com/wowczarek/barser/walk"
)

// Flags are the create-time dictionary options, re-exported from node so
// callers of this package never need to import node just to pass them to
// New.
type Flags = node.DictFlags

const (
	NoIndex  = node.NoIndex
	ReadOnly = node.ReadOnly
)

// Dict is Barser's in-memory tree, re-exported from node.
type Dict = node.Dict

// Node is one entity in a Dict's tree, re-exported from node.
type Node = node.Node

// New creates an empty dictionary, ready for Parse.
func New(name string, flags Flags) *Dict {
	return node.New(name, flags)
}

// Parse parses buf into a fresh dictionary named name and returns it, or
// the first error encountered. The dictionary is frozen on success if
// flags includes ReadOnly.
func Parse(name string, flags Flags, buf []byte) (*Dict, error) {
	d := New(name, flags)
	if err := bparse.Parse(d, buf); err != nil {
		return nil, err
	}
	return d, nil
}

// ParseInto parses buf into an already-created, empty dictionary —
// useful when the caller needs to hold dict before parsing, e.g. to pass
// it to something that captures it by reference.
func ParseInto(dict *Dict, buf []byte) error {
	return bparse.Parse(dict, buf)
}

// Get resolves a `/`-separated path against dict, relative to its root.
func Get(dict *Dict, path []byte) (*Node, bool) {
	return query.Resolve(dict, dict.Root(), path)
}

// GetRelative resolves path relative to ref rather than dict's root.
func GetRelative(dict *Dict, ref *Node, path []byte) (*Node, bool) {
	return query.Resolve(dict, ref, path)
}

// GetFrom resolves path relative to ref, restoring barser.c's bsNodeGet
// as a first-class, error-returning primitive rather than the
// bool-returning Get/GetRelative above.
func GetFrom(dict *Dict, ref *Node, path string) (*Node, error) {
	return dict.GetFrom(ref, path)
}

// Path returns n's absolute path, escaping any '/' or '\\' in a segment
// name so the result is itself a valid query for Get.
func Path(n *Node) []byte {
	return query.GetEscapedPath(n)
}

// Walk runs callback depth-first preorder over dict's entire tree.
func Walk(dict *Dict, callback walk.Callback) *Node {
	return walk.WalkDict(dict, nil, callback)
}

// Dump renders dict back to text, such that re-parsing the result
// reproduces an equivalent tree.
func Dump(w io.Writer, dict *Dict) error {
	return dump.Dump(w, dict)
}

// DumpNode renders just n's subtree, as a single statement.
func DumpNode(w io.Writer, n *Node) error {
	return dump.DumpNode(w, n)
}
