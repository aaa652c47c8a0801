package node

import (
	"errors"
	"strconv"

	"github.com/wowczarek/barser/bhash"
	"github.com/wowczarek/barser/index"
)

// DictFlags are the create-time dictionary options.
type DictFlags uint32

const (
	// NoIndex disables PathIndex maintenance; GetChild and query.Resolve
	// fall back to a front-to-back scan of the parent's child slice.
	NoIndex DictFlags = 1 << 0
	// ReadOnly blocks every NodeStore mutation primitive once the
	// dictionary is frozen (see DESIGN.md for the READONLY semantics
	// decision): Parse itself is exempt until Dict.Freeze is called.
	ReadOnly DictFlags = 1 << 1
)

var (
	ErrReadOnly   = errors.New("node: dictionary is read-only")
	ErrNotFound   = errors.New("node: node not found in dictionary")
	ErrWrongDict  = errors.New("node: node does not belong to this dictionary")
	ErrRootDelete = errors.New("node: cannot delete the root node")
	ErrArrayName  = errors.New("node: array children cannot be renamed")
	ErrNilParent  = errors.New("node: parent must not be nil")
)

// Dict is the top-level container: a named root plus an optional
// PathIndex. Name restores the C source's dict->name bookkeeping.
type Dict struct {
	Name string

	root  *Node
	index *index.Index // nil when NoIndex is set

	flags  DictFlags
	frozen bool

	nodeCount int
}

// New creates a dictionary with a fresh root node.
func New(name string, flags DictFlags) *Dict {
	d := &Dict{Name: name, flags: flags}
	root := &Node{dict: d, typ: Root, name: []byte{}}
	root.recomputeHash()
	d.root = root
	d.nodeCount = 1
	if flags&NoIndex == 0 {
		d.index = index.New()
	}
	return d
}

// Root returns the dictionary's unique root node.
func (d *Dict) Root() *Node { return d.root }

// NodeCount returns the number of nodes currently in the dictionary
// (including root), restoring barser.c's dict->nodecount bookkeeping.
func (d *Dict) NodeCount() int { return d.nodeCount }

// Indexed reports whether this dictionary maintains a PathIndex.
func (d *Dict) Indexed() bool { return d.index != nil }

// Index returns the dictionary's PathIndex, or nil if NoIndex was set.
func (d *Dict) Index() *index.Index { return d.index }

// Freeze marks the dictionary read-only if it was created with
// ReadOnly. Parse calls this once it finishes building the tree; after
// Freeze, every mutation primitive below returns ErrReadOnly.
func (d *Dict) Freeze() {
	if d.flags&ReadOnly != 0 {
		d.frozen = true
	}
}

func (d *Dict) writable() error {
	if d.frozen {
		return ErrReadOnly
	}
	return nil
}

// CreateNode is the public node-creation primitive. If parent is an
// Array, name is ignored and the child is named by its ordinal, matching
// bsCreateNode's array-member behavior.
func (d *Dict) CreateNode(parent *Node, typ Type, name, value []byte) (*Node, error) {
	if err := d.writable(); err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, ErrNilParent
	}
	if parent.dict != d {
		return nil, ErrWrongDict
	}
	return d.createNode(parent, typ, name, value)
}

// createNode is the internal creation primitive used by both the public
// API and the parser; it skips the read-only check so Parse can build
// the tree before the first Freeze.
func (d *Dict) createNode(parent *Node, typ Type, name, value []byte) (*Node, error) {
	n := &Node{dict: d, parent: parent, typ: typ, value: value}

	if parent.typ == Array {
		n.name = arrayOrdinalName(len(parent.children))
	} else {
		if name == nil {
			name = []byte{}
		}
		n.name = name
	}

	n.recomputeHash()
	n.flags |= inherited(parent.flags)

	parent.children = append(parent.children, n)
	d.nodeCount++

	if d.index != nil {
		d.index.Put(n)
		n.flags |= Indexed
	}

	return n, nil
}

// DeleteNode recursively deletes node and every descendant, unlinking it
// from its parent's children and from the PathIndex. The root may be
// emptied but never deleted.
func (d *Dict) DeleteNode(node *Node) error {
	if err := d.writable(); err != nil {
		return err
	}
	if node == nil {
		return ErrNotFound
	}
	if node.dict != d {
		return ErrWrongDict
	}
	if node.parent == nil {
		return ErrRootDelete
	}
	d.deleteSubtree(node)
	unlinkChild(node.parent, node)
	return nil
}

func (d *Dict) deleteSubtree(node *Node) {
	for _, child := range append([]*Node{}, node.children...) {
		d.deleteSubtree(child)
		unlinkChild(node, child)
	}
	if d.index != nil && node.HasFlag(Indexed) {
		d.index.Delete(node)
	}
	d.nodeCount--
}

func unlinkChild(parent, child *Node) {
	for i, c := range parent.children {
		if c == child {
			parent.children = append(parent.children[:i], parent.children[i+1:]...)
			return
		}
	}
}

// RenameNode renames node (a no-op for array children, whose names are
// ordinal) and, if the hash changed, rehashes and reindexes the whole
// subtree rooted at node.
func (d *Dict) RenameNode(node *Node, newName []byte) (*Node, error) {
	if err := d.writable(); err != nil {
		return nil, err
	}
	if node == nil || node.parent == nil {
		return nil, ErrNotFound
	}
	if node.parent.typ == Array {
		return node, nil
	}

	node.name = newName
	node.flags |= Modified
	d.rehashSubtree(node)

	return node, nil
}

// MoveNode relocates node under newParent (degenerating to RenameNode
// when newParent equals node's current parent), then rehashes and
// reindexes the moved subtree.
func (d *Dict) MoveNode(node, newParent *Node, newName []byte) (*Node, error) {
	if err := d.writable(); err != nil {
		return nil, err
	}
	if node == nil || newParent == nil || node.parent == nil {
		return nil, ErrNotFound
	}
	if newParent.dict != d {
		return nil, ErrWrongDict
	}

	if newParent == node.parent {
		if newName != nil {
			return d.RenameNode(node, newName)
		}
		return node, nil
	}

	unlinkChild(node.parent, node)
	node.parent = newParent
	newParent.children = append(newParent.children, node)

	if newName != nil {
		node.name = newName
	}
	node.flags |= Modified

	d.rehashSubtree(node)

	return node, nil
}

// rehashSubtree recomputes hash for node and every descendant, deleting
// and reinserting each into PathIndex, mirroring bsRehashCallback driven
// across a walk.
func (d *Dict) rehashSubtree(node *Node) {
	if d.index != nil && node.HasFlag(Indexed) {
		d.index.Delete(node)
	}
	node.recomputeHash()
	if d.index != nil {
		d.index.Put(node)
		node.flags |= Indexed
	}
	for _, c := range node.children {
		d.rehashSubtree(c)
	}
}

// GetChild implements the cheap child probe: compute the candidate hash
// and either probe PathIndex or fall back to a naive scan over parent's
// children.
func (d *Dict) GetChild(parent *Node, name []byte) *Node {
	if parent == nil || len(name) == 0 {
		return nil
	}
	hash := bhash.PathHash(name, parent.hash)

	if d.index != nil {
		for _, e := range d.index.Get(hash) {
			if n, ok := e.(*Node); ok && n.parent == parent && string(n.name) == string(name) {
				return n
			}
		}
		return nil
	}

	for _, n := range parent.children {
		if n.hash == hash && string(n.name) == string(name) {
			return n
		}
	}
	return nil
}

// GetChildren returns every direct child of parent named name — usually
// zero or one, but INSTANCE reuse and permissive parses can legally
// produce more than one sibling with the same name before they are
// merged.
func (d *Dict) GetChildren(parent *Node, name []byte) []*Node {
	var out []*Node
	for _, n := range parent.children {
		if string(n.name) == string(name) {
			out = append(out, n)
		}
	}
	return out
}

func arrayOrdinalName(i int) []byte {
	return []byte(strconv.Itoa(i))
}
