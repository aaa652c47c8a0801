// Package node owns the Node/Dict tree model and the NodeStore mutation
// primitives: create, delete, rename, move, copy. It knows nothing about
// lexing or parsing — those live in lex and bparse. The one exception is
// Dict.GetFrom (path.go), kept here because barser.c's bsNodeGet lived
// alongside bsCreateNode rather than in a separate module; package query
// implements the richer form of the same algorithm for callers that also
// want GetPath/GetEscapedPath.
package node

import "github.com/wowczarek/barser/bhash"

// Type is a node's structural kind.
type Type uint8

const (
	Branch Type = iota
	Leaf
	Array
	Instance
	Root
)

func (t Type) String() string {
	switch t {
	case Branch:
		return "BRANCH"
	case Leaf:
		return "LEAF"
	case Array:
		return "ARRAY"
	case Instance:
		return "INSTANCE"
	case Root:
		return "ROOT"
	default:
		return "UNKNOWN"
	}
}

// Flags is the node flag bitset — self flags live in the low byte,
// inheritable flags and their _CHILD shifted counterparts share the rest.
type Flags uint32

const (
	QuotedName  Flags = 1 << 0
	QuotedValue Flags = 1 << 1
	Indexed     Flags = 1 << 2
	Modified    Flags = 1 << 3

	// inheritable flags: set directly on the node they describe.
	Inactive  Flags = 1 << 8
	Removed   Flags = 1 << 9
	Added     Flags = 1 << 10
	Generated Flags = 1 << 11

	// inheritedShift is how far an inheritable flag moves to become its
	// _CHILD counterpart on a descendant.
	inheritedShift = 4

	InactiveChild  = Inactive << inheritedShift
	RemovedChild   = Removed << inheritedShift
	AddedChild     = Added << inheritedShift
	GeneratedChild = Generated << inheritedShift
)

// inheritableMask covers every flag (direct or already-shifted) that
// propagates to children: a node's own inheritable bits, and the _CHILD
// bits it already inherited (see inherited for how each is passed on).
const inheritableMask = Inactive | Removed | Added | Generated |
	InactiveChild | RemovedChild | AddedChild | GeneratedChild

// inherited computes the flag word a new child of parent should start
// with: the parent's own inheritable flags shifted one step into their
// _CHILD form, OR'd with whatever _CHILD flags the parent already
// carries, passed through unshifted. Shifting the parent's _CHILD bits
// again would push them out of inheritableMask and lose them, breaking
// propagation past one level of depth.
func inherited(parent Flags) Flags {
	const direct = Inactive | Removed | Added | Generated
	const alreadyChild = InactiveChild | RemovedChild | AddedChild | GeneratedChild
	return (parent&direct)<<inheritedShift | (parent & alreadyChild)
}

// Node is one entity in a Dict's tree. name/value are owned byte slices;
// name is never nil (empty only for Root), value is nil unless the node
// carries one.
type Node struct {
	dict   *Dict
	parent *Node
	typ    Type
	flags  Flags
	hash   uint32

	name  []byte
	value []byte

	children []*Node // insertion order, authoritative for iteration

	indexNext *Node // unused: package index keeps its own collision-chain links
}

// Type returns the node's structural kind.
func (n *Node) Type() Type { return n.typ }

// Flags returns the node's current flag word.
func (n *Node) Flags() Flags { return n.flags }

// SetSelfFlags ORs the self-flag bits (QuotedName, QuotedValue, Modified)
// into the node's flag word without touching inheritable bits.
func (n *Node) SetSelfFlags(f Flags) {
	n.flags |= f &^ inheritableMask
}

// HasFlag reports whether every bit in f is set.
func (n *Node) HasFlag(f Flags) bool { return n.flags&f == f }

// SetInheritableFlags ORs inheritable flag bits (INACTIVE, REMOVED, ADDED,
// GENERATED) directly into the node's own flag word, unshifted. This is how
// a statement modifier (the "inactive:" prefix) marks the top-most node of
// the statement it applies to; descendants pick the flag up as its _CHILD
// form naturally, through createNode's inherited() call on later children.
func (n *Node) SetInheritableFlags(f Flags) {
	n.flags |= f & (Inactive | Removed | Added | Generated)
}

// Name returns the node's name bytes. Never nil except transiently during
// construction.
func (n *Node) Name() []byte { return n.name }

// Value returns the node's value bytes, or nil if the node carries none.
func (n *Node) Value() []byte { return n.value }

// SetValue replaces the node's value, taking ownership of v.
func (n *Node) SetValue(v []byte) { n.value = v; n.flags |= Modified }

// Parent returns the node's parent, or nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// Dict returns the dictionary this node belongs to.
func (n *Node) Dict() *Dict { return n.dict }

// Hash returns the node's compound path hash.
func (n *Node) Hash() uint32 { return n.hash }

// Children returns the node's children in insertion order. The returned
// slice must not be mutated by the caller.
func (n *Node) Children() []*Node { return n.children }

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int { return len(n.children) }

// NthChild returns the i'th child (0-based), or nil if out of range.
func (n *Node) NthChild(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// recomputeHash re-derives this node's path hash from its current name
// and its parent's hash. The root's hash is a fixed constant and is
// never recomputed here.
func (n *Node) recomputeHash() {
	if n.parent == nil {
		n.hash = bhash.RootHash
		return
	}
	n.hash = bhash.PathHash(n.name, n.parent.hash)
}
