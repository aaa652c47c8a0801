// Package dump implements Barser's pretty-printer: a tree-to-text
// renderer whose only contract is that re-parsing its output reproduces
// the same tree — insertion order, QUOTED flags, the INSTANCE compact
// form, and INACTIVE-prefix placement all survive the round trip, but
// exact whitespace is this package's own choice.
// Grounded on barser.c's _bsDumpNode; kept in its own package, depending
// only on node, the way go-tony's encode package depends only on its IR.
package dump

import (
	"fmt"
	"io"

	"github.com/wowczarek/barser/chartable"
	"github.com/wowczarek/barser/node"
)

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

// Dump writes dict's entire tree to w, one statement per top-level child
// of the root (the root itself is never printed).
func Dump(w io.Writer, dict *node.Dict) error {
	ew := &errWriter{w: w}
	for _, c := range dict.Root().Children() {
		dumpNode(ew, c, 0)
	}
	return ew.err
}

// DumpNode writes n as a single statement at depth 0, the same shape Dump
// gives each of the root's direct children — for tools (like cmd/barser's
// get) that resolve to some node other than the root and want to render
// just that subtree.
func DumpNode(w io.Writer, n *node.Node) error {
	ew := &errWriter{w: w}
	dumpNode(ew, n, 0)
	return ew.err
}

func indent(w *errWriter, depth int) {
	for i := 0; i < depth*chartable.IndentWidth; i++ {
		w.printf("%c", chartable.Indent)
	}
}

// dumpNode prints one top-level-or-nested statement, with no accumulated
// lead names — the entry point both Dump and BRANCH-body recursion use.
func dumpNode(w *errWriter, n *node.Node, depth int) {
	dumpStatement(w, nil, n, depth)
}

// dumpStatement prints n, having already descended through lead (a chain
// of reused INSTANCE wrappers whose names prefix this statement). An
// INSTANCE with no lead of its own either collapses into the compact
// one-line form when compactForm accepts it, or is
// flattened by recursing into each of its children with
// its own name appended to lead — inverting the nesting BLOCK_BEGIN/ENDVAL
// built in the first place. An INSTANCE reached through a lead is always
// flattened.
func dumpStatement(w *errWriter, lead []*node.Node, n *node.Node, depth int) {
	if n.Type() == node.Instance {
		if mid, leaf, ok := compactForm(n); ok && len(lead) == 0 {
			emitLine(w, lead, depth, n, func() {
				w.printf(" ")
				dumpName(w, mid)
				w.printf(" ")
				dumpName(w, leaf)
				if leaf.Value() != nil {
					w.printf(" ")
					dumpValue(w, leaf)
				}
			})
			return
		}
		for _, c := range n.Children() {
			dumpStatement(w, append(append([]*node.Node{}, lead...), n), c, depth)
		}
		return
	}

	switch n.Type() {
	case node.Leaf:
		emitLine(w, lead, depth, n, func() {
			if n.Value() != nil {
				w.printf(" ")
				dumpValue(w, n)
			}
		})

	case node.Array:
		emitLine(w, lead, depth, n, func() {
			w.printf(" [")
			for i, c := range n.Children() {
				if i > 0 {
					w.printf(", ")
				}
				dumpValue(w, c)
			}
			w.printf("]")
		})

	case node.Branch:
		indent(w, depth)
		if n.HasFlag(node.Inactive) {
			w.printf("inactive: ")
		}
		for _, l := range lead {
			dumpName(w, l)
			w.printf(" ")
		}
		dumpName(w, n)
		w.printf(" {\n")
		for _, c := range n.Children() {
			dumpNode(w, c, depth+1)
		}
		indent(w, depth)
		w.printf("}\n")
	}
}

// emitLine prints the common head (indent, "inactive: " prefix if n
// itself carries INACTIVE, lead names, n's own name) and the common tail
// (";\n"), with body filling in whatever sits between n's name and the
// terminator — a value, an array's elements, or an INSTANCE's flattened
// mid/leaf pair.
func emitLine(w *errWriter, lead []*node.Node, depth int, n *node.Node, body func()) {
	indent(w, depth)
	if n.HasFlag(node.Inactive) {
		w.printf("inactive: ")
	}
	for _, l := range lead {
		dumpName(w, l)
		w.printf(" ")
	}
	dumpName(w, n)
	body()
	w.printf(";\n")
}

// compactForm reports whether n (an INSTANCE) has exactly one BRANCH
// child with exactly one LEAF grandchild, neither of which carries
// INACTIVE itself — the shape that collapses to one line, whose only
// "inactive: " prefix belongs to n — and returns that BRANCH and LEAF.
func compactForm(n *node.Node) (mid, leaf *node.Node, ok bool) {
	if n.ChildCount() != 1 {
		return nil, nil, false
	}
	mid = n.NthChild(0)
	if mid.Type() != node.Branch || mid.ChildCount() != 1 || mid.HasFlag(node.Inactive) {
		return nil, nil, false
	}
	leaf = mid.NthChild(0)
	if leaf.Type() != node.Leaf || leaf.HasFlag(node.Inactive) {
		return nil, nil, false
	}
	return mid, leaf, true
}

func dumpName(w *errWriter, n *node.Node) {
	writeToken(w, n.Name(), n.HasFlag(node.QuotedName))
}

func dumpValue(w *errWriter, n *node.Node) {
	writeToken(w, n.Value(), n.HasFlag(node.QuotedValue))
}

func writeToken(w *errWriter, raw []byte, quoted bool) {
	if !quoted {
		w.printf("%s", raw)
		return
	}
	w.printf("%c", chartable.Quote)
	for _, b := range raw {
		if chartable.Is(b, chartable.Esc) {
			w.printf("%c%c", chartable.Escape, chartable.EscapeByte(b))
			continue
		}
		w.printf("%c", b)
	}
	w.printf("%c", chartable.Quote)
}
