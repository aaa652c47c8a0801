package query

import (
	"bytes"

	"github.com/wowczarek/barser/bhash"
	"github.com/wowczarek/barser/chartable"
	"github.com/wowczarek/barser/node"
)

// Resolve looks up the node addressed by query relative to ref (pass
// dict.Root() for an absolute query), per §4.6: tokenize, compute the
// compound path hash, then either probe PathIndex and verify candidates
// byte-exact, or fall back to a naive per-segment child scan when the
// dictionary carries no index.
func Resolve(dict *node.Dict, ref *node.Node, query []byte) (*node.Node, bool) {
	segs := splitSegments(query)
	if len(segs) == 0 {
		return ref, true
	}
	if dict.Indexed() {
		return resolveIndexed(dict, ref, segs)
	}
	return resolveNaive(ref, segs)
}

func compoundHash(ref *node.Node, segs [][]byte) uint32 {
	h := ref.Hash()
	for _, s := range segs {
		h = bhash.PathHash(s, h)
	}
	return h
}

func cleanedQuery(segs [][]byte) []byte {
	return bytes.Join(segs, []byte{chartable.PathSep})
}

// resolveIndexed probes PathIndex for the compound hash and verifies each
// chain candidate by reconstructing its path back to ref and comparing it
// byte-exact to the cleaned query — the hash alone only narrows the
// search, since distinct paths can collide.
func resolveIndexed(dict *node.Dict, ref *node.Node, segs [][]byte) (*node.Node, bool) {
	hash := compoundHash(ref, segs)
	want := cleanedQuery(segs)
	for _, e := range dict.Index().Get(hash) {
		n, ok := e.(*node.Node)
		if !ok {
			continue
		}
		if bytes.Equal(relativePath(n, ref), want) {
			return n, true
		}
	}
	return nil, false
}

// relativePath renders n's path from ref (exclusive) to n (inclusive), the
// same shape cleanedQuery produces from raw segments, so the two compare
// byte-exact.
func relativePath(n, ref *node.Node) []byte {
	var names [][]byte
	for cur := n; cur != nil && cur != ref; cur = cur.Parent() {
		names = append(names, cur.Name())
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return bytes.Join(names, []byte{chartable.PathSep})
}

// resolveNaive walks segment by segment from ref, using whatever lookup
// GetChild provides (a naive scan, since this path is only taken when the
// dictionary carries no PathIndex).
func resolveNaive(ref *node.Node, segs [][]byte) (*node.Node, bool) {
	cur := ref
	for _, s := range segs {
		next := cur.Dict().GetChild(cur, s)
		if next == nil {
			return nil, false
		}
		cur = next
	}
	return cur, true
}
