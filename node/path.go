package node

import (
	"bytes"

	"github.com/wowczarek/barser/bhash"
	"github.com/wowczarek/barser/chartable"
)

// GetFrom resolves a `/`-separated path relative to ref, escaping rules
// identical to package query's (`\/` and `\\` are literal, other escapes
// pass through unescaped). Restores barser.c's bsNodeGet as a
// NodeStore-level primitive, the way the C source kept it alongside
// bsCreateNode rather than in a separate module. Package query's Resolve
// implements the identical algorithm over a []byte query with a bool
// result, alongside path construction helpers (GetPath/GetEscapedPath).
func (d *Dict) GetFrom(ref *Node, path string) (*Node, error) {
	if ref == nil {
		return nil, ErrNilParent
	}
	segs := splitPathSegments([]byte(path))
	if len(segs) == 0 {
		return ref, nil
	}
	if d.index != nil {
		if n := d.getFromIndexed(ref, segs); n != nil {
			return n, nil
		}
		return nil, ErrNotFound
	}
	cur := ref
	for _, s := range segs {
		next := d.GetChild(cur, s)
		if next == nil {
			return nil, ErrNotFound
		}
		cur = next
	}
	return cur, nil
}

// splitPathSegments drops zero-length segments — from a leading `/`, a
// trailing `/`, or a doubled `//` — the same way splitSegments does,
// rather than keeping them as empty tokens.
func splitPathSegments(path []byte) [][]byte {
	var segs [][]byte
	var cur []byte
	for i := 0; i < len(path); i++ {
		c := path[i]
		if c == chartable.Escape && i+1 < len(path) {
			next := path[i+1]
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

// getFromIndexed probes PathIndex for the compound hash of ref+segs and
// verifies each candidate by reconstructing its path back to ref,
// exactly mirroring package query's resolveIndexed — hash collisions
// mean a bucket hit alone is never sufficient proof.
func (d *Dict) getFromIndexed(ref *Node, segs [][]byte) *Node {
	h := ref.hash
	for _, s := range segs {
		h = bhash.PathHash(s, h)
	}
	want := bytes.Join(segs, []byte{chartable.PathSep})

	for _, e := range d.index.Get(h) {
		n, ok := e.(*Node)
		if !ok {
			continue
		}
		if bytes.Equal(relativePathNames(n, ref), want) {
			return n
		}
	}
	return nil
}

func relativePathNames(n, ref *Node) []byte {
	var names [][]byte
	for cur := n; cur != nil && cur != ref; cur = cur.parent {
		names = append(names, cur.name)
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return bytes.Join(names, []byte{chartable.PathSep})
}
