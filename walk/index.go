package walk

import "github.com/wowczarek/barser/node"

// Index walks dict's entire tree, calling Put on every non-root node not
// already marked INDEXED. It works only on a dictionary that already
// carries a PathIndex and is a no-op otherwise: package node has no way
// to attach an index to a dictionary created with node.NoIndex.
func Index(dict *node.Dict) {
	if !dict.Indexed() {
		return
	}
	WalkDict(dict, nil, func(d *node.Dict, n *node.Node, user, feedback any, stop *bool) any {
		if n.Parent() == nil || n.HasFlag(node.Indexed) {
			return nil
		}
		d.Index().Put(n)
		n.SetSelfFlags(node.Indexed)
		return nil
	})
}

// Reindex walks dict's entire tree, deleting then reinserting every node
// into PathIndex, mirroring bsRehashCallback's delete-then-put shape.
// Hashes are not recomputed: each node goes back under the hash it
// already carries. A no-op if dict carries no index.
func Reindex(dict *node.Dict) {
	if !dict.Indexed() {
		return
	}
	WalkDict(dict, nil, func(d *node.Dict, n *node.Node, user, feedback any, stop *bool) any {
		if n.Parent() == nil {
			return nil
		}
		if n.HasFlag(node.Indexed) {
			d.Index().Delete(n)
		}
		d.Index().Put(n)
		n.SetSelfFlags(node.Indexed)
		return nil
	})
}
