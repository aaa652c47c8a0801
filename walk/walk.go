// Package walk implements Barser's depth-first traversal primitives —
// the plain and path-threaded walkers, index/reindex, and filter — ported
// from barser.c's bsNodeWalk/bsWalk and their callback-driven helpers
// (bsRehashCallback, bsDupCallback).
package walk

import "github.com/wowczarek/barser/node"

// Callback is invoked once per node during a depth-first walk. Its return
// value becomes the feedback passed to that node's children. Setting
// *stop to true ends the whole traversal immediately — Walk then returns
// the node that signaled it, without visiting any further node anywhere
// in the tree, matching bsNodeWalk's shared cont flag.
type Callback func(dict *node.Dict, n *node.Node, user, feedback any, stop *bool) any

// Walk runs callback depth-first, preorder, over n and its descendants.
func Walk(dict *node.Dict, n *node.Node, user, feedback any, callback Callback) *node.Node {
	stop := false
	fb := callback(dict, n, user, feedback, &stop)
	if stop {
		return n
	}
	for _, c := range n.Children() {
		if stopped := Walk(dict, c, user, fb, callback); stopped != nil {
			return stopped
		}
	}
	return nil
}

// WalkDict runs callback over dict's entire tree, starting at its root
// with a nil initial feedback, mirroring bsWalk.
func WalkDict(dict *node.Dict, user any, callback Callback) *node.Node {
	return Walk(dict, dict.Root(), user, nil, callback)
}
