package walk

import "github.com/wowczarek/barser/node"

// Filter walks n and its descendants in preorder exactly like Walk, but
// reinterprets *stop as "accept" rather than "halt": every node for which
// callback sets it is collected, and the walk continues regardless.
func Filter(dict *node.Dict, n *node.Node, user any, callback Callback) []*node.Node {
	var out []*node.Node
	var visit func(cur *node.Node, feedback any)
	visit = func(cur *node.Node, feedback any) {
		accept := false
		fb := callback(dict, cur, user, feedback, &accept)
		if accept {
			out = append(out, cur)
		}
		for _, c := range cur.Children() {
			visit(c, fb)
		}
	}
	visit(n, nil)
	return out
}
