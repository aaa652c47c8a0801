package walk

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wowczarek/barser/bparse"
	"github.com/wowczarek/barser/node"
)

func build(t *testing.T, src string, flags node.DictFlags) *node.Dict {
	t.Helper()
	d := node.New("test", flags)
	if err := bparse.Parse(d, []byte(src)); err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	return d
}

func TestWalkVisitsEveryNodePreorder(t *testing.T) {
	d := build(t, "a { b 1; c 2; }", 0)
	var names []string
	WalkDict(d, nil, func(dict *node.Dict, n *node.Node, user, feedback any, stop *bool) any {
		names = append(names, string(n.Name()))
		return nil
	})
	want := []string{"", "a", "b", "c"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("visited nodes mismatch (-want +got):\n%s", diff)
	}
}

func TestWalkStopSignalHaltsEntireTraversal(t *testing.T) {
	d := build(t, "a { b 1; c 2; }", 0)
	var visited []string
	stopped := WalkDict(d, nil, func(dict *node.Dict, n *node.Node, user, feedback any, stop *bool) any {
		visited = append(visited, string(n.Name()))
		if string(n.Name()) == "b" {
			*stop = true
		}
		return nil
	})
	if stopped == nil || string(stopped.Name()) != "b" {
		t.Fatalf("Walk returned %v, want node %q", stopped, "b")
	}
	if len(visited) != 3 {
		t.Fatalf("visited %v, want exactly [\"\" a b] (c must never be reached)", visited)
	}
}

func TestWalkFeedbackThreadsToChildren(t *testing.T) {
	d := build(t, "a { b 1; }", 0)
	var depths []int
	WalkDict(d, nil, func(dict *node.Dict, n *node.Node, user, feedback any, stop *bool) any {
		depth := 0
		if feedback != nil {
			depth = feedback.(int) + 1
		}
		depths = append(depths, depth)
		return depth
	})
	want := []int{0, 1, 2}
	if diff := cmp.Diff(want, depths); diff != "" {
		t.Fatalf("depths mismatch (-want +got):\n%s", diff)
	}
}

func TestIndexAndReindexAreNoopsWithoutIndex(t *testing.T) {
	d := build(t, "a { b 1; }", node.NoIndex)
	if d.Indexed() {
		t.Fatalf("dict built with NoIndex reports Indexed()")
	}
	// There is no public "attach index" primitive, so Index()/Reindex()
	// leave a dict built with NoIndex unindexed.
	Index(d)
	Reindex(d)
	if d.Indexed() {
		t.Fatalf("Index/Reindex made a NoIndex dict report Indexed()")
	}
	if a := d.Root().NthChild(0); a.HasFlag(node.Indexed) {
		t.Fatalf("node %q marked INDEXED in a NoIndex dict", a.Name())
	}
}

func TestFilterCollectsAcceptedNodesInPreorder(t *testing.T) {
	d := build(t, "a { b 1; c 2; }", 0)
	leaves := Filter(d, d.Root(), nil, func(dict *node.Dict, n *node.Node, user, feedback any, stop *bool) any {
		if n.Type() == node.Leaf {
			*stop = true
		}
		return nil
	})
	if len(leaves) != 2 {
		t.Fatalf("Filter found %d leaves, want 2", len(leaves))
	}
	if string(leaves[0].Name()) != "b" || string(leaves[1].Name()) != "c" {
		t.Fatalf("leaves = %q, %q, want b, c in order", leaves[0].Name(), leaves[1].Name())
	}
}

func TestWalkPathsComputesAbsolutePaths(t *testing.T) {
	d := build(t, "a { b 1; }", 0)
	got := map[string]string{}
	WalkPaths(d, nil, false, func(dict *node.Dict, n *node.Node, user any, path []byte, stop *bool) {
		got[string(n.Name())] = string(path)
	})
	if got["a"] != "a" {
		t.Fatalf("path for a = %q, want %q", got["a"], "a")
	}
	if got["b"] != "a/b" {
		t.Fatalf("path for b = %q, want %q", got["b"], "a/b")
	}
}

func TestWalkPathsEscapesSlashInNames(t *testing.T) {
	d := node.New("test", 0)
	if _, err := d.CreateNode(d.Root(), node.Leaf, []byte("a/b"), []byte("v")); err != nil {
		t.Fatalf("CreateNode: %v", err)
	}
	var gotPath string
	WalkPaths(d, nil, true, func(dict *node.Dict, n *node.Node, user any, path []byte, stop *bool) {
		if n.Type() == node.Leaf {
			gotPath = string(path)
		}
	})
	if gotPath != `a\/b` {
		t.Fatalf("escaped path = %q, want %q", gotPath, `a\/b`)
	}
}
