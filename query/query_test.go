package query

import (
	"testing"

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

func TestResolveAbsoluteIndexed(t *testing.T) {
	d := build(t, "cars { car bob { doors 3; } }", 0)
	n, ok := Resolve(d, d.Root(), []byte("cars/car/bob/doors"))
	if !ok {
		t.Fatalf("Resolve: not found")
	}
	if string(n.Value()) != "3" {
		t.Fatalf("doors value = %q, want %q", n.Value(), "3")
	}
}

func TestResolveAbsoluteUnindexed(t *testing.T) {
	d := build(t, "cars { car bob { doors 3; } }", node.NoIndex)
	n, ok := Resolve(d, d.Root(), []byte("cars/car/bob/doors"))
	if !ok {
		t.Fatalf("Resolve: not found")
	}
	if string(n.Value()) != "3" {
		t.Fatalf("doors value = %q, want %q", n.Value(), "3")
	}
}

func TestResolveLeadingSlashIndexed(t *testing.T) {
	d := build(t, "cars { car bob { doors 3; } }", 0)
	n, ok := Resolve(d, d.Root(), []byte("/cars/car/bob/doors"))
	if !ok {
		t.Fatalf("Resolve(/cars/...): not found")
	}
	if string(n.Value()) != "3" {
		t.Fatalf("doors value = %q, want %q", n.Value(), "3")
	}
}

func TestResolveLeadingSlashUnindexed(t *testing.T) {
	d := build(t, "cars { car bob { doors 3; } }", node.NoIndex)
	n, ok := Resolve(d, d.Root(), []byte("/cars/car/bob/doors"))
	if !ok {
		t.Fatalf("Resolve(/cars/...): not found")
	}
	if string(n.Value()) != "3" {
		t.Fatalf("doors value = %q, want %q", n.Value(), "3")
	}
}

func TestResolveCollapsesDoubledSlash(t *testing.T) {
	d := build(t, "cars { car bob { doors 3; } }", 0)
	n, ok := Resolve(d, d.Root(), []byte("cars//car/bob/doors"))
	if !ok {
		t.Fatalf("Resolve(cars//car/...): not found")
	}
	if string(n.Value()) != "3" {
		t.Fatalf("doors value = %q, want %q", n.Value(), "3")
	}
}

func TestResolveMissingPath(t *testing.T) {
	d := build(t, "cars { car bob { doors 3; } }", 0)
	if _, ok := Resolve(d, d.Root(), []byte("cars/car/alice/doors")); ok {
		t.Fatalf("Resolve: expected miss for nonexistent sibling")
	}
}

func TestResolveRelativeToNonRoot(t *testing.T) {
	d := build(t, "cars { car bob { doors 3; } }", 0)
	cars, ok := Resolve(d, d.Root(), []byte("cars"))
	if !ok {
		t.Fatalf("Resolve(cars): not found")
	}
	doors, ok := Resolve(d, cars, []byte("car/bob/doors"))
	if !ok || string(doors.Value()) != "3" {
		t.Fatalf("Resolve relative: %v %v", ok, doors)
	}
}

func TestResolveEscapedSlashInSegment(t *testing.T) {
	d := node.New("test", 0)
	n, err := d.CreateNode(d.Root(), node.Leaf, []byte("a/b"), []byte("v"))
	if err != nil {
		t.Fatalf("CreateNode: %v", err)
	}
	got, ok := Resolve(d, d.Root(), []byte(`a\/b`))
	if !ok || got != n {
		t.Fatalf("Resolve(a\\/b) = %v %v, want the a/b node", got, ok)
	}
}

func TestGetPathRoundTripsThroughResolve(t *testing.T) {
	d := build(t, "cars { car bob { doors 3; } }", 0)
	doors, ok := Resolve(d, d.Root(), []byte("cars/car/bob/doors"))
	if !ok {
		t.Fatalf("Resolve: not found")
	}
	path := GetPath(doors)
	again, ok := Resolve(d, d.Root(), path)
	if !ok || again != doors {
		t.Fatalf("GetPath round trip: path=%q ok=%v again=%v", path, ok, again)
	}
}

func TestGetEscapedPathEscapesSlash(t *testing.T) {
	d := node.New("test", 0)
	n, _ := d.CreateNode(d.Root(), node.Leaf, []byte("a/b"), []byte("v"))
	path := GetEscapedPath(n)
	if string(path) != `a\/b` {
		t.Fatalf("GetEscapedPath = %q, want %q", path, `a\/b`)
	}
}
