package node

import "testing"

func TestGetFromResolvesNestedPath(t *testing.T) {
	d := New("t", 0)
	host, _ := d.CreateNode(d.Root(), Branch, []byte("host"), nil)
	d.CreateNode(host, Leaf, []byte("port"), []byte("443"))

	n, err := d.GetFrom(d.Root(), "host/port")
	if err != nil {
		t.Fatalf("GetFrom: %v", err)
	}
	if string(n.Value()) != "443" {
		t.Fatalf("GetFrom value = %q, want %q", n.Value(), "443")
	}
}

func TestGetFromEmptyPathReturnsRef(t *testing.T) {
	d := New("t", 0)
	n, _ := d.CreateNode(d.Root(), Leaf, []byte("a"), nil)
	got, err := d.GetFrom(n, "")
	if err != nil || got != n {
		t.Fatalf("GetFrom(ref, \"\") = %v, %v, want ref, nil", got, err)
	}
}

func TestGetFromLeadingSlashIndexed(t *testing.T) {
	d := New("t", 0)
	host, _ := d.CreateNode(d.Root(), Branch, []byte("host"), nil)
	d.CreateNode(host, Leaf, []byte("port"), []byte("443"))

	n, err := d.GetFrom(d.Root(), "/host/port")
	if err != nil {
		t.Fatalf("GetFrom(/host/port): %v", err)
	}
	if string(n.Value()) != "443" {
		t.Fatalf("GetFrom value = %q, want %q", n.Value(), "443")
	}
}

func TestGetFromCollapsesDoubledSlash(t *testing.T) {
	d := New("t", 0)
	host, _ := d.CreateNode(d.Root(), Branch, []byte("host"), nil)
	d.CreateNode(host, Leaf, []byte("port"), []byte("443"))

	n, err := d.GetFrom(d.Root(), "host//port")
	if err != nil {
		t.Fatalf("GetFrom(host//port): %v", err)
	}
	if string(n.Value()) != "443" {
		t.Fatalf("GetFrom value = %q, want %q", n.Value(), "443")
	}
}

func TestGetFromMissingPathReturnsNotFound(t *testing.T) {
	d := New("t", 0)
	if _, err := d.GetFrom(d.Root(), "nope"); err != ErrNotFound {
		t.Fatalf("GetFrom(missing) = %v, want ErrNotFound", err)
	}
}

func TestGetFromEscapedSlashInSegment(t *testing.T) {
	d := New("t", 0)
	d.CreateNode(d.Root(), Leaf, []byte("a/b"), []byte("v"))

	n, err := d.GetFrom(d.Root(), `a\/b`)
	if err != nil {
		t.Fatalf("GetFrom with escaped segment: %v", err)
	}
	if string(n.Value()) != "v" {
		t.Fatalf("GetFrom value = %q, want %q", n.Value(), "v")
	}
}

func TestGetFromWithoutIndexFallsBackToNaiveDescent(t *testing.T) {
	d := New("t", NoIndex)
	host, _ := d.CreateNode(d.Root(), Branch, []byte("host"), nil)
	d.CreateNode(host, Leaf, []byte("port"), []byte("443"))

	n, err := d.GetFrom(d.Root(), "host/port")
	if err != nil {
		t.Fatalf("GetFrom (no index): %v", err)
	}
	if string(n.Value()) != "443" {
		t.Fatalf("GetFrom value = %q, want %q", n.Value(), "443")
	}
}
