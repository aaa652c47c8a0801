package index

import "testing"

type fakeEntry struct {
	hash uint32
	id   string
}

func (f *fakeEntry) Hash() uint32 { return f.hash }

func TestPutGetRoundTrip(t *testing.T) {
	ix := New()
	e := &fakeEntry{hash: 42, id: "a"}
	ix.Put(e)

	got := ix.Get(42)
	if len(got) != 1 || got[0] != e {
		t.Fatalf("Get(42) = %v, want [%v]", got, e)
	}
	if got := ix.Get(99); got != nil {
		t.Fatalf("Get(99) = %v, want nil", got)
	}
}

func TestPutCollisionChainsInInsertionOrder(t *testing.T) {
	ix := New()
	a := &fakeEntry{hash: 7, id: "a"}
	b := &fakeEntry{hash: 7, id: "b"}
	c := &fakeEntry{hash: 7, id: "c"}
	ix.Put(a)
	ix.Put(b)
	ix.Put(c)

	got := ix.Get(7)
	if len(got) != 3 {
		t.Fatalf("Get(7) len = %d, want 3", len(got))
	}
	if got[0] != a || got[1] != b || got[2] != c {
		t.Fatalf("Get(7) = %v, want insertion order a,b,c", got)
	}

	collisions, maxChain := ix.Stats()
	if collisions != 2 {
		t.Fatalf("collisions = %d, want 2", collisions)
	}
	if maxChain != 3 {
		t.Fatalf("maxChain = %d, want 3", maxChain)
	}
}

func TestDeleteHead(t *testing.T) {
	ix := New()
	a := &fakeEntry{hash: 1, id: "a"}
	b := &fakeEntry{hash: 1, id: "b"}
	ix.Put(a)
	ix.Put(b)

	ix.Delete(a)
	got := ix.Get(1)
	if len(got) != 1 || got[0] != b {
		t.Fatalf("Get(1) after deleting head = %v, want [%v]", got, b)
	}
}

func TestDeleteMiddleAndTail(t *testing.T) {
	ix := New()
	a := &fakeEntry{hash: 1, id: "a"}
	b := &fakeEntry{hash: 1, id: "b"}
	c := &fakeEntry{hash: 1, id: "c"}
	ix.Put(a)
	ix.Put(b)
	ix.Put(c)

	ix.Delete(b)
	got := ix.Get(1)
	if len(got) != 2 || got[0] != a || got[1] != c {
		t.Fatalf("Get(1) after deleting middle = %v, want [a c]", got)
	}

	ix.Delete(c)
	got = ix.Get(1)
	if len(got) != 1 || got[0] != a {
		t.Fatalf("Get(1) after deleting tail = %v, want [a]", got)
	}
}

func TestDeleteMissingIsNoop(t *testing.T) {
	ix := New()
	a := &fakeEntry{hash: 1, id: "a"}
	ix.Put(a)
	ix.Delete(&fakeEntry{hash: 1, id: "ghost"})

	got := ix.Get(1)
	if len(got) != 1 || got[0] != a {
		t.Fatalf("Get(1) after deleting absent entry = %v, want [a]", got)
	}
}

func TestDeleteFromEmptyBucketIsNoop(t *testing.T) {
	ix := New()
	ix.Delete(&fakeEntry{hash: 1, id: "a"})
	if got := ix.Get(1); got != nil {
		t.Fatalf("Get(1) = %v, want nil", got)
	}
}
