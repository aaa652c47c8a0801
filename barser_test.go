package barser

import (
	"bytes"
	"testing"
)

func TestParseAndGet(t *testing.T) {
	dict, err := Parse("test", 0, []byte("cars { car bob { doors 3; } }"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	n, ok := Get(dict, []byte("cars/car/bob/doors"))
	if !ok {
		t.Fatalf("Get(cars/car/bob/doors) not found")
	}
	if string(n.Value()) != "3" {
		t.Fatalf("doors value = %q, want %q", n.Value(), "3")
	}
}

func TestParseErrorLeavesDictUnset(t *testing.T) {
	dict, err := Parse("test", 0, []byte("a { b;"))
	if err == nil {
		t.Fatalf("Parse(unbalanced): want error, got nil")
	}
	if dict != nil {
		t.Fatalf("Parse(unbalanced): want nil dict on error, got %v", dict)
	}
}

func TestPathRoundTripsThroughGet(t *testing.T) {
	dict, err := Parse("test", 0, []byte(`s "a/b" v;`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	n, ok := Get(dict, []byte(`s/a\/b`))
	if !ok {
		t.Fatalf("Get with escaped segment not found")
	}
	p := Path(n)
	if got, ok := Get(dict, p); !ok || got != n {
		t.Fatalf("Get(Path(n)) did not resolve back to n (path=%q)", p)
	}
}

func TestWalkAndDump(t *testing.T) {
	dict, err := Parse("test", 0, []byte("a { b 1; c 2; }"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	var names []string
	Walk(dict, func(d *Dict, n *Node, user, feedback any, stop *bool) any {
		names = append(names, string(n.Name()))
		return nil
	})
	if len(names) != 4 {
		t.Fatalf("Walk visited %v, want 4 nodes", names)
	}

	var buf bytes.Buffer
	if err := Dump(&buf, dict); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	dict2, err := Parse("test2", 0, buf.Bytes())
	if err != nil {
		t.Fatalf("re-parse of dump output %q: %v", buf.String(), err)
	}
	if _, ok := Get(dict2, []byte("a/b")); !ok {
		t.Fatalf("a/b missing after round trip (dump: %q)", buf.String())
	}
}

func TestDumpNodeRendersSubtreeOnly(t *testing.T) {
	dict, err := Parse("test", 0, []byte("a { b 1; } z 9;"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	n, ok := Get(dict, []byte("a"))
	if !ok {
		t.Fatalf("Get(a) not found")
	}
	var buf bytes.Buffer
	if err := DumpNode(&buf, n); err != nil {
		t.Fatalf("DumpNode: %v", err)
	}
	if bytes.Contains(buf.Bytes(), []byte("z")) {
		t.Fatalf("DumpNode leaked sibling content: %q", buf.String())
	}
}
