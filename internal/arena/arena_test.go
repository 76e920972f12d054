package arena

import "testing"

func TestAllocOOM(t *testing.T) {
	a := New(100)

	p1 := a.Alloc(40)
	if p1 == nil {
		t.Fatalf("first alloc failed")
	}
	if &p1[0] != &a.buf[0] {
		t.Fatalf("first alloc not at base")
	}

	p2 := a.Alloc(40)
	if p2 == nil {
		t.Fatalf("second alloc failed")
	}
	if &p2[0] != &a.buf[40] {
		t.Fatalf("second alloc not at offset 40")
	}

	used := a.Used()
	if p3 := a.Alloc(40); p3 != nil {
		t.Fatalf("third alloc should fail")
	}
	if a.Used() != used {
		t.Fatalf("failed alloc moved the bump pointer: %d -> %d", used, a.Used())
	}

	a.Reset()
	p4 := a.Alloc(40)
	if p4 == nil || &p4[0] != &a.buf[0] {
		t.Fatalf("alloc after reset not at base")
	}
}

func TestAlignment(t *testing.T) {
	a := New(64)

	a.Alloc(1)
	p := a.Alloc(4)
	if &p[0] != &a.buf[4] {
		t.Fatalf("allocation not rounded to 4 bytes")
	}
	if a.Used() != 8 {
		t.Fatalf("used: got %d want 8", a.Used())
	}
}

func TestSaveRestore(t *testing.T) {
	a := New(128)

	a.Alloc(12)
	m := a.Save()
	first := a.Alloc(8)

	a.Alloc(32)
	a.Alloc(16)

	a.Restore(m)
	if a.Used() != 12 {
		t.Fatalf("restore: used %d want 12", a.Used())
	}
	again := a.Alloc(8)
	if &again[0] != &first[0] {
		t.Fatalf("alloc after restore returned a different address")
	}
}

func TestNoZeroOnReset(t *testing.T) {
	a := New(16)
	p := a.Alloc(4)
	p[0] = 0xAB
	a.Reset()
	q := a.Alloc(4)
	if q[0] != 0xAB {
		t.Fatalf("reset zeroed memory")
	}
}

func TestExactFit(t *testing.T) {
	a := New(8)
	if a.Alloc(8) == nil {
		t.Fatalf("exact-fit alloc failed")
	}
	if a.Remaining() != 0 {
		t.Fatalf("remaining: got %d", a.Remaining())
	}
	if a.Alloc(1) != nil {
		t.Fatalf("alloc past end succeeded")
	}
	if a.Alloc(0) == nil {
		t.Fatalf("zero-byte alloc at end should succeed")
	}
}
