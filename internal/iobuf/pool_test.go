package iobuf

import "testing"

func TestGetReturnsRequestedLength(t *testing.T) {
	p := New()
	buf := p.Get(100)
	if len(buf) != 100 {
		t.Fatalf("len = %d, want 100", len(buf))
	}
}

func TestGetPutReuses(t *testing.T) {
	p := New()
	buf := p.Get(1024)
	buf[0] = 0xAB
	p.Put(buf)

	buf2 := p.Get(1024)
	if len(buf2) != 1024 {
		t.Fatalf("len = %d, want 1024", len(buf2))
	}
	_, hits, _ := p.Stats()
	if hits == 0 {
		t.Error("expected at least one pool hit after Put then Get of the same size class")
	}
}

func TestOversizeBypassesPool(t *testing.T) {
	p := New()
	buf := p.Get(16 << 20) // larger than any size class
	if len(buf) != 16<<20 {
		t.Fatalf("len = %d, want %d", len(buf), 16<<20)
	}
	p.Put(buf) // should be a no-op, not panic
}

func TestPutNilIsNoop(t *testing.T) {
	p := New()
	p.Put(nil) // must not panic
}
