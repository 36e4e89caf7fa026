package tracegen

import "testing"

func TestSequentialPatternStridesByOneBlock(t *testing.T) {
	g := New(Sequential, 0x10, 6, 12)
	accesses := g.Generate(4)
	if len(accesses) != 4 {
		t.Fatalf("expected 4 accesses, got %d", len(accesses))
	}
	for i := 1; i < len(accesses); i++ {
		delta := int64(accesses[i].Addr) - int64(accesses[i-1].Addr)
		if delta != 1<<6 {
			t.Fatalf("sequential pattern step %d: delta = %d, want %d", i, delta, 1<<6)
		}
	}
}

func TestPageCrossingPatternEventuallyChangesPage(t *testing.T) {
	g := New(PageCrossing, 0x20, 6, 12)
	accesses := g.Generate(200)
	firstPage := accesses[0].Addr >> 12
	crossed := false
	for _, a := range accesses {
		if a.Addr>>12 != firstPage {
			crossed = true
			break
		}
	}
	if !crossed {
		t.Fatalf("page-crossing pattern never left its starting page across 200 accesses")
	}
}

func TestAlternatingPatternUsesTwoDistinctStrides(t *testing.T) {
	g := New(Alternating, 0x30, 6, 12)
	accesses := g.Generate(4)
	d1 := int64(accesses[1].Addr) - int64(accesses[0].Addr)
	d2 := int64(accesses[2].Addr) - int64(accesses[1].Addr)
	if d1 == d2 {
		t.Fatalf("alternating pattern should use two distinct strides, got %d and %d both", d1, d2)
	}
}
