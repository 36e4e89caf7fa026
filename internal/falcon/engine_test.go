package falcon

import "testing"

type recordedPrefetch struct {
	ip, baseAddr, pfAddr uint64
	fillUpper            bool
}

func newTestEngine() (*Engine, *[]recordedPrefetch) {
	e := NewEngine(DefaultEngineConfig())
	var recorded []recordedPrefetch
	e.PrefetchLine = func(ip, baseAddr, pfAddr uint64, fillIntoUpperLevel bool, meta uint32) bool {
		recorded = append(recorded, recordedPrefetch{ip, baseAddr, pfAddr, fillIntoUpperLevel})
		return true
	}
	return e, &recorded
}

func TestOnAccessPassesMetaThroughUnchanged(t *testing.T) {
	e, _ := newTestEngine()
	e.Initialize()
	const meta = uint32(0xCAFE)
	got := e.OnAccess(0x1000, 0x400000, 0, 0, meta)
	if got != meta {
		t.Fatalf("OnAccess must return its meta argument unchanged, got %#x want %#x", got, meta)
	}
}

func TestOnFillPassesMetaThroughUnchanged(t *testing.T) {
	e, _ := newTestEngine()
	const meta = uint32(0x1234)
	got := e.OnFill(0x1000, 0, 0, 0, 0x2000, meta)
	if got != meta {
		t.Fatalf("OnFill must return its meta argument unchanged, got %#x want %#x", got, meta)
	}
}

func TestOnAccessMonotonicStrideEventuallyIssuesPrefetches(t *testing.T) {
	e, recorded := newTestEngine()
	e.Initialize()

	const blockSize = 1 << 6
	page := uint64(0x77) << 12

	// Repeat the same stride across many accesses: enough trips through PT
	// training to drive confidence above PF_THRESHOLD (spec.md scenario 1).
	for i := 0; i < 40; i++ {
		addr := page + uint64(i)*blockSize
		e.OnAccess(addr, 0x500000, 1, 0, 0)
	}

	if len(*recorded) == 0 {
		t.Fatalf("a long monotonic stride on one page should eventually issue at least one prefetch")
	}
}

func TestOnAccessZeroDeltaRepeatDoesNotPanicOrTrain(t *testing.T) {
	e, _ := newTestEngine()
	addr := uint64(0x99) << 12
	for i := 0; i < 5; i++ {
		e.OnAccess(addr, 0, 1, 0, 0)
	}
	if e.PTOccupancy() != 0 {
		t.Fatalf("repeat accesses to one line must not train PT, got %d trained sets", e.PTOccupancy())
	}
}

func TestOnFillClearsFilterSlotForEvictedLine(t *testing.T) {
	e, _ := newTestEngine()
	evicted := uint64(0x123456)
	e.filter.Check(evicted, HighConfidencePrefetch, e.ghr, e.cfg.Geometry.Log2BlockSize)

	e.OnFill(0, 0, 0, 0, evicted, 0)

	q, _ := quotientRemainder(evicted, e.cfg.Geometry.Log2BlockSize)
	if e.filter.slots[q].valid {
		t.Fatalf("OnFill should have cleared the evicted line's filter slot")
	}
}

func TestGlobalAccuracyAccessorsStartAtZero(t *testing.T) {
	e, _ := newTestEngine()
	if e.GlobalAccuracy() != 0 || e.PfIssued() != 0 || e.PfUseful() != 0 {
		t.Fatalf("a fresh engine should report all global counters at zero")
	}
}
