package falcon

import "testing"

const testLog2Block = 6

func TestFilterHighConfidenceClaimsSlotThenSuppressesDuplicate(t *testing.T) {
	pf := NewPrefetchFilter(true)
	ghr := NewGlobalRegister(true)
	addr := uint64(0x10000)

	if !pf.Check(addr, HighConfidencePrefetch, ghr, testLog2Block) {
		t.Fatalf("first high-confidence claim on an empty slot should succeed")
	}
	if pf.Check(addr, HighConfidencePrefetch, ghr, testLog2Block) {
		t.Fatalf("second high-confidence claim on the same line should be suppressed")
	}
}

func TestFilterLowConfidenceDoesNotClaimSlot(t *testing.T) {
	pf := NewPrefetchFilter(true)
	ghr := NewGlobalRegister(true)
	addr := uint64(0x20000)

	if !pf.Check(addr, LowConfidencePrefetch, ghr, testLog2Block) {
		t.Fatalf("low-confidence check on an empty slot should report issue-ok")
	}
	q, _ := quotientRemainder(addr, testLog2Block)
	if pf.slots[q].valid || pf.slots[q].useful {
		t.Fatalf("low-confidence prefetch must never set valid or useful")
	}
	// Because nothing claimed the slot, a later high-confidence prefetch to
	// the same line can still claim it.
	if !pf.Check(addr, HighConfidencePrefetch, ghr, testLog2Block) {
		t.Fatalf("high-confidence upgrade after an unclaimed low-confidence check should succeed")
	}
}

func TestFilterDemandAccessMarksUsefulAndCreditsGHR(t *testing.T) {
	pf := NewPrefetchFilter(true)
	ghr := NewGlobalRegister(true)
	addr := uint64(0x30000)

	pf.Check(addr, HighConfidencePrefetch, ghr, testLog2Block)
	ghr.RecordIssue()

	pf.Check(addr, DemandAccess, ghr, testLog2Block)
	if ghr.PfUseful() != 1 {
		t.Fatalf("demand access to a previously-valid prefetched line should credit pf_useful, got %d", ghr.PfUseful())
	}

	// A second demand access to the same line must not double-count.
	pf.Check(addr, DemandAccess, ghr, testLog2Block)
	if ghr.PfUseful() != 1 {
		t.Fatalf("repeated demand access must not double-credit pf_useful, got %d", ghr.PfUseful())
	}
}

func TestFilterEvictClearsSlotAndPenalizesUnusedPrefetch(t *testing.T) {
	pf := NewPrefetchFilter(true)
	ghr := NewGlobalRegister(true)
	addr := uint64(0x40000)

	pf.Check(addr, HighConfidencePrefetch, ghr, testLog2Block)
	ghr.RecordIssue()
	ghr.incrementUseful()
	ghr.incrementUseful()

	pf.Check(addr, Evict, ghr, testLog2Block)

	q, _ := quotientRemainder(addr, testLog2Block)
	if pf.slots[q].valid {
		t.Fatalf("evict must clear the slot's valid bit")
	}
	if ghr.PfUseful() != 1 {
		t.Fatalf("evicting an unused prefetch should decrement pf_useful once, got %d", ghr.PfUseful())
	}
}
