package falcon

import (
	"github.com/golang/glog"

	"github.com/falconsim/falcon/internal/hash"
)

// filterSlot is one quotient-filter slot: a 6-bit remainder tag plus the
// valid/useful bits (spec.md §3, §4.4).
type filterSlot struct {
	remainderTag uint32
	valid        bool
	useful       bool
}

// PrefetchFilter is the approximate-membership + usefulness tracker
// described in spec.md §4.4: FILTER_SET=1024 quotient-indexed slots.
// Remainder collisions are intrinsic false positives, not bugs.
type PrefetchFilter struct {
	slots  [FilterSet]filterSlot
	sanity bool
}

// NewPrefetchFilter builds an empty PF (all slots start invalid).
func NewPrefetchFilter(sanityCheck bool) *PrefetchFilter {
	return &PrefetchFilter{sanity: sanityCheck}
}

// quotientRemainder derives the (quotient, remainder) pair from a cache
// line address, the indexing scheme shared by every PF request (spec.md
// §4.4). log2BlockSize comes from the host cache's geometry (spec.md §6).
func quotientRemainder(addr uint64, log2BlockSize uint) (quotient uint32, remainder uint32) {
	cacheLine := addr >> log2BlockSize
	h := hash.Mix(cacheLine)
	quotient = uint32(h>>RemainderBit) & (FilterSet - 1)
	remainder = uint32(h) & ((1 << RemainderBit) - 1)
	return quotient, remainder
}

// Check implements PF.check (spec.md §4.4) for all four request kinds.
// The bool return means different things per request: for the two
// prefetch kinds it means "issue this prefetch"; for DemandAccess/Evict
// it is always true and carries no meaning (kept for parity with the
// original's uniform bool contract).
func (pf *PrefetchFilter) Check(addr uint64, req FilterRequest, ghr *GlobalRegister, log2BlockSize uint) bool {
	quotient, remainder := quotientRemainder(addr, log2BlockSize)
	slot := &pf.slots[quotient]

	switch req {
	case HighConfidencePrefetch:
		if (slot.valid || slot.useful) && slot.remainderTag == remainder {
			return false
		}
		slot.valid = true
		slot.useful = false
		slot.remainderTag = remainder
		if glog.V(2) {
			glog.Infof("[PF] set valid quotient=%d remainder=%d", quotient, remainder)
		}
		return true

	case LowConfidencePrefetch:
		if (slot.valid || slot.useful) && slot.remainderTag == remainder {
			return false
		}
		// Deliberately does not set valid/useful: leaves room for a later
		// high-confidence upgrade to populate the slot (spec.md §4.4).
		return true

	case DemandAccess:
		if slot.remainderTag == remainder && !slot.useful {
			slot.useful = true
			if slot.valid {
				ghr.incrementUseful()
			}
			if glog.V(2) {
				glog.Infof("[PF] set useful quotient=%d pf_issued=%d pf_useful=%d", quotient, ghr.pfIssued, ghr.pfUseful)
			}
		}
		return true

	case Evict:
		if slot.valid && !slot.useful && ghr.pfUseful > 0 {
			ghr.decrementUseful()
		}
		slot.valid = false
		slot.useful = false
		slot.remainderTag = 0
		return true

	default:
		if pf.sanity {
			panic(ErrUnknownFilterRequest)
		}
		return false
	}
}
