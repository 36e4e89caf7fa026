package falcon

import (
	"github.com/golang/glog"

	"github.com/falconsim/falcon/internal/hash"
)

// stEntry is one way of the (effectively fully-associative, ST_SET=1)
// Signature Table: {valid, tag, last_offset, sig, lru} (spec.md §3).
type stEntry struct {
	valid      bool
	tag        uint32
	lastOffset uint32
	sig        uint32
	lru        uint32 // 0 = MRU ... ST_WAY-1 = LRU
}

// SignatureTable is the per-page (tag, last_offset, signature) state
// described in spec.md §4.2. ST_SET=1 makes it effectively fully
// associative over ST_WAY=256 ways.
type SignatureTable struct {
	ways       [STWay]stEntry
	sanity     bool
	ghrEnabled bool
}

// NewSignatureTable builds an ST with LRU ranks initialized to a
// permutation of [0, ST_WAY) (way i starts at rank i), matching the
// original source's constructor.
func NewSignatureTable(sanityCheck, ghrEnabled bool) *SignatureTable {
	st := &SignatureTable{sanity: sanityCheck, ghrEnabled: ghrEnabled}
	for i := range st.ways {
		st.ways[i].lru = uint32(i)
	}
	return st
}

// ReadAndUpdateSig implements ST.read_and_update_sig (spec.md §4.2): look
// up the page, fold the new delta into its signature (or bootstrap a
// fresh entry from the GHR on first touch), and return (last_sig,
// curr_sig, delta) for the caller to train PT and start a lookahead.
func (st *SignatureTable) ReadAndUpdateSig(page uint64, pageOffset uint32, ghr *GlobalRegister) (lastSig uint32, currSig uint32, delta int32) {
	_ = hash.Mix(page) % STSet // ST_SET==1: set selection is always 0, kept for fidelity to the spec's set-indexed design
	partialPage := uint32(page) & STTagMask

	match := STWay
	hit := false

	for way := 0; way < STWay; way++ {
		e := &st.ways[way]
		if e.valid && e.tag == partialPage {
			lastSig = e.sig
			delta = int32(pageOffset) - int32(e.lastOffset)

			if delta != 0 {
				e.sig = foldSignature(lastSig, delta)
				currSig = e.sig
				e.lastOffset = pageOffset
				if glog.V(2) {
					glog.Infof("[ST] hit way=%d last_sig=%#x curr_sig=%#x delta=%d", way, lastSig, currSig, delta)
				}
			} else {
				// Hitting the same cache line: signal "no training" to the caller.
				lastSig = 0
			}

			match = way
			hit = true
			break
		}
	}

	if match == STWay {
		for way := 0; way < STWay; way++ {
			if !st.ways[way].valid {
				e := &st.ways[way]
				e.valid = true
				e.tag = partialPage
				e.sig = 0
				e.lastOffset = pageOffset
				currSig = 0
				match = way
				if glog.V(2) {
					glog.Infof("[ST] invalid-slot fill way=%d tag=%#x", way, partialPage)
				}
				break
			}
		}
	}

	if match == STWay {
		for way := 0; way < STWay; way++ {
			if st.ways[way].lru == STWay-1 {
				e := &st.ways[way]
				e.tag = partialPage
				e.sig = 0
				e.lastOffset = pageOffset
				currSig = 0
				match = way
				if glog.V(2) {
					glog.Infof("[ST] lru evict way=%d tag=%#x", way, partialPage)
				}
				break
			}
		}

		if match == STWay {
			if st.sanity {
				panic(ErrSTReplacementMiss)
			}
			return 0, 0, 0
		}
	}

	if st.ghrEnabled && !hit {
		if found := ghr.CheckEntry(pageOffset); found < MaxGHREntry {
			entry := ghr.entries[found]
			st.ways[match].sig = foldSignature(entry.sig, entry.delta)
			currSig = st.ways[match].sig
		}
	}

	// LRU update: every way ranked ahead of match moves back by one, then
	// match is promoted to MRU (rank 0). {lru[w]} stays a permutation of
	// [0, ST_WAY).
	for way := 0; way < STWay; way++ {
		if st.ways[way].lru < st.ways[match].lru {
			st.ways[way].lru++
			if st.sanity && st.ways[way].lru >= STWay {
				panic(ErrSTLRURange)
			}
		}
	}
	st.ways[match].lru = 0

	return lastSig, currSig, delta
}
