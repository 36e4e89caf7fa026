package falcon

import "github.com/golang/glog"

// ghrEntry is one Global History Register slot: a recent high-signal
// prefetch whose target crossed a page boundary (spec.md §3, §4.5).
type ghrEntry struct {
	valid      bool
	sig        uint32
	confidence uint32
	offset     uint32
	delta      int32
}

// GlobalRegister holds the 8-entry GHR plus the two global saturating
// accuracy counters (spec.md §3, §4.5). "Global" here means scoped to one
// Engine instance, not process-wide — each cache/core owns its own
// GlobalRegister (spec.md §5, §9).
type GlobalRegister struct {
	entries [MaxGHREntry]ghrEntry

	pfIssued       uint32
	pfUseful       uint32
	globalAccuracy uint32

	sanity bool
}

// NewGlobalRegister builds an empty GHR with both counters at zero.
func NewGlobalRegister(sanityCheck bool) *GlobalRegister {
	return &GlobalRegister{sanity: sanityCheck}
}

// PfIssued, PfUseful, and GlobalAccuracy expose the global counters for
// metrics and testing (spec.md §3, P3, P4).
func (g *GlobalRegister) PfIssued() uint32       { return g.pfIssued }
func (g *GlobalRegister) PfUseful() uint32       { return g.pfUseful }
func (g *GlobalRegister) GlobalAccuracy() uint32 { return g.globalAccuracy }

// RefreshAccuracy recomputes global_accuracy from the current counters
// (spec.md §4.6 step 3): 100*pf_useful/pf_issued, or 0 if nothing issued
// yet.
func (g *GlobalRegister) RefreshAccuracy() uint32 {
	if g.pfIssued == 0 {
		g.globalAccuracy = 0
	} else {
		g.globalAccuracy = (100 * g.pfUseful) / g.pfIssued
	}
	return g.globalAccuracy
}

// RecordIssue increments pf_issued for a high-confidence prefetch and
// halves both global counters together if pf_issued saturates past
// GLOBAL_COUNTER_MAX (spec.md §4.6 step 7).
func (g *GlobalRegister) RecordIssue() {
	g.pfIssued++
	if g.pfIssued > GlobalCounterMax {
		g.pfIssued >>= 1
		g.pfUseful >>= 1
	}
}

func (g *GlobalRegister) incrementUseful() { g.pfUseful++ }

func (g *GlobalRegister) decrementUseful() {
	if g.pfUseful > 0 {
		g.pfUseful--
	}
}

// UpdateEntry implements GHR.update_entry (spec.md §4.5): overwrite the
// entry matching pf_offset if one exists, else replace the
// lowest-confidence entry. Matching is by offset, not sig — the
// sig-matching alternative visible (commented out) in the original source
// is an intentionally unimplemented future tunable (spec.md §9, Open
// Questions).
func (g *GlobalRegister) UpdateEntry(pfSig, pfConfidence, pfOffset uint32, pfDelta int32) {
	minConf := uint32(100)
	victim := MaxGHREntry

	for i := 0; i < MaxGHREntry; i++ {
		if g.entries[i].valid && g.entries[i].offset == pfOffset {
			g.entries[i].sig = pfSig
			g.entries[i].confidence = pfConfidence
			g.entries[i].delta = pfDelta
			if glog.V(2) {
				glog.Infof("[GHR] update in place index=%d sig=%#x confidence=%d", i, pfSig, pfConfidence)
			}
			return
		}

		if g.entries[i].confidence < minConf {
			minConf = g.entries[i].confidence
			victim = i
		}
	}

	if victim == MaxGHREntry {
		if g.sanity {
			panic(ErrGHRVictimMiss)
		}
		return
	}

	g.entries[victim] = ghrEntry{
		valid:      true,
		sig:        pfSig,
		confidence: pfConfidence,
		offset:     pfOffset,
		delta:      pfDelta,
	}

	if glog.V(2) {
		glog.Infof("[GHR] replace index=%d sig=%#x confidence=%d offset=%d delta=%d", victim, pfSig, pfConfidence, pfOffset, pfDelta)
	}
}

// CheckEntry implements GHR.check_entry (spec.md §4.5): returns the index
// of the highest-confidence entry matching page_offset, or MaxGHREntry if
// none match.
func (g *GlobalRegister) CheckEntry(pageOffset uint32) uint32 {
	maxConf := uint32(0)
	maxWay := uint32(MaxGHREntry)

	for i := 0; i < MaxGHREntry; i++ {
		if g.entries[i].offset == pageOffset && maxConf < g.entries[i].confidence {
			maxConf = g.entries[i].confidence
			maxWay = uint32(i)
		}
	}

	return maxWay
}
