package falcon

import (
	"github.com/golang/glog"

	"github.com/falconsim/falcon/internal/hash"
)

// ptWay is one way of a Pattern Table set: a signed delta and its
// saturating occurrence counter (spec.md §3, §4.3).
type ptWay struct {
	delta   int32
	cDelta  uint32
}

// ptSet is one set of the Pattern Table: PT_WAY ways sharing a
// saturating signature-occurrence counter c_sig.
type ptSet struct {
	ways [PTWay]ptWay
	cSig uint32
}

// PatternTable is the (signature -> delta, confidence) correlation table
// described in spec.md §4.3: PT_SET=512 sets x PT_WAY=4 ways.
type PatternTable struct {
	sets   [PTSet]ptSet
	sanity bool
}

// NewPatternTable builds an empty PT (all deltas/counters start at zero).
func NewPatternTable(sanityCheck bool) *PatternTable {
	return &PatternTable{sanity: sanityCheck}
}

// UpdatePattern trains the (last_sig, delta) correlation (spec.md §4.3).
// Only called by the Engine when last_sig != 0.
func (pt *PatternTable) UpdatePattern(lastSig uint32, currDelta int32) {
	setIdx := hash.Mix(uint64(lastSig)) % PTSet
	s := &pt.sets[setIdx]

	match := PTWay
	for way := 0; way < PTWay; way++ {
		if s.ways[way].delta == currDelta {
			s.ways[way].cDelta++
			s.cSig++
			match = way
			break
		}
	}

	if match == PTWay {
		victim := PTWay
		minCounter := uint32(CSigMax)
		for way := 0; way < PTWay; way++ {
			if s.ways[way].cDelta < minCounter {
				victim = way
				minCounter = s.ways[way].cDelta
			}
		}

		if victim == PTWay {
			if pt.sanity {
				panic(ErrPTVictimMiss)
			}
			return
		}

		s.ways[victim].delta = currDelta
		s.ways[victim].cDelta = 0
		s.cSig++

		if glog.V(2) {
			glog.Infof("[PT] miss sig=%#x set=%d way=%d delta=%d c_sig=%d", lastSig, setIdx, victim, currDelta, s.cSig)
		}
	} else if glog.V(2) {
		glog.Infof("[PT] hit sig=%#x set=%d way=%d c_delta=%d c_sig=%d", lastSig, setIdx, match, s.ways[match].cDelta, s.cSig)
	}

	// Saturation rule: whenever c_sig exceeds C_SIG_MAX, halve it and every
	// c_delta in the set together (spec.md §4.3, P2, scenario 7).
	if s.cSig > CSigMax {
		for way := 0; way < PTWay; way++ {
			s.ways[way].cDelta >>= 1
		}
		s.cSig >>= 1
	}
}

// ReadPattern implements PT.read_pattern (spec.md §4.3): scans the set
// for curr_sig, appending any way whose confidence clears PF_THRESHOLD
// into the caller's candidate queue (deltaQ/confidenceQ starting at
// pfQTail), and reports which way (if any) the lookahead should follow
// next. The unconditional pfQTail++ after the scan leaves a guard slot
// with confidence 0 — this is observable, spec-mandated behavior (spec.md
// §9), not a bug, and must be reproduced exactly.
//
// depth and globalAccuracy together select the confidence formula: depth
// 0 uses the set's local confidence; depth > 0 scales it by the global
// accuracy and the caller's running lookaheadConf. Evaluation order is
// contract (spec.md §9): left-to-right integer division, matched exactly.
func (pt *PatternTable) ReadPattern(currSig uint32, depth *uint32, lookaheadConf uint32, globalAccuracy uint32, deltaQ []int32, confidenceQ []uint32, pfQTail *uint32) (lookaheadWay uint32, newLookaheadConf uint32) {
	setIdx := hash.Mix(uint64(currSig)) % PTSet
	s := &pt.sets[setIdx]

	lookaheadWay = PTWay
	newLookaheadConf = lookaheadConf
	maxConf := uint32(0)

	if s.cSig == 0 {
		confidenceQ[*pfQTail] = 0
		return PTWay, lookaheadConf
	}

	for way := 0; way < PTWay; way++ {
		localConf := (100 * s.ways[way].cDelta) / s.cSig

		var pfConf uint32
		if *depth == 0 {
			pfConf = localConf
		} else {
			pfConf = globalAccuracy * s.ways[way].cDelta / s.cSig * lookaheadConf / 100
		}

		if pfConf >= PFThreshold {
			confidenceQ[*pfQTail] = pfConf
			deltaQ[*pfQTail] = s.ways[way].delta
			*pfQTail++

			if pfConf > maxConf {
				lookaheadWay = uint32(way)
				maxConf = pfConf
			}

			if glog.V(2) {
				glog.Infof("[PT] HIGH CONF pf_conf=%d sig=%#x set=%d way=%d delta=%d depth=%d", pfConf, currSig, setIdx, way, s.ways[way].delta, *depth)
			}
		} else if glog.V(2) {
			glog.Infof("[PT] LOW CONF pf_conf=%d sig=%#x set=%d way=%d depth=%d", pfConf, currSig, setIdx, way, *depth)
		}
	}

	*pfQTail++ // unconditional guard-slot advance; see doc comment above

	newLookaheadConf = maxConf
	if newLookaheadConf >= PFThreshold {
		*depth++
	}
	return lookaheadWay, newLookaheadConf
}

// DeltaAt returns the delta stored at (hash(sig)%PT_SET, way), used by the
// Engine's lookahead loop to advance base_addr along the same way
// ReadPattern just reported as the best continuation (spec.md §4.6 step 7).
func (pt *PatternTable) DeltaAt(sig uint32, way uint32) int32 {
	setIdx := hash.Mix(uint64(sig)) % PTSet
	return pt.sets[setIdx].ways[way].delta
}
