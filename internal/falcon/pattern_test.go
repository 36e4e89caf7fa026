package falcon

import "testing"

func TestUpdatePatternTrainsDeltaAndSignatureCounters(t *testing.T) {
	pt := NewPatternTable(true)
	const sig = uint32(0x42)

	for i := 0; i < 5; i++ {
		pt.UpdatePattern(sig, 3)
	}

	if got := pt.DeltaAt(sig, 0); got != 3 {
		t.Fatalf("first-trained way should hold delta 3, got %d", got)
	}
	// The first call allocates the way (c_delta 0); the next four hit it.
	s := pt.sets[mixModForTest(sig)]
	if s.cSig != 5 || s.ways[0].cDelta != 4 {
		t.Fatalf("after 5 trainings: c_sig=%d c_delta=%d, want 5 and 4", s.cSig, s.ways[0].cDelta)
	}
}

func TestUpdatePatternHalvesCountersOnSaturation(t *testing.T) {
	pt := NewPatternTable(true)
	const sig = uint32(0x7)

	// Drive c_sig past CSigMax repeatedly via the same delta so the
	// saturation halving rule (P2) fires at least once.
	for i := 0; i < CSigMax+3; i++ {
		pt.UpdatePattern(sig, 1)
	}

	setIdx := mixModForTest(sig)
	if pt.sets[setIdx].cSig > CSigMax {
		t.Fatalf("c_sig must never be observed above CSigMax after a training call, got %d", pt.sets[setIdx].cSig)
	}
}

func TestReadPatternUntrainedSignatureZeroesGuardSlot(t *testing.T) {
	pt := NewPatternTable(true)
	// Untouched signature: c_sig == 0, so ReadPattern takes the
	// early-return branch but must still leave a usable confidenceQ[0]==0
	// guard slot (spec.md §9).
	depth := uint32(0)
	confidenceQ := make([]uint32, 8)
	deltaQ := make([]int32, 8)
	pfQTail := uint32(0)

	way, conf := pt.ReadPattern(0x999, &depth, 100, 0, deltaQ, confidenceQ, &pfQTail)
	if way != PTWay {
		t.Fatalf("untrained signature should report no lookahead way, got %d", way)
	}
	if conf != 100 {
		t.Fatalf("untrained signature should pass lookaheadConf through unchanged, got %d", conf)
	}
	if confidenceQ[0] != 0 {
		t.Fatalf("guard slot confidenceQ[0] must be 0, got %d", confidenceQ[0])
	}
}

func TestReadPatternAdvancesDepthOnHighConfidence(t *testing.T) {
	pt := NewPatternTable(true)
	const sig = uint32(0x55)

	for i := 0; i < CSigMax; i++ {
		pt.UpdatePattern(sig, 4)
	}

	depth := uint32(0)
	confidenceQ := make([]uint32, 8)
	deltaQ := make([]int32, 8)
	pfQTail := uint32(0)

	_, conf := pt.ReadPattern(sig, &depth, 100, 100, deltaQ, confidenceQ, &pfQTail)
	if conf < PFThreshold {
		t.Fatalf("a single fully-trained way should clear PF_THRESHOLD, got confidence %d", conf)
	}
	if depth != 1 {
		t.Fatalf("ReadPattern must increment depth when lookahead confidence clears PF_THRESHOLD, got depth=%d", depth)
	}
	if pfQTail != 2 {
		t.Fatalf("one qualifying way plus the unconditional guard slot should advance pfQTail to 2, got %d", pfQTail)
	}
}

// mixModForTest mirrors the unexported hashing PatternTable uses to pick a
// set, so tests can inspect internal set state without exporting it.
func mixModForTest(sig uint32) uint32 {
	pt := NewPatternTable(false)
	pt.UpdatePattern(sig, 0)
	for idx := range pt.sets {
		if pt.sets[idx].cSig != 0 {
			return uint32(idx)
		}
	}
	return 0
}
