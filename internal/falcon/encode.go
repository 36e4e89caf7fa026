package falcon

// encodeDelta converts a signed page-offset delta into the 7-bit
// sign-magnitude representation used to fold a delta into a signature
// (spec.md §4.2, "sign-magnitude encoding"; P7). Positive deltas map to
// themselves; a negative delta d maps to -d + 64. Centralized here so ST
// update and lookahead recompute never drift apart (spec.md §9).
//
//go:inline
func encodeDelta(delta int32) uint32 {
	if delta < 0 {
		return uint32(-delta) + sigDeltaSign
	}
	return uint32(delta)
}

// foldSignature advances a rolling signature by one delta using the
// shift-xor rule shared by ST.read_and_update_sig and the Engine's
// lookahead recomputation (spec.md §4.2, §4.6 step 7).
//
//go:inline
func foldSignature(sig uint32, delta int32) uint32 {
	return ((sig << SigShift) ^ encodeDelta(delta)) & SigMask
}
