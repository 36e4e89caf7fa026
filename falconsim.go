// Package falconsim documents the module as a whole; the engine itself
// lives in internal/falcon and is driven by cmd/falconsim.
//
// ═══════════════════════════════════════════════════════════════════════════
// FALCON: Signature-Path-Correlation Prefetcher for LLC/L2
// ═══════════════════════════════════════════════════════════════════════════
//
// Ported from the ChampSim FALCON prefetcher (original_source/), a
// hardware data prefetcher that correlates page-relative access deltas
// into a learned "signature" and predicts the next several deltas from a
// trained pattern table, scaling its own confidence by a running measure
// of how often its past prefetches turned out useful.
//
// Four tables, one Engine per cache instance:
//
//   - Signature Table (ST)    256-way fully-associative per-page state:
//     last touched offset, rolling signature, LRU rank.
//   - Pattern Table (PT)      512 sets x 4 ways: (delta, occurrence
//     count) pairs keyed by signature, with a saturating per-set
//     signature counter driving confidence.
//   - Prefetch Filter (PF)    1024-slot quotient-filter-style membership
//     and usefulness tracker, four request kinds.
//   - Global History Register (GHR)   8-entry cross-page bootstrap memory
//     plus the two saturating counters behind global_accuracy.
//
// Architecture highlights:
//   - Bit-exact Jenkins+Knuth hash shared by all three table lookups
//     (internal/hash).
//   - 7-bit sign-magnitude delta encoding folded into the rolling
//     signature via shift-xor (internal/falcon/encode.go).
//   - Confidence-scaled recursive lookahead: each step's prediction
//     feeds the next signature, capped by depth and filtered by
//     PF_THRESHOLD/FILL_THRESHOLD.
//   - Optional external depth controller (internal/depth) that never
//     touches the engine's own per-access recursion counter.
//
// See SPEC_FULL.md for the full module layout and DESIGN.md for the
// grounding of every package against its reference implementation.
package falconsim

import "github.com/falconsim/falcon/internal/falcon"

// Re-exported so a caller embedding FALCON in its own cache simulator can
// depend on the top-level module path alone, without reaching into
// internal/falcon directly.
type (
	Engine       = falcon.Engine
	EngineConfig = falcon.EngineConfig
	HostGeometry = falcon.HostGeometry
)

// NewEngine, DefaultEngineConfig, and DefaultHostGeometry forward to
// internal/falcon's constructors.
var (
	NewEngine           = falcon.NewEngine
	DefaultEngineConfig = falcon.DefaultEngineConfig
	DefaultHostGeometry = falcon.DefaultHostGeometry
)
