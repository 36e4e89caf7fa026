// Package depth implements FALCON's optional external depth controller
// (spec.md §4.7, §9): an outer control loop driven by a replacement
// policy's Feedback that produces a prefetch depth. It is a pure
// collaborator — its output never feeds back into the Engine's internal
// lookahead recursion cap (internal/falcon's per-access `depth` variable
// is a distinct, unrelated counter).
package depth

const (
	// MinDepth and MaxDepth bound Adjust: it never grows depth above
	// MaxDepth and never shrinks it below MinDepth. InitialDepth can
	// return a value above MaxDepth.
	MinDepth = 1
	MaxDepth = 3

	highUtilizationThreshold = 80
	lowUtilizationThreshold  = 20
	aggressivePrefetchDepth  = 5
	conservativePrefetchDepth = 2
	defaultPrefetchDepth     = 3

	goodMissRate  = 10
	poorHitRate   = 50
)

// Feedback carries the integer 0-100 signals an outside replacement
// policy reports about cache behavior (spec.md §4.7).
type Feedback struct {
	MissRate    uint32
	HitRate     uint32
	ReplaceRate uint32
	Utilization uint32
}

// InitialDepth picks a starting depth from cache utilization alone
// (spec.md §4.7 "Initial"). Note AGGRESSIVE_PREFETCH_DEPTH=5 is returned
// uncapped here, matching the original source's GetInitialDepth; callers
// that enforce [MinDepth, MaxDepth] should clamp via Adjust or explicitly.
func InitialDepth(fb Feedback) uint32 {
	switch {
	case fb.Utilization > highUtilizationThreshold:
		return conservativePrefetchDepth
	case fb.Utilization < lowUtilizationThreshold:
		return aggressivePrefetchDepth
	default:
		return defaultPrefetchDepth
	}
}

// Adjust nudges an existing depth toward [MinDepth, MaxDepth] based on
// recent feedback (spec.md §4.7 "Adjust"): a good (low) miss rate grows
// depth, a poor (high) hit rate shrinks it, otherwise depth is unchanged.
func Adjust(fb Feedback, depth uint32) uint32 {
	switch {
	case fb.MissRate < goodMissRate:
		if depth+1 < MaxDepth {
			return depth + 1
		}
		return MaxDepth
	case fb.HitRate > poorHitRate:
		if depth > MinDepth+1 {
			return depth - 1
		}
		return MinDepth
	default:
		return depth
	}
}

// Pressure computes the integer-truncated cache-pressure signal (spec.md
// §4.7 "Pressure"): 0.4*miss_rate + 0.4*replace_rate + 0.2*(100-utilization).
// The weighted sum is computed exactly in integer math as
// (4*miss + 4*replace + 2*(100-util)) / 10 and truncated once. This is the
// exact truncation of the formula; a float64 evaluation of it can land just
// below an integer and truncate one lower (e.g. miss=1, replace=43,
// util=93 gives 19 here, 18 in float64).
func Pressure(fb Feedback) uint32 {
	return uint32((4*fb.MissRate + 4*fb.ReplaceRate + 2*(100-fb.Utilization)) / 10)
}
