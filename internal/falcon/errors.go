package falcon

import "errors"

// Sanity-check errors (spec.md §7). These are programming-invariant
// violations, not runtime conditions: every one of them indicates the
// tables have entered a state the algorithm guarantees can't happen. They
// are only raised when SanityCheck is enabled on the Engine (mirrors
// FALCON_SANITY_CHECK in the original source). A failed check panics with
// the matching error at its call site in signature.go, pattern.go, ghr.go
// or filter.go; OnAccess/OnFill never return these as error values, and the
// panic is not recovered inside the engine.
var (
	// ErrSTReplacementMiss: LRU rank ST_WAY-1 not found during ST eviction.
	ErrSTReplacementMiss = errors.New("falcon: ST replacement victim not found")
	// ErrSTLRURange: an LRU rank left the valid [0, ST_WAY) range after update.
	ErrSTLRURange = errors.New("falcon: ST lru value out of range")
	// ErrPTVictimMiss: PT minimum-counter scan produced no victim way.
	ErrPTVictimMiss = errors.New("falcon: PT replacement victim not found")
	// ErrGHRVictimMiss: GHR minimum-confidence scan produced no victim entry.
	ErrGHRVictimMiss = errors.New("falcon: GHR replacement victim not found")
	// ErrUnknownFilterRequest: PF.Check called with an unrecognized FilterRequest.
	ErrUnknownFilterRequest = errors.New("falcon: unknown prefetch filter request")
)
