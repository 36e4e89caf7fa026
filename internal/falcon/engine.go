// Package falcon implements FALCON, a signature-path-correlation
// prefetcher for an LLC/L2 cache (spec.md). Four tables — Signature
// Table, Pattern Table, Prefetch Filter, Global History Register — are
// owned exclusively by one Engine per cache/core instance; there is no
// shared mutable state between cores (spec.md §5).
package falcon

import "github.com/golang/glog"

// HostGeometry carries the block/page geometry and MSHR sizing the host
// cache simulator would normally supply as macros (spec.md §6:
// LOG2_BLOCK_SIZE, LOG2_PAGE_SIZE, BLOCK_SIZE, PAGE_SIZE, MSHR_SIZE).
// Defaults match a typical 64B-line, 4KiB-page LLC.
type HostGeometry struct {
	Log2BlockSize uint
	Log2PageSize  uint
	MSHRSize      uint32
}

// DefaultHostGeometry returns the 64-byte-block, 4KiB-page, 64-entry-MSHR
// geometry used throughout spec.md's worked examples.
func DefaultHostGeometry() HostGeometry {
	return HostGeometry{Log2BlockSize: 6, Log2PageSize: 12, MSHRSize: 64}
}

func (g HostGeometry) blockSize() uint64 { return 1 << g.Log2BlockSize }
func (g HostGeometry) pageSize() uint64  { return 1 << g.Log2PageSize }

// EngineConfig carries the functional knobs the original source exposes
// as constexpr bools (spec.md §9, SPEC_FULL.md §5): flipping these is how
// a researcher runs an ablation without rebuilding the tables.
type EngineConfig struct {
	LookaheadOn bool
	FilterOn    bool
	GHROn       bool
	SanityCheck bool
	Geometry    HostGeometry
}

// DefaultEngineConfig enables every knob, matching the original source's
// compiled-in defaults.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		LookaheadOn: true,
		FilterOn:    true,
		GHROn:       true,
		SanityCheck: true,
		Geometry:    DefaultHostGeometry(),
	}
}

// Engine is the FALCON prediction engine: the access/fill event handlers
// and the lookahead loop described in spec.md §4.6. One Engine belongs to
// exactly one cache instance (spec.md §5).
type Engine struct {
	cfg EngineConfig

	st     *SignatureTable
	pt     *PatternTable
	filter *PrefetchFilter
	ghr    *GlobalRegister

	// PrefetchLine issues a prefetch: the host-provided primitive
	// (spec.md §6). Tests substitute a recording stub.
	PrefetchLine func(ip, baseAddr, pfAddr uint64, fillIntoUpperLevel bool, meta uint32) bool
}

// NewEngine builds an Engine and its four tables (spec.md §4.6
// "initialize()"). PrefetchLine defaults to a no-op that always reports
// success; callers embedding the engine in a real cache simulator should
// replace it.
func NewEngine(cfg EngineConfig) *Engine {
	e := &Engine{
		cfg:    cfg,
		st:     NewSignatureTable(cfg.SanityCheck, cfg.GHROn),
		pt:     NewPatternTable(cfg.SanityCheck),
		filter: NewPrefetchFilter(cfg.SanityCheck),
		ghr:    NewGlobalRegister(cfg.SanityCheck),
		PrefetchLine: func(ip, baseAddr, pfAddr uint64, fillIntoUpperLevel bool, meta uint32) bool {
			return true
		},
	}
	return e
}

// Initialize logs the table geometry once, mirroring the original
// source's one-shot constant dump at l2c_prefetcher_initialize() time.
func (e *Engine) Initialize() {
	glog.V(1).Infof("falcon: ST_SET=%d ST_WAY=%d ST_TAG_BIT=%d ST_TAG_MASK=%#x", STSet, STWay, STTagBit, STTagMask)
	glog.V(1).Infof("falcon: PT_SET=%d PT_WAY=%d SIG_DELTA_BIT=%d C_SIG_BIT=%d C_DELTA_BIT=%d", PTSet, PTWay, SigDeltaBit, CSigBit, CDeltaBit)
	glog.V(1).Infof("falcon: FILTER_SET=%d", FilterSet)
}

// FinalStats is a no-op, matching spec.md §6's final_stats() contract.
func (e *Engine) FinalStats() {}

// GlobalAccuracy, PfIssued, and PfUseful expose the GHR's global counters
// for metrics and tests.
func (e *Engine) GlobalAccuracy() uint32 { return e.ghr.GlobalAccuracy() }
func (e *Engine) PfIssued() uint32       { return e.ghr.PfIssued() }
func (e *Engine) PfUseful() uint32       { return e.ghr.PfUseful() }

// STOccupancy and PTOccupancy report table fill levels for metrics
// exporters (SPEC_FULL.md §3): valid ST ways, and PT sets with any
// trained signature.
func (e *Engine) STOccupancy() uint32 {
	n := uint32(0)
	for _, w := range e.st.ways {
		if w.valid {
			n++
		}
	}
	return n
}

func (e *Engine) PTOccupancy() uint32 {
	n := uint32(0)
	for _, s := range e.pt.sets {
		if s.cSig != 0 {
			n++
		}
	}
	return n
}

// OnAccess implements the access callback (spec.md §4.6). addr is a byte
// address; ip is the triggering instruction pointer (opaque to FALCON);
// hit/typ/meta pass through unchanged, per spec.md §7 ("callbacks are
// infallible and always return their input metadata unchanged").
func (e *Engine) OnAccess(addr, ip uint64, hit uint8, typ uint8, meta uint32) uint32 {
	geo := e.cfg.Geometry
	page := addr >> geo.Log2PageSize
	pageOffset := uint32((addr >> geo.Log2BlockSize) & ((geo.pageSize() / geo.blockSize()) - 1))

	mshr := int(e.cfg.Geometry.MSHRSize)
	if mshr == 0 {
		mshr = 1
	}
	confidenceQ := make([]uint32, mshr)
	deltaQ := make([]int32, mshr)
	confidenceQ[0] = 100

	e.ghr.RefreshAccuracy()

	lastSig, currSig, delta := e.st.ReadAndUpdateSig(page, pageOffset, e.ghr)

	e.filter.Check(addr, DemandAccess, e.ghr, geo.Log2BlockSize)

	if lastSig != 0 {
		e.pt.UpdatePattern(lastSig, delta)
	}

	baseAddr := addr
	lookaheadConf := uint32(100)
	pfQHead, pfQTail := uint32(0), uint32(0)
	depth := uint32(0)

	for {
		lookaheadWay, newLookaheadConf := e.pt.ReadPattern(currSig, &depth, lookaheadConf, e.ghr.GlobalAccuracy(), deltaQ, confidenceQ, &pfQTail)
		lookaheadConf = newLookaheadConf

		doLookahead := false

		for i := pfQHead; i < pfQTail; i++ {
			if confidenceQ[i] >= PFThreshold {
				pfAddr := (baseAddr &^ (geo.blockSize() - 1)) + (uint64(deltaQ[i]) << geo.Log2BlockSize)

				samePage := (addr &^ (geo.pageSize() - 1)) == (pfAddr &^ (geo.pageSize() - 1))
				if samePage {
					req := LowConfidencePrefetch
					fillUpper := confidenceQ[i] >= FillThreshold
					if fillUpper {
						req = HighConfidencePrefetch
					}

					if e.filter.Check(pfAddr, req, e.ghr, geo.Log2BlockSize) {
						e.PrefetchLine(ip, baseAddr, pfAddr, fillUpper, 0)

						if fillUpper {
							e.ghr.RecordIssue()
						}
					}
				} else if e.cfg.GHROn {
					e.ghr.UpdateEntry(currSig, confidenceQ[i], uint32(pfAddr>>geo.Log2BlockSize)&0x3F, deltaQ[i])
				}

				doLookahead = true
				pfQHead++
			}
		}

		if lookaheadWay < PTWay {
			wayDelta := e.pt.DeltaAt(currSig, lookaheadWay)
			baseAddr += uint64(wayDelta) << geo.Log2BlockSize
			currSig = foldSignature(currSig, wayDelta)
		}

		if !(e.cfg.LookaheadOn && doLookahead) {
			break
		}
	}

	return meta
}

// OnFill implements the fill callback (spec.md §4.6): accounts accuracy
// and clears the filter slot for the evicted line.
func (e *Engine) OnFill(addr uint64, set, way uint32, isPrefetch uint8, evictedAddr uint64, meta uint32) uint32 {
	if e.cfg.FilterOn {
		e.filter.Check(evictedAddr, Evict, e.ghr, e.cfg.Geometry.Log2BlockSize)
	}
	return meta
}
