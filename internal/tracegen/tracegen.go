// Package tracegen synthesizes memory access traces for cmd/falconsim's
// replay command, adapted from the teacher's SUPRAXCore fetch/memory loop
// (SupraX.go's Memory/Fetch/Cycle): instead of stepping a CPU pipeline
// over a flat Memory, it steps a simple address generator over a set of
// named stride patterns that exercise FALCON's signature/pattern tables
// the way a researcher's synthetic access-pattern suite would.
package tracegen

// Access is one synthesized (addr, ip, hit, typ) record, matching the
// shape cmd/falconsim's replay command reads from a trace file.
type Access struct {
	Addr uint64
	IP   uint64
	Hit  uint8
	Typ  uint8
}

// Pattern names a synthetic access pattern.
type Pattern string

const (
	// Sequential walks one page with a constant positive stride, the
	// simplest case FALCON's lookahead is built to catch (spec.md
	// scenario 1).
	Sequential Pattern = "sequential"
	// Strided repeats a fixed non-unit stride across a page, exercising
	// PT's per-signature delta training with a stride other than 1.
	Strided Pattern = "strided"
	// Alternating interleaves two distinct strides on the same page,
	// exercising PT's 4-way per-set confidence split.
	Alternating Pattern = "alternating"
	// PageCrossing repeats a stride across a page boundary, exercising
	// ST's GHR-bootstrap path on the cold page that follows.
	PageCrossing Pattern = "page-crossing"
)

// Generator produces a deterministic access stream for one pattern.
type Generator struct {
	pattern       Pattern
	stride        int64
	altStride     int64
	log2BlockSize uint
	log2PageSize  uint
	basePage      uint64
	ip            uint64
}

// New builds a Generator. basePage is a page index (not a byte address).
// Every record carries the same constant instruction pointer, 0x400000,
// mirroring the teacher's single-PC fetch loop.
func New(pattern Pattern, basePage uint64, log2BlockSize, log2PageSize uint) *Generator {
	return &Generator{
		pattern:       pattern,
		stride:        2,
		altStride:     3,
		log2BlockSize: log2BlockSize,
		log2PageSize:  log2PageSize,
		basePage:      basePage,
		ip:            0x400000,
	}
}

// Generate produces n accesses for the configured pattern.
func (g *Generator) Generate(n int) []Access {
	out := make([]Access, 0, n)
	blockSize := uint64(1) << g.log2BlockSize
	pageSize := uint64(1) << g.log2PageSize
	blocksPerPage := pageSize / blockSize

	page := g.basePage
	offset := int64(0)

	for i := 0; i < n; i++ {
		switch g.pattern {
		case Strided:
			offset += g.stride
		case Alternating:
			if i%2 == 0 {
				offset += g.stride
			} else {
				offset += g.altStride
			}
		case PageCrossing:
			offset++
			if offset >= int64(blocksPerPage) {
				offset = 0
				page++
			}
		default: // Sequential
			offset++
		}

		for offset < 0 {
			offset += int64(blocksPerPage)
			if page > 0 {
				page--
			}
		}
		for offset >= int64(blocksPerPage) {
			offset -= int64(blocksPerPage)
			page++
		}

		addr := page*pageSize + uint64(offset)*blockSize
		out = append(out, Access{Addr: addr, IP: g.ip, Hit: 1, Typ: 0})
	}
	return out
}
