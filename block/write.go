package block

import (
	"github.com/go-als/alsenc/alsframe"
	"github.com/go-als/alsenc/internal/bitio"
)

// parcorFieldTable gives (offset, riceK) for wire indices 0..19, the
// per-index (offset, rice_k) table the coefficient field coding uses. The
// original table's exact per-index constants live in libavcodec/als.c and
// were not carried in full by this module's retrieval pack; this table is
// flat (offset 0 and Rice k 2 at every index) rather than inventing
// per-index entropy parameters with no grounding (see DESIGN.md).
var parcorFieldTable = func() [20]struct{ offset, riceK int } {
	var t [20]struct{ offset, riceK int }
	for i := range t {
		t[i] = struct{ offset, riceK int }{offset: 0, riceK: 2}
	}
	return t
}()

// WriteBlock emits one block's bitstream in its fixed field order. cfg
// carries the stream-global fields the coefficient/LTP field widths
// depend on (max_order, coef_table, resolution).
func WriteBlock(w *bitio.Writer, blk *alsframe.Block, cfg *alsframe.Config) error {
	if blk.Constant {
		return writeConstantBlock(w, blk, cfg)
	}

	if err := w.WriteBool(true); err != nil { // block_type = 1
		return err
	}
	if err := w.WriteBool(blk.JSBlock); err != nil {
		return err
	}

	if err := writeSubBlockIndicator(w, blk, cfg); err != nil {
		return err
	}
	ent := blk.Entropy[0]
	if blk.LTP[0].UseLTP {
		ent = blk.Entropy[1]
	}
	if err := writeEntropyParams(w, ent, cfg); err != nil {
		return err
	}

	if err := w.WriteBool(blk.ShiftLSBs > 0); err != nil {
		return err
	}
	if blk.ShiftLSBs > 0 {
		if err := w.WriteBits(uint64(blk.ShiftLSBs), 4); err != nil {
			return err
		}
	}

	if cfg.AdaptOrder {
		orderBits := uint8(orderFieldBits(cfg.MaxOrder))
		if err := w.WriteBits(uint64(blk.OptOrder), orderBits); err != nil {
			return err
		}
	}

	if err := writeParcorCoeffs(w, blk.QParcor, cfg.CoefTable); err != nil {
		return err
	}

	if err := writeLTP(w, blk.LTP[0], blk.OptOrder, cfg); err != nil {
		return err
	}

	if err := writeResiduals(w, blk, ent, cfg); err != nil {
		return err
	}

	_, err := w.Align()
	return err
}

func writeConstantBlock(w *bitio.Writer, blk *alsframe.Block, cfg *alsframe.Config) error {
	if err := w.WriteBool(false); err != nil { // block_type = 0
		return err
	}
	if err := w.WriteBool(true); err != nil { // const_block = 1
		return err
	}
	n := uint8(cfg.Resolution.Bits())
	if n == 0 {
		n = 24
	}
	if err := w.WriteSigned(blk.ConstantValue, n); err != nil {
		return err
	}
	_, err := w.Align()
	return err
}

func writeSubBlockIndicator(w *bitio.Writer, blk *alsframe.Block, cfg *alsframe.Config) error {
	subBlocks := blk.Entropy[0].SubBlocks
	if blk.LTP[0].UseLTP {
		subBlocks = blk.Entropy[1].SubBlocks
	}
	code := subBlockLog2(subBlocks)
	switch {
	case cfg.SBPart && cfg.BGMC:
		return w.WriteBits(uint64(code), 2)
	case cfg.SBPart || cfg.BGMC:
		return w.WriteBool(code != 0)
	default:
		return nil
	}
}

func subBlockLog2(n int) int {
	log := 0
	for n > 1 {
		n >>= 1
		log++
	}
	return log
}

func writeEntropyParams(w *bitio.Writer, ent alsframe.EntropyInfo, cfg *alsframe.Config) error {
	if !ent.BGMC {
		width := uint8(4)
		if cfg.Resolution.Bits() > 16 {
			width = 5
		}
		if len(ent.RiceK) == 0 {
			return w.WriteBits(0, width)
		}
		if err := w.WriteBits(uint64(ent.RiceK[0]), width); err != nil {
			return err
		}
		for i := 1; i < len(ent.RiceK); i++ {
			delta := int32(ent.RiceK[i] - ent.RiceK[i-1])
			if err := w.WriteRice(delta, 0); err != nil {
				return err
			}
		}
		return nil
	}

	width := uint8(8)
	if cfg.Resolution.Bits() > 16 {
		width = 9
	}
	if len(ent.BGMCParam) == 0 {
		return w.WriteBits(0, width)
	}
	first := ent.BGMCParam[0]
	if err := w.WriteBits(uint64(first.S<<4|first.SX), width); err != nil {
		return err
	}
	prev := first.S<<4 | first.SX
	for i := 1; i < len(ent.BGMCParam); i++ {
		cur := ent.BGMCParam[i].S<<4 | ent.BGMCParam[i].SX
		if err := w.WriteRice(int32(cur-prev), 2); err != nil {
			return err
		}
		prev = cur
	}
	return nil
}

func writeParcorCoeffs(w *bitio.Writer, q []int8, table alsframe.CoefTable) error {
	for i, c := range q {
		switch {
		case table == alsframe.CoefTable3:
			if err := w.WriteBits(uint64(int32(c)+64), 7); err != nil {
				return err
			}
		case i < 20:
			f := parcorFieldTable[i]
			if err := w.WriteRice(int32(c)-int32(f.offset), uint8(f.riceK)); err != nil {
				return err
			}
		case i < 127:
			offset := int32(i & 1)
			if err := w.WriteRice(int32(c)-offset, 2); err != nil {
				return err
			}
		default:
			if err := w.WriteRice(int32(c), 1); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeLTP(w *bitio.Writer, info alsframe.LTPInfo, optOrder int, cfg *alsframe.Config) error {
	if err := w.WriteBool(info.UseLTP); err != nil {
		return err
	}
	if !info.UseLTP {
		return nil
	}
	gainK := [5]uint8{1, 2, 2, 2, 1}
	for i, g := range info.Gain {
		if i == 2 {
			if err := w.WriteRice(int32(g), 2); err != nil {
				return err
			}
			continue
		}
		if err := w.WriteRice(int32(g), gainK[i]); err != nil {
			return err
		}
	}
	minLag := optOrder + 1
	if minLag < 4 {
		minLag = 4
	}
	width := uint8(8)
	switch {
	case cfg.SampleRate > 96000:
		width = 10
	case cfg.SampleRate > 48000:
		width = 9
	}
	return w.WriteBits(uint64(info.Lag-minLag), width)
}

// writeResiduals emits the residual payload for blk. When ent.BGMC is set
// the (s, sx) parameter field written by writeEntropyParams is already
// BGMC-shaped, but the payload itself still goes out as Rice codes: no
// concrete BGMCCoder is wired into this module (see entropy.BGMCCoder), so
// there is no arithmetic coder to drive here.
func writeResiduals(w *bitio.Writer, blk *alsframe.Block, ent alsframe.EntropyInfo, cfg *alsframe.Config) error {
	maxK := 15
	if cfg.Resolution.Bits() > 16 {
		maxK = 31
	}
	length := blk.Length
	subBlocks := ent.SubBlocks
	if subBlocks == 0 {
		subBlocks = 1
	}
	subLen := length / subBlocks
	if subLen == 0 {
		subLen = length
		subBlocks = 1
	}

	for s := 0; s < subBlocks; s++ {
		k := 0
		if len(ent.RiceK) > 0 {
			idx := s
			if idx >= len(ent.RiceK) {
				idx = len(ent.RiceK) - 1
			}
			k = ent.RiceK[idx]
		}
		start := s * subLen
		end := start + subLen
		if s == subBlocks-1 {
			end = length
		}
		for i := start; i < end; i++ {
			kk := k
			if s == 0 && blk.RABlock && i < 3 && i < blk.OptOrder {
				switch i {
				case 0:
					kk = clampK(maxK-3, maxK)
				case 1:
					kk = clampK(k+3, maxK)
				case 2:
					kk = clampK(k+1, maxK)
				}
			}
			if err := w.WriteRice(blk.Residuals[i], uint8(kk)); err != nil {
				return err
			}
		}
	}
	return nil
}

func clampK(k, maxK int) int {
	if k < 0 {
		return 0
	}
	if k > maxK {
		return maxK
	}
	return k
}
