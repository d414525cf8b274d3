package block

import (
	"math"

	"github.com/go-als/alsenc/alsframe"
	"github.com/go-als/alsenc/entropy"
	"github.com/go-als/alsenc/ltp"
)

// AnalyzeParams bundles the per-stream constants the per-block search
// needs, so callers (the frame driver, the block-switching partitioner)
// don't have to thread a dozen scalars through every call.
type AnalyzeParams struct {
	Stage      alsframe.Stage
	MaxOrder   int
	SampleRate int
	Resolution alsframe.Resolution
	CoefTable  alsframe.CoefTable
	Depth      int // block-switching depth of this node, for window scaling
	LTPEnabled bool
	AdaptOrder bool // if false, opt_order is forced to MaxOrder and omitted from the wire
}

// Analyze runs the full per-block parameter search against
// samples[off:off+length] (which must have at least MaxOrder, or LTP's
// lag window when LTPEnabled, samples of valid history before off).
// jsBlock and raBlock are supplied by the caller, since they depend on
// context (joint-stereo selection, RA scheduling) this function has no
// visibility into.
func Analyze(samples []int32, off, length int, jsBlock, raBlock bool, p AnalyzeParams) *alsframe.Block {
	blk := &alsframe.Block{
		Length:  length,
		RABlock: raBlock,
		JSBlock: jsBlock,
		Offset:  off,
	}
	blk.DivBlock = p.Depth

	bitsTotal := 1 // block_type

	if p.Stage.TestConstant {
		if v, ok := allConstant(samples, off, length); ok {
			blk.Constant = true
			blk.ConstantValue = v
			blk.Bits = bitsTotal + 6 + p.Resolution.Bits()
			return blk
		}
	}

	cur := samples
	curOff := off
	var shifted []int32
	if p.Stage.TestLSBShift {
		if c := lsbShiftCount(samples, off, length); c > 0 {
			blk.ShiftLSBs = c
			shifted = make([]int32, len(samples))
			copy(shifted, samples)
			for i := off; i < off+length; i++ {
				shifted[i] >>= uint(c)
			}
			cur = shifted
			bitsTotal += 4
		}
	}
	bitsTotal++ // shift_lsbs present flag
	bitsTotal++ // js_block flag

	maxK := entropy.MaxK(p.Resolution.Bits())
	st := shortTermPredict(cur, curOff, length, p.MaxOrder, p.SampleRate, p.Depth, p.CoefTable, p.Stage.OrderSearch, p.Stage.Cost, maxK, raBlock, p.AdaptOrder)
	blk.OptOrder = st.Order
	blk.QParcor = st.QParcor

	ent := searchEntropy(st.Resid, maxK, p.Stage)
	blk.Entropy[0] = ent.info
	blk.Residuals = st.Resid
	if p.AdaptOrder {
		bitsTotal += orderFieldBits(p.MaxOrder)
	}
	bitsTotal += len(st.QParcor)*7 + ent.bits

	if p.LTPEnabled && p.Stage.UseLTP && length > 8 {
		if ltpBlk, ltpResid, ltpEnt, ok := tryLTP(samples, off, length, st.Order, st.Resid, maxK, p.Stage); ok {
			blk.LTP[0] = ltpBlk
			blk.Entropy[1] = ltpEnt
			blk.Residuals = ltpResid
			// ltpBlk.Bits already includes LTP side info plus the
			// re-estimated entropy cost of the LTP residuals; it replaces
			// the non-LTP entropy cost folded into bitsTotal above.
			bitsTotal = bitsTotal - ent.bits + ltpBlk.Bits
		}
	}

	blk.Bits = bitsTotal
	return blk
}

// orderFieldBits is the wire width of opt_order: a ceil-log2 field sized
// to the maximum possible order.
func orderFieldBits(maxOrder int) int {
	n := 0
	for (1 << uint(n)) <= maxOrder {
		n++
	}
	if n == 0 {
		n = 1
	}
	return n
}

// tryLTP runs the LTP lag search, gain estimation, residual generation,
// and cost-gated commit decision against a block's already-computed
// short-term residuals.
func tryLTP(samples []int32, off, length, order int, priorResid []int32, maxK int, stage alsframe.Stage) (info alsframe.LTPInfo, residuals []int32, ent alsframe.EntropyInfo, ok bool) {
	lagMax := ltp.MaxLag
	if lagMax > off-2 {
		lagMax = off - 2 // WeightedSignal reads lagMax+2 samples of history before off
	}
	if lagMax < 4 {
		return alsframe.LTPInfo{}, nil, alsframe.EntropyInfo{}, false
	}
	start := order + 1
	if start < 4 {
		start = 4
	}
	if start >= lagMax {
		return alsframe.LTPInfo{}, nil, alsframe.EntropyInfo{}, false
	}

	w := ltp.WeightedSignal(samples, off, length, lagMax)
	lag, found := ltp.SearchLag(w, lagMax, start)
	if !found {
		return alsframe.LTPInfo{}, nil, alsframe.EntropyInfo{}, false
	}

	gain := ltp.FixedGains
	cov, cross := ltp.AccumulateGainStats(priorResid, 0, length, lag)
	if solved, solvable := ltp.SolveCholesky5(cov, cross); solvable {
		for k, v := range solved {
			gain[k] = int(math.Round(v * 128))
		}
	}
	ltpResid := ltp.Residuals(priorResid, 0, length, lag, gain)

	priorEnt := searchEntropy(priorResid, maxK, stage)
	ltpEnt := searchEntropy(ltpResid, maxK, stage)

	const ltpSideBits = 1 + 1 + 2 + 2 + 2 + 1 + 10 // use_ltp + 5 gains + lag field, rough estimate
	cost := ltp.Cost{
		LTPBits:     ltpSideBits,
		EntBits:     ltpEnt.bits,
		PriorBits:   0,
		NonLTPTotal: priorEnt.bits,
	}
	if !cost.Commit() {
		return alsframe.LTPInfo{}, nil, alsframe.EntropyInfo{}, false
	}

	quant, _ := ltp.QuantizeGains([5]float64{
		float64(gain[0]) / 128, float64(gain[1]) / 128, float64(gain[2]) / 128,
		float64(gain[3]) / 128, float64(gain[4]) / 128,
	})

	info = alsframe.LTPInfo{
		UseLTP: true,
		Lag:    lag,
		Bits:   ltpSideBits + ltpEnt.bits,
	}
	for i, v := range quant {
		info.Gain[i] = v
	}
	return info, ltpResid, ltpEnt.info, true
}
