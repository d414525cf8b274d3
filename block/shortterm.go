// Package block orchestrates the per-block parameter search (constant ->
// LSB-shift -> js_block -> PARCOR/order -> entropy -> optional LTP) and
// emits the resulting bitstream in its fixed field order.
package block

import (
	"math/bits"

	"github.com/go-als/alsenc/alsframe"
	"github.com/go-als/alsenc/lpc"
)

// shortTermResult holds the outcome of PARCOR/LPC short-term prediction
// for one block.
type shortTermResult struct {
	Order   int
	QParcor []int8
	Cof     []int64
	Resid   []int32
}

// fallbackOrder1 builds the order-1 fallback for a PARCOR->LPC overflow:
// parcor[0] = -0.9.
func fallbackOrder1(samples []int32, off, length int, raBlock bool) shortTermResult {
	const fallbackParcor = -0.9
	q := lpc.QuantizeParcor(fallbackParcor, 0)
	r := lpc.ReconstructParcor(q, 0, alsframe.CoefTable0)
	cof, err := lpc.ParcorToLPC([]int32{r}, 1)
	if err != nil {
		// The fallback coefficient itself cannot overflow in practice;
		// degrade to a pure passthrough (order 0) rather than propagate.
		return shortTermResult{Order: 0, QParcor: nil, Cof: nil, Resid: lpc.Residuals(samples, off, length, 0, nil, raBlock)}
	}
	resid := lpc.Residuals(samples, off, length, 1, cof, raBlock)
	return shortTermResult{Order: 1, QParcor: []int8{q}, Cof: cof, Resid: resid}
}

// shortTermPredict runs the full short-term prediction pipeline: window,
// autocorrelate, Levinson-Durbin, adaptive-order search (or, when
// adaptOrder is false, a forced order equal to maxOrder), quantize/
// reconstruct PARCOR, PARCOR->LPC, residual generation, with the order-1
// overflow fallback.
func shortTermPredict(samples []int32, off, length, maxOrder, sampleRate, depth int, coefTable alsframe.CoefTable, orderSearch alsframe.OrderSearch, costMode alsframe.CostMode, maxK int, raBlock, adaptOrder bool) shortTermResult {
	if length == 0 || maxOrder == 0 {
		return shortTermResult{Order: 0, Resid: lpc.Residuals(samples, off, length, 0, nil, raBlock)}
	}
	if maxOrder > length-1 {
		maxOrder = length - 1
	}
	if maxOrder < 0 {
		maxOrder = 0
	}

	block := samples[off : off+length]
	windowed := lpc.Window(block, sampleRate, depth)
	r := lpc.Autocorrelate(windowed, maxOrder)
	lev := lpc.LevinsonDurbin(r, maxOrder)

	quantizeUpTo := func(order int) ([]int8, []int32) {
		q := make([]int8, order)
		rec := make([]int32, order)
		for i := 0; i < order; i++ {
			q[i] = lpc.QuantizeParcor(lev.Parcor[i], i)
			rec[i] = lpc.ReconstructParcor(q[i], i, coefTable)
		}
		return q, rec
	}

	costFn := func(order int) float64 {
		if costMode == alsframe.CostEstimate {
			return lpc.EstimateCost(lev.Err, length, order)
		}
		_, rec := quantizeUpTo(order)
		cof, err := lpc.ParcorToLPC(rec, order)
		if err != nil {
			return 1e18
		}
		resid := lpc.Residuals(samples, off, length, order, cof, raBlock)
		return float64(exactResidualBits(resid, maxK))
	}

	optOrder := maxOrder
	if adaptOrder {
		optOrder = lpc.SearchOrder(maxOrder, orderSearch, costFn)
	}
	if optOrder == 0 {
		return shortTermResult{Order: 0, Resid: lpc.Residuals(samples, off, length, 0, nil, raBlock)}
	}

	q, rec := quantizeUpTo(optOrder)
	cof, err := lpc.ParcorToLPC(rec, optOrder)
	if err != nil {
		return fallbackOrder1(samples, off, length, raBlock)
	}
	resid := lpc.Residuals(samples, off, length, optOrder, cof, raBlock)
	return shortTermResult{Order: optOrder, QParcor: q, Cof: cof, Resid: resid}
}

// lsbShiftCount returns the number of common trailing zero bits across
// every sample in the block, or 0 for an empty or all-zero block (shifting
// an all-zero block would be meaningless).
func lsbShiftCount(samples []int32, off, length int) int {
	if length == 0 {
		return 0
	}
	var or uint32
	for i := 0; i < length; i++ {
		or |= uint32(samples[off+i])
	}
	if or == 0 {
		return 0
	}
	c := bits.TrailingZeros32(or)
	if c > 15 {
		c = 15
	}
	return c
}

// allConstant reports whether every sample in the block equals the first,
// and returns that value.
func allConstant(samples []int32, off, length int) (int32, bool) {
	if length == 0 {
		return 0, true
	}
	v := samples[off]
	for i := 1; i < length; i++ {
		if samples[off+i] != v {
			return 0, false
		}
	}
	return v, true
}
