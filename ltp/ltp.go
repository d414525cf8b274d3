// Package ltp implements long-term prediction: lag search over a
// weighted signal, 5-tap gain estimation (fixed or Cholesky-solved),
// residual generation, and the cost-gated commit/revert decision.
package ltp

import "math"

// MaxLag is the largest lag LTP searches, shared with
// alsframe.LTPMaxLag.
const MaxLag = 2048

// WeightedSignal builds w[i] = x[i] / (sqrt(|x[i]|)/(5*sqrt(meanAbs)) + 1)
// for i in [-lagMax-2, length). x must support indices from -(lagMax+2)
// through length-1 relative to off (x[off+i] is valid for i in that
// range).
func WeightedSignal(x []int32, off, length, lagMax int) []float64 {
	start := -(lagMax + 2)
	n := length - start
	w := make([]float64, n)

	var sum float64
	for i := start; i < length; i++ {
		v := x[off+i]
		if v < 0 {
			sum += float64(-v)
		} else {
			sum += float64(v)
		}
	}
	meanAbs := sum / float64(n)
	if meanAbs <= 0 {
		meanAbs = 1
	}
	denomBase := 5 * math.Sqrt(meanAbs)

	for i := start; i < length; i++ {
		v := float64(x[off+i])
		av := math.Abs(v)
		w[i-start] = v / (math.Sqrt(av)/denomBase + 1)
	}
	return w
}

// SearchLag selects the lag tau maximizing normalized autocorrelation
// R[j] = sum(w[i]*w[i-j]), j in [start, lagMax), subject to R[j] > 0.
// w is indexed as returned by WeightedSignal, with w[0] corresponding to
// sample index -(lagMax+2).
func SearchLag(w []float64, lagMax, start int) (lag int, ok bool) {
	base := lagMax + 2 // w[base] == sample index 0
	var r0 float64
	for i := base; i < len(w); i++ {
		r0 += w[i] * w[i]
	}
	if r0 <= 0 {
		return 0, false
	}

	bestJ := -1
	var bestR float64
	for j := start; j < lagMax; j++ {
		var acc float64
		for i := base; i < len(w); i++ {
			if i-j < 0 {
				continue
			}
			acc += w[i] * w[i-j]
		}
		rj := acc / r0
		if rj > 0 && (bestJ == -1 || rj > bestR) {
			bestJ = j
			bestR = rj
		}
	}
	if bestJ == -1 {
		return 0, false
	}
	return bestJ, true
}
