package lpc

import (
	"math"

	"github.com/go-als/alsenc/alsframe"
)

// EstimateCost returns the estimate-mode cost of predicting at the given
// order: 0.5*log2(E[i-1])*length + prefix_bits(i), where levErr is the
// Levinson-Durbin per-order error sequence (levErr[0] == R[0], the
// zeroth-order error) and length is the block length in samples.
// prefix_bits approximates the coefficient-table overhead as 7 bits per
// quantized PARCOR coefficient, the fixed wire width for q_parcor_coeff.
func EstimateCost(levErr []float64, length, order int) float64 {
	e := levErr[order]
	if e <= 0 {
		e = 1e-9
	}
	prefixBits := float64(order * 7)
	return 0.5*math.Log2(e)*float64(length) + prefixBits
}

// SearchOrder finds the order in [0, maxOrder] minimizing cost, using
// either an exhaustive (OrderSearchFull) or early-stopping
// (OrderSearchValley) strategy. Ties favor the earliest (smallest) order.
func SearchOrder(maxOrder int, mode alsframe.OrderSearch, cost func(order int) float64) int {
	if maxOrder < 0 {
		return 0
	}
	bestOrder := 0
	bestCost := cost(0)

	threshold := maxOrder / 6
	if threshold < 2 {
		threshold = 2
	}

	noImprove := 0
	for i := 1; i <= maxOrder; i++ {
		c := cost(i)
		if c < bestCost {
			bestCost = c
			bestOrder = i
			noImprove = 0
		} else {
			noImprove++
			if mode == alsframe.OrderSearchValley && noImprove >= threshold {
				break
			}
		}
	}
	return bestOrder
}
