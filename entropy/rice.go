// Package entropy implements the per-sub-block Rice and BGMC entropy
// parameter search: estimate and exact modes for both coders, the
// sub-block count constraint, and the BGMC arithmetic-coder contract that
// stays explicitly unimplemented.
package entropy

import (
	"math"

	alsbits "github.com/go-als/alsenc/internal/bits"
)

// MaxK returns the maximum Rice parameter for a resolution: 15 for
// resolutions up to 16-bit, 31 for wider.
func MaxK(bitsPerSample int) int {
	if bitsPerSample <= 16 {
		return 15
	}
	return 31
}

func foldedAbs(v int32) uint64 {
	return uint64(alsbits.SignFold(v))
}

// ExactRiceBits computes the exact emitted bit count for values at Rice
// parameter k: sum of 1 + k + (|2v XOR v>>31| >> k).
func ExactRiceBits(values []int32, k int) int {
	bits := 0
	for _, v := range values {
		bits += 1 + k + int(foldedAbs(v)>>uint(k))
	}
	return bits
}

// EstimateRiceK picks k via the closed-form estimate
// k = clip(log2((sum - N/2)/N), 0, maxK), and returns the estimated cost
// alongside it.
func EstimateRiceK(values []int32, maxK int) (k int, estBits int) {
	n := len(values)
	if n == 0 {
		return 0, 0
	}
	var sum uint64
	for _, v := range values {
		sum += foldedAbs(v)
	}
	half := uint64(n) / 2
	var num float64
	if sum > half {
		num = float64(sum-half) / float64(n)
	}
	if num < 1 {
		num = 1
	}
	k = int(math.Log2(num))
	if k < 0 {
		k = 0
	}
	if k > maxK {
		k = maxK
	}
	var rem uint64
	if sum > half {
		rem = (sum - half) >> uint(k)
	}
	estBits = n*(k+1) + int(rem)
	return k, estBits
}

// HillClimbRiceK finds the exact-mode Rice parameter for one sub-block:
// start at maxK/3, evaluate k and k+1, move in the improving direction
// until cost stops improving.
func HillClimbRiceK(values []int32, maxK int) (k int, bits int) {
	k = maxK / 3
	if k > maxK {
		k = maxK
	}
	if k < 0 {
		k = 0
	}
	bits = ExactRiceBits(values, k)

	// Decide direction: compare k to k+1.
	if k < maxK {
		upBits := ExactRiceBits(values, k+1)
		if upBits < bits {
			for k < maxK {
				nk := k + 1
				nb := ExactRiceBits(values, nk)
				if nb >= bits {
					break
				}
				k, bits = nk, nb
			}
			return k, bits
		}
	}
	for k > 0 {
		nk := k - 1
		nb := ExactRiceBits(values, nk)
		if nb >= bits {
			break
		}
		k, bits = nk, nb
	}
	return k, bits
}

// RiceResult is the outcome of a Rice parameter search across one
// partitioning of a block into sub-blocks.
type RiceResult struct {
	SubBlocks int
	K         []int
	Bits      int // total, including per-parameter overhead
}

// paramOverheadBits is the parameter field width charged per sub-block in
// Rice mode: the 4- or 5-bit width of the first k, depending on maxK. Both
// Rice searches charge this flat width for every sub-block, standing in
// for the signed-Rice deltas the later sub-blocks' k values are written as.
func paramOverheadBits(maxK int) int {
	if maxK > 15 {
		return 5
	}
	return 4
}

// SearchRiceEstimate evaluates the estimate-mode cost of splitting values
// into 1 vs 4 sub-blocks and returns whichever is cheaper including
// per-parameter overhead.
func SearchRiceEstimate(values []int32, maxK int) RiceResult {
	overhead := paramOverheadBits(maxK)

	k1, bits1 := EstimateRiceK(values, maxK)
	total1 := bits1 + overhead

	if len(values) < 16 || len(values)%4 != 0 {
		return RiceResult{SubBlocks: 1, K: []int{k1}, Bits: total1}
	}

	sub := len(values) / 4
	ks := make([]int, 4)
	total4 := 0
	for i := 0; i < 4; i++ {
		part := values[i*sub : (i+1)*sub]
		k, bits := EstimateRiceK(part, maxK)
		ks[i] = k
		total4 += bits + overhead
	}

	if total4 < total1 {
		return RiceResult{SubBlocks: 4, K: ks, Bits: total4}
	}
	return RiceResult{SubBlocks: 1, K: []int{k1}, Bits: total1}
}

// SearchRiceExact runs HillClimbRiceK per sub-block over a 4-way split,
// then re-evaluates the 1-sub-block candidate at the average of those four
// hill-climbed k values rather than an independent hill climb over the
// whole block, and keeps whichever of the two is cheaper. A block shorter
// than 16 samples or not divisible by 4 gets a single sub-block. Neither
// Rice search considers 2 or 8 sub-blocks; only the BGMC searches do.
func SearchRiceExact(values []int32, maxK int) RiceResult {
	overhead := paramOverheadBits(maxK)
	n := len(values)
	if n < 16 || n%4 != 0 {
		k, bits := HillClimbRiceK(values, maxK)
		return RiceResult{SubBlocks: 1, K: []int{k}, Bits: bits + overhead}
	}

	sub := n / 4
	ks4 := make([]int, 4)
	total4 := 0
	sumK := 0
	for i := 0; i < 4; i++ {
		part := values[i*sub : (i+1)*sub]
		k, bits := HillClimbRiceK(part, maxK)
		ks4[i] = k
		total4 += bits + overhead
		sumK += k
	}

	p0 := sumK >> 2
	bits1 := ExactRiceBits(values, p0) + overhead
	if bits1 < total4 {
		return RiceResult{SubBlocks: 1, K: []int{p0}, Bits: bits1}
	}
	return RiceResult{SubBlocks: 4, K: ks4, Bits: total4}
}
