package lpc

// Predict computes the LPC prediction residual for sample index t (0-based
// within the block) given order coefficients and access to history via
// smp, which must support negative indexing relative to t (callers pass a
// slice positioned so smp[t] is the current sample and smp[t-1..t-order]
// are available). The arithmetic uses signed 64-bit math with arithmetic
// right shift: y = (1<<19) + sum(cof[j-1] * smp[-j]); res = smp[0] +
// (y>>20).
func Predict(smp []int32, t, order int, cof []int64) int32 {
	var y int64 = 1 << 19
	for j := 1; j <= order; j++ {
		y += cof[j-1] * int64(smp[t-j])
	}
	return smp[t] + int32(y>>20)
}

// Reconstruct inverts Predict: given a residual and the same history and
// coefficients, recovers smp[t]. Provided for symmetry with the decoder
// contract even though this module never decodes; callers needing the
// inverse (tests) have it without duplicating the shift arithmetic.
func Reconstruct(res int32, smp []int32, t, order int, cof []int64) int32 {
	var y int64 = 1 << 19
	for j := 1; j <= order; j++ {
		y += cof[j-1] * int64(smp[t-j])
	}
	return res - int32(y>>20)
}

// Residuals generates the residual signal for a block of length samples
// starting at smp[off]: for a random-access block, the first sample is
// written verbatim and progressive orders 1..min(order,length-1) predict
// the next few samples; thereafter (and for every sample of a non-RA
// block, whose history reaches into the previous frame) full order
// prediction applies.
func Residuals(smp []int32, off, length, order int, cof []int64, raBlock bool) []int32 {
	res := make([]int32, length)
	if length == 0 {
		return res
	}
	if !raBlock {
		for t := 0; t < length; t++ {
			res[t] = Predict(smp, off+t, order, cof)
		}
		return res
	}

	res[0] = smp[off]
	progressive := order
	if length-1 < progressive {
		progressive = length - 1
	}
	for t := 1; t <= progressive; t++ {
		res[t] = Predict(smp, off+t, t, cof)
	}
	for t := progressive + 1; t < length; t++ {
		res[t] = Predict(smp, off+t, order, cof)
	}
	return res
}
