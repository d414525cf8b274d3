package lpc

// Autocorrelate computes R[0..maxOrder] of the windowed samples.
func Autocorrelate(windowed []float64, maxOrder int) []float64 {
	r := make([]float64, maxOrder+1)
	n := len(windowed)
	for lag := 0; lag <= maxOrder; lag++ {
		var sum float64
		for i := lag; i < n; i++ {
			sum += windowed[i] * windowed[i-lag]
		}
		r[lag] = sum
	}
	return r
}

// LevinsonResult holds the per-order PARCOR coefficients and prediction
// error the Levinson-Durbin recursion produces. Parcor[i] is the
// reflection coefficient introduced at order i+1; Err[i] is the prediction
// error after incorporating order i+1 (Err[-1] == R[0] is the zeroth-order
// error, stored at index 0 of a length-(maxOrder+1) slice for convenience
// of the order search in order.go).
type LevinsonResult struct {
	Parcor []float64 // length maxOrder
	Err    []float64 // length maxOrder+1, Err[0] = R[0]
}

// LevinsonDurbin derives PARCOR coefficients of orders 1..maxOrder from an
// autocorrelation sequence.
func LevinsonDurbin(r []float64, maxOrder int) LevinsonResult {
	res := LevinsonResult{
		Parcor: make([]float64, maxOrder),
		Err:    make([]float64, maxOrder+1),
	}
	res.Err[0] = r[0]
	if r[0] == 0 {
		return res
	}
	a := make([]float64, maxOrder+1)
	err := r[0]
	for m := 1; m <= maxOrder; m++ {
		acc := r[m]
		for j := 1; j < m; j++ {
			acc -= a[j] * r[m-j]
		}
		var k float64
		if err != 0 {
			k = acc / err
		}
		res.Parcor[m-1] = k

		newA := make([]float64, maxOrder+1)
		copy(newA, a)
		newA[m] = k
		for j := 1; j < m; j++ {
			newA[j] = a[j] - k*a[m-j]
		}
		a = newA

		err *= 1 - k*k
		if err < 0 {
			err = 0
		}
		res.Err[m] = err
	}
	return res
}
