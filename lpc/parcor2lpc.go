package lpc

import "math"

// ErrOverflow signals that a PARCOR->LPC conversion step produced an
// intermediate coefficient outside the signed-32-bit range. The caller is
// expected to retry at order 1 with parcor[0] = -0.9.
type overflowError struct{}

func (overflowError) Error() string { return "lpc: PARCOR->LPC conversion overflowed signed 32 bits" }

// ErrOverflow is the sentinel returned by ParcorToLPC on overflow.
var ErrOverflow error = overflowError{}

const (
	lpcShift = 20
	lpcRound = 1 << 19
	int32Max = math.MaxInt32
	int32Min = math.MinInt32
)

// ParcorToLPC converts reconstructed (21-bit) PARCOR values par[0..order-1]
// into LPC coefficients in place, order by order. It returns ErrOverflow
// without mutating cof beyond the point of failure if any intermediate
// exceeds signed-32-bit range.
func ParcorToLPC(par []int32, order int) ([]int64, error) {
	cof := make([]int64, order)
	for k := 0; k < order; k++ {
		for i, j := 0, k-1; i < j; i, j = i+1, j-1 {
			ci := cof[i] + ((int64(par[k])*cof[j] + lpcRound) >> lpcShift)
			cj := cof[j] + ((int64(par[k])*cof[i] + lpcRound) >> lpcShift)
			if overflows(ci) || overflows(cj) {
				return cof, ErrOverflow
			}
			cof[i], cof[j] = ci, cj
		}
		if k%2 == 1 {
			mid := k / 2
			cm := cof[mid] + ((int64(par[k])*cof[mid] + lpcRound) >> lpcShift)
			if overflows(cm) {
				return cof, ErrOverflow
			}
			cof[mid] = cm
		}
		cof[k] = int64(par[k])
	}
	return cof, nil
}

func overflows(v int64) bool {
	return v > int32Max || v < int32Min
}
