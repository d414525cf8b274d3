package lpc

import (
	"math"

	"github.com/go-als/alsenc/alsframe"
)

// QuantizeParcor maps a PARCOR coefficient at the given order index to its
// signed 7-bit wire value. Indices 0 and 1 go through a companding curve
// before quantization; index 0's curve is mirrored for index 1.
func QuantizeParcor(p float64, index int) int8 {
	switch index {
	case 0:
		p = math.Sqrt(2*(p+1)) - 1
	case 1:
		p = math.Sqrt(2*(-p+1)) - 1
	}
	q := int(math.Floor(64 * p))
	if q < -64 {
		q = -64
	}
	if q > 63 {
		q = 63
	}
	return int8(q)
}

// scaledTable holds, per CoefTable variant, the 128 signed reconstruction
// values indexed by q+64 for indices 0 and 1. The original bitstream's
// tables are precomputed constants in libavcodec/als.c that this module's
// retrieval did not carry in full; these are regenerated here as the
// closed-form inverse of QuantizeParcor's companding curve, coarsened
// per-table the same way the original's three tables progressively round
// off precision (see DESIGN.md).
var scaledTable [3][128]int32

func init() {
	for t := 0; t < 3; t++ {
		coarsen := 1 << uint(t) // table 0 finest, table 2 coarsest
		for j := 0; j < 128; j++ {
			q := j - 64
			qc := (q / coarsen) * coarsen
			p := float64(qc) / 64
			// Inverse of p <- sqrt(2*(p+1)) - 1 => p_orig = ((p+1)^2)/2 - 1.
			pOrig := ((p+1)*(p+1))/2 - 1
			scaledTable[t][j] = int32(math.Round(1024 * pOrig))
		}
	}
}

// ReconstructParcor computes the 21-bit reconstructed PARCOR value for a
// quantized coefficient at the given order index.
func ReconstructParcor(q int8, index int, table alsframe.CoefTable) int32 {
	if index <= 1 {
		t := int(table)
		if t > 2 {
			t = 2
		}
		mag := scaledTable[t][int(q)+64]
		if index == 0 {
			return 32 * mag
		}
		return -32 * mag
	}
	return (int32(q) << 14) + (1 << 13)
}
