package entropy

import "testing"

func TestMaxK(t *testing.T) {
	if MaxK(16) != 15 {
		t.Errorf("MaxK(16) = %d, want 15", MaxK(16))
	}
	if MaxK(24) != 31 {
		t.Errorf("MaxK(24) = %d, want 31", MaxK(24))
	}
}

func TestExactRiceBitsZero(t *testing.T) {
	values := make([]int32, 10)
	bits := ExactRiceBits(values, 0)
	if bits != 10 {
		t.Errorf("ExactRiceBits(zeros, k=0) = %d, want 10", bits)
	}
}

func TestEstimateRiceKSmallValues(t *testing.T) {
	values := []int32{0, 1, -1, 0, 1, -1, 0, 0}
	k, bits := EstimateRiceK(values, 15)
	if k < 0 || k > 15 {
		t.Errorf("EstimateRiceK k = %d, out of range", k)
	}
	if bits <= 0 {
		t.Errorf("EstimateRiceK bits = %d, want positive", bits)
	}
}

func TestHillClimbRiceKMatchesOrBeatsStart(t *testing.T) {
	values := make([]int32, 64)
	for i := range values {
		values[i] = int32(i%7) - 3
	}
	maxK := 15
	startK := maxK / 3
	startBits := ExactRiceBits(values, startK)
	k, bits := HillClimbRiceK(values, maxK)
	if bits > startBits {
		t.Errorf("HillClimbRiceK bits = %d, worse than starting k=%d bits=%d", bits, startK, startBits)
	}
	if k < 0 || k > maxK {
		t.Errorf("HillClimbRiceK k = %d, out of range", k)
	}
}

func TestSearchRiceEstimateForcesOneSubBlockWhenTooShort(t *testing.T) {
	values := make([]int32, 10) // < 16 samples
	r := SearchRiceEstimate(values, 15)
	if r.SubBlocks != 1 {
		t.Errorf("SubBlocks = %d, want 1 for a short block", r.SubBlocks)
	}
}

func TestSearchRiceExactPicksLegalSubBlockCount(t *testing.T) {
	values := make([]int32, 64)
	for i := range values {
		values[i] = int32(i % 5)
	}
	r := SearchRiceExact(values, 15)
	legal := map[int]bool{1: true, 2: true, 4: true, 8: true}
	if !legal[r.SubBlocks] {
		t.Errorf("SubBlocks = %d, not a legal count", r.SubBlocks)
	}
	if len(r.K) != r.SubBlocks {
		t.Errorf("len(K) = %d, want %d", len(r.K), r.SubBlocks)
	}
}
