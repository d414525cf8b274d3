package entropy

import "testing"

func TestSearchBGMCEstimateReturnsLegalPartition(t *testing.T) {
	values := make([]int32, 64)
	for i := range values {
		values[i] = int32(i%11) - 5
	}
	r := SearchBGMCEstimate(values)
	if r.PartitionDepth < 0 || r.PartitionDepth > 3 {
		t.Errorf("PartitionDepth = %d, out of [0,3]", r.PartitionDepth)
	}
	if len(r.Params) != r.SubBlocks {
		t.Errorf("len(Params) = %d, want %d", len(r.Params), r.SubBlocks)
	}
	if r.Bits <= 0 {
		t.Errorf("Bits = %d, want positive", r.Bits)
	}
}

func TestSearchBGMCEstimateShortBlockForcesDepthZero(t *testing.T) {
	values := make([]int32, 10)
	r := SearchBGMCEstimate(values)
	if r.PartitionDepth != 0 || r.SubBlocks != 1 {
		t.Errorf("PartitionDepth=%d SubBlocks=%d, want 0/1 for a short block", r.PartitionDepth, r.SubBlocks)
	}
}

func TestDescendS0StaysInRange(t *testing.T) {
	values := make([]int32, 32)
	for i := range values {
		values[i] = int32(i % 13)
	}
	s0, bits := descendS0(values, 128)
	if s0 < 5 || s0 > 250 {
		t.Errorf("descendS0 s0 = %d, out of [5,250]", s0)
	}
	if bits <= 0 {
		t.Errorf("descendS0 bits = %d, want positive", bits)
	}
}

func TestSearchBGMCExactReturnsLegalPartition(t *testing.T) {
	values := make([]int32, 64)
	for i := range values {
		values[i] = int32(i%9) - 4
	}
	r := SearchBGMCExact(values, 128)
	if r.PartitionDepth < 0 || r.PartitionDepth > 3 {
		t.Errorf("PartitionDepth = %d, out of [0,3]", r.PartitionDepth)
	}
}
