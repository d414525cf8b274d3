package block

import (
	"testing"

	"github.com/go-als/alsenc/alsframe"
)

func finalStageParams(maxOrder int, ltp bool) AnalyzeParams {
	return AnalyzeParams{
		Stage: alsframe.Stage{
			Name:         "final",
			Cost:         alsframe.CostExact,
			OrderSearch:  alsframe.OrderSearchFull,
			UseBGMC:      false,
			UseLTP:       ltp,
			TestConstant: true,
			TestLSBShift: true,
		},
		MaxOrder:   maxOrder,
		SampleRate: 44100,
		Resolution: alsframe.Resolution16,
		CoefTable:  alsframe.CoefTable0,
		Depth:      0,
		LTPEnabled: ltp,
		AdaptOrder: true,
	}
}

func TestAnalyzeConstantBlock(t *testing.T) {
	samples := make([]int32, 128)
	for i := range samples {
		samples[i] = 42
	}
	blk := Analyze(samples, 0, len(samples), false, true, finalStageParams(8, false))
	if !blk.Constant {
		t.Fatalf("expected a constant block")
	}
	if blk.ConstantValue != 42 {
		t.Fatalf("ConstantValue = %d, want 42", blk.ConstantValue)
	}
	if blk.Bits <= 0 {
		t.Fatalf("Bits should be positive, got %d", blk.Bits)
	}
}

func TestAnalyzeNonConstantPopulatesResiduals(t *testing.T) {
	samples := make([]int32, 256)
	for i := range samples {
		samples[i] = int32(i%7) - 3
	}
	blk := Analyze(samples, 0, len(samples), false, true, finalStageParams(4, false))
	if blk.Constant {
		t.Fatalf("did not expect a constant block")
	}
	if len(blk.Residuals) != len(samples) {
		t.Fatalf("len(Residuals) = %d, want %d", len(blk.Residuals), len(samples))
	}
	if blk.Bits <= 0 {
		t.Fatalf("Bits should be positive")
	}
}

func TestAnalyzeShiftedLSBs(t *testing.T) {
	samples := make([]int32, 128)
	for i := range samples {
		samples[i] = int32(i%5) * 8
	}
	blk := Analyze(samples, 0, len(samples), false, false, finalStageParams(4, false))
	if blk.ShiftLSBs == 0 {
		t.Fatalf("expected a nonzero LSB shift for an all-multiple-of-8 block")
	}
}

func TestOrderFieldBits(t *testing.T) {
	tests := []struct {
		maxOrder int
		want     int
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{4, 3},
		{32, 6},
		{1023, 10},
	}
	for _, tc := range tests {
		if got := orderFieldBits(tc.maxOrder); got != tc.want {
			t.Errorf("orderFieldBits(%d) = %d, want %d", tc.maxOrder, got, tc.want)
		}
	}
}

func TestAnalyzeLTPNeverPanicsOnShortHistory(t *testing.T) {
	samples := make([]int32, 512)
	for i := range samples {
		samples[i] = int32((i * 31) % 101)
	}
	// Offset 0 means no history behind the block; tryLTP must decline
	// cleanly rather than reading out of bounds.
	blk := Analyze(samples, 0, 256, false, true, finalStageParams(4, true))
	if blk.LTP[0].UseLTP {
		t.Fatalf("LTP should not commit with no history available")
	}
}
