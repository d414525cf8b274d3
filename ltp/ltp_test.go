package ltp

import (
	"math"
	"testing"
)

func TestWeightedSignalConstant(t *testing.T) {
	n := 20
	x := make([]int32, n)
	for i := range x {
		x[i] = 100
	}
	lagMax := 4
	off := lagMax + 2
	w := WeightedSignal(x, off, n-off, lagMax)
	for i, v := range w {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("WeightedSignal produced non-finite value at %d: %v", i, v)
		}
	}
}

func TestSearchLagFindsPeriodicPeak(t *testing.T) {
	// Weighted signal with an exact period-10 repeat should report a
	// peak near lag 10.
	lagMax := 20
	n := 64
	w := make([]float64, n+lagMax+2)
	for i := range w {
		w[i] = math.Sin(2 * math.Pi * float64(i) / 10)
	}
	lag, ok := SearchLag(w, lagMax, 1)
	if !ok {
		t.Fatal("SearchLag found no positive-correlation lag in a periodic signal")
	}
	if lag < 8 || lag > 12 {
		t.Errorf("SearchLag = %d, want near 10", lag)
	}
}

func TestSearchLagZeroSignal(t *testing.T) {
	w := make([]float64, 40)
	_, ok := SearchLag(w, 10, 1)
	if ok {
		t.Error("SearchLag on an all-zero signal should report no usable lag")
	}
}
