package lpc

import (
	"testing"

	"github.com/go-als/alsenc/alsframe"
)

func TestQuantizeParcorRange(t *testing.T) {
	golden := []struct {
		p     float64
		index int
	}{
		{p: 0.999, index: 0},
		{p: -0.999, index: 0},
		{p: 0.999, index: 1},
		{p: -0.999, index: 1},
		{p: 0.5, index: 5},
		{p: -0.5, index: 5},
	}
	for _, g := range golden {
		q := QuantizeParcor(g.p, g.index)
		if q < -64 || q > 63 {
			t.Errorf("QuantizeParcor(%v, %d) = %d, out of [-64,63]", g.p, g.index, q)
		}
	}
}

func TestQuantizeParcorZero(t *testing.T) {
	if q := QuantizeParcor(0, 5); q != 0 {
		t.Errorf("QuantizeParcor(0, 5) = %d, want 0", q)
	}
}

func TestReconstructParcorHighOrder(t *testing.T) {
	golden := []struct {
		q    int8
		want int32
	}{
		{q: 0, want: (0 << 14) + (1 << 13)},
		{q: 10, want: (10 << 14) + (1 << 13)},
		{q: -10, want: (-10 << 14) + (1 << 13)},
	}
	for _, g := range golden {
		got := ReconstructParcor(g.q, 5, alsframe.CoefTable3)
		if got != g.want {
			t.Errorf("ReconstructParcor(%d, 5) = %d, want %d", g.q, got, g.want)
		}
	}
}

func TestReconstructParcorSignRule(t *testing.T) {
	pos := ReconstructParcor(10, 0, alsframe.CoefTable0)
	neg := ReconstructParcor(10, 1, alsframe.CoefTable0)
	if pos <= 0 {
		t.Errorf("ReconstructParcor(10, index=0) = %d, want positive", pos)
	}
	if neg >= 0 {
		t.Errorf("ReconstructParcor(10, index=1) = %d, want negative", neg)
	}
}

func TestReconstructParcorMonotonic(t *testing.T) {
	var prev int32 = -1 << 30
	for q := int8(-64); q <= 63; q++ {
		got := ReconstructParcor(q, 0, alsframe.CoefTable0)
		if got < prev {
			t.Fatalf("ReconstructParcor not monotonic at q=%d: got %d after %d", q, got, prev)
		}
		prev = got
	}
}
