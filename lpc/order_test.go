package lpc

import (
	"testing"

	"github.com/go-als/alsenc/alsframe"
)

func TestSearchOrderPicksMinimum(t *testing.T) {
	costs := []float64{10, 8, 3, 4, 5, 6, 7, 8, 9}
	cost := func(i int) float64 { return costs[i] }
	got := SearchOrder(len(costs)-1, alsframe.OrderSearchFull, cost)
	if got != 2 {
		t.Errorf("SearchOrder(full) = %d, want 2", got)
	}
}

func TestSearchOrderTiesFavorEarliest(t *testing.T) {
	costs := []float64{5, 5, 5, 5}
	cost := func(i int) float64 { return costs[i] }
	got := SearchOrder(len(costs)-1, alsframe.OrderSearchFull, cost)
	if got != 0 {
		t.Errorf("SearchOrder with all-equal costs = %d, want 0", got)
	}
}

func TestSearchOrderValleyStopsEarly(t *testing.T) {
	// Best at order 1, then monotonically worse for a long stretch: a
	// valley search over 30 orders should stop well before exhausting
	// them, but still return the correct best order found so far.
	costs := make([]float64, 31)
	costs[0] = 100
	costs[1] = 1
	for i := 2; i < len(costs); i++ {
		costs[i] = float64(i) // strictly increasing, never improves again
	}
	calls := 0
	cost := func(i int) float64 {
		calls++
		return costs[i]
	}
	got := SearchOrder(30, alsframe.OrderSearchValley, cost)
	if got != 1 {
		t.Errorf("SearchOrder(valley) = %d, want 1", got)
	}
	if calls >= 31 {
		t.Errorf("valley search evaluated all %d orders, expected early stop", calls)
	}
}
