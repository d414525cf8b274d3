package alsframe

import (
	"reflect"
	"testing"
)

func TestBSInfoLeavesUnsplit(t *testing.T) {
	var b BSInfo
	leaves := b.Leaves()
	if !reflect.DeepEqual(leaves, []int{0}) {
		t.Errorf("Leaves() = %v, want [0]", leaves)
	}
}

func TestBSInfoLeavesOneSplit(t *testing.T) {
	var b BSInfo
	b.SetSplit(0, true)
	leaves := b.Leaves()
	if !reflect.DeepEqual(leaves, []int{1, 2}) {
		t.Errorf("Leaves() = %v, want [1 2]", leaves)
	}
}

func TestBSInfoLeafLengths(t *testing.T) {
	var b BSInfo
	b.SetSplit(0, true)
	b.SetSplit(1, true)
	lengths := b.LeafLengths(4096)
	want := []int{1024, 1024, 2048}
	if !reflect.DeepEqual(lengths, want) {
		t.Errorf("LeafLengths(4096) = %v, want %v", lengths, want)
	}
	sum := 0
	for _, l := range lengths {
		sum += l
	}
	if sum != 4096 {
		t.Errorf("leaf lengths sum to %d, want 4096", sum)
	}
}

func TestBSInfoIndependentBS(t *testing.T) {
	var b BSInfo
	if b.IndependentBS() {
		t.Fatal("zero-value BSInfo reports IndependentBS")
	}
	b.SetIndependentBS(true)
	if !b.IndependentBS() {
		t.Fatal("SetIndependentBS(true) did not stick")
	}
	b.SetSplit(0, true)
	if !b.IndependentBS() {
		t.Fatal("SetSplit clobbered the independent_bs bit")
	}
}
