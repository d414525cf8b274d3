package partition

import "testing"

func TestGenBlockSizesCoversEveryNode(t *testing.T) {
	calls := map[int]bool{}
	cost := func(offset, length int) int {
		calls[length] = true
		return length // cheapest-per-sample cost model for the test
	}
	sizes := GenBlockSizes(64, 2, cost)
	if len(sizes) != 7 { // 2^(2+1) - 1
		t.Fatalf("len(sizes) = %d, want 7", len(sizes))
	}
	for _, want := range []int{64, 32, 16} {
		if !calls[want] {
			t.Errorf("cost never called with length %d", want)
		}
	}
}

func TestMergeBottomUpPrefersCheaperParent(t *testing.T) {
	// Depth-1 tree: parent cost 10 is cheaper than the sum of its
	// children's costs (6+6=12), so the tree should stay a single leaf.
	sizes := []int{10, 6, 6}
	info := MergeBottomUp(sizes, 1)
	leaves := info.Leaves()
	if len(leaves) != 1 || leaves[0] != 0 {
		t.Errorf("Leaves() = %v, want [0] (parent cheaper, no split)", leaves)
	}
}

func TestMergeBottomUpSplitsWhenChildrenCheaper(t *testing.T) {
	sizes := []int{20, 6, 6}
	info := MergeBottomUp(sizes, 1)
	leaves := info.Leaves()
	if len(leaves) != 2 {
		t.Errorf("Leaves() = %v, want 2 leaves (children cheaper)", leaves)
	}
}

func TestTreeCostSumsLeaves(t *testing.T) {
	sizes := []int{20, 6, 7}
	info := MergeBottomUp(sizes, 1)
	got := TreeCost(info, sizes)
	if got != 13 {
		t.Errorf("TreeCost = %d, want 13", got)
	}
}

func TestMergeFullSearchMatchesBottomUpOnBinaryTree(t *testing.T) {
	sizes := []int{100, 20, 60, 8, 9, 25, 30}
	a := MergeBottomUp(sizes, 2)
	b := MergeFullSearch(sizes, 2)
	if a != b {
		t.Errorf("MergeBottomUp = %v, MergeFullSearch = %v, want equal for a binary tree", a, b)
	}
}
