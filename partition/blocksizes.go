// Package partition implements the block-switching tree search and the
// joint-stereo js_info selection: generating per-node bit costs across the
// whole tree, merging subtrees bottom-up or via full search, and picking
// the cheaper of independent vs joint-stereo coding per channel pair.
package partition

import "github.com/go-als/alsenc/alsframe"

// CostFunc evaluates the bit cost of encoding a leaf of the given length
// starting at the given sample offset within the current frame, running
// the full per-block parameter search. Supplied by the block package,
// which has access to the PARCOR/LPC, entropy, and LTP engines this
// package does not depend on directly.
type CostFunc func(offset, length int) int

func nodeCount(maxDepth int) int {
	return (1 << uint(maxDepth+1)) - 1
}

// GenBlockSizes evaluates cost at every node of the tree up to maxDepth,
// returning a heap-ordered slice where sizes[n] is the cost of encoding
// node n as a single leaf.
func GenBlockSizes(frameLength, maxDepth int, cost CostFunc) []int {
	sizes := make([]int, nodeCount(maxDepth))
	for n := range sizes {
		d := alsframe.NodeDepth(n)
		if d > maxDepth {
			continue
		}
		length := frameLength >> uint(d)
		firstAtDepth := (1 << uint(d)) - 1
		offset := (n - firstAtDepth) * length
		sizes[n] = cost(offset, length)
	}
	return sizes
}

// mergeDP computes, bottom-up, the optimal split/leaf decision at every
// node: a node stays a leaf if its own cost is no worse than the summed
// cost of its best-possible children subtrees, otherwise it splits.
// Bottom-up merging of adjacent leaf pairs level by level and full-search
// post-order recursion over subtree totals are two names for the same
// optimal-substructure recurrence on a binary tree with monotone per-node
// costs, computed here once and exposed under both names so callers can
// pick either search strategy.
func mergeDP(sizes []int, maxDepth int) (info alsframe.BSInfo, total []int) {
	total = make([]int, len(sizes))
	copy(total, sizes)
	for d := maxDepth; d >= 0; d-- {
		first := (1 << uint(d)) - 1
		last := (1 << uint(d+1)) - 2
		for n := first; n <= last; n++ {
			if d == maxDepth {
				continue // leaves at max depth never split further
			}
			l, r := alsframe.Left(n), alsframe.Right(n)
			childCost := total[l] + total[r]
			if childCost < total[n] {
				total[n] = childCost
				info.SetSplit(n, true)
			}
		}
	}
	return info, total
}

// MergeBottomUp selects the cheapest block-switching tree using the
// bottom-up strategy.
func MergeBottomUp(sizes []int, maxDepth int) alsframe.BSInfo {
	info, _ := mergeDP(sizes, maxDepth)
	return info
}

// MergeFullSearch selects the cheapest block-switching tree using the
// full-search strategy.
func MergeFullSearch(sizes []int, maxDepth int) alsframe.BSInfo {
	info, _ := mergeDP(sizes, maxDepth)
	return info
}

// TreeCost returns the total cost of the tree described by info, summing
// the cost of each chosen leaf.
func TreeCost(info alsframe.BSInfo, sizes []int) int {
	total := 0
	for _, n := range info.Leaves() {
		total += sizes[n]
	}
	return total
}
