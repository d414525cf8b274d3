package partition

// JSInfo is the per-node joint-stereo selector: 0 = both channels
// independent, 1 = left channel re-encoded from the difference signal,
// 2 = right channel re-encoded from the difference signal.
type JSInfo uint8

const (
	JSIndependent JSInfo = 0
	JSLeftDiff    JSInfo = 1
	JSRightDiff   JSInfo = 2
)

// GenJSInfos picks, for every node, whichever of the three codings is
// cheapest, given precomputed per-node costs for the left channel, the
// right channel, and the pair's difference signal.
func GenJSInfos(sizesLeft, sizesRight, sizesDiff []int) (infos []JSInfo, costs []int) {
	n := len(sizesLeft)
	infos = make([]JSInfo, n)
	costs = make([]int, n)
	for i := 0; i < n; i++ {
		ind := sizesLeft[i] + sizesRight[i]
		leftDiff := sizesDiff[i] + sizesRight[i]
		rightDiff := sizesLeft[i] + sizesDiff[i]

		best := ind
		info := JSIndependent
		if leftDiff < best {
			best = leftDiff
			info = JSLeftDiff
		}
		if rightDiff < best {
			best = rightDiff
			info = JSRightDiff
		}
		infos[i] = info
		costs[i] = best
	}
	return infos, costs
}

// JointStereoDecision implements the final pair decision: given the
// independently-coded cost, the jointly-coded cost, and the bit length of
// the extra bs_info word independent coding carries (charged to the
// independent side), decide whether to keep both channels independent.
func JointStereoDecision(costInd, bsInfoLen, costDep int) (independent bool) {
	return costInd+bsInfoLen < costDep
}
