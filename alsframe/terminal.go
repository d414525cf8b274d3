package alsframe

// RemapTerminal maps a block-switching tree's regular leaf lengths onto an
// actual, possibly short, terminal frame. Leaves are filled left to right
// up to actualSamples; the leaf that straddles the boundary is shortened,
// and every leaf after it is zero-length. divBlock[i] is -1 (the
// truncated-block marker) for the leaf whose length was shortened and for
// every zero-length leaf after it, and the leaf's tree depth otherwise.
func RemapTerminal(regular []int, actualSamples int) (lengths []int, divBlock []int) {
	lengths = make([]int, len(regular))
	divBlock = make([]int, len(regular))
	remaining := actualSamples
	truncated := false
	for i, full := range regular {
		switch {
		case truncated:
			lengths[i] = 0
			divBlock[i] = -1
		case remaining >= full:
			lengths[i] = full
			divBlock[i] = depthOf(regular, i)
			remaining -= full
		default:
			lengths[i] = remaining
			divBlock[i] = -1
			remaining = 0
			truncated = true
		}
	}
	return lengths, divBlock
}

// depthOf infers a leaf's tree depth from its regular (untruncated) length
// relative to the sum of all regular leaf lengths (the full frame length),
// since RemapTerminal only has the flat length slice to work from.
func depthOf(regular []int, i int) int {
	if len(regular) == 0 || regular[i] == 0 {
		return 0
	}
	total := 0
	for _, l := range regular {
		total += l
	}
	d := 0
	for full := total; full > regular[i]; full >>= 1 {
		d++
	}
	return d
}
