package alsenc

import (
	"github.com/go-als/alsenc/alsframe"
	"github.com/go-als/alsenc/block"
	"github.com/go-als/alsenc/partition"
)

// frameCoder runs the three-stage pipeline (joint-stereo analysis,
// block-switching search, final encoding) against one frame's worth of
// samples for a channel pair or a single channel. Stage configurations
// come from the stream's compression level and are immutable for the
// stream's lifetime.
type frameCoder struct {
	cfg        *alsframe.Config
	jsStage    alsframe.Stage
	bsStage    alsframe.Stage
	finalStage alsframe.Stage
	maxDepth   int
}

func newFrameCoder(cfg *alsframe.Config) *frameCoder {
	js, bs, final := alsframe.StagesForLevel(cfg.CompressionLevel)
	return &frameCoder{cfg: cfg, jsStage: js, bsStage: bs, finalStage: final, maxDepth: cfg.BlockSwitching}
}

func (fc *frameCoder) analyzeParams(stage alsframe.Stage, depth int) block.AnalyzeParams {
	return block.AnalyzeParams{
		Stage:      stage,
		MaxOrder:   fc.cfg.MaxOrder,
		SampleRate: int(fc.cfg.SampleRate),
		Resolution: fc.cfg.Resolution,
		CoefTable:  fc.cfg.CoefTable,
		Depth:      depth,
		LTPEnabled: fc.cfg.LongTermPred,
		AdaptOrder: fc.cfg.AdaptOrder,
	}
}

// depthFromLength infers a leaf's block-switching depth from its length
// relative to the whole frame, since CostFunc and the final per-leaf loop
// only carry lengths, not tree node indices.
func depthFromLength(frameLength, length int) int {
	d := 0
	for length < frameLength {
		length <<= 1
		d++
	}
	return d
}

// pairResult is one stereo pair's chosen frame encoding: the shared
// block-switching tree and the final, re-parametrized per-channel blocks.
type pairResult struct {
	bsInfo alsframe.BSInfo
	left   []*alsframe.Block
	right  []*alsframe.Block
}

// bsInfoWireBits is the fixed wire width of the bs_info tree word
// JointStereoDecision compares against the independent-coding savings.
const bsInfoWireBits = 32

// encodePair runs the full pipeline for one stereo channel pair's frame.
// leftFull and rightFull are the channel's full sample-history buffers
// (carrying predictor history from the previous frame); histPad is the
// sample offset the current frame starts at within each buffer.
// frameLength is the actual sample count of this frame, which is smaller
// than the stream's configured frame length only for the terminal frame.
func (fc *frameCoder) encodePair(leftFull, rightFull []int32, histPad, frameLength int, raBlock bool) pairResult {
	if frameLength < fc.cfg.FrameLength {
		return fc.encodeTerminalPair(leftFull, rightFull, histPad, frameLength, raBlock)
	}

	diffFull := make([]int32, len(leftFull))
	for i := range diffFull {
		diffFull[i] = rightFull[i] - leftFull[i]
	}

	leftCost := func(off, l int) int {
		d := depthFromLength(frameLength, l)
		ra := raBlock && off == 0
		return block.Analyze(leftFull, histPad+off, l, false, ra, fc.analyzeParams(fc.jsStage, d)).Bits
	}
	rightCost := func(off, l int) int {
		d := depthFromLength(frameLength, l)
		ra := raBlock && off == 0
		return block.Analyze(rightFull, histPad+off, l, false, ra, fc.analyzeParams(fc.jsStage, d)).Bits
	}
	diffCost := func(off, l int) int {
		d := depthFromLength(frameLength, l)
		ra := raBlock && off == 0
		return block.Analyze(diffFull, histPad+off, l, true, ra, fc.analyzeParams(fc.jsStage, d)).Bits
	}

	leftSizes := partition.GenBlockSizes(frameLength, fc.maxDepth, leftCost)
	rightSizes := partition.GenBlockSizes(frameLength, fc.maxDepth, rightCost)

	indSizes := make([]int, len(leftSizes))
	for i := range indSizes {
		indSizes[i] = leftSizes[i] + rightSizes[i]
	}
	indInfo := partition.MergeBottomUp(indSizes, fc.maxDepth)
	costInd := partition.TreeCost(indInfo, indSizes)

	chosenInfo := indInfo
	independent := true
	var jsInfos []partition.JSInfo

	if fc.cfg.JointStereo {
		diffSizes := partition.GenBlockSizes(frameLength, fc.maxDepth, diffCost)
		var comboSizes []int
		jsInfos, comboSizes = partition.GenJSInfos(leftSizes, rightSizes, diffSizes)
		comboInfo := partition.MergeBottomUp(comboSizes, fc.maxDepth)
		costDep := partition.TreeCost(comboInfo, comboSizes)
		if !partition.JointStereoDecision(costInd, bsInfoWireBits, costDep) {
			chosenInfo = comboInfo
			independent = false
		}
	}
	chosenInfo.SetIndependentBS(independent)

	leaves := chosenInfo.Leaves()
	lengths := chosenInfo.LeafLengths(frameLength)
	leftBlocks := make([]*alsframe.Block, len(leaves))
	rightBlocks := make([]*alsframe.Block, len(leaves))

	off := 0
	for i, n := range leaves {
		l := lengths[i]
		depth := alsframe.NodeDepth(n)
		ra := raBlock && off == 0

		js := partition.JSIndependent
		if !independent {
			js = jsInfos[n]
		}
		leftSignal, rightSignal := leftFull, rightFull
		leftJS, rightJS := false, false
		switch js {
		case partition.JSLeftDiff:
			leftSignal, leftJS = diffFull, true
		case partition.JSRightDiff:
			rightSignal, rightJS = diffFull, true
		}

		leftBlocks[i] = block.Analyze(leftSignal, histPad+off, l, leftJS, ra, fc.analyzeParams(fc.finalStage, depth))
		rightBlocks[i] = block.Analyze(rightSignal, histPad+off, l, rightJS, ra, fc.analyzeParams(fc.finalStage, depth))
		off += l
	}

	return pairResult{bsInfo: chosenInfo, left: leftBlocks, right: rightBlocks}
}

// terminalTree searches the regular (full-frame-length) block-switching
// tree shape against costFn, then maps its leaf lengths onto the actual,
// shorter terminal frame via alsframe.RemapTerminal: the leaf straddling
// the boundary is truncated and marked div_block=-1, leaves entirely past
// the boundary come back zero-length and are dropped by the caller.
func (fc *frameCoder) terminalTree(actualSamples int, costFn partition.CostFunc) (alsframe.BSInfo, []int, []int) {
	sizes := partition.GenBlockSizes(fc.cfg.FrameLength, fc.maxDepth, costFn)
	info := partition.MergeBottomUp(sizes, fc.maxDepth)
	regular := info.LeafLengths(fc.cfg.FrameLength)
	lengths, divBlock := alsframe.RemapTerminal(regular, actualSamples)
	return info, lengths, divBlock
}

// terminalCost builds a block-switching cost function clipped to the
// samples actually available in a terminal frame: a candidate leaf
// reaching past actualSamples is costed over only its available prefix,
// and a leaf entirely past the boundary costs nothing.
func (fc *frameCoder) terminalCost(full []int32, histPad, actualSamples int, raBlock bool) partition.CostFunc {
	return func(off, l int) int {
		avail := actualSamples - off
		if avail <= 0 {
			return 0
		}
		if avail > l {
			avail = l
		}
		d := depthFromLength(fc.cfg.FrameLength, l)
		ra := raBlock && off == 0
		return block.Analyze(full, histPad+off, avail, false, ra, fc.analyzeParams(fc.bsStage, d)).Bits
	}
}

// encodeTerminalPair codes the terminal short frame by searching the same
// regular block-switching tree shape a full-length frame would use, then
// truncating it to the samples that actually exist (see terminalTree).
func (fc *frameCoder) encodeTerminalPair(leftFull, rightFull []int32, histPad, frameLength int, raBlock bool) pairResult {
	info, lengths, divBlock := fc.terminalTree(frameLength, fc.terminalCost(leftFull, histPad, frameLength, raBlock))
	info.SetIndependentBS(true)

	leaves := info.Leaves()
	leftBlocks := make([]*alsframe.Block, 0, len(leaves))
	rightBlocks := make([]*alsframe.Block, 0, len(leaves))

	off := 0
	for i, n := range leaves {
		l := lengths[i]
		if l == 0 {
			continue
		}
		depth := alsframe.NodeDepth(n)
		ra := raBlock && off == 0
		left := block.Analyze(leftFull, histPad+off, l, false, ra, fc.analyzeParams(fc.finalStage, depth))
		right := block.Analyze(rightFull, histPad+off, l, false, ra, fc.analyzeParams(fc.finalStage, depth))
		left.DivBlock, right.DivBlock = divBlock[i], divBlock[i]
		leftBlocks = append(leftBlocks, left)
		rightBlocks = append(rightBlocks, right)
		off += l
	}
	return pairResult{bsInfo: info, left: leftBlocks, right: rightBlocks}
}

// monoResult is a single channel's chosen frame encoding.
type monoResult struct {
	bsInfo alsframe.BSInfo
	blocks []*alsframe.Block
}

// encodeMono runs the block-switching search and final encoding for a
// channel with no stereo partner (joint-stereo never applies).
func (fc *frameCoder) encodeMono(full []int32, histPad, frameLength int, raBlock bool) monoResult {
	if frameLength < fc.cfg.FrameLength {
		info, lengths, divBlock := fc.terminalTree(frameLength, fc.terminalCost(full, histPad, frameLength, raBlock))
		info.SetIndependentBS(true)

		leaves := info.Leaves()
		blocks := make([]*alsframe.Block, 0, len(leaves))
		off := 0
		for i, n := range leaves {
			l := lengths[i]
			if l == 0 {
				continue
			}
			depth := alsframe.NodeDepth(n)
			ra := raBlock && off == 0
			blk := block.Analyze(full, histPad+off, l, false, ra, fc.analyzeParams(fc.finalStage, depth))
			blk.DivBlock = divBlock[i]
			blocks = append(blocks, blk)
			off += l
		}
		return monoResult{bsInfo: info, blocks: blocks}
	}

	cost := func(off, l int) int {
		d := depthFromLength(frameLength, l)
		ra := raBlock && off == 0
		return block.Analyze(full, histPad+off, l, false, ra, fc.analyzeParams(fc.bsStage, d)).Bits
	}
	sizes := partition.GenBlockSizes(frameLength, fc.maxDepth, cost)
	info := partition.MergeBottomUp(sizes, fc.maxDepth)
	info.SetIndependentBS(true)

	leaves := info.Leaves()
	lengths := info.LeafLengths(frameLength)
	blocks := make([]*alsframe.Block, len(leaves))

	off := 0
	for i, n := range leaves {
		l := lengths[i]
		depth := alsframe.NodeDepth(n)
		ra := raBlock && off == 0
		blocks[i] = block.Analyze(full, histPad+off, l, false, ra, fc.analyzeParams(fc.finalStage, depth))
		off += l
	}
	return monoResult{bsInfo: info, blocks: blocks}
}
