package alsframe

// ChannelBuffer holds the four parallel per-channel sample streams the
// encoder needs (raw, difference, LSB-shifted, residual) plus the
// LTP-residual stream used once short-term prediction has run. Each stream
// is a contiguous array of length frameLength+historyPad; index historyPad
// is the first sample of the current frame, and indices before it are
// history carried from the previous frame (or zero, for the stream's first
// RA frame). Predictors address negative offsets from a block's start by
// indexing HistoryPad+Offset-k.
type ChannelBuffer struct {
	HistoryPad int

	Raw         []int32
	Diff        []int32 // allocated but not written; the frame driver builds a pair's difference signal in its own buffer
	Shifted     []int32
	Residual    []int32
	LTPResidual []int32
}

// NewChannelBuffer allocates the streams for one channel, each sized for
// frameLength current samples plus historyPad samples of carried history.
// Allocation happens once, at encoder init, so there is no per-frame
// allocation in the steady state; callers reuse the same ChannelBuffer
// across frames via AdvanceHistory.
func NewChannelBuffer(frameLength, historyPad int) *ChannelBuffer {
	n := frameLength + historyPad
	return &ChannelBuffer{
		HistoryPad:  historyPad,
		Raw:         make([]int32, n),
		Diff:        make([]int32, n),
		Shifted:     make([]int32, n),
		Residual:    make([]int32, n),
		LTPResidual: make([]int32, n),
	}
}

// AdvanceHistory copies the tail of the current frame's raw samples
// (historyPad samples ending at HistoryPad+frameLength, the last sample of
// the frame just encoded) down to the head of the buffer, so the next
// call's current-frame region (starting at index HistoryPad again) has the
// right predictor history in front of it. This is the ring-like tail copy
// that carries predictor history across frames.
func (c *ChannelBuffer) AdvanceHistory(frameLength int) {
	pad := c.HistoryPad
	end := pad + frameLength
	start := end - pad
	if start < 0 {
		start = 0
	}
	copy(c.Raw[:pad], c.Raw[start:end])
}

// Frame returns the slice view of s covering exactly the current frame's
// samples (history excluded).
func (c *ChannelBuffer) Frame(s []int32, frameLength int) []int32 {
	return s[c.HistoryPad : c.HistoryPad+frameLength]
}
