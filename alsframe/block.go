package alsframe

// LTPInfo is the long-term-prediction descriptor for one block, indexed by
// js_block (a block carries two of these, one per signal it might be coded
// against).
type LTPInfo struct {
	UseLTP bool
	Lag    int    // samples, in [4, 2048]
	Gain   [5]int // quantized integer gains
	Bits   int    // bit cost of this LTP configuration
}

// BGMCParam is the per-sub-block BGMC parameter pair.
type BGMCParam struct {
	S  int
	SX int
}

// EntropyInfo is the per-block entropy coder configuration, indexed by
// use_ltp.
type EntropyInfo struct {
	BGMC      bool
	SubBlocks int // 1, 2, 4, or 8
	RiceK     []int
	BGMCParam []BGMCParam
	Bits      int // total bit cost, this configuration
}

// Block is the transient per-partition, per-channel descriptor the frame
// driver builds for one leaf of the block-switching tree.
type Block struct {
	Length   int
	DivBlock int // depth code, or -1 for a truncated terminal block
	RABlock  bool

	Constant      bool
	ConstantValue int32

	ShiftLSBs int // [0, 15]

	JSBlock bool // 0 = independent signal, 1 = uses difference signal

	OptOrder int
	QParcor  []int8 // signed 7-bit coefficients, one per order

	LTP     [2]LTPInfo     // indexed by js_block
	Entropy [2]EntropyInfo // indexed by use_ltp

	// Offset is this block's starting sample index within the channel's
	// current-frame sample streams (history precedes index 0).
	Offset int

	// Residuals is the final residual signal the bitstream writer emits:
	// LPC residuals, or LTP residuals when LTP was committed.
	Residuals []int32

	Bits int // total emitted bit cost, byte-aligned
}
