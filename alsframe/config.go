// Package alsframe holds the transient and stream-global types shared by
// the encoder's pipeline stages: the per-block descriptor, per-channel
// sample history, the block-switching tree word, and the handful of small
// enums the bitstream depends on.
package alsframe

// Resolution is the sample resolution code carried in ALSSpecificConfig.
type Resolution uint8

// Resolution codes.
const (
	Resolution8  Resolution = 0
	Resolution16 Resolution = 1
	Resolution24 Resolution = 2
	Resolution32 Resolution = 3
)

// Bits returns the nominal bit depth for a resolution code.
func (r Resolution) Bits() int {
	switch r {
	case Resolution8:
		return 8
	case Resolution16:
		return 16
	case Resolution24:
		return 24
	case Resolution32:
		return 32
	default:
		return 0
	}
}

// RAFlag selects how the random-access marker is placed in the bitstream.
// libavcodec's alsenc.c distinguishes two concrete placements
// (RA_FLAG_FRAMES / RA_FLAG_HEADER); this type names both. Which frames
// are random access is decided by RADistance alone; the encoder writes
// RAFlag into the header and otherwise uses it only to gate the per-frame
// length prefix.
type RAFlag uint8

const (
	// RAFlagNone is the wire value for no RA placement.
	RAFlagNone RAFlag = 0
	// RAFlagFrames places RA information in the frames: with RADistance
	// == 1 each frame packet starts with its 32-bit byte length.
	RAFlagFrames RAFlag = 1
	// RAFlagHeader is the wire value for RA information in the stream
	// header; the encoder emits no header-side RA data for it.
	RAFlagHeader RAFlag = 2
)

// CoefTable selects which PARCOR reconstruction table the LPC engine uses
// for indices 0 and 1. libavcodec's als.c names four tables
// (ALS_COEF_TABLE_0..2, plus a plain 7-bit fallback for coef_table==3);
// this type makes all four selectable instead of leaving table 3 the only
// alternative to an unnamed default.
type CoefTable uint8

const (
	CoefTable0 CoefTable = 0
	CoefTable1 CoefTable = 1
	CoefTable2 CoefTable = 2
	// CoefTable3 writes every coefficient as a plain 7-bit field biased by
	// +64. Reconstruction of indices 0 and 1 uses the CoefTable2 values.
	CoefTable3 CoefTable = 3
)

// ChannelOrder is the per-stream channel re-ordering hook (chan_sort in the
// original). The source routine is a no-op; this type keeps that behavior
// but gives it a first-class, testable shape rather than leaving the
// bitstream flag with nothing behind it.
type ChannelOrder struct {
	perm []int
}

// NewChannelOrder returns the identity ordering for n channels.
func NewChannelOrder(n int) ChannelOrder {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	return ChannelOrder{perm: perm}
}

// Apply returns the stream index of the i'th coded channel. The identity
// ordering always returns i unchanged.
func (o ChannelOrder) Apply(i int) int {
	return o.perm[i]
}

// Len returns the number of channels the ordering covers.
func (o ChannelOrder) Len() int {
	return len(o.perm)
}

// IsIdentity reports whether the ordering is a no-op permutation.
func (o ChannelOrder) IsIdentity() bool {
	for i, v := range o.perm {
		if i != v {
			return false
		}
	}
	return true
}

// Config is the stream-global SpecificConfig, immutable once the encoder
// is created.
type Config struct {
	SampleRate     uint32
	Channels       int
	TotalSamples   uint32 // 0xFFFFFFFF means unknown
	Resolution     Resolution
	Floating       bool
	MSBFirst       bool
	FrameLength    int // 1..65536
	RADistance     int // 0..255; 0 = never, 1 = always
	RAFlag         RAFlag
	AdaptOrder     bool
	CoefTable      CoefTable
	LongTermPred   bool
	MaxOrder       int // 0..1023
	BlockSwitching int // depth, 0..5
	BGMC           bool
	SBPart         bool
	JointStereo    bool
	MCCoding       bool // declared but never implemented
	ChannelConfig  bool
	ChannelSort    bool
	CRCEnabled     bool
	RLSLMS         bool // declared in the wire format, never driven by this encoder

	CompressionLevel int
}

// LTPMaxLag is the maximum long-term-prediction lag, and thus the minimum
// history padding every per-channel sample stream must carry.
const LTPMaxLag = 2048

// HistoryPad is the number of samples of previous-frame history each
// channel's sample streams carry ahead of the current frame.
func (c *Config) HistoryPad() int {
	if c.MaxOrder > LTPMaxLag {
		return c.MaxOrder
	}
	return LTPMaxLag
}

// CompressionLevelTable is the fixed per-level table: compression levels
// 0, 1, 2 expose a single integer control that maps to concrete encoder
// settings.
type CompressionLevelTable struct {
	AdaptOrder     bool
	LongTermPred   bool
	MaxOrder       int
	BlockSwitching int
	BGMC           bool
	SBPart         bool
	JointStereo    bool
	CRCEnabled     bool
}

// CompressionLevels holds the three standard levels.
var CompressionLevels = [3]CompressionLevelTable{
	0: {AdaptOrder: false, LongTermPred: false, MaxOrder: 4, BlockSwitching: 0, BGMC: false, SBPart: false, JointStereo: false, CRCEnabled: false},
	1: {AdaptOrder: false, LongTermPred: false, MaxOrder: 10, BlockSwitching: 0, BGMC: false, SBPart: true, JointStereo: true, CRCEnabled: true},
	2: {AdaptOrder: false, LongTermPred: false, MaxOrder: 32, BlockSwitching: 1, BGMC: true, SBPart: true, JointStereo: true, CRCEnabled: true},
}

// ApplyCompressionLevel sets every field CompressionLevels[level] covers.
// Fields outside the table (resolution, frame length, channel layout, ...)
// are left untouched.
func (c *Config) ApplyCompressionLevel(level int) {
	t := CompressionLevels[level]
	c.CompressionLevel = level
	c.AdaptOrder = t.AdaptOrder
	c.LongTermPred = t.LongTermPred
	c.MaxOrder = t.MaxOrder
	c.BlockSwitching = t.BlockSwitching
	c.BGMC = t.BGMC
	c.SBPart = t.SBPart
	c.JointStereo = t.JointStereo
	c.CRCEnabled = t.CRCEnabled
}
