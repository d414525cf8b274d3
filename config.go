package alsenc

import (
	"github.com/go-als/alsenc/alsframe"
	"github.com/go-als/alsenc/internal/bitio"
	"github.com/mewkiz/pkg/errutil"
)

// alsTag is the 32-bit magic ALSSpecificConfig opens with.
var alsTag = [4]byte{'A', 'L', 'S', 0}

// blockSwitchingField encodes the block-switching depth into the 2-bit
// wire field: 0 for no block-switching, otherwise max(1, depth-2).
func blockSwitchingField(depth int) uint64 {
	if depth == 0 {
		return 0
	}
	if depth-2 < 1 {
		return 1
	}
	return uint64(depth - 2)
}

// writeSpecificConfig emits the ALSSpecificConfig header to w. crcValue is
// ignored unless cfg.CRCEnabled; callers pass the running CRC-32/IEEE over
// the source PCM, and its bitwise complement is what gets written.
func writeSpecificConfig(w *bitio.Writer, cfg *alsframe.Config, crcValue uint32) error {
	if err := w.WriteBits(uint64(alsTag[0])<<24|uint64(alsTag[1])<<16|uint64(alsTag[2])<<8|uint64(alsTag[3]), 32); err != nil {
		return errutil.Err(err)
	}
	if err := w.WriteWord(cfg.SampleRate); err != nil {
		return errutil.Err(err)
	}
	if err := w.WriteWord(cfg.TotalSamples); err != nil {
		return errutil.Err(err)
	}
	if cfg.Channels < 1 || cfg.Channels > 65536 {
		return errutil.Newf("alsenc: channel count %d out of range", cfg.Channels)
	}
	if err := w.WriteBits(uint64(cfg.Channels-1), 16); err != nil {
		return errutil.Err(err)
	}
	if err := w.WriteBits(1, 3); err != nil { // file_type = 1
		return errutil.Err(err)
	}
	if err := w.WriteBits(uint64(cfg.Resolution), 3); err != nil {
		return errutil.Err(err)
	}
	if err := w.WriteBool(cfg.Floating); err != nil {
		return errutil.Err(err)
	}
	if err := w.WriteBool(cfg.MSBFirst); err != nil {
		return errutil.Err(err)
	}
	if cfg.FrameLength < 1 || cfg.FrameLength > 65536 {
		return errutil.Newf("alsenc: frame length %d out of range", cfg.FrameLength)
	}
	if err := w.WriteBits(uint64(cfg.FrameLength-1), 16); err != nil {
		return errutil.Err(err)
	}
	if err := w.WriteBits(uint64(cfg.RADistance), 8); err != nil {
		return errutil.Err(err)
	}
	if err := w.WriteBits(uint64(cfg.RAFlag), 2); err != nil {
		return errutil.Err(err)
	}
	if err := w.WriteBool(cfg.AdaptOrder); err != nil {
		return errutil.Err(err)
	}
	if err := w.WriteBits(uint64(cfg.CoefTable), 2); err != nil {
		return errutil.Err(err)
	}
	if err := w.WriteBool(cfg.LongTermPred); err != nil {
		return errutil.Err(err)
	}
	if err := w.WriteBits(uint64(cfg.MaxOrder), 10); err != nil {
		return errutil.Err(err)
	}
	if err := w.WriteBits(blockSwitchingField(cfg.BlockSwitching), 2); err != nil {
		return errutil.Err(err)
	}
	if err := w.WriteBool(cfg.BGMC); err != nil {
		return errutil.Err(err)
	}
	if err := w.WriteBool(cfg.SBPart); err != nil {
		return errutil.Err(err)
	}
	if err := w.WriteBool(cfg.JointStereo); err != nil {
		return errutil.Err(err)
	}
	if err := w.WriteBool(cfg.MCCoding); err != nil {
		return errutil.Err(err)
	}
	if err := w.WriteBool(cfg.ChannelConfig); err != nil {
		return errutil.Err(err)
	}
	if err := w.WriteBool(cfg.ChannelSort); err != nil {
		return errutil.Err(err)
	}
	if err := w.WriteBool(cfg.CRCEnabled); err != nil {
		return errutil.Err(err)
	}
	if err := w.WriteBool(cfg.RLSLMS); err != nil {
		return errutil.Err(err)
	}
	if err := w.WriteBits(0, 5); err != nil { // reserved
		return errutil.Err(err)
	}
	if err := w.WriteBool(false); err != nil { // aux_data_enabled
		return errutil.Err(err)
	}
	if _, err := w.Align(); err != nil {
		return errutil.Err(err)
	}
	if err := w.WriteWord(0); err != nil { // original_header_size
		return errutil.Err(err)
	}
	if err := w.WriteWord(0); err != nil { // original_trailer_size
		return errutil.Err(err)
	}
	if cfg.CRCEnabled {
		if err := w.WriteWord(^crcValue); err != nil {
			return errutil.Err(err)
		}
	}
	return nil
}
