package alsenc

import (
	"github.com/go-als/alsenc/alsframe"
	"github.com/go-als/alsenc/block"
	"github.com/go-als/alsenc/internal/bitio"
	"github.com/go-als/alsenc/internal/crc"
	"github.com/mewkiz/pkg/errutil"
)

// Stats is read-only encoder telemetry: running min/max frame and block
// sizes. ALSSpecificConfig carries no such fields on the wire; this is
// diagnostic-only, read through Encoder.Stats.
type Stats struct {
	FramesWritten int
	FrameSizeMin  int
	FrameSizeMax  int
	BlockSizeMin  int
	BlockSizeMax  int
}

func (s *Stats) observeFrame(bytes int) {
	if s.FramesWritten == 0 || bytes < s.FrameSizeMin {
		s.FrameSizeMin = bytes
	}
	if bytes > s.FrameSizeMax {
		s.FrameSizeMax = bytes
	}
	s.FramesWritten++
}

func (s *Stats) observeBlock(bits int) {
	bytes := (bits + 7) / 8
	if s.BlockSizeMin == 0 || bytes < s.BlockSizeMin {
		s.BlockSizeMin = bytes
	}
	if bytes > s.BlockSizeMax {
		s.BlockSizeMax = bytes
	}
}

// frameBufferBytes sizes the per-frame scratch bitstream buffer generously
// enough that a pathological (near-incompressible) frame never trips the
// writer's overflow guard: worst case is close to uncompressed, plus
// per-block side-info overhead.
func frameBufferBytes(cfg *alsframe.Config) int {
	perSample := cfg.Resolution.Bits()
	if perSample == 0 {
		perSample = 32
	}
	return cfg.Channels*cfg.FrameLength*perSample/8 + 4096
}

// Encoder drives the per-frame ALS compression pipeline across repeated
// calls to Write. Per-channel sample-history buffers are allocated once at
// construction; Write copies each call's samples into them and advances
// history afterward. The output bit writer and the per-block analysis
// scratch are allocated anew on every Write.
type Encoder struct {
	cfg   alsframe.Config
	coder *frameCoder
	bufs  []*alsframe.ChannelBuffer

	raCounter int
	firstCall bool
	crc       crc.CRC32
	stats     Stats
}

// NewEncoder allocates an Encoder for the given stream configuration.
// cfg.Channels must be 1 or 2: multi-channel (>2) correlation coding is
// explicitly unimplemented (mc_coding).
func NewEncoder(cfg alsframe.Config) (*Encoder, error) {
	if cfg.Channels != 1 && cfg.Channels != 2 {
		return nil, errutil.Newf("alsenc: %d channels unsupported, mc_coding is not implemented", cfg.Channels)
	}
	if cfg.Floating {
		return nil, errutil.Newf("alsenc: floating-point PCM input is not implemented")
	}
	if cfg.FrameLength < 1 || cfg.FrameLength > 65536 {
		return nil, errutil.Newf("alsenc: frame length %d out of range", cfg.FrameLength)
	}

	bufs := make([]*alsframe.ChannelBuffer, cfg.Channels)
	for i := range bufs {
		bufs[i] = alsframe.NewChannelBuffer(cfg.FrameLength, cfg.HistoryPad())
	}

	return &Encoder{
		cfg:       cfg,
		coder:     newFrameCoder(&cfg),
		bufs:      bufs,
		firstCall: true,
		crc:       crc.NewIEEE(),
	}, nil
}

// Stats returns a snapshot of the running encoder telemetry.
func (e *Encoder) Stats() Stats {
	return e.stats
}

// Write encodes one input frame and returns its bitstream packet.
// channels holds one slice per configured channel, each of equal length
// in [1, cfg.FrameLength]; a length shorter than FrameLength marks the
// terminal frame.
func (e *Encoder) Write(channels [][]int32) ([]byte, error) {
	if len(channels) != e.cfg.Channels {
		return nil, errutil.Newf("alsenc: got %d channels, stream configured for %d", len(channels), e.cfg.Channels)
	}
	frameLength := len(channels[0])
	if frameLength < 1 || frameLength > e.cfg.FrameLength {
		return nil, errutil.Newf("alsenc: frame length %d out of range", frameLength)
	}
	for i, c := range channels {
		if len(c) != frameLength {
			return nil, errutil.Newf("alsenc: channel %d length %d does not match channel 0's %d", i, len(c), frameLength)
		}
	}

	raBlock := e.firstCall
	if e.cfg.RADistance > 0 {
		raBlock = raBlock || e.raCounter == 0
	}

	histPad := e.cfg.HistoryPad()
	for i, buf := range e.bufs {
		copy(buf.Raw[histPad:histPad+frameLength], channels[i])
		e.updateCRC(channels[i])
	}

	w := bitio.NewWriter(frameBufferBytes(&e.cfg))
	if e.cfg.RADistance == 1 && e.cfg.RAFlag == alsframe.RAFlagFrames {
		if err := w.WriteWord(0); err != nil { // patched below
			return nil, err
		}
	}

	if err := e.writeFrameBlocks(w, histPad, frameLength, raBlock); err != nil {
		return nil, err
	}

	data, err := w.Bytes()
	if err != nil {
		return nil, err
	}
	if e.cfg.RADistance == 1 && e.cfg.RAFlag == alsframe.RAFlagFrames {
		if err := w.PatchWord(0, uint32(len(data))); err != nil {
			return nil, err
		}
	}

	for _, buf := range e.bufs {
		buf.AdvanceHistory(frameLength)
	}
	if e.cfg.RADistance > 0 {
		e.raCounter = (e.raCounter + 1) % e.cfg.RADistance
	}
	e.firstCall = false
	e.stats.observeFrame(len(data))
	return data, nil
}

func (e *Encoder) writeFrameBlocks(w *bitio.Writer, histPad, frameLength int, raBlock bool) error {
	if e.cfg.Channels == 2 {
		pr := e.coder.encodePair(e.bufs[0].Raw, e.bufs[1].Raw, histPad, frameLength, raBlock)
		for i := range pr.left {
			if err := block.WriteBlock(w, pr.left[i], &e.cfg); err != nil {
				return err
			}
			e.stats.observeBlock(pr.left[i].Bits)
			if err := block.WriteBlock(w, pr.right[i], &e.cfg); err != nil {
				return err
			}
			e.stats.observeBlock(pr.right[i].Bits)
		}
		return nil
	}

	mr := e.coder.encodeMono(e.bufs[0].Raw, histPad, frameLength, raBlock)
	for _, blk := range mr.blocks {
		if err := block.WriteBlock(w, blk, &e.cfg); err != nil {
			return err
		}
		e.stats.observeBlock(blk.Bits)
	}
	return nil
}

// updateCRC folds one channel's worth of a frame's samples into the
// running CRC-32/IEEE, truncated to the configured resolution's byte
// width, little-endian -- the original PCM that ALSSpecificConfig's
// optional trailing CRC field covers.
func (e *Encoder) updateCRC(samples []int32) {
	n := e.cfg.Resolution.Bits() / 8
	if n == 0 {
		n = 4
	}
	buf := make([]byte, n)
	for _, s := range samples {
		v := uint32(s)
		for i := 0; i < n; i++ {
			buf[i] = byte(v >> uint(8*i))
		}
		e.crc.Write(buf)
	}
}

// Close finalizes the stream and returns the ALSSpecificConfig packet: on
// the first null (flush) input, the encoder emits an empty packet carrying
// the finalized ALS-specific configuration as side-data. Total sample
// count and, if enabled, the CRC are only known once every frame has been
// written, so the config is emitted here rather than at NewEncoder.
func (e *Encoder) Close() ([]byte, error) {
	w := bitio.NewWriter(64)
	if err := writeSpecificConfig(w, &e.cfg, e.crc.Sum32()); err != nil {
		return nil, err
	}
	return w.Bytes()
}
