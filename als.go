// Package alsenc implements the core of an MPEG-4 Audio Lossless Coding
// (ALS) encoder: the per-frame compression pipeline that turns integer PCM
// samples into a bit-exact ALS bitstream. It covers block-switching tree
// search, PARCOR/LPC short-term prediction, long-term prediction, Rice and
// BGMC entropy parameter search, joint-stereo difference coding, and the
// ALS-specific configuration header. PCM file I/O, container muxing,
// sample deinterleaving, and decoding are left to callers; see cmd/alsenc
// for a reference WAV-to-ALS driver.
package alsenc

import "github.com/go-als/alsenc/alsframe"

// Stream is a convenience pairing of a stream's configuration with the
// Encoder built from it.
type Stream struct {
	Config  alsframe.Config
	Encoder *Encoder
}

// NewStream allocates an Encoder for cfg and returns both together.
func NewStream(cfg alsframe.Config) (*Stream, error) {
	enc, err := NewEncoder(cfg)
	if err != nil {
		return nil, err
	}
	return &Stream{Config: cfg, Encoder: enc}, nil
}
