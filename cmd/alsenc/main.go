// Command alsenc converts a WAV file to a raw ALS packet stream: the
// finalized ALSSpecificConfig followed by one length-prefixed packet per
// frame. It is a reference driver for the alsenc package's frame-by-frame
// API, not a full MPEG-4 container muxer.
package main

import (
	"encoding/binary"
	"flag"
	"log"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/pkg/errors"

	"github.com/go-als/alsenc"
	"github.com/go-als/alsenc/alsframe"
)

func main() {
	var (
		force bool
		level int
	)
	flag.BoolVar(&force, "f", false, "force overwrite")
	flag.IntVar(&level, "level", 1, "compression level (0, 1, or 2)")
	flag.Parse()
	for _, wavPath := range flag.Args() {
		if err := wav2als(wavPath, force, level); err != nil {
			log.Fatalf("%+v", err)
		}
	}
}

func wav2als(wavPath string, force bool, level int) error {
	r, err := os.Open(wavPath)
	if err != nil {
		return errors.WithStack(err)
	}
	defer r.Close()

	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return errors.Errorf("invalid WAV file %q", wavPath)
	}
	if err := dec.FwdToPCM(); err != nil {
		return errors.WithStack(err)
	}

	alsPath := trimExt(wavPath) + ".als"
	if !force {
		if _, err := os.Stat(alsPath); err == nil {
			return errors.Errorf("ALS file %q already present; use -f flag to force overwrite", alsPath)
		}
	}
	w, err := os.Create(alsPath)
	if err != nil {
		return errors.WithStack(err)
	}
	defer w.Close()

	nchannels := int(dec.NumChans)
	resolution, err := resolutionFromBitDepth(int(dec.BitDepth))
	if err != nil {
		return err
	}

	cfg := alsframe.Config{
		SampleRate:   dec.SampleRate,
		Channels:     nchannels,
		TotalSamples: 0xFFFFFFFF, // unknown until the stream is fully read
		Resolution:   resolution,
		FrameLength:  2048,
		RADistance:   1,
		RAFlag:       alsframe.RAFlagFrames,
	}
	cfg.ApplyCompressionLevel(level)

	enc, err := alsenc.NewEncoder(cfg)
	if err != nil {
		return errors.WithStack(err)
	}

	const samplesPerChannelPerFrame = 2048
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: nchannels,
			SampleRate:  int(dec.SampleRate),
		},
		Data:           make([]int, nchannels*samplesPerChannelPerFrame),
		SourceBitDepth: int(dec.BitDepth),
	}

	channels := make([][]int32, nchannels)
	for !dec.EOF() {
		n, err := dec.PCMBuffer(buf)
		if err != nil {
			return errors.WithStack(err)
		}
		if n == 0 {
			break
		}
		nSamplesPerChannel := n / nchannels
		for c := range channels {
			channels[c] = make([]int32, nSamplesPerChannel)
		}
		for i := 0; i < n; i++ {
			channels[i%nchannels][i/nchannels] = int32(buf.Data[i])
		}

		packet, err := enc.Write(channels)
		if err != nil {
			return errors.WithStack(err)
		}
		if err := writeLengthPrefixed(w, packet); err != nil {
			return err
		}
	}

	configPacket, err := enc.Close()
	if err != nil {
		return errors.WithStack(err)
	}
	return writeLengthPrefixed(w, configPacket)
}

func writeLengthPrefixed(w *os.File, packet []byte) error {
	var length [4]byte
	binary.BigEndian.PutUint32(length[:], uint32(len(packet)))
	if _, err := w.Write(length[:]); err != nil {
		return errors.WithStack(err)
	}
	if _, err := w.Write(packet); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

func resolutionFromBitDepth(bps int) (alsframe.Resolution, error) {
	switch bps {
	case 8:
		return alsframe.Resolution8, nil
	case 16:
		return alsframe.Resolution16, nil
	case 24:
		return alsframe.Resolution24, nil
	case 32:
		return alsframe.Resolution32, nil
	default:
		return 0, errors.Errorf("unsupported bit depth %d", bps)
	}
}

func trimExt(path string) string {
	for i := len(path) - 1; i >= 0 && !os.IsPathSeparator(path[i]); i-- {
		if path[i] == '.' {
			return path[:i]
		}
	}
	return path
}
