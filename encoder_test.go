package alsenc

import (
	"testing"

	"github.com/go-als/alsenc/alsframe"
)

func monoEncoderConfig() alsframe.Config {
	cfg := alsframe.Config{
		SampleRate:   8000,
		Channels:     1,
		TotalSamples: 0xFFFFFFFF,
		Resolution:   alsframe.Resolution16,
		FrameLength:  128,
		RADistance:   1,
		RAFlag:       alsframe.RAFlagFrames,
	}
	cfg.ApplyCompressionLevel(0)
	return cfg
}

func TestNewEncoderRejectsUnsupportedChannelCount(t *testing.T) {
	cfg := monoEncoderConfig()
	cfg.Channels = 6
	if _, err := NewEncoder(cfg); err == nil {
		t.Fatalf("expected an error for mc_coding channel counts")
	}
}

func TestNewEncoderRejectsFloatingPoint(t *testing.T) {
	cfg := monoEncoderConfig()
	cfg.Floating = true
	if _, err := NewEncoder(cfg); err == nil {
		t.Fatalf("expected an error for floating-point input")
	}
}

func TestEncoderWriteProducesFramedPacket(t *testing.T) {
	cfg := monoEncoderConfig()
	enc, err := NewEncoder(cfg)
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}

	samples := make([]int32, cfg.FrameLength)
	for i := range samples {
		samples[i] = int32((i % 30) - 15)
	}

	packet, err := enc.Write([][]int32{samples})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if len(packet) < 5 {
		t.Fatalf("packet too short: %d bytes", len(packet))
	}
	// RADistance==1 && RAFlagFrames means the first 4 bytes are the
	// packet's own length.
	prefixedLen := uint32(packet[0])<<24 | uint32(packet[1])<<16 | uint32(packet[2])<<8 | uint32(packet[3])
	if int(prefixedLen) != len(packet) {
		t.Fatalf("length prefix = %d, want %d (the packet's own length)", prefixedLen, len(packet))
	}

	stats := enc.Stats()
	if stats.FramesWritten != 1 {
		t.Fatalf("FramesWritten = %d, want 1", stats.FramesWritten)
	}
}

func TestEncoderWriteRejectsMismatchedChannelCount(t *testing.T) {
	cfg := monoEncoderConfig()
	enc, err := NewEncoder(cfg)
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}
	if _, err := enc.Write([][]int32{{1, 2}, {3, 4}}); err == nil {
		t.Fatalf("expected an error for a channel count mismatch")
	}
}

func TestEncoderCloseReturnsConfigPacket(t *testing.T) {
	cfg := monoEncoderConfig()
	enc, err := NewEncoder(cfg)
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}
	samples := make([]int32, cfg.FrameLength)
	if _, err := enc.Write([][]int32{samples}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	packet, err := enc.Close()
	if err != nil {
		t.Fatalf("Close: %v", err)
	}
	if len(packet) < 4 || string(packet[:3]) != "ALS" {
		t.Fatalf("Close() packet should start with the ALS tag, got %v", packet[:4])
	}
}

func TestEncoderHandlesMultipleFramesAndTerminalFrame(t *testing.T) {
	cfg := monoEncoderConfig()
	enc, err := NewEncoder(cfg)
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}
	full := make([]int32, cfg.FrameLength)
	for i := range full {
		full[i] = int32(i % 50)
	}
	for i := 0; i < 3; i++ {
		if _, err := enc.Write([][]int32{full}); err != nil {
			t.Fatalf("Write frame %d: %v", i, err)
		}
	}
	short := full[:cfg.FrameLength/3]
	if _, err := enc.Write([][]int32{short}); err != nil {
		t.Fatalf("Write terminal frame: %v", err)
	}
	if enc.Stats().FramesWritten != 4 {
		t.Fatalf("FramesWritten = %d, want 4", enc.Stats().FramesWritten)
	}
}
