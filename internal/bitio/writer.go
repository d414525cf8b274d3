// Package bitio implements the forward-only bounded bit sink the block
// encoder writes its output through.
package bitio

import (
	"bytes"

	"github.com/icza/bitio"
	"github.com/mewkiz/pkg/errutil"

	alsbits "github.com/go-als/alsenc/internal/bits"
)

// ErrOverflow is returned by every write method once the sink has reached
// its capacity. The sink's buffer is left untouched by the failing write, so
// the caller may abandon the current block write and retry with a larger
// buffer.
var ErrOverflow = errutil.NewNoPos("bitio: write would overflow buffer")

// Writer is a forward-only bit sink over a fixed-size byte buffer. It wraps
// an icza/bitio.Writer with a capacity check ahead of every write, so a
// caller can size a buffer per frame and treat a failing write as a
// recoverable, buffer-preserving failure rather than a panic or silent
// truncation.
type Writer struct {
	buf  bytes.Buffer
	bw   *bitio.Writer
	pos  uint64 // bits written so far
	size uint64 // capacity in bits, 0 means unbounded
}

// NewWriter returns a Writer with capacity for sizeBytes bytes. A sizeBytes
// of 0 means unbounded (no size ceiling).
func NewWriter(sizeBytes int) *Writer {
	w := &Writer{}
	if sizeBytes > 0 {
		w.size = uint64(sizeBytes) * 8
	}
	w.bw = bitio.NewWriter(&w.buf)
	return w
}

// Pos returns the number of bits written so far.
func (w *Writer) Pos() uint64 {
	return w.pos
}

func (w *Writer) checkRoom(n uint64) error {
	if w.size != 0 && w.pos+n > w.size {
		return ErrOverflow
	}
	return nil
}

// WriteBits appends the n lowest bits of v, n in [0, 32].
func (w *Writer) WriteBits(v uint64, n uint8) error {
	if n == 0 {
		return nil
	}
	if err := w.checkRoom(uint64(n)); err != nil {
		return err
	}
	if n < 64 {
		v &= (1 << n) - 1
	}
	if err := w.bw.WriteBits(v, n); err != nil {
		return errutil.Err(err)
	}
	w.pos += uint64(n)
	return nil
}

// WriteBool appends a single bit.
func (w *Writer) WriteBool(b bool) error {
	if err := w.checkRoom(1); err != nil {
		return err
	}
	if err := w.bw.WriteBool(b); err != nil {
		return errutil.Err(err)
	}
	w.pos++
	return nil
}

// WriteWord appends v as a full 32-bit word, most significant bit first.
func (w *Writer) WriteWord(v uint32) error {
	return w.WriteBits(uint64(v), 32)
}

// WriteSigned appends v two's-complement in n bits, n in [1, 32].
func (w *Writer) WriteSigned(v int32, n uint8) error {
	return w.WriteBits(uint64(v)&((1<<n)-1), n)
}

// WriteUnary appends x as x one-bits followed by a zero bit, splitting runs
// longer than 31 bits.
func (w *Writer) WriteUnary(x uint64) error {
	return alsbits.WriteUnary(w, x)
}

// WriteRice appends v using Rice code of order k: the sign-folded value is
// split into quotient (unary) and k-bit remainder.
func (w *Writer) WriteRice(v int32, k uint8) error {
	v0 := alsbits.SignFold(v)
	q := uint64(v0) >> k
	if err := w.WriteUnary(q); err != nil {
		return err
	}
	if k == 0 {
		return nil
	}
	return w.WriteBits(uint64(v0)&((1<<k)-1), k)
}

// Align pads the stream with zero bits up to the next byte boundary and
// returns the number of padding bits written.
func (w *Writer) Align() (uint8, error) {
	skipped, err := w.bw.Align()
	if err != nil {
		return 0, errutil.Err(err)
	}
	w.pos += uint64(skipped)
	return skipped, nil
}

// Bytes flushes any cached bits and returns the accumulated output. The
// returned slice aliases the Writer's buffer: no further bits may be
// written after Bytes, but PatchWord may still be called and changes the
// returned slice in place.
func (w *Writer) Bytes() ([]byte, error) {
	if _, err := w.bw.Align(); err != nil {
		return nil, errutil.Err(err)
	}
	return w.buf.Bytes(), nil
}

// PatchWord overwrites the 32-bit word starting at byte offset byteOff in
// the already-written output with v, most significant byte first. Used to
// patch the per-frame length word once a frame's body has been emitted.
func (w *Writer) PatchWord(byteOff int, v uint32) error {
	b := w.buf.Bytes()
	if byteOff < 0 || byteOff+4 > len(b) {
		return errutil.Newf("bitio: patch offset %d out of range for %d-byte buffer", byteOff, len(b))
	}
	b[byteOff] = byte(v >> 24)
	b[byteOff+1] = byte(v >> 16)
	b[byteOff+2] = byte(v >> 8)
	b[byteOff+3] = byte(v)
	return nil
}
