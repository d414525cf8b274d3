// Package crc defines the CRC32 collaborator contract the frame driver
// depends on for its optional trailing checksum field, plus a stdlib-backed
// default implementation of it.
package crc

import "hash/crc32"

// CRC32 computes a running CRC-32 checksum over the bytes written to it;
// the encoder feeds it the source PCM samples. Implementations are free to choose their own polynomial and table;
// this interface specifies only the call contract, not the algorithm.
type CRC32 interface {
	// Reset clears accumulated state.
	Reset()
	// Write folds p into the running checksum.
	Write(p []byte) (n int, err error)
	// Sum32 returns the checksum accumulated so far.
	Sum32() uint32
}

// ieeeCRC32 is the default CRC32 implementation, backed by the standard
// library's IEEE polynomial table. It satisfies the CRC32 contract above but
// is deliberately kept swappable: alsenc never constructs hash/crc32 types
// directly outside this file.
type ieeeCRC32 struct {
	table *crc32.Table
	sum   uint32
}

// NewIEEE returns the default CRC32 collaborator, using the IEEE 802.3
// polynomial.
func NewIEEE() CRC32 {
	return &ieeeCRC32{table: crc32.IEEETable}
}

func (c *ieeeCRC32) Reset() {
	c.sum = 0
}

func (c *ieeeCRC32) Write(p []byte) (int, error) {
	c.sum = crc32.Update(c.sum, c.table, p)
	return len(p), nil
}

func (c *ieeeCRC32) Sum32() uint32 {
	return c.sum
}
