package engine

import (
	"encoding/binary"

	"github.com/spacemeshos/sha256-simd"

	"github.com/spacemeshos/nadir/digest"
)

// Message reconstructs the full printable candidate message for the
// given variable words. The terminator byte of the tail word is padding
// and not part of the message.
func Message(tag, lane, tail uint32) [MessageLength]byte {
	var m [MessageLength]byte
	copy(m[:], Prefix)
	binary.BigEndian.PutUint32(m[44:], tag)
	binary.BigEndian.PutUint32(m[48:], lane)
	m[52] = byte(tail >> 24)
	m[53] = byte(tail >> 16)
	m[54] = byte(tail >> 8)
	return m
}

// Reference computes the same digest as Compress through an independent
// path: it rebuilds the message bytes and hashes them from scratch. It
// is deliberately unspecialized and exists to catch correctness drift
// in the throughput variant, so it must never share code with it.
func Reference(tag, lane, tail uint32) digest.Digest {
	m := Message(tag, lane, tail)
	return digest.FromBytes(sha256.Sum256(m[:]))
}
