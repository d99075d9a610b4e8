// Package engine computes SHA-256 digests over the fixed one-block
// message layout of the search.
//
// Every candidate message is exactly 55 bytes: the 44-byte namespace
// prefix, the 4-character wave tag, the 4-character lane code and the
// 3-character tail. Together with the 0x80 padding terminator and the
// 64-bit length the message fills a single 64-byte SHA-256 block, so
// the whole search compresses exactly one block per candidate. That
// invariant is load-bearing: nothing here handles multi-block input.
//
// Two digest paths exist and must agree bit-for-bit on all inputs:
// Compress, the throughput path used inside search lanes, and
// Reference, which rehashes the reconstructed message with an
// independent SHA-256 implementation and is used to re-verify every
// candidate the search reports.
package engine

import (
	"encoding/binary"
	"math/bits"

	"github.com/spacemeshos/nadir/digest"
)

// Prefix is the fixed public namespace every candidate message starts
// with. Compile-time constant in this version.
const Prefix = "spacemesh nadir lowest digest search v1.0.0 "

const (
	// MessageLength is the byte length of a full candidate message.
	MessageLength = 55

	// Terminator is the SHA-256 padding byte carried in the low byte
	// of every tail word.
	Terminator = 0x80

	prefixWords = 11
	messageBits = MessageLength * 8
)

// initState is the SHA-256 initial hash value.
var initState = [8]uint32{
	0x6a09e667, 0xbb67ae85, 0x3c6ef372, 0xa54ff53a,
	0x510e527f, 0x9b05688c, 0x1f83d9ab, 0x5be0cd19,
}

// k holds the SHA-256 round constants.
var k = [64]uint32{
	0x428a2f98, 0x71374491, 0xb5c0fbcf, 0xe9b5dba5, 0x3956c25b, 0x59f111f1, 0x923f82a4, 0xab1c5ed5,
	0xd807aa98, 0x12835b01, 0x243185be, 0x550c7dc3, 0x72be5d74, 0x80deb1fe, 0x9bdc06a7, 0xc19bf174,
	0xe49b69c1, 0xefbe4786, 0x0fc19dc6, 0x240ca1cc, 0x2de92c6f, 0x4a7484aa, 0x5cb0a9dc, 0x76f988da,
	0x983e5152, 0xa831c66d, 0xb00327c8, 0xbf597fc7, 0xc6e00bf3, 0xd5a79147, 0x06ca6351, 0x14292967,
	0x27b70a85, 0x2e1b2138, 0x4d2c6dfc, 0x53380d13, 0x650a7354, 0x766a0abb, 0x81c2c92e, 0x92722c85,
	0xa2bfe8a1, 0xa81a664b, 0xc24b8b70, 0xc76c51a3, 0xd192e819, 0xd6990624, 0xf40e3585, 0x106aa070,
	0x19a4c116, 0x1e376c08, 0x2748774c, 0x34b0bcb5, 0x391c0cb3, 0x4ed8aa4a, 0x5b9cca4f, 0x682e6ff3,
	0x748f82ee, 0x78a5636f, 0x84c87814, 0x8cc70208, 0x90befffa, 0xa4506ceb, 0xbef9a3f7, 0xc67178f2,
}

var (
	// prefix holds the 11 constant message words derived from Prefix.
	prefix [prefixWords]uint32

	// midstate is the round state after compressing the 11 constant
	// prefix rounds. The first variable word enters at round 11, so
	// everything before it is the same for every candidate.
	midstate [8]uint32
)

func init() {
	if len(Prefix) != prefixWords*4 {
		panic("engine: prefix must be exactly 44 bytes")
	}
	for i := range prefix {
		prefix[i] = binary.BigEndian.Uint32([]byte(Prefix)[i*4:])
	}

	s := initState
	for t := 0; t < prefixWords; t++ {
		round(&s, prefix[t], k[t])
	}
	midstate = s
}

// NewTail builds a tail message word from its 3 free bytes, placing the
// padding terminator in the low byte.
func NewTail(b0, b1, b2 byte) uint32 {
	return uint32(b0)<<24 | uint32(b1)<<16 | uint32(b2)<<8 | Terminator
}

// Compress computes the SHA-256 digest of the fixed-layout block with
// tag, lane and tail substituted for the three variable words.
//
// This is the throughput variant: the constant prefix rounds are folded
// into a precomputed midstate and the message schedule lives in a
// rolling 16-word buffer (each schedule word depends only on the 16
// words before it).
func Compress(tag, lane, tail uint32) digest.Digest {
	w := [16]uint32{
		prefix[0], prefix[1], prefix[2], prefix[3], prefix[4], prefix[5],
		prefix[6], prefix[7], prefix[8], prefix[9], prefix[10],
		tag, lane, tail,
		0, messageBits,
	}

	s := midstate
	for t := prefixWords; t < 16; t++ {
		round(&s, w[t], k[t])
	}
	for t := 16; t < 64; t++ {
		i := t & 15
		w[i] += sigma1(w[(t-2)&15]) + w[(t-7)&15] + sigma0(w[(t-15)&15])
		round(&s, w[i], k[t])
	}

	return digest.Digest{
		s[0] + initState[0], s[1] + initState[1], s[2] + initState[2], s[3] + initState[3],
		s[4] + initState[4], s[5] + initState[5], s[6] + initState[6], s[7] + initState[7],
	}
}

// round applies one SHA-256 compression round to s.
func round(s *[8]uint32, w, k uint32) {
	a, b, c, d, e, f, g, h := s[0], s[1], s[2], s[3], s[4], s[5], s[6], s[7]

	t1 := h + bigSigma1(e) + ch(e, f, g) + k + w
	t2 := bigSigma0(a) + maj(a, b, c)

	s[0], s[1], s[2], s[3] = t1+t2, a, b, c
	s[4], s[5], s[6], s[7] = d+t1, e, f, g
}

func ch(x, y, z uint32) uint32  { return (x & y) ^ (^x & z) }
func maj(x, y, z uint32) uint32 { return (x & y) ^ (x & z) ^ (y & z) }

func bigSigma0(x uint32) uint32 {
	return bits.RotateLeft32(x, -2) ^ bits.RotateLeft32(x, -13) ^ bits.RotateLeft32(x, -22)
}

func bigSigma1(x uint32) uint32 {
	return bits.RotateLeft32(x, -6) ^ bits.RotateLeft32(x, -11) ^ bits.RotateLeft32(x, -25)
}

func sigma0(x uint32) uint32 {
	return bits.RotateLeft32(x, -7) ^ bits.RotateLeft32(x, -18) ^ (x >> 3)
}

func sigma1(x uint32) uint32 {
	return bits.RotateLeft32(x, -17) ^ bits.RotateLeft32(x, -19) ^ (x >> 10)
}
