// Package digest defines the 256-bit digest value type and the total
// order the search minimizes over.
package digest

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"
)

// Words is the number of 32-bit words in a digest.
const Words = 8

// Digest is a SHA-256 digest as 8 unsigned 32-bit words, word 0 most
// significant. Digests are compared only via Less.
type Digest [Words]uint32

// FromBytes converts a standard 32-byte SHA-256 sum to a Digest.
func FromBytes(sum [32]byte) Digest {
	var d Digest
	for i := 0; i < Words; i++ {
		d[i] = binary.BigEndian.Uint32(sum[i*4:])
	}
	return d
}

// Less reports whether d is strictly smaller than other when both are
// read as 256-bit unsigned big-endian integers.
func (d Digest) Less(other Digest) bool {
	for i := 0; i < Words; i++ {
		if d[i] != other[i] {
			return d[i] < other[i]
		}
	}
	return false
}

// Worst returns the maximum digest value. It serves as the sentinel for
// "nothing found yet": every real digest compares below it.
func Worst() Digest {
	var d Digest
	for i := range d {
		d[i] = math.MaxUint32
	}
	return d
}

// String renders the digest as 8 lowercase hex words separated by
// spaces, 8 digits per word.
func (d Digest) String() string {
	var sb strings.Builder
	for i, w := range d {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%08x", w)
	}
	return sb.String()
}
