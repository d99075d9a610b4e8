package engine

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spacemeshos/nadir/alphabet"
	"github.com/spacemeshos/nadir/digest"
)

func TestEnginesAgree(t *testing.T) {
	r := require.New(t)

	cases := []struct {
		name            string
		tag, lane, tail uint32
	}{
		{"zero variable words", 0, 0, NewTail(0, 0, 0)},
		{"alphabet words", 0x41414141, 0x41414142, NewTail('A', 'A', 'A')},
		{"arbitrary words", 0xdeadbeef, 0x01234567, NewTail(0xff, 0x00, 0x7f)},
		{"all ones", 0xffffffff, 0xffffffff, NewTail(0xff, 0xff, 0xff)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fast := Compress(tc.tag, tc.lane, tc.tail)
			ref := Reference(tc.tag, tc.lane, tc.tail)
			r.Equal(ref, fast)

			// Independent check against the standard library.
			m := Message(tc.tag, tc.lane, tc.tail)
			r.Equal(digest.FromBytes(sha256.Sum256(m[:])), fast)
		})
	}
}

func TestKnownDigests(t *testing.T) {
	r := require.New(t)

	// Independently computed SHA-256 sums of the exact 55-byte messages.
	d := Compress(0, 0, NewTail(0, 0, 0))
	r.Equal("2ddb929e 7a9a9f6b 95882c98 3a2d8dfa 5501ba8f cab5fc58 ac57229c 685eb4d3", d.String())

	tag, err := alphabet.EncodeWord(0)
	r.NoError(err)
	lane, err := alphabet.EncodeWord(1)
	r.NoError(err)
	d = Compress(tag, lane, NewTail('A', 'A', 'A'))
	r.Equal("f14c70af 569ec1ea d3b2ce94 1e24174c 9eee820b 66ff99e6 05f9701b 3293938f", d.String())
}

func TestDeterminism(t *testing.T) {
	tail := NewTail('x', 'y', 'z')
	require.Equal(t, Compress(1, 2, tail), Compress(1, 2, tail))
	require.Equal(t, Reference(1, 2, tail), Reference(1, 2, tail))
}

func TestNewTail(t *testing.T) {
	tail := NewTail('a', 'b', 'c')
	require.Equal(t, uint32('a')<<24|uint32('b')<<16|uint32('c')<<8|Terminator, tail)
	require.Equal(t, uint32(Terminator), tail&0xff)
}

func TestMessageLayout(t *testing.T) {
	r := require.New(t)

	tag, err := alphabet.EncodeWord(42)
	r.NoError(err)
	lane, err := alphabet.EncodeWord(1337)
	r.NoError(err)
	m := Message(tag, lane, NewTail('x', 'y', 'z'))

	r.Len(m[:], MessageLength)
	r.Equal(Prefix, string(m[:44]))
	r.Equal("xyz", string(m[52:]))

	// The terminator byte is padding, not message content.
	for _, b := range m {
		r.NotEqual(byte(Terminator), b)
	}
}
