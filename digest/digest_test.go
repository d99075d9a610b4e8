package digest

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromBytes(t *testing.T) {
	var sum [32]byte
	for i := range sum {
		sum[i] = byte(i)
	}

	d := FromBytes(sum)
	require.Equal(t, uint32(0x00010203), d[0])
	require.Equal(t, uint32(0x1c1d1e1f), d[7])
}

func TestLessIsStrictTotalOrder(t *testing.T) {
	r := require.New(t)

	a := Digest{0, 0, 0, 0, 0, 0, 0, 1}
	b := Digest{0, 0, 0, 0, 0, 0, 0, 2}
	c := Digest{0, 0, 0, 1, 0, 0, 0, 0}

	// Exactly one of a<b, b<a holds for distinct values.
	r.True(a.Less(b))
	r.False(b.Less(a))

	// The most significant differing word decides, regardless of the
	// words below it.
	r.True(b.Less(c))
	r.True(Digest{1}.Less(Digest{2, 0xffffffff}))

	// Transitivity.
	r.True(a.Less(b) && b.Less(c) && a.Less(c))

	// Irreflexive.
	r.False(a.Less(a))
}

func TestWorstIsMaximum(t *testing.T) {
	r := require.New(t)

	worst := Worst()
	r.False(worst.Less(worst))

	for _, d := range []Digest{
		{},
		{0, 0, 0, 0, 0, 0, 0, 1},
		{0xffffffff, 0xffffffff, 0xffffffff, 0xffffffff, 0xffffffff, 0xffffffff, 0xffffffff, 0xfffffffe},
	} {
		r.True(d.Less(worst))
		r.False(worst.Less(d))
	}
}

func TestString(t *testing.T) {
	d := Digest{0x2ddb929e, 0x7a9a9f6b, 0x95882c98, 0x3a2d8dfa, 0x5501ba8f, 0xcab5fc58, 0xac57229c, 0x685eb4d3}
	require.Equal(t, "2ddb929e 7a9a9f6b 95882c98 3a2d8dfa 5501ba8f cab5fc58 ac57229c 685eb4d3", d.String())

	require.Equal(t, "00000000 00000000 00000000 00000000 00000000 00000000 00000000 00000001", Digest{7: 1}.String())
}
