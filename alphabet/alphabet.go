// Package alphabet maps integer ids to fixed-width printable codes.
//
// The search renders wave and lane ids as 4-character codes over a
// 62-symbol alphabet (A-Z, a-z, 0-9), so a full code covers the id
// space [0, 62^4).
package alphabet

import (
	"encoding/binary"
	"fmt"
)

const (
	// NumSymbols is the alphabet size.
	NumSymbols = 62

	// CodeLength is the number of symbols in an encoded id.
	CodeLength = 4

	// NumCodes is the number of encodable ids: NumSymbols^CodeLength.
	NumCodes = NumSymbols * NumSymbols * NumSymbols * NumSymbols
)

var symbols [NumSymbols]byte

func init() {
	i := 0
	for c := byte('A'); c <= 'Z'; c++ {
		symbols[i] = c
		i++
	}
	for c := byte('a'); c <= 'z'; c++ {
		symbols[i] = c
		i++
	}
	for c := byte('0'); c <= '9'; c++ {
		symbols[i] = c
		i++
	}
}

// Symbol returns the i-th alphabet symbol. i must be in [0, NumSymbols).
func Symbol(i uint32) byte {
	return symbols[i]
}

// Encode renders x as a CodeLength-symbol code, most significant symbol
// first. x must be in [0, NumCodes).
func Encode(x uint32) ([CodeLength]byte, error) {
	var code [CodeLength]byte
	if x >= NumCodes {
		return code, fmt.Errorf("id %d outside the encodable domain [0, %d)", x, NumCodes)
	}
	for i := CodeLength - 1; i >= 0; i-- {
		code[i] = symbols[x%NumSymbols]
		x /= NumSymbols
	}
	return code, nil
}

// EncodeWord packs the code for x into a single big-endian message word.
func EncodeWord(x uint32) (uint32, error) {
	code, err := Encode(x)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(code[:]), nil
}

// Decode recovers the id encoded by code. It is the inverse of Encode
// over [0, NumCodes).
func Decode(code [CodeLength]byte) (uint32, error) {
	var x uint32
	for i := 0; i < CodeLength; i++ {
		v, err := symbolIndex(code[i])
		if err != nil {
			return 0, err
		}
		x = x*NumSymbols + v
	}
	return x, nil
}

func symbolIndex(c byte) (uint32, error) {
	switch {
	case c >= 'A' && c <= 'Z':
		return uint32(c - 'A'), nil
	case c >= 'a' && c <= 'z':
		return uint32(c-'a') + 26, nil
	case c >= '0' && c <= '9':
		return uint32(c-'0') + 52, nil
	default:
		return 0, fmt.Errorf("byte 0x%02x is not an alphabet symbol", c)
	}
}
