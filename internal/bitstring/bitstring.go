// Package bitstring renders bytes as ASCII '0'/'1' text for statistical
// suites that read bit streams as characters.
package bitstring

import (
	"errors"
	"fmt"
)

// ErrShortInput is returned when data holds fewer than the requested bits.
var ErrShortInput = errors.New("bitstring: input shorter than requested bits")

// Encode returns the first nBits bits of data as '0' and '1' characters,
// most significant bit of each byte first.
func Encode(data []byte, nBits int) ([]byte, error) {
	if nBits < 0 {
		return nil, fmt.Errorf("bitstring: negative bit count %d", nBits)
	}
	if nBits > len(data)*8 {
		return nil, fmt.Errorf("%w: have %d, want %d", ErrShortInput, len(data)*8, nBits)
	}
	out := make([]byte, nBits)
	for i := range out {
		if data[i/8]&(0x80>>(i%8)) != 0 {
			out[i] = '1'
		} else {
			out[i] = '0'
		}
	}
	return out, nil
}

// ByteLen returns the number of bytes needed to hold nBits bits.
func ByteLen(nBits int) int {
	return (nBits + 7) / 8
}
